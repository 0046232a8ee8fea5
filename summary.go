package paycal

import (
	"github.com/shopspring/decimal"
)

// Summary is the headline panel of the calendar.
type Summary struct {
	PaidUSD          decimal.Decimal `json:"paidUsd"`
	PaidUAH          decimal.Decimal `json:"paidUah"`
	RemainingPlanUSD decimal.Decimal `json:"remainingPlanUsd"`
	RemainingPlanUAH decimal.Decimal `json:"remainingPlanUah"`
	TotalUSD         decimal.Decimal `json:"totalUsd"`
	TotalUAH         decimal.Decimal `json:"totalUah"`
	Settlement       Settlement      `json:"settlement"`

	PaidCount         int `json:"paidCount"`
	Count             int `json:"count"`
	FutureUnpaidCount int `json:"futureUnpaidCount"`
	PayableCount      int `json:"payableCount"`
}

// Paid returns the settled total in cur.
func (s Summary) Paid(cur Currency) Money { return Pick(cur, s.PaidUSD, s.PaidUAH) }

// RemainingPlan returns the planned total still to pay in cur.
func (s Summary) RemainingPlan(cur Currency) Money {
	return Pick(cur, s.RemainingPlanUSD, s.RemainingPlanUAH)
}

// Total returns paid plus remaining plan in cur.
func (s Summary) Total(cur Currency) Money { return Pick(cur, s.TotalUSD, s.TotalUAH) }

// Summarize computes the summary of rows.
//
// Rows excluded from the summary are ignored. Paid totals sum the rows with
// status Paid, the remaining plan sums current and future rows that are not
// settled. Early rows count in neither.
func Summarize(rows []Row, projects []*Project, rates RateContext, today Date) Summary {
	var s Summary
	var future []Row
	for _, row := range rows {
		r, v := row.Record, row.View
		if r.ExcludeFromSummary {
			continue
		}
		s.Count++
		if v.Status == Paid {
			s.PaidCount++
			s.PaidUSD = s.PaidUSD.Add(v.PaidUSD)
			s.PaidUAH = s.PaidUAH.Add(v.PaidUAH)
			continue
		}
		if v.Status == Early || r.IsPast(today) {
			continue
		}
		s.FutureUnpaidCount++
		s.RemainingPlanUSD = s.RemainingPlanUSD.Add(v.ScheduleUSD)
		s.RemainingPlanUAH = s.RemainingPlanUAH.Add(v.ScheduleUAH)
		future = append(future, row)
	}

	s.Settlement = Valuate(future, projects, rates, today)
	s.PayableCount = s.Settlement.Count
	s.PaidUSD, s.PaidUAH = Round2(s.PaidUSD), Round2(s.PaidUAH)
	s.RemainingPlanUSD, s.RemainingPlanUAH = Round2(s.RemainingPlanUSD), Round2(s.RemainingPlanUAH)
	s.TotalUSD = s.PaidUSD.Add(s.RemainingPlanUSD)
	s.TotalUAH = s.PaidUAH.Add(s.RemainingPlanUAH)
	return s
}
