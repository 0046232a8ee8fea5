package paycal

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"
)

// Row pairs a record with its view.
type Row struct {
	Record *PaymentRecord `json:"record"`
	View   PaymentView    `json:"view"`
}

// Key is the record key of the row.
func (r Row) Key() string { return r.Record.Key() }

// PeriodSummary rolls up the rows of a month, quarter or year.
type PeriodSummary struct {
	Key    string `json:"key"`   // "2026-03", "2026-Q1" or "2026"
	Label  string `json:"label"` // "March 2026", "Q1 2026" or "2026"
	Year   int    `json:"year"`
	Index  int    `json:"index"` // month or quarter, 0 for a year
	Period Period `json:"period"`
	Count  int    `json:"count"`

	ScheduleUSD  decimal.Decimal `json:"scheduleUsd"`
	ScheduleUAH  decimal.Decimal `json:"scheduleUah"`
	PaidUSD      decimal.Decimal `json:"paidUsd"`
	PaidUAH      decimal.Decimal `json:"paidUah"`
	RemainingUSD decimal.Decimal `json:"remainingUsd"`
	RemainingUAH decimal.Decimal `json:"remainingUah"`

	UnpaidCount int `json:"unpaidCount"`
	PaidCount   int `json:"paidCount"`
	EarlyCount  int `json:"earlyCount"`
}

// Status is the overall status of the period: paid when nothing is unpaid and
// something is paid, early when only early payments are in, unpaid otherwise.
func (s PeriodSummary) Status() Status {
	switch {
	case s.UnpaidCount == 0 && s.PaidCount > 0:
		return Paid
	case s.UnpaidCount == 0 && s.EarlyCount > 0:
		return Early
	default:
		return Unpaid
	}
}

// Schedule returns the planned total in cur.
func (s PeriodSummary) Schedule(cur Currency) Money { return Pick(cur, s.ScheduleUSD, s.ScheduleUAH) }

// Paid returns the paid total in cur.
func (s PeriodSummary) Paid(cur Currency) Money { return Pick(cur, s.PaidUSD, s.PaidUAH) }

// Remaining returns the unsettled total in cur.
func (s PeriodSummary) Remaining(cur Currency) Money {
	return Pick(cur, s.RemainingUSD, s.RemainingUAH)
}

// periodOf returns the group key of a record for a period.
func periodOf(r *PaymentRecord, p Period) (year, index int) {
	year = r.Year()
	month := r.Month()
	if month == 0 {
		month = 1
	}
	switch p {
	case Monthly:
		return year, month
	case Quarterly:
		return year, QuarterOf(month)
	default:
		return year, 0
	}
}

func periodKey(year, index int, p Period) string {
	switch p {
	case Monthly:
		return fmt.Sprintf("%04d-%02d", year, index)
	case Quarterly:
		return fmt.Sprintf("%04d-Q%d", year, index)
	default:
		return fmt.Sprintf("%04d", year)
	}
}

// PeriodKey returns the key of the period of r, like "2026-03", "2026-Q1" or "2026".
func PeriodKey(r *PaymentRecord, p Period) string {
	year, index := periodOf(r, p)
	return periodKey(year, index, p)
}

func newPeriodSummary(year, index int, p Period) *PeriodSummary {
	s := &PeriodSummary{Key: periodKey(year, index, p), Year: year, Index: index, Period: p}
	switch p {
	case Monthly:
		s.Label = fmt.Sprintf("%s %d", monthName(index), year)
	case Quarterly:
		s.Label = fmt.Sprintf("Q%d %d", index, year)
	default:
		s.Label = fmt.Sprintf("%d", year)
	}
	return s
}

// Aggregate groups rows by period, in chronological order.
//
// Remaining totals only count rows that are neither paid nor early.
func Aggregate(rows []Row, p Period) []PeriodSummary {
	type key struct{ year, index int }
	groups := make(map[key]*PeriodSummary)
	for _, row := range rows {
		year, index := periodOf(row.Record, p)
		k := key{year, index}
		s, ok := groups[k]
		if !ok {
			s = newPeriodSummary(year, index, p)
			groups[k] = s
		}
		v := row.View
		s.Count++
		switch v.Status {
		case Paid:
			s.PaidCount++
		case Early:
			s.EarlyCount++
		default:
			s.UnpaidCount++
		}
		s.ScheduleUSD = s.ScheduleUSD.Add(v.ScheduleUSD)
		s.ScheduleUAH = s.ScheduleUAH.Add(v.ScheduleUAH)
		s.PaidUSD = s.PaidUSD.Add(v.PaidUSD)
		s.PaidUAH = s.PaidUAH.Add(v.PaidUAH)
		if !v.Status.IsSettled() {
			s.RemainingUSD = s.RemainingUSD.Add(v.ScheduleUSD)
			s.RemainingUAH = s.RemainingUAH.Add(v.ScheduleUAH)
		}
	}

	out := make([]PeriodSummary, 0, len(groups))
	for _, s := range groups {
		s.ScheduleUSD, s.ScheduleUAH = Round2(s.ScheduleUSD), Round2(s.ScheduleUAH)
		s.PaidUSD, s.PaidUAH = Round2(s.PaidUSD), Round2(s.PaidUAH)
		s.RemainingUSD, s.RemainingUAH = Round2(s.RemainingUSD), Round2(s.RemainingUAH)
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b PeriodSummary) int {
		return cmp.Or(cmp.Compare(a.Year, b.Year), cmp.Compare(a.Index, b.Index))
	})
	return out
}
