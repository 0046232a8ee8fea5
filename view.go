package paycal

import (
	"github.com/shopspring/decimal"
)

// PaymentView is the reconciled, displayable state of a record.
//
// It is never stored: it is recomputed from the record, its override, the
// rates and the current date. All amounts are rounded to cents.
type PaymentView struct {
	Status      Status          `json:"status"`
	PaymentDate string          `json:"paymentDate"`
	Note        string          `json:"note"`
	PaidUSD     decimal.Decimal `json:"paidUsd"`
	PaidUAH     decimal.Decimal `json:"paidUah"`
	AmountUSD   decimal.Decimal `json:"amountUsd"`
	AmountUAH   decimal.Decimal `json:"amountUah"`
	ScheduleUSD decimal.Decimal `json:"scheduleUsd"`
	ScheduleUAH decimal.Decimal `json:"scheduleUah"`
	DueDate     Date            `json:"dueDate"`
	Overdue     bool            `json:"overdue"`
}

// Paid returns the paid amount in cur.
func (v PaymentView) Paid(cur Currency) Money { return Pick(cur, v.PaidUSD, v.PaidUAH) }

// Amount returns the headline amount in cur.
func (v PaymentView) Amount(cur Currency) Money { return Pick(cur, v.AmountUSD, v.AmountUAH) }

// Schedule returns the planned amount in cur.
func (v PaymentView) Schedule(cur Currency) Money { return Pick(cur, v.ScheduleUSD, v.ScheduleUAH) }

// Remaining returns what is left to pay on this record in cur, never negative.
func (v PaymentView) Remaining(cur Currency) Money {
	m := Pick(cur, v.ScheduleUSD.Sub(v.PaidUSD), v.ScheduleUAH.Sub(v.PaidUAH))
	if m.value.IsNegative() {
		return Money{value: decimal.Zero, cur: m.cur}
	}
	return m
}

// BuildView reconciles a record with its override.
//
// It is a pure function of its arguments.
func BuildView(r *PaymentRecord, o Override, rates RateContext, today Date) PaymentView {
	status := NormalizeStatus(r, o.Status, today)

	paymentDate := r.PaymentDate
	if o.PaymentDate != "" {
		paymentDate = o.PaymentDate
	}
	note := r.Note
	if o.Note != "" {
		note = o.Note
	}

	explicitUSD, hasUSD := o.PaidUSD.Decimal()
	explicitUAH, hasUAH := o.PaidUAH.Decimal()

	var paidUSD, paidUAH decimal.Decimal
	switch {
	case hasUSD && hasUAH:
		paidUSD, paidUAH = explicitUSD, explicitUAH
	case hasUSD:
		paidUSD, paidUAH = explicitUSD, rates.ToLocal(r, explicitUSD)
	case hasUAH:
		paidUSD, paidUAH = rates.ToUSD(r, explicitUAH), explicitUAH
	case status == Paid:
		paidUSD = r.FactUSD.Or(r.ScheduleUSD.Or(decimal.Zero))
		factUSD, okUSD := r.FactUSD.Decimal()
		factUAH, okUAH := r.FactUAH.Decimal()
		if okUSD && okUAH && roughlyEqual(paidUSD, factUSD) {
			paidUAH = factUAH
		} else {
			paidUAH = rates.ToLocal(r, paidUSD)
		}
	default:
		// early and unpaid without explicit amounts
		paidUSD, paidUAH = decimal.Zero, decimal.Zero
	}

	// a reverted status must not carry stale derived amounts. One explicit
	// currency makes both amounts explicit.
	if status == Unpaid && !hasUSD && !hasUAH {
		paidUSD, paidUAH = decimal.Zero, decimal.Zero
	}

	amountUSD := r.FactUSD.Or(r.ScheduleUSD.Or(decimal.Zero))
	amountUAH := r.FactUAH.Or(rates.ToLocal(r, amountUSD))

	scheduleUSD := r.ScheduleUSD.Or(r.FactUSD.Or(decimal.Zero))
	scheduleUAH := rates.ToLocal(r, scheduleUSD)
	if factUSD, ok := r.FactUSD.Decimal(); ok && r.FactUAH.Valid() && scheduleUSD.Equal(factUSD) {
		scheduleUAH = r.FactUAH.Or(decimal.Zero)
	}

	return PaymentView{
		Status:      status,
		PaymentDate: paymentDate,
		Note:        note,
		PaidUSD:     Round2(paidUSD),
		PaidUAH:     Round2(paidUAH),
		AmountUSD:   Round2(amountUSD),
		AmountUAH:   Round2(amountUAH),
		ScheduleUSD: Round2(scheduleUSD),
		ScheduleUAH: Round2(scheduleUAH),
		DueDate:     r.DueDate,
		Overdue:     !r.DueDate.IsZero() && r.DueDate.Before(today) && status == Unpaid,
	}
}
