package paycal

import (
	"github.com/shopspring/decimal"
)

// RateContext holds the rates a record can fall back on.
type RateContext struct {
	Global  decimal.Decimal // user selected rate, ignored unless > 0
	Default decimal.Decimal // computed once at load time, see DefaultRate
}

// EffectiveRate returns the USD->UAH rate for r.
//
// The record's own rate wins, then the global rate, then the default one.
func (c RateContext) EffectiveRate(r *PaymentRecord) decimal.Decimal {
	// a zero record rate would divide by zero in ToUSD
	if r != nil && r.Rate.Positive() {
		return r.Rate.Or(decimal.Zero)
	}
	if c.Global.IsPositive() {
		return c.Global
	}
	if c.Default.IsPositive() {
		return c.Default
	}
	return fallbackRate
}

// ToLocal converts a USD amount for r.
func (c RateContext) ToLocal(r *PaymentRecord, usd decimal.Decimal) decimal.Decimal {
	return usd.Mul(c.EffectiveRate(r))
}

// ToUSD converts a local amount for r.
func (c RateContext) ToUSD(r *PaymentRecord, uah decimal.Decimal) decimal.Decimal {
	return uah.Div(c.EffectiveRate(r))
}

// DefaultRate computes the default rate of a set of records.
//
// It is the mean of all positive record rates, or else the mean of the rates
// implied by the recorded actuals (fact_uah / fact_usd), or else 42.
// The result is rounded to 4 decimals.
func DefaultRate(records []*PaymentRecord) decimal.Decimal {
	var rates []decimal.Decimal
	for _, r := range records {
		if r.Rate.Positive() {
			rates = append(rates, r.Rate.Or(decimal.Zero))
		}
	}
	if len(rates) > 0 {
		return Round4(mean(rates))
	}

	for _, r := range records {
		if r.FactUAH.Positive() && r.FactUSD.Positive() {
			uah, _ := r.FactUAH.Decimal()
			usd, _ := r.FactUSD.Decimal()
			rates = append(rates, uah.Div(usd))
		}
	}
	if len(rates) > 0 {
		return Round4(mean(rates))
	}
	return fallbackRate
}

func mean(values []decimal.Decimal) decimal.Decimal {
	return decimal.Sum(decimal.Zero, values...).Div(decimal.NewFromInt(int64(len(values))))
}
