package paycal

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// schedulePayable is the threshold under which a planned amount is considered nil.
var schedulePayable = decimal.RequireFromString("0.009")

// diffThreshold is the smallest schedule decrease considered as principal repayment.
var diffThreshold = decimal.RequireFromString("0.0001")

var twelve = decimal.NewFromInt(12)

// Valuation is the early payoff estimate of one project.
type Valuation struct {
	Project    string          `json:"project"`
	Strategy   string          `json:"strategy"`
	Count      int             `json:"count"`
	Base       *PaymentRecord  `json:"base,omitempty"` // unit record of the flat strategy
	AnnualRate decimal.Decimal `json:"annualRate"`
	UnitUSD    decimal.Decimal `json:"unitUsd"`
	UnitUAH    decimal.Decimal `json:"unitUah"`
	TotalUSD   decimal.Decimal `json:"totalUsd"`
	TotalUAH   decimal.Decimal `json:"totalUah"`
}

// Label describes how the valuation was obtained.
func (v Valuation) Label() string {
	if v.Count == 0 {
		return "no future payments"
	}
	switch v.Strategy {
	case StrategyAmortization:
		return fmt.Sprintf("principal excluding %s%%: %d months", v.AnnualRate.Shift(2).String(), v.Count)
	default:
		base := "no base month"
		if v.Base != nil {
			base = v.Base.Title()
		}
		return fmt.Sprintf("%d payments, base: %s", v.Count, base)
	}
}

// Total returns the payoff total in cur.
func (v Valuation) Total(cur Currency) Money { return Pick(cur, v.TotalUSD, v.TotalUAH) }

// SettlementStrategy values the payoff of a project's eligible rows.
//
// Rows are sorted chronologically and never empty.
type SettlementStrategy interface {
	Name() string
	Value(rows []Row, rates RateContext) Valuation
}

const (
	StrategyFlat         = "flat"
	StrategyAmortization = "amortization"
)

// FlatUnit buys out the remaining installments at the price of the earliest one.
type FlatUnit struct{}

func (FlatUnit) Name() string { return StrategyFlat }

func (FlatUnit) Value(rows []Row, _ RateContext) Valuation {
	base := rows[0]
	n := decimal.NewFromInt(int64(len(rows)))
	return Valuation{
		Strategy: StrategyFlat,
		Count:    len(rows),
		Base:     base.Record,
		UnitUSD:  base.View.ScheduleUSD,
		UnitUAH:  base.View.ScheduleUAH,
		TotalUSD: Round2(base.View.ScheduleUSD.Mul(n)),
		TotalUAH: Round2(base.View.ScheduleUAH.Mul(n)),
	}
}

// AmortizationImplied values the payoff as the principal left in a
// diminishing-balance schedule financed at a fixed nominal annual rate.
//
// The monthly principal is inferred from the first decrease between two
// consecutive local payments: diff / monthlyRate. A flat schedule falls back
// on firstPayment / (1 + count*monthlyRate), which is an approximation and not
// the inversion of a real amortization table.
type AmortizationImplied struct {
	AnnualRate decimal.Decimal
}

func (AmortizationImplied) Name() string { return StrategyAmortization }

func (a AmortizationImplied) Value(rows []Row, rates RateContext) Valuation {
	count := len(rows)
	n := decimal.NewFromInt(int64(count))
	monthlyRate := a.AnnualRate.Div(twelve)

	var principal decimal.Decimal
	if monthlyRate.IsPositive() {
		for i := 0; i < count-1; i++ {
			diff := rows[i].View.ScheduleUAH.Sub(rows[i+1].View.ScheduleUAH)
			if diff.GreaterThan(diffThreshold) {
				principal = diff.Div(monthlyRate)
				break
			}
		}
	}
	if !principal.IsPositive() {
		denom := decimal.NewFromInt(1).Add(n.Mul(monthlyRate))
		if denom.IsPositive() {
			principal = rows[0].View.ScheduleUAH.Div(denom)
		}
	}
	principal = decimal.Max(principal, decimal.Zero)

	totalUAH := principal.Mul(n)
	totalUSD := totalUAH.Div(rates.EffectiveRate(rows[0].Record))
	return Valuation{
		Strategy:   StrategyAmortization,
		Count:      count,
		AnnualRate: a.AnnualRate,
		UnitUAH:    Round2(principal),
		UnitUSD:    Round2(totalUSD.Div(n)),
		TotalUAH:   Round2(totalUAH),
		TotalUSD:   Round2(totalUSD),
	}
}

// Settlement is the early payoff estimate over several projects.
type Settlement struct {
	Groups []Valuation `json:"groups"`
	// Unit prices are zero unless a single project is valued.
	UnitUSD  decimal.Decimal `json:"unitUsd"`
	UnitUAH  decimal.Decimal `json:"unitUah"`
	TotalUSD decimal.Decimal `json:"totalUsd"`
	TotalUAH decimal.Decimal `json:"totalUah"`
	Count    int             `json:"count"`
	Label    string          `json:"label"`
}

// Total returns the payoff total in cur.
func (s Settlement) Total(cur Currency) Money { return Pick(cur, s.TotalUSD, s.TotalUAH) }

// Unit returns the unit price in cur.
func (s Settlement) Unit(cur Currency) Money { return Pick(cur, s.UnitUSD, s.UnitUAH) }

// IsEligible reports whether a row takes part in the early payoff of project p.
func IsEligible(row Row, p *Project, today Date) bool {
	r, v := row.Record, row.View
	if r.ExcludeFromSummary || r.IsPast(today) || v.Status.IsSettled() {
		return false
	}
	if !v.ScheduleUSD.GreaterThan(schedulePayable) && !v.ScheduleUAH.GreaterThan(schedulePayable) {
		return false
	}
	return p.IsEligible(r.Category)
}

// SortChronologically sorts rows by period, then due date, then key.
func SortChronologically(rows []Row) {
	slices.SortStableFunc(rows, func(a, b Row) int {
		ra, rb := a.Record, b.Record
		return cmp.Or(
			cmp.Compare(ra.Year(), rb.Year()),
			cmp.Compare(ra.Month(), rb.Month()),
			ra.DueDate.Compare(rb.DueDate),
			strings.Compare(ra.Key(), rb.Key()),
		)
	})
}

// Valuate computes the early payoff of rows, project by project.
//
// Each project is valued with its own strategy, totals are summed. A project
// without eligible rows contributes zero. Unit prices are reported only when a
// single project has eligible rows.
func Valuate(rows []Row, projects []*Project, rates RateContext, today Date) Settlement {
	var s Settlement
	var labels []string
	for _, p := range projects {
		var eligible []Row
		for _, row := range rows {
			if row.Record.ProjectKey == p.Key && IsEligible(row, p, today) {
				eligible = append(eligible, row)
			}
		}
		v := Valuation{Strategy: p.Strategy().Name()}
		if len(eligible) > 0 {
			SortChronologically(eligible)
			v = p.Strategy().Value(eligible, rates)
		}
		v.Project = p.Key
		s.Groups = append(s.Groups, v)
		s.TotalUSD = s.TotalUSD.Add(v.TotalUSD)
		s.TotalUAH = s.TotalUAH.Add(v.TotalUAH)
		s.Count += v.Count
		if len(projects) > 1 {
			labels = append(labels, p.DisplayName()+": "+v.Label())
		} else {
			labels = append(labels, v.Label())
		}
	}
	var valued []Valuation
	for _, v := range s.Groups {
		if v.Count > 0 {
			valued = append(valued, v)
		}
	}
	if len(valued) == 1 {
		s.UnitUSD, s.UnitUAH = valued[0].UnitUSD, valued[0].UnitUAH
	}
	if len(labels) == 0 {
		labels = append(labels, Valuation{}.Label())
	}
	s.Label = "Early payoff (" + strings.Join(labels, "; ") + ")"
	return s
}
