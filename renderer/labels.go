package renderer

import (
	"strconv"
	"strings"
	"time"

	"github.com/etnz/paycal"
	"golang.org/x/text/message"
)

// Title is the localized title of a record.
func Title(p *message.Printer, r *paycal.PaymentRecord) string {
	switch {
	case r.Flags.Initial:
		return p.Sprintf("Initial installment")
	case !r.DueDate.IsZero():
		return MonthLabel(p, int(r.DueDate.Month()), r.DueDate.Year())
	case r.DueLabel != "":
		return r.DueLabel
	default:
		return p.Sprintf("Payment #%s", r.ID)
	}
}

// MonthLabel is the localized "March 2026".
func MonthLabel(p *message.Printer, month, year int) string {
	return p.Sprintf(time.Month(month).String()) + " " + strconv.Itoa(year)
}

// PeriodLabel is the localized label of a rollup.
func PeriodLabel(p *message.Printer, s paycal.PeriodSummary) string {
	switch s.Period {
	case paycal.Monthly:
		return MonthLabel(p, s.Index, s.Year)
	case paycal.Quarterly:
		return p.Sprintf("Q%d %s", s.Index, strconv.Itoa(s.Year))
	default:
		return strconv.Itoa(s.Year)
	}
}

// StatusLabel is the localized status.
func StatusLabel(p *message.Printer, s paycal.Status) string { return p.Sprintf(string(s)) }

// ValuationLabel describes how a project payoff was valued.
func ValuationLabel(p *message.Printer, v paycal.Valuation) string {
	if v.Count == 0 {
		return p.Sprintf("no future payments")
	}
	switch v.Strategy {
	case paycal.StrategyAmortization:
		return p.Sprintf("principal excluding %s%%: %d months", v.AnnualRate.Shift(2).String(), v.Count)
	default:
		base := "-"
		if v.Base != nil {
			base = Title(p, v.Base)
		}
		return p.Sprintf("%d payments, base: %s", v.Count, base)
	}
}

// SettlementLabel is the localized label of the early payoff, with one part
// per project when several are valued.
func SettlementLabel(p *message.Printer, s paycal.Settlement, names map[string]string) string {
	var parts []string
	for _, v := range s.Groups {
		label := ValuationLabel(p, v)
		if len(s.Groups) > 1 {
			label = names[v.Project] + ": " + label
		}
		parts = append(parts, label)
	}
	if len(parts) == 0 {
		parts = append(parts, p.Sprintf("no future payments"))
	}
	return p.Sprintf("Early payoff (%s)", strings.Join(parts, "; "))
}

// ProjectNames maps project keys to display names.
func ProjectNames(projects []*paycal.Project) map[string]string {
	names := make(map[string]string, len(projects))
	for _, pr := range projects {
		names[pr.Key] = pr.DisplayName()
	}
	return names
}
