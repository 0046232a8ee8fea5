package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/paycal"
	"golang.org/x/text/message"
)

// RenderDetail renders one payment, with its override if any.
func RenderDetail(w io.Writer, row paycal.Row, o paycal.Override, rep *paycal.Report, p *message.Printer) {
	r, v, cur := row.Record, row.View, rep.Currency

	fmt.Fprintf(w, "# %s\n\n", Title(p, r))
	fmt.Fprintln(w, "| | |")
	fmt.Fprintln(w, "|:---|:---|")
	fmt.Fprintf(w, "| %s | `%s` |\n", p.Sprintf("Payment"), row.Key())
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Project"), cell(r.ProjectName))
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Category"), r.Category)
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Due"), cell(v.DueDate.String()))
	status := StatusLabel(p, v.Status)
	if v.Overdue {
		status += " (" + p.Sprintf("overdue") + ")"
	}
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Status"), status)
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Schedule"), v.Schedule(cur))
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Amount"), v.Amount(cur))
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Paid"), v.Paid(cur))
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Remaining"), v.Remaining(cur))
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Rate"), rep.Rates.EffectiveRate(r).String())
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Payment date"), cell(v.PaymentDate))
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Note"), cell(v.Note))

	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## %s\n\n", p.Sprintf("Override"))
		if o.Status != "" {
			fmt.Fprintf(w, "- %s: %s\n", p.Sprintf("Status"), StatusLabel(p, o.Status))
		}
		if o.PaidUSD.Valid() {
			fmt.Fprintf(w, "- %s: %s\n", p.Sprintf("Paid"), paycal.M(o.PaidUSD.Or(v.PaidUSD), paycal.USD))
		}
		if o.PaidUAH.Valid() {
			fmt.Fprintf(w, "- %s: %s\n", p.Sprintf("Paid"), paycal.M(o.PaidUAH.Or(v.PaidUAH), paycal.UAH))
		}
		if o.PaymentDate != "" {
			fmt.Fprintf(w, "- %s: %s\n", p.Sprintf("Payment date"), o.PaymentDate)
		}
		if o.Note != "" {
			fmt.Fprintf(w, "- %s: %s\n", p.Sprintf("Note"), o.Note)
		}
		return !o.IsEmpty()
	})
}
