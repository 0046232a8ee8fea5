package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/paycal"
	"golang.org/x/text/message"
)

// RenderSummary renders the summary panel.
func RenderSummary(w io.Writer, rep *paycal.Report, p *message.Printer) {
	s, cur := rep.Summary, rep.Currency
	names := ProjectNames(rep.Projects())

	fmt.Fprintf(w, "# %s\n\n", p.Sprintf("Summary"))
	fmt.Fprintln(w, "| | |")
	fmt.Fprintln(w, "|:---|---:|")
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Paid so far"), s.Paid(cur))
	fmt.Fprintf(w, "| %s | %s |\n", p.Sprintf("Remaining plan"), s.RemainingPlan(cur))
	fmt.Fprintf(w, "| %s | %s |\n", cell(SettlementLabel(p, s.Settlement, names)), s.Settlement.Total(cur))
	fmt.Fprintf(w, "| **%s** | **%s** |\n", p.Sprintf("Total cost"), s.Total(cur))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "*%s*\n", p.Sprintf("%d/%d paid, future unpaid: %d", s.PaidCount, s.Count, s.FutureUnpaidCount))
}
