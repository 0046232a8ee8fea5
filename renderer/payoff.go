package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/paycal"
	"golang.org/x/text/message"
)

// RenderPayoff renders the early payoff estimate, one row per project.
func RenderPayoff(w io.Writer, rep *paycal.Report, p *message.Printer) {
	s, cur := rep.Summary.Settlement, rep.Currency
	names := ProjectNames(rep.Projects())

	fmt.Fprintf(w, "# %s\n\n", p.Sprintf("Early Payoff"))
	fmt.Fprintf(w, "*%s*\n\n", p.Sprintf("Payoff estimate in %s, as of %s", cur.Code(), rep.Today))

	fmt.Fprintf(w, "| %s | %s | %s | %s |\n", p.Sprintf("Project"), p.Sprintf("Strategy"), p.Sprintf("Count"), p.Sprintf("Total"))
	fmt.Fprintln(w, "|:---|:---|---:|---:|")
	for _, v := range s.Groups {
		fmt.Fprintf(w, "| %s | %s | %d | %s |\n", cell(names[v.Project]), cell(ValuationLabel(p, v)), v.Count, v.Total(cur))
	}
	fmt.Fprintf(w, "| **%s** | | **%d** | **%s** |\n", p.Sprintf("Total"), s.Count, s.Total(cur))

	if !s.Unit(cur).IsZero() {
		fmt.Fprintf(w, "\n%s: %s\n", p.Sprintf("Unit"), s.Unit(cur))
	}
}
