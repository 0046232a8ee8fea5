package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/paycal"
	"golang.org/x/text/message"
)

// RenderPeriods renders rollups as a single table.
func RenderPeriods(w io.Writer, groups []paycal.PeriodSummary, cur paycal.Currency, p *message.Printer) {
	ConditionalBlock(w, func(w io.Writer) bool {
		fmt.Fprintf(w, "| %s | %s | %s | %s | %s | %s |\n",
			p.Sprintf("Period"), p.Sprintf("Status"), p.Sprintf("Payments"),
			p.Sprintf("Schedule"), p.Sprintf("Paid"), p.Sprintf("Remaining"))
		fmt.Fprintln(w, "|:---|:---|---:|---:|---:|---:|")
		for _, g := range groups {
			fmt.Fprintf(w, "| %s | %s | %d | %s | %s | %s |\n",
				PeriodLabel(p, g), StatusLabel(p, g.Status()), g.Count,
				g.Schedule(cur), g.Paid(cur), g.Remaining(cur))
		}
		return len(groups) > 0
	})
}
