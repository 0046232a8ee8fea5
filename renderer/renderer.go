// Package renderer renders calendar reports as markdown, in English or Ukrainian.
package renderer

import (
	"fmt"
	"io"

	"github.com/etnz/paycal"
	"golang.org/x/text/message"
)

// RenderCalendar renders the visible rows of a report, one section per month.
func RenderCalendar(w io.Writer, rep *paycal.Report, p *message.Printer) {
	cur := rep.Currency
	fmt.Fprintf(w, "# %s\n\n", p.Sprintf("Calendar in %s, %d payments", cur.Code(), len(rep.Visible)))
	if len(rep.Visible) == 0 {
		fmt.Fprintf(w, "%s\n", p.Sprintf("No payments."))
		return
	}

	multi := len(rep.Projects()) > 1
	section := ""
	for _, row := range rep.Visible {
		r, v := row.Record, row.View
		if key := paycal.PeriodKey(r, paycal.Monthly); key != section {
			if section != "" {
				fmt.Fprintln(w)
			}
			section = key
			month := r.Month()
			if month == 0 {
				month = 1
			}
			fmt.Fprintf(w, "## %s\n\n", MonthLabel(p, month, r.Year()))
			fmt.Fprintf(w, "| %s |", p.Sprintf("Payment"))
			if multi {
				fmt.Fprintf(w, " %s |", p.Sprintf("Project"))
			}
			fmt.Fprintf(w, " %s | %s | %s | %s | %s |\n",
				p.Sprintf("Due"), p.Sprintf("Status"), p.Sprintf("Schedule"), p.Sprintf("Paid"), p.Sprintf("Note"))
			fmt.Fprint(w, "|:---|")
			if multi {
				fmt.Fprint(w, ":---|")
			}
			fmt.Fprintln(w, ":---|:---|---:|---:|:---|")
		}

		status := StatusLabel(p, v.Status)
		if v.Overdue {
			status += " (" + p.Sprintf("overdue") + ")"
		}
		fmt.Fprintf(w, "| `%s` %s |", row.Key(), cell(Title(p, r)))
		if multi {
			fmt.Fprintf(w, " %s |", cell(r.ProjectName))
		}
		fmt.Fprintf(w, " %s | %s | %s | %s | %s |\n",
			cell(v.DueDate.String()), status, v.Schedule(cur), v.Paid(cur), cell(v.Note))
	}
}
