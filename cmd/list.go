package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/etnz/paycal"
	"github.com/etnz/paycal/renderer"
	"github.com/google/subcommands"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	year   string
	period string
	search string
	json   bool
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list the payments of the selected projects" }
func (*listCmd) Usage() string {
	return `pcal list [-year <year>] [-period <key>] [-search <text>] [-json]

  Lists the payments of the selected projects, month by month, with their
  status and amounts in the display currency.

  Without flags, the year and period stored in the settings are used. Use
  "all" to list every year or period.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.year, "year", "", `Only the payments of this year, or "all".`)
	f.StringVar(&c.period, "period", "", `Only the payments of this period: "2026-03", "2026-Q1" or "2026" depending on the view mode, or "all".`)
	f.StringVar(&c.search, "search", "", "Only the payments matching this text, case insensitive.")
	f.BoolVar(&c.json, "json", false, "Print the visible rows as JSON.")
}

// filter applies the flags over the stored filter.
func (c *listCmd) filter(st paycal.Settings) (paycal.Filter, error) {
	f := paycal.FilterOf(st)
	switch y := strings.TrimSpace(c.year); y {
	case "":
	case paycal.AllPeriods:
		f.Year = 0
	default:
		year, err := strconv.Atoi(y)
		if err != nil {
			return f, fmt.Errorf("invalid year %q", c.year)
		}
		f.Year = year
	}
	if c.period != "" {
		f.Period = c.period
	}
	f.Search = c.search
	return f, nil
}

func (c *listCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		f, err := c.filter(s.tracker.Settings())
		if err != nil {
			return err
		}
		rep := s.tracker.Report(f)
		if c.json {
			enc := json.NewEncoder(stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(rep.Visible)
		}
		var b strings.Builder
		renderer.RenderCalendar(&b, rep, s.printer())
		printMarkdown(b.String())
		return nil
	})
}
