package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/paycal"
	"github.com/etnz/paycal/renderer"
	"github.com/google/subcommands"
)

// periodsCmd holds the flags for the 'periods' subcommand.
type periodsCmd struct {
	by   string
	year int
}

func (*periodsCmd) Name() string     { return "periods" }
func (*periodsCmd) Synopsis() string { return "roll up payments by month, quarter or year" }
func (*periodsCmd) Usage() string {
	return `pcal periods [-by month|quarter|year] [-year <year>]

  Displays the scheduled, paid and remaining amounts of each period. The
  period defaults to the view mode of the settings.
`
}

func (c *periodsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.by, "by", "", "Rollup period: month, quarter or year.")
	f.IntVar(&c.year, "year", 0, "Only the periods of this year.")
}

func (c *periodsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period := paycal.Monthly
	if c.by != "" {
		p, err := paycal.ParsePeriod(c.by)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		period = p
	}
	return run(ctx, func(s *session) error {
		if c.by == "" {
			period = s.tracker.Settings().ViewMode
		}
		rep := s.tracker.Report(paycal.Filter{Year: c.year})
		var b strings.Builder
		fmt.Fprintf(&b, "# %s\n\n", s.printer().Sprintf("Payments"))
		renderer.RenderPeriods(&b, rep.Aggregate(period), rep.Currency, s.printer())
		printMarkdown(b.String())
		return nil
	})
}
