package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/paycal/renderer"
	"github.com/google/subcommands"
)

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display paid, remaining and total amounts" }
func (*summaryCmd) Usage() string {
	return `pcal summary

  Displays what is paid so far, what remains according to the plan, the early
  payoff estimate and the total cost of the selected projects.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		var b strings.Builder
		renderer.RenderSummary(&b, s.report(), s.printer())
		printMarkdown(b.String())
		return nil
	})
}
