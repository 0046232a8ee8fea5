package cmd

import (
	"context"
	"flag"
	"strings"

	"github.com/etnz/paycal/renderer"
	"github.com/google/subcommands"
)

type payoffCmd struct{}

func (*payoffCmd) Name() string     { return "payoff" }
func (*payoffCmd) Synopsis() string { return "estimate the early payoff of each project" }
func (*payoffCmd) Usage() string {
	return `pcal payoff

  Estimates the amount needed to pay all remaining installments now, project
  by project. See 'pcal topic settlement'.
`
}

func (c *payoffCmd) SetFlags(f *flag.FlagSet) {}

func (c *payoffCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		var b strings.Builder
		renderer.RenderPayoff(&b, s.report(), s.printer())
		printMarkdown(b.String())
		return nil
	})
}
