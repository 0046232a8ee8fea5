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

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the detail of a payment" }
func (*showCmd) Usage() string {
	return `pcal show <project:id>

  Shows a payment, its reconciled amounts and the override if any.
`
}

func (c *showCmd) SetFlags(f *flag.FlagSet) {}

func (c *showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	key := f.Arg(0)
	return run(ctx, func(s *session) error {
		// the payment is shown even when its project is not selected.
		rep := s.tracker.Report(paycal.Filter{})
		row, ok := rep.Row(key)
		if !ok {
			r := s.tracker.Schedule().Record(key)
			if r == nil {
				return fmt.Errorf("%w: %q", paycal.ErrUnknownRecord, key)
			}
			row = paycal.Row{Record: r, View: paycal.BuildView(r, s.tracker.Overrides().Get(key), rep.Rates, rep.Today)}
		}
		var b strings.Builder
		renderer.RenderDetail(&b, row, s.tracker.Overrides().Get(key), rep, s.printer())
		printMarkdown(b.String())
		return nil
	})
}
