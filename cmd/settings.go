package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/etnz/paycal"
	"github.com/google/subcommands"
)

type fxCmd struct{}

func (*fxCmd) Name() string     { return "fx" }
func (*fxCmd) Synopsis() string { return "show or set the global USD to UAH rate" }
func (*fxCmd) Usage() string {
	return `pcal fx [<rate>]

  Without argument, prints the global rate. Otherwise sets it: the rate is
  used for payments without their own rate. See 'pcal topic currencies'.
`
}

func (c *fxCmd) SetFlags(f *flag.FlagSet) {}

func (c *fxCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		if f.NArg() == 1 {
			if err := s.tracker.SetFXRate(ctx, paycal.ParseNumber(f.Arg(0))); err != nil {
				return err
			}
		}
		fmt.Fprintln(stdout, s.tracker.Settings().FXRate.String())
		return nil
	})
}

type currencyCmd struct{}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "show or set the display currency" }
func (*currencyCmd) Usage() string {
	return `pcal currency [usd|uah]

  Without argument, prints the display currency. Otherwise sets it.
`
}

func (c *currencyCmd) SetFlags(f *flag.FlagSet) {}

func (c *currencyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		if f.NArg() == 1 {
			cur, err := paycal.ParseCurrency(f.Arg(0))
			if err != nil {
				return err
			}
			if err := s.tracker.SetCurrency(ctx, cur); err != nil {
				return err
			}
		}
		fmt.Fprintln(stdout, s.tracker.Settings().Currency.Code())
		return nil
	})
}

type projectsCmd struct{}

func (*projectsCmd) Name() string     { return "projects" }
func (*projectsCmd) Synopsis() string { return "list or select projects" }
func (*projectsCmd) Usage() string {
	return `pcal projects [<key>...]

  Without argument, lists the projects, the selected ones are marked with '*'.
  Otherwise selects the given projects, unknown keys are ignored.
`
}

func (c *projectsCmd) SetFlags(f *flag.FlagSet) {}

func (c *projectsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		if f.NArg() > 0 {
			if err := s.tracker.SelectProjects(ctx, f.Args()...); err != nil {
				return err
			}
		}
		st := s.tracker.Settings()
		var b strings.Builder
		fmt.Fprintf(&b, "| | %s | %s |\n", s.printer().Sprintf("Project"), s.printer().Sprintf("Strategy"))
		fmt.Fprintln(&b, "|:---|:---|:---|")
		for _, p := range s.tracker.Schedule().Projects() {
			mark := " "
			if st.IsSelected(p.Key) {
				mark = "*"
			}
			fmt.Fprintf(&b, "| %s | `%s` %s | %s |\n", mark, p.Key, p.DisplayName(), s.printer().Sprintf(p.Strategy().Name()))
		}
		printMarkdown(b.String())
		return nil
	})
}

type viewCmd struct{}

func (*viewCmd) Name() string     { return "view" }
func (*viewCmd) Synopsis() string { return "show or set the view mode and the stored filter" }
func (*viewCmd) Usage() string {
	return `pcal view [month|quarter|year] [<year>|all [<period>|all]]

  Without argument, prints the view mode, the selected year and period.
  Otherwise sets them. The year and period are used by 'pcal list' when no
  filter flag is given.
`
}

func (c *viewCmd) SetFlags(f *flag.FlagSet) {}

func (c *viewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() > 3 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		if f.NArg() > 0 {
			p, err := paycal.ParsePeriod(f.Arg(0))
			if err != nil {
				return err
			}
			if err := s.tracker.SetViewMode(ctx, p); err != nil {
				return err
			}
		}
		if f.NArg() > 1 {
			period := paycal.AllPeriods
			if f.NArg() > 2 {
				period = f.Arg(2)
			}
			if err := s.tracker.SetFilter(ctx, f.Arg(1), period); err != nil {
				return err
			}
		}
		st := s.tracker.Settings()
		fmt.Fprintf(stdout, "%s %s %s\n", st.ViewMode, st.SelectedYear, st.SelectedPeriod)
		return nil
	})
}
