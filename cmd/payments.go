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

// setCmd holds the flags for the 'set' subcommand.
type setCmd struct {
	status string
	usd    string
	uah    string
	date   string
	note   string
}

func (*setCmd) Name() string     { return "set" }
func (*setCmd) Synopsis() string { return "correct the status or amounts of a payment" }
func (*setCmd) Usage() string {
	return `pcal set [-status <status>] [-usd <amount>] [-uah <amount>] [-date <date>] [-note <text>] <project:id>

  Records what was really paid. Only the flags given are changed, an empty
  amount, date or note clears it. See 'pcal topic overrides'.
`
}

func (c *setCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.status, "status", "", "Status: unpaid, paid or early.")
	f.StringVar(&c.usd, "usd", "", "Amount paid in USD.")
	f.StringVar(&c.uah, "uah", "", "Amount paid in UAH.")
	f.StringVar(&c.date, "date", "", "Date of the payment.")
	f.StringVar(&c.note, "note", "", "A free note.")
}

// patch builds the patch of the flags that were set on f.
func (c *setCmd) patch(f *flag.FlagSet) (paycal.Patch, error) {
	var p paycal.Patch
	var err error
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "status":
			s := paycal.ParseStatus(c.status)
			if string(s) != strings.ToLower(strings.TrimSpace(c.status)) {
				err = fmt.Errorf("invalid status %q", c.status)
			}
			p.Status = &s
		case "usd":
			n := paycal.ParseNumber(c.usd)
			p.PaidUSD = &n
		case "uah":
			n := paycal.ParseNumber(c.uah)
			p.PaidUAH = &n
		case "date":
			p.PaymentDate = &c.date
		case "note":
			p.Note = &c.note
		}
	})
	return p, err
}

func (c *setCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	p, err := c.patch(f)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	key := f.Arg(0)
	return run(ctx, func(s *session) error {
		o, err := s.tracker.UpdateOverride(ctx, key, p)
		if err != nil {
			return err
		}
		if o.IsEmpty() {
			fmt.Fprintf(stdout, "%s: no override left\n", key)
			return nil
		}
		fmt.Fprintf(stdout, "%s: override saved\n", key)
		return nil
	})
}

type toggleCmd struct{}

func (*toggleCmd) Name() string     { return "toggle" }
func (*toggleCmd) Synopsis() string { return "cycle the status of a payment" }
func (*toggleCmd) Usage() string {
	return `pcal toggle <project:id>

  Moves a payment to the next status: unpaid, paid, early and back to unpaid.
`
}

func (c *toggleCmd) SetFlags(f *flag.FlagSet) {}

func (c *toggleCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	key := f.Arg(0)
	return run(ctx, func(s *session) error {
		status, err := s.tracker.CycleStatus(ctx, key)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%s: %s\n", key, renderer.StatusLabel(s.printer(), status))
		return nil
	})
}

type clearCmd struct{}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "remove the override of payments" }
func (*clearCmd) Usage() string {
	return `pcal clear <project:id>...

  Removes the overrides of the given payments, they are back to their
  scheduled state.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {}

func (c *clearCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		for _, key := range f.Args() {
			if err := s.tracker.ClearOverride(ctx, key); err != nil {
				return err
			}
		}
		return nil
	})
}

// resetCmd holds the flags for the 'reset' subcommand.
type resetCmd struct {
	yes bool
}

func (*resetCmd) Name() string     { return "reset" }
func (*resetCmd) Synopsis() string { return "remove all overrides" }
func (*resetCmd) Usage() string {
	return `pcal reset -yes

  Removes every override. The previous state stays available in the history.
`
}

func (c *resetCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "yes", false, "Confirm the reset.")
}

func (c *resetCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if !c.yes {
		fmt.Fprintln(stderr, "Error: reset removes all overrides, confirm with -yes")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		n := len(s.tracker.Overrides())
		if err := s.tracker.ResetOverrides(ctx); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d overrides removed\n", n)
		return nil
	})
}
