package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"
)

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the calendar state as a JSON backup" }
func (*exportCmd) Usage() string {
	return `pcal export [-o <file>]

  Writes a snapshot of the overrides and settings, to stdout by default.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the backup to this file.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		data, err := json.MarshalIndent(s.tracker.Snapshot(), "", "  ")
		if err != nil {
			return fmt.Errorf("cannot encode snapshot: %w", err)
		}
		data = append(data, '\n')
		if c.output == "" {
			_, err := stdout.Write(data)
			return err
		}
		if err := os.WriteFile(c.output, data, 0o644); err != nil {
			return fmt.Errorf("cannot write backup: %w", err)
		}
		s.log.Info().Str("file", c.output).Int("overrides", len(s.tracker.Overrides())).Msg("backup exported")
		return nil
	})
}

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "restore the calendar state from a JSON backup" }
func (*importCmd) Usage() string {
	return `pcal import <file>|-

  Replaces the overrides and settings with a backup made by 'pcal export'.
  A backup of another calendar is rejected. Use '-' to read stdin.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	var data []byte
	var err error
	if name := f.Arg(0); name == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(name)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error reading backup: %v\n", err)
		return subcommands.ExitFailure
	}
	return run(ctx, func(s *session) error {
		if err := s.tracker.Import(ctx, data); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d overrides imported\n", len(s.tracker.Overrides()))
		return nil
	})
}

type historyCmd struct{}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "list the stored snapshots" }
func (*historyCmd) Usage() string {
	return `pcal history

  Lists the last snapshots of the calendar state, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {}

func (c *historyCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		snaps, err := s.tracker.History(ctx)
		if err != nil {
			return err
		}
		var b strings.Builder
		fmt.Fprintln(&b, "| # | Saved | Overrides | Currency | Rate | Projects |")
		fmt.Fprintln(&b, "|---:|:---|---:|:---|---:|:---|")
		for i, snap := range snaps {
			fmt.Fprintf(&b, "| %d | %s | %d | %s | %s | %s |\n",
				i+1, snap.SavedAt.Local().Format(time.DateTime), len(snap.Overrides),
				snap.Settings.Currency.Code(), snap.Settings.FXRate.String(),
				strings.Join(snap.SourceProjects, ", "))
		}
		printMarkdown(b.String())
		return nil
	})
}
