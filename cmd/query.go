package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"
)

type queryCmd struct{}

func (*queryCmd) Name() string     { return "query" }
func (*queryCmd) Synopsis() string { return "query the calendar report with a JSONPath" }
func (*queryCmd) Usage() string {
	return `pcal query <jsonpath>

  Evaluates a JSONPath over the JSON report of the calendar and prints the
  result as JSON. For instance:

    pcal query '$.summary.settlement.totalUsd'
    pcal query '$.visible[?(@.view.overdue)].record.id'
`
}

func (c *queryCmd) SetFlags(f *flag.FlagSet) {}

func (c *queryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprint(stderr, c.Usage())
		return subcommands.ExitUsageError
	}
	path := f.Arg(0)
	return run(ctx, func(s *session) error {
		data, err := json.Marshal(s.report())
		if err != nil {
			return fmt.Errorf("cannot encode report: %w", err)
		}
		var doc any
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("cannot decode report: %w", err)
		}
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			return fmt.Errorf("invalid query %q: %w", path, err)
		}
		out, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, string(out))
		return nil
	})
}
