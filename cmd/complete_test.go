package cmd

import (
	"flag"
	"slices"
	"testing"

	"github.com/google/subcommands"
)

func TestCompletion(t *testing.T) {
	setup(t)
	c := subcommands.NewCommander(flag.NewFlagSet("pcal", flag.ContinueOnError), "pcal")
	Register(c)
	root := Completion(c)

	for _, name := range []string{"list", "set", "payoff", "import", "topic"} {
		if _, ok := root.Sub[name]; !ok {
			t.Errorf("missing completion for %q", name)
		}
	}
	if _, ok := root.Flags["lang"]; !ok {
		t.Error("missing completion for the global -lang flag")
	}

	set := root.Sub["set"]
	for _, f := range []string{"status", "usd", "uah", "date", "note"} {
		if _, ok := set.Flags[f]; !ok {
			t.Errorf("set: missing completion for -%s", f)
		}
	}
	if got := set.Flags["status"].Predict(""); !slices.Contains(got, "early") {
		t.Errorf("set -status predicts %v", got)
	}
	if got := set.Args.Predict(""); !slices.Contains(got, "tower:2") {
		t.Errorf("set predicts %v", got)
	}
	if got := root.Sub["projects"].Args.Predict(""); !slices.Equal(got, []string{"tower"}) {
		t.Errorf("projects predicts %v", got)
	}
	if got := root.Sub["currency"].Args.Predict(""); !slices.Equal(got, []string{"usd", "uah"}) {
		t.Errorf("currency predicts %v", got)
	}
}
