package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

const towerDataset = `{
  "project_name": "Tower",
  "payments": [
    {"id": 0, "flags": {"initial": true}, "category_key": "initial", "due_date": "2026-01-15", "schedule_usd": 2000, "fact_usd": 2000, "fact_uah": 80000, "rate": 40, "status": "paid"},
    {"id": 1, "due_date": "2026-02-15", "schedule_usd": 500, "rate": 40},
    {"id": 2, "due_date": "2026-03-15", "schedule_usd": 500, "rate": 40},
    {"id": 3, "due_date": "2026-04-15", "schedule_usd": 500, "rate": 40}
  ]
}`

// setup writes a dataset in a temporary folder and points the configuration to it.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	data := filepath.Join(dir, "tower.json")
	if err := os.WriteFile(data, []byte(towerDataset), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvData, data)
	t.Setenv(EnvDB, filepath.Join(dir, "pcal.db"))
	t.Setenv(EnvLang, "en")
	t.Setenv(EnvVerbose, "false")
	t.Setenv("PCAL_TESTING_NOW", "2026-02-20 10:00:00")
	return dir
}

// execute runs a pcal command line and returns its output.
func execute(t *testing.T, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var out, errs bytes.Buffer
	stdout, stderr = &out, &errs
	defer func() { stdout, stderr = os.Stdout, os.Stderr }()

	fs := flag.NewFlagSet("pcal", flag.ContinueOnError)
	c := subcommands.NewCommander(fs, "pcal")
	c.Output, c.Error = &out, &errs
	Register(c)
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	status := c.Execute(context.Background())
	if status != subcommands.ExitSuccess {
		t.Logf("pcal %s: %s", strings.Join(args, " "), errs.String())
	}
	return out.String(), status
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, status := execute(t, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("pcal %s: exit status %v", strings.Join(args, " "), status)
	}
	return out
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(EnvData, "a.json,b.json")
	t.Setenv(EnvLang, "uk")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.DataFiles) != 2 || cfg.Lang != "uk" || cfg.DBPath != "pcal.db" || cfg.RecordsPath != "$.payments" {
		t.Errorf("LoadConfig() = %+v", cfg)
	}

	*langFlag = "en"
	defer func() { *langFlag = "" }()
	if cfg, _ := LoadConfig(); cfg.Lang != "en" {
		t.Errorf("flag did not override env: %q", cfg.Lang)
	}
}

func TestCalendarCommands(t *testing.T) {
	setup(t)

	out := mustExecute(t, "list")
	if !strings.Contains(out, "# Calendar in USD, 4 payments") || !strings.Contains(out, "`tower:2`") {
		t.Errorf("list:\n%s", out)
	}

	out = mustExecute(t, "list", "-year", "2026", "-search", "march")
	if !strings.Contains(out, "1 payments") {
		t.Errorf("list -search:\n%s", out)
	}

	out = mustExecute(t, "list", "-json")
	var rows []map[string]any
	if err := json.Unmarshal([]byte(out), &rows); err != nil || len(rows) != 4 {
		t.Errorf("list -json = %d rows, %v", len(rows), err)
	}

	out = mustExecute(t, "periods", "-by", "quarter")
	if !strings.Contains(out, "Q1 2026") || !strings.Contains(out, "Q2 2026") {
		t.Errorf("periods:\n%s", out)
	}

	out = mustExecute(t, "summary")
	if !strings.Contains(out, "1/4 paid, future unpaid: 3") {
		t.Errorf("summary:\n%s", out)
	}

	out = mustExecute(t, "payoff")
	if !strings.Contains(out, "3 payments, base: February 2026") {
		t.Errorf("payoff:\n%s", out)
	}

	out = mustExecute(t, "show", "tower:0")
	if !strings.Contains(out, "# Initial installment") {
		t.Errorf("show:\n%s", out)
	}

	out = mustExecute(t, "query", "$.summary.count")
	if strings.TrimSpace(out) != "4" {
		t.Errorf("query = %q, want 4", out)
	}

	if _, status := execute(t, "show", "tower:9"); status != subcommands.ExitFailure {
		t.Errorf("show unknown payment: status %v", status)
	}
	if _, status := execute(t, "periods", "-by", "week"); status != subcommands.ExitUsageError {
		t.Errorf("periods -by week: status %v", status)
	}
}

func TestPaymentCommands(t *testing.T) {
	setup(t)

	mustExecute(t, "set", "-status", "paid", "-uah", "20 500", "-note", "wire", "tower:1")
	out := mustExecute(t, "show", "tower:1")
	for _, want := range []string{"- Status: paid", "- Paid: ", "- Note: wire"} {
		if !strings.Contains(out, want) {
			t.Errorf("show after set: missing %q in:\n%s", want, out)
		}
	}

	out = mustExecute(t, "toggle", "tower:2")
	if strings.TrimSpace(out) != "tower:2: paid" {
		t.Errorf("toggle = %q", out)
	}

	mustExecute(t, "clear", "tower:1")
	if out := mustExecute(t, "show", "tower:1"); strings.Contains(out, "## Override") {
		t.Errorf("override not cleared:\n%s", out)
	}

	if _, status := execute(t, "reset"); status != subcommands.ExitUsageError {
		t.Errorf("reset without -yes: status %v", status)
	}
	out = mustExecute(t, "reset", "-yes")
	if strings.TrimSpace(out) != "1 overrides removed" {
		t.Errorf("reset = %q", out)
	}

	if _, status := execute(t, "set", "-status", "maybe", "tower:1"); status != subcommands.ExitUsageError {
		t.Errorf("set -status maybe: status %v", status)
	}
}

func TestSettingsCommands(t *testing.T) {
	setup(t)

	if out := mustExecute(t, "fx"); strings.TrimSpace(out) != "40" {
		t.Errorf("fx = %q, want the default rate", out)
	}
	if out := mustExecute(t, "fx", "41,5"); strings.TrimSpace(out) != "41.5" {
		t.Errorf("fx 41,5 = %q", out)
	}
	if _, status := execute(t, "fx", "0"); status != subcommands.ExitFailure {
		t.Errorf("fx 0: status %v", status)
	}

	if out := mustExecute(t, "currency", "UAH"); strings.TrimSpace(out) != "UAH" {
		t.Errorf("currency = %q", out)
	}
	if out := mustExecute(t, "list"); !strings.Contains(out, "Calendar in UAH") {
		t.Errorf("list after currency:\n%s", out)
	}

	if out := mustExecute(t, "projects"); !strings.Contains(out, "| * | `tower` Tower | flat |") {
		t.Errorf("projects:\n%s", out)
	}

	if out := mustExecute(t, "view", "quarter", "2026", "2026-Q1"); strings.TrimSpace(out) != "quarter 2026 2026-Q1" {
		t.Errorf("view = %q", out)
	}
	if out := mustExecute(t, "list"); !strings.Contains(out, "3 payments") {
		t.Errorf("list with stored filter:\n%s", out)
	}
	if _, status := execute(t, "view", "month", "1999"); status != subcommands.ExitFailure {
		t.Errorf("view month 1999: status %v", status)
	}
}

func TestBackupCommands(t *testing.T) {
	dir := setup(t)

	mustExecute(t, "set", "-note", "kept", "tower:3")
	backup := filepath.Join(dir, "backup.json")
	mustExecute(t, "export", "-o", backup)
	mustExecute(t, "reset", "-yes")

	if out := mustExecute(t, "import", backup); strings.TrimSpace(out) != "1 overrides imported" {
		t.Errorf("import = %q", out)
	}
	if out := mustExecute(t, "show", "tower:3"); !strings.Contains(out, "kept") {
		t.Errorf("note not restored:\n%s", out)
	}

	other := filepath.Join(dir, "other.json")
	if err := os.WriteFile(other, []byte(`{"projectKey": "another", "overrides": {}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, status := execute(t, "import", other); status != subcommands.ExitFailure {
		t.Errorf("import of another calendar: status %v", status)
	}

	out := mustExecute(t, "history")
	// set, reset and import each stored a snapshot.
	if got := strings.Count(out, "\n| "); got != 3 {
		t.Errorf("history has %d entries, want 3:\n%s", got, out)
	}
}

func TestTopic(t *testing.T) {
	if out := mustExecute(t, "topic"); !strings.Contains(out, "* settlement:") {
		t.Errorf("topic:\n%s", out)
	}
	if out := mustExecute(t, "topic", "-l"); !strings.Contains(out, "snapshots\n") {
		t.Errorf("topic -l:\n%s", out)
	}
	if _, status := execute(t, "topic", "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope: status %v", status)
	}
}
