package paycal

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDecodeDataset(t *testing.T) {
	ds := mustDecode(t, "ignored", alphaDataset)
	if ds.Project.Key != "alpha" || ds.Project.DisplayName() != "Alpha Tower" {
		t.Errorf("Project = %+v", ds.Project)
	}
	if len(ds.Records) != 7 {
		t.Fatalf("Records = %d, want 7", len(ds.Records))
	}
	r := ds.Records[5]
	if r.Key() != "alpha:5" || r.Category != Fee || r.ProjectName != "Alpha Tower" {
		t.Errorf("record = %s %s %s", r.Key(), r.Category, r.ProjectName)
	}
	if got := ds.Project.Strategy().Name(); got != StrategyFlat {
		t.Errorf("Strategy() = %q, want flat", got)
	}

	beta := mustDecode(t, "", betaDataset)
	a, ok := beta.Project.Strategy().(AmortizationImplied)
	if !ok {
		t.Fatalf("Strategy() = %T, want AmortizationImplied", beta.Project.Strategy())
	}
	decEqual(t, "AnnualRate", a.AnnualRate, "0.12")
}

func TestDecodeDataset_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
		path string
	}{
		{"not an object", `[1,2]`, ""},
		{"not json", `{`, ""},
		{"payments not an array", `{"payments": {}}`, ""},
		{"missing payments", `{"items": []}`, ""},
		{"unknown strategy", `{"settlement": {"strategy": "magic"}, "payments": []}`, ""},
		{"amortization without rate", `{"settlement": {"strategy": "amortization"}, "payments": []}`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeDataset(strings.NewReader(tt.data), "k", tt.path); err == nil {
				t.Errorf("DecodeDataset() should fail")
			}
		})
	}
}

func TestDecodeDataset_RecordsPath(t *testing.T) {
	data := `{"data": {"schedule": [{"schedule_usd": 10}, {"id": "x", "schedule_usd": 20}]}}`
	ds, err := DecodeDataset(strings.NewReader(data), "gamma", "$.data.schedule")
	if err != nil {
		t.Fatal(err)
	}
	if ds.Project.Key != "gamma" {
		t.Errorf("Key = %q, want the default key", ds.Project.Key)
	}
	if got := []string{ds.Records[0].Key(), ds.Records[1].Key()}; got[0] != "gamma:0" || got[1] != "gamma:x" {
		t.Errorf("keys = %v", got)
	}
}

func TestNewSchedule(t *testing.T) {
	undated := mustDecode(t, "u", `{"payments": [{"id": 1, "schedule_usd": 1}, {"id": 2, "period_year": 2027, "period_month": 2, "schedule_usd": 1}]}`)
	s := mustSchedule(t, undated)
	if got := s.Record("u:1").Year(); got != 2027 {
		t.Errorf("fallback year = %d, want 2027", got)
	}
	if got := s.Years(); len(got) != 1 || got[0] != 2027 {
		t.Errorf("Years() = %v", got)
	}

	if _, err := NewSchedule(mustDecode(t, "", alphaDataset), mustDecode(t, "", alphaDataset)); err == nil {
		t.Error("NewSchedule() accepted a duplicate project")
	}
}

func TestLoadSchedule(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "delta.json")
	if err := os.WriteFile(file, []byte(`{"payments": [{"schedule_usd": 1, "rate": 40}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, err := LoadSchedule("", file)
	if err != nil {
		t.Fatalf("LoadSchedule() error = %v", err)
	}
	if got := s.ProjectKeys(); len(got) != 1 || got[0] != "delta" {
		t.Errorf("ProjectKeys() = %v, want [delta]", got)
	}
	decEqual(t, "DefaultRate", s.DefaultRate(), "40")

	if _, err := LoadSchedule("", filepath.Join(dir, "missing.json")); err == nil {
		t.Error("LoadSchedule() of a missing file should fail")
	}
}
