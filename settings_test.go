package paycal

import (
	"errors"
	"testing"
)

func TestSettings_SetFXRate(t *testing.T) {
	s := mustSchedule(t, mustDecode(t, "", alphaDataset))
	st := DefaultSettings(s)
	decEqual(t, "default FXRate", st.FXRate, "41.2")

	for _, input := range []string{"0", "-3", "abc", "", "0.00001"} {
		if err := st.SetFXRate(ParseNumber(input)); !errors.Is(err, ErrInvalidRate) {
			t.Errorf("SetFXRate(%q) error = %v, want ErrInvalidRate", input, err)
		}
	}
	decEqual(t, "FXRate after invalid input", st.FXRate, "41.2")

	if err := st.SetFXRate(ParseNumber("41,55")); err != nil {
		t.Fatal(err)
	}
	decEqual(t, "FXRate", st.FXRate, "41.55")
}

func TestSettings_SelectProjects(t *testing.T) {
	s := mustSchedule(t, mustDecode(t, "", alphaDataset), mustDecode(t, "", betaDataset))
	st := DefaultSettings(s)
	if got := st.SelectedProjects; len(got) != 1 || got[0] != "alpha" {
		t.Errorf("default selection = %v, want [alpha]", got)
	}
	st.SelectProjects(s, "beta", "nope", "beta")
	if got := st.SelectedProjects; len(got) != 1 || got[0] != "beta" {
		t.Errorf("SelectProjects() = %v, want [beta]", got)
	}
	st.SelectProjects(s)
	if got := st.SelectedProjects; len(got) != 1 || got[0] != "alpha" {
		t.Errorf("empty selection = %v, want [alpha]", got)
	}
}

func TestSettings_Merge(t *testing.T) {
	s := mustSchedule(t, mustDecode(t, "", alphaDataset), mustDecode(t, "", betaDataset))
	st := DefaultSettings(s)
	data := `{"currency": "uah", "fxRate": 40.5, "selectedProjects": ["beta", "alpha", "zeta"],
	  "viewMode": "quarter", "selectedYear": 2026, "selectedMonth": "2026-Q1", "selectedId": "alpha:3"}`
	if err := st.Merge(s, []byte(data)); err != nil {
		t.Fatal(err)
	}
	if st.Currency != UAH || st.ViewMode != Quarterly || st.SelectedYear != "2026" || st.SelectedPeriod != "2026-Q1" || st.SelectedID != "alpha:3" {
		t.Errorf("Merge() = %+v", st)
	}
	if len(st.SelectedProjects) != 2 {
		t.Errorf("SelectedProjects = %v", st.SelectedProjects)
	}
	decEqual(t, "FXRate", st.FXRate, "40.5")

	// invalid values are ignored
	bad := `{"currency": "eur", "fxRate": -1, "viewMode": "week", "selectedYear": 1999, "selectedId": "x:1"}`
	if err := st.Merge(s, []byte(bad)); err != nil {
		t.Fatal(err)
	}
	if st.Currency != UAH || st.ViewMode != Quarterly || st.SelectedYear != "2026" || st.SelectedID != "alpha:3" {
		t.Errorf("Merge(invalid) = %+v", st)
	}
	decEqual(t, "FXRate", st.FXRate, "40.5")

	if err := st.Merge(s, []byte(`[]`)); err == nil {
		t.Error("Merge([]) should fail")
	}
}

func TestSettings_ViewModeAndFilter(t *testing.T) {
	s := mustSchedule(t, mustDecode(t, "", alphaDataset))
	st := DefaultSettings(s)

	if err := st.SetFilter(s, "2026", "2026-03"); err != nil {
		t.Fatal(err)
	}
	if f := FilterOf(st); f.Year != 2026 || f.Period != "2026-03" {
		t.Errorf("FilterOf() = %+v", f)
	}
	for _, year := range []string{"2031", "soon", ""} {
		if err := st.SetFilter(s, year, ""); !errors.Is(err, ErrInvalidFilter) {
			t.Errorf("SetFilter(%q) error = %v, want ErrInvalidFilter", year, err)
		}
	}
	if st.SelectedYear != "2026" {
		t.Errorf("invalid filter changed the year to %q", st.SelectedYear)
	}

	st.SetViewMode(Quarterly)
	if st.ViewMode != Quarterly || st.SelectedYear != "2026" || st.SelectedPeriod != AllPeriods {
		t.Errorf("SetViewMode(quarter) = %+v", st)
	}
	st.SetViewMode(Yearly)
	if st.SelectedYear != AllPeriods || st.SelectedPeriod != AllPeriods {
		t.Errorf("SetViewMode(year) = %+v", st)
	}
	if err := st.SetFilter(s, AllPeriods, "2025"); err != nil {
		t.Fatal(err)
	}
	if f := FilterOf(st); f.Year != 0 || f.Period != "2025" {
		t.Errorf("FilterOf() = %+v", f)
	}
}
