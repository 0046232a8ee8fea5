package paycal

import (
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AllPeriods selects every year or every period in a filter.
const AllPeriods = "all"

// Settings are the user's display preferences.
type Settings struct {
	Currency         Currency        `json:"currency"`
	FXRate           decimal.Decimal `json:"fxRate"`
	SelectedProjects []string        `json:"selectedProjects"`
	ViewMode         Period          `json:"viewMode"`
	SelectedYear     string          `json:"selectedYear"`  // a year or "all"
	SelectedPeriod   string          `json:"selectedMonth"` // a period key or "all"
	SelectedID       string          `json:"selectedId,omitempty"`
}

// DefaultSettings are the settings of a fresh calendar over s.
func DefaultSettings(s *Schedule) Settings {
	st := Settings{
		Currency:       USD,
		FXRate:         s.DefaultRate(),
		ViewMode:       Monthly,
		SelectedYear:   AllPeriods,
		SelectedPeriod: AllPeriods,
	}
	st.ensureSelection(s)
	return st
}

// Rates returns the rate context of these settings over s.
func (st Settings) Rates(s *Schedule) RateContext {
	return RateContext{Global: st.FXRate, Default: s.DefaultRate()}
}

// SetFXRate sets the global rate. It must be a finite number > 0, otherwise
// the current rate is retained and ErrInvalidRate is returned.
func (st *Settings) SetFXRate(n Number) error {
	rate := Round4(n.Or(decimal.Zero))
	if !n.Valid() || !rate.IsPositive() {
		return fmt.Errorf("%w: %q", ErrInvalidRate, n.String())
	}
	st.FXRate = rate
	return nil
}

// SelectProjects selects the known projects among keys. The first project of
// the schedule is selected when nothing valid remains.
func (st *Settings) SelectProjects(s *Schedule, keys ...string) {
	st.SelectedProjects = keys
	st.ensureSelection(s)
}

func (st *Settings) ensureSelection(s *Schedule) {
	known := s.ProjectKeys()
	var selected []string
	for _, k := range st.SelectedProjects {
		if slices.Contains(known, k) && !slices.Contains(selected, k) {
			selected = append(selected, k)
		}
	}
	if len(selected) == 0 && len(known) > 0 {
		selected = []string{known[0]}
	}
	st.SelectedProjects = selected
}

// SetViewMode changes the rollup period. The selected period is reset, and so
// is the selected year for a yearly view.
func (st *Settings) SetViewMode(p Period) {
	st.ViewMode = p
	if p == Yearly {
		st.SelectedYear = AllPeriods
	}
	st.SelectedPeriod = AllPeriods
}

// SetFilter stores the selected year and period. The year must be "all" or a
// year of the schedule, an empty period selects all periods.
func (st *Settings) SetFilter(s *Schedule, year, period string) error {
	year = strings.TrimSpace(year)
	if year != AllPeriods {
		n, err := strconv.Atoi(year)
		if err != nil || !slices.Contains(s.Years(), n) {
			return fmt.Errorf("%w: no payment in year %q", ErrInvalidFilter, year)
		}
	}
	if period = strings.TrimSpace(period); period == "" {
		period = AllPeriods
	}
	st.SelectedYear, st.SelectedPeriod = year, period
	return nil
}

// IsSelected reports whether project key is selected.
func (st Settings) IsSelected(key string) bool { return slices.Contains(st.SelectedProjects, key) }

// settingsPayload is the stored form of Settings, decoded leniently.
type settingsPayload struct {
	Currency         string            `json:"currency"`
	FXRate           Number            `json:"fxRate"`
	SelectedProjects []json.RawMessage `json:"selectedProjects"`
	ViewMode         string            `json:"viewMode"`
	SelectedYear     json.RawMessage   `json:"selectedYear"`
	SelectedPeriod   json.RawMessage   `json:"selectedMonth"`
	SelectedID       json.RawMessage   `json:"selectedId"`
}

// Merge applies the valid fields of a stored settings payload over st.
//
// Invalid or unknown fields are ignored, a project selection is restricted to
// known projects.
func (st *Settings) Merge(s *Schedule, data []byte) error {
	var raw settingsPayload
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("cannot decode settings: %w", err)
	}
	if cur, err := ParseCurrency(raw.Currency); err == nil {
		st.Currency = cur
	}
	if raw.SelectedProjects != nil {
		keys := make([]string, 0, len(raw.SelectedProjects))
		for _, k := range raw.SelectedProjects {
			keys = append(keys, scalarString(k))
		}
		st.SelectProjects(s, keys...)
	}
	switch mode := strings.ToLower(raw.ViewMode); mode {
	case "month", "quarter", "year":
		st.ViewMode, _ = ParsePeriod(mode)
	}
	if y := scalarString(raw.SelectedYear); y == AllPeriods {
		st.SelectedYear = y
	} else if n, err := strconv.Atoi(y); err == nil && slices.Contains(s.Years(), n) {
		st.SelectedYear = y
	}
	if p := scalarString(raw.SelectedPeriod); p != "" {
		st.SelectedPeriod = p
	}
	if id := scalarString(raw.SelectedID); id != "" && s.Record(id) != nil {
		st.SelectedID = id
	}
	if raw.FXRate.Positive() {
		st.FXRate = raw.FXRate.Or(st.FXRate)
	}
	return nil
}

// scalarString returns a JSON string or number as a string, "" otherwise.
func scalarString(data json.RawMessage) string {
	var v any
	if len(data) == 0 || json.Unmarshal(data, &v) != nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return ""
	}
}
