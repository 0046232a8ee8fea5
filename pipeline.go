package paycal

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Input is everything a report is computed from.
type Input struct {
	Schedule  *Schedule
	Overrides Overrides
	Settings  Settings
	Today     Date
}

// Filter restricts the visible rows of a report.
//
// Zero values select everything.
type Filter struct {
	Year   int    // 0 for all years, ignored in yearly view mode
	Period string // a PeriodKey under the settings view mode, "" or "all" for all
	Search string // case insensitive text over title, project, label, dates, status and note
}

// FilterOf returns the filter stored in the settings.
func FilterOf(st Settings) Filter {
	f := Filter{Period: st.SelectedPeriod}
	if y, err := strconv.Atoi(st.SelectedYear); err == nil {
		f.Year = y
	}
	return f
}

// Report is the result of one computation pass.
type Report struct {
	Currency Currency    `json:"currency"`
	Rates    RateContext `json:"-"`
	ViewMode Period      `json:"viewMode"`
	Today    Date        `json:"today"`
	// Rows holds every row of the selected projects, in chronological order.
	Rows []Row `json:"rows"`
	// Visible holds the rows matching the filter.
	Visible []Row   `json:"visible"`
	Summary Summary `json:"summary"`

	projects []*Project
	periodic []Row // rows matching the year and search filter
}

// Compute runs the full pipeline: views of every selected record, filtering
// and summary. It has no side effect.
func Compute(in Input, f Filter) *Report {
	s := in.Schedule
	rates := in.Settings.Rates(s)
	rep := &Report{
		Currency: in.Settings.Currency,
		Rates:    rates,
		ViewMode: in.Settings.ViewMode,
		Today:    in.Today,
	}
	for _, key := range in.Settings.SelectedProjects {
		if p := s.Project(key); p != nil {
			rep.projects = append(rep.projects, p)
		}
	}

	for _, r := range s.Records() {
		if !in.Settings.IsSelected(r.ProjectKey) {
			continue
		}
		o := in.Overrides.Get(r.Key())
		rep.Rows = append(rep.Rows, Row{Record: r, View: BuildView(r, o, rates, in.Today)})
	}
	SortChronologically(rep.Rows)

	search := fold(f.Search)
	for _, row := range rep.Rows {
		// a yearly view selects its year through the period
		if f.Year != 0 && rep.ViewMode != Yearly && row.Record.Year() != f.Year {
			continue
		}
		if search != "" && !strings.Contains(fold(searchText(row)), search) {
			continue
		}
		rep.periodic = append(rep.periodic, row)
		if f.Period != "" && f.Period != AllPeriods && PeriodKey(row.Record, rep.ViewMode) != f.Period {
			continue
		}
		rep.Visible = append(rep.Visible, row)
	}

	rep.Summary = Summarize(rep.Rows, rep.projects, rates, in.Today)
	return rep
}

// Aggregate rolls up the rows matching the year and search filters by period.
func (rep *Report) Aggregate(p Period) []PeriodSummary { return Aggregate(rep.periodic, p) }

// Projects returns the selected projects.
func (rep *Report) Projects() []*Project { return rep.projects }

// Row returns the row of a record key.
func (rep *Report) Row(key string) (Row, bool) {
	for _, row := range rep.Rows {
		if row.Key() == key {
			return row, true
		}
	}
	return Row{}, false
}

func searchText(row Row) string {
	r, v := row.Record, row.View
	return strings.Join([]string{
		r.ProjectName,
		r.Title(),
		r.DueLabel,
		v.PaymentDate,
		string(v.Status),
		v.Note,
	}, " ")
}

func fold(s string) string { return cases.Fold().String(strings.TrimSpace(s)) }
