package paycal

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category classifies a payment record.
type Category string

const (
	Mortgage Category = "mortgage" // core installment obligation
	Initial  Category = "initial"  // initial installment
	Fee      Category = "fee"
	Utility  Category = "utility"
	Other    Category = "other"
)

// ParseCategory folds a raw category key, empty is Mortgage and anything unknown is Other.
func ParseCategory(s string) Category {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return Mortgage
	case Mortgage, Initial, Fee, Utility, Other:
		return c
	default:
		return Other
	}
}

// Flags are markers set by the source data.
type Flags struct {
	Initial bool `json:"initial,omitempty"` // the record is the initial installment
	Early   bool `json:"early,omitempty"`   // the source already flagged it as paid early
}

// PaymentRecord is one planned payment of a project.
//
// It is immutable once loaded.
type PaymentRecord struct {
	ID                 string   `json:"id"`
	ProjectKey         string   `json:"project_key"`
	ProjectName        string   `json:"project_name,omitempty"`
	Category           Category `json:"category_key"`
	DueDate            Date     `json:"due_date"`
	DueLabel           string   `json:"due_label,omitempty"`
	PeriodYear         int      `json:"period_year,omitempty"`
	PeriodMonth        int      `json:"period_month,omitempty"`
	MonthIndex         int      `json:"month_index,omitempty"`
	ScheduleUSD        Number   `json:"schedule_usd"`
	FactUSD            Number   `json:"fact_usd"`
	FactUAH            Number   `json:"fact_uah"`
	Rate               Number   `json:"rate"`
	Status             string   `json:"status"`
	PaymentDate        string   `json:"payment_date,omitempty"`
	Note               string   `json:"note,omitempty"`
	ExcludeFromSummary bool     `json:"exclude_from_summary,omitempty"`
	Flags              Flags    `json:"flags"`
}

// Key returns the globally unique key of the record.
func (r *PaymentRecord) Key() string { return RecordKey(r.ProjectKey, r.ID) }

// RecordKey builds the globally unique key "project:id".
func RecordKey(project, id string) string { return project + ":" + id }

// Year returns the period year, derived from the due date when not explicit.
func (r *PaymentRecord) Year() int {
	if r.PeriodYear > 0 {
		return r.PeriodYear
	}
	if !r.DueDate.IsZero() {
		return r.DueDate.Year()
	}
	return 0
}

// Month returns the period month in [1..12], derived from the due date when not explicit.
// It returns 0 when unknown.
func (r *PaymentRecord) Month() int {
	if r.PeriodMonth >= 1 && r.PeriodMonth <= 12 {
		return r.PeriodMonth
	}
	if !r.DueDate.IsZero() {
		return int(r.DueDate.Month())
	}
	return 0
}

// IsPast reports whether the record's period is strictly before the current month.
func (r *PaymentRecord) IsPast(today Date) bool {
	start := today.StartOf(Monthly)
	if !r.DueDate.IsZero() {
		return r.DueDate.Before(start)
	}
	year, month := r.Year(), r.Month()
	if month == 0 {
		month = 1
	}
	if year < start.Year() {
		return true
	}
	return year == start.Year() && month < int(start.Month())
}

// Title is a readable name of the record.
func (r *PaymentRecord) Title() string {
	if r.Flags.Initial {
		return "Initial installment"
	}
	if !r.DueDate.IsZero() {
		return fmt.Sprintf("%s %d", r.DueDate.Month(), r.DueDate.Year())
	}
	if r.DueLabel != "" {
		return r.DueLabel
	}
	return "Payment #" + r.ID
}

// UnmarshalJSON decodes a record from the dataset format.
//
// Ids can be numbers or strings, dates that cannot be parsed are ignored and
// numbers are lenient (see [Number]).
func (r *PaymentRecord) UnmarshalJSON(data []byte) error {
	type plain PaymentRecord
	var raw struct {
		plain
		ID          json.RawMessage `json:"id"`
		DueDate     *string         `json:"due_date"`
		PeriodYear  Number          `json:"period_year"`
		PeriodMonth Number          `json:"period_month"`
		MonthIndex  Number          `json:"month_index"`
		Category    string          `json:"category_key"`
		PaymentDate *string         `json:"payment_date"`
		Note        *string         `json:"note"`
		DueLabel    *string         `json:"due_label"`
		Status      *string         `json:"status"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*r = PaymentRecord(raw.plain)
	r.ID = scalarString(raw.ID)
	r.Category = ParseCategory(raw.Category)
	r.DueDate = Date{}
	if raw.DueDate != nil {
		if d, err := parseDataDate(*raw.DueDate); err == nil {
			r.DueDate = d
		}
	}
	r.PeriodYear = intOf(raw.PeriodYear)
	r.PeriodMonth = intOf(raw.PeriodMonth)
	r.MonthIndex = intOf(raw.MonthIndex)
	r.PaymentDate = strOf(raw.PaymentDate)
	r.Note = strOf(raw.Note)
	r.DueLabel = strOf(raw.DueLabel)
	r.Status = strOf(raw.Status)
	return nil
}

func intOf(n Number) int {
	d, ok := n.Decimal()
	if !ok {
		return 0
	}
	return int(d.IntPart())
}

func strOf(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}

// monthName is the English name of month m in [1..12].
func monthName(m int) string { return time.Month(m).String() }
