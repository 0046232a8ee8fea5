package paycal

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

// dec is a helper for test to create decimals from const
func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// mustDecode is a helper for test to decode a dataset from a JSON string.
func mustDecode(t *testing.T, key, data string) *Dataset {
	t.Helper()
	ds, err := DecodeDataset(strings.NewReader(data), key, "")
	if err != nil {
		t.Fatalf("DecodeDataset(%s): %v", key, err)
	}
	return ds
}

// mustSchedule is a helper for test to build a schedule from datasets.
func mustSchedule(t *testing.T, datasets ...*Dataset) *Schedule {
	t.Helper()
	s, err := NewSchedule(datasets...)
	if err != nil {
		t.Fatalf("NewSchedule(): %v", err)
	}
	return s
}

// decEqual reports a test error when got and want are not equal decimals.
func decEqual(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

const alphaDataset = `{
  "project_key": "alpha",
  "project_name": "Alpha Tower",
  "payments": [
    {"id": 0, "category_key": "initial", "flags": {"initial": true}, "due_date": "2025-12-10", "schedule_usd": 5000, "fact_usd": 5000, "fact_uah": 206000, "rate": 41.2, "status": "paid"},
    {"id": 1, "due_date": "2026-01-10", "schedule_usd": 1000, "status": "unpaid"},
    {"id": 2, "due_date": "2026-02-10", "schedule_usd": 1000, "status": "partial"},
    {"id": 3, "due_date": "2026-03-10", "schedule_usd": 1000},
    {"id": 4, "due_date": "2026-04-10", "schedule_usd": 1000},
    {"id": 5, "category_key": "fee", "due_date": "2026-04-20", "schedule_usd": 150, "note": "notary"},
    {"id": 6, "due_date": "2026-05-10", "schedule_usd": 1000, "exclude_from_summary": true}
  ]
}`

const betaDataset = `{
  "project_key": "beta",
  "project_name": "Beta Park",
  "settlement": {"strategy": "amortization", "annual_rate": 0.12},
  "payments": [
    {"id": "b1", "period_year": 2026, "period_month": 2, "schedule_usd": 30, "rate": 40},
    {"id": "b2", "period_year": 2026, "period_month": 3, "schedule_usd": 29.75, "rate": 40},
    {"id": "b3", "period_year": 2026, "period_month": 4, "schedule_usd": 29.5, "rate": 40}
  ]
}`
