package paycal

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := NewDate(2025, 7, 31)
	d2 := NewDate(2025, 7, 31)

	if d1.time() != d2.time() {
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	today := Today()
	currentYear := today.Year()
	currentMonth := today.Month()

	tests := []struct {
		input    string
		expected Date
		err      bool
	}{
		// Standard ISO Format (Fallback)
		{"2025-01-15", NewDate(2025, time.January, 15), false},
		{"2025-7-1", NewDate(2025, time.July, 1), false},
		{"2025-07-01T10:00:00Z", NewDate(2025, time.July, 1), false},
		{"invalid-date", Date{}, true},

		// Relative Duration Format
		{"-1d", today.Add(-1), false},
		{"+1d", today.Add(1), false},
		{"1d", Date{}, true},
		{"-0d", today, false},
		{"-2w", today.Add(-14), false},
		{"+1m", NewDate(currentYear, currentMonth+1, today.Day()), false},
		{"-3q", NewDate(currentYear, currentMonth-9, today.Day()), false},
		{"+1y", NewDate(currentYear+1, currentMonth, today.Day()), false},

		// [MM-]DD Format
		{"27", NewDate(currentYear, currentMonth, 27), false},
		{fmt.Sprintf("%d-27", currentMonth), NewDate(currentYear, currentMonth, 27), false},
		{"0", NewDate(currentYear, currentMonth, 0), false}, // Last day of previous month
		{"1-15", NewDate(currentYear, time.January, 15), false},
		{"0-15", NewDate(currentYear-1, time.December, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.err {
				t.Errorf("Parse(%q) error = %v, wantErr %v", tt.input, err, tt.err)
				return
			}
			if !tt.err && got != tt.expected {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestStartEndOf(t *testing.T) {
	d := NewDate(2026, time.May, 17)
	tests := []struct {
		period     Period
		start, end Date
	}{
		{Monthly, NewDate(2026, time.May, 1), NewDate(2026, time.May, 31)},
		{Quarterly, NewDate(2026, time.April, 1), NewDate(2026, time.June, 30)},
		{Yearly, NewDate(2026, time.January, 1), NewDate(2026, time.December, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.period.String(), func(t *testing.T) {
			if got := d.StartOf(tt.period); got != tt.start {
				t.Errorf("StartOf(%v) = %v, want %v", tt.period, got, tt.start)
			}
			if got := d.EndOf(tt.period); got != tt.end {
				t.Errorf("EndOf(%v) = %v, want %v", tt.period, got, tt.end)
			}
		})
	}
}

func TestDate_JSON(t *testing.T) {
	tests := []struct {
		input   string
		want    Date
		wantErr bool
	}{
		{`"2026-03-15"`, NewDate(2026, time.March, 15), false},
		{`null`, Date{}, false},
		{`""`, Date{}, false},
		{`"15/03/2026"`, Date{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var got Date
			err := json.Unmarshal([]byte(tt.input), &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Unmarshal(%s) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}

	data, _ := json.Marshal(struct{ D, Z Date }{D: NewDate(2026, time.March, 5)})
	if want := `{"D":"2026-03-05","Z":null}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"", Monthly, false},
		{"month", Monthly, false},
		{"Quarter", Quarterly, false},
		{"yearly", Yearly, false},
		{"week", Monthly, true},
	}
	for _, tt := range tests {
		got, err := ParsePeriod(tt.input)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePeriod(%q) = %v, %v, want %v (err %v)", tt.input, got, err, tt.want, tt.wantErr)
		}
	}
}
