package paycal

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestDecodeBackup(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"array", `[1]`, ErrInvalidSnapshot},
		{"null", `null`, ErrInvalidSnapshot},
		{"string", `"x"`, ErrInvalidSnapshot},
		{"garbage", `{`, ErrInvalidSnapshot},
		{"mismatch", `{"projectKey": "single-project-v1"}`, ErrProjectMismatch},
		{"no project key", `{"overrides": {}}`, nil},
		{"same project key", `{"projectKey": "multi-projects-v1"}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeBackup([]byte(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("DecodeBackup() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSnapshot_RoundTrip(t *testing.T) {
	s := mustSchedule(t, mustDecode(t, "", alphaDataset))
	st := DefaultSettings(s)
	st.Currency = UAH
	o := Overrides{"alpha:3": {Status: Early, Note: "bonus"}}
	now := time.Date(2026, 2, 5, 10, 0, 0, 0, time.UTC)

	data, err := json.Marshal(NewSnapshot(st, o, now))
	if err != nil {
		t.Fatal(err)
	}
	b, err := DecodeBackup(data)
	if err != nil {
		t.Fatalf("DecodeBackup() error = %v", err)
	}
	if b.ProjectKey != CalendarKey || b.SavedAt != "2026-02-05T10:00:00Z" || !b.HasOverrides {
		t.Errorf("DecodeBackup() = %+v", b)
	}
	if got := b.Overrides.Get("alpha:3"); got != o["alpha:3"] {
		t.Errorf("override = %+v, want %+v", got, o["alpha:3"])
	}
	restored := DefaultSettings(s)
	if err := restored.Merge(s, b.Settings); err != nil {
		t.Fatal(err)
	}
	if restored.Currency != UAH {
		t.Errorf("restored currency = %q", restored.Currency)
	}
}
