package paycal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const (
	// SnapshotVersion is the version of the backup format.
	SnapshotVersion = 4
	// CalendarKey identifies the calendar a backup belongs to.
	CalendarKey = "multi-projects-v1"
	// MaxSnapshotHistory bounds the number of snapshots kept in history.
	MaxSnapshotHistory = 40
)

// Snapshot is a full backup of the user state of the calendar.
type Snapshot struct {
	Version        int       `json:"version"`
	ProjectKey     string    `json:"projectKey"`
	SourceProjects []string  `json:"sourceProjects"`
	SavedAt        time.Time `json:"savedAt"`
	Settings       Settings  `json:"settings"`
	Overrides      Overrides `json:"overrides"`
}

// NewSnapshot captures settings and overrides at time now.
func NewSnapshot(st Settings, o Overrides, now time.Time) Snapshot {
	return Snapshot{
		Version:        SnapshotVersion,
		ProjectKey:     CalendarKey,
		SourceProjects: st.SelectedProjects,
		SavedAt:        now.UTC(),
		Settings:       st,
		Overrides:      o.Clone(),
	}
}

// Backup is a decoded, not yet applied, snapshot payload.
//
// Settings are kept raw as they can only be validated against a schedule.
type Backup struct {
	ProjectKey string          `json:"projectKey"`
	SavedAt    string          `json:"savedAt"`
	Settings   json.RawMessage `json:"settings"`
	Overrides  Overrides       `json:"overrides"`
	// HasOverrides is false when the payload carries no override map at all.
	HasOverrides bool `json:"-"`
}

// DecodeBackup decodes and validates a snapshot payload.
//
// The payload must be a JSON object, ErrInvalidSnapshot is returned otherwise.
// A payload of another calendar is rejected with ErrProjectMismatch. A payload
// without project key is accepted.
func DecodeBackup(data []byte) (*Backup, error) {
	data = bytes.TrimSpace(data)
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, ErrInvalidSnapshot
	}

	b := new(Backup)
	if raw, ok := fields["projectKey"]; ok {
		key := scalarString(raw)
		if key != "" && key != CalendarKey {
			return nil, fmt.Errorf("%w: got %q, want %q", ErrProjectMismatch, key, CalendarKey)
		}
		b.ProjectKey = key
	}
	b.SavedAt = scalarString(fields["savedAt"])
	if raw, ok := fields["settings"]; ok && isObject(raw) {
		b.Settings = raw
	}
	if raw, ok := fields["overrides"]; ok && isObject(raw) {
		if err := json.Unmarshal(raw, &b.Overrides); err != nil {
			return nil, fmt.Errorf("%w: overrides: %w", ErrInvalidSnapshot, err)
		}
		b.HasOverrides = true
	}
	return b, nil
}

func isObject(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)
	return len(data) > 0 && data[0] == '{'
}
