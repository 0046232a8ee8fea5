package paycal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/etnz/paycal/store"
	"github.com/rs/zerolog"
)

// Storage keys of the calendar state.
var (
	storageOverrides = "payment_calendar_overrides_v2_" + CalendarKey
	storageSettings  = "payment_calendar_settings_v2_" + CalendarKey
	storageSnapshot  = "payment_calendar_snapshot_v2_" + CalendarKey
	storageHistory   = "payment_calendar_snapshot_history_v2_" + CalendarKey
)

// legacyOverridesKey is the storage key of a project's overrides before
// they were merged into a single calendar.
func legacyOverridesKey(project string) string {
	return "payment_calendar_overrides_v1_" + project
}

// Storage persists JSON values by key.
//
// Get returns store.ErrNotFound for a missing key.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Tracker holds the user state of a calendar over an immutable schedule, and
// persists every change.
//
// It is not safe for concurrent use.
type Tracker struct {
	schedule  *Schedule
	storage   Storage
	log       zerolog.Logger
	now       func() time.Time
	overrides Overrides
	settings  Settings
	savedAt   string
}

// TrackerOption configures a Tracker.
type TrackerOption func(*Tracker)

// WithLogger sets the tracker logger, zerolog.Nop() by default.
func WithLogger(l zerolog.Logger) TrackerOption { return func(t *Tracker) { t.log = l } }

// WithClock sets the clock used for today and snapshot times.
func WithClock(now func() time.Time) TrackerOption { return func(t *Tracker) { t.now = now } }

// OpenTracker restores the state of a calendar from storage.
//
// Stored settings are applied first, then the last snapshot. When no override
// is found, legacy per-project overrides are migrated. Corrupted entries are
// logged and ignored.
func OpenTracker(ctx context.Context, s *Schedule, st Storage, opts ...TrackerOption) (*Tracker, error) {
	t := &Tracker{
		schedule:  s,
		storage:   st,
		log:       zerolog.Nop(),
		now:       time.Now,
		overrides: Overrides{},
		settings:  DefaultSettings(s),
	}
	for _, opt := range opts {
		opt(t)
	}

	if err := t.load(ctx, storageOverrides, &t.overrides); err != nil {
		return nil, err
	}
	if t.overrides == nil {
		t.overrides = Overrides{}
	}

	data, err := t.read(ctx, storageSettings)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if err := t.settings.Merge(s, data); err != nil {
			t.log.Warn().Err(err).Str("key", storageSettings).Msg("ignoring stored settings")
		}
	}

	data, err = t.read(ctx, storageSnapshot)
	if err != nil {
		return nil, err
	}
	if data != nil {
		if b, err := DecodeBackup(data); err != nil {
			t.log.Warn().Err(err).Str("key", storageSnapshot).Msg("ignoring stored snapshot")
		} else {
			t.apply(b)
		}
	}

	if err := t.migrateLegacy(ctx); err != nil {
		return nil, err
	}
	return t, nil
}

// read returns the value of key, or nil if missing.
func (t *Tracker) read(ctx context.Context, key string) ([]byte, error) {
	data, err := t.storage.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", key, err)
	}
	return data, nil
}

// load decodes the value of key into v. Missing or corrupted values leave v untouched.
func (t *Tracker) load(ctx context.Context, key string, v any) error {
	data, err := t.read(ctx, key)
	if err != nil || data == nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.log.Warn().Err(err).Str("key", key).Msg("ignoring corrupted entry")
	}
	return nil
}

func (t *Tracker) write(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	if err := t.storage.Set(ctx, key, data); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	t.log.Debug().Str("key", key).Int("bytes", len(data)).Msg("stored")
	return nil
}

func (t *Tracker) apply(b *Backup) {
	if b.Settings != nil {
		if err := t.settings.Merge(t.schedule, b.Settings); err != nil {
			t.log.Warn().Err(err).Msg("ignoring snapshot settings")
		}
	}
	if b.HasOverrides {
		t.overrides = Overrides{}
		for key, o := range b.Overrides {
			r := t.schedule.Record(key)
			if r == nil {
				// kept as is for a project missing from the loaded datasets
				t.overrides[key] = o
				continue
			}
			t.overrides.Put(key, o, BaseStatus(r, t.Today()))
		}
	}
	if b.SavedAt != "" {
		t.savedAt = b.SavedAt
	}
}

// migrateLegacy merges the per-project overrides of the previous format, only
// when no override exists yet. Record ids are prefixed with their project key.
func (t *Tracker) migrateLegacy(ctx context.Context) error {
	if len(t.overrides) > 0 {
		return nil
	}
	merged := Overrides{}
	for _, project := range t.schedule.ProjectKeys() {
		var legacy Overrides
		if err := t.load(ctx, legacyOverridesKey(project), &legacy); err != nil {
			return err
		}
		for id, o := range legacy {
			merged[RecordKey(project, id)] = o
		}
	}
	if len(merged) == 0 {
		return nil
	}
	t.overrides = merged
	t.log.Info().Int("count", len(merged)).Msg("migrated legacy overrides")
	return t.write(ctx, storageOverrides, t.overrides)
}

// Today is the current date of the tracker's clock.
func (t *Tracker) Today() Date { return NewDate(t.now().Date()) }

// Schedule returns the tracked schedule.
func (t *Tracker) Schedule() *Schedule { return t.schedule }

// Settings returns the current settings.
func (t *Tracker) Settings() Settings { return t.settings }

// Overrides returns a copy of the current overrides.
func (t *Tracker) Overrides() Overrides { return t.overrides.Clone() }

// LastSavedAt is the time of the last snapshot, as stored.
func (t *Tracker) LastSavedAt() string { return t.savedAt }

// Report computes the report of the current state.
func (t *Tracker) Report(f Filter) *Report {
	return Compute(Input{
		Schedule:  t.schedule,
		Overrides: t.overrides,
		Settings:  t.settings,
		Today:     t.Today(),
	}, f)
}

func (t *Tracker) record(key string) (*PaymentRecord, error) {
	r := t.schedule.Record(key)
	if r == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecord, key)
	}
	return r, nil
}

// UpdateOverride merges p into the override of a record and persists it.
// It returns the resulting override, empty if it was removed.
func (t *Tracker) UpdateOverride(ctx context.Context, key string, p Patch) (Override, error) {
	r, err := t.record(key)
	if err != nil {
		return Override{}, err
	}
	o := t.overrides.Update(key, p, BaseStatus(r, t.Today()))
	t.log.Debug().Str("record", key).Bool("removed", o.IsEmpty()).Msg("override updated")
	return o, t.persistOverrides(ctx)
}

// CycleStatus moves a record to the next status in the toggle order.
func (t *Tracker) CycleStatus(ctx context.Context, key string) (Status, error) {
	r, err := t.record(key)
	if err != nil {
		return "", err
	}
	today := t.Today()
	current := NormalizeStatus(r, t.overrides.Get(key).Status, today)
	next := current.Next()
	t.overrides.Update(key, Patch{Status: &next}, BaseStatus(r, today))
	if err := t.persistOverrides(ctx); err != nil {
		return "", err
	}
	return NormalizeStatus(r, t.overrides.Get(key).Status, today), nil
}

// ClearOverride removes the override of a record.
func (t *Tracker) ClearOverride(ctx context.Context, key string) error {
	if _, err := t.record(key); err != nil {
		return err
	}
	t.overrides.Delete(key)
	return t.persistOverrides(ctx)
}

// ResetOverrides removes all overrides.
func (t *Tracker) ResetOverrides(ctx context.Context) error {
	t.overrides.Reset()
	return t.persistOverrides(ctx)
}

// SetFXRate sets the global rate, an invalid rate is rejected and nothing changes.
func (t *Tracker) SetFXRate(ctx context.Context, n Number) error {
	if err := t.settings.SetFXRate(n); err != nil {
		return err
	}
	return t.persistSettings(ctx)
}

// SetCurrency sets the display currency.
func (t *Tracker) SetCurrency(ctx context.Context, cur Currency) error {
	if _, err := ParseCurrency(string(cur)); err != nil {
		return err
	}
	t.settings.Currency = cur
	return t.persistSettings(ctx)
}

// SelectProjects sets the selected projects, unknown keys are ignored.
func (t *Tracker) SelectProjects(ctx context.Context, keys ...string) error {
	t.settings.SelectProjects(t.schedule, keys...)
	return t.persistSettings(ctx)
}

// SetViewMode sets the rollup period and resets the selected period.
func (t *Tracker) SetViewMode(ctx context.Context, p Period) error {
	t.settings.SetViewMode(p)
	return t.persistSettings(ctx)
}

// SetFilter stores the selected year and period.
func (t *Tracker) SetFilter(ctx context.Context, year, period string) error {
	if err := t.settings.SetFilter(t.schedule, year, period); err != nil {
		return err
	}
	return t.persistSettings(ctx)
}

// Snapshot captures the current state.
func (t *Tracker) Snapshot() Snapshot { return NewSnapshot(t.settings, t.overrides, t.now()) }

// Import replaces the state with a backup payload.
//
// Invalid payloads are rejected with ErrInvalidSnapshot or ErrProjectMismatch
// and leave the state untouched.
func (t *Tracker) Import(ctx context.Context, data []byte) error {
	b, err := DecodeBackup(data)
	if err != nil {
		return err
	}
	t.apply(b)
	t.log.Info().Int("overrides", len(t.overrides)).Msg("backup imported")
	if err := t.write(ctx, storageOverrides, t.overrides); err != nil {
		return err
	}
	return t.persistSettings(ctx)
}

// History returns the stored snapshots, newest first.
func (t *Tracker) History(ctx context.Context) ([]Snapshot, error) {
	entries, err := t.history(ctx)
	if err != nil {
		return nil, err
	}
	var out []Snapshot
	for _, e := range entries {
		var s Snapshot
		if err := json.Unmarshal(e, &s); err != nil {
			t.log.Warn().Err(err).Msg("skipping corrupted history entry")
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

func (t *Tracker) history(ctx context.Context) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	if err := t.load(ctx, storageHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (t *Tracker) persistOverrides(ctx context.Context) error {
	if err := t.write(ctx, storageOverrides, t.overrides); err != nil {
		return err
	}
	return t.persistSnapshot(ctx)
}

func (t *Tracker) persistSettings(ctx context.Context) error {
	if err := t.write(ctx, storageSettings, t.settings); err != nil {
		return err
	}
	return t.persistSnapshot(ctx)
}

// persistSnapshot stores the current snapshot and pushes it on the history.
func (t *Tracker) persistSnapshot(ctx context.Context) error {
	snap := t.Snapshot()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("cannot encode snapshot: %w", err)
	}
	if err := t.storage.Set(ctx, storageSnapshot, data); err != nil {
		return fmt.Errorf("cannot write snapshot: %w", err)
	}
	t.savedAt = snap.SavedAt.Format(time.RFC3339Nano)

	entries, err := t.history(ctx)
	if err != nil {
		return err
	}
	entries = append([]json.RawMessage{data}, entries...)
	if len(entries) > MaxSnapshotHistory {
		entries = entries[:MaxSnapshotHistory]
	}
	return t.write(ctx, storageHistory, entries)
}
