package contracts

import "context"

// SnapshotStore persists the single most recent snapshot.
//
// Load fails soft: a missing or corrupt persisted snapshot yields the
// empty snapshot, never an error. Save is unconditional and always
// overwrites; its error is surfaced to the caller as a warning, not a
// failure of the evaluation.
type SnapshotStore interface {
	Load(ctx context.Context) Snapshot
	Save(ctx context.Context, snap Snapshot) error
}

// HistoryLog is the append-only-with-dedup (date, score) time series.
//
// Append is idempotent per date: a later write for the same date
// replaces the earlier entry. ReadAll returns entries sorted by date
// ascending with duplicate dates collapsed keep-latest; a corrupt log
// yields an empty slice, never an error.
type HistoryLog interface {
	Append(ctx context.Context, entry HistoryEntry) error
	ReadAll(ctx context.Context) []HistoryEntry
}

// Provider is the acquisition boundary. It resolves every tracked
// signal to a RawValue; sources that fail or have no reading resolve
// to Absent rather than an error.
type Provider interface {
	Collect(ctx context.Context) map[string]RawValue
}
