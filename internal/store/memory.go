package store

import (
	"context"
	"sort"
	"sync"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

// MemorySnapshotStore holds the last snapshot in memory. Used as a
// test double and for dry-run evaluations.
type MemorySnapshotStore struct {
	mu   sync.Mutex
	snap *contracts.Snapshot
}

// NewMemorySnapshotStore creates an empty in-memory snapshot store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// Load returns the stored snapshot, or the empty snapshot when none
// has been saved yet.
func (s *MemorySnapshotStore) Load(ctx context.Context) contracts.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap == nil {
		return contracts.EmptySnapshot()
	}

	// Copy the tier map so callers cannot mutate stored state.
	tiers := make(map[string]contracts.Tier, len(s.snap.Tiers))
	for name, tier := range s.snap.Tiers {
		tiers[name] = tier
	}
	return contracts.Snapshot{Score: s.snap.Score, Tiers: tiers}
}

// Save overwrites the stored snapshot.
func (s *MemorySnapshotStore) Save(ctx context.Context, snap contracts.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snap = &snap
	return nil
}

// MemoryHistoryLog holds history entries in memory, keyed by date.
type MemoryHistoryLog struct {
	mu      sync.Mutex
	entries map[string]int
}

// NewMemoryHistoryLog creates an empty in-memory history log.
func NewMemoryHistoryLog() *MemoryHistoryLog {
	return &MemoryHistoryLog{entries: make(map[string]int)}
}

// Append records an entry, replacing any earlier entry for the date.
func (h *MemoryHistoryLog) Append(ctx context.Context, entry contracts.HistoryEntry) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[entry.Date] = entry.Score
	return nil
}

// ReadAll returns all entries sorted by date ascending.
func (h *MemoryHistoryLog) ReadAll(ctx context.Context) []contracts.HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()

	entries := make([]contracts.HistoryEntry, 0, len(h.entries))
	for date, score := range h.entries {
		entries = append(entries, contracts.HistoryEntry{Date: date, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	return entries
}
