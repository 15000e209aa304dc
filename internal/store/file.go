package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/pkg/logger"
)

// FileSnapshotStore persists the last snapshot as a single JSON file,
// in the same layout the legacy dashboard wrote (crash_probability +
// statuses).
type FileSnapshotStore struct {
	path   string
	logger *logger.Logger
}

// NewFileSnapshotStore creates a file-backed snapshot store.
func NewFileSnapshotStore(path string, log *logger.Logger) *FileSnapshotStore {
	return &FileSnapshotStore{path: path, logger: log}
}

// Load reads the persisted snapshot. A missing file is the normal
// first-run case; a corrupt file is logged and reset. Neither is an
// error to the caller.
func (s *FileSnapshotStore) Load(ctx context.Context) contracts.Snapshot {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.WithError(err).Warn("Snapshot file unreadable, resetting to empty")
		}
		return contracts.EmptySnapshot()
	}

	var snap contracts.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.WithError(err).Warn("Snapshot file corrupt, resetting to empty")
		return contracts.EmptySnapshot()
	}

	if snap.Tiers == nil {
		snap.Tiers = make(map[string]contracts.Tier)
	}

	return snap
}

// Save overwrites the snapshot file.
func (s *FileSnapshotStore) Save(ctx context.Context, snap contracts.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}

	return nil
}
