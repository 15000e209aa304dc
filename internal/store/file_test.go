package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/pkg/logger"
)

func TestFileSnapshotStore_LoadMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_snapshot.json")
	store := NewFileSnapshotStore(path, logger.Nop())

	snap := store.Load(context.Background())
	assert.Nil(t, snap.Score)
	assert.Empty(t, snap.Tiers)
}

func TestFileSnapshotStore_LoadCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_snapshot.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewFileSnapshotStore(path, logger.Nop())

	// Corrupt state resets to the empty snapshot, never panics or errors.
	snap := store.Load(context.Background())
	assert.Nil(t, snap.Score)
	assert.Empty(t, snap.Tiers)
}

func TestFileSnapshotStore_SaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "last_snapshot.json")
	store := NewFileSnapshotStore(path, logger.Nop())
	ctx := context.Background()

	first := 35
	require.NoError(t, store.Save(ctx, contracts.Snapshot{
		Score: &first,
		Tiers: map[string]contracts.Tier{"VIX (Volatility Index)": contracts.TierGreen},
	}))

	second := 60
	require.NoError(t, store.Save(ctx, contracts.Snapshot{
		Score: &second,
		Tiers: map[string]contracts.Tier{"VIX (Volatility Index)": contracts.TierRed},
	}))

	snap := store.Load(ctx)
	require.NotNil(t, snap.Score)
	assert.Equal(t, 60, *snap.Score)
	assert.Equal(t, contracts.TierRed, snap.Tiers["VIX (Volatility Index)"])
}

func TestFileSnapshotStore_LegacyLayout(t *testing.T) {
	// Snapshot files written by the previous dashboard keep working.
	path := filepath.Join(t.TempDir(), "last_snapshot.json")
	legacy := `{"crash_probability": 35, "statuses": {"VIX (Volatility Index)": "Amber"}}`
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	store := NewFileSnapshotStore(path, logger.Nop())
	snap := store.Load(context.Background())

	require.NotNil(t, snap.Score)
	assert.Equal(t, 35, *snap.Score)
	assert.Equal(t, contracts.TierAmber, snap.Tiers["VIX (Volatility Index)"])
}

func TestCSVHistoryLog_AppendAndRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash_history.csv")
	log := NewCSVHistoryLog(path, logger.Nop())
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, contracts.HistoryEntry{Date: "2026-08-30", Score: 20}))
	require.NoError(t, log.Append(ctx, contracts.HistoryEntry{Date: "2026-08-29", Score: 15}))
	require.NoError(t, log.Append(ctx, contracts.HistoryEntry{Date: "2026-08-31", Score: 35}))

	entries := log.ReadAll(ctx)
	require.Len(t, entries, 3)
	// Sorted by date ascending regardless of append order.
	assert.Equal(t, "2026-08-29", entries[0].Date)
	assert.Equal(t, "2026-08-30", entries[1].Date)
	assert.Equal(t, "2026-08-31", entries[2].Date)
}

func TestCSVHistoryLog_AppendIdempotentPerDate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash_history.csv")
	log := NewCSVHistoryLog(path, logger.Nop())
	ctx := context.Background()

	require.NoError(t, log.Append(ctx, contracts.HistoryEntry{Date: "2026-08-31", Score: 20}))
	require.NoError(t, log.Append(ctx, contracts.HistoryEntry{Date: "2026-08-31", Score: 38}))

	entries := log.ReadAll(ctx)
	require.Len(t, entries, 1, "same-date append must replace")
	assert.Equal(t, 38, entries[0].Score)
}

func TestCSVHistoryLog_ReadCollapsesDuplicates(t *testing.T) {
	// A file with accidental duplicate dates collapses keep-latest.
	path := filepath.Join(t.TempDir(), "crash_history.csv")
	raw := "date,crash_probability\n2026-08-30,20\n2026-08-31,25\n2026-08-30,30\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	log := NewCSVHistoryLog(path, logger.Nop())
	entries := log.ReadAll(context.Background())

	require.Len(t, entries, 2)
	assert.Equal(t, contracts.HistoryEntry{Date: "2026-08-30", Score: 30}, entries[0])
	assert.Equal(t, contracts.HistoryEntry{Date: "2026-08-31", Score: 25}, entries[1])
}

func TestCSVHistoryLog_SkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crash_history.csv")
	raw := "date,crash_probability\n2026-08-30,20\ngarbage,not-a-number\n2026-08-31,35\n"
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	log := NewCSVHistoryLog(path, logger.Nop())
	entries := log.ReadAll(context.Background())

	require.Len(t, entries, 2)
	assert.Equal(t, 20, entries[0].Score)
	assert.Equal(t, 35, entries[1].Score)
}

func TestCSVHistoryLog_MissingFile(t *testing.T) {
	log := NewCSVHistoryLog(filepath.Join(t.TempDir(), "nope.csv"), logger.Nop())
	assert.Empty(t, log.ReadAll(context.Background()))
}

func TestMemoryStores(t *testing.T) {
	ctx := context.Background()

	snapshots := NewMemorySnapshotStore()
	snap := snapshots.Load(ctx)
	assert.Nil(t, snap.Score)

	score := 42
	require.NoError(t, snapshots.Save(ctx, contracts.Snapshot{
		Score: &score,
		Tiers: map[string]contracts.Tier{"USD reserve share": contracts.TierGreen},
	}))

	loaded := snapshots.Load(ctx)
	require.NotNil(t, loaded.Score)
	assert.Equal(t, 42, *loaded.Score)

	// Mutating the loaded copy must not affect stored state.
	loaded.Tiers["USD reserve share"] = contracts.TierRed
	assert.Equal(t, contracts.TierGreen, snapshots.Load(ctx).Tiers["USD reserve share"])

	history := NewMemoryHistoryLog()
	require.NoError(t, history.Append(ctx, contracts.HistoryEntry{Date: "2026-08-31", Score: 10}))
	require.NoError(t, history.Append(ctx, contracts.HistoryEntry{Date: "2026-08-31", Score: 20}))
	require.NoError(t, history.Append(ctx, contracts.HistoryEntry{Date: "2026-08-30", Score: 5}))

	entries := history.ReadAll(ctx)
	require.Len(t, entries, 2)
	assert.Equal(t, contracts.HistoryEntry{Date: "2026-08-30", Score: 5}, entries[0])
	assert.Equal(t, contracts.HistoryEntry{Date: "2026-08-31", Score: 20}, entries[1])
}
