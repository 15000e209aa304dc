package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/pkg/logger"
)

// Migrate creates the risk schema and tables used by the Postgres
// backends.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	statements := []string{
		`CREATE SCHEMA IF NOT EXISTS risk`,
		`CREATE TABLE IF NOT EXISTS risk.last_snapshot (
			id    int PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			score int,
			tiers jsonb NOT NULL DEFAULT '{}'::jsonb
		)`,
		`CREATE TABLE IF NOT EXISTS risk.history (
			date  date PRIMARY KEY,
			score int NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate risk schema: %w", err)
		}
	}

	return nil
}

// PostgresSnapshotStore persists the last snapshot as a singleton row.
type PostgresSnapshotStore struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewPostgresSnapshotStore creates a Postgres-backed snapshot store.
func NewPostgresSnapshotStore(pool *pgxpool.Pool, log *logger.Logger) *PostgresSnapshotStore {
	return &PostgresSnapshotStore{pool: pool, logger: log}
}

// Load reads the singleton snapshot row. No row is the normal
// first-run case; any read or decode failure resets to empty with a
// warning.
func (s *PostgresSnapshotStore) Load(ctx context.Context) contracts.Snapshot {
	query := `SELECT score, tiers FROM risk.last_snapshot WHERE id = 1`

	var score *int
	var tiersJSON []byte

	err := s.pool.QueryRow(ctx, query).Scan(&score, &tiersJSON)
	if err == pgx.ErrNoRows {
		return contracts.EmptySnapshot()
	}
	if err != nil {
		s.logger.WithError(err).Warn("Snapshot row unreadable, resetting to empty")
		return contracts.EmptySnapshot()
	}

	tiers := make(map[string]contracts.Tier)
	if err := json.Unmarshal(tiersJSON, &tiers); err != nil {
		s.logger.WithError(err).Warn("Snapshot tiers corrupt, resetting to empty")
		return contracts.EmptySnapshot()
	}

	return contracts.Snapshot{Score: score, Tiers: tiers}
}

// Save upserts the singleton snapshot row.
func (s *PostgresSnapshotStore) Save(ctx context.Context, snap contracts.Snapshot) error {
	tiersJSON, err := json.Marshal(snap.Tiers)
	if err != nil {
		return fmt.Errorf("marshal tiers: %w", err)
	}

	query := `
		INSERT INTO risk.last_snapshot (id, score, tiers)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET
			score = EXCLUDED.score,
			tiers = EXCLUDED.tiers
	`

	if _, err := s.pool.Exec(ctx, query, snap.Score, tiersJSON); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	return nil
}

// PostgresHistoryLog persists the trend in a table unique on date.
type PostgresHistoryLog struct {
	pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewPostgresHistoryLog creates a Postgres-backed history log.
func NewPostgresHistoryLog(pool *pgxpool.Pool, log *logger.Logger) *PostgresHistoryLog {
	return &PostgresHistoryLog{pool: pool, logger: log}
}

// Append upserts the entry for its date.
func (h *PostgresHistoryLog) Append(ctx context.Context, entry contracts.HistoryEntry) error {
	query := `
		INSERT INTO risk.history (date, score)
		VALUES ($1, $2)
		ON CONFLICT (date) DO UPDATE SET score = EXCLUDED.score
	`

	if _, err := h.pool.Exec(ctx, query, entry.Date, entry.Score); err != nil {
		return fmt.Errorf("append history: %w", err)
	}

	return nil
}

// ReadAll returns all entries sorted by date ascending. Read failures
// degrade to an empty history with a warning.
func (h *PostgresHistoryLog) ReadAll(ctx context.Context) []contracts.HistoryEntry {
	query := `SELECT to_char(date, 'YYYY-MM-DD'), score FROM risk.history ORDER BY date ASC`

	rows, err := h.pool.Query(ctx, query)
	if err != nil {
		h.logger.WithError(err).Warn("History query failed, returning empty")
		return nil
	}
	defer rows.Close()

	var entries []contracts.HistoryEntry
	for rows.Next() {
		var entry contracts.HistoryEntry
		if err := rows.Scan(&entry.Date, &entry.Score); err != nil {
			h.logger.WithError(err).Warn("Skipping unreadable history row")
			continue
		}
		entries = append(entries, entry)
	}

	return entries
}
