package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/pkg/logger"
)

const csvHeader = "date,crash_probability"

// CSVHistoryLog persists the (date, score) trend as a CSV file in the
// legacy dashboard layout. The file only grows across distinct dates;
// a rewrite for the same date replaces the earlier row.
type CSVHistoryLog struct {
	path   string
	logger *logger.Logger
}

// NewCSVHistoryLog creates a file-backed history log.
func NewCSVHistoryLog(path string, log *logger.Logger) *CSVHistoryLog {
	return &CSVHistoryLog{path: path, logger: log}
}

// Append records an entry, replacing any earlier entry for the same
// date, and rewrites the file sorted by date ascending.
func (h *CSVHistoryLog) Append(ctx context.Context, entry contracts.HistoryEntry) error {
	entries := h.ReadAll(ctx)

	kept := entries[:0]
	for _, e := range entries {
		if e.Date != entry.Date {
			kept = append(kept, e)
		}
	}
	kept = append(kept, entry)

	sort.Slice(kept, func(i, j int) bool {
		return kept[i].Date < kept[j].Date
	})

	return h.writeAll(kept)
}

// ReadAll parses the history file: entries sorted by date ascending,
// duplicate dates collapsed keep-latest, malformed rows skipped. A
// missing or unreadable file yields an empty history.
func (h *CSVHistoryLog) ReadAll(ctx context.Context) []contracts.HistoryEntry {
	data, err := os.ReadFile(h.path)
	if err != nil {
		if !os.IsNotExist(err) {
			h.logger.WithError(err).Warn("History file unreadable, starting empty")
		}
		return nil
	}

	reader := csv.NewReader(strings.NewReader(string(data)))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		h.logger.WithError(err).Warn("History file corrupt, starting empty")
		return nil
	}

	latest := make(map[string]int)
	for i, record := range records {
		if len(record) < 2 {
			continue
		}
		if i == 0 && record[0] == "date" {
			continue // header
		}

		score, err := strconv.Atoi(strings.TrimSpace(record[1]))
		if err != nil {
			h.logger.WithField("row", record).Warn("Skipping malformed history row")
			continue
		}

		// Later rows win for duplicate dates.
		latest[strings.TrimSpace(record[0])] = score
	}

	entries := make([]contracts.HistoryEntry, 0, len(latest))
	for date, score := range latest {
		entries = append(entries, contracts.HistoryEntry{Date: date, Score: score})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})

	return entries
}

func (h *CSVHistoryLog) writeAll(entries []contracts.HistoryEntry) error {
	var sb strings.Builder
	sb.WriteString(csvHeader)
	sb.WriteByte('\n')
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%s,%d\n", e.Date, e.Score))
	}

	if err := os.WriteFile(h.path, []byte(sb.String()), 0o644); err != nil {
		return fmt.Errorf("write history file: %w", err)
	}

	return nil
}
