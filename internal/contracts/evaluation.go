package contracts

// Snapshot is the persisted result of the previous evaluation: the
// aggregate score plus the tier of every signal, keyed by signal name.
// Exactly one snapshot is persisted; each evaluation overwrites it.
// The JSON field names match the legacy dashboard snapshot file so an
// existing last_snapshot.json keeps working.
type Snapshot struct {
	Score *int            `json:"crash_probability"`
	Tiers map[string]Tier `json:"statuses"`
}

// EmptySnapshot is the well-defined zero state returned when no prior
// snapshot exists or the persisted one is unreadable.
func EmptySnapshot() Snapshot {
	return Snapshot{Tiers: make(map[string]Tier)}
}

// HistoryEntry is one (date, score) point of the crash-probability
// trend. Dates are calendar days formatted as "2006-01-02"; at most
// one entry exists per date.
type HistoryEntry struct {
	Date  string `json:"date"`
	Score int    `json:"crash_probability"`
}

// SignalRow is one row of the evaluated signal table handed to the
// presentation layer.
type SignalRow struct {
	Name      string   `json:"name"`
	Raw       RawValue `json:"raw"`
	Value     string   `json:"value"` // formatted for display
	Tier      Tier     `json:"tier"`
	PriorTier Tier     `json:"prior_tier,omitempty"`
	Change    Change   `json:"change"`
	Marker    string   `json:"marker"`
}

// Evaluation is the full output of one evaluation run.
type Evaluation struct {
	Date       string         `json:"date"`
	Rows       []SignalRow    `json:"rows"`
	Score      int            `json:"score"`
	PriorScore *int           `json:"prior_score,omitempty"`
	Delta      *int           `json:"delta,omitempty"`
	Direction  Direction      `json:"direction"`
	Arrow      string         `json:"arrow"`
	Critical   bool           `json:"critical"`
	Warnings   []string       `json:"warnings,omitempty"`
	History    []HistoryEntry `json:"history"`
}

// TierCounts returns how many rows sit in each tier.
func (e *Evaluation) TierCounts() map[Tier]int {
	counts := make(map[Tier]int)
	for _, row := range e.Rows {
		counts[row.Tier]++
	}
	return counts
}
