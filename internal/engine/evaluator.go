package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/internal/signals"
	"github.com/tomvannes/riskpulse/pkg/logger"
)

// DateFormat is the day-granularity key for history entries.
const DateFormat = "2006-01-02"

// Evaluator runs one full evaluation: classify every catalog signal,
// aggregate the score, diff against the last snapshot, then persist.
// The snapshot store and history log are injected so callers (and
// tests) control where state lives.
type Evaluator struct {
	catalog    []signals.Definition
	snapshots  contracts.SnapshotStore
	history    contracts.HistoryLog
	criticalAt int
	logger     *logger.Logger
}

// NewEvaluator creates a new evaluator.
func NewEvaluator(
	catalog []signals.Definition,
	snapshots contracts.SnapshotStore,
	history contracts.HistoryLog,
	criticalAt int,
	log *logger.Logger,
) *Evaluator {
	return &Evaluator{
		catalog:    catalog,
		snapshots:  snapshots,
		history:    history,
		criticalAt: criticalAt,
		logger:     log,
	}
}

// Evaluate classifies the resolved raw values and produces the full
// evaluation result. Persistent state is only touched after the whole
// result is computed: a crash mid-computation leaves the prior
// snapshot and history untouched. Persistence failures degrade to
// warnings on the result; no error here is fatal.
func (e *Evaluator) Evaluate(ctx context.Context, raw map[string]contracts.RawValue, now time.Time) *contracts.Evaluation {
	last := e.snapshots.Load(ctx)

	// Classify every catalog signal in display order. Signals the
	// provider did not resolve classify as absent.
	rows := make([]contracts.SignalRow, 0, len(e.catalog))
	tiers := make(map[string]contracts.Tier, len(e.catalog))
	for _, def := range e.catalog {
		value, ok := raw[def.Name]
		if !ok {
			value = contracts.Absent()
		}

		tier := def.Classify(value)
		tiers[def.Name] = tier

		prior := last.Tiers[def.Name]
		change := CompareTiers(prior, tier)

		rows = append(rows, contracts.SignalRow{
			Name:      def.Name,
			Raw:       value,
			Value:     def.Format(value),
			Tier:      tier,
			PriorTier: prior,
			Change:    change,
			Marker:    change.Marker(),
		})
	}

	score := Score(tiers, len(e.catalog))

	result := &contracts.Evaluation{
		Date:      now.Format(DateFormat),
		Rows:      rows,
		Score:     score,
		Direction: contracts.DirectionFlat,
		Critical:  score >= e.criticalAt,
	}

	if delta, dir, ok := ScoreDelta(last.Score, score); ok {
		result.PriorScore = last.Score
		result.Delta = &delta
		result.Direction = dir
	}
	result.Arrow = result.Direction.Arrow()

	// Persist only now that the result is fully computed. Each write
	// happens exactly once per evaluation; failures become warnings.
	if err := e.history.Append(ctx, contracts.HistoryEntry{Date: result.Date, Score: score}); err != nil {
		e.warn(result, fmt.Sprintf("could not append history: %v", err))
	}

	snapshot := contracts.Snapshot{Score: &score, Tiers: tiers}
	if err := e.snapshots.Save(ctx, snapshot); err != nil {
		e.warn(result, fmt.Sprintf("could not save snapshot: %v", err))
	}

	result.History = e.history.ReadAll(ctx)

	e.logger.WithFields(map[string]interface{}{
		"date":     result.Date,
		"score":    score,
		"critical": result.Critical,
		"warnings": len(result.Warnings),
	}).Info("Evaluation completed")

	return result
}

func (e *Evaluator) warn(result *contracts.Evaluation, msg string) {
	result.Warnings = append(result.Warnings, msg)
	e.logger.Warn(msg)
}
