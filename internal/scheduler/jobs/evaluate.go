package jobs

import (
	"context"
	"time"

	"github.com/tomvannes/riskpulse/internal/contracts"
	"github.com/tomvannes/riskpulse/internal/engine"
	"github.com/tomvannes/riskpulse/pkg/logger"
)

// Broadcaster pushes a completed evaluation to live subscribers.
type Broadcaster interface {
	Broadcast(v interface{})
}

// EvaluateJob runs the full evaluation pipeline on a cron schedule.
type EvaluateJob struct {
	provider    contracts.Provider
	evaluator   *engine.Evaluator
	broadcaster Broadcaster
	schedule    string
	logger      *logger.Logger
}

// NewEvaluateJob creates a new evaluation job. broadcaster may be nil
// when no live push is wanted.
func NewEvaluateJob(
	provider contracts.Provider,
	evaluator *engine.Evaluator,
	broadcaster Broadcaster,
	schedule string,
	log *logger.Logger,
) *EvaluateJob {
	return &EvaluateJob{
		provider:    provider,
		evaluator:   evaluator,
		broadcaster: broadcaster,
		schedule:    schedule,
		logger:      log,
	}
}

// Name returns the job name.
func (j *EvaluateJob) Name() string {
	return "risk_evaluation"
}

// Schedule returns the cron schedule expression.
func (j *EvaluateJob) Schedule() string {
	return j.schedule
}

// Run collects raw values and evaluates them. The evaluation itself
// never fails; persistence problems surface as warnings on the result.
func (j *EvaluateJob) Run(ctx context.Context) error {
	values := j.provider.Collect(ctx)
	result := j.evaluator.Evaluate(ctx, values, time.Now())

	for _, warning := range result.Warnings {
		j.logger.WithField("job", j.Name()).Warn(warning)
	}

	if j.broadcaster != nil {
		j.broadcaster.Broadcast(result)
	}

	j.logger.WithFields(map[string]interface{}{
		"score":    result.Score,
		"critical": result.Critical,
	}).Info("Scheduled evaluation completed")

	return nil
}
