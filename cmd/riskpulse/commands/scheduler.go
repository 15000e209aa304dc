package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomvannes/riskpulse/internal/scheduler"
	"github.com/tomvannes/riskpulse/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command.
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run periodic evaluations on a cron schedule",
	Long: `Starts the cron scheduler and evaluates the signal set on the
EVALUATE_CRON schedule (hourly by default).

Example:
  go run ./cmd/riskpulse scheduler
  EVALUATE_CRON="0 */30 * * * *" go run ./cmd/riskpulse scheduler`,
	RunE: runScheduler,
}

var schedulerRunNow bool

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().BoolVar(&schedulerRunNow, "run-now", false, "run one evaluation immediately on startup")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	sched := scheduler.New(rt.log)

	job := jobs.NewEvaluateJob(rt.collector, rt.evaluator, nil, rt.cfg.EvaluateCron, rt.log)
	if err := sched.AddJob(job); err != nil {
		return fmt.Errorf("add evaluation job: %w", err)
	}

	sched.Start()
	defer sched.Stop()

	if schedulerRunNow {
		if err := sched.RunJob(job.Name()); err != nil {
			return err
		}
	}

	fmt.Printf("Scheduler running (schedule: %s)\n", rt.cfg.EvaluateCron)
	fmt.Println("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	return nil
}
