package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/tomvannes/riskpulse/internal/contracts"
)

// evaluateCmd represents the evaluate command.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate",
	Short: "Run one evaluation and print the signal table",
	Long: `Collects the current signal readings, classifies them, computes the
crash-probability score and diffs against the previous run. The
snapshot and history files are updated.

Example:
  go run ./cmd/riskpulse evaluate`,
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	ctx := context.Background()
	values := rt.collector.Collect(ctx)
	result := rt.evaluator.Evaluate(ctx, values, time.Now())

	printEvaluation(result)
	return nil
}

func printEvaluation(result *contracts.Evaluation) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "SIGNAL\tCURRENT\tSTATUS\tLAST\tCHANGE")
	for _, row := range result.Rows {
		prior := string(row.PriorTier)
		if prior == "" {
			prior = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", row.Name, row.Value, row.Tier, prior, row.Marker)
	}
	w.Flush()

	deltaTxt := ""
	if result.PriorScore != nil && result.Delta != nil {
		abs := *result.Delta
		if abs < 0 {
			abs = -abs
		}
		deltaTxt = fmt.Sprintf(" (Prev %d%% %s %dpp)", *result.PriorScore, result.Arrow, abs)
	}

	fmt.Println()
	if result.Critical {
		fmt.Printf("CRITICAL RISK: Crash Probability %d%%%s - ACTION REQUIRED\n", result.Score, deltaTxt)
	} else {
		fmt.Printf("System stable: Crash Probability %d%%%s\n", result.Score, deltaTxt)
	}

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}
}
