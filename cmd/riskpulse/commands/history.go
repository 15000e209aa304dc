package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// historyCmd represents the history command.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Print the crash-probability trend",
	Long: `Lists the recorded (date, score) trend sorted by date ascending.

Example:
  go run ./cmd/riskpulse history`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime()
	if err != nil {
		return err
	}
	defer rt.Close()

	entries := rt.history.ReadAll(context.Background())
	if len(entries) == 0 {
		fmt.Println("No history yet. Run an evaluation to start tracking the trend.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tSCORE")
	for _, entry := range entries {
		fmt.Fprintf(w, "%s\t%d%%\n", entry.Date, entry.Score)
	}
	w.Flush()

	return nil
}
