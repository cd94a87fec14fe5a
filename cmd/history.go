package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"docsort/pkg/taxonomy"
)

var historyLimit int

// historyCmd lists recent batch runs from the history store.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent batch runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		if appInstance.History == nil {
			return fmt.Errorf("run history is disabled (history.path is empty)")
		}

		runs, err := appInstance.History.ListRuns(ctx, historyLimit)
		if err != nil {
			return fmt.Errorf("failed to load run history: %w", err)
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded yet.")
			return nil
		}

		table := tablewriter.NewWriter(os.Stdout)
		table.SetHeader([]string{"Run", "Started", "Files", "Errors", "Root"})
		for _, run := range runs {
			table.Append([]string{
				run.ID[:8],
				run.StartedAt.Format(time.RFC3339),
				fmt.Sprint(run.TotalFiles()),
				fmt.Sprint(run.Counts[taxonomy.ErrorFiles]),
				run.RootDir,
			})
		}
		table.Render()
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
