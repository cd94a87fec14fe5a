package cmd

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"docsort/internal/models"
	"docsort/pkg/taxonomy"
)

// sortCmd represents the batch processing command.
var sortCmd = &cobra.Command{
	Use:   "sort [directory]",
	Short: "Classify and sort every document under a directory",
	Long: `Recursively processes all files under the given directory: each file
is OCR'd, classified, moved into its category folder under the upload
root, and renamed with its TC/VKN identifier when one is found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		if _, err := os.Stat(dir); err != nil {
			return fmt.Errorf("directory %s not found: %w", dir, err)
		}
		if err := appInstance.PlacementService.EnsureCategoryFolders(); err != nil {
			return fmt.Errorf("failed to prepare category folders: %w", err)
		}

		appInstance.BatchService.OnFile = printProgress
		summary, err := appInstance.BatchService.ProcessDirectory(ctx, dir)
		if err != nil {
			return err
		}

		printSummary(summary)
		return nil
	},
}

func printProgress(idx, total int, outcome models.ProcessingOutcome) {
	switch {
	case outcome.Error != nil:
		fmt.Printf("[%d/%d] %s → %s %s %s\n", idx, total,
			outcome.OriginalFilename, outcome.Category,
			color.RedString("ERROR"), *outcome.Error)
	case outcome.RenamedTo != nil:
		fmt.Printf("[%d/%d] %s → %s (new name: %s)\n", idx, total,
			outcome.OriginalFilename, outcome.Category, *outcome.RenamedTo)
	default:
		fmt.Printf("[%d/%d] %s → %s\n", idx, total,
			outcome.OriginalFilename, outcome.Category)
	}
}

func printSummary(summary models.RunSummary) {
	fmt.Printf("\nProcess completed: %d files in %s (run %s)\n",
		summary.TotalFiles(),
		summary.FinishedAt.Sub(summary.StartedAt).Round(time.Millisecond),
		summary.ID)

	categories := make([]taxonomy.Category, 0, len(summary.Counts))
	for category := range summary.Counts {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i] < categories[j] })

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Files"})
	for _, category := range categories {
		if summary.Counts[category] == 0 {
			continue
		}
		table.Append([]string{string(category), fmt.Sprint(summary.Counts[category])})
	}
	table.Render()
}

func init() {
	rootCmd.AddCommand(sortCmd)
}
