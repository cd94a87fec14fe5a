package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"docsort/pkg/identifier"
)

// classifyCmd classifies a single document without moving it.
var classifyCmd = &cobra.Command{
	Use:   "classify [file]",
	Short: "Classify a single document and print its category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("file %s not found: %w", path, err)
		}

		category, id, err := appInstance.DocumentService.ProcessDocument(ctx, path)
		if err != nil {
			return fmt.Errorf("failed to process %s: %w", path, err)
		}

		fmt.Printf("Category: %s\n", category)
		if id != nil {
			kind := "VKN"
			if id.Kind == identifier.KindTC {
				kind = "TC"
			}
			fmt.Printf("Identifier: %s (%s)\n", id.Value, kind)
		} else {
			fmt.Println("Identifier: not found")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
