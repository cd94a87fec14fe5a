package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// setupCmd pre-creates the category folder tree.
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create the category folders under the upload root",
	RunE: func(cmd *cobra.Command, args []string) error {
		appInstance, err := GetAppFromContext(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}
		if err := appInstance.PlacementService.EnsureCategoryFolders(); err != nil {
			return err
		}
		fmt.Printf("Category folders ready under %s\n", appInstance.PlacementService.UploadDir())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(setupCmd)
}
