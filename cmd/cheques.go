package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"docsort/internal/models"
)

var chequesOutput string

// chequesCmd runs LLM field extraction over the sorted cheque folder.
var chequesCmd = &cobra.Command{
	Use:   "cheques",
	Short: "Extract structured fields from sorted cheque images",
	Long: `Processes every image in the cheque category folder with the
configured LLM provider (gemini or openai) and writes the extracted
fields as a JSON array. Requires the provider's API key.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		appInstance, err := GetAppFromContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get app instance: %w", err)
		}

		chequeService, closer, err := appInstance.NewChequeService(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize cheque extractor: %w", err)
		}
		if closer != nil {
			defer closer()
		}

		output := chequesOutput
		if output == "" {
			output = appInstance.Config.Cheque.OutputFile
		}

		results, err := chequeService.ProcessAndSave(ctx, output)
		if err != nil {
			return err
		}

		printChequeSummary(results, output)
		return nil
	},
}

func printChequeSummary(results []models.ChequeRecord, output string) {
	successful := 0
	for _, r := range results {
		if r.HasData() {
			successful++
		}
	}

	fmt.Println("\nExtraction summary")
	fmt.Printf("  Total files processed: %d\n", len(results))
	fmt.Printf("  Successful extractions: %s\n", color.GreenString("%d", successful))
	fmt.Printf("  Failed extractions: %s\n", color.RedString("%d", len(results)-successful))
	if len(results) > 0 {
		fmt.Printf("  Success rate: %.1f%%\n", float64(successful)/float64(len(results))*100)
	}
	fmt.Printf("  Results saved to: %s\n", output)

	sample := results
	if len(sample) > 3 {
		sample = sample[:3]
	}
	for i, r := range sample {
		name := "unknown"
		if r.FileName != nil {
			name = *r.FileName
		}
		fmt.Printf("\n%d. %s\n", i+1, name)
		printField("iban", r.IBAN)
		printField("checkNumber", r.CheckNumber)
		printField("branchCode", r.BranchCode)
		printField("accountNumber", r.AccountNumber)
		printField("customerIdNumber", r.CustomerIDNumber)
		printField("bankCode", r.BankCode)
		printField("micrCode", r.MICRCode)
		printField("checkAmount", r.CheckAmount)
	}
	if len(results) > 3 {
		fmt.Printf("\n... and %d more files\n", len(results)-3)
	}
}

func printField(label string, value *string) {
	if value != nil {
		fmt.Printf("   %s: %s\n", label, *value)
	}
}

func init() {
	chequesCmd.Flags().StringVarP(&chequesOutput, "output", "o", "",
		"output JSON path (default from config: cheque.output_file)")
	rootCmd.AddCommand(chequesCmd)
}
