package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"smscat/pkg/classifier"
	"smscat/pkg/config"
	"smscat/pkg/extract"
)

// categorizeCmd represents the categorize command
var categorizeCmd = &cobra.Command{
	Use:   "categorize <sms text>",
	Short: "Categorize an SMS without a running server",
	Long: `Categorize an SMS text directly against the model file, without a
running server or database.

Example:
  smscatctl categorize "Rs 200 spent on Swiggy order"`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		text := strings.Join(args, " ")

		if err := categorizeText(text); err != nil {
			fmt.Fprintf(os.Stderr, "Categorization failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(categorizeCmd)
}

func categorizeText(text string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	m, err := classifier.Load(modelPath(cfg))
	if err != nil {
		return err
	}

	pred := m.Classify(text)
	merchants := extract.NewMerchantExtractor(cfg.ExtraMerchants...)

	fmt.Printf("Category:    %s\n", pred.Category)
	fmt.Printf("Confidence:  %.2f\n", pred.Confidence)
	fmt.Printf("Amount:      %.2f\n", extract.Amount(text))
	fmt.Printf("Merchant:    %s\n", merchants.Merchant(text))
	return nil
}
