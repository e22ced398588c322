package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "smscatctl",
	Short: "SMS transaction categorization server",
	Long: `smscatctl manages the SMS transaction categorization service: the HTTP
API server, the database schema, API clients and the classification model.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
