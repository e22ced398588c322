package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// modelCmd represents the model command
var modelCmd = &cobra.Command{
	Use:   "model",
	Short: "Manage the classification model",
	Long:  `Manage the classification model file used by the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'model' requires a subcommand (train, show, watch)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(modelCmd)
}
