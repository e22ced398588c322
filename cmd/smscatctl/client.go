package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// clientCmd represents the client command
var clientCmd = &cobra.Command{
	Use:   "client",
	Short: "Manage API clients",
	Long:  `Manage the API clients allowed to authenticate against the server.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'client' requires a subcommand (create, delete)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(clientCmd)
}
