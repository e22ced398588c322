package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smscat/pkg/db"
	gormstore "smscat/pkg/server/store/gorm"
)

// clientDeleteCmd represents the client delete command
var clientDeleteCmd = &cobra.Command{
	Use:   "delete <client-id>",
	Short: "Delete an API client",
	Long: `Delete an API client.

Tokens already issued to the client stay valid until they expire.

Example:
  smscatctl client delete budget-app`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		clientID := args[0]

		if err := deleteClient(clientID); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to delete client: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Deleted client '%s'\n", clientID)
	},
}

func init() {
	clientCmd.AddCommand(clientDeleteCmd)
}

func deleteClient(clientID string) error {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return err
	}

	return gormstore.NewClientsStore(database).DeleteClient(clientID)
}
