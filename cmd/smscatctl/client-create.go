package main

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"smscat/pkg/db"
	"smscat/pkg/model"
	gormstore "smscat/pkg/server/store/gorm"
)

// clientCreateCmd represents the client create command
var clientCreateCmd = &cobra.Command{
	Use:   "create <client-id>",
	Short: "Create an API client",
	Long: `Create an API client.

A random API key is generated and printed to STDOUT. Only its digest is
stored, so the key cannot be recovered later; to replace a lost key, delete
the client and create it again.

Example:
  smscatctl client create budget-app`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		clientID := args[0]

		apiKey, err := createClient(clientID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create client: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created client '%s'\n", clientID)
		fmt.Printf("API key: %s\n", apiKey)
	},
}

func init() {
	clientCmd.AddCommand(clientCreateCmd)
}

func createClient(clientID string) (string, error) {
	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", err
	}

	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		return "", err
	}
	apiKey := base64.StdEncoding.Strict().EncodeToString(keyBytes)

	store := gormstore.NewClientsStore(database)
	if err := store.CreateClient(clientID, model.DigestAPIKey(apiKey)); err != nil {
		return "", err
	}

	return apiKey, nil
}
