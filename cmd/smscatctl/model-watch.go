package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"smscat/pkg/config"
	"smscat/pkg/server/middleware"
)

// modelWatchCmd represents the model watch command
var modelWatchCmd = &cobra.Command{
	Use:   "watch [file]",
	Short: "Watch the model file and reload the server when it changes",
	Long: `Watch the model file and ask a running server to reload it when it
changes.

This lets an external trainer drop a new model file next to the server and
have it picked up without a restart. The command signs its own service token
with SMSCAT_TOKEN_KEY, so the key must match the server's.

Example:
  smscatctl model watch
  smscatctl model watch /var/lib/smscat/sms_model.json --port 3000`,
	Run: func(cmd *cobra.Command, args []string) {
		filename := ""
		if len(args) > 0 {
			filename = args[0]
		}
		port, _ := cmd.Flags().GetInt("port")

		if err := watchModel(filename, port); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to watch model: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	modelCmd.AddCommand(modelWatchCmd)
	modelWatchCmd.Flags().IntP("port", "p", defaultPortInt(), "port of the running server")
}

func watchModel(filename string, port int) error {
	if filename == "" {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		filename = modelPath(cfg)
	}

	key, err := middleware.KeyFromEnv()
	if err != nil {
		return err
	}
	authenticator := middleware.NewTokenAuthenticator(key, time.Hour)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filename); err != nil {
		return fmt.Errorf("failed to watch file %s: %w", filename, err)
	}

	reloadURL := fmt.Sprintf("http://localhost:%d/model/reload", port)
	fmt.Printf("Watching %s for model changes\n", filename)

	// Handle signals for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	client := &http.Client{Timeout: 10 * time.Second}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Write == fsnotify.Write || event.Op&fsnotify.Create == fsnotify.Create {
				fmt.Printf("[%s] Model file changed, requesting reload...\n", time.Now().Format(time.RFC3339))

				if err := requestReload(client, authenticator, reloadURL); err != nil {
					fmt.Fprintf(os.Stderr, "Error reloading model: %v\n", err)
				} else {
					fmt.Println("Model reloaded successfully")
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "Watcher error: %v\n", err)
		case <-sigChan:
			fmt.Println("\nShutting down...")
			return nil
		}
	}
}

func requestReload(client *http.Client, authenticator *middleware.TokenAuthenticator, url string) error {
	token, err := authenticator.Issue("smscatctl")
	if err != nil {
		return err
	}

	req, err := http.NewRequest("POST", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %s", resp.Status)
	}
	return nil
}
