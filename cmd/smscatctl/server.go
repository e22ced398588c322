package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"smscat/pkg/classifier"
	"smscat/pkg/config"
	"smscat/pkg/db"
	"smscat/pkg/extract"
	"smscat/pkg/server"
	"smscat/pkg/server/endpoints"
	"smscat/pkg/server/middleware"
	gormstore "smscat/pkg/server/store/gorm"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8080"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8080
}

func modelPath(cfg *config.SmscatConfig) string {
	if path := os.Getenv("SMSCAT_MODEL_PATH"); path != "" {
		return path
	}
	if cfg.ModelPath != "" {
		return cfg.ModelPath
	}
	return config.DefaultModelPath
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the SMS categorization API server",
	Long: `Run the SMS categorization API server.

To run the server requires the environment variables DATABASE_URL and
SMSCAT_TOKEN_KEY.

By default, database migrations are run on startup. Use --no-migrate to skip.
The model file is loaded on startup when present; the server also starts
without it and reports model_loaded: false until a model is trained.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad configuration:", err)
			os.Exit(1)
		}

		var tokenAuthenticator *middleware.TokenAuthenticator
		if cfg.AuthEnabled {
			key, err := middleware.KeyFromEnv()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			tokenAuthenticator = middleware.NewTokenAuthenticator(key, cfg.TokenTTLDuration())
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		path := modelPath(cfg)
		c := classifier.New(path)
		if err := c.Reload(); err != nil {
			log.Printf("Model not loaded from %s: %v", path, err)
			log.Println("Categorization requests will fail until a model is trained")
		} else {
			log.Printf("Loaded model version %d from %s", c.Model().Version, path)
		}

		if watch, _ := cmd.Flags().GetBool("watch-model"); watch {
			go watchModelFile(c, path)
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")

		s := server.NewServer(server.Config{
			DB:                 database,
			AppConfig:          cfg,
			Classifier:         c,
			Merchants:          extract.NewMerchantExtractor(cfg.ExtraMerchants...),
			MessagesStore:      gormstore.NewMessagesStore(database),
			TrainingStore:      gormstore.NewTrainingStore(database),
			ClientsStore:       gormstore.NewClientsStore(database),
			HealthStore:        gormstore.NewHealthStore(database),
			TokenAuthenticator: tokenAuthenticator,
			Host:               host,
			Port:               port,
		})

		endpoints.RegisterAll(s)

		// configuration apply signals a running server with SIGHUP
		hup := make(chan os.Signal, 1)
		signal.Notify(hup, syscall.SIGHUP)
		go func() {
			for range hup {
				log.Println("Received SIGHUP, reloading configuration...")
				if err := reloadConfiguration(s); err != nil {
					log.Printf("Configuration reload failed: %v", err)
				} else {
					log.Println("Configuration reloaded")
				}
			}
		}()

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
	serverCmd.Flags().Bool("watch-model", false, "reload the model file when it changes on disk")
}

// reloadConfiguration re-reads smscat.yml and the environment into the
// global config and applies the result to the running server. Environment
// values cannot change after process start, so this mostly picks up file
// edits.
func reloadConfiguration(s *server.Server) error {
	if err := config.Reload(); err != nil {
		return err
	}

	cfg := config.Get()
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.ApplyConfig(cfg)
	return nil
}

// watchModelFile reloads the classifier whenever the model file is rewritten.
// The watch is on the directory because trainers replace the file atomically
// with a rename, which drops a watch on the file itself.
func watchModelFile(c *classifier.Classifier, path string) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Model watch disabled: %v", err)
		return
	}
	defer func() { _ = watcher.Close() }()

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		log.Printf("Model watch disabled, cannot watch %s: %v", dir, err)
		return
	}
	log.Printf("Watching %s for model changes", path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if err := c.Reload(); err != nil {
				log.Printf("Model reload failed: %v", err)
			} else {
				log.Printf("Reloaded model version %d", c.Model().Version)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("Model watch error: %v", err)
		}
	}
}
