package integration

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"smscat/pkg/classifier"
	"smscat/pkg/config"
	"smscat/pkg/extract"
	"smscat/pkg/model"
	"smscat/pkg/server"
	"smscat/pkg/server/endpoints"
	"smscat/pkg/server/middleware"
	gormstore "smscat/pkg/server/store/gorm"
)

// TestClientID and TestAPIKey are the credentials provisioned for the suite.
const (
	TestClientID = "integration-tests"
	TestAPIKey   = "integration-test-api-key"
)

// TestContext holds all the resources needed for integration tests
type TestContext struct {
	DB          *gorm.DB
	RawDB       *sql.DB
	Container   testcontainers.Container
	Server      *server.Server
	ServerURL   string
	DatabaseURL string
	ModelPath   string
	HTTPClient  *http.Client
	listener    net.Listener
}

// NewTestContext starts a PostgreSQL testcontainer, migrates and seeds the
// schema, trains a model from the seeded corpus and runs the server
// in-process.
func NewTestContext(ctx context.Context) (*TestContext, error) {
	projectRoot, err := findProjectRoot()
	if err != nil {
		return nil, fmt.Errorf("failed to find project root: %w", err)
	}
	migrationsDir := filepath.Join(projectRoot, "db", "migrations")

	// Start PostgreSQL container
	pgContainer, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("smscat_test"),
		tcpostgres.WithUsername("smscat"),
		tcpostgres.WithPassword("smscat"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	host, err := pgContainer.Host(ctx)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := pgContainer.MappedPort(ctx, "5432")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}
	connStr := fmt.Sprintf("postgres://smscat:smscat@%s:%s/smscat_test?sslmode=disable", host, port.Port())

	db, err := gorm.Open(gormpostgres.New(gormpostgres.Config{
		DSN:                  connStr,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	rawDB, err := db.DB()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to get raw db: %w", err)
	}

	if err := runMigrations(rawDB, migrationsDir); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Provision the test API client
	clientsStore := gormstore.NewClientsStore(db)
	if err := clientsStore.CreateClient(TestClientID, model.DigestAPIKey(TestAPIKey)); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create test client: %w", err)
	}

	// Train a model from the seeded corpus
	modelDir, err := os.MkdirTemp("", "smscat-integration-")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, err
	}
	modelPath := filepath.Join(modelDir, "sms_model.json")

	trainingStore := gormstore.NewTrainingStore(db)
	records, err := trainingStore.ListSamples()
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to list seeded samples: %w", err)
	}
	samples := make([]classifier.Sample, 0, len(records))
	for _, rec := range records {
		samples = append(samples, classifier.Sample{Body: rec.Body, Category: rec.Category})
	}
	trained, err := classifier.Train(samples)
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to train model: %w", err)
	}
	if err := trained.Save(modelPath); err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to save model: %w", err)
	}

	c := classifier.New(modelPath)
	c.Swap(trained)

	// Start the server in-process on an ephemeral port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("failed to create listener: %w", err)
	}
	serverURL := fmt.Sprintf("http://%s", listener.Addr().String())

	cfg := &config.SmscatConfig{
		MessageListLimitMax: 1000,
		TokenTTL:            28800,
		AuthEnabled:         true,
	}

	tokenKey := make([]byte, 32)
	for i := range tokenKey {
		tokenKey[i] = byte(i)
	}

	s := server.NewServer(server.Config{
		DB:                 db,
		AppConfig:          cfg,
		Classifier:         c,
		Merchants:          extract.NewMerchantExtractor(),
		MessagesStore:      gormstore.NewMessagesStore(db),
		TrainingStore:      trainingStore,
		ClientsStore:       clientsStore,
		HealthStore:        gormstore.NewHealthStore(db),
		TokenAuthenticator: middleware.NewTokenAuthenticator(tokenKey, 8*time.Hour),
		Host:               "127.0.0.1",
		Port:               "0",
	})
	endpoints.RegisterAll(s)

	go func() {
		_ = s.StartWithListener(listener)
	}()

	if err := waitForServer(serverURL, 30*time.Second); err != nil {
		_ = listener.Close()
		_ = pgContainer.Terminate(ctx)
		return nil, fmt.Errorf("server failed to become ready: %w", err)
	}

	return &TestContext{
		DB:          db,
		RawDB:       rawDB,
		Container:   pgContainer,
		Server:      s,
		ServerURL:   serverURL,
		DatabaseURL: connStr,
		ModelPath:   modelPath,
		HTTPClient:  &http.Client{Timeout: 10 * time.Second},
		listener:    listener,
	}, nil
}

// waitForServer polls the server until it responds or times out
func waitForServer(serverURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(timeout)

	for time.Now().Before(deadline) {
		resp, err := client.Get(serverURL + "/")
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		time.Sleep(100 * time.Millisecond)
	}

	return fmt.Errorf("server did not become ready within %v", timeout)
}

// Close cleans up all test resources
func (tc *TestContext) Close(ctx context.Context) {
	if tc.listener != nil {
		_ = tc.listener.Close()
	}
	if tc.RawDB != nil {
		_ = tc.RawDB.Close()
	}
	if tc.Container != nil {
		_ = tc.Container.Terminate(ctx)
	}
	if tc.ModelPath != "" {
		_ = os.RemoveAll(filepath.Dir(tc.ModelPath))
	}
}

// findProjectRoot locates the project root directory
func findProjectRoot() (string, error) {
	paths := []string{
		"../..",
		"..",
		".",
	}

	for _, p := range paths {
		goMod := filepath.Join(p, "go.mod")
		if _, err := os.Stat(goMod); err == nil {
			return filepath.Abs(p)
		}
	}

	return "", fmt.Errorf("project root not found (looking for go.mod)")
}

// runMigrations executes the up migrations in order
func runMigrations(db *sql.DB, migrationsDir string) error {
	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("migration %s failed: %w", filepath.Base(file), err)
		}
		log.Printf("Applied migration %s", filepath.Base(file))
	}

	return nil
}
