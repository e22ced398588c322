package endpoints

import (
	"net/http"
	"os"
	"time"

	"smscat/pkg/classifier"
	"smscat/pkg/server"
	"smscat/pkg/server/store"
)

// StatusResponse is the response from GET /
type StatusResponse struct {
	Message     string   `json:"message"`
	Status      string   `json:"status"`
	ModelLoaded bool     `json:"model_loaded"`
	Categories  []string `json:"categories"`
	Time        string   `json:"time"`
	Version     string   `json:"version"`
}

// HealthResponse is the response from GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	Database    string `json:"database"`
	ModelLoaded bool   `json:"model_loaded"`
}

// RegisterStatusEndpoints registers the status and health endpoints
func RegisterStatusEndpoints(s *server.Server) {
	// GET / - Status page (no auth required)
	s.Router.HandleFunc("/", handleStatus(s.Classifier)).Methods("GET")

	// GET /health - Connectivity check (no auth required)
	s.Router.HandleFunc("/health", handleHealth(s.HealthStore, s.Classifier)).Methods("GET")
}

func handleStatus(c *classifier.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		version := os.Getenv("SMSCAT_VERSION_DISPLAY")
		if version == "" {
			version = "0.1.0"
		}

		respondWithJSON(w, http.StatusOK, StatusResponse{
			Message:     "SMS Categorization API is running!",
			Status:      "healthy",
			ModelLoaded: c.Loaded(),
			Categories:  classifier.Categories(),
			Time:        time.Now().Format(timeLayout),
			Version:     version,
		})
	}
}

func handleHealth(healthStore store.HealthStore, c *classifier.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := HealthResponse{
			Status:      "ok",
			Database:    "ok",
			ModelLoaded: c.Loaded(),
		}

		if err := healthStore.CheckConnectivity(); err != nil {
			resp.Status = "error"
			resp.Database = "unreachable"
			respondWithJSON(w, http.StatusServiceUnavailable, resp)
			return
		}

		if !resp.ModelLoaded {
			resp.Status = "degraded"
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}
