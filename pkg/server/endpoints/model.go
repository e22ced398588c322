package endpoints

import (
	"errors"
	"log"
	"net/http"

	"smscat/pkg/audit"
	"smscat/pkg/classifier"
	"smscat/pkg/identity"
	"smscat/pkg/server"
	"smscat/pkg/server/store"
)

// ModelResponse is the response from GET /model
type ModelResponse struct {
	Version             int      `json:"version"`
	TrainedAt           string   `json:"trained_at"`
	SampleCount         int      `json:"sample_count"`
	VocabularySize      int      `json:"vocabulary_size"`
	Categories          []string `json:"categories"`
	Path                string   `json:"path"`
	ConfidenceThreshold float64  `json:"confidence_threshold"`
}

// TrainResponse is the response from POST /model/train
type TrainResponse struct {
	Success     bool   `json:"success"`
	Version     int    `json:"version"`
	SampleCount int    `json:"sample_count"`
	TrainedAt   string `json:"trained_at"`
}

// RegisterModelEndpoints registers the model management endpoints
func RegisterModelEndpoints(s *server.Server) {
	router := s.Router.PathPrefix("/model").Subrouter()
	router.Use(s.Authn())

	// GET /model - Show the loaded model's metadata
	router.HandleFunc("", handleShowModel(s)).Methods("GET")

	// POST /model/reload - Reload the model from disk
	router.HandleFunc("/reload", handleReloadModel(s)).Methods("POST")

	// POST /model/train - Retrain the model from the stored corpus
	router.HandleFunc("/train", handleTrainModel(s)).Methods("POST")
}

func requestClientID(r *http.Request) string {
	if id, ok := identity.Get(r.Context()); ok {
		return id.ClientID
	}
	return ""
}

func handleShowModel(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := s.Classifier.Model()
		if m == nil {
			respondWithError(w, http.StatusServiceUnavailable, "model not loaded")
			return
		}

		respondWithJSON(w, http.StatusOK, ModelResponse{
			Version:             m.Version,
			TrainedAt:           m.TrainedAt.Format(timeLayout),
			SampleCount:         m.SampleCount,
			VocabularySize:      m.Vectorizer.Size(),
			Categories:          m.Bayes.Classes,
			Path:                s.Classifier.Path(),
			ConfidenceThreshold: s.Config.ConfidenceThreshold,
		})
	}
}

func handleReloadModel(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := s.Classifier.Reload()

		event := audit.ReloadEvent{
			ClientID:  requestClientID(r),
			ModelPath: s.Classifier.Path(),
		}
		if err != nil {
			event.ErrorMessage = err.Error()
		} else {
			event.Success = true
		}
		audit.Log(event)

		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		m := s.Classifier.Model()
		respondWithJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"version": m.Version,
		})
	}
}

func handleTrainModel(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		auditFail := func(sampleCount int, err error) {
			audit.Log(audit.TrainEvent{
				ClientID:     requestClientID(r),
				ClientIP:     clientIP(s, r),
				SampleCount:  sampleCount,
				ModelPath:    s.Classifier.Path(),
				ErrorMessage: err.Error(),
			})
		}

		records, err := s.TrainingStore.ListSamples()
		if err != nil {
			auditFail(0, err)
			if errors.Is(err, store.ErrNoTrainingSamples) {
				respondWithError(w, http.StatusConflict, "Training corpus is empty")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		samples := make([]classifier.Sample, 0, len(records))
		for _, rec := range records {
			samples = append(samples, classifier.Sample{Body: rec.Body, Category: rec.Category})
		}

		m, err := classifier.Train(samples)
		if err != nil {
			auditFail(len(samples), err)
			respondWithError(w, http.StatusConflict, err.Error())
			return
		}

		if prev := s.Classifier.Model(); prev != nil {
			m.Version = prev.Version + 1
		}
		s.Classifier.Swap(m)

		// A failed save leaves the in-memory model live; the next restart
		// falls back to the previous version on disk.
		if err := m.Save(s.Classifier.Path()); err != nil {
			log.Printf("failed to persist trained model: %v", err)
		}

		audit.Log(audit.TrainEvent{
			ClientID:    requestClientID(r),
			ClientIP:    clientIP(s, r),
			SampleCount: m.SampleCount,
			ModelPath:   s.Classifier.Path(),
			Success:     true,
		})

		respondWithJSON(w, http.StatusOK, TrainResponse{
			Success:     true,
			Version:     m.Version,
			SampleCount: m.SampleCount,
			TrainedAt:   m.TrainedAt.Format(timeLayout),
		})
	}
}
