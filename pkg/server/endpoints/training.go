package endpoints

import (
	"encoding/json"
	"net/http"

	"smscat/pkg/classifier"
	"smscat/pkg/model"
	"smscat/pkg/server"
)

// AddSampleRequest is the request body for POST /training/samples
type AddSampleRequest struct {
	SMSText  string `json:"sms_text"`
	Category string `json:"category"`
}

// AddSampleResponse is the response from POST /training/samples
type AddSampleResponse struct {
	Success     bool  `json:"success"`
	CorpusCount int64 `json:"corpus_count"`
}

// RegisterTrainingEndpoints registers the training corpus endpoints
func RegisterTrainingEndpoints(s *server.Server) {
	router := s.Router.PathPrefix("/training").Subrouter()
	router.Use(s.Authn())

	// POST /training/samples - Add a labelled sample to the corpus
	router.HandleFunc("/samples", handleAddSample(s)).Methods("POST")
}

func handleAddSample(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AddSampleRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		defer func() { _ = r.Body.Close() }()
		if err != nil || req.SMSText == "" || req.Category == "" {
			respondWithError(w, http.StatusBadRequest, "Please provide sms_text and category in JSON")
			return
		}

		if _, err := classifier.CategoryString(req.Category); err != nil {
			respondWithError(w, http.StatusUnprocessableEntity, "Unknown category: "+req.Category)
			return
		}

		if err := s.TrainingStore.AddSample(req.SMSText, req.Category, model.SampleSourceAPI); err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		count, err := s.TrainingStore.CountSamples()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusCreated, AddSampleResponse{
			Success:     true,
			CorpusCount: count,
		})
	}
}
