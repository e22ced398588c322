package endpoints

import (
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"smscat/pkg/audit"
	"smscat/pkg/classifier"
	"smscat/pkg/extract"
	"smscat/pkg/identity"
	"smscat/pkg/server"
	"smscat/pkg/server/store"
)

// CategorizeRequest is the request body for POST /categorize
type CategorizeRequest struct {
	SMSText string `json:"sms_text"`
}

// CategorizeResponse is the response from POST /categorize
type CategorizeResponse struct {
	Success       bool    `json:"success"`
	Category      string  `json:"category"`
	Confidence    float64 `json:"confidence"`
	Amount        float64 `json:"amount"`
	Merchant      string  `json:"merchant"`
	OriginalText  string  `json:"original_text"`
	ProcessedAt   string  `json:"processed_at"`
	LowConfidence bool    `json:"low_confidence,omitempty"`
}

// BatchCategorizeRequest is the request body for POST /categorize/batch
type BatchCategorizeRequest struct {
	Messages []string `json:"messages"`
}

// BatchCategorizeResponse is the response from POST /categorize/batch
type BatchCategorizeResponse struct {
	Results []CategorizeResponse `json:"results"`
	Errors  map[string]string    `json:"errors,omitempty"`
}

// TestResult is one entry of the GET /test response
type TestResult struct {
	SMS        string  `json:"sms"`
	Category   string  `json:"category,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// TestResponse is the response from GET /test
type TestResponse struct {
	TestResults []TestResult `json:"test_results"`
	ModelStatus string       `json:"model_status"`
}

// RegisterCategorizeEndpoints registers the categorization endpoints
func RegisterCategorizeEndpoints(s *server.Server) {
	// POST /categorize - Categorize a single SMS (no auth required)
	s.Router.HandleFunc("/categorize", handleCategorize(s)).Methods("POST")

	// POST /categorize/batch - Categorize several SMS texts
	s.Router.HandleFunc("/categorize/batch", handleBatchCategorize(s)).Methods("POST")

	// GET /test - Classify canned sample messages
	s.Router.HandleFunc("/test", handleTest(s.Classifier)).Methods("GET")
}

// clientIP resolves the peer address recorded in audit events. The
// X-Forwarded-For header is only honored when the direct peer is a trusted
// proxy, otherwise any client could spoof the recorded address.
func clientIP(s *server.Server, r *http.Request) string {
	forwarded := r.Header.Get("X-Forwarded-For")
	if forwarded == "" {
		return r.RemoteAddr
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if s.Config.IsTrustedProxy(host) {
		return forwarded
	}
	return r.RemoteAddr
}

// categorizeOne runs the full pipeline for one SMS text.
func categorizeOne(s *server.Server, text string) (CategorizeResponse, error) {
	pred, err := s.Classifier.Classify(text)
	if err != nil {
		return CategorizeResponse{}, err
	}

	resp := CategorizeResponse{
		Success:      true,
		Category:     pred.Category,
		Confidence:   round2(pred.Confidence),
		Amount:       extract.Amount(text),
		Merchant:     s.Merchants.Merchant(text),
		OriginalText: text,
		ProcessedAt:  time.Now().Format(timeLayout),
	}
	if threshold := s.Config.ConfidenceThreshold; threshold > 0 && pred.Confidence < threshold {
		resp.LowConfidence = true
	}
	return resp, nil
}

func persistMessage(s *server.Server, r *http.Request, resp CategorizeResponse) {
	if s.MessagesStore == nil {
		return
	}

	msg := store.Message{
		Body:       resp.OriginalText,
		Category:   resp.Category,
		Confidence: resp.Confidence,
		Amount:     resp.Amount,
		Merchant:   resp.Merchant,
	}
	if id, ok := identity.Get(r.Context()); ok {
		clientID := id.ClientID
		msg.ClientID = &clientID
	}

	// History is best-effort; classification results are still returned
	// when the database is down.
	if err := s.MessagesStore.SaveMessage(&msg); err != nil {
		log.Printf("failed to persist categorized message: %v", err)
	}
}

func auditCategorize(s *server.Server, r *http.Request, resp CategorizeResponse, err error) {
	event := audit.CategorizeEvent{
		ClientIP: clientIP(s, r),
	}
	if id, ok := identity.Get(r.Context()); ok {
		event.ClientID = id.ClientID
	}
	if err != nil {
		event.ErrorMessage = err.Error()
	} else {
		event.Success = true
		event.Category = resp.Category
		event.Confidence = resp.Confidence
		event.Amount = resp.Amount
		event.Merchant = resp.Merchant
	}
	audit.Log(event)
}

func handleCategorize(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CategorizeRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		defer func() { _ = r.Body.Close() }()
		if err != nil || req.SMSText == "" {
			respondWithJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":   "Please provide sms_text in JSON",
				"success": false,
				"example": map[string]string{"sms_text": "Rs 200 spent on Swiggy order"},
			})
			return
		}

		resp, err := categorizeOne(s, req.SMSText)
		auditCategorize(s, r, resp, err)
		if err != nil {
			if errors.Is(err, classifier.ErrModelNotLoaded) {
				respondWithError(w, http.StatusServiceUnavailable, "model not loaded")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		persistMessage(s, r, resp)
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleBatchCategorize(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BatchCategorizeRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		defer func() { _ = r.Body.Close() }()
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}
		if len(req.Messages) == 0 {
			respondWithError(w, http.StatusBadRequest, "No messages provided")
			return
		}

		if !s.Classifier.Loaded() {
			respondWithError(w, http.StatusServiceUnavailable, "model not loaded")
			return
		}

		response := BatchCategorizeResponse{
			Results: make([]CategorizeResponse, 0, len(req.Messages)),
			Errors:  make(map[string]string),
		}

		for i, text := range req.Messages {
			if text == "" {
				response.Errors[indexKey(i)] = "empty sms_text"
				response.Results = append(response.Results, CategorizeResponse{})
				continue
			}

			resp, err := categorizeOne(s, text)
			auditCategorize(s, r, resp, err)
			if err != nil {
				response.Errors[indexKey(i)] = err.Error()
				response.Results = append(response.Results, CategorizeResponse{})
				continue
			}

			persistMessage(s, r, resp)
			response.Results = append(response.Results, resp)
		}

		statusCode := http.StatusOK
		if len(response.Errors) > 0 {
			statusCode = http.StatusMultiStatus
		}
		if len(response.Errors) == 0 {
			response.Errors = nil
		}
		respondWithJSON(w, statusCode, response)
	}
}

func indexKey(i int) string {
	return "message_" + strconv.Itoa(i)
}

var testMessages = []string{
	"Rs 200 spent on Pizza Hut order",
	"Rs 50 paid for bus fare",
	"Rs 1500 emergency doctor fees",
}

func handleTest(c *classifier.Classifier) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !c.Loaded() {
			respondWithError(w, http.StatusServiceUnavailable, "model not loaded")
			return
		}

		results := make([]TestResult, 0, len(testMessages))
		for _, sms := range testMessages {
			pred, err := c.Classify(sms)
			if err != nil {
				results = append(results, TestResult{SMS: sms, Error: err.Error()})
				continue
			}
			results = append(results, TestResult{
				SMS:        sms,
				Category:   pred.Category,
				Confidence: round2(pred.Confidence),
			})
		}

		respondWithJSON(w, http.StatusOK, TestResponse{
			TestResults: results,
			ModelStatus: "working",
		})
	}
}
