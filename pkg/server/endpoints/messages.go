package endpoints

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"smscat/pkg/classifier"
	"smscat/pkg/server"
	"smscat/pkg/server/store"
)

// MessageResponse is one categorized message in API responses
type MessageResponse struct {
	ID         int64   `json:"id"`
	Body       string  `json:"body"`
	Category   string  `json:"category"`
	Confidence float64 `json:"confidence"`
	Amount     float64 `json:"amount"`
	Merchant   string  `json:"merchant"`
	ClientID   string  `json:"client_id,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// MessageListResponse is the response from GET /messages
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Count    int               `json:"count"`
}

// RegisterMessagesEndpoints registers the message history endpoints
func RegisterMessagesEndpoints(s *server.Server) {
	router := s.Router.PathPrefix("/messages").Subrouter()
	router.Use(s.Authn())

	// GET /messages - List categorized messages
	router.HandleFunc("", handleListMessages(s)).Methods("GET")

	// GET /messages/{id} - Fetch a single categorized message
	router.HandleFunc("/{id}", handleGetMessage(s)).Methods("GET")
}

func toMessageResponse(msg store.Message) MessageResponse {
	resp := MessageResponse{
		ID:         msg.ID,
		Body:       msg.Body,
		Category:   msg.Category,
		Confidence: msg.Confidence,
		Amount:     msg.Amount,
		Merchant:   msg.Merchant,
		CreatedAt:  msg.CreatedAt.Format(timeLayout),
	}
	if msg.ClientID != nil {
		resp.ClientID = *msg.ClientID
	}
	return resp
}

func handleListMessages(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.MessageFilter{}

		if category := r.URL.Query().Get("category"); category != "" {
			if _, err := classifier.CategoryString(category); err != nil {
				respondWithError(w, http.StatusUnprocessableEntity, "Unknown category: "+category)
				return
			}
			filter.Category = category
		}

		maxLimit := s.Config.MessageListLimitMax
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			limit, err := strconv.Atoi(limitStr)
			if err != nil || limit < 1 {
				respondWithError(w, http.StatusBadRequest, "limit must be a positive integer")
				return
			}
			if limit > maxLimit {
				limit = maxLimit
			}
			filter.Limit = limit
		}

		messages, err := s.MessagesStore.ListMessages(filter)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		resp := MessageListResponse{
			Messages: make([]MessageResponse, 0, len(messages)),
			Count:    len(messages),
		}
		for _, msg := range messages {
			resp.Messages = append(resp.Messages, toMessageResponse(msg))
		}
		respondWithJSON(w, http.StatusOK, resp)
	}
}

func handleGetMessage(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		id, err := strconv.ParseInt(vars["id"], 10, 64)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid message ID")
			return
		}

		msg, err := s.MessagesStore.GetMessage(id)
		if err != nil {
			if errors.Is(err, store.ErrMessageNotFound) {
				respondWithError(w, http.StatusNotFound, "Message not found")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		respondWithJSON(w, http.StatusOK, toMessageResponse(*msg))
	}
}
