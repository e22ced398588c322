package endpoints

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"

	"smscat/pkg/audit"
	"smscat/pkg/model"
	"smscat/pkg/server"
	"smscat/pkg/server/store"
)

// AuthenticateRequest is the request body for POST /authenticate
type AuthenticateRequest struct {
	ClientID string `json:"client_id"`
	APIKey   string `json:"api_key"`
}

// AuthenticateResponse is the response from POST /authenticate
type AuthenticateResponse struct {
	Token string `json:"token"`
}

// RegisterAuthenticateEndpoint registers the authentication endpoint
func RegisterAuthenticateEndpoint(s *server.Server) {
	// POST /authenticate - Exchange a client ID and API key for a token
	s.Router.HandleFunc("/authenticate", handleAuthenticate(s)).Methods("POST")
}

func handleAuthenticate(s *server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AuthenticateRequest
		err := json.NewDecoder(r.Body).Decode(&req)
		defer func() { _ = r.Body.Close() }()
		if err != nil || req.ClientID == "" || req.APIKey == "" {
			respondWithError(w, http.StatusBadRequest, "Please provide client_id and api_key in JSON")
			return
		}

		fail := func(reason string) {
			audit.Log(audit.AuthenticateEvent{
				ClientID:     req.ClientID,
				ClientIP:     clientIP(s, r),
				ErrorMessage: reason,
			})
			// The reason behind a failed authentication stays out of the
			// response.
			respondWithError(w, http.StatusUnauthorized, "Invalid client ID or API key")
		}

		client, err := s.ClientsStore.FetchClient(req.ClientID)
		if err != nil {
			if errors.Is(err, store.ErrClientNotFound) {
				fail("unknown client")
				return
			}
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		digest := model.DigestAPIKey(req.APIKey)
		if subtle.ConstantTimeCompare([]byte(digest), []byte(client.APIKeyDigest)) != 1 {
			fail("bad API key")
			return
		}

		token, err := s.TokenAuthenticator.Issue(req.ClientID)
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, err.Error())
			return
		}

		audit.Log(audit.AuthenticateEvent{
			ClientID: req.ClientID,
			ClientIP: clientIP(s, r),
			Success:  true,
		})
		respondWithJSON(w, http.StatusOK, AuthenticateResponse{Token: token})
	}
}
