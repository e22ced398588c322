package endpoints

import (
	"encoding/json"
	"math"
	"net/http"
)

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]interface{}{
		"error":   message,
		"success": false,
	})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// round2 rounds confidences the way API responses report them.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

const timeLayout = "2006-01-02 15:04:05"
