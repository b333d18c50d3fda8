// internal/server/handlers/respond.go

package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// respondSuccess writes the success envelope used by the analytics and
// insight endpoints.
func respondSuccess(w http.ResponseWriter, code int, data interface{}, message string) {
	respondWithJSON(w, code, map[string]interface{}{
		"success": true,
		"data":    data,
		"message": message,
	})
}

// respondFailure writes the failure envelope used by the analytics and
// insight endpoints.
func respondFailure(w http.ResponseWriter, code int, message string, err error) {
	if err != nil && code >= 500 {
		log.Printf("HTTP %d: %s: %v", code, message, err)
	}

	respondWithJSON(w, code, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

// respondWithError writes the bare error shape used by the
// social-media endpoints.
func respondWithError(w http.ResponseWriter, code int, message string, err error) {
	response := map[string]string{"error": message}
	if err != nil {
		response["message"] = err.Error()
		if code >= 500 {
			log.Printf("HTTP %d: %s: %v", code, message, err)
		}
	}

	respondWithJSON(w, code, response)
}
