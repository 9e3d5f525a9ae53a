package response

import (
	"encoding/json"
	"net/http"
)

// ErrorBody is the wire shape for all error responses
type ErrorBody struct {
	Error string `json:"error"`
}

// SendJSON writes a JSON response with the given status code
func SendJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// SendOK writes a 200 OK JSON response
func SendOK(w http.ResponseWriter, data interface{}) {
	SendJSON(w, http.StatusOK, data)
}

// SendNoContent writes an empty 204 acknowledgment
func SendNoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// SendError writes an error response as {"error": message}
func SendError(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, ErrorBody{Error: message})
}

// SetNoCache disables client and proxy caching on the response. Status
// pollers must always see current state, never a cached 304.
func SetNoCache(w http.ResponseWriter) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
}
