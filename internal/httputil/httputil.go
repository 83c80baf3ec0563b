package httputil

import (
	"encoding/json"
	"net/http"
)

// JSON writes v as a JSON response body with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error body in the shape clients expect: {"error": msg}.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"error": msg})
}

// Message writes a JSON body of the shape {"message": msg}.
func Message(w http.ResponseWriter, msg string) {
	JSON(w, http.StatusOK, map[string]string{"message": msg})
}
