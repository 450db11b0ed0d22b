package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// WriteJSON serializes data to JSON and writes it with statusCode.
//
// HTML characters are left unescaped so player and material names reach the
// caller exactly as stored. If encoding fails the response becomes
// 500 Internal Server Error and a wrapped error is returned.
//
// Returns the number of bytes written to the response body.
//
// Example usage:
//
//	WriteJSON(w, doc, http.StatusOK)
//	WriteJSON(w, models.RecordResponse{Record: rec, Document: doc}, http.StatusCreated)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(bytes.TrimRight(buf.Bytes(), "\n"))
}

// WriteText writes s as a plain-text response with statusCode.
func WriteText(w http.ResponseWriter, s string, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(statusCode)

	return w.Write([]byte(s))
}
