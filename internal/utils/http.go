package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// encodeFailureBody has the shape of every other error body of the API.
const encodeFailureBody = `{"message":"internal server error"}`

// WriteJSON encodes data and writes it with statusCode. When data cannot be
// encoded the client gets a 500 with a generic JSON error body and the
// encoding error is returned.
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	body, err := json.Marshal(data)
	if err != nil {
		body, statusCode = []byte(encodeFailureBody), http.StatusInternalServerError
		err = fmt.Errorf("error encoding response body: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	n, writeErr := w.Write(body)
	if err != nil {
		return n, err
	}
	return n, writeErr
}

// WriteText writes a plain-text body that clients must not cache.
func WriteText(w http.ResponseWriter, body string, statusCode int) (int, error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)

	return io.WriteString(w, body)
}
