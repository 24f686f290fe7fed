// Package httpio holds the request decoding and response writing shared by
// the calculator handlers.
package httpio

import (
	"encoding/json"
	"net/http"

	apperr "Airduct/internal/errors"
	"Airduct/internal/logging"

	"go.uber.org/zap"
)

// maxBody caps JSON request bodies.
const maxBody = 1 << 20

// Decode reads a JSON body into v. Unknown fields are rejected.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperr.Parsing("invalid request payload", err)
	}
	return nil
}

// JSON writes v with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("encode response", zap.Error(err))
	}
}

// Error maps err to a status code and writes its message as plain text.
// Internal errors are logged and their detail withheld.
func Error(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status == http.StatusInternalServerError {
		logging.Error("request failed", zap.Error(err))
		http.Error(w, "Calculation error", status)
		return
	}
	http.Error(w, err.Error(), status)
}

// StatusOf returns the HTTP status for an error's type.
func StatusOf(err error) int {
	switch apperr.TypeOf(err) {
	case apperr.TypeInput, apperr.TypeParsing:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
