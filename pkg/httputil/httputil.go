// Package httputil provides JSON request/response helpers for the HTTP host.
//
// Handlers use [RespondJSON] and [RespondError] to produce uniform response
// bodies, and [DecodeJSON] to read request bodies with a size cap. Errors
// carrying an application error code are mapped to appropriate HTTP status
// codes; everything else reports 500 with a generic message so internal
// details never leak.
package httputil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	apperrors "github.com/conceptatlas/atlas/pkg/errors"
)

// maxBodyBytes caps request bodies to guard against oversized uploads.
// Snapshots of tens of thousands of nodes stay well under this.
const maxBodyBytes = 64 << 20

// ErrorResponse is the uniform error body returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// RespondJSON writes v as a JSON response with the given status code.
func RespondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// RespondError writes a structured error response. Application error codes
// determine the HTTP status; unknown errors report 500 without detail.
func RespondError(w http.ResponseWriter, err error) {
	code := apperrors.GetCode(err)
	status := statusForCode(code)
	msg := apperrors.UserMessage(err)
	if status == http.StatusInternalServerError {
		msg = "internal error"
	}
	RespondJSON(w, status, ErrorResponse{Error: msg, Code: string(code)})
}

// statusForCode maps application error codes to HTTP status codes.
func statusForCode(code apperrors.Code) int {
	switch code {
	case apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidSnapshot,
		apperrors.ErrCodeInvalidFormat,
		apperrors.ErrCodeInvalidView,
		apperrors.ErrCodeInvalidConfig,
		apperrors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case apperrors.ErrCodeNotFound,
		apperrors.ErrCodeNodeNotFound,
		apperrors.ErrCodeClusterNotFound,
		apperrors.ErrCodeGapNotFound,
		apperrors.ErrCodeSnapshotNotFound:
		return http.StatusNotFound
	case apperrors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// DecodeJSON reads a JSON request body into v with a size cap.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxErr.Limit)
		}
		if errors.Is(err, io.EOF) {
			return apperrors.New(apperrors.ErrCodeInvalidInput, "empty request body")
		}
		return apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "decode request body")
	}
	return nil
}
