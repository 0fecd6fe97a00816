package api

import (
	"errors"
	"net/http"

	"github.com/adfharrison1/hashsync/pkg/docstore"
)

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error   string `json:"error" msgpack:"error"`
	Message string `json:"message" msgpack:"message"`
	Code    int    `json:"code" msgpack:"code"`
}

// WriteJSONError writes an error response with the given status code and message
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	writeBody(w, contentTypeJSON, false, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// statusFor maps engine errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, docstore.ErrCollectionNotFound), errors.Is(err, docstore.ErrIndexNotFound):
		return http.StatusNotFound
	case errors.Is(err, docstore.ErrCollectionExists), errors.Is(err, docstore.ErrIndexExists):
		return http.StatusConflict
	case errors.Is(err, docstore.ErrInvalidField), errors.Is(err, docstore.ErrInvalidPagination):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeEngineError writes err with the status statusFor assigns it
func writeEngineError(w http.ResponseWriter, err error) {
	WriteJSONError(w, statusFor(err), err.Error())
}
