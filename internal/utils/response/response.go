// Package response provides helpers for writing consistent JSON HTTP responses.
//
// Every handler in this application sends JSON back to the client.
// Rather than repeating the same three lines (set header, set status,
// encode JSON) in every handler, we centralise them here, together with
// the single table that turns a storage or validation error into an HTTP
// status.
package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/validation"
)

// ─────────────────────────────────────────────────────────────────────────────
// Response is the standard envelope returned for error cases.
//
// Success responses return the record (or list of records) itself.
// Error responses always look like:
//
//	{ "status": "error", "error": "field title is required" }
//
// ─────────────────────────────────────────────────────────────────────────────
type Response struct {
	Status string `json:"status"` // always "error"
	Error  string `json:"error"`  // human-readable error detail
}

// StatusError is the envelope status of every error response.
const StatusError = "error"

// ─────────────────────────────────────────────────────────────────────────────
// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
// ─────────────────────────────────────────────────────────────────────────────
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// Encode() appends a newline after the JSON; handy for curl.
	return json.NewEncoder(w).Encode(data)
}

// NoContent writes a bare 204, used for successful deletes.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// GeneralError wraps any Go error into our standard Response shape.
func GeneralError(err error) Response {
	return Response{
		Status: StatusError,
		Error:  err.Error(),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// ValidationError converts a slice of validator.FieldError values into
// a single human-readable Response.
//
// The go-playground/validator package returns one FieldError per failing
// struct field. Field() is the JSON name (see the validation package) and
// Namespace() locates fields inside embedded addresses, e.g.
// "addresses[1].city".
//
// Example output:
//
//	{ "status": "error", "error": "field title is required, field points must be at most 1000" }
//
// ─────────────────────────────────────────────────────────────────────────────
func ValidationError(errs validator.ValidationErrors) Response {
	errMessages := make([]string, 0, len(errs))

	for _, e := range errs {
		field := fieldPath(e)
		switch e.ActualTag() {
		case "required":
			errMessages = append(errMessages, fmt.Sprintf("field %s is required", field))
		case "email":
			errMessages = append(errMessages, fmt.Sprintf("field %s must be a valid email address", field))
		case "uni":
			errMessages = append(errMessages, fmt.Sprintf("field %s must be letters followed by digits, e.g. ab1234", field))
		case "datetime":
			errMessages = append(errMessages, fmt.Sprintf("field %s must be a date in YYYY-MM-DD format", field))
		case "min":
			errMessages = append(errMessages, fmt.Sprintf("field %s must be at least %s", field, e.Param()))
		case "max":
			errMessages = append(errMessages, fmt.Sprintf("field %s must be at most %s", field, e.Param()))
		default:
			errMessages = append(errMessages, fmt.Sprintf("field %s is invalid", field))
		}
	}

	return Response{
		Status: StatusError,
		Error:  strings.Join(errMessages, ", "),
	}
}

// fieldPath drops the root struct name from the namespace:
// "PersonCreate.addresses[0].city" becomes "addresses[0].city".
func fieldPath(e validator.FieldError) string {
	if _, rest, ok := strings.Cut(e.Namespace(), "."); ok {
		return rest
	}
	return e.Field()
}

// ─────────────────────────────────────────────────────────────────────────────
// StatusFor maps an error returned by request decoding, validation, or the
// storage layer onto an HTTP status:
//
//	decode / validation failure  → 422 Unprocessable Entity
//	storage.ErrNotFound          → 404 Not Found
//	storage.ErrConflict          → 409 Conflict
//	storage.ErrBadReference      → 400 Bad Request
//	storage.ErrDuplicateID       → 400 Bad Request
//	anything else                → 500 Internal Server Error
//
// ─────────────────────────────────────────────────────────────────────────────
func StatusFor(err error) int {
	switch {
	case validation.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, storage.ErrBadReference), errors.Is(err, storage.ErrDuplicateID):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err with the status StatusFor picks. Validator errors
// get the per-field messages; everything else its Error() text.
func FromError(w http.ResponseWriter, err error) error {
	status := StatusFor(err)

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		return WriteJSON(w, status, ValidationError(fieldErrs))
	}
	if status == http.StatusInternalServerError {
		// Internal details stay in the logs.
		return WriteJSON(w, status, GeneralError(errors.New(http.StatusText(status))))
	}
	return WriteJSON(w, status, GeneralError(err))
}
