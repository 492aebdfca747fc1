// Package request holds the decoding helpers shared by every handler:
// JSON bodies, the {id} path segment, and query-string filters.
//
// Every failure is returned as a *validation.DecodeError so the response
// package maps it to 422 like any other invalid input.
package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/validation"
)

// DecodeJSON reads r.Body into a T.
//
// json.NewDecoder(r.Body).Decode reports io.EOF when the body is
// completely empty; that gets its own message so clients know nothing
// arrived at all.
func DecodeJSON[T any](r *http.Request) (T, error) {
	var v T
	err := json.NewDecoder(r.Body).Decode(&v)
	if errors.Is(err, io.EOF) {
		return v, validation.NewDecodeError("request body is empty", nil)
	}
	if err != nil {
		return v, validation.NewDecodeError("invalid request body", err)
	}
	return v, nil
}

// DecodeValid decodes r.Body into a T and checks its validate:"..." tags.
func DecodeValid[T any](r *http.Request) (T, error) {
	v, err := DecodeJSON[T](r)
	if err != nil {
		return v, err
	}
	if err := validation.Struct(v); err != nil {
		return v, err
	}
	return v, nil
}

// ParseID parses the {id} path segment.
func ParseID(r *http.Request) (uuid.UUID, error) {
	raw := r.PathValue("id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, validation.NewDecodeError(fmt.Sprintf("invalid id %q: must be a UUID", raw), nil)
	}
	return id, nil
}

// QueryString returns the value of key, or nil when key is absent.
// "?city=" is present with an empty value and filters on "".
func QueryString(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	return &v
}

// QueryUUID is QueryString for id-valued filters such as course_id.
func QueryUUID(q url.Values, key string) (*uuid.UUID, error) {
	raw := QueryString(q, key)
	if raw == nil {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, validation.NewDecodeError(fmt.Sprintf("invalid %s %q: must be a UUID", key, *raw), nil)
	}
	return &id, nil
}
