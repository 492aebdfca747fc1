package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
	"github.com/aanand-mishra/campus-api/internal/validation"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func validationErrors(t *testing.T, v any) validator.ValidationErrors {
	t.Helper()
	var errs validator.ValidationErrors
	require.True(t, errors.As(validation.Struct(v), &errs))
	return errs
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	require.NoError(t, WriteJSON(rec, http.StatusCreated, map[string]string{"id": "x"}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"id":"x"}`, rec.Body.String())
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"decode", validation.NewDecodeError("invalid id", nil), http.StatusUnprocessableEntity},
		{"validator", validation.Struct(types.CourseCreate{}), http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("course x: %w", storage.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("dup: %w", storage.ErrConflict), http.StatusConflict},
		{"bad reference", fmt.Errorf("ref: %w", storage.ErrBadReference), http.StatusBadRequest},
		{"duplicate id", fmt.Errorf("id: %w", storage.ErrDuplicateID), http.StatusBadRequest},
		{"other", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusFor(tt.err))
		})
	}
}

func TestFromError(t *testing.T) {
	t.Run("validator errors use field messages", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, FromError(rec, validation.Struct(types.CourseCreate{Code: "X", Title: "T", Instructor: "I"})))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, Response{Status: StatusError, Error: "field semester is required"}, decodeBody(t, rec))
	})

	t.Run("storage errors keep their message", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := fmt.Errorf("course X already exists for semester F25: %w", storage.ErrConflict)
		require.NoError(t, FromError(rec, err))

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "course X already exists for semester F25: conflict", decodeBody(t, rec).Error)
	})

	t.Run("internal errors are not leaked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, FromError(rec, errors.New("sqlite: disk I/O error")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "Internal Server Error", decodeBody(t, rec).Error)
	})
}

func TestValidationErrorMessages(t *testing.T) {
	bad := "nope"
	errs := validationErrors(t, types.PersonCreate{
		UNI:       &bad,
		Email:     &bad,
		BirthDate: &bad,
		Addresses: []types.PersonAddress{{Street: "1", City: "NYC", State: "NY", PostalCode: "1"}},
	})

	msg := ValidationError(errs).Error
	assert.Contains(t, msg, "field uni must be letters followed by digits")
	assert.Contains(t, msg, "field email must be a valid email address")
	assert.Contains(t, msg, "field birth_date must be a date in YYYY-MM-DD format")
	assert.Contains(t, msg, "field addresses[0].country is required")

	points := 1001
	errs = validationErrors(t, types.AssignmentCreate{Title: "HW", Points: types.Value(points)})
	msg = ValidationError(errs).Error
	assert.Contains(t, msg, "field course_id is required")
	assert.Contains(t, msg, "field points must be at most 1000")
}
