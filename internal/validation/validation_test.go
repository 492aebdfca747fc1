package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/types"
)

func fieldErrors(t *testing.T, err error) map[string]string {
	t.Helper()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs), "expected validator.ValidationErrors, got %v", err)
	out := make(map[string]string, len(errs))
	for _, e := range errs {
		out[e.Field()] = e.Tag()
	}
	return out
}

func TestStruct_CourseCreate(t *testing.T) {
	err := Struct(types.CourseCreate{Code: "COMS4153", Title: "Cloud Computing"})
	assert.Equal(t, map[string]string{"instructor": "required", "semester": "required"}, fieldErrors(t, err))

	assert.NoError(t, Struct(types.CourseCreate{Code: "X", Title: "T", Instructor: "I", Semester: "F25"}))
}

func TestStruct_AddressCreateUsesJSONNames(t *testing.T) {
	err := Struct(types.AddressCreate{Street: "1 Main", City: "NYC", State: "NY", Country: "USA"})
	assert.Equal(t, map[string]string{"postal_code": "required"}, fieldErrors(t, err))
}

func TestStruct_AssignmentCreate(t *testing.T) {
	course := uuid.New()

	tests := []struct {
		name    string
		body    string
		wantErr map[string]string
	}{
		{name: "minimal", body: `{"course_id":"` + course.String() + `","title":"HW1"}`},
		{name: "points at upper bound", body: `{"course_id":"` + course.String() + `","title":"HW1","points":1000}`},
		{name: "points zero", body: `{"course_id":"` + course.String() + `","title":"HW1","points":0}`},
		{name: "points null", body: `{"course_id":"` + course.String() + `","title":"HW1","points":null}`},
		{
			name:    "points over range",
			body:    `{"course_id":"` + course.String() + `","title":"HW1","points":1001}`,
			wantErr: map[string]string{"points": "max"},
		},
		{
			name:    "negative points",
			body:    `{"course_id":"` + course.String() + `","title":"HW1","points":-1}`,
			wantErr: map[string]string{"points": "min"},
		},
		{
			name:    "bad due date",
			body:    `{"course_id":"` + course.String() + `","title":"HW1","due_date":"14/09/2025"}`,
			wantErr: map[string]string{"due_date": "datetime"},
		},
		{
			name:    "missing course and title",
			body:    `{}`,
			wantErr: map[string]string{"course_id": "required", "title": "required"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c types.AssignmentCreate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &c))
			err := Struct(c)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantErr, fieldErrors(t, err))
		})
	}
}

func TestStruct_AssignmentUpdateValidatesWrappedValues(t *testing.T) {
	var u types.AssignmentUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"points":5000}`), &u))
	assert.Equal(t, map[string]string{"points": "max"}, fieldErrors(t, Struct(u)))

	u = types.AssignmentUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"points":null,"due_date":null}`), &u))
	assert.NoError(t, Struct(u))

	assert.NoError(t, Struct(types.AssignmentUpdate{}))
}

func TestStruct_PersonCreate(t *testing.T) {
	uni, email, birth := "ab1234", "ada@example.com", "1990-12-10"
	assert.NoError(t, Struct(types.PersonCreate{}))
	assert.NoError(t, Struct(types.PersonCreate{UNI: &uni, Email: &email, BirthDate: &birth}))

	badUNI, badEmail := "abc", "not-an-email"
	err := Struct(types.PersonCreate{UNI: &badUNI, Email: &badEmail})
	assert.Equal(t, map[string]string{"uni": "uni", "email": "email"}, fieldErrors(t, err))
}

func TestStruct_PersonEmbeddedAddressesDive(t *testing.T) {
	var c types.PersonCreate
	require.NoError(t, json.Unmarshal([]byte(`{"addresses":[{"street":"1 Main","city":"NYC"}]}`), &c))
	errs := fieldErrors(t, Struct(c))
	assert.Equal(t, "required", errs["state"])
	assert.Equal(t, "required", errs["postal_code"])
	assert.Equal(t, "required", errs["country"])

	var u types.PersonUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"addresses":[{"city":"NYC"}]}`), &u))
	assert.Error(t, Struct(u))

	u = types.PersonUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"uni":"zz"}`), &u))
	assert.Equal(t, map[string]string{"uni": "uni"}, fieldErrors(t, Struct(u)))
}

func TestStruct_PersonUpdateRejectsEmptyStrings(t *testing.T) {
	tests := []struct {
		name string
		body string
		want map[string]string
	}{
		{"empty email", `{"email":""}`, map[string]string{"email": "email"}},
		{"empty uni", `{"uni":""}`, map[string]string{"uni": "uni"}},
		{"empty birth_date", `{"birth_date":""}`, map[string]string{"birth_date": "datetime"}},
		{"null clears", `{"email":null,"uni":null,"birth_date":null}`, nil},
		{"absent", `{}`, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var u types.PersonUpdate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &u))
			err := Struct(u)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.want, fieldErrors(t, err))
		})
	}
}

func TestStruct_AssignmentUpdateEmptyDueDate(t *testing.T) {
	var u types.AssignmentUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"due_date":""}`), &u))
	assert.Equal(t, map[string]string{"due_date": "datetime"}, fieldErrors(t, Struct(u)))

	u = types.AssignmentUpdate{}
	require.NoError(t, json.Unmarshal([]byte(`{"points":0}`), &u))
	assert.NoError(t, Struct(u))
}

func TestIsValidationError(t *testing.T) {
	assert.True(t, IsValidationError(NewDecodeError("invalid id", nil)))
	assert.True(t, IsValidationError(Struct(types.CourseCreate{})))
	assert.False(t, IsValidationError(errors.New("boom")))
	assert.False(t, IsValidationError(nil))
}

func TestDecodeError_Message(t *testing.T) {
	assert.Equal(t, "invalid id", NewDecodeError("invalid id", nil).Error())
	err := NewDecodeError("invalid request body", types.ErrNullNotAllowed)
	assert.Equal(t, "invalid request body: null is not allowed for this field", err.Error())
	assert.ErrorIs(t, err, types.ErrNullNotAllowed)
}
