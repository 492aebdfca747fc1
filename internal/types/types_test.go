package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestCourseUpdate_ApplyTo_OnlySetFields(t *testing.T) {
	course := Course{Code: "COMS4153", Title: "Cloud Computing", Instructor: "Prof. Ferguson", Semester: "Fall 2025"}

	var u CourseUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"title":"Cloud Computing II","instructor":""}`), &u))
	u.ApplyTo(&course)

	assert.Equal(t, "COMS4153", course.Code)
	assert.Equal(t, "Cloud Computing II", course.Title)
	assert.Equal(t, "", course.Instructor)
	assert.Equal(t, "Fall 2025", course.Semester)
}

func TestAssignmentCreate_Record_Points(t *testing.T) {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	id := uuid.New()

	tests := []struct {
		name string
		body string
		want *int
	}{
		{name: "omitted defaults to 100", body: `{"title":"HW1"}`, want: ptr(DefaultPoints)},
		{name: "explicit null", body: `{"title":"HW1","points":null}`, want: nil},
		{name: "explicit value", body: `{"title":"HW1","points":40}`, want: ptr(40)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c AssignmentCreate
			require.NoError(t, json.Unmarshal([]byte(tt.body), &c))
			got := c.Record(id, now)
			assert.Equal(t, tt.want, got.Points)
			assert.Equal(t, now, got.CreatedAt)
			assert.Equal(t, got.CreatedAt, got.UpdatedAt)
		})
	}
}

func TestAssignmentUpdate_ApplyTo(t *testing.T) {
	courseA, courseB := uuid.New(), uuid.New()
	a := Assignment{CourseID: courseA, Title: "HW1", DueDate: ptr("2025-09-14"), Points: ptr(100)}

	var u AssignmentUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"course_id":"`+courseB.String()+`","due_date":null}`), &u))
	u.ApplyTo(&a)

	assert.Equal(t, courseB, a.CourseID)
	assert.Equal(t, "HW1", a.Title)
	assert.Nil(t, a.DueDate)
	assert.Equal(t, ptr(100), a.Points)
}

func TestPersonUpdate_ApplyTo_ReplacesAddresses(t *testing.T) {
	fixed := uuid.MustParse("00000000-0000-4000-8000-000000000001")
	newID := func() uuid.UUID { return fixed }

	p := Person{
		FirstName: ptr("Ada"),
		Phone:     ptr("555-0100"),
		Addresses: []PersonAddress{{ID: uuid.New(), City: "NYC"}},
	}

	var u PersonUpdate
	body := `{"phone":null,"addresses":[{"street":"1 Main","city":"LA","state":"CA","postal_code":"90001","country":"USA"}]}`
	require.NoError(t, json.Unmarshal([]byte(body), &u))
	u.ApplyTo(&p, newID)

	assert.Equal(t, ptr("Ada"), p.FirstName)
	assert.Nil(t, p.Phone)
	require.Len(t, p.Addresses, 1)
	assert.Equal(t, "LA", p.Addresses[0].City)
	assert.Equal(t, fixed, p.Addresses[0].ID)
}

func TestPerson_Clone(t *testing.T) {
	p := Person{UNI: ptr("ab1234"), Addresses: []PersonAddress{{City: "NYC"}}}
	c := p.Clone()

	*c.UNI = "zz9999"
	c.Addresses[0].City = "LA"

	assert.Equal(t, "ab1234", *p.UNI)
	assert.Equal(t, "NYC", p.Addresses[0].City)
}

func TestPersonFilter_Match(t *testing.T) {
	p := Person{
		FirstName: ptr("Ada"),
		Addresses: []PersonAddress{
			{City: "NYC", Country: "USA"},
			{City: "London", Country: "UK"},
		},
	}

	tests := []struct {
		name   string
		filter PersonFilter
		want   bool
	}{
		{name: "empty filter", filter: PersonFilter{}, want: true},
		{name: "first name", filter: PersonFilter{FirstName: ptr("Ada")}, want: true},
		{name: "first name mismatch", filter: PersonFilter{FirstName: ptr("Grace")}, want: false},
		{name: "null field never matches", filter: PersonFilter{Email: ptr("ada@example.com")}, want: false},
		{name: "any address city", filter: PersonFilter{City: ptr("London")}, want: true},
		{name: "city and country on different addresses", filter: PersonFilter{City: ptr("NYC"), Country: ptr("UK")}, want: true},
		{name: "no address in city", filter: PersonFilter{City: ptr("Paris")}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.filter.Match(p))
		})
	}
}

func TestAddressFilter_Match(t *testing.T) {
	a := Address{Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"}

	assert.True(t, AddressFilter{}.Match(a))
	assert.True(t, AddressFilter{City: ptr("NYC"), Country: ptr("USA")}.Match(a))
	assert.False(t, AddressFilter{City: ptr("NYC"), State: ptr("CA")}.Match(a))
}

func TestWithAddressIDs_KeepsClientIDs(t *testing.T) {
	client := uuid.New()
	in := []PersonAddress{{ID: client}, {}}
	out := WithAddressIDs(in, uuid.New)

	assert.Equal(t, client, out[0].ID)
	assert.NotEqual(t, uuid.Nil, out[1].ID)
	assert.Equal(t, uuid.Nil, in[1].ID)
}
