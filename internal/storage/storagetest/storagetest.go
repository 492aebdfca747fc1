// Package storagetest is a behavioural test suite shared by every
// storage.Storage backend. A backend's _test.go calls Run with a factory
// that returns a fresh, empty store.
package storagetest

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Factory returns an empty store. It should register cleanup with t.
type Factory func(t *testing.T) storage.Storage

// Run executes the whole suite against the backend built by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Run("Address", func(t *testing.T) { testAddress(t, newStore) })
	t.Run("Person", func(t *testing.T) { testPerson(t, newStore) })
	t.Run("Course", func(t *testing.T) { testCourse(t, newStore) })
	t.Run("Assignment", func(t *testing.T) { testAssignment(t, newStore) })
	t.Run("Cascade", func(t *testing.T) { testCascade(t, newStore) })
	t.Run("Concurrency", func(t *testing.T) { testConcurrency(t, newStore) })
}

func ptr[T any](v T) *T { return &v }

// decode builds a PATCH payload from JSON so tests exercise the same
// presence tracking as real requests.
func decode[T any](t *testing.T, body string) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal([]byte(body), &v))
	return v
}

func nycAddress(street string) types.AddressCreate {
	return types.AddressCreate{Street: street, City: "NYC", State: "NY", PostalCode: "10027", Country: "USA"}
}

func cloudComputing() types.CourseCreate {
	return types.CourseCreate{Code: "COMS4153", Title: "Cloud Computing", Instructor: "Prof. Ferguson", Semester: "Fall 2025"}
}

func mustCourse(t *testing.T, s storage.Storage, in types.CourseCreate) types.Course {
	t.Helper()
	c, err := s.CreateCourse(context.Background(), in)
	require.NoError(t, err)
	return c
}

func mustAssignment(t *testing.T, s storage.Storage, courseID uuid.UUID, title string) types.Assignment {
	t.Helper()
	a, err := s.CreateAssignment(context.Background(), types.AssignmentCreate{CourseID: courseID, Title: title})
	require.NoError(t, err)
	return a
}

func ids[T any](records []T, id func(T) uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(records))
	for _, r := range records {
		out = append(out, id(r))
	}
	return out
}

func testAddress(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create generates id and stamps timestamps", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateAddress(ctx, nycAddress("116th St"))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, a.ID)
		assert.False(t, a.CreatedAt.IsZero())
		assert.True(t, a.CreatedAt.Equal(a.UpdatedAt))

		got, err := s.GetAddressByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, "116th St", got.Street)
	})

	t.Run("client chosen id", func(t *testing.T) {
		s := newStore(t)
		id := uuid.New()
		in := nycAddress("Broadway")
		in.ID = &id

		a, err := s.CreateAddress(ctx, in)
		require.NoError(t, err)
		assert.Equal(t, id, a.ID)

		_, err = s.CreateAddress(ctx, in)
		assert.ErrorIs(t, err, storage.ErrDuplicateID)

		all, err := s.GetAddresses(ctx, types.AddressFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("list filters by city", func(t *testing.T) {
		s := newStore(t)
		a1, err := s.CreateAddress(ctx, nycAddress("1 Main"))
		require.NoError(t, err)
		a2, err := s.CreateAddress(ctx, nycAddress("2 Main"))
		require.NoError(t, err)
		la := nycAddress("3 Main")
		la.City, la.State = "LA", "CA"
		_, err = s.CreateAddress(ctx, la)
		require.NoError(t, err)

		got, err := s.GetAddresses(ctx, types.AddressFilter{City: ptr("NYC")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{a1.ID, a2.ID}, ids(got, func(a types.Address) uuid.UUID { return a.ID }))

		got, err = s.GetAddresses(ctx, types.AddressFilter{City: ptr("NYC"), Street: ptr("2 Main")})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, a2.ID, got[0].ID)
	})

	t.Run("empty list is not nil", func(t *testing.T) {
		s := newStore(t)
		got, err := s.GetAddresses(ctx, types.AddressFilter{City: ptr("Nowhere")})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("partial update keeps absent fields", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateAddress(ctx, nycAddress("1 Main"))
		require.NoError(t, err)

		got, err := s.UpdateAddressByID(ctx, a.ID, decode[types.AddressUpdate](t, `{"city":"Brooklyn"}`))
		require.NoError(t, err)
		assert.Equal(t, "Brooklyn", got.City)
		assert.Equal(t, "1 Main", got.Street)
		assert.Equal(t, "NY", got.State)
		assert.True(t, a.CreatedAt.Equal(got.CreatedAt))
		assert.False(t, got.UpdatedAt.Before(a.UpdatedAt))
	})

	t.Run("not found", func(t *testing.T) {
		s := newStore(t)
		missing := uuid.New()
		_, err := s.GetAddressByID(ctx, missing)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.UpdateAddressByID(ctx, missing, types.AddressUpdate{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.DeleteAddressByID(ctx, missing), storage.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		a, err := s.CreateAddress(ctx, nycAddress("1 Main"))
		require.NoError(t, err)
		require.NoError(t, s.DeleteAddressByID(ctx, a.ID))
		_, err = s.GetAddressByID(ctx, a.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}

func testPerson(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create with embedded addresses", func(t *testing.T) {
		s := newStore(t)
		clientID := uuid.New()
		p, err := s.CreatePerson(ctx, types.PersonCreate{
			UNI:       ptr("ab1234"),
			FirstName: ptr("Ada"),
			Email:     ptr("ada@example.com"),
			Addresses: []types.PersonAddress{
				{ID: clientID, Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"},
				{Street: "2 High", City: "London", State: "LDN", PostalCode: "N1", Country: "UK"},
			},
		})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, p.ID)
		assert.True(t, p.CreatedAt.Equal(p.UpdatedAt))
		require.Len(t, p.Addresses, 2)
		assert.Equal(t, clientID, p.Addresses[0].ID)
		assert.NotEqual(t, uuid.Nil, p.Addresses[1].ID)

		got, err := s.GetPersonByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p.Addresses, got.Addresses)
		assert.Equal(t, ptr("Ada"), got.FirstName)
		assert.Nil(t, got.Phone)
	})

	t.Run("fully optional profile", func(t *testing.T) {
		s := newStore(t)
		p, err := s.CreatePerson(ctx, types.PersonCreate{})
		require.NoError(t, err)
		assert.NotNil(t, p.Addresses)
		assert.Empty(t, p.Addresses)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		s := newStore(t)
		p, err := s.CreatePerson(ctx, types.PersonCreate{
			FirstName: ptr("Ada"),
			Addresses: []types.PersonAddress{{Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"}},
		})
		require.NoError(t, err)

		*p.FirstName = "Mallory"
		p.Addresses[0].City = "Gotham"

		got, err := s.GetPersonByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", *got.FirstName)
		assert.Equal(t, "NYC", got.Addresses[0].City)
	})

	t.Run("list by embedded address city and country", func(t *testing.T) {
		s := newStore(t)
		nyc := types.PersonAddress{Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"}
		london := types.PersonAddress{Street: "2 High", City: "London", State: "LDN", PostalCode: "N1", Country: "UK"}

		both, err := s.CreatePerson(ctx, types.PersonCreate{LastName: ptr("Lovelace"), Addresses: []types.PersonAddress{nyc, london}})
		require.NoError(t, err)
		onlyNYC, err := s.CreatePerson(ctx, types.PersonCreate{LastName: ptr("Hopper"), Addresses: []types.PersonAddress{nyc}})
		require.NoError(t, err)
		_, err = s.CreatePerson(ctx, types.PersonCreate{LastName: ptr("Nobody")})
		require.NoError(t, err)

		personID := func(p types.Person) uuid.UUID { return p.ID }

		got, err := s.GetPersons(ctx, types.PersonFilter{City: ptr("NYC")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{both.ID, onlyNYC.ID}, ids(got, personID))

		got, err = s.GetPersons(ctx, types.PersonFilter{Country: ptr("UK")})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{both.ID}, ids(got, personID))

		got, err = s.GetPersons(ctx, types.PersonFilter{City: ptr("NYC"), LastName: ptr("Hopper")})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{onlyNYC.ID}, ids(got, personID))

		got, err = s.GetPersons(ctx, types.PersonFilter{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("update clears nullable fields and replaces addresses", func(t *testing.T) {
		s := newStore(t)
		p, err := s.CreatePerson(ctx, types.PersonCreate{
			FirstName: ptr("Ada"),
			Phone:     ptr("555-0100"),
			BirthDate: ptr("1815-12-10"),
			Addresses: []types.PersonAddress{{Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"}},
		})
		require.NoError(t, err)

		got, err := s.UpdatePersonByID(ctx, p.ID, decode[types.PersonUpdate](t,
			`{"phone":null,"addresses":[{"street":"9 Elm","city":"Boston","state":"MA","postal_code":"02101","country":"USA"}]}`))
		require.NoError(t, err)
		assert.Equal(t, ptr("Ada"), got.FirstName)
		assert.Equal(t, ptr("1815-12-10"), got.BirthDate)
		assert.Nil(t, got.Phone)
		require.Len(t, got.Addresses, 1)
		assert.Equal(t, "Boston", got.Addresses[0].City)
		assert.NotEqual(t, uuid.Nil, got.Addresses[0].ID)

		stored, err := s.GetPersonByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Addresses, stored.Addresses)
		assert.Nil(t, stored.Phone)

		persons, err := s.GetPersons(ctx, types.PersonFilter{City: ptr("NYC")})
		require.NoError(t, err)
		assert.Empty(t, persons)
	})

	t.Run("delete", func(t *testing.T) {
		s := newStore(t)
		p, err := s.CreatePerson(ctx, types.PersonCreate{})
		require.NoError(t, err)
		require.NoError(t, s.DeletePersonByID(ctx, p.ID))
		_, err = s.GetPersonByID(ctx, p.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.DeletePersonByID(ctx, p.ID), storage.ErrNotFound)
	})
}

func testCourse(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		s := newStore(t)
		c := mustCourse(t, s, cloudComputing())
		assert.True(t, c.CreatedAt.Equal(c.UpdatedAt))

		got, err := s.GetCourseByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, c.ID, got.ID)
		assert.Equal(t, "COMS4153", got.Code)
		assert.Equal(t, "Prof. Ferguson", got.Instructor)
	})

	t.Run("duplicate offering conflicts", func(t *testing.T) {
		s := newStore(t)
		mustCourse(t, s, types.CourseCreate{Code: "X", Title: "First", Instructor: "A", Semester: "F25"})

		_, err := s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "Second", Instructor: "B", Semester: "F25"})
		assert.ErrorIs(t, err, storage.ErrConflict)

		got, err := s.GetCourses(ctx, types.CourseFilter{Code: ptr("X"), Semester: ptr("F25")})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "First", got[0].Title)
	})

	t.Run("same code in another semester is fine", func(t *testing.T) {
		s := newStore(t)
		mustCourse(t, s, types.CourseCreate{Code: "X", Title: "T", Instructor: "A", Semester: "F25"})
		_, err := s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "T", Instructor: "A", Semester: "S26"})
		assert.NoError(t, err)
	})

	t.Run("update into existing offering conflicts and leaves record unchanged", func(t *testing.T) {
		s := newStore(t)
		mustCourse(t, s, types.CourseCreate{Code: "X", Title: "T", Instructor: "A", Semester: "F25"})
		other := mustCourse(t, s, types.CourseCreate{Code: "Y", Title: "T", Instructor: "A", Semester: "F25"})

		_, err := s.UpdateCourseByID(ctx, other.ID, decode[types.CourseUpdate](t, `{"code":"X","title":"Renamed"}`))
		assert.ErrorIs(t, err, storage.ErrConflict)

		got, err := s.GetCourseByID(ctx, other.ID)
		require.NoError(t, err)
		assert.Equal(t, "Y", got.Code)
		assert.Equal(t, "T", got.Title)
		assert.True(t, got.UpdatedAt.Equal(other.UpdatedAt))
	})

	t.Run("update keeping own offering is not a conflict", func(t *testing.T) {
		s := newStore(t)
		c := mustCourse(t, s, cloudComputing())

		got, err := s.UpdateCourseByID(ctx, c.ID, decode[types.CourseUpdate](t, `{"code":"COMS4153","instructor":"Dr. Who"}`))
		require.NoError(t, err)
		assert.Equal(t, "Dr. Who", got.Instructor)
		assert.Equal(t, "Cloud Computing", got.Title)
		assert.Equal(t, "Fall 2025", got.Semester)
		assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
		assert.False(t, got.UpdatedAt.Before(c.UpdatedAt))
	})

	t.Run("list filters", func(t *testing.T) {
		s := newStore(t)
		a := mustCourse(t, s, types.CourseCreate{Code: "A", Title: "T", Instructor: "Smith", Semester: "F25"})
		b := mustCourse(t, s, types.CourseCreate{Code: "B", Title: "T", Instructor: "Smith", Semester: "S26"})
		mustCourse(t, s, types.CourseCreate{Code: "C", Title: "T", Instructor: "Jones", Semester: "F25"})

		courseID := func(c types.Course) uuid.UUID { return c.ID }

		got, err := s.GetCourses(ctx, types.CourseFilter{Instructor: ptr("Smith")})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, ids(got, courseID))

		got, err = s.GetCourses(ctx, types.CourseFilter{Instructor: ptr("Smith"), Semester: ptr("F25")})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a.ID}, ids(got, courseID))
	})

	t.Run("not found", func(t *testing.T) {
		s := newStore(t)
		missing := uuid.New()
		_, err := s.GetCourseByID(ctx, missing)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.UpdateCourseByID(ctx, missing, types.CourseUpdate{})
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, s.DeleteCourseByID(ctx, missing), storage.ErrNotFound)
	})
}

func testAssignment(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("create defaults points to 100", func(t *testing.T) {
		s := newStore(t)
		c := mustCourse(t, s, cloudComputing())

		a := mustAssignment(t, s, c.ID, "HW1")
		assert.Equal(t, c.ID, a.CourseID)
		require.NotNil(t, a.Points)
		assert.Equal(t, types.DefaultPoints, *a.Points)
		assert.Nil(t, a.DueDate)
		assert.True(t, a.CreatedAt.Equal(a.UpdatedAt))

		got, err := s.GetAssignmentByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, ptr(100), got.Points)
	})

	t.Run("create keeps explicit points and due date", func(t *testing.T) {
		s := newStore(t)
		c := mustCourse(t, s, cloudComputing())

		a, err := s.CreateAssignment(ctx, decode[types.AssignmentCreate](t,
			`{"course_id":"`+c.ID.String()+`","title":"HW2","due_date":"2025-09-14","points":0}`))
		require.NoError(t, err)
		assert.Equal(t, ptr(0), a.Points)
		assert.Equal(t, ptr("2025-09-14"), a.DueDate)

		b, err := s.CreateAssignment(ctx, decode[types.AssignmentCreate](t,
			`{"course_id":"`+c.ID.String()+`","title":"HW3","points":null}`))
		require.NoError(t, err)
		assert.Nil(t, b.Points)

		got, err := s.GetAssignmentByID(ctx, b.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Points)
	})

	t.Run("create with unknown course is a bad reference", func(t *testing.T) {
		s := newStore(t)
		_, err := s.CreateAssignment(ctx, types.AssignmentCreate{CourseID: uuid.New(), Title: "HW1"})
		assert.ErrorIs(t, err, storage.ErrBadReference)

		all, err := s.GetAssignments(ctx, types.AssignmentFilter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("update validates the merged course id", func(t *testing.T) {
		s := newStore(t)
		c1 := mustCourse(t, s, cloudComputing())
		c2 := mustCourse(t, s, types.CourseCreate{Code: "COMS4111", Title: "Databases", Instructor: "Prof. Ross", Semester: "Fall 2025"})
		a := mustAssignment(t, s, c1.ID, "HW1")

		_, err := s.UpdateAssignmentByID(ctx, a.ID, decode[types.AssignmentUpdate](t, `{"course_id":"`+uuid.NewString()+`","title":"lost"}`))
		assert.ErrorIs(t, err, storage.ErrBadReference)

		got, err := s.GetAssignmentByID(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, c1.ID, got.CourseID)
		assert.Equal(t, "HW1", got.Title)

		got, err = s.UpdateAssignmentByID(ctx, a.ID, decode[types.AssignmentUpdate](t, `{"course_id":"`+c2.ID.String()+`","points":250}`))
		require.NoError(t, err)
		assert.Equal(t, c2.ID, got.CourseID)
		assert.Equal(t, "HW1", got.Title)
		assert.Equal(t, ptr(250), got.Points)
		assert.False(t, got.UpdatedAt.Before(a.UpdatedAt))
	})

	t.Run("update clears due date and points", func(t *testing.T) {
		s := newStore(t)
		c := mustCourse(t, s, cloudComputing())
		a, err := s.CreateAssignment(ctx, types.AssignmentCreate{CourseID: c.ID, Title: "HW1", DueDate: ptr("2025-09-14")})
		require.NoError(t, err)

		got, err := s.UpdateAssignmentByID(ctx, a.ID, decode[types.AssignmentUpdate](t, `{"due_date":null,"points":null}`))
		require.NoError(t, err)
		assert.Nil(t, got.DueDate)
		assert.Nil(t, got.Points)
		assert.Equal(t, "HW1", got.Title)
	})

	t.Run("list by course", func(t *testing.T) {
		s := newStore(t)
		c1 := mustCourse(t, s, cloudComputing())
		c2 := mustCourse(t, s, types.CourseCreate{Code: "COMS4111", Title: "Databases", Instructor: "Prof. Ross", Semester: "Fall 2025"})
		a1 := mustAssignment(t, s, c1.ID, "HW1")
		a2 := mustAssignment(t, s, c1.ID, "HW2")
		mustAssignment(t, s, c2.ID, "HW1")

		assignmentID := func(a types.Assignment) uuid.UUID { return a.ID }

		got, err := s.GetAssignments(ctx, types.AssignmentFilter{CourseID: &c1.ID})
		require.NoError(t, err)
		assert.ElementsMatch(t, []uuid.UUID{a1.ID, a2.ID}, ids(got, assignmentID))

		got, err = s.GetAssignments(ctx, types.AssignmentFilter{CourseID: &c1.ID, Title: ptr("HW2")})
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{a2.ID}, ids(got, assignmentID))
	})

	t.Run("delete does not touch the course", func(t *testing.T) {
		s := newStore(t)
		c := mustCourse(t, s, cloudComputing())
		a := mustAssignment(t, s, c.ID, "HW1")

		require.NoError(t, s.DeleteAssignmentByID(ctx, a.ID))
		_, err := s.GetAssignmentByID(ctx, a.ID)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = s.GetCourseByID(ctx, c.ID)
		assert.NoError(t, err)
		assert.ErrorIs(t, s.DeleteAssignmentByID(ctx, a.ID), storage.ErrNotFound)
	})
}

func testCascade(t *testing.T, newStore Factory) {
	ctx := context.Background()
	s := newStore(t)

	c1 := mustCourse(t, s, types.CourseCreate{Code: "COMS4153", Title: "Cloud Computing", Instructor: "Prof. Ferguson", Semester: "Fall 2025"})
	c2 := mustCourse(t, s, types.CourseCreate{Code: "COMS4111", Title: "Databases", Instructor: "Prof. Ross", Semester: "Fall 2025"})
	a1 := mustAssignment(t, s, c1.ID, "HW1")
	a2 := mustAssignment(t, s, c1.ID, "HW2")
	kept := mustAssignment(t, s, c2.ID, "HW1")

	require.NoError(t, s.DeleteCourseByID(ctx, c1.ID))

	_, err := s.GetCourseByID(ctx, c1.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	for _, id := range []uuid.UUID{a1.ID, a2.ID} {
		_, err := s.GetAssignmentByID(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	}

	remaining, err := s.GetAssignments(ctx, types.AssignmentFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{kept.ID}, ids(remaining, func(a types.Assignment) uuid.UUID { return a.ID }))

	_, err = s.CreateAssignment(ctx, types.AssignmentCreate{CourseID: c1.ID, Title: "late"})
	assert.ErrorIs(t, err, storage.ErrBadReference)
}

func testConcurrency(t *testing.T, newStore Factory) {
	ctx := context.Background()

	t.Run("only one of many identical courses is created", func(t *testing.T) {
		s := newStore(t)
		const workers = 16

		var wg sync.WaitGroup
		errs := make([]error, workers)
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errs[i] = s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "T", Instructor: "I", Semester: "F25"})
			}(i)
		}
		wg.Wait()

		created := 0
		for _, err := range errs {
			if err == nil {
				created++
				continue
			}
			assert.ErrorIs(t, err, storage.ErrConflict)
		}
		assert.Equal(t, 1, created)

		all, err := s.GetCourses(ctx, types.CourseFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("no assignment outlives its course", func(t *testing.T) {
		s := newStore(t)
		c := mustCourse(t, s, cloudComputing())

		var wg sync.WaitGroup
		for i := 0; i < 16; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.CreateAssignment(ctx, types.AssignmentCreate{CourseID: c.ID, Title: "HW"})
				if err != nil {
					assert.ErrorIs(t, err, storage.ErrBadReference)
				}
			}()
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, s.DeleteCourseByID(ctx, c.ID))
		}()
		wg.Wait()

		left, err := s.GetAssignments(ctx, types.AssignmentFilter{CourseID: &c.ID})
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}
