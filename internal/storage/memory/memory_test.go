package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/storage/storagetest"
	"github.com/aanand-mishra/campus-api/internal/types"
)

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage {
		s := New()
		t.Cleanup(func() { _ = s.Close() })
		return s
	})
}

// fakeClock returns the queued instants in order, repeating the last one.
type fakeClock struct {
	times []time.Time
}

func (c *fakeClock) now() time.Time {
	t := c.times[0]
	if len(c.times) > 1 {
		c.times = c.times[1:]
	}
	return t
}

func TestTimestampsUseInjectedClock(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{times: []time.Time{t0, t0.Add(time.Minute)}}
	s := New(WithClock(clock.now))

	c, err := s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "T", Instructor: "I", Semester: "F25"})
	require.NoError(t, err)
	assert.Equal(t, t0, c.CreatedAt)
	assert.Equal(t, t0, c.UpdatedAt)

	c, err = s.UpdateCourseByID(ctx, c.ID, types.CourseUpdate{Title: types.Some("New")})
	require.NoError(t, err)
	assert.Equal(t, t0, c.CreatedAt)
	assert.Equal(t, t0.Add(time.Minute), c.UpdatedAt)
}

func TestUpdatedAtNeverMovesBackwards(t *testing.T) {
	ctx := context.Background()
	t0 := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	clock := &fakeClock{times: []time.Time{t0, t0.Add(-time.Hour)}}
	s := New(WithClock(clock.now))

	a, err := s.CreateAddress(ctx, types.AddressCreate{Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"})
	require.NoError(t, err)

	a, err = s.UpdateAddressByID(ctx, a.ID, types.AddressUpdate{City: types.Some("Brooklyn")})
	require.NoError(t, err)
	assert.Equal(t, t0, a.UpdatedAt)
}

func TestIDGenerator(t *testing.T) {
	ctx := context.Background()
	want := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	next := 0
	s := New(WithIDGenerator(func() uuid.UUID {
		id := want[next]
		next++
		return id
	}))

	p, err := s.CreatePerson(ctx, types.PersonCreate{
		Addresses: []types.PersonAddress{
			{Street: "1 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"},
			{Street: "2 Main", City: "NYC", State: "NY", PostalCode: "10001", Country: "USA"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, want[0], p.ID)
	assert.Equal(t, want[1], p.Addresses[0].ID)
	assert.Equal(t, want[2], p.Addresses[1].ID)
}

func TestConflictStoresNothing(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "T", Instructor: "I", Semester: "F25"})
	require.NoError(t, err)
	_, err = s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "T2", Instructor: "I2", Semester: "F25"})
	require.ErrorIs(t, err, storage.ErrConflict)

	assert.Equal(t, 1, s.courses.len())
	assert.Len(t, s.courses.order, 1)
}

func TestCascadeRemovesOrphansFromOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	c, err := s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "T", Instructor: "I", Semester: "F25"})
	require.NoError(t, err)
	for _, title := range []string{"HW1", "HW2", "HW3"} {
		_, err := s.CreateAssignment(ctx, types.AssignmentCreate{CourseID: c.ID, Title: title})
		require.NoError(t, err)
	}
	require.Equal(t, 3, s.assignments.len())

	require.NoError(t, s.DeleteCourseByID(ctx, c.ID))
	assert.Equal(t, 0, s.assignments.len())
	assert.Empty(t, s.assignments.order)
	assert.Equal(t, 0, s.courses.len())
}

func TestListPreservesInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := New()

	var want []uuid.UUID
	for _, street := range []string{"a", "b", "c", "d"} {
		a, err := s.CreateAddress(ctx, types.AddressCreate{Street: street, City: "NYC", State: "NY", PostalCode: "1", Country: "USA"})
		require.NoError(t, err)
		want = append(want, a.ID)
	}
	require.NoError(t, s.DeleteAddressByID(ctx, want[1]))
	want = append(want[:1], want[2:]...)

	got, err := s.GetAddresses(ctx, types.AddressFilter{})
	require.NoError(t, err)
	gotIDs := make([]uuid.UUID, 0, len(got))
	for _, a := range got {
		gotIDs = append(gotIDs, a.ID)
	}
	assert.Equal(t, want, gotIDs)
}
