// Package storage defines the Storage interface, the contract any backend
// must satisfy to work with this application, and the sentinel errors
// every backend reports.
//
// Handlers (HTTP layer) should not know or care which backend they are
// talking to. Two implementations exist:
//
//   - memory: plain Go maps, one lock per entity type (the default)
//   - sqlite: an in-process SQLite database through database/sql
//
// Both enforce the same integrity rules inside the mutation itself:
//
//   - a course's (code, semester) pair is unique          → ErrConflict
//   - an assignment's course_id names an existing course  → ErrBadReference
//   - deleting a course deletes its assignments           (cascade)
//
// A rejected mutation leaves the stored data unchanged.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/types"
)

// Sentinel errors. Backends wrap them with context using fmt.Errorf("...: %w"),
// so callers must compare with errors.Is.
var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a write would violate a uniqueness rule.
	ErrConflict = errors.New("conflict")

	// ErrBadReference is returned when a foreign key does not resolve.
	ErrBadReference = errors.New("bad reference")

	// ErrDuplicateID is returned when a client-chosen id is already taken.
	ErrDuplicateID = errors.New("duplicate id")
)

// Storage is the persistence contract. Every read returns a copy; callers
// may modify returned records freely.
type Storage interface {
	AddressStorage
	PersonStorage
	CourseStorage
	AssignmentStorage

	// Close releases backend resources.
	Close() error
}

// AddressStorage manages the /addresses collection.
type AddressStorage interface {
	// CreateAddress stores a new address. A nil input.ID is replaced by a
	// generated id; a taken id fails with ErrDuplicateID.
	CreateAddress(ctx context.Context, input types.AddressCreate) (types.Address, error)
	GetAddressByID(ctx context.Context, id uuid.UUID) (types.Address, error)
	// GetAddresses returns the matching addresses, never nil.
	GetAddresses(ctx context.Context, filter types.AddressFilter) ([]types.Address, error)
	UpdateAddressByID(ctx context.Context, id uuid.UUID, patch types.AddressUpdate) (types.Address, error)
	DeleteAddressByID(ctx context.Context, id uuid.UUID) error
}

// PersonStorage manages the /persons collection.
type PersonStorage interface {
	CreatePerson(ctx context.Context, input types.PersonCreate) (types.Person, error)
	GetPersonByID(ctx context.Context, id uuid.UUID) (types.Person, error)
	GetPersons(ctx context.Context, filter types.PersonFilter) ([]types.Person, error)
	UpdatePersonByID(ctx context.Context, id uuid.UUID, patch types.PersonUpdate) (types.Person, error)
	DeletePersonByID(ctx context.Context, id uuid.UUID) error
}

// CourseStorage manages the /courses collection.
type CourseStorage interface {
	// CreateCourse fails with ErrConflict when (code, semester) is taken.
	CreateCourse(ctx context.Context, input types.CourseCreate) (types.Course, error)
	GetCourseByID(ctx context.Context, id uuid.UUID) (types.Course, error)
	GetCourses(ctx context.Context, filter types.CourseFilter) ([]types.Course, error)
	// UpdateCourseByID re-checks uniqueness against the merged record,
	// ignoring the course itself.
	UpdateCourseByID(ctx context.Context, id uuid.UUID, patch types.CourseUpdate) (types.Course, error)
	// DeleteCourseByID also deletes every assignment of the course.
	DeleteCourseByID(ctx context.Context, id uuid.UUID) error
}

// AssignmentStorage manages the /assignments collection.
type AssignmentStorage interface {
	// CreateAssignment fails with ErrBadReference for an unknown course.
	CreateAssignment(ctx context.Context, input types.AssignmentCreate) (types.Assignment, error)
	GetAssignmentByID(ctx context.Context, id uuid.UUID) (types.Assignment, error)
	GetAssignments(ctx context.Context, filter types.AssignmentFilter) ([]types.Assignment, error)
	// UpdateAssignmentByID validates the merged course_id.
	UpdateAssignmentByID(ctx context.Context, id uuid.UUID, patch types.AssignmentUpdate) (types.Assignment, error)
	DeleteAssignmentByID(ctx context.Context, id uuid.UUID) error
}
