package types

import (
	"time"

	"github.com/google/uuid"
)

// DefaultPoints is used when a new assignment omits points.
const DefaultPoints = 100

// Assignment is a stored assignment. CourseID always references an
// existing course; deleting that course deletes the assignment.
type Assignment struct {
	ID        uuid.UUID `json:"id"`
	CourseID  uuid.UUID `json:"course_id"`
	Title     string    `json:"title"`
	DueDate   *string   `json:"due_date"`
	Points    *int      `json:"points"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a copy that shares no pointers with a.
func (a Assignment) Clone() Assignment {
	out := a
	out.DueDate = clonePtr(a.DueDate)
	out.Points = clonePtr(a.Points)
	return out
}

// AssignmentCreate is the POST /assignments payload. Points distinguishes
// omitted (default 100) from an explicit null (no points).
type AssignmentCreate struct {
	CourseID uuid.UUID     `json:"course_id" validate:"required"`
	Title    string        `json:"title"     validate:"required"`
	DueDate  *string       `json:"due_date"  validate:"omitempty,datetime=2006-01-02"`
	Points   Nullable[int] `json:"points"    validate:"omitnil,min=0,max=1000"`
}

// Record builds the stored assignment.
func (c AssignmentCreate) Record(id uuid.UUID, now time.Time) Assignment {
	points := c.Points.Ptr()
	if !c.Points.Set {
		def := DefaultPoints
		points = &def
	}
	return Assignment{
		ID:        id,
		CourseID:  c.CourseID,
		Title:     c.Title,
		DueDate:   clonePtr(c.DueDate),
		Points:    points,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AssignmentUpdate is the PATCH /assignments/{id} payload.
type AssignmentUpdate struct {
	CourseID Optional[uuid.UUID] `json:"course_id"`
	Title    Optional[string]    `json:"title"`
	DueDate  Nullable[string]    `json:"due_date" validate:"omitnil,datetime=2006-01-02"`
	Points   Nullable[int]       `json:"points"   validate:"omitnil,min=0,max=1000"`
}

// ApplyTo merges the fields present in u into a.
func (u AssignmentUpdate) ApplyTo(a *Assignment) {
	u.CourseID.ApplyTo(&a.CourseID)
	u.Title.ApplyTo(&a.Title)
	u.DueDate.ApplyTo(&a.DueDate)
	u.Points.ApplyTo(&a.Points)
}

// AssignmentFilter narrows GET /assignments.
type AssignmentFilter struct {
	CourseID *uuid.UUID
	Title    *string
}

// Match reports whether a satisfies every set filter field.
func (f AssignmentFilter) Match(a Assignment) bool {
	if f.CourseID != nil && *f.CourseID != a.CourseID {
		return false
	}
	return matches(f.Title, a.Title)
}
