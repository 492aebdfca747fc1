package types

import (
	"time"

	"github.com/google/uuid"
)

// Course is a stored course offering. (Code, Semester) is unique across
// all courses.
type Course struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	Title      string    `json:"title"`
	Instructor string    `json:"instructor"`
	Semester   string    `json:"semester"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SameOffering reports whether c and o share code and semester.
func (c Course) SameOffering(o Course) bool {
	return c.Code == o.Code && c.Semester == o.Semester
}

// CourseCreate is the POST /courses payload.
//
//	{ "code": "COMS4153", "title": "Cloud Computing",
//	  "instructor": "Prof. Ferguson", "semester": "Fall 2025" }
type CourseCreate struct {
	Code       string `json:"code"       validate:"required"`
	Title      string `json:"title"      validate:"required"`
	Instructor string `json:"instructor" validate:"required"`
	Semester   string `json:"semester"   validate:"required"`
}

// Record builds the stored course.
func (c CourseCreate) Record(id uuid.UUID, now time.Time) Course {
	return Course{
		ID:         id,
		Code:       c.Code,
		Title:      c.Title,
		Instructor: c.Instructor,
		Semester:   c.Semester,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// CourseUpdate is the PATCH /courses/{id} payload.
type CourseUpdate struct {
	Code       Optional[string] `json:"code"`
	Title      Optional[string] `json:"title"`
	Instructor Optional[string] `json:"instructor"`
	Semester   Optional[string] `json:"semester"`
}

// ApplyTo merges the fields present in u into c.
func (u CourseUpdate) ApplyTo(c *Course) {
	u.Code.ApplyTo(&c.Code)
	u.Title.ApplyTo(&c.Title)
	u.Instructor.ApplyTo(&c.Instructor)
	u.Semester.ApplyTo(&c.Semester)
}

// CourseFilter narrows GET /courses.
type CourseFilter struct {
	Code       *string
	Title      *string
	Instructor *string
	Semester   *string
}

// Match reports whether c satisfies every set filter field.
func (f CourseFilter) Match(c Course) bool {
	return matches(f.Code, c.Code) &&
		matches(f.Title, c.Title) &&
		matches(f.Instructor, c.Instructor) &&
		matches(f.Semester, c.Semester)
}
