package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// Assignment writes read the courses table, so they hold courses.mu
// (shared) before assignments.mu, matching the order DeleteCourseByID uses.

// checkCourseRef rejects a when its course does not exist. Caller holds
// courses.mu.
func (s *Store) checkCourseRef(a types.Assignment) error {
	if !s.courses.has(a.CourseID) {
		return fmt.Errorf("course_id %s must refer to an existing course: %w", a.CourseID, storage.ErrBadReference)
	}
	return nil
}

func (s *Store) CreateAssignment(_ context.Context, input types.AssignmentCreate) (types.Assignment, error) {
	s.courses.mu.RLock()
	defer s.courses.mu.RUnlock()
	s.assignments.mu.Lock()
	defer s.assignments.mu.Unlock()

	assignment := input.Record(s.newID(), s.nowFn())
	if err := s.checkCourseRef(assignment); err != nil {
		return types.Assignment{}, err
	}
	s.assignments.put(assignment.ID, assignment)
	return assignment.Clone(), nil
}

func (s *Store) GetAssignmentByID(_ context.Context, id uuid.UUID) (types.Assignment, error) {
	s.assignments.mu.RLock()
	defer s.assignments.mu.RUnlock()

	assignment, ok := s.assignments.get(id)
	if !ok {
		return types.Assignment{}, fmt.Errorf("assignment %s: %w", id, storage.ErrNotFound)
	}
	return assignment.Clone(), nil
}

func (s *Store) GetAssignments(_ context.Context, filter types.AssignmentFilter) ([]types.Assignment, error) {
	s.assignments.mu.RLock()
	defer s.assignments.mu.RUnlock()

	return s.assignments.filter(filter.Match, types.Assignment.Clone), nil
}

func (s *Store) UpdateAssignmentByID(_ context.Context, id uuid.UUID, patch types.AssignmentUpdate) (types.Assignment, error) {
	s.courses.mu.RLock()
	defer s.courses.mu.RUnlock()
	s.assignments.mu.Lock()
	defer s.assignments.mu.Unlock()

	current, ok := s.assignments.get(id)
	if !ok {
		return types.Assignment{}, fmt.Errorf("assignment %s: %w", id, storage.ErrNotFound)
	}

	assignment := current.Clone()
	patch.ApplyTo(&assignment)
	if err := s.checkCourseRef(assignment); err != nil {
		return types.Assignment{}, err
	}
	assignment.UpdatedAt = s.touch(current.UpdatedAt)
	s.assignments.put(id, assignment)
	return assignment.Clone(), nil
}

func (s *Store) DeleteAssignmentByID(_ context.Context, id uuid.UUID) error {
	s.assignments.mu.Lock()
	defer s.assignments.mu.Unlock()

	if !s.assignments.remove(id) {
		return fmt.Errorf("assignment %s: %w", id, storage.ErrNotFound)
	}
	return nil
}
