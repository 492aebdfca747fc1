package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

// checkOffering rejects c when another course (any id but c.ID) already
// uses its (code, semester). Caller holds courses.mu.
func (s *Store) checkOffering(c types.Course) error {
	for _, other := range s.courses.rows {
		if other.ID != c.ID && other.SameOffering(c) {
			return fmt.Errorf("course %s already exists for semester %s: %w", c.Code, c.Semester, storage.ErrConflict)
		}
	}
	return nil
}

func (s *Store) CreateCourse(_ context.Context, input types.CourseCreate) (types.Course, error) {
	s.courses.mu.Lock()
	defer s.courses.mu.Unlock()

	course := input.Record(s.newID(), s.nowFn())
	if err := s.checkOffering(course); err != nil {
		return types.Course{}, err
	}
	s.courses.put(course.ID, course)
	return course, nil
}

func (s *Store) GetCourseByID(_ context.Context, id uuid.UUID) (types.Course, error) {
	s.courses.mu.RLock()
	defer s.courses.mu.RUnlock()

	course, ok := s.courses.get(id)
	if !ok {
		return types.Course{}, fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	return course, nil
}

func (s *Store) GetCourses(_ context.Context, filter types.CourseFilter) ([]types.Course, error) {
	s.courses.mu.RLock()
	defer s.courses.mu.RUnlock()

	return s.courses.filter(filter.Match, identity[types.Course]), nil
}

func (s *Store) UpdateCourseByID(_ context.Context, id uuid.UUID, patch types.CourseUpdate) (types.Course, error) {
	s.courses.mu.Lock()
	defer s.courses.mu.Unlock()

	course, ok := s.courses.get(id)
	if !ok {
		return types.Course{}, fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}

	// course is a copy; nothing is stored unless the merged value passes.
	patch.ApplyTo(&course)
	if err := s.checkOffering(course); err != nil {
		return types.Course{}, err
	}
	course.UpdatedAt = s.touch(course.UpdatedAt)
	s.courses.put(id, course)
	return course, nil
}

func (s *Store) DeleteCourseByID(_ context.Context, id uuid.UUID) error {
	s.courses.mu.Lock()
	defer s.courses.mu.Unlock()
	s.assignments.mu.Lock()
	defer s.assignments.mu.Unlock()

	if !s.courses.has(id) {
		return fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}

	var orphans []uuid.UUID
	for aid, a := range s.assignments.rows {
		if a.CourseID == id {
			orphans = append(orphans, aid)
		}
	}
	for _, aid := range orphans {
		s.assignments.remove(aid)
	}
	s.courses.remove(id)
	return nil
}
