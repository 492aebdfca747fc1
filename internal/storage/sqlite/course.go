package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/types"
)

const courseColumns = "id, code, title, instructor, semester, created_at, updated_at"

func scanCourse(row scanner) (types.Course, error) {
	var c types.Course
	err := row.Scan(&c.ID, &c.Code, &c.Title, &c.Instructor, &c.Semester, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func getCourse(ctx context.Context, q queryer, id uuid.UUID) (types.Course, error) {
	c, err := scanCourse(q.QueryRowContext(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Course{}, fmt.Errorf("course %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Course{}, fmt.Errorf("GetCourseByID: scan: %w", err)
	}
	return c, nil
}

// checkOffering rejects c when another course already uses its
// (code, semester). The UNIQUE index would also refuse the write; the
// explicit check gives the same message as the memory backend.
func checkOffering(ctx context.Context, tx *sql.Tx, c types.Course) error {
	taken, err := exists(ctx, tx,
		"SELECT 1 FROM courses WHERE code = ? AND semester = ? AND id <> ? LIMIT 1",
		c.Code, c.Semester, c.ID,
	)
	if err != nil {
		return fmt.Errorf("check course offering: %w", err)
	}
	if taken {
		return fmt.Errorf("course %s already exists for semester %s: %w", c.Code, c.Semester, storage.ErrConflict)
	}
	return nil
}

func (s *SQLite) CreateCourse(ctx context.Context, input types.CourseCreate) (types.Course, error) {
	course := input.Record(s.newID(), s.nowFn())

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkOffering(ctx, tx, course); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO courses ("+courseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			course.ID, course.Code, course.Title, course.Instructor, course.Semester, course.CreatedAt, course.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("CreateCourse: exec: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return types.Course{}, err
	}
	return course, nil
}

func (s *SQLite) GetCourseByID(ctx context.Context, id uuid.UUID) (types.Course, error) {
	return getCourse(ctx, s.Db, id)
}

func (s *SQLite) GetCourses(ctx context.Context, filter types.CourseFilter) ([]types.Course, error) {
	var w where
	w.eq("code", filter.Code)
	w.eq("title", filter.Title)
	w.eq("instructor", filter.Instructor)
	w.eq("semester", filter.Semester)

	rows, err := s.Db.QueryContext(ctx, "SELECT "+courseColumns+" FROM courses"+w.String()+" ORDER BY rowid", w.args...)
	if err != nil {
		return nil, fmt.Errorf("GetCourses: query: %w", err)
	}
	defer rows.Close()

	courses := make([]types.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("GetCourses: scan row: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetCourses: rows iteration: %w", err)
	}
	return courses, nil
}

func (s *SQLite) UpdateCourseByID(ctx context.Context, id uuid.UUID, patch types.CourseUpdate) (types.Course, error) {
	var course types.Course
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := getCourse(ctx, tx, id)
		if err != nil {
			return err
		}

		course = current
		patch.ApplyTo(&course)
		if err := checkOffering(ctx, tx, course); err != nil {
			return err
		}
		course.UpdatedAt = s.touch(current.UpdatedAt)

		_, err = tx.ExecContext(ctx,
			"UPDATE courses SET code = ?, title = ?, instructor = ?, semester = ?, updated_at = ? WHERE id = ?",
			course.Code, course.Title, course.Instructor, course.Semester, course.UpdatedAt, id,
		)
		if err != nil {
			return fmt.Errorf("UpdateCourseByID: exec: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return types.Course{}, err
	}
	return course, nil
}

// DeleteCourseByID removes the course and, in the same transaction, every
// assignment that references it.
func (s *SQLite) DeleteCourseByID(ctx context.Context, id uuid.UUID) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE course_id = ?", id); err != nil {
			return fmt.Errorf("DeleteCourseByID: exec assignments: %w", err)
		}
		result, err := tx.ExecContext(ctx, "DELETE FROM courses WHERE id = ?", id)
		if err != nil {
			return fmt.Errorf("DeleteCourseByID: exec: %w", err)
		}
		return requireOne(result, "course", id)
	})
}
