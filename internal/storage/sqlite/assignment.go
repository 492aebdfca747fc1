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

const assignmentColumns = "id, course_id, title, due_date, points, created_at, updated_at"

func scanAssignment(row scanner) (types.Assignment, error) {
	var a types.Assignment
	var dueDate sql.NullString
	var points sql.NullInt64
	if err := row.Scan(&a.ID, &a.CourseID, &a.Title, &dueDate, &points, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return types.Assignment{}, err
	}
	a.DueDate = nullString(dueDate)
	a.Points = nullInt(points)
	return a, nil
}

func getAssignment(ctx context.Context, q queryer, id uuid.UUID) (types.Assignment, error) {
	a, err := scanAssignment(q.QueryRowContext(ctx, "SELECT "+assignmentColumns+" FROM assignments WHERE id = ? LIMIT 1", id))
	if errors.Is(err, sql.ErrNoRows) {
		return types.Assignment{}, fmt.Errorf("assignment %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return types.Assignment{}, fmt.Errorf("GetAssignmentByID: scan: %w", err)
	}
	return a, nil
}

// checkCourseRef rejects a when its course does not exist. The foreign key
// would also refuse the write.
func checkCourseRef(ctx context.Context, tx *sql.Tx, a types.Assignment) error {
	ok, err := exists(ctx, tx, "SELECT 1 FROM courses WHERE id = ? LIMIT 1", a.CourseID)
	if err != nil {
		return fmt.Errorf("check course reference: %w", err)
	}
	if !ok {
		return fmt.Errorf("course_id %s must refer to an existing course: %w", a.CourseID, storage.ErrBadReference)
	}
	return nil
}

func (s *SQLite) CreateAssignment(ctx context.Context, input types.AssignmentCreate) (types.Assignment, error) {
	assignment := input.Record(s.newID(), s.nowFn())

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		if err := checkCourseRef(ctx, tx, assignment); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO assignments ("+assignmentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			assignment.ID, assignment.CourseID, assignment.Title, assignment.DueDate, assignment.Points,
			assignment.CreatedAt, assignment.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("CreateAssignment: exec: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return types.Assignment{}, err
	}
	return assignment, nil
}

func (s *SQLite) GetAssignmentByID(ctx context.Context, id uuid.UUID) (types.Assignment, error) {
	return getAssignment(ctx, s.Db, id)
}

func (s *SQLite) GetAssignments(ctx context.Context, filter types.AssignmentFilter) ([]types.Assignment, error) {
	var w where
	if filter.CourseID != nil {
		w.add("course_id = ?", *filter.CourseID)
	}
	w.eq("title", filter.Title)

	rows, err := s.Db.QueryContext(ctx, "SELECT "+assignmentColumns+" FROM assignments"+w.String()+" ORDER BY rowid", w.args...)
	if err != nil {
		return nil, fmt.Errorf("GetAssignments: query: %w", err)
	}
	defer rows.Close()

	assignments := make([]types.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("GetAssignments: scan row: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("GetAssignments: rows iteration: %w", err)
	}
	return assignments, nil
}

func (s *SQLite) UpdateAssignmentByID(ctx context.Context, id uuid.UUID, patch types.AssignmentUpdate) (types.Assignment, error) {
	var assignment types.Assignment
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		current, err := getAssignment(ctx, tx, id)
		if err != nil {
			return err
		}

		assignment = current.Clone()
		patch.ApplyTo(&assignment)
		if err := checkCourseRef(ctx, tx, assignment); err != nil {
			return err
		}
		assignment.UpdatedAt = s.touch(current.UpdatedAt)

		_, err = tx.ExecContext(ctx,
			"UPDATE assignments SET course_id = ?, title = ?, due_date = ?, points = ?, updated_at = ? WHERE id = ?",
			assignment.CourseID, assignment.Title, assignment.DueDate, assignment.Points, assignment.UpdatedAt, id,
		)
		if err != nil {
			return fmt.Errorf("UpdateAssignmentByID: exec: %w", translate(err))
		}
		return nil
	})
	if err != nil {
		return types.Assignment{}, err
	}
	return assignment, nil
}

func (s *SQLite) DeleteAssignmentByID(ctx context.Context, id uuid.UUID) error {
	result, err := s.Db.ExecContext(ctx, "DELETE FROM assignments WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("DeleteAssignmentByID: exec: %w", err)
	}
	return requireOne(result, "assignment", id)
}
