package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/storage"
	"github.com/aanand-mishra/campus-api/internal/storage/storagetest"
	"github.com/aanand-mishra/campus-api/internal/types"
)

func newStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStore(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return newStore(t) })
}

func TestNewFromConfig(t *testing.T) {
	cfg := &config.Config{Storage: config.Storage{Driver: config.DriverSQLite, Path: ":memory:"}}
	s, err := New(cfg)
	require.NoError(t, err)
	defer s.Close()

	var fk int
	require.NoError(t, s.Db.QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestWithForeignKeys(t *testing.T) {
	assert.Equal(t, ":memory:?_foreign_keys=on", withForeignKeys(":memory:"))
	assert.Equal(t, "file:x.db?cache=shared&_foreign_keys=on", withForeignKeys("file:x.db?cache=shared"))
}

func TestSchemaBacksIntegrityRules(t *testing.T) {
	ctx := context.Background()
	s := newStore(t)
	c, err := s.CreateCourse(ctx, types.CourseCreate{Code: "X", Title: "T", Instructor: "I", Semester: "F25"})
	require.NoError(t, err)

	t.Run("unique offering", func(t *testing.T) {
		_, err := s.Db.Exec(
			"INSERT INTO courses ("+courseColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			uuid.New(), "X", "T", "I", "F25", c.CreatedAt, c.UpdatedAt,
		)
		require.Error(t, err)
		assert.ErrorIs(t, translate(err), storage.ErrConflict)
	})

	t.Run("course reference", func(t *testing.T) {
		_, err := s.Db.Exec(
			"INSERT INTO assignments ("+assignmentColumns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
			uuid.New(), uuid.New(), "HW", nil, nil, c.CreatedAt, c.UpdatedAt,
		)
		require.Error(t, err)
		assert.ErrorIs(t, translate(err), storage.ErrBadReference)
	})
}

func TestCancelledTransactionKeepsDatabase(t *testing.T) {
	s := newStore(t)
	_, err := s.CreateCourse(context.Background(), types.CourseCreate{Code: "COMS4111", Title: "Databases", Instructor: "Ferguson", Semester: "F25"})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		cancel()
		_, err := tx.ExecContext(ctx, "DELETE FROM courses")
		return err
	})
	require.ErrorIs(t, err, context.Canceled)

	courses, err := s.GetCourses(context.Background(), types.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, courses, 1)

	// A request cancelled before it reaches the store must not wipe it either.
	_, err = s.CreateCourse(ctx, types.CourseCreate{Code: "COMS4115", Title: "PLT", Instructor: "Edwards", Semester: "F25"})
	require.Error(t, err)

	courses, err = s.GetCourses(context.Background(), types.CourseFilter{})
	require.NoError(t, err)
	assert.Len(t, courses, 1)
}

func TestTranslatePassesThroughOtherErrors(t *testing.T) {
	err := errors.New("boom")
	assert.Same(t, err, translate(err))
}

func TestWhere(t *testing.T) {
	var w where
	assert.Equal(t, "", w.String())

	city := "NYC"
	w.eq("city", &city)
	w.eq("state", nil)
	w.add("points > ?", 10)
	assert.Equal(t, " WHERE city = ? AND points > ?", w.String())
	assert.Equal(t, []any{"NYC", 10}, w.args)
}
