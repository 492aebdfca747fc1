package main

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/campus-api/internal/config"
	"github.com/aanand-mishra/campus-api/internal/storage/memory"
	"github.com/aanand-mishra/campus-api/internal/storage/sqlite"
	"github.com/aanand-mishra/campus-api/internal/types"
)

func TestSetupStorage(t *testing.T) {
	tests := []struct {
		driver string
		check  func(t *testing.T, v any)
	}{
		{config.DriverMemory, func(t *testing.T, v any) { assert.IsType(t, &memory.Store{}, v) }},
		{config.DriverSQLite, func(t *testing.T, v any) { assert.IsType(t, &sqlite.SQLite{}, v) }},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			store, err := setupStorage(&config.Config{Storage: config.Storage{Driver: tt.driver, Path: ":memory:"}})
			require.NoError(t, err)
			defer store.Close()
			tt.check(t, store)

			_, err = store.CreateCourse(context.Background(), types.CourseCreate{Code: "X", Title: "T", Instructor: "I", Semester: "F25"})
			assert.NoError(t, err)
		})
	}

	_, err := setupStorage(&config.Config{Storage: config.Storage{Driver: "postgres"}})
	assert.Error(t, err)
}

func TestSetupLogger(t *testing.T) {
	ctx := context.Background()
	assert.False(t, setupLogger(config.EnvProd).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(config.EnvStaging).Enabled(ctx, slog.LevelDebug))
	assert.True(t, setupLogger(config.EnvDev).Enabled(ctx, slog.LevelDebug))
}
