// AngelaMos | 2026
// migrate_test.go

package core

import (
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrations_Embedded(t *testing.T) {
	files, err := fs.Glob(migrations, "migrations/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	body, err := fs.ReadFile(migrations, "migrations/00001_create_users.sql")
	require.NoError(t, err)
	assert.Contains(t, string(body), "-- +goose Up")
	assert.Contains(t, string(body), "users_single_owner")
}

func TestMigrate_RunsEmbeddedDirectory(t *testing.T) {
	original := gooseUp
	t.Cleanup(func() { gooseUp = original })

	var gotDir string
	gooseUp = func(_ context.Context, _ *sql.DB, dir string) error {
		gotDir = dir
		return nil
	}

	require.NoError(t, Migrate(context.Background(), nil))
	assert.Equal(t, "migrations", gotDir)
}

func TestMigrate_WrapsFailure(t *testing.T) {
	original := gooseUp
	t.Cleanup(func() { gooseUp = original })

	sentinel := errors.New("relation already exists")
	gooseUp = func(context.Context, *sql.DB, string) error {
		return sentinel
	}

	err := Migrate(context.Background(), nil)
	require.ErrorIs(t, err, sentinel)
	assert.Contains(t, err.Error(), "apply migrations")
}
