package migration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateMigration(t *testing.T) {
	dir := t.TempDir()

	mf, err := CreateMigration(dir, "Add Listing Index", "index listings by shop")
	require.NoError(t, err)

	assert.Len(t, mf.Version, 14, "version should be a 14-digit timestamp")
	assert.Contains(t, mf.UpPath, "add_listing_index.up.sql")
	assert.Contains(t, mf.DownPath, "add_listing_index.down.sql")

	up, err := os.ReadFile(mf.UpPath)
	require.NoError(t, err)
	assert.Contains(t, string(up), "Add Listing Index")
	assert.Contains(t, string(up), "index listings by shop")

	down, err := os.ReadFile(mf.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(down), "Rollback")
}

func TestCreateMigrationMakesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "migrations")

	_, err := CreateMigration(dir, "init", "initial schema")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"create users table", "create_users_table"},
		{"Create-Users--Table", "create_users_table"},
		{"trailing space ", "trailing_space"},
		{"MixedCase123", "mixedcase123"},
		{"weird!@#chars", "weirdchars"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeName(tt.input), "input %q", tt.input)
	}
}

func TestListMigrations(t *testing.T) {
	dir := t.TempDir()

	_, err := CreateMigration(dir, "first", "")
	require.NoError(t, err)

	// A stray non-migration file must not show up in the listing
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("notes"), 0644))

	migrations, err := ListMigrations(dir)
	require.NoError(t, err)
	require.Len(t, migrations, 1)
	assert.Contains(t, migrations[0], "_first")
}

func TestListMigrationsMissingDir(t *testing.T) {
	migrations, err := ListMigrations(filepath.Join(t.TempDir(), "missing"))
	require.NoError(t, err)
	assert.Empty(t, migrations)
}
