package migration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"add reviews table":  "add_reviews_table",
		"Add-Post-Slug":      "add_post_slug",
		"add__payment__date": "add_payment_date",
		"   spaces   ":       "spaces",
		"special!@#$chars":   "specialchars",
		"_leading":           "leading",
		"":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, sanitizeName(in), in)
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	first, err := Create(dir, "init schema", now)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, filepath.Join(dir, "000001_init_schema.up.sql"), first.UpPath)

	second, err := Create(dir, "add promotions", now)
	require.NoError(t, err)
	assert.Equal(t, uint(2), second.Version)

	body, err := os.ReadFile(second.DownPath)
	require.NoError(t, err)
	assert.Contains(t, string(body), "add promotions (down)")
	assert.Contains(t, string(body), "2024-05-01T12:00:00Z")

	_, err = Create(dir, "!!!", now)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"000010_later.up.sql", "000010_later.down.sql",
		"000002_early.up.sql", "000002_early.down.sql",
		"README.md", "notes_x.up.sql",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0o644))
	}

	files, err := List(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, uint(2), files[0].Version)
	assert.Equal(t, "early", files[0].Name)
	assert.Equal(t, uint(10), files[1].Version)

	missing, err := List(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestRepositoryMigrationsArePaired(t *testing.T) {
	dir := filepath.Join("..", "..", "..", "migrations")
	files, err := List(dir)
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for i, f := range files {
		assert.Equal(t, uint(i+1), f.Version, "versions are contiguous")
		_, err := os.Stat(f.DownPath)
		assert.NoError(t, err, "down migration for %s", f.Name)
	}
}
