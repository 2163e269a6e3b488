package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMigrationsPath(t *testing.T) {
	assert.Equal(t, "/custom", resolveMigrationsPath("/custom"))

	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, defaultMigrationsPath), 0o755))
	t.Chdir(dir)
	assert.Equal(t, defaultMigrationsPath, resolveMigrationsPath(""))
}

func TestRootCommandTree(t *testing.T) {
	root := newRootCommand()

	migrate, _, err := root.Find([]string{"migrate", "up"})
	require.NoError(t, err)
	assert.Equal(t, "up", migrate.Name())

	for _, name := range []string{"down", "steps", "goto", "version", "force", "drop", "create", "list"} {
		cmd, _, err := root.Find([]string{"migrate", name})
		require.NoError(t, err, name)
		assert.Equal(t, name, cmd.Name())
	}

	su, _, err := root.Find([]string{"createsuperuser"})
	require.NoError(t, err)
	assert.NotNil(t, su.Flags().Lookup("username"))
	assert.NotNil(t, su.Flags().Lookup("password"))
}
