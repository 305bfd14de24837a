package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCmd(t *testing.T) {
	t.Parallel()

	t.Run("unborn branch with an untracked file", func(t *testing.T) {
		t.Parallel()

		repoPath := initTestRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(repoPath, "a.txt"), []byte("content"), 0o644))

		out, err := runCLI(t, repoPath, "status")
		require.NoError(t, err)
		assert.Contains(t, out, "On branch master.")
		assert.Contains(t, out, "Untracked files:")
		assert.Contains(t, out, "a.txt")
	})

	t.Run("staged file shows as added", func(t *testing.T) {
		t.Parallel()

		repoPath := initTestRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(repoPath, "a.txt"), []byte("content"), 0o644))

		_, err := runCLI(t, repoPath, "add", "a.txt")
		require.NoError(t, err)

		out, err := runCLI(t, repoPath, "status")
		require.NoError(t, err)
		assert.Contains(t, out, "Changes to be committed:")
		assert.Contains(t, out, "added:    a.txt")
	})
}
