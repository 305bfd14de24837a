package backend_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/brodalo/gogit/backend"
	"github.com/brodalo/gogit/env"
	"github.com/brodalo/gogit/ginternals"
	"github.com/brodalo/gogit/ginternals/config"
	"github.com/brodalo/gogit/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig(t *testing.T, dir string, bare bool) *config.Config {
	t.Helper()
	cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
		WorkTreePath:     dir,
		GitDirPath:       filepath.Join(dir, ".git"),
		IsBare:           bare,
		SkipGitDirLookUp: true,
	})
	require.NoError(t, err)
	return cfg
}

func TestInit(t *testing.T) {
	t.Parallel()

	t.Run("regular repo should work", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		cfg := newConfig(t, dir, false)
		b, err := backend.NewFS(cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, b.Close())
		})

		require.NoError(t, b.Init(ginternals.Master))

		data, err := os.ReadFile(filepath.Join(ginternals.DotGitPath(cfg), ginternals.Head))
		require.NoError(t, err)
		require.Equal(t, "ref: refs/heads/master\n", string(data))
	})

	t.Run("repo with separated object dir", func(t *testing.T) {
		t.Parallel()

		repo, cleanupRepo := testhelper.TempDir(t)
		t.Cleanup(cleanupRepo)

		gitDirPath := filepath.Join(repo, ".git")
		objectDirPath := filepath.Join(repo, "git-objects")

		e := env.NewFromKVList([]string{
			"GIT_DIR=" + gitDirPath,
			"GIT_OBJECT_DIRECTORY=" + objectDirPath,
		})
		cfg, err := config.LoadConfig(e, config.LoadConfigOptions{
			IsBare: true,
		})
		require.NoError(t, err)

		b, err := backend.NewFS(cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, b.Close())
		})

		require.NoError(t, b.Init(ginternals.Master))

		assert.DirExists(t, gitDirPath)
		assert.DirExists(t, objectDirPath)
		assert.DirExists(t, ginternals.ObjectsInfoPath(cfg))

		assert.NoDirExists(t, filepath.Join(gitDirPath, "objects"))
	})

	t.Run("bare repo should work", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		cfg := newConfig(t, dir, true)
		b, err := backend.NewFS(cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, b.Close())
		})

		require.NoError(t, b.Init(ginternals.Master))
		assert.FileExists(t, filepath.Join(dir, ".git", ginternals.Head))
	})

	t.Run("repo with existing data should work", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		err := os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0o750)
		require.NoError(t, err)

		err = os.WriteFile(filepath.Join(dir, ".git", "description"), []byte{}, 0o644)
		require.NoError(t, err)

		cfg := newConfig(t, dir, false)
		b, err := backend.NewFS(cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, b.Close())
		})

		require.NoError(t, b.Init(ginternals.Master))
	})

	t.Run("should fail if directory exists without write perm", func(t *testing.T) {
		t.Parallel()

		if runtime.GOOS == "windows" {
			t.Skip("Windows doesn't seem to be blocking writes.")
		}

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		err := os.MkdirAll(filepath.Join(dir, ".git", "objects"), 0o550)
		require.NoError(t, err)

		cfg := newConfig(t, dir, true)
		b, err := backend.NewFS(cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, b.Close())
		})
		err = b.Init(ginternals.Master)
		require.Error(t, err)
		var perror *os.PathError
		require.True(t, errors.As(err, &perror), "error should be os.PathError")
		assert.Equal(t, "permission denied", perror.Err.Error())
	})

	t.Run("should create a symlink", func(t *testing.T) {
		t.Parallel()

		dir, cleanup := testhelper.TempDir(t)
		t.Cleanup(cleanup)

		cfg, err := config.LoadConfigSkipEnv(config.LoadConfigOptions{
			WorkTreePath:     dir,
			GitDirPath:       filepath.Join(dir, "separate-dir"),
			SkipGitDirLookUp: true,
		})
		require.NoError(t, err)

		b, err := backend.NewFS(cfg)
		require.NoError(t, err)
		t.Cleanup(func() {
			require.NoError(t, b.Close())
		})

		require.NoError(t, b.InitWithOptions(ginternals.Master, backend.InitOptions{
			CreateSymlink: true,
		}))

		gitfilePath := filepath.Join(dir, ".git")
		require.FileExists(t, gitfilePath)

		data, err := os.ReadFile(gitfilePath)
		require.NoError(t, err)

		expectedContent := "gitdir: " + filepath.Join(dir, "separate-dir")
		require.Equal(t, expectedContent, string(data))
	})
}
