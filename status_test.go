package git_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/brodalo/gogit"
	"github.com/brodalo/gogit/index"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus(t *testing.T) {
	t.Parallel()

	t.Run("unborn branch reports untracked files and its short name", func(t *testing.T) {
		t.Parallel()

		r, dir := newTestRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("content"), 0o644))

		st, err := r.Status(index.New(), nil)
		require.NoError(t, err)
		assert.Equal(t, "master", st.Branch)
		assert.Empty(t, st.Staged)
		require.Len(t, st.Worktree, 1)
		assert.Equal(t, "a.txt", st.Worktree[0].Path)
		assert.Equal(t, git.StatusUntracked, st.Worktree[0].Kind)
	})

	t.Run("staged new file shows as added relative to HEAD", func(t *testing.T) {
		t.Parallel()

		r, dir := newTestRepo(t)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("content"), 0o644))

		idx, err := r.ReadIndex()
		require.NoError(t, err)
		require.NoError(t, r.Add(idx, []string{"a.txt"}))

		st, err := r.Status(idx, nil)
		require.NoError(t, err)
		require.Len(t, st.Staged, 1)
		assert.Equal(t, "a.txt", st.Staged[0].Path)
		assert.Equal(t, git.StatusAdded, st.Staged[0].Kind)
		assert.Empty(t, st.Worktree)
	})

	t.Run("committed then modified file shows as modified", func(t *testing.T) {
		t.Parallel()

		r, dir := newTestRepo(t)
		path := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

		idx, err := r.ReadIndex()
		require.NoError(t, err)
		require.NoError(t, r.Add(idx, []string{"a.txt"}))
		_, err = r.CreateCommit(idx, "seed", git.CommitOptions{})
		require.NoError(t, err)
		require.NoError(t, r.WriteIndex(idx))

		st, err := r.Status(idx, nil)
		require.NoError(t, err)
		assert.Empty(t, st.Staged)
		assert.Empty(t, st.Worktree)

		require.NoError(t, os.WriteFile(path, []byte("v2-longer-content"), 0o644))
		st, err = r.Status(idx, nil)
		require.NoError(t, err)
		require.Len(t, st.Worktree, 1)
		assert.Equal(t, git.StatusModified, st.Worktree[0].Kind)
	})

	t.Run("touching a tracked file without changing its content is not modified", func(t *testing.T) {
		t.Parallel()

		r, dir := newTestRepo(t)
		path := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

		idx, err := r.ReadIndex()
		require.NoError(t, err)
		require.NoError(t, r.Add(idx, []string{"a.txt"}))
		_, err = r.CreateCommit(idx, "seed", git.CommitOptions{})
		require.NoError(t, err)
		require.NoError(t, r.WriteIndex(idx))

		future := time.Now().Add(time.Hour)
		require.NoError(t, os.Chtimes(path, future, future))

		st, err := r.Status(idx, nil)
		require.NoError(t, err)
		assert.Empty(t, st.Staged)
		assert.Empty(t, st.Worktree)
	})

	t.Run("deleted tracked file is reported", func(t *testing.T) {
		t.Parallel()

		r, dir := newTestRepo(t)
		path := filepath.Join(dir, "a.txt")
		require.NoError(t, os.WriteFile(path, []byte("v1"), 0o644))

		idx, err := r.ReadIndex()
		require.NoError(t, err)
		require.NoError(t, r.Add(idx, []string{"a.txt"}))

		require.NoError(t, os.Remove(path))

		st, err := r.Status(idx, nil)
		require.NoError(t, err)
		require.Len(t, st.Worktree, 1)
		assert.Equal(t, git.StatusDeleted, st.Worktree[0].Kind)
	})
}

func TestFileStatusKindString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "added", git.StatusAdded.String())
	assert.Equal(t, "modified", git.StatusModified.String())
	assert.Equal(t, "deleted", git.StatusDeleted.String())
	assert.Equal(t, "untracked", git.StatusUntracked.String())
	assert.Equal(t, "unknown", git.FileStatusKind(0).String())
}
