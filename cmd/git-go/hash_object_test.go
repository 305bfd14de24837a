package main

import (
	"bytes"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/brodalo/gogit/env"
	"github.com/brodalo/gogit/internal/testhelper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestFile(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o644))
	return path
}

func mustOidBytes(t *testing.T, hexOid string) string {
	t.Helper()
	raw, err := hex.DecodeString(hexOid)
	require.NoError(t, err)
	return string(raw)
}

func TestHashObjectCmd(t *testing.T) {
	t.Parallel()

	dir, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)

	t.Run("blob", func(t *testing.T) {
		t.Parallel()

		t.Run("default should be blob", func(t *testing.T) {
			t.Parallel()

			filePath := writeTestFile(t, dir, "default-blob", []byte("hello world\n"))

			cwd, err := os.Getwd()
			require.NoError(t, err)

			outBuf := bytes.NewBufferString("")
			cmd := newRootCmd(cwd, env.NewFromOs())
			cmd.SetArgs([]string{"hash-object", filePath})
			cmd.SetOut(outBuf)

			require.NotPanics(t, func() {
				err = cmd.Execute()
			})
			require.NoError(t, err)
			out, err := io.ReadAll(outBuf)
			require.NoError(t, err)
			assert.Len(t, string(out), 41) // 40 hex chars + newline
		})

		t.Run("blob opt should work", func(t *testing.T) {
			t.Parallel()

			filePath := writeTestFile(t, dir, "opt-blob", []byte("explicit blob\n"))

			cwd, err := os.Getwd()
			require.NoError(t, err)

			outBuf := bytes.NewBufferString("")
			cmd := newRootCmd(cwd, env.NewFromOs())
			cmd.SetArgs([]string{"hash-object", "-t", "blob", filePath})
			cmd.SetOut(outBuf)

			require.NotPanics(t, func() {
				err = cmd.Execute()
			})
			require.NoError(t, err)
			out, err := io.ReadAll(outBuf)
			require.NoError(t, err)
			assert.Len(t, string(out), 41)
		})
	})

	t.Run("tree", func(t *testing.T) {
		t.Parallel()

		t.Run("valid tree should work", func(t *testing.T) {
			t.Parallel()

			blobID := "0343d67ca3d80a531d0d163f0078a81c95c9085a"
			treeContent := []byte("100644 blob\x00" + mustOidBytes(t, blobID))
			filePath := writeTestFile(t, dir, "tree", treeContent)

			cwd, err := os.Getwd()
			require.NoError(t, err)

			outBuf := bytes.NewBufferString("")
			cmd := newRootCmd(cwd, env.NewFromOs())
			cmd.SetArgs([]string{"hash-object", "-t", "tree", filePath})
			cmd.SetOut(outBuf)

			require.NotPanics(t, func() {
				err = cmd.Execute()
			})
			require.NoError(t, err)
			out, err := io.ReadAll(outBuf)
			require.NoError(t, err)
			assert.Len(t, string(out), 41)
		})

		t.Run("invalid tree should fail", func(t *testing.T) {
			t.Parallel()

			filePath := writeTestFile(t, dir, "invalid-tree", []byte("not a tree"))

			cwd, err := os.Getwd()
			require.NoError(t, err)

			outBuf := bytes.NewBufferString("")
			cmd := newRootCmd(cwd, env.NewFromOs())
			cmd.SetArgs([]string{"hash-object", "-t", "tree", filePath})
			cmd.SetOut(outBuf)

			require.NotPanics(t, func() {
				err = cmd.Execute()
			})
			require.Error(t, err)

			out, err := io.ReadAll(outBuf)
			require.NoError(t, err)
			assert.Empty(t, string(out))
		})
	})

	t.Run("commit", func(t *testing.T) {
		t.Parallel()

		t.Run("valid commit should work", func(t *testing.T) {
			t.Parallel()

			commitContent := []byte("tree e5b9e846e1b468bc9597ff95d71dfacda8bd54e3\n" +
				"author tester <tester@domain.tld> 1566005917 -0700\n" +
				"committer tester <tester@domain.tld> 1566005917 -0700\n\nmessage\n")
			filePath := writeTestFile(t, dir, "commit", commitContent)

			cwd, err := os.Getwd()
			require.NoError(t, err)

			outBuf := bytes.NewBufferString("")
			cmd := newRootCmd(cwd, env.NewFromOs())
			cmd.SetArgs([]string{"hash-object", "-t", "commit", filePath})
			cmd.SetOut(outBuf)

			require.NotPanics(t, func() {
				err = cmd.Execute()
			})
			require.NoError(t, err)
			out, err := io.ReadAll(outBuf)
			require.NoError(t, err)
			assert.Len(t, string(out), 41)
		})

		t.Run("invalid commit should fail", func(t *testing.T) {
			t.Parallel()

			filePath := writeTestFile(t, dir, "invalid-commit", []byte("not a commit"))

			cwd, err := os.Getwd()
			require.NoError(t, err)

			outBuf := bytes.NewBufferString("")
			cmd := newRootCmd(cwd, env.NewFromOs())
			cmd.SetArgs([]string{"hash-object", "-t", "commit", filePath})
			cmd.SetOut(outBuf)

			require.NotPanics(t, func() {
				err = cmd.Execute()
			})
			assert.Error(t, err)

			out, err := io.ReadAll(outBuf)
			require.NoError(t, err)
			assert.Empty(t, string(out))
		})
	})
}
