package main

import (
	"bytes"
	"io"
	"os"
	"testing"

	"github.com/brodalo/gogit/env"
	"github.com/brodalo/gogit/internal/testhelper"
	"github.com/stretchr/testify/require"
)

// initTestRepo initializes a fresh, non-bare repository in a new temp
// directory and returns its path.
func initTestRepo(t *testing.T) string {
	t.Helper()

	repoPath, cleanup := testhelper.TempDir(t)
	t.Cleanup(cleanup)

	require.NoError(t, initCmd(io.Discard, &globalFlags{
		env: env.NewFromKVList([]string{}),
		C:   &testhelper.StringValue{Value: repoPath},
	}, initCmdFlags{}))

	return repoPath
}

// runCLI executes the root command rooted at repoPath with args and
// returns its stdout.
func runCLI(t *testing.T, repoPath string, args ...string) (string, error) {
	t.Helper()

	cwd, err := os.Getwd()
	require.NoError(t, err)

	outBuf := bytes.NewBufferString("")
	cmd := newRootCmd(cwd, env.NewFromOs())
	cmd.SetOut(outBuf)
	cmd.SetArgs(append([]string{"-C", repoPath}, args...))

	var runErr error
	require.NotPanics(t, func() {
		runErr = cmd.Execute()
	})

	out, readErr := io.ReadAll(outBuf)
	require.NoError(t, readErr)
	return string(out), runErr
}
