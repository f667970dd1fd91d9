package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/teleivo/assertive/assert"
	"github.com/teleivo/assertive/require"
)

func TestRunFormatsStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"jsfmt", "-print-width=80"}, bytes.NewBufferString("const a = 1;"), &stdout, &stderr)
	require.NoErrorf(t, err, "run()")
	assert.Equalf(t, stdout.String(), "const a = 1;", "stdout")
}

func TestRunFormatsFilesConcurrently(t *testing.T) {
	dir := t.TempDir()
	pathA := filepath.Join(dir, "a.js")
	pathB := filepath.Join(dir, "b.js")
	require.NoErrorf(t, os.WriteFile(pathA, []byte("const a=1;"), 0o644), "WriteFile(a.js)")
	require.NoErrorf(t, os.WriteFile(pathB, []byte("const   b = 2 ;"), 0o644), "WriteFile(b.js)")

	var stdout, stderr bytes.Buffer
	err := run([]string{"jsfmt", "-print-width=80", "-write", pathA, pathB}, nil, &stdout, &stderr)
	require.NoErrorf(t, err, "run()")

	gotA, err := os.ReadFile(pathA)
	require.NoErrorf(t, err, "ReadFile(a.js)")
	assert.Equalf(t, string(gotA), "const a = 1;", "a.js contents")

	gotB, err := os.ReadFile(pathB)
	require.NoErrorf(t, err, "ReadFile(b.js)")
	assert.Equalf(t, string(gotB), "const b = 2;", "b.js contents")
}

func TestRunRejectsMissingSemicolon(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run([]string{"jsfmt"}, bytes.NewBufferString("const a = 1"), &stdout, &stderr)
	assert.Truef(t, err != nil, "expected an error for source missing a trailing semicolon")
	assert.Equalf(t, exitCode(err), 2, "exitCode() for a syntax error")
}
