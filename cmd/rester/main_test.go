package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_PanicRecovery(t *testing.T) {
	// --- Arrange ---
	// Point RESTER_CONFIG at a malformed JSON file, which is guaranteed to
	// cause a panic during startup inside app.NewApp().
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "rester.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"url": `), 0600), "failed to set up test file")
	t.Setenv("RESTER_CONFIG", configPath)

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	// --- Act ---
	// Call the run function, which should recover the panic and return it as an error.
	runErr := run(out, errOut, []string{"resolve", "url"})

	// --- Assert ---
	require.Error(t, runErr, "run() should have returned an error after recovering from a panic")

	errStr := runErr.Error()
	require.True(t, strings.Contains(errStr, "application startup panicked"), "The error message should indicate that a panic was recovered.")
	require.True(t, strings.Contains(errStr, "malformed config file"), "The error message should contain the underlying reason for the panic.")
}

func TestRun_ShouldExit(t *testing.T) {
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, errOut.String(), "Usage:", "Expected help text to be printed")
}

func TestRun_ParseError(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err, "run() should return an error when argument parsing fails")
	require.Contains(t, err.Error(), "flag provided but not defined: -this-is-not-a-valid-flag")
}

func TestRun_ScanEndToEnd(t *testing.T) {
	dir := t.TempDir()
	source := `package demo

func setup() {
	_ = get_config_url()
	_ = get_config_timeout()
	_ = get_config_path()
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "demo.go"), []byte(source), 0600))

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"scan", dir, "get_config_", "--exclude", "get_config_path"})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "demo.go:4: get_config_url")
	assert.Contains(t, lines[1], "demo.go:5: get_config_timeout")
}

func TestRun_ScanMissingRoot(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	err := run(out, errOut, []string{"scan", filepath.Join(t.TempDir(), "missing"), "get_"})
	require.Error(t, err)
}

func TestRun_ResolveEndToEnd(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "rester.json")
	require.NoError(t, os.WriteFile(configPath, []byte(`{"url": "http://y"}`), 0600))
	t.Setenv("RESTER_CONFIG", configPath)

	out := &bytes.Buffer{}
	err := run(out, &bytes.Buffer{}, []string{"resolve", "url"})
	require.NoError(t, err)
	assert.Equal(t, "http://y\n", out.String())
}
