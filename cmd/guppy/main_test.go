package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCapture(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_When_NoArgs_PrintsUsage(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCapture(t)
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "Usage:")
}

func TestRun_When_UnknownCommand(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCapture(t, "serve")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "serve"`)
}

func TestRun_When_Help(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCapture(t, "help")
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "guppy create")
}

func TestRun_When_Palette_ListsAllEightColors(t *testing.T) {
	t.Parallel()

	code, stdout, _ := runCapture(t, "palette")
	assert.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(stdout, "\n"), "\n")
	assert.Len(t, lines, 8)
	assert.Contains(t, stdout, "#F44336")
}

func TestRunCreate_When_NameMissing(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCapture(t, "create")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "project name required")
}

func TestRunCreate_When_TypeUnrecognized(t *testing.T) {
	t.Parallel()

	code, _, stderr := runCapture(t, "create", "-type", "ember", "My App")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "unrecognized project type")
}

func TestRunCreate_When_FixtureMode_CompletesWithoutTouchingDisk(t *testing.T) {
	home := filepath.Join(t.TempDir(), "guppy-projects")
	t.Setenv("GUPPY_FIXTURE", "")

	code, stdout, stderr := runCapture(t, "create", "-plain", "-fixture", "-home", home, "My", "App")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Created project sample-app (fixture mode)")
	assert.NoDirExists(t, home)
}

func TestRunCreate_When_FixtureViaEnvironment(t *testing.T) {
	t.Setenv("GUPPY_FIXTURE", "true")

	code, stdout, _ := runCapture(t, "create", "-plain", "My App")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "fixture mode")
}
