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

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func TestDumpDefaults(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)

	assert.Contains(t, out, "program: projection_vertex_no_lighting (vs_main")
	assert.Contains(t, out, "slots:   14")
	assert.Contains(t, out, "projection_viewport")
	assert.Contains(t, out, "constants_0")
	assert.NotContains(t, out, "light_direction")
	// Header plus 3 matrices of 4 rows and 2 vectors.
	table := out[strings.Index(out, "SLOT"):]
	assert.Equal(t, 15, strings.Count(strings.TrimSpace(table), "\n")+1)
}

func TestDumpLitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lit.toml")
	require.NoError(t, os.WriteFile(path, []byte("[lighting]\nenabled = true\n"), 0o644))

	out, err := execute(t, "--config", path, "--hex")
	require.NoError(t, err)
	assert.Contains(t, out, "slots:   15")
	assert.Contains(t, out, "light_direction")

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines[len(lines)-1], 240*2)
}

func TestCheck(t *testing.T) {
	out, err := execute(t, "--check")
	require.NoError(t, err)
	assert.Equal(t, "ok\n", out)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[camera]\nmode = \"look_to\"\ndirection = [0.0, 0.0, 0.0]\n"), 0o644))
	_, err = execute(t, "-c", path, "--check")
	assert.ErrorContains(t, err, "degenerate orientation")
}

func TestRejectsArgs(t *testing.T) {
	_, err := execute(t, "extra")
	assert.Error(t, err)
}

func TestDumpReportsTargetVisibility(t *testing.T) {
	doc := `
[projection]
kind = "perspective"
fov_y_degrees = 90.0
z_near = 1.0
z_far = 100.0

[camera]
mode = "look_at"
position = [0.0, 0.0, -10.0]
target = [0.0, 0.0, 0.0]
up = [0.0, 1.0, 0.0]
`
	path := filepath.Join(t.TempDir(), "persp.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "-c", path)
	require.NoError(t, err)
	assert.Contains(t, out, "in view: true")
}

func TestDumpSkipsVisibilityWithoutProjection(t *testing.T) {
	doc := `
[camera]
mode = "look_at"
position = [0.0, 0.0, 0.5]
target = [0.0, 0.0, 0.0]
up = [0.0, 1.0, 0.0]
`
	path := filepath.Join(t.TempDir(), "identity.toml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	out, err := execute(t, "-c", path)
	require.NoError(t, err)
	assert.NotContains(t, out, "in view")
}
