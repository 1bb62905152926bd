package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coreman2200/funtimes-santatrack/internal/config"
)

func TestSimulateDefaultTour(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, simulate(&buf, config.Defaults(), "", 4, false, 120))
	out := buf.String()
	assert.Contains(t, out, "focus=ev-1")
	assert.Contains(t, out, "focus=ev-6")
	assert.Contains(t, out, "Done at t=")
}

func TestSimulateProgramFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tour.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`version: tour.v1
scroll:
  keys:
    - {t: 0, v: 0}
    - {t: 1, v: 1000, ease: smooth}
`), 0644))

	var buf bytes.Buffer
	require.NoError(t, simulate(&buf, config.Defaults(), path, 4, false, 120))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines[len(lines)-2], "scroll=1000")
	assert.Equal(t, "Done at t=1.00s after 4 frames", lines[len(lines)-1])
}

func TestSimulateBadProgram(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: tour.v1\n"), 0644))
	assert.Error(t, simulate(&bytes.Buffer{}, config.Defaults(), path, 10, false, 1))
	assert.Error(t, simulate(&bytes.Buffer{}, config.Defaults(), filepath.Join(t.TempDir(), "nope"), 10, false, 1))
}
