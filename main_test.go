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

func TestDemo(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runDemo(&out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "(15,,((7,,((7,firefly,(),())),((8,serenity,(),())))),((6,Whedon,(),())))", lines[0])
	assert.Equal(t, "fireflyserenityWhedon", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "(19,,"), lines[2])
	assert.Equal(t, "fireflyZoomserenityWhedon", lines[3])
}

func TestStats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abab.txt")
	require.NoError(t, os.WriteFile(path, []byte("abababab"), 0644))

	var out bytes.Buffer
	require.NoError(t, runStats(&out, path, 2))
	assert.Contains(t, out.String(), ": 8 runes")
	assert.Contains(t, out.String(), "leaves shared: 75%")

	err := runStats(&out, filepath.Join(t.TempDir(), "missing.txt"), 2)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, file, err := NewLogger(path)
	require.NoError(t, err)
	log.Info().Str("file", "x").Msg("hello")
	require.NoError(t, file.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"caller"`)
}
