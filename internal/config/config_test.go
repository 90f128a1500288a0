package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fern-lang/fern/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, dir, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "fern.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadMissingManifestReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	m, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "auto", m.Color)
}

func TestLoadValidManifest(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"name": "demo", "entry": "main.fn", "color": "always"}`)
	m, err := config.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "demo", m.Name)
	assert.Equal(t, "always", m.Color)
}

func TestLoadRejectsUnknownColor(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"color": "rainbow"}`)
	_, err := config.LoadFile(path)
	require.Error(t, err)
}

func TestLoadRejectsAdditionalProperties(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"name": "demo", "unexpected": true}`)
	_, err := config.LoadFile(path)
	require.Error(t, err)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{not json`)
	_, err := config.LoadFile(path)
	require.Error(t, err)
}

func TestLoadSearchesParentDirectories(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name": "parent-project"}`)
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	m, err := config.Load(sub)
	require.NoError(t, err)
	assert.Equal(t, "parent-project", m.Name)
}
