package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Name     string   `json:"name"`
	Port     int      `json:"port"`
	Prefixes []string `json:"prefixes"`
	Nested   struct {
		Url string `json:"url"`
	} `json:"nested"`
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(contents), 0600))
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.json5"), `{
		// comments are allowed
		name: "dashboard",
		port: 8050,
		nested: { url: "https://example.com" },
	}`)
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ port: 9000 }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "dashboard", cfg.Name)
	require.Equal(t, 9000, cfg.Port)
	require.Equal(t, "https://example.com", cfg.Nested.Url)
}

func TestReadConfigOnlyLocal(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.local.json5"), `{ name: "local" }`)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "local", cfg.Name)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplyDefaults(t *testing.T) {
	cfg := testConfig{Port: 1234}
	require.NoError(t, ApplyDefaults(&cfg, testConfig{
		Name:     "default",
		Port:     8050,
		Prefixes: []string{"CAPE CORAL"},
	}))
	require.Equal(t, "default", cfg.Name)
	require.Equal(t, 1234, cfg.Port)
	require.Equal(t, []string{"CAPE CORAL"}, cfg.Prefixes)
}
