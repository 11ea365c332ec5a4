package commands

import (
	"os"
	"path/filepath"
	"testing"

	"ccash-backend/internal/dashboard"
	"ccash-backend/internal/scrapers/capecoral"
	"ccash-backend/internal/scrapers/fred"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv(fred.ApiKeyEnv, "")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "config.json5"))
	require.NoError(t, err)
	require.Equal(t, defaultConfig(), cfg)
}

func TestLoadConfigPartial(t *testing.T) {
	t.Setenv(fred.ApiKeyEnv, "")

	path := writeConfig(t, `{
		// only override a couple of fields
		fred: { api_key: "from-file" },
		dashboard: { port: 9000 },
	}`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)

	require.Equal(t, "from-file", cfg.Fred.ApiKey)
	require.Equal(t, fred.DefaultSeriesId, cfg.Fred.SeriesId)
	require.Equal(t, 9000, cfg.Dashboard.Port)
	require.Equal(t, dashboard.DefaultConfig().Title, cfg.Dashboard.Title)
	require.Equal(t, capecoral.DefaultConfig(), cfg.News.Extract)
	require.Equal(t, "data/cape_coral_econ.db", cfg.Database.File)
}

func TestLoadConfigRemoteDatabase(t *testing.T) {
	path := writeConfig(t, `{ database: { url: "libsql://example.turso.io" } }`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "libsql://example.turso.io", cfg.Database.Url)
	require.Empty(t, cfg.Database.File)
}

func TestLoadConfigEnvApiKey(t *testing.T) {
	t.Setenv(fred.ApiKeyEnv, "from-env")

	path := writeConfig(t, `{ fred: { api_key: "from-file" } }`)
	cfg, err := loadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "from-env", cfg.Fred.ApiKey)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := writeConfig(t, `{ dashboard: { port: "not a number" } }`)
	_, err := loadConfig(path)
	require.Error(t, err)
}
