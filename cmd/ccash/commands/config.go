package commands

import (
	"errors"
	"log/slog"
	"os"

	"ccash-backend/internal/configutil"
	"ccash-backend/internal/dashboard"
	"ccash-backend/internal/db"
	"ccash-backend/internal/scrapers/capecoral"
	"ccash-backend/internal/scrapers/fred"
)

type Config struct {
	Database  db.Config              `json:"database"`
	Fred      fred.Config            `json:"fred"`
	News      capecoral.ClientConfig `json:"news"`
	Dashboard dashboard.Config       `json:"dashboard"`
	// directory that full http transcripts are written to when running with --verbose
	DumpDir string `json:"dump_dir"`
}

func defaultConfig() Config {
	return Config{
		Database:  db.DefaultConfig(),
		Fred:      fred.DefaultConfig(),
		News:      capecoral.DefaultClientConfig(),
		Dashboard: dashboard.DefaultConfig(),
	}
}

// loadConfig reads the config file if there is one and fills in the defaults.
func loadConfig(path string) (Config, error) {
	cfg, err := configutil.ReadConfig[Config](path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Info("config file not found, using defaults", "path", path)
		err = nil
	}
	if err != nil {
		return Config{}, err
	}

	defaults := defaultConfig()
	// a configured url must not be shadowed by the default file
	if cfg.Database.Url != "" {
		defaults.Database = db.Config{}
	}
	err = configutil.ApplyDefaults(&cfg, defaults)
	if err != nil {
		return Config{}, err
	}

	cfg.Fred = cfg.Fred.WithEnv()
	return cfg, nil
}
