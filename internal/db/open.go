package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

const memory = ":memory:"

// Config selects the database, `file` opens a local sqlite database and
// `url` connects to a libsql server. `file` takes precedence.
type Config struct {
	File      string `json:"file"`
	Url       string `json:"url"`
	AuthToken string `json:"auth_token"`
}

func DefaultConfig() Config {
	return Config{File: "data/cape_coral_econ.db"}
}

// OpenDB opens the database and makes sure the schema exists.
func (config Config) OpenDB(ctx context.Context) (*sql.DB, error) {
	var (
		database *sql.DB
		err      error
	)
	switch {
	case config.File != "":
		database, err = openFile(ctx, config.File)
	case config.Url != "":
		database, err = openLibsql(config.Url, config.AuthToken)
	default:
		return nil, fmt.Errorf("neither a database file nor url was specified")
	}
	if err != nil {
		return nil, err
	}

	err = Migrate(ctx, database)
	if err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}

func openFile(ctx context.Context, path string) (*sql.DB, error) {
	if path != memory {
		err := os.MkdirAll(filepath.Dir(path), 0755)
		if err != nil {
			return nil, err
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// sqlite only supports one writer at a time, this also keeps
	// `:memory:` databases on a single connection.
	database.SetMaxOpenConns(1)
	if path != memory {
		_, err = database.ExecContext(ctx, "PRAGMA journal_mode=WAL")
		if err != nil {
			database.Close()
			return nil, err
		}
	}
	return database, nil
}

func openLibsql(rawUrl, authToken string) (*sql.DB, error) {
	link, err := url.Parse(rawUrl)
	if err != nil {
		return nil, fmt.Errorf("parse db url: %w", err)
	}
	if authToken != "" {
		query := link.Query()
		query.Set("authToken", authToken)
		link.RawQuery = query.Encode()
	}
	return sql.Open("libsql", link.String())
}
