package commands

import (
	"database/sql"
	"log/slog"
	"os"

	"ccash-backend/internal/components/chrono"
	"ccash-backend/internal/components/restyutil"
	"ccash-backend/internal/components/telemetry"
	"ccash-backend/internal/scrapers/capecoral"
	"ccash-backend/internal/scrapers/fred"
	"ccash-backend/internal/service"
	"ccash-backend/internal/store"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

type app struct {
	cfg     Config
	tel     telemetry.API
	time    chrono.API
	db      *sql.DB
	store   store.Store
	service service.Service
}

func (a app) Close() {
	err := a.db.Close()
	if err != nil {
		slog.Warn("failed to close db", "err", err)
	}
}

func newApp(cmd *cobra.Command) (app, error) {
	cfg, err := loadConfig(*configPath)
	if err != nil {
		return app{}, err
	}

	clock, err := chrono.NewStandardImpl()
	if err != nil {
		return app{}, err
	}
	tel := telemetry.SlogAPI{}

	database, err := cfg.Database.OpenDB(cmd.Context())
	if err != nil {
		return app{}, err
	}
	s := store.NewStore(database)

	fredClient := fred.NewClient(cfg.Fred, clock, tel)
	newsClient := capecoral.NewClient(cfg.News, clock, tel)
	if *verbose && cfg.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(cfg.DumpDir)
		if err != nil {
			database.Close()
			return app{}, err
		}
		restyutil.DumpMessages(fredClient.Http(), output)
		restyutil.DumpMessages(newsClient.Http(), output)
	}

	return app{
		cfg:     cfg,
		tel:     tel,
		time:    clock,
		db:      database,
		store:   s,
		service: service.NewService(s, fredClient, newsClient, tel),
	}, nil
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}
