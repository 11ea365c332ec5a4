package commands

import (
	"context"
	"fmt"
	"time"

	"ccash-backend/internal/components/chrono"
	"ccash-backend/internal/components/telemetry"
	"ccash-backend/internal/dashboard"

	"github.com/spf13/cobra"
)

const perfStatsInterval = 30 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over http.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		telemetry.InstrumentPerfStats(ctx, perfStatsInterval, a.tel)

		if a.cfg.Dashboard.RefreshCron != "" {
			cron := chrono.NewStandardCron(a.time, a.tel)
			defer cron.Stop()

			err = scheduleRefresh(ctx, cron, a.cfg.Dashboard.RefreshCron, a.service.RefreshAll)
			if err != nil {
				return err
			}
		}

		server := dashboard.NewServer(a.store, a.cfg.Dashboard, a.tel)
		return server.ListenAndServe(ctx)
	},
}

// scheduleRefresh runs refresh on every tick of spec. Runs are not cut short
// when ctx is cancelled, failures are reported by the service.
func scheduleRefresh(ctx context.Context, cron chrono.CronAPI, spec string, refresh func(context.Context) error) error {
	err := cron.Cron(spec, func() {
		_ = refresh(context.WithoutCancel(ctx))
	})
	if err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
