package commands

import (
	"errors"
	"fmt"
	"os"

	"ccash-backend/internal/dashboard"

	"github.com/spf13/cobra"
)

var errNoEmployment = errors.New("no employment data stored, run fetch-employment first")

var visualizeCmd = &cobra.Command{
	Use:   "visualize",
	Short: "Write the stored unemployment series as a standalone chart page.",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := cmd.Flags().GetString("out")
		if err != nil {
			return err
		}

		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		observations, err := a.store.Employment(cmd.Context())
		if err != nil {
			return err
		}
		if len(observations) == 0 {
			return errNoEmployment
		}

		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()

		err = dashboard.RenderChart(f, a.cfg.Dashboard, observations)
		if err != nil {
			return fmt.Errorf("render chart: %w", err)
		}
		cmd.Printf("wrote chart to %s\n", out)
		return nil
	},
}

func init() {
	visualizeCmd.Flags().String("out", "chart.html", "The html file to write.")
	rootCmd.AddCommand(visualizeCmd)
}
