package commands

import (
	"ccash-backend/internal/scrapers/fred"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var fetchEmploymentCmd = &cobra.Command{
	Use:   "fetch-employment",
	Short: "Fetch the unemployment series from FRED and replace the stored employment table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.service.RefreshEmployment(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Println("employment data updated")
		return nil
	},
}

var employmentCmd = &cobra.Command{
	Use:   "employment",
	Short: "Print the stored employment table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		observations, err := a.store.Employment(cmd.Context())
		if err != nil {
			return err
		}

		t := newTable()
		t.AppendHeader(table.Row{"Date", "Unemployment Rate"})
		for _, o := range observations {
			t.AppendRow(table.Row{o.Date.Format(fred.DateLayout), o.UnemploymentRate})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(fetchEmploymentCmd)
	rootCmd.AddCommand(employmentCmd)
}
