package commands

import (
	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh both the employment and news tables.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		err = a.service.RefreshAll(cmd.Context())
		if err != nil {
			return err
		}
		cmd.Println("all data refreshed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
