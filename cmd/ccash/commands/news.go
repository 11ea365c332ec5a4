package commands

import (
	"ccash-backend/internal/scrapers/capecoral"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// number of freshly scraped records echoed after scrape-news
const previewCount = 2

var scrapeNewsCmd = &cobra.Command{
	Use:   "scrape-news",
	Short: "Scrape the Cape Coral EDO news page and replace the stored news table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.service.RefreshNews(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("stored %d news records\n", len(records))
		if len(records) > previewCount {
			records = records[:previewCount]
		}
		renderNews(records)
		return nil
	},
}

var newsCmd = &cobra.Command{
	Use:   "news",
	Short: "Print the stored news table.",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		records, err := a.store.News(cmd.Context())
		if err != nil {
			return err
		}
		renderNews(records)
		return nil
	},
}

func renderNews(records []capecoral.Record) {
	t := newTable()
	t.AppendHeader(table.Row{"Scraped", "Date", "Headline", "Description"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: 40},
		{Number: 4, WidthMax: 60},
	})
	for _, r := range records {
		t.AppendRow(table.Row{r.ScrapeDate, r.NewsDate, r.Headline, r.Description})
	}
	t.Render()
}

func init() {
	rootCmd.AddCommand(scrapeNewsCmd)
	rootCmd.AddCommand(newsCmd)
}
