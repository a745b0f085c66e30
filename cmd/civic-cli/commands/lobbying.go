package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var lobbyingYear *int

func init() {
	lobbyingYear = lobbyingCmd.Flags().Int(
		"year", 0,
		"Report year to fetch, defaults to the current year.",
	)
	rootCmd.AddCommand(lobbyingCmd)
}

var lobbyingCmd = &cobra.Command{
	Use:   "lobbying [--year <yyyy>]",
	Short: "Fetches lobbying filings and prints them.",
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		filings, outcome := service.LobbyingFilings(cmd.Context(), *lobbyingYear)
		slog.Info("fetched lobbying filings", "records", len(filings), "outcome", outcome)

		t := newTable(table.Row{"Client", "Registrant", "Amount", "Year", "Type", "Issue"})
		for _, f := range filings {
			t.AppendRow(table.Row{
				f.Client,
				f.Registrant,
				f.Amount,
				f.Year,
				f.ReportType,
				truncate(orBlank(f.Issue), 48),
			})
		}
		t.Render()
	},
}
