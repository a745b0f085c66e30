package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"civicpulse-backend/lib/linker"
)

func init() {
	rootCmd.AddCommand(detailsCmd)
}

var detailsCmd = &cobra.Command{
	Use:   "details",
	Short: "Fetches legislator details for both chambers and prints them.",
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		details, outcome := service.LegislatorDetails(cmd.Context())
		slog.Info("fetched legislator details", "records", len(details), "outcome", outcome)

		t := newTable(table.Row{"ID", "Name", "Party", "State", "Chamber", "In Office", "Twitter", "Phone", "Next Election"})
		for _, d := range details {
			t.AppendRow(table.Row{
				d.ID,
				linker.FullName(d.FirstName, d.LastName),
				d.Party,
				d.State,
				d.Chamber,
				d.InOffice,
				orBlank(d.Twitter),
				orBlank(d.Phone),
				orBlank(d.NextElection),
			})
		}
		t.Render()
	},
}
