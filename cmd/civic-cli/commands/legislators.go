package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"civicpulse-backend/lib/linker"
)

var legislatorsWithDetails *bool

func init() {
	legislatorsWithDetails = legislatorsCmd.Flags().Bool(
		"with-details", false,
		"Also fetch the detail provider and merge the two lists by name.",
	)
	rootCmd.AddCommand(legislatorsCmd)
}

var legislatorsCmd = &cobra.Command{
	Use:   "legislators [--with-details]",
	Short: "Fetches the legislator roster and prints it.",
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		roster, outcome := service.Legislators(cmd.Context())
		slog.Info("fetched legislators", "records", len(roster), "outcome", outcome)

		if !*legislatorsWithDetails {
			t := newTable(table.Row{"ID", "Name", "Party", "State", "Chamber", "District", "In Office", "Contact"})
			for _, l := range roster {
				t.AppendRow(table.Row{
					l.ID,
					linker.FullName(l.FirstName, l.LastName),
					l.Party,
					l.State,
					l.Chamber,
					formatDistrict(l.District),
					l.InOffice,
					orBlank(l.Contact),
				})
			}
			t.Render()
			return
		}

		details, outcome := service.LegislatorDetails(cmd.Context())
		slog.Info("fetched legislator details", "records", len(details), "outcome", outcome)

		links := linker.LinkDetails(roster, details)
		t := newTable(table.Row{"ID", "Name", "Party", "State", "Chamber", "Twitter", "Phone", "Next Election", "Correlation"})
		for _, link := range links {
			t.AppendRow(table.Row{
				link.Legislator.ID,
				linker.FullName(link.Legislator.FirstName, link.Legislator.LastName),
				link.Legislator.Party,
				link.Legislator.State,
				link.Legislator.Chamber,
				orBlank(link.Detail.Twitter),
				orBlank(link.Detail.Phone),
				orBlank(link.Detail.NextElection),
				fmt.Sprintf("%.2f", link.Correlation),
			})
		}
		t.Render()
	},
}
