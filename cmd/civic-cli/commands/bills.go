package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(billsCmd)
}

var billsCmd = &cobra.Command{
	Use:   "bills",
	Short: "Fetches recently updated bills and prints them.",
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		bills, outcome := service.Bills(cmd.Context())
		slog.Info("fetched bills", "records", len(bills), "outcome", outcome)

		t := newTable(table.Row{"ID", "Title", "Status", "Introduced", "Latest Action", "Sponsor"})
		for _, b := range bills {
			t.AppendRow(table.Row{
				b.ID,
				truncate(b.Title, 48),
				b.Status,
				b.Introduced,
				orBlank(b.LatestActionDate),
				orBlank(b.SponsorID),
			})
		}
		t.Render()
	},
}
