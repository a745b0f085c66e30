package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"civicpulse-backend/lib/providers/usaspending"
)

func init() {
	rootCmd.AddCommand(spendingCmd)
}

var spendingCmd = &cobra.Command{
	Use:   "spending",
	Short: "Fetches spending awards for the current calendar year and prints them.",
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		awards, outcome := service.SpendingAwards(cmd.Context(), usaspending.TimeWindow{})
		slog.Info("fetched spending awards", "records", len(awards), "outcome", outcome)

		t := newTable(table.Row{"Agency", "Recipient", "Amount", "Type", "Signed", "FY"})
		for _, a := range awards {
			t.AppendRow(table.Row{
				a.Agency,
				a.Recipient,
				fmt.Sprintf("%.2f", a.Amount),
				a.AwardType,
				a.SignedDate,
				a.FiscalYear,
			})
		}
		t.Render()
	},
}
