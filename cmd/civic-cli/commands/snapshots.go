package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"civicpulse-backend/lib/timezone"
)

func init() {
	rootCmd.AddCommand(snapshotsCmd)
}

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "Prints the stored snapshot for every refreshed domain.",
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		metas, err := service.Snapshots(cmd.Context())
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := newTable(table.Row{"Domain", "Run", "Outcome", "Records", "Fetched"})
		for _, meta := range metas {
			t.AppendRow(table.Row{
				meta.Domain,
				meta.RunID,
				meta.Outcome,
				meta.RecordCount,
				timezone.FormatDate(meta.FetchedAt),
			})
		}
		t.Render()
	},
}
