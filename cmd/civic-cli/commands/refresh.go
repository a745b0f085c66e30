package commands

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"civicpulse-backend/lib/civic"
	"civicpulse-backend/services/civicdata"
)

func init() {
	rootCmd.AddCommand(refreshCmd)
}

var refreshCmd = &cobra.Command{
	Use:   "refresh [domain]",
	Short: "Re-fetches domains and replaces their stored snapshots.",
	Long: "Re-fetches every domain (or just the named one) and replaces its " +
		"stored snapshot in the configured database.",
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		service, err := newService()
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		var runs []civicdata.RefreshRun
		if len(args) == 0 {
			runs, err = service.RefreshAll(cmd.Context())
		} else {
			var domain civic.Domain
			domain, err = civic.ParseDomain(args[0])
			if err == nil {
				var run civicdata.RefreshRun
				run, err = service.RefreshDomain(cmd.Context(), domain)
				runs = []civicdata.RefreshRun{run}
			}
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}

		t := newTable(table.Row{"Run", "Domain", "Outcome", "Records", "Duration"})
		for _, run := range runs {
			t.AppendRow(table.Row{
				run.RunID,
				run.Domain,
				run.Outcome,
				run.RecordCount,
				run.Duration.String(),
			})
		}
		t.Render()
	},
}
