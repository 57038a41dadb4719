package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/runner/report"
	"tableflip.dev/spreads/pkg/timeutil"
)

func addReport(topLevel *cobra.Command) {
	var last string
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Display recently completed tasks grouped by spread",
		Long: `Report lists completed tasks grouped by the spread they were completed on
within the specified time window.

Examples:
  spreads report
  spreads report --last 3d
  spreads report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			duration, label, err := timeutil.ParseWindow(last)
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			r := report.Report{Service: svc, Window: duration, Label: label, ShowID: io.ShowID, JSON: oo.JSON}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVar(&last, "last", timeutil.DefaultWindow, "time window to include (for example 3d, 1w)")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
