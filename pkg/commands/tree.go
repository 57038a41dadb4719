package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/runner/tree"
)

func addTree(topLevel *cobra.Command) {
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	wo := &options.WatchOptions{}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Show spreads as a year, month and day hierarchy",
		Long: `Tree lists every spread grouped by year and month. The spread marked with ‹
is the one that would open first for the --on day: its day spread, else the
earliest multiday spread covering it, else its month, else its year.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			date, err := on.GetOn(svc.Today(), svc.Calendar)
			if err != nil {
				return oo.HandleError(err)
			}
			t := tree.Tree{Service: svc, On: date, ShowID: io.ShowID, JSON: oo.JSON, Watch: wo.Watch}
			return oo.HandleError(t.Do(cmd.Context()))
		},
	}

	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddWatchArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
