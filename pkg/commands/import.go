package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/runner/importer"
)

func addImport(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import entries from other tools.",
	}

	ro := &options.RangeOptions{}
	icsCmd := &cobra.Command{
		Use:   "ics <file>",
		Short: "Import events from an iCalendar file",
		Long: `Import reads VEVENTs from an .ics file. Recurring events are expanded between
--on (default today) and --until (default three months later). Events already
imported from the same UID on the same day are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			from, err := ro.GetOn(svc.Today(), svc.Calendar)
			if err != nil {
				return oo.HandleError(err)
			}
			to, err := ro.GetUntil(svc.Today(), svc.Calendar)
			if err != nil {
				return oo.HandleError(err)
			}
			i := importer.Import{Service: svc, Path: args[0], From: from, To: to, JSON: oo.JSON}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}

	options.AddRangeArgs(icsCmd, ro)
	options.AddOutputArg(icsCmd, oo)
	cmd.AddCommand(icsCmd)
	topLevel.AddCommand(cmd)
}
