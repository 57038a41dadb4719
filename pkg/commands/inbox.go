package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/runner/inbox"
)

func addInbox(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	wo := &options.WatchOptions{}

	cmd := &cobra.Command{
		Use:   "inbox",
		Short: "List tasks and notes that no spread holds yet",
		Example: `
spreads inbox
spreads inbox --watch
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			i := inbox.Inbox{Service: svc, ShowID: io.ShowID, JSON: oo.JSON, Watch: wo.Watch}
			return oo.HandleError(i.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddWatchArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
