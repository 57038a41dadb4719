package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/runner/add"
)

func addEvent(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "event",
		Aliases: []string{"e"},
		Short:   "Add events.",
	}

	ro := &options.RangeOptions{}
	io := &options.IDOptions{}
	var title string

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event covering one or more days",
		Example: `
spreads event add --on friday dentist
spreads event add --on 2026-03-02 --until 2026-03-04 offsite
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires an event")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			on, err := ro.GetOn(svc.Today(), svc.Calendar)
			if err != nil {
				return oo.HandleError(err)
			}
			until, err := ro.GetUntil(svc.Today(), svc.Calendar)
			if err != nil {
				return oo.HandleError(err)
			}
			s := add.Add{
				Service: svc,
				Kind:    entry.KindEvent,
				Title:   title,
				On:      on,
				Until:   until,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddRangeArgs(addCmd, ro)
	options.AddShowIDArgs(addCmd, io)
	options.AddOutputArg(addCmd, oo)
	cmd.AddCommand(addCmd)
	topLevel.AddCommand(cmd)
}
