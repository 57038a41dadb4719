package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/runner/add"
)

func addNote(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "note",
		Aliases: []string{"n"},
		Short:   "Add notes.",
	}

	po := &options.PeriodOptions{}
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	var title, content string

	addCmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a note",
		Example: `
spreads note add met with the team --content "agreed on the launch plan"
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a note")
			}
			title = strings.Join(args, " ")
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := po.GetPeriod()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			date, err := on.GetOn(svc.Today(), svc.Calendar)
			if err != nil {
				return oo.HandleError(err)
			}
			s := add.Add{
				Service: svc,
				Kind:    entry.KindNote,
				Title:   title,
				Content: content,
				Period:  p,
				On:      date,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	addCmd.Flags().StringVar(&content, "content", "", "Body of the note.")
	options.AddPeriodArgs(addCmd, po, period.Day)
	options.AddOnArgs(addCmd, on)
	options.AddShowIDArgs(addCmd, io)
	options.AddOutputArg(addCmd, oo)
	cmd.AddCommand(addCmd)
	topLevel.AddCommand(cmd)
}
