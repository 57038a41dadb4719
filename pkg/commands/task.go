package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/runner/add"
	"tableflip.dev/spreads/pkg/runner/complete"
)

func addTask(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Add and update tasks.",
	}

	addTaskAdd(cmd)
	addTaskStatus(cmd, complete.ActionComplete, "Mark a task complete on its current spread")
	addTaskStatus(cmd, complete.ActionCancel, "Cancel a task; it disappears from every view")
	addTaskStatus(cmd, complete.ActionReopen, "Reopen a completed or cancelled task")
	topLevel.AddCommand(cmd)
}

func addTaskAdd(parent *cobra.Command) {
	po := &options.PeriodOptions{}
	on := &options.OnOptions{}
	io := &options.IDOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
		Example: `
spreads task add do this task
spreads task add --period month --on 2026-03-01 file taxes
`,
		Args: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			if len(args) < 1 {
				return errors.New("requires a task")
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
				Kind:    entry.KindTask,
				Title:   title,
				Period:  p,
				On:      date,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddPeriodArgs(cmd, po, period.Day)
	options.AddOnArgs(cmd, on)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addTaskStatus(parent *cobra.Command, action complete.Action, short string) {
	cmd := &cobra.Command{
		Use:   string(action) + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			c := complete.Complete{Service: svc, ID: args[0], Action: action, JSON: oo.JSON}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
