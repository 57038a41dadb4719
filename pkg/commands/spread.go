package commands

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/runner/get"
	"tableflip.dev/spreads/pkg/runner/spreads"
	"tableflip.dev/spreads/pkg/spread"
)

func addSpread(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "spread",
		Aliases: []string{"spreads", "s"},
		Short:   "Create, list, show and delete spreads.",
	}

	addSpreadCreate(cmd)
	addSpreadPreset(cmd)
	addSpreadList(cmd)
	addSpreadShow(cmd)
	addSpreadDelete(cmd)
	topLevel.AddCommand(cmd)
}

func addSpreadCreate(parent *cobra.Command) {
	po := &options.PeriodOptions{}
	ro := &options.RangeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a spread",
		Example: `
spreads spread create 2026
spreads spread create "March 2026"
spreads spread create --period day --on tomorrow
spreads spread create --period multiday --on monday --until friday
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			c := spreads.Create{Service: svc, ShowID: io.ShowID, JSON: oo.JSON}
			if len(args) == 1 {
				t, err := svc.Target(args[0])
				if err != nil {
					return oo.HandleError(err)
				}
				c.Period, c.Date = t.Period, t.Date
			} else {
				if c.Period, err = po.GetPeriod(); err != nil {
					return oo.HandleError(err)
				}
				if c.Date, err = ro.GetOn(svc.Today(), svc.Calendar); err != nil {
					return oo.HandleError(err)
				}
				if c.Period == period.Multiday {
					if ro.UntilString == "" {
						return oo.HandleError(errors.New("--until is required for multiday spreads"))
					}
					if c.End, err = ro.GetUntil(svc.Today(), svc.Calendar); err != nil {
						return oo.HandleError(err)
					}
				}
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddPeriodArgs(cmd, po, period.Day)
	options.AddRangeArgs(cmd, ro)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addSpreadPreset(parent *cobra.Command) {
	names := make([]string, 0, 2)
	for _, p := range spread.Presets() {
		names = append(names, string(p))
	}

	cmd := &cobra.Command{
		Use:       "preset <" + strings.Join(names, "|") + ">",
		Short:     "Create a multiday spread from a preset",
		ValidArgs: names,
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			preset, err := spread.ParsePreset(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			c := spreads.Create{Service: svc, Preset: preset, JSON: oo.JSON}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addSpreadList(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List spreads in year, month, day order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			l := spreads.List{Service: svc, JSON: oo.JSON}
			return oo.HandleError(l.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addSpreadShow(parent *cobra.Command) {
	mo := &options.ModeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show [spread]",
		Short: "Show the entries on a spread",
		Example: `
spreads spread show
spreads spread show "January 2026" --mode traditional
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return spreadCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			mode, err := mo.GetMode()
			if err != nil {
				return oo.HandleError(err)
			}
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			ref := "today"
			if len(args) == 1 {
				ref = args[0]
			}
			g := get.Get{Service: svc, Ref: ref, Mode: mode, ShowID: io.ShowID, JSON: oo.JSON}
			return oo.HandleError(g.Do(cmd.Context()))
		},
	}

	options.AddModeArgs(cmd, mo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addSpreadDelete(parent *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "delete <spread>",
		Short: "Delete a spread; its entries move to the parent spread or the Inbox",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			d := spreads.Delete{Service: svc, Ref: args[0], ShowID: io.ShowID, JSON: oo.JSON}
			return oo.HandleError(d.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}

func addMultiday(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "multiday <spread>",
		Short: "Show every entry whose date falls inside a multiday spread",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			m := get.Multiday{Service: svc, Ref: args[0], ShowID: io.ShowID, JSON: oo.JSON}
			return oo.HandleError(m.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
