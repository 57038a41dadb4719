package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/period"
)

// PeriodOptions
type PeriodOptions struct {
	Period string
}

func AddPeriodArgs(cmd *cobra.Command, o *PeriodOptions, def period.Period) {
	cmd.Flags().StringVarP(&o.Period, "period", "p", def.String(),
		"Period: year, month or day.")
	_ = cmd.RegisterFlagCompletionFunc("period", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		out := make([]string, 0, 4)
		for _, p := range period.All() {
			out = append(out, p.String())
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	})
}

func (o *PeriodOptions) GetPeriod() (period.Period, error) {
	return period.Parse(o.Period)
}

// ModeOptions
type ModeOptions struct {
	Mode string
}

func AddModeArgs(cmd *cobra.Command, o *ModeOptions) {
	cmd.Flags().StringVar(&o.Mode, "mode", string(engine.Conventional),
		"conventional shows every spread an entry passed through; traditional shows preferred dates only.")
}

func (o *ModeOptions) GetMode() (engine.Mode, error) {
	return engine.ParseMode(o.Mode)
}

// WatchOptions
type WatchOptions struct {
	Watch bool
}

func AddWatchArgs(cmd *cobra.Command, o *WatchOptions) {
	cmd.Flags().BoolVarP(&o.Watch, "watch", "w", false,
		"Keep running and redraw when the journal changes.")
}
