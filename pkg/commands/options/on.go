package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/timeutil"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on=2026-02-28, --on=tomorrow, --on=+3d or --on=friday.`)
}

// GetOn resolves the flag relative to today. An empty flag is today.
func (o *OnOptions) GetOn(today time.Time, cal period.Calendar) (time.Time, error) {
	return timeutil.ParseDate(o.OnString, today, cal)
}

// RangeOptions
type RangeOptions struct {
	OnOptions
	UntilString string
}

func AddRangeArgs(cmd *cobra.Command, o *RangeOptions) {
	AddOnArgs(cmd, &o.OnOptions)
	cmd.Flags().StringVar(&o.UntilString, "until", "",
		`Last day of the range, same formats as --on. Defaults to the --on day.`)
}

// GetUntil resolves --until; it is zero when the flag is unset.
func (o *RangeOptions) GetUntil(today time.Time, cal period.Calendar) (time.Time, error) {
	if o.UntilString == "" {
		return time.Time{}, nil
	}
	return timeutil.ParseDate(o.UntilString, today, cal)
}
