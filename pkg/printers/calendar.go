package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/spreads/pkg/period"
)

const width = len("11 12 13 14 15 16 17") // an example week

// MonthCount prints a month grid, bolding the days with a non-zero count.
// Weeks start on the calendar's first weekday.
func (pp *PrettyPrint) MonthCount(month time.Time, count []int) {
	month = pp.Calendar.Normalize(period.Month, month)
	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", month.Month(), month.Year())
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)

	first := pp.Calendar.FirstWeekday
	h := color.New(color.Faint, color.Underline)
	heads := make([]string, 7)
	for i := range heads {
		heads[i] = time.Weekday((int(first) + i) % 7).String()[0:2]
	}
	_, _ = h.Fprintln(pp.out(), strings.Join(heads, " "))

	// Pad out the start of the month.
	col := (int(month.Weekday()) - int(first) + 7) % 7
	_, _ = fmt.Fprint(pp.out(), strings.Repeat("   ", col))

	l1 := color.New(color.Faint, color.FgWhite)
	l2 := color.New(color.Bold, color.FgHiWhite)

	days := DaysIn(month)
	for i := 0; i < days; i++ {
		if i < len(count) && count[i] > 0 {
			_, _ = l2.Fprintf(pp.out(), "%2d ", i+1)
		} else {
			_, _ = l1.Fprintf(pp.out(), "%2d ", i+1)
		}
		col++
		if col == 7 {
			col = 0
			_, _ = fmt.Fprint(pp.out(), "\n")
		}
	}
	_, _ = fmt.Fprint(pp.out(), "\n\n")
}

// DaysIn returns the number of days in then's month.
func DaysIn(then time.Time) int {
	return time.Date(then.Year(), then.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
