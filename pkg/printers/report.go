package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/glyph"
)

// Report prints completed tasks grouped by spread.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s → %s\n\n",
		pp.Calendar.In(r.Since).Format("Jan 2 15:04"), pp.Calendar.In(r.Until).Format("Jan 2 15:04"))
	if r.Total == 0 {
		pp.none()
		return
	}
	for _, sec := range r.Sections {
		title := "Inbox"
		if sec.Spread != nil {
			title = sec.Spread.Title(pp.Calendar)
		}
		pp.TitleWithCount(title, len(sec.Tasks))
		for _, t := range sec.Tasks {
			pp.id(t.ID)
			_, _ = fmt.Fprintf(pp.out(), "%s %s", glyph.For(entry.KindTask, t.Status), t.Title)
			_, _ = f.Fprintf(pp.out(), "  %s\n", pp.Calendar.In(t.CompletedAt.Time).Format("Mon Jan 2 15:04"))
		}
		pp.NewLine()
	}
}
