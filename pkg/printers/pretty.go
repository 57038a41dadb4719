package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/glyph"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/spread"
)

type PrettyPrint struct {
	ShowID   bool
	Calendar period.Calendar
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	spacing = strings.Repeat(" ", len("V1StGXR8_Z5jdHi6B-my  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.out(), id)
	pad := len(spacing) - len(id)
	if pad < 1 {
		pad = 1
	}
	_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
}

func (pp *PrettyPrint) line(e entry.Entry, status entry.Status) {
	pp.id(e.EntryID())
	g := glyph.For(e.EntryKind(), status)
	text := e.EntryTitle()
	p := color.New()
	switch status {
	case entry.StatusComplete, entry.StatusCancelled:
		p = color.New(color.Faint, color.CrossedOut)
	case entry.StatusMigrated:
		p = color.New(color.Faint)
	}
	_, _ = fmt.Fprintf(pp.out(), "%s ", g)
	_, _ = p.Fprint(pp.out(), text)
	if ev, ok := e.(*entry.Event); ok {
		c := color.New(color.Faint)
		_, _ = c.Fprintf(pp.out(), "  %s", pp.span(ev))
	}
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) span(ev *entry.Event) string {
	start := pp.Calendar.In(ev.StartDate).Format("Jan 2")
	if pp.Calendar.Same(period.Day, ev.StartDate, ev.EndDate) {
		return start
	}
	return start + " – " + pp.Calendar.In(ev.EndDate).Format("Jan 2")
}

// Views prints the entries shown on a spread.
func (pp *PrettyPrint) Views(views []engine.EntryView) {
	if len(views) == 0 {
		pp.none()
		return
	}
	for _, v := range views {
		pp.line(v.Entry, v.Status)
	}
	pp.NewLine()
}

// Entries prints entries using their entry-level status.
func (pp *PrettyPrint) Entries(entries ...entry.Entry) {
	if len(entries) == 0 {
		pp.none()
		return
	}
	for _, e := range entries {
		var status entry.Status
		if a, ok := e.(entry.Assignable); ok {
			status = a.CurrentStatus()
		}
		pp.line(e, status)
	}
	pp.NewLine()
}

// Inbox prints the unassigned entries under their preferred period.
func (pp *PrettyPrint) Inbox(entries []entry.Assignable) {
	pp.TitleWithCount("Inbox", len(entries))
	if len(entries) == 0 {
		pp.none()
		return
	}
	f := color.New(color.Faint)
	for _, e := range entries {
		pp.id(e.EntryID())
		p, date := e.Preferred()
		_, _ = fmt.Fprintf(pp.out(), "%s %s", glyph.For(e.EntryKind(), e.CurrentStatus()), e.EntryTitle())
		_, _ = f.Fprintf(pp.out(), "  %s %s\n", p, pp.Calendar.In(date).Format("2006-01-02"))
	}
	pp.NewLine()
}

// Tree prints the spread hierarchy with the selected spread highlighted.
func (pp *PrettyPrint) Tree(tree engine.Tree, selected *spread.Spread) {
	if tree.Len() == 0 {
		pp.none()
		return
	}
	sel := color.New(color.Bold, color.FgHiCyan)
	virtual := color.New(color.Faint, color.Italic)
	row := func(depth int, s *spread.Spread, label string) {
		if s != nil {
			pp.id(s.ID)
		} else if pp.ShowID {
			_, _ = fmt.Fprint(pp.out(), spacing)
		}
		indent := strings.Repeat("  ", depth)
		switch {
		case s == nil:
			_, _ = virtual.Fprintf(pp.out(), "%s%s\n", indent, label)
		case selected != nil && s.ID == selected.ID:
			_, _ = sel.Fprintf(pp.out(), "%s%s %s ‹\n", indent, glyph.Spread(s.Period), label)
		default:
			_, _ = fmt.Fprintf(pp.out(), "%s%s %s\n", indent, glyph.Spread(s.Period), label)
		}
	}
	for _, y := range tree.Years {
		row(0, y.Spread, fmt.Sprintf("%d", y.Year))
		for _, m := range y.Months {
			row(1, m.Spread, m.Month.String())
			for _, it := range m.Items {
				row(2, it, it.Title(pp.Calendar))
			}
		}
	}
	pp.NewLine()
}

// Spreads prints a table of spreads.
func (pp *PrettyPrint) Spreads(spreads []*spread.Spread) {
	if len(spreads) == 0 {
		pp.none()
		return
	}
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("ID"), bold.Sprint("Period"), bold.Sprint("Spread"))
	for _, s := range spreads {
		tbl.AddRow(s.ID, s.Period, s.Title(pp.Calendar))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Deletion prints where each affected entry went.
func (pp *PrettyPrint) Deletion(plan engine.DeletionPlan) {
	pp.TitleWithCount("Deleted "+plan.Spread.Title(pp.Calendar), len(plan.Affected))
	f := color.New(color.Faint)
	for _, r := range plan.Affected {
		pp.id(r.Entry.EntryID())
		to := "Inbox"
		if r.To != nil {
			to = r.To.Title(pp.Calendar)
		}
		_, _ = fmt.Fprintf(pp.out(), "%s %s", glyph.For(r.Entry.EntryKind(), r.Entry.CurrentStatus()), r.Entry.EntryTitle())
		_, _ = f.Fprintf(pp.out(), "  → %s\n", to)
	}
	pp.NewLine()
}

// Batch prints the outcome of a batch migration.
func (pp *PrettyPrint) Batch(dest *spread.Spread, result engine.BatchResult) {
	pp.TitleWithCount("Migrated to "+dest.Title(pp.Calendar), len(result.Migrated))
	for _, t := range result.Migrated {
		pp.line(t, t.Status)
	}
	if len(result.Failed) > 0 {
		r := color.New(color.FgRed)
		for _, f := range result.Failed {
			pp.id(f.TaskID)
			_, _ = r.Fprintf(pp.out(), "%s\n", f.Err)
		}
	}
	pp.NewLine()
}

// Legend prints the glyph key.
func (pp *PrettyPrint) Legend() {
	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Bullet"), bold.Sprint("Meaning"))
	for _, g := range glyph.Legend() {
		tbl.AddRow(g.Symbol, g.Meaning)
	}
	tbl.AddRow("", "")
	tbl.AddRow(bold.Sprint("Spread"), "")
	for _, p := range period.All() {
		tbl.AddRow(glyph.Spread(p), p.String())
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
