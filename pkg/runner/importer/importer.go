// Package importer loads calendar events from ICS files into the journal.
package importer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/ics"
	"tableflip.dev/spreads/pkg/printers"
)

type Import struct {
	Service *app.Service
	Path    string
	// From and To bound the expansion of recurring events.
	From time.Time
	To   time.Time
	JSON bool
}

func (n *Import) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not import, no service")
	}
	f, err := os.Open(n.Path)
	if err != nil {
		return err
	}
	defer f.Close()

	vevents, err := ics.Parse(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", n.Path, err)
	}
	from, to := n.From, n.To
	if from.IsZero() {
		from = n.Service.Today()
	}
	if to.IsZero() {
		to = from.AddDate(0, 3, 0)
	}
	events, err := ics.Expand(vevents, from, to, n.Service.Calendar, time.Now())
	if err != nil {
		return err
	}
	result, err := n.Service.ImportEvents(ctx, events)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(nil, result)
	}
	pp := printers.PrettyPrint{Calendar: n.Service.Calendar}
	pp.NewLine()
	pp.TitleWithCount(fmt.Sprintf("Imported (%d skipped)", result.Skipped), len(result.Added))
	added := make([]entry.Entry, 0, len(result.Added))
	for _, ev := range result.Added {
		added = append(added, ev)
	}
	pp.Entries(added...)
	return nil
}
