// Package add provides the runner logic for adding entries.
package add

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/printers"
)

type Add struct {
	Service *app.Service

	Kind    entry.Kind
	Title   string
	Content string
	Period  period.Period
	On      time.Time
	// Until is the last day of an event; zero means a single day.
	Until time.Time

	ShowID bool
	JSON   bool
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	on := n.On
	if on.IsZero() {
		on = n.Service.Today()
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Calendar: n.Service.Calendar}

	if n.Kind == entry.KindEvent {
		until := n.Until
		if until.IsZero() {
			until = on
		}
		ev, err := n.Service.AddEvent(ctx, n.Title, on, until)
		if err != nil {
			return err
		}
		if n.JSON {
			return printers.JSON(nil, ev)
		}
		pp.NewLine()
		pp.Entries(ev)
		return nil
	}

	var (
		placed app.Placement
		err    error
	)
	switch n.Kind {
	case entry.KindTask:
		placed, err = n.Service.AddTask(ctx, n.Title, n.Period, on)
	case entry.KindNote:
		placed, err = n.Service.AddNote(ctx, n.Title, n.Content, n.Period, on)
	default:
		return errors.New("unknown entry kind " + string(n.Kind))
	}
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(nil, placed)
	}

	pp.NewLine()
	if placed.Spread == nil {
		pp.Title("Inbox")
	} else {
		pp.Title(placed.Spread.Title(n.Service.Calendar))
	}
	pp.Entries(placed.Entry)
	return nil
}
