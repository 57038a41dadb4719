// Package inbox prints the entries that have no spread yet.
package inbox

import (
	"context"
	"errors"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/printers"
	"tableflip.dev/spreads/pkg/runner/watch"
	"tableflip.dev/spreads/pkg/store"
)

type Inbox struct {
	Service *app.Service
	ShowID  bool
	JSON    bool
	// Watch keeps the inbox on screen and refreshes it on every change.
	Watch bool
}

func (n *Inbox) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list inbox, no service")
	}
	if !n.Watch || n.JSON {
		return n.render(ctx)
	}
	f := watch.Follow{
		Service: n.Service,
		Render:  n.render,
		Relevant: func(ev store.Event) bool {
			return ev.Type == store.EventInvalidated || ev.Kind != store.KindEvent
		},
	}
	return f.Do(ctx)
}

func (n *Inbox) render(ctx context.Context) error {
	entries, err := n.Service.Inbox(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(nil, entries)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Calendar: n.Service.Calendar}
	pp.NewLine()
	pp.Inbox(entries)
	return nil
}
