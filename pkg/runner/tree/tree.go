// Package tree prints the year, month and day hierarchy of spreads.
package tree

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/printers"
	"tableflip.dev/spreads/pkg/runner/watch"
	"tableflip.dev/spreads/pkg/store"
)

type Tree struct {
	Service *app.Service
	// On picks the initial selection; zero means today.
	On     time.Time
	ShowID bool
	JSON   bool
	Watch  bool
}

func (n *Tree) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not build tree, no service")
	}
	if !n.Watch || n.JSON {
		return n.render(ctx)
	}
	f := watch.Follow{
		Service: n.Service,
		Render:  n.render,
		Relevant: func(ev store.Event) bool {
			return ev.Type == store.EventInvalidated || ev.Kind == store.KindSpread
		},
	}
	return f.Do(ctx)
}

func (n *Tree) render(ctx context.Context) error {
	on := n.On
	if on.IsZero() {
		on = n.Service.Today()
	}
	result, err := n.Service.Tree(ctx, on)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(nil, result)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Calendar: n.Service.Calendar}
	pp.NewLine()
	pp.Tree(result.Tree, result.Selected)
	return nil
}
