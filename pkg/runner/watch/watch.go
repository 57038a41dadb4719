// Package watch re-renders a view whenever the journal changes.
package watch

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/logger"
	"tableflip.dev/spreads/pkg/store"
)

const clearScreen = "\033[H\033[2J"

// Follow renders once, then again after every relevant change event until ctx
// is done. A nil Relevant accepts every event.
type Follow struct {
	Service  *app.Service
	Render   func(ctx context.Context) error
	Relevant func(store.Event) bool
	// Out defaults to color.Output.
	Out io.Writer
}

// Do runs the render loop.
func (f *Follow) Do(ctx context.Context) error {
	out := f.Out
	if out == nil {
		out = color.Output
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, err := f.Service.Watch(ctx)
	if err != nil {
		return err
	}
	if err := f.draw(ctx, out); err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-ch:
			if !ok {
				return nil
			}
			if f.Relevant != nil && !f.Relevant(ev) {
				continue
			}
			logger.Debug("watch: refresh", "type", ev.Type, "kind", ev.Kind)
			if err := f.draw(ctx, out); err != nil {
				return err
			}
		}
	}
}

func (f *Follow) draw(ctx context.Context, out io.Writer) error {
	_, _ = fmt.Fprint(out, clearScreen)
	return f.Render(ctx)
}
