// Package complete provides the runner logic for changing task status.
package complete

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/printers"
)

// Action is the status change to apply.
type Action string

const (
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
	ActionReopen   Action = "reopen"
)

// Complete changes the status of a task.
type Complete struct {
	Service *app.Service
	ID      string
	Action  Action
	JSON    bool
}

// Do executes the status change for the configured task ID.
func (n *Complete) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not complete, no service")
	}

	var (
		t   *entry.Task
		err error
	)
	switch n.Action {
	case "", ActionComplete:
		t, err = n.Service.Complete(ctx, n.ID)
	case ActionCancel:
		t, err = n.Service.Cancel(ctx, n.ID)
	case ActionReopen:
		t, err = n.Service.Reopen(ctx, n.ID)
	default:
		return fmt.Errorf("unknown action %q", n.Action)
	}
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(nil, t)
	}

	pp := printers.PrettyPrint{ShowID: true, Calendar: n.Service.Calendar}
	pp.NewLine()
	pp.Entries(t)
	return nil
}
