// Package get prints a spread and the entries shown on it.
package get

import (
	"context"
	"errors"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/printers"
	"tableflip.dev/spreads/pkg/spread"
)

type Get struct {
	Service *app.Service
	// Ref is a spread id or name; "today" is the Day spread for today.
	Ref    string
	Mode   engine.Mode
	ShowID bool
	JSON   bool
}

type view struct {
	Spread  *spread.Spread     `json:"spread"`
	Entries []engine.EntryView `json:"entries"`
}

func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	sp, err := n.Service.Resolve(ctx, n.Ref)
	if err != nil {
		return err
	}
	_, views, err := n.Service.View(ctx, sp.ID, n.Mode)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(nil, view{Spread: sp, Entries: views})
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Calendar: n.Service.Calendar}
	pp.NewLine()
	if sp.Period == period.Month {
		counts, err := n.Service.MonthCounts(ctx, sp.Date)
		if err != nil {
			return err
		}
		pp.MonthCount(sp.Date, counts)
	}
	pp.TitleWithCount(sp.Title(n.Service.Calendar), len(views))
	pp.Views(views)
	return nil
}

// Multiday prints the entries aggregated by a multiday spread.
type Multiday struct {
	Service *app.Service
	Ref     string
	ShowID  bool
	JSON    bool
}

func (n *Multiday) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	sp, err := n.Service.Resolve(ctx, n.Ref)
	if err != nil {
		return err
	}
	_, entries, err := n.Service.Multiday(ctx, sp.ID)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(nil, struct {
			Spread  *spread.Spread `json:"spread"`
			Entries []entry.Entry  `json:"entries"`
		}{sp, entries})
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Calendar: n.Service.Calendar}
	pp.NewLine()
	pp.TitleWithCount(sp.Title(n.Service.Calendar), len(entries))
	pp.Entries(entries...)
	return nil
}
