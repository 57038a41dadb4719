// Package spreads contains runners for spread management commands.
package spreads

import (
	"context"
	"errors"
	"time"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/period"
	"tableflip.dev/spreads/pkg/printers"
	"tableflip.dev/spreads/pkg/spread"
)

// Create configures the parameters for `spreads spread create`.
type Create struct {
	Service *app.Service
	Period  period.Period
	Date    time.Time
	// End is required for multiday spreads.
	End    time.Time
	Preset spread.Preset
	ShowID bool
	JSON   bool
}

// Do creates the spread and prints the entries it adopted from the Inbox.
func (c *Create) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("can not create, no service")
	}
	var (
		result app.CreateResult
		err    error
	)
	if c.Preset != "" {
		result, err = c.Service.CreatePreset(ctx, c.Preset)
	} else {
		req := spread.Request{Period: c.Period, Date: c.Date}
		if c.Period == period.Multiday {
			req.End = c.End
		}
		result, err = c.Service.CreateSpread(ctx, req)
	}
	if err != nil {
		return err
	}
	if c.JSON {
		return printers.JSON(nil, result)
	}

	pp := printers.PrettyPrint{ShowID: c.ShowID, Calendar: c.Service.Calendar}
	pp.NewLine()
	pp.Title(result.Spread.Title(c.Service.Calendar))
	if len(result.Adopted) > 0 {
		pp.TitleWithCount("Adopted from Inbox", len(result.Adopted))
		adopted := make([]entry.Entry, 0, len(result.Adopted))
		for _, e := range result.Adopted {
			adopted = append(adopted, e)
		}
		pp.Entries(adopted...)
	}
	return nil
}

// Delete configures the parameters for `spreads spread delete`.
type Delete struct {
	Service *app.Service
	Ref     string
	ShowID  bool
	JSON    bool
}

// Do deletes the spread and prints where its entries went.
func (d *Delete) Do(ctx context.Context) error {
	if d.Service == nil {
		return errors.New("can not delete, no service")
	}
	sp, err := d.Service.Resolve(ctx, d.Ref)
	if err != nil {
		return err
	}
	plan, err := d.Service.DeleteSpread(ctx, sp.ID)
	if err != nil {
		return err
	}
	if d.JSON {
		return printers.JSON(nil, plan)
	}
	pp := printers.PrettyPrint{ShowID: d.ShowID, Calendar: d.Service.Calendar}
	pp.NewLine()
	pp.Deletion(plan)
	return nil
}

// List configures the parameters for `spreads spread list`.
type List struct {
	Service *app.Service
	JSON    bool
}

// Do prints every spread in hierarchy order.
func (l *List) Do(ctx context.Context) error {
	if l.Service == nil {
		return errors.New("can not list, no service")
	}
	all, err := l.Service.Spreads(ctx)
	if err != nil {
		return err
	}
	if l.JSON {
		return printers.JSON(nil, all)
	}
	pp := printers.PrettyPrint{Calendar: l.Service.Calendar}
	pp.NewLine()
	pp.Spreads(all)
	return nil
}
