// Package migrate provides runners that move tasks and notes between spreads.
package migrate

import (
	"context"
	"errors"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/entry"
	"tableflip.dev/spreads/pkg/printers"
)

// Migrate moves one entry from a spread to another.
type Migrate struct {
	Service *app.Service
	ID      string
	// From and To are spread ids or names.
	From   string
	To     string
	ShowID bool
	JSON   bool
}

func (m *Migrate) Do(ctx context.Context) error {
	if m.Service == nil {
		return errors.New("can not migrate, no service")
	}
	from, err := m.Service.TargetOf(ctx, m.From)
	if err != nil {
		return err
	}
	to, err := m.Service.TargetOf(ctx, m.To)
	if err != nil {
		return err
	}
	moved, err := m.Service.Migrate(ctx, m.ID, from, to)
	if err != nil {
		return err
	}
	if m.JSON {
		return printers.JSON(nil, moved)
	}
	pp := printers.PrettyPrint{ShowID: m.ShowID, Calendar: m.Service.Calendar}
	pp.NewLine()
	pp.Title(from.String() + " → " + to.String())
	pp.Entries(moved)
	return nil
}

// Batch migrates open tasks from ancestor spreads onto a spread.
type Batch struct {
	Service *app.Service
	Spread  string
	// IDs limits the batch; empty means every candidate.
	IDs []string
	// DryRun lists the candidates without migrating them.
	DryRun bool
	ShowID bool
	JSON   bool
}

func (b *Batch) Do(ctx context.Context) error {
	if b.Service == nil {
		return errors.New("can not migrate, no service")
	}
	sp, err := b.Service.Resolve(ctx, b.Spread)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{ShowID: b.ShowID, Calendar: b.Service.Calendar}

	if b.DryRun {
		dest, candidates, err := b.Service.MigrationCandidates(ctx, sp.ID)
		if err != nil {
			return err
		}
		if b.JSON {
			return printers.JSON(nil, candidates)
		}
		pp.NewLine()
		pp.TitleWithCount("Candidates for "+dest.Title(b.Service.Calendar), len(candidates))
		list := make([]entry.Entry, 0, len(candidates))
		for _, t := range candidates {
			list = append(list, t)
		}
		pp.Entries(list...)
		return nil
	}

	result, err := b.Service.MigrateBatch(ctx, sp.ID, b.IDs)
	if err != nil {
		return err
	}
	if b.JSON {
		return printers.JSON(nil, result)
	}
	pp.NewLine()
	pp.Batch(sp, result)
	return nil
}
