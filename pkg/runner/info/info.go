package info

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/store"
)

type Info struct {
	Config  *store.Config
	Service *app.Service
}

func (n *Info) Do(ctx context.Context) error {
	out := color.Output
	if override := os.Getenv("SPREADS_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "SPREADS_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(out, "SPREADS_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}
	if n.Config.File != "" {
		_, _ = fmt.Fprintln(out, "Config.file: ", n.Config.File)
	}
	_, _ = fmt.Fprintln(out, "Config.storage: ", n.Config.Storage)
	switch n.Config.Storage {
	case store.StorageSQLite:
		_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.SQLitePath())
	case store.StorageMemory:
	default:
		_, _ = fmt.Fprintln(out, "Config.path: ", n.Config.BasePath())
	}
	_, _ = fmt.Fprintln(out, "Config.first_weekday: ", n.Config.FirstWeekday)
	if n.Config.Timezone != "" {
		_, _ = fmt.Fprintln(out, "Config.timezone: ", n.Config.Timezone)
	}

	if n.Service == nil {
		return fmt.Errorf("failed to open the journal")
	}
	snap, err := n.Service.Snapshot(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Spreads: %d\n", len(snap.Spreads))
	_, _ = fmt.Fprintf(out, "Tasks:   %d\n", len(snap.Tasks))
	_, _ = fmt.Fprintf(out, "Notes:   %d\n", len(snap.Notes))
	_, _ = fmt.Fprintf(out, "Events:  %d\n", len(snap.Events))
	return nil
}
