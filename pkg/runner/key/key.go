// Package key provides CLI helpers to display the journaling legend.
package key

import (
	"context"

	"tableflip.dev/spreads/pkg/printers"
)

// Key prints a glyph legend describing bullets and spread markers.
type Key struct{}

// Do renders the legend to stdout.
func (k *Key) Do(_ context.Context) error {
	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Legend()
	pp.NewLine()
	return nil
}
