package printers

import (
	"encoding/json"
	"io"

	"github.com/fatih/color"
)

// JSON writes v as indented JSON to w, or to color.Output when w is nil.
func JSON(w io.Writer, v interface{}) error {
	if w == nil {
		w = color.Output
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
