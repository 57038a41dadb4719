package options

import (
	"errors"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/engine"
	"tableflip.dev/spreads/pkg/printers"
)

// ErrReported is returned once an error has been written as JSON; main exits
// non-zero without printing it again.
var ErrReported = errors.New("error already reported")

// OutputOptions selects machine readable output.
type OutputOptions struct {
	JSON bool
}

func AddOutputArg(cmd *cobra.Command, po *OutputOptions) {
	cmd.Flags().BoolVar(&po.JSON, "json", false,
		"Output as JSON.")
}

type errorBody struct {
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// HandleError writes err as a JSON object when --json is set.
func (o *OutputOptions) HandleError(err error) error {
	if !o.JSON || err == nil {
		return err
	}
	body := errorBody{Error: err.Error()}
	var (
		nf  *engine.NotFoundError
		ve  *engine.ValidationError
		mig *engine.MigrationError
	)
	switch {
	case errors.As(err, &nf):
		body.Kind = "not_found"
	case errors.As(err, &ve):
		body.Kind, body.Reason = "validation", string(ve.Reason)
	case errors.As(err, &mig):
		body.Kind, body.Reason = "migration", string(mig.Reason)
	}
	if perr := printers.JSON(nil, body); perr != nil {
		return perr
	}
	return ErrReported
}
