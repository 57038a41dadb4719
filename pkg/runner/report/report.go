// Package report prints tasks completed within a time window.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/printers"
)

type Report struct {
	Service *app.Service
	// Window is how far back the report reaches from now.
	Window time.Duration
	Label  string
	ShowID bool
	JSON   bool
}

func (r *Report) Do(ctx context.Context) error {
	if r.Service == nil {
		return errors.New("can not report, no service")
	}
	if r.Window <= 0 {
		return fmt.Errorf("report window must be positive, got %s", r.Window)
	}
	until := time.Now()
	if r.Service.Now != nil {
		until = r.Service.Now()
	}
	result, err := r.Service.Report(ctx, until.Add(-r.Window), until)
	if err != nil {
		return err
	}
	if r.JSON {
		return printers.JSON(nil, result)
	}
	pp := printers.PrettyPrint{ShowID: r.ShowID, Calendar: r.Service.Calendar}
	pp.NewLine()
	if r.Label != "" {
		_, _ = color.New(color.Bold).Fprintf(color.Output, "Report · last %s\n", r.Label)
	}
	pp.Report(result)
	return nil
}
