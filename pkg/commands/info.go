package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and where the journal is stored.",
		Example: `
spreads info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, cfg, done, err := openService()
			if err != nil {
				return err
			}
			defer done()

			s := info.Info{
				Config:  cfg,
				Service: svc,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	topLevel.AddCommand(cmd)
}
