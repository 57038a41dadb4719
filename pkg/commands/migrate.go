package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/runner/migrate"
)

func addMigrate(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "migrate <id> <from> <to>",
		Short: "Migrate a task or note from one spread to another",
		Long: `Migrate moves an entry between spreads given by id or name. The source spread
keeps a migrated record of the entry; nothing is ever migrated implicitly.`,
		Example: `
spreads migrate V1StGXR8_Z5jdHi6B-myT "January 2026" 2026-01-06
spreads migrate V1StGXR8_Z5jdHi6B-myT today tomorrow
`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			m := migrate.Migrate{
				Service: svc,
				ID:      args[0],
				From:    args[1],
				To:      args[2],
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(m.Do(cmd.Context()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	addMigrateBatch(cmd)
	topLevel.AddCommand(cmd)
}

func addMigrateBatch(parent *cobra.Command) {
	io := &options.IDOptions{}
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "batch <spread> [task ids...]",
		Short: "Bring open tasks from parent spreads onto a spread",
		Example: `
spreads migrate batch today --dry-run
spreads migrate batch today
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, _, done, err := openService()
			if err != nil {
				return oo.HandleError(err)
			}
			defer done()

			b := migrate.Batch{
				Service: svc,
				Spread:  args[0],
				IDs:     args[1:],
				DryRun:  dryRun,
				ShowID:  io.ShowID,
				JSON:    oo.JSON,
			}
			return oo.HandleError(b.Do(cmd.Context()))
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "List the candidates without migrating them.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	parent.AddCommand(cmd)
}
