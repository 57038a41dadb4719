package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/commands/options"
	"tableflip.dev/spreads/pkg/logger"
	"tableflip.dev/spreads/pkg/store"
)

var (
	oo = &options.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:           "spreads",
		Short:         base.Wrap80("Plan with year, month, day and multiday spreads on the command line."),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addSpread(topLevel)
	addTree(topLevel)
	addTask(topLevel)
	addNote(topLevel)
	addEvent(topLevel)
	addInbox(topLevel)
	addMigrate(topLevel)
	addMultiday(topLevel)
	addImport(topLevel)
	addReport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// openService loads the configuration, starts logging and opens the journal.
// The returned func closes the journal.
func openService() (*app.Service, *store.Config, func(), error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if err := logger.Init(logger.Config{Debug: cfg.LogDebug, Dir: cfg.LogDir}); err != nil {
		return nil, nil, nil, err
	}
	j, err := store.Open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	svc, err := app.New(j, cfg)
	if err != nil {
		_ = j.Close()
		return nil, nil, nil, err
	}
	logger.Debug("journal opened", "storage", j.Backend())
	return svc, cfg, func() {
		if err := j.Close(); err != nil {
			logger.Warn("close journal", "err", err)
		}
	}, nil
}
