package commands

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/app"
	"tableflip.dev/spreads/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(spreads completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(spreads completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletion(os.Stdout)
		},
	}

	topLevel.AddCommand(cmd)
}

// spreadCompletions offers spread names, or ids for multiday spreads, that
// start with toComplete.
func spreadCompletions(toComplete string) []string {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil
	}
	j, err := store.Open(cfg)
	if err != nil {
		return nil
	}
	defer j.Close()
	svc, err := app.New(j, cfg)
	if err != nil {
		return nil
	}
	all, err := svc.Spreads(context.Background())
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(all))
	for _, s := range all {
		name := s.ID
		if !s.IsMultiday() {
			name = s.Title(svc.Calendar)
		}
		if strings.HasPrefix(strings.ToLower(name), strings.ToLower(toComplete)) {
			out = append(out, strconv.Quote(name))
		}
	}
	return out
}
