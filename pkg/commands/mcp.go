package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"tableflip.dev/spreads/pkg/runner/mcp"
)

func addMCP(topLevel *cobra.Command) {
	var (
		transport string
		endpoint  mcp.Endpoint
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the journal over the Model Context Protocol.",
		Long: `Launch an MCP server exposing spreads, entries, the Inbox and migration as
tools and resources. stdio suits agents that spawn the process; http serves the
streamable HTTP transport at --addr and --path.`,
		Example: `
spreads mcp
spreads mcp --transport http --addr 127.0.0.1:0
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			t, err := mcp.ParseTransport(transport)
			if err != nil {
				return err
			}
			svc, _, done, err := openService()
			if err != nil {
				return err
			}
			defer done()

			r := mcp.Runner{
				Service:   svc,
				Name:      "spreads",
				Version:   version,
				Transport: t,
				Endpoint:  endpoint,
				Listening: func(url string) {
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "MCP server listening on %s\n", url)
				},
			}
			return r.Do(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&transport, "transport", string(mcp.TransportStdio), "stdio or http")
	cmd.Flags().StringVar(&endpoint.Addr, "addr", "127.0.0.1:8080", "listen address for http (port 0 picks one)")
	cmd.Flags().StringVar(&endpoint.Path, "path", "/mcp", "endpoint path for http")
	cmd.Flags().StringVar(&endpoint.CertFile, "tls-cert", "", "TLS certificate file")
	cmd.Flags().StringVar(&endpoint.KeyFile, "tls-key", "", "TLS private key file")

	topLevel.AddCommand(cmd)
}
