package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/mcp"
	"github.com/cmwen/minpmt/internal/store"
)

// MCPCmd returns the mcp command.
func MCPCmd(cfg config.Config, st *store.Store) *Command {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "mcp",
		Short: "Serve the agent protocol on stdio",
		Long: "Expose ticket operations as MCP tools over stdio so coding\n" +
			"agents can create, query, and move tickets.",
		Exec: func(_ context.Context, _ *IO, _ []string) error {
			readyErr := st.EnsureReady()
			if readyErr != nil {
				return readyErr
			}

			return mcp.NewServer(cfg, st).ServeStdio()
		},
	}
}
