package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/web"
)

const defaultWebPort = 3000

// WebCmd returns the web command.
func WebCmd(cfg config.Config, st *store.Store) *Command {
	fs := flag.NewFlagSet("web", flag.ContinueOnError)
	port := fs.IntP("port", "p", defaultWebPort, "Port number")
	host := fs.String("host", "127.0.0.1", "Host to bind")

	return &Command{
		Flags: fs,
		Usage: "web [-p port]",
		Short: "Start the web UI server",
		Long: "Serve the kanban board UI and the JSON API over HTTP.\n" +
			"Stops on interrupt.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			readyErr := st.EnsureReady()
			if readyErr != nil {
				return readyErr
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := fmt.Sprintf("%s:%d", *host, *port)
			server := web.NewServer(addr, cfg, st)

			o.Println("pmt web UI on http://" + addr)

			return server.ListenAndServe(ctx)
		},
	}
}
