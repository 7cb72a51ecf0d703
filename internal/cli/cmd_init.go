package cli

import (
	"context"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
)

// InitCmd returns the init command.
func InitCmd(workDir string) *Command {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	folder := fs.StringP("folder", "f", config.DefaultFolder, "Ticket folder name")

	return &Command{
		Flags: fs,
		Usage: "init [-f folder]",
		Short: "Initialize project config",
		Long: "Write a min-pmt.config.json file in the current project and\n" +
			"create the ticket folder.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			cfg, err := config.Init(workDir, *folder)
			if err != nil {
				return err
			}

			readyErr := store.New(workDir, cfg, nil).EnsureReady()
			if readyErr != nil {
				return readyErr
			}

			o.Println("Initialized pmt in folder:", cfg.Folder)

			return nil
		},
	}
}
