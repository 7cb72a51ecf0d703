package cli

import (
	"context"
	"encoding/json"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
)

// ConfigCmd returns the config command.
func ConfigCmd(cfg config.Config) *Command {
	fs := flag.NewFlagSet("config", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "config",
		Short: "Print effective configuration",
		Long:  "Print the effective configuration after defaults and the\nproject config file are merged.",
		Exec: func(_ context.Context, o *IO, _ []string) error {
			encoded, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}

			o.Println(string(encoded))

			if cfg.Source != "" {
				o.Println()
				o.Println("# source:", cfg.Source)
			} else {
				o.Println()
				o.Println("# source: built-in defaults")
			}

			return nil
		},
	}
}
