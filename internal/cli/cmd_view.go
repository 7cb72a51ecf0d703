package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/store"
)

// ViewCmd returns the view command.
func ViewCmd(st *store.Store) *Command {
	fs := flag.NewFlagSet("view", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "Output as JSON")

	return &Command{
		Flags:   fs,
		Usage:   "view <id>",
		Aliases: []string{"show"},
		Short:   "Print a ticket",
		Long:    "Print a ticket's full file content, frontmatter and body.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errIDRequired
			}

			t, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}

			if t == nil {
				return fmt.Errorf("%w: %s", store.ErrNotFound, args[0])
			}

			if *asJSON {
				return printJSONValue(o, t.View())
			}

			o.Printf("%s", t.Content)

			return nil
		},
	}
}
