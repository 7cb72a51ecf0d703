package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/validate"
)

var (
	errIDRequired     = errors.New("ticket id is required")
	errStatusRequired = errors.New("new status is required")
)

// MoveCmd returns the move command.
func MoveCmd(cfg config.Config, st *store.Store) *Command {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)

	return &Command{
		Flags: fs,
		Usage: "move <id> <status>",
		Short: "Change a ticket's status",
		Long: "Move a ticket to a different status. The status must be part\n" +
			"of the configured vocabulary; the ticket file stays where it is.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errIDRequired
			}

			if len(args) < 2 {
				return errStatusRequired
			}

			id, newStatus := args[0], args[1]

			validateErr := validate.Status(cfg, newStatus)
			if validateErr != nil {
				return validateErr
			}

			err := st.UpdateStatus(ctx, id, newStatus)
			if err != nil {
				return err
			}

			o.Println("Updated", id, "->", newStatus)

			return nil
		},
	}
}
