package cli

import (
	"bufio"
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/store"
)

// DeleteCmd returns the delete command.
func DeleteCmd(st *store.Store) *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	yes := fs.BoolP("yes", "y", false, "Delete without confirmation")

	return &Command{
		Flags:   fs,
		Usage:   "delete <id> [-y]",
		Aliases: []string{"rm"},
		Short:   "Delete a ticket",
		Long:    "Delete a ticket file permanently. There is no soft delete.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errIDRequired
			}

			id := args[0]

			if !*yes && !confirm(o, "Delete "+id+"? [y/N] ") {
				o.Println("aborted")

				return nil
			}

			err := st.Delete(ctx, id)
			if err != nil {
				return err
			}

			o.Println("Deleted", id)

			return nil
		},
	}
}

// confirm asks a yes/no question on the command's stdin. Anything but an
// explicit yes declines.
func confirm(o *IO, prompt string) bool {
	if o.In == nil {
		return false
	}

	o.Printf("%s", prompt)

	reader := bufio.NewReader(o.In)

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}
