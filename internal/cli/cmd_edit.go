package cli

import (
	"context"
	"errors"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/ticket"
	"github.com/cmwen/minpmt/internal/validate"
)

var errNothingToEdit = errors.New("nothing to edit (pass at least one field flag)")

// EditCmd returns the edit command.
func EditCmd(cfg config.Config, st *store.Store) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	title := fs.StringP("title", "t", "", "New title")
	description := fs.StringP("description", "d", "", "New description")
	status := fs.StringP("status", "s", "", "New status")
	priority := fs.StringP("priority", "p", "", "New priority")
	labels := fs.StringP("labels", "l", "", "Comma-separated labels (replaces existing)")
	assignee := fs.StringP("assignee", "a", "", "New assignee")
	due := fs.String("due", "", "New due date (RFC 3339 or YYYY-MM-DD)")

	return &Command{
		Flags: fs,
		Usage: "edit <id> [flags]",
		Short: "Update ticket fields",
		Long: "Update one or more fields on a ticket. Only the fields passed\n" +
			"as flags change; the ticket body is left untouched.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			if len(args) < 1 {
				return errIDRequired
			}

			var patch ticket.Patch

			if fs.Changed("title") {
				patch.Title = title
			}

			if fs.Changed("description") {
				patch.Description = description
			}

			if fs.Changed("status") {
				patch.Status = status
			}

			if fs.Changed("priority") {
				patch.Priority = priority
			}

			if fs.Changed("labels") {
				patch.Labels = splitLabels(*labels)
				if patch.Labels == nil {
					patch.Labels = []string{}
				}
			}

			if fs.Changed("assignee") {
				patch.Assignee = assignee
			}

			if fs.Changed("due") {
				patch.Due = due
			}

			if patch.Empty() {
				return errNothingToEdit
			}

			validateErr := validate.Update(cfg, patch)
			if validateErr != nil {
				return validateErr
			}

			updated, err := st.UpdateFields(ctx, args[0], patch)
			if err != nil {
				return err
			}

			o.Println("Updated", updated.ID)

			return nil
		},
	}
}
