package cli

import (
	"context"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/ticket"
	"github.com/cmwen/minpmt/internal/validate"
)

// AddCmd returns the add command.
func AddCmd(cfg config.Config, st *store.Store) *Command {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	description := fs.StringP("description", "d", "", "Ticket description")
	priority := fs.StringP("priority", "p", "", "Priority (low|medium|high|critical)")
	labels := fs.StringP("labels", "l", "", "Comma-separated labels")
	status := fs.StringP("status", "s", "", "Initial status")
	assignee := fs.StringP("assignee", "a", "", "Assignee name")
	due := fs.String("due", "", "Due date (RFC 3339 or YYYY-MM-DD)")
	interactive := fs.BoolP("interactive", "i", false, "Prompt for fields interactively")

	return &Command{
		Flags: fs,
		Usage: "add <title> [flags]",
		Short: "Create a ticket, prints its id",
		Long: "Create a new ticket in the project folder. The ticket id is\n" +
			"derived from the title and printed on success.\n\n" +
			"With -i (or no title on an interactive run), missing fields are\n" +
			"prompted for.",
		Exec: func(ctx context.Context, o *IO, args []string) error {
			in := ticket.CreateInput{
				Description: *description,
				Priority:    *priority,
				Status:      *status,
				Assignee:    *assignee,
				Due:         *due,
				Labels:      splitLabels(*labels),
			}

			if len(args) > 0 {
				in.Title = args[0]
			}

			if *interactive {
				promptErr := promptCreateInput(&in)
				if promptErr != nil {
					return promptErr
				}
			}

			validateErr := validate.Create(cfg, in)
			if validateErr != nil {
				return validateErr
			}

			created, err := st.Create(ctx, in)
			if err != nil {
				return err
			}

			o.Println(created.ID)

			return nil
		},
	}
}

// splitLabels splits a comma-separated label list, dropping empty entries.
func splitLabels(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")

	labels := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			labels = append(labels, trimmed)
		}
	}

	if len(labels) == 0 {
		return nil
	}

	return labels
}
