package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/ticket"
	"github.com/cmwen/minpmt/internal/validate"
)

// ListCmd returns the list command.
func ListCmd(cfg config.Config, st *store.Store) *Command {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	status := fs.StringP("status", "s", "", "Filter by status")
	priority := fs.StringP("priority", "p", "", "Filter by priority")
	asJSON := fs.Bool("json", false, "Output as JSON")

	return &Command{
		Flags:   fs,
		Usage:   "list [flags]",
		Aliases: []string{"ls"},
		Short:   "List tickets",
		Long: "List tickets in the project folder, optionally filtered by\n" +
			"status and priority. Output is sorted by creation time.",
		Exec: func(ctx context.Context, o *IO, _ []string) error {
			if fs.Changed("status") {
				err := validate.Status(cfg, *status)
				if err != nil {
					return err
				}
			}

			if fs.Changed("priority") && !ticket.IsValidPriority(*priority) {
				return fmt.Errorf("invalid priority %q (allowed: %s)",
					*priority, strings.Join(ticket.ValidPriorities(), " | "))
			}

			tickets, err := st.List(ctx, ticket.Filters{Status: *status, Priority: *priority})
			if err != nil {
				return err
			}

			// Directory traversal order is not meaningful; present oldest
			// first for the terminal.
			sort.Slice(tickets, func(i, j int) bool {
				return tickets[i].Created.Before(tickets[j].Created)
			})

			if *asJSON {
				return printJSONValue(o, ticket.Views(tickets))
			}

			printTable(o, tickets)

			return nil
		},
	}
}

func printJSONValue(o *IO, v any) error {
	encoded, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	o.Println(string(encoded))

	return nil
}

func printTable(o *IO, tickets []*ticket.Ticket) {
	if len(tickets) == 0 {
		o.Println("no tickets")

		return
	}

	idWidth := len("ID")
	statusWidth := len("STATUS")

	for _, t := range tickets {
		if len(t.ID) > idWidth {
			idWidth = len(t.ID)
		}

		if len(t.Status) > statusWidth {
			statusWidth = len(t.Status)
		}
	}

	o.Printf("%-*s  %-*s  %-8s  %s\n", idWidth, "ID", statusWidth, "STATUS", "PRIORITY", "TITLE")

	for _, t := range tickets {
		priority := t.Priority
		if priority == "" {
			priority = "-"
		}

		title := t.Title
		if !t.Due.IsZero() {
			title += " (due " + t.Due.Format(time.DateOnly) + ")"
		}

		o.Printf("%-*s  %-*s  %-8s  %s\n", idWidth, t.ID, statusWidth, t.Status, priority, title)
	}
}
