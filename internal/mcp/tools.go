package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/ticket"
	"github.com/cmwen/minpmt/internal/validate"
)

func (s *Server) registerTools() {
	s.mcp.AddTool(s.createTicketTool())
	s.mcp.AddTool(s.listTicketsTool())
	s.mcp.AddTool(s.getTicketTool())
	s.mcp.AddTool(s.moveTicketTool())
	s.mcp.AddTool(s.updateTicketTool())
	s.mcp.AddTool(s.deleteTicketTool())
	s.mcp.AddTool(s.getConfigTool())
}

func (s *Server) createTicketTool() (mcp.Tool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool("create-ticket",
		mcp.WithDescription("Create a new ticket with title, status, priority, labels, assignee, and due date."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Ticket title")),
		mcp.WithString("description", mcp.Description("Ticket description")),
		mcp.WithString("status", mcp.Description("Initial status; defaults to the configured default")),
		mcp.WithString("priority", mcp.Description("Priority: low | medium | high | critical")),
		mcp.WithArray("labels", mcp.Description("Labels"), mcp.Items(map[string]any{"type": "string"})),
		mcp.WithString("assignee", mcp.Description("Assignee name")),
		mcp.WithString("due", mcp.Description("Due date, RFC 3339 or YYYY-MM-DD")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		in := ticket.CreateInput{
			Title:       title,
			Description: req.GetString("description", ""),
			Status:      req.GetString("status", ""),
			Priority:    req.GetString("priority", ""),
			Labels:      req.GetStringSlice("labels", nil),
			Assignee:    req.GetString("assignee", ""),
			Due:         req.GetString("due", ""),
		}

		validateErr := validate.Create(s.cfg, in)
		if validateErr != nil {
			return mcp.NewToolResultError(validateErr.Error()), nil
		}

		created, createErr := s.st.Create(ctx, in)
		if createErr != nil {
			return nil, createErr
		}

		return ticketResult(created)
	}

	return tool, handler
}

func (s *Server) listTicketsTool() (mcp.Tool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool("list-tickets",
		mcp.WithDescription("List tickets, optionally filtering by status and priority."),
		mcp.WithString("status", mcp.Description("Only tickets with this exact status")),
		mcp.WithString("priority", mcp.Description("Only tickets with this exact priority")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tickets, err := s.st.List(ctx, ticket.Filters{
			Status:   req.GetString("status", ""),
			Priority: req.GetString("priority", ""),
		})
		if err != nil {
			return nil, err
		}

		return jsonResult(ticket.Views(tickets))
	}

	return tool, handler
}

func (s *Server) getTicketTool() (mcp.Tool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool("get-ticket",
		mcp.WithDescription("Fetch a single ticket by its id."),
		mcp.WithString("ticketId", mcp.Required(), mcp.Description("Ticket id")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("ticketId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		t, getErr := s.st.Get(ctx, id)
		if getErr != nil {
			return nil, getErr
		}

		if t == nil {
			return mcp.NewToolResultError("ticket not found: " + id), nil
		}

		return ticketResult(t)
	}

	return tool, handler
}

func (s *Server) moveTicketTool() (mcp.Tool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool("move-ticket",
		mcp.WithDescription(fmt.Sprintf("Update a ticket's status. Allowed statuses: %s.",
			strings.Join(s.cfg.StatusNames(), ", "))),
		mcp.WithString("ticketId", mcp.Required(), mcp.Description("Ticket id")),
		mcp.WithString("newStatus", mcp.Required(), mcp.Description("Target status")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("ticketId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		newStatus, err := req.RequireString("newStatus")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		validateErr := validate.Status(s.cfg, newStatus)
		if validateErr != nil {
			return mcp.NewToolResultError(validateErr.Error()), nil
		}

		updateErr := s.st.UpdateStatus(ctx, id, newStatus)
		if updateErr != nil {
			if errors.Is(updateErr, store.ErrNotFound) {
				return mcp.NewToolResultError("ticket not found: " + id), nil
			}

			return nil, updateErr
		}

		return mcp.NewToolResultText("ok"), nil
	}

	return tool, handler
}

func (s *Server) updateTicketTool() (mcp.Tool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool("update-ticket",
		mcp.WithDescription("Update one or more fields on a ticket: title, description, status, priority, labels, assignee, due."),
		mcp.WithString("ticketId", mcp.Required(), mcp.Description("Ticket id")),
		mcp.WithObject("fields", mcp.Required(), mcp.Description("Fields to change and their new values")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("ticketId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		fields, ok := req.GetArguments()["fields"].(map[string]any)
		if !ok {
			return mcp.NewToolResultError("fields must be an object"), nil
		}

		patch, patchErr := patchFromFields(fields)
		if patchErr != nil {
			return mcp.NewToolResultError(patchErr.Error()), nil
		}

		validateErr := validate.Update(s.cfg, patch)
		if validateErr != nil {
			return mcp.NewToolResultError(validateErr.Error()), nil
		}

		updated, updateErr := s.st.UpdateFields(ctx, id, patch)
		if updateErr != nil {
			if errors.Is(updateErr, store.ErrNotFound) {
				return mcp.NewToolResultError("ticket not found: " + id), nil
			}

			return nil, updateErr
		}

		return ticketResult(updated)
	}

	return tool, handler
}

func (s *Server) deleteTicketTool() (mcp.Tool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool("delete-ticket",
		mcp.WithDescription("Permanently delete a ticket by its id."),
		mcp.WithString("ticketId", mcp.Required(), mcp.Description("Ticket id")),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := req.RequireString("ticketId")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		deleteErr := s.st.Delete(ctx, id)
		if deleteErr != nil {
			if errors.Is(deleteErr, store.ErrNotFound) {
				return mcp.NewToolResultError("ticket not found: " + id), nil
			}

			return nil, deleteErr
		}

		return mcp.NewToolResultText("deleted"), nil
	}

	return tool, handler
}

func (s *Server) getConfigTool() (mcp.Tool, func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)) {
	tool := mcp.NewTool("get-config",
		mcp.WithDescription("Get the project configuration: folder, states, schema, and template."),
	)

	handler := func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return jsonResult(s.cfg)
	}

	return tool, handler
}

// patchFromFields converts a loose field map into a typed patch, rejecting
// unknown field names so agents get a clear signal instead of a silent
// no-op.
func patchFromFields(fields map[string]any) (ticket.Patch, error) {
	var patch ticket.Patch

	for name, value := range fields {
		switch name {
		case "title":
			patch.Title = stringPtr(value)
		case "description":
			patch.Description = stringPtr(value)
		case "status":
			patch.Status = stringPtr(value)
		case "priority":
			patch.Priority = stringPtr(value)
		case "assignee":
			patch.Assignee = stringPtr(value)
		case "due":
			patch.Due = stringPtr(value)
		case "labels":
			items, ok := value.([]any)
			if !ok {
				return ticket.Patch{}, fmt.Errorf("labels must be a list of strings")
			}

			labels := make([]string, 0, len(items))
			for _, item := range items {
				s, itemOK := item.(string)
				if !itemOK {
					return ticket.Patch{}, fmt.Errorf("labels must be a list of strings")
				}

				labels = append(labels, s)
			}

			patch.Labels = labels
		default:
			return ticket.Patch{}, fmt.Errorf("unknown field: %s", name)
		}
	}

	return patch, nil
}

func stringPtr(v any) *string {
	s := fmt.Sprintf("%v", v)

	return &s
}

func ticketResult(t *ticket.Ticket) (*mcp.CallToolResult, error) {
	return jsonResult(t.View())
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return mcp.NewToolResultText(string(encoded)), nil
}
