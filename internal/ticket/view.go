package ticket

// View is the wire (JSON) shape of a ticket, shared by the CLI --json
// output, the HTTP API, and the MCP tools. Timestamps are rendered in the
// on-disk layout; unset optionals are omitted.
type View struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Assignee    string   `json:"assignee,omitempty"`
	Created     string   `json:"created"`
	Updated     string   `json:"updated"`
	Due         string   `json:"due,omitempty"`
	FilePath    string   `json:"filePath,omitempty"`
	Content     string   `json:"content,omitempty"`
}

// View renders the ticket in its wire shape.
func (t *Ticket) View() View {
	v := View{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		Labels:      t.Labels,
		Assignee:    t.Assignee,
		Created:     FormatTime(t.Created),
		Updated:     FormatTime(t.Updated),
		FilePath:    t.FilePath,
		Content:     t.Content,
	}

	if !t.Due.IsZero() {
		v.Due = FormatTime(t.Due)
	}

	return v
}

// Views renders a slice of tickets in wire shape, never nil so JSON output
// is always an array.
func Views(tickets []*Ticket) []View {
	out := make([]View, 0, len(tickets))
	for _, t := range tickets {
		out = append(out, t.View())
	}

	return out
}
