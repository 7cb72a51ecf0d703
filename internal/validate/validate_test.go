package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/ticket"
)

func violations(t *testing.T, err error) []Violation {
	t.Helper()

	var verr *Error
	require.True(t, errors.As(err, &verr), "expected *validate.Error, got %v", err)

	return verr.Violations
}

func fields(vs []Violation) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Field
	}

	return out
}

func TestCreateValid(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	err := Create(cfg, ticket.CreateInput{
		Title:    "Fix login",
		Status:   "in-progress",
		Priority: "high",
		Due:      "2025-12-01",
	})
	assert.NoError(t, err)
}

func TestCreateViolations(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	tests := []struct {
		name       string
		input      ticket.CreateInput
		wantFields []string
	}{
		{
			name:       "missing title",
			input:      ticket.CreateInput{},
			wantFields: []string{"title"},
		},
		{
			name:       "whitespace title",
			input:      ticket.CreateInput{Title: "   "},
			wantFields: []string{"title"},
		},
		{
			name:       "unknown status",
			input:      ticket.CreateInput{Title: "x", Status: "shipped"},
			wantFields: []string{"status"},
		},
		{
			name:       "bad priority",
			input:      ticket.CreateInput{Title: "x", Priority: "urgent"},
			wantFields: []string{"priority"},
		},
		{
			name:       "bad due date",
			input:      ticket.CreateInput{Title: "x", Due: "next tuesday"},
			wantFields: []string{"due"},
		},
		{
			name:       "everything wrong at once",
			input:      ticket.CreateInput{Status: "nope", Priority: "nope", Due: "nope"},
			wantFields: []string{"title", "status", "priority", "due"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := Create(cfg, tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.wantFields, fields(violations(t, err)))
		})
	}
}

func TestUpdateViolations(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	empty := ""
	bad := "bogus"
	good := "done"

	assert.NoError(t, Update(cfg, ticket.Patch{Status: &good}))

	err := Update(cfg, ticket.Patch{Title: &empty})
	assert.Equal(t, []string{"title"}, fields(violations(t, err)))

	err = Update(cfg, ticket.Patch{Status: &bad})
	assert.Equal(t, []string{"status"}, fields(violations(t, err)))

	err = Update(cfg, ticket.Patch{Priority: &bad})
	assert.Equal(t, []string{"priority"}, fields(violations(t, err)))
}

func TestStatus(t *testing.T) {
	t.Parallel()

	cfg := config.Default()

	assert.NoError(t, Status(cfg, "todo"))
	assert.Error(t, Status(cfg, ""))
	assert.Error(t, Status(cfg, "shipped"))
}

func TestSchemaDrivenEnum(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Schema["assignee"] = config.Field{Type: config.TypeString, Enum: []string{"alice", "bob"}}

	assert.NoError(t, Create(cfg, ticket.CreateInput{Title: "x", Assignee: "alice"}))

	err := Create(cfg, ticket.CreateInput{Title: "x", Assignee: "mallory"})
	require.Error(t, err)
	assert.Equal(t, []string{"assignee"}, fields(violations(t, err)))

	bad := "mallory"
	err = Update(cfg, ticket.Patch{Assignee: &bad})
	require.Error(t, err)
	assert.Equal(t, []string{"assignee"}, fields(violations(t, err)))
}

func TestSchemaDrivenRequired(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Schema["description"] = config.Field{Type: config.TypeString, Required: true}

	err := Create(cfg, ticket.CreateInput{Title: "x"})
	require.Error(t, err)
	assert.Equal(t, []string{"description"}, fields(violations(t, err)))

	assert.NoError(t, Create(cfg, ticket.CreateInput{Title: "x", Description: "present"}))

	// Required fields may be absent from a patch but not blanked out.
	empty := ""
	err = Update(cfg, ticket.Patch{Description: &empty})
	require.Error(t, err)
	assert.Equal(t, []string{"description"}, fields(violations(t, err)))

	title := "renamed"
	assert.NoError(t, Update(cfg, ticket.Patch{Title: &title}))
}

func TestStatusCheckSurvivesSchemaOmission(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	delete(cfg.Schema, "status")

	err := Create(cfg, ticket.CreateInput{Title: "x", Status: "shipped"})
	require.Error(t, err)
	assert.Equal(t, []string{"status"}, fields(violations(t, err)))
}

func TestCustomVocabulary(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.States = map[string]config.State{
		"backlog": {Order: 0},
		"doing":   {Order: 1},
	}

	assert.NoError(t, Status(cfg, "backlog"))
	assert.Error(t, Status(cfg, "todo"))
}
