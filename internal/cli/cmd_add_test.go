package cli

import (
	"strings"
	"testing"
)

func TestAddCreatesTicket(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "Fix login bug")
	if !strings.HasPrefix(id, "ticket-fix-login-bug-") {
		t.Errorf("unexpected id: %s", id)
	}

	content := c.ReadTicket(id)
	AssertContains(t, content, "title: Fix login bug")
	AssertContains(t, content, "status: todo")
	AssertContains(t, content, "## Notes")
}

func TestAddWithAllFlags(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "Full ticket",
		"-d", "a description",
		"-p", "high",
		"-l", "bug, backend",
		"-s", "in-progress",
		"-a", "alice",
		"--due", "2025-12-01")

	content := c.ReadTicket(id)
	AssertContains(t, content, "description: a description")
	AssertContains(t, content, "priority: high")
	AssertContains(t, content, "- bug")
	AssertContains(t, content, "- backend")
	AssertContains(t, content, "status: in-progress")
	AssertContains(t, content, "assignee: alice")
	AssertContains(t, content, "due:")
}

func TestAddMissingTitle(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("add")
	AssertContains(t, stderr, "invalid input")
	AssertContains(t, stderr, "title")
}

func TestAddInvalidPriority(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("add", "x", "-p", "urgent")
	AssertContains(t, stderr, "invalid input")
	AssertContains(t, stderr, "priority")
}

func TestAddInvalidStatus(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("add", "x", "-s", "not-a-status")
	AssertContains(t, stderr, "invalid input")
	AssertContains(t, stderr, "status")
}

func TestAddInvalidDueDate(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("add", "x", "--due", "whenever")
	AssertContains(t, stderr, "due")
}

func TestAddPunctuationOnlyTitle(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "???")
	if !strings.HasPrefix(id, "ticket-item-") {
		t.Errorf("unexpected id: %s", id)
	}
}

func TestSplitLabels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "bug", []string{"bug"}},
		{"multiple", "bug,backend", []string{"bug", "backend"}},
		{"spaces trimmed", " bug , backend ", []string{"bug", "backend"}},
		{"empty entries dropped", "bug,,backend,", []string{"bug", "backend"}},
		{"only commas", ",,,", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := splitLabels(tt.raw)
			if len(got) != len(tt.want) {
				t.Fatalf("splitLabels(%q) = %v, want %v", tt.raw, got, tt.want)
			}

			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitLabels(%q)[%d] = %q, want %q", tt.raw, i, got[i], tt.want[i])
				}
			}
		})
	}
}
