package cli

import (
	"encoding/json"
	"testing"
)

func TestViewPrintsFileContent(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "readable", "-d", "the details")

	stdout, _, code := c.Run("view", id)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	AssertContains(t, stdout, "---")
	AssertContains(t, stdout, "title: readable")
	AssertContains(t, stdout, "description: the details")
	AssertContains(t, stdout, "## Notes")
}

func TestViewAliasShow(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "shown")

	stdout := c.MustRun("show", id)
	AssertContains(t, stdout, "title: shown")
}

func TestViewJSON(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "structured")

	stdout := c.MustRun("view", id, "--json")

	var item map[string]any
	if err := json.Unmarshal([]byte(stdout), &item); err != nil {
		t.Fatalf("view --json did not produce valid JSON: %v\n%s", err, stdout)
	}

	if item["id"] != id {
		t.Errorf("id = %v, want %s", item["id"], id)
	}

	if item["status"] != "todo" {
		t.Errorf("status = %v, want todo", item["status"])
	}
}

func TestViewUnknownID(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("view", "ticket-ghost-1")
	AssertContains(t, stderr, "not found")
}

func TestViewMissingID(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("view")
	AssertContains(t, stderr, "ticket id is required")
}
