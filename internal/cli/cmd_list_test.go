package cli

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestListEmpty(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stdout := c.MustRun("list")
	if stdout != "no tickets" {
		t.Errorf("unexpected output: %q", stdout)
	}
}

func TestListShowsTickets(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	first := c.MustRun("add", "first task")
	second := c.MustRun("add", "second task", "-p", "high")

	stdout := c.MustRun("list")
	AssertContains(t, stdout, "ID")
	AssertContains(t, stdout, "STATUS")
	AssertContains(t, stdout, first)
	AssertContains(t, stdout, second)
	AssertContains(t, stdout, "first task")
	AssertContains(t, stdout, "high")
}

func TestListAliasLS(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "aliased")

	stdout := c.MustRun("ls")
	AssertContains(t, stdout, id)
}

func TestListStatusFilter(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	todo := c.MustRun("add", "still open")
	done := c.MustRun("add", "finished", "-s", "done")

	stdout := c.MustRun("list", "-s", "done")
	AssertContains(t, stdout, done)
	AssertNotContains(t, stdout, todo)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("list", "-s", "not-a-status")
	AssertContains(t, stderr, "status")
}

func TestListRejectsUnknownPriorityFilter(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("list", "-p", "urgent")
	AssertContains(t, stderr, "invalid priority")
}

func TestListJSON(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "machine readable", "-p", "low")

	stdout := c.MustRun("list", "--json")

	var items []map[string]any
	if err := json.Unmarshal([]byte(stdout), &items); err != nil {
		t.Fatalf("list --json did not produce valid JSON: %v\n%s", err, stdout)
	}

	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}

	if items[0]["id"] != id {
		t.Errorf("id = %v, want %s", items[0]["id"], id)
	}

	if items[0]["priority"] != "low" {
		t.Errorf("priority = %v, want low", items[0]["priority"])
	}
}

func TestListJSONEmptyIsArray(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stdout := c.MustRun("list", "--json")
	if !strings.HasPrefix(stdout, "[") {
		t.Errorf("empty listing must serialize as a JSON array, got: %s", stdout)
	}
}

func TestListDueDateShown(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	c.MustRun("add", "deadline work", "--due", "2025-12-24")

	stdout := c.MustRun("list")
	AssertContains(t, stdout, "(due 2025-12-24)")
}
