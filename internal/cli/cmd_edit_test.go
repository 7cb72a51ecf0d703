package cli

import "testing"

func TestEditSingleField(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "old title", "-d", "keep this")

	stdout := c.MustRun("edit", id, "-t", "new title")
	AssertContains(t, stdout, "Updated "+id)

	content := c.ReadTicket(id)
	AssertContains(t, content, "title: new title")
	AssertContains(t, content, "description: keep this")
}

func TestEditMultipleFields(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "multi edit")

	c.MustRun("edit", id, "-p", "high", "-a", "bob", "-l", "urgent,review")

	content := c.ReadTicket(id)
	AssertContains(t, content, "priority: high")
	AssertContains(t, content, "assignee: bob")
	AssertContains(t, content, "- urgent")
	AssertContains(t, content, "- review")
}

func TestEditClearLabels(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "labeled", "-l", "temp")

	c.MustRun("edit", id, "-l", "")

	content := c.ReadTicket(id)
	AssertNotContains(t, content, "- temp")
}

func TestEditNoFlags(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "untouchable")

	stderr := c.MustFail("edit", id)
	AssertContains(t, stderr, "nothing to edit")
}

func TestEditInvalidStatus(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "stable")

	stderr := c.MustFail("edit", id, "-s", "nope")
	AssertContains(t, stderr, "status")

	content := c.ReadTicket(id)
	AssertContains(t, content, "status: todo")
}

func TestEditUnknownID(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("edit", "ticket-ghost-1", "-t", "x")
	AssertContains(t, stderr, "not found")
}

func TestEditPreservesBody(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "with body")

	c.MustRun("edit", id, "-t", "renamed")

	content := c.ReadTicket(id)
	AssertContains(t, content, "## Notes")
}
