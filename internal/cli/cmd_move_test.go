package cli

import "testing"

func TestMoveChangesStatus(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "movable")

	stdout := c.MustRun("move", id, "in-progress")
	AssertContains(t, stdout, "Updated "+id+" -> in-progress")

	content := c.ReadTicket(id)
	AssertContains(t, content, "status: in-progress")
	AssertNotContains(t, content, "status: todo")
}

func TestMovePreservesOtherFields(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "precious", "-d", "important description", "-p", "critical")

	c.MustRun("move", id, "done")

	content := c.ReadTicket(id)
	AssertContains(t, content, "description: important description")
	AssertContains(t, content, "priority: critical")
	AssertContains(t, content, "## Notes")
}

func TestMoveRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("add", "stuck")

	stderr := c.MustFail("move", id, "blocked")
	AssertContains(t, stderr, "status")

	content := c.ReadTicket(id)
	AssertContains(t, content, "status: todo")
}

func TestMoveUnknownID(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("move", "ticket-ghost-1", "done")
	AssertContains(t, stderr, "not found")
}

func TestMoveMissingArgs(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("move")
	AssertContains(t, stderr, "ticket id is required")

	stderr = c.MustFail("move", "some-id")
	AssertContains(t, stderr, "new status is required")
}
