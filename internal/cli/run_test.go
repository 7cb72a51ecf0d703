package cli

import (
	"strings"
	"testing"
)

func TestNoArgsPrintsUsage(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stdout, _, code := c.Run()
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	AssertContains(t, stdout, "Usage: pmt")
	AssertContains(t, stdout, "Commands:")
}

func TestHelpFlag(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stdout, _, code := c.Run("--help")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	AssertContains(t, stdout, "Usage: pmt")
}

func TestUnknownCommand(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("frobnicate")
	AssertContains(t, stderr, "unknown command: frobnicate")
	AssertContains(t, stderr, "Usage: pmt")
}

func TestUnknownGlobalFlag(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stderr := c.MustFail("--bogus", "list")
	AssertContains(t, stderr, "unknown flag")
}

func TestGlobalFlagMissingArgument(t *testing.T) {
	t.Parallel()

	var outBuf, errBuf strings.Builder

	code := Run(nil, &outBuf, &errBuf, []string{"pmt", "--cwd"}, nil)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}

	AssertContains(t, errBuf.String(), "flag requires an argument")
}

func TestFolderOverride(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	id := c.MustRun("--folder", "work", "add", "elsewhere")

	// The default folder must stay untouched.
	stdout := c.MustRun("list")
	AssertNotContains(t, stdout, id)

	stdout = c.MustRun("--folder", "work", "list")
	AssertContains(t, stdout, id)
}

func TestCommandHelp(t *testing.T) {
	t.Parallel()

	c := NewCLI(t)

	stdout, _, code := c.Run("add", "--help")
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}

	AssertContains(t, stdout, "add <title>")
	AssertContains(t, stdout, "--priority")
}
