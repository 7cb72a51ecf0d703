// Package cli implements the pmt command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cmwen/minpmt/internal/config"
	"github.com/cmwen/minpmt/internal/store"
)

const helpFlag = "--help"

var (
	errFlagRequiresArg = errors.New("flag requires an argument")
	errUnknownFlag     = errors.New("unknown flag")
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out, errOut io.Writer, args []string, env map[string]string) int {
	o := NewIO(in, out, errOut)

	if len(args) < 2 {
		printUsage(o)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	workDir := flags.workDir
	if workDir == "" {
		workDir, err = os.Getwd()
		if err != nil {
			o.ErrPrintln("error: cannot get working directory:", err)

			return 1
		}
	}

	cfg, err := config.Load(workDir)
	if err != nil {
		o.ErrPrintln("error:", err)

		return 1
	}

	if flags.folder != "" {
		cfg.Folder = flags.folder
	}

	logger := newLogger(errOut, flags.verbose)
	st := store.New(workDir, cfg, logger)

	if len(flags.remaining) == 0 {
		printUsage(o)

		return 0
	}

	name := flags.remaining[0]
	if name == "-h" || name == helpFlag {
		printUsage(o)

		return 0
	}

	_ = env // reserved: config has no environment overrides today

	commands := commandList(workDir, cfg, st)

	for _, cmd := range commands {
		if cmd.Matches(name) {
			return cmd.Run(context.Background(), o, flags.remaining[1:])
		}
	}

	o.ErrPrintln("error: unknown command:", name)
	printUsageTo(o, true)

	return 1
}

// commandList builds the command registry. Order here is help order.
func commandList(workDir string, cfg config.Config, st *store.Store) []*Command {
	return []*Command{
		InitCmd(workDir),
		AddCmd(cfg, st),
		ListCmd(cfg, st),
		MoveCmd(cfg, st),
		ViewCmd(st),
		EditCmd(cfg, st),
		DeleteCmd(st),
		ConfigCmd(cfg),
		WebCmd(cfg, st),
		MCPCmd(cfg, st),
	}
}

type globalFlags struct {
	workDir   string
	folder    string
	verbose   bool
	remaining []string
}

// parseGlobalFlags consumes leading global flags; the first non-flag token
// and everything after it belong to the subcommand.
func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		arg := args[idx]

		switch {
		case arg == "-C" || arg == "--cwd":
			if idx+1 >= len(args) {
				return globalFlags{}, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
			}

			flags.workDir = args[idx+1]
			idx += 2
		case strings.HasPrefix(arg, "--cwd="):
			flags.workDir = strings.TrimPrefix(arg, "--cwd=")
			idx++
		case arg == "--folder":
			if idx+1 >= len(args) {
				return globalFlags{}, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
			}

			flags.folder = args[idx+1]
			idx += 2
		case strings.HasPrefix(arg, "--folder="):
			flags.folder = strings.TrimPrefix(arg, "--folder=")
			idx++
		case arg == "--verbose" || arg == "-v":
			flags.verbose = true
			idx++
		case arg == "-h" || arg == helpFlag:
			flags.remaining = []string{helpFlag}

			return flags, nil
		case strings.HasPrefix(arg, "-") && arg != "-":
			return globalFlags{}, fmt.Errorf("%w: %s", errUnknownFlag, arg)
		default:
			flags.remaining = args[idx:]

			return flags, nil
		}
	}

	return flags, nil
}

// newLogger builds the CLI logger. Diagnostic detail (skipped files during
// scans and the like) only appears with --verbose.
func newLogger(errOut io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	return slog.New(slog.NewTextHandler(errOut, &slog.HandlerOptions{Level: level}))
}

func printUsage(o *IO) {
	printUsageTo(o, false)
}

func printUsageTo(o *IO, toErr bool) {
	write := o.Println
	if toErr {
		write = o.ErrPrintln
	}

	write("pmt - minimal project management: tickets as markdown files")
	write()
	write("Usage: pmt [global flags] <command> [args]")
	write()
	write("Global flags:")
	write("  -C, --cwd <dir>    Run as if started in <dir>")
	write("      --folder <dir> Override the configured ticket folder")
	write("  -v, --verbose      Show diagnostic output (skipped files etc.)")
	write()
	write("Commands:")
	write("  init [-f folder]             Initialize project config")
	write("  add <title> [flags]          Create a ticket, prints its id")
	write("  list [flags]                 List tickets (alias: ls)")
	write("  move <id> <status>           Change a ticket's status")
	write("  view <id>                    Print a ticket")
	write("  edit <id> [flags]            Update ticket fields")
	write("  delete <id> [-y]             Delete a ticket (alias: rm)")
	write("  config                       Print effective configuration")
	write("  web [-p port]                Start the web UI server")
	write("  mcp                          Serve the agent protocol on stdio")
	write()
	write("Run 'pmt <command> --help' for command details.")
}
