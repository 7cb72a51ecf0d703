// Package main provides pmt, a minimal project management tool that keeps
// tickets as markdown files with YAML frontmatter.
package main

import (
	"os"
	"strings"

	"github.com/cmwen/minpmt/internal/cli"
)

func main() {
	environ := os.Environ()
	env := make(map[string]string, len(environ))

	for _, e := range environ {
		if k, v, ok := strings.Cut(e, "="); ok {
			env[k] = v
		}
	}

	os.Exit(cli.Run(os.Stdin, os.Stdout, os.Stderr, os.Args, env))
}
