package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/cmwen/minpmt/internal/store"
	"github.com/cmwen/minpmt/internal/validate"
)

// IO bundles the command's input and output streams.
type IO struct {
	In     io.Reader
	out    io.Writer
	errOut io.Writer
}

// NewIO creates a new IO instance.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{In: in, out: out, errOut: errOut}
}

// Println writes to stdout.
func (o *IO) Println(a ...any) {
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// printError renders an error for the terminal. Validation errors list each
// violated constraint on its own line; everything else is one line.
func printError(o *IO, err error) {
	var verr *validate.Error
	if errors.As(err, &verr) {
		o.ErrPrintln("error: invalid input")

		for _, v := range verr.Violations {
			o.ErrPrintln("  -", v.Message)
		}

		return
	}

	if errors.Is(err, store.ErrNotFound) {
		o.ErrPrintln("error:", err)

		return
	}

	o.ErrPrintln("error:", err)
}
