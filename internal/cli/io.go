package cli

import (
	"fmt"
	"io"
)

// IO separates the raw fuzz stream from human-readable diagnostics.
//
// Raw bytes go to stdout through [IO.Write] untouched. Everything meant for a
// person (warnings, errors, stats) goes to stderr, so piping stdout into a
// target never mixes diagnostics into the input.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	flushed  int
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn records a non-fatal issue.
//
// Parameters:
//   - issue: what went wrong
//   - action: what the user can do about it
//
// Pending warnings are printed to stderr before the first stdout write and
// again by [IO.Finish] for any that arrived later. Warnings do not change the
// exit code.
func (o *IO) Warn(issue string, action string) {
	if action == "" {
		o.warnings = append(o.warnings, issue)
		return
	}

	o.warnings = append(o.warnings, fmt.Sprintf("%s: %s", issue, action))
}

// Warnings returns all warnings recorded so far.
func (o *IO) Warnings() []string {
	return o.warnings
}

// Write writes raw bytes to stdout. Implements [io.Writer].
func (o *IO) Write(p []byte) (int, error) {
	o.flushWarnings()
	return o.out.Write(p)
}

// Println writes a line to stdout.
func (o *IO) Println(a ...any) {
	o.flushWarnings()
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarnings()
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes a line to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// ErrPrintf writes formatted output to stderr.
func (o *IO) ErrPrintf(format string, a ...any) {
	_, _ = fmt.Fprintf(o.errOut, format, a...)
}

// Finish prints any warnings not yet shown.
func (o *IO) Finish() {
	o.flushWarnings()
}

func (o *IO) flushWarnings() {
	for _, w := range o.warnings[o.flushed:] {
		_, _ = fmt.Fprintln(o.errOut, "warning:", w)
	}

	o.flushed = len(o.warnings)
}
