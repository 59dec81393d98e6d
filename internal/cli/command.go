package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"
)

// Exit codes.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

// errUsage marks errors caused by how the command was invoked.
// [Command.Run] prints the command help after such errors.
var errUsage = errors.New("usage")

func usageError(format string, a ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, a...))
}

// Command defines a CLI command with unified help generation.
type Command struct {
	// Flags defines command-specific flags.
	// The FlagSet name is not used - command identity comes from Usage.
	Flags *flag.FlagSet

	// Usage is the freeform usage string shown after "bytefuzz" in help.
	// Examples: "[flags] <prng_seed> <num_of_iterations>", "print-config"
	Usage string

	// Short is a one-line description for the global help listing.
	Short string

	// Long is the full description shown in command help.
	// If empty, Short is used instead.
	Long string

	// Exec runs the command after flags are parsed.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// HelpLine returns the short help line for the main usage display.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-44s %s", c.Usage, c.Short)
}

// PrintHelp prints the full help output for the command.
func (c *Command) PrintHelp(o *IO) {
	c.writeHelp(o.Println, o.Printf)
}

// printHelpErr prints the help to stderr, used after usage errors.
func (c *Command) printHelpErr(o *IO) {
	c.writeHelp(o.ErrPrintln, o.ErrPrintf)
}

func (c *Command) writeHelp(line func(...any), linef func(string, ...any)) {
	line("Usage: bytefuzz", c.Usage)
	line()

	desc := c.Long
	if desc == "" {
		desc = c.Short
	}

	line(desc)

	if c.Flags != nil && c.Flags.HasFlags() {
		line()
		line("Flags:")
		linef("%s", c.Flags.FlagUsages())
	}
}

// Run parses flags and executes the command. Returns exit code.
// Handles error printing internally for consistent output ordering.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{}) // discard pflag output

	err := c.Flags.Parse(separateNegativeNumbers(c.Flags, args))
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			c.PrintHelp(o)
			return exitOK
		}

		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.printHelpErr(o)

		return exitFailure
	}

	err = c.Exec(ctx, o, c.Flags.Args())

	o.Finish()

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, context.Canceled):
		o.ErrPrintln("interrupted:", err)
		return exitInterrupted
	case errors.Is(err, errUsage):
		o.ErrPrintln("error:", strings.TrimPrefix(err.Error(), errUsage.Error()+": "))
		o.ErrPrintln()
		c.printHelpErr(o)

		return exitFailure
	default:
		o.ErrPrintln("error:", err)
		return exitFailure
	}
}
