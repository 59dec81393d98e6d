package cli

import (
	"strings"

	flag "github.com/spf13/pflag"
)

// separateNegativeNumbers lets "-5" through as a positional.
//
// pflag reads any "-<digit>" argument as a shorthand flag. When args contain
// such a number before "--", flags (with their values) are moved in front of
// an inserted "--" and every positional follows it, each group keeping its
// order. Args without a negative number are returned unchanged, so pflag's own
// error messages stay as they are.
func separateNegativeNumbers(flags *flag.FlagSet, args []string) []string {
	var flagArgs, positionals []string

	found := false

scan:
	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			positionals = append(positionals, args[i+1:]...)
			break scan
		case isNegativeNumber(arg):
			found = true

			positionals = append(positionals, arg)
		case len(arg) > 1 && arg[0] == '-':
			flagArgs = append(flagArgs, arg)

			if takesValue(flags, arg) && i+1 < len(args) {
				i++
				flagArgs = append(flagArgs, args[i])
			}
		default:
			positionals = append(positionals, arg)
		}
	}

	if !found {
		return args
	}

	out := make([]string, 0, len(flagArgs)+1+len(positionals))
	out = append(out, flagArgs...)
	out = append(out, "--")

	return append(out, positionals...)
}

// isNegativeNumber matches "-" followed by a digit. No flag is named after a
// digit, so anything shaped like this is meant as a number; whether it is a
// valid one is decided later by the number parser.
func isNegativeNumber(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg[1] >= '0' && arg[1] <= '9'
}

// takesValue reports whether the flag in arg consumes the next argument.
func takesValue(flags *flag.FlagSet, arg string) bool {
	if name, ok := strings.CutPrefix(arg, "--"); ok {
		if strings.Contains(name, "=") {
			return false
		}

		f := flags.Lookup(name)

		return f != nil && f.NoOptDefVal == ""
	}

	// In a group like "-vo", only the last shorthand can take the next
	// argument; an earlier one takes the rest of the group as its value.
	group := arg[1:]
	for i := range len(group) {
		f := flags.ShorthandLookup(group[i : i+1])
		if f == nil {
			return false
		}

		if f.NoOptDefVal == "" {
			return i == len(group)-1
		}
	}

	return false
}
