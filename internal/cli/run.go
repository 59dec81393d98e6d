package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/bytefuzz/internal/config"
	"github.com/calvinalkan/bytefuzz/internal/fs"
)

const printConfigName = "print-config"

// Run is the main entry point. Returns exit code.
//
// sigCh may be nil. A signal received on it cancels the running command,
// which then stops between mutation rounds.
func Run(_ io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	if len(args) > 0 {
		args = args[1:]
	}

	ioCtx := NewIO(out, errOut)
	fsys := fs.NewReal()

	var cmd *Command

	if firstPositional(args) == printConfigName {
		cmd = PrintConfigCmd(env, fsys)
	} else {
		cmd = FuzzCmd(env, fsys, isTerminal(out))
	}

	return cmd.Run(ctx, ioCtx, args)
}

// firstPositional parses args with a throwaway flag set that knows every flag
// and returns the first non-flag argument, or "" if there is none or the args
// do not parse. The real parse (and its error reporting) happens in the
// selected command.
func firstPositional(args []string) string {
	scan := FuzzCmd(nil, nil, false).Flags
	scan.SetOutput(io.Discard)

	if err := scan.Parse(separateNegativeNumbers(scan, args)); err != nil {
		return ""
	}

	return scan.Arg(0)
}

// addGlobalFlags registers the flags shared by all commands.
func addGlobalFlags(flags *flag.FlagSet) {
	flags.StringP("cwd", "C", "", "Run as if started in `dir`")
	flags.StringP("config", "c", "", "Use specified config `file`")
	flags.StringArrayP("seed-file", "s", nil, "Seed file `name` to try, in order (repeatable; replaces configured list)")
	flags.Bool("strict-seed", false, "Fail instead of warning when no seed file can be opened")
}

// loadConfig resolves configuration from files and the global flags.
func loadConfig(flags *flag.FlagSet, env map[string]string, fsys fs.FS) (config.Config, error) {
	workDir, _ := flags.GetString("cwd")
	configPath, _ := flags.GetString("config")
	seedFiles, _ := flags.GetStringArray("seed-file")
	strictSeed, _ := flags.GetBool("strict-seed")

	if flags.Changed("cwd") && workDir == "" {
		return config.Config{}, usageError("--cwd cannot be empty")
	}

	if flags.Changed("config") && configPath == "" {
		return config.Config{}, usageError("--config cannot be empty")
	}

	for _, name := range seedFiles {
		if name == "" {
			return config.Config{}, usageError("--seed-file cannot be empty")
		}
	}

	overrides := config.Overrides{SeedFiles: seedFiles}
	if strictSeed {
		overrides.MissingSeed = config.MissingSeedFail
	}

	cfg, err := config.Load(config.LoadInput{
		WorkDirOverride: workDir,
		ConfigPath:      configPath,
		Overrides:       overrides,
		Env:             env,
		FS:              fsys,
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}
