package cli

import (
	"context"
	"strconv"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/bytefuzz/internal/fs"
)

// PrintConfigCmd returns the print-config command.
func PrintConfigCmd(env map[string]string, fsys fs.FS) *Command {
	flags := flag.NewFlagSet("print-config", flag.ContinueOnError)
	addGlobalFlags(flags)

	return &Command{
		Flags: flags,
		Usage: "[flags] print-config",
		Short: "Show resolved configuration",
		Long:  "Display the effective configuration and which files it was loaded from.",
		Exec: func(_ context.Context, io *IO, args []string) error {
			if len(args) > 1 {
				return usageError("unexpected argument %q", args[1])
			}

			return execPrintConfig(io, flags, env, fsys)
		},
	}
}

func execPrintConfig(io *IO, flags *flag.FlagSet, env map[string]string, fsys fs.FS) error {
	cfg, err := loadConfig(flags, env, fsys)
	if err != nil {
		return err
	}

	opts := cfg.MutateOptions()

	io.Println("effective_cwd=" + cfg.EffectiveCwd)
	io.Println("seed_files=" + strings.Join(cfg.SeedFiles, ","))
	io.Println("mutate_percent=" + strconv.Itoa(opts.MutatePercent))
	io.Println("grow_every=" + strconv.Itoa(opts.GrowEvery))
	io.Println("grow_by=" + strconv.Itoa(opts.GrowBy))
	io.Println("missing_seed=" + cfg.MissingSeed)

	io.Println("")
	io.Println("# sources")

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		io.Println("(defaults only)")
	} else {
		if cfg.Sources.Global != "" {
			io.Println("global_config=" + cfg.Sources.Global)
		}

		if cfg.Sources.Project != "" {
			io.Println("project_config=" + cfg.Sources.Project)
		}
	}

	return nil
}
