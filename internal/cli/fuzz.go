package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/bytefuzz/internal/config"
	"github.com/calvinalkan/bytefuzz/internal/fs"
	"github.com/calvinalkan/bytefuzz/internal/mutate"
	"github.com/calvinalkan/bytefuzz/internal/rng"
	"github.com/calvinalkan/bytefuzz/internal/seed"
)

// outputBufferSize batches small rounds into fewer writes.
const outputBufferSize = 64 * 1024

// FuzzCmd returns the default command: mutate the seed file and stream the
// rounds to stdout.
func FuzzCmd(env map[string]string, fsys fs.FS, stdoutIsTerminal bool) *Command {
	flags := flag.NewFlagSet("bytefuzz", flag.ContinueOnError)
	addGlobalFlags(flags)
	flags.StringP("out", "o", "", "Write the stream to `file` (atomically) instead of stdout")
	flags.Bool("stats", false, "Print a run summary to stderr")
	flags.Bool("lenient", false, "Parse numbers like C atoi: leading digits only, anything else is 0")

	return &Command{
		Flags: flags,
		Usage: "[flags] <prng_seed> <num_of_iterations>",
		Short: "Stream mutated copies of the seed file",
		Long: `Read the first seed file that opens and run num_of_iterations mutation
rounds over it. Each round replaces every byte with probability
mutate_percent (default 13%), and every grow_every-th round (default 500)
first inserts grow_by (default 10) random bytes before the last byte. Every
round's buffer is written to stdout with no separators and becomes the
input of the next round. The same prng_seed and seed file always produce
the same stream. A negative prng_seed may be given as is ("-5").

Seed files tried by default: seed, _seed_. A missing seed file is a warning
and the rounds run on an empty buffer unless --strict-seed is set.

Other commands:
  print-config    Show resolved configuration`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			return execFuzz(ctx, o, flags, env, fsys, stdoutIsTerminal, args)
		},
	}
}

type fuzzArgs struct {
	seed   int64
	rounds int
}

func parseFuzzArgs(args []string, lenient bool) (fuzzArgs, error) {
	switch {
	case len(args) < 2:
		return fuzzArgs{}, usageError("missing <prng_seed> and/or <num_of_iterations>")
	case len(args) > 2:
		return fuzzArgs{}, usageError("unexpected argument %q", args[2])
	}

	if lenient {
		return fuzzArgs{
			seed:   parseLenient(args[0]),
			rounds: clampInt(parseLenient(args[1])),
		}, nil
	}

	prngSeed, err := parseStrict(args[0])
	if err != nil {
		return fuzzArgs{}, usageError("prng_seed: %v", err)
	}

	rounds, err := parseStrict(args[1])
	if err != nil {
		return fuzzArgs{}, usageError("num_of_iterations: %v", err)
	}

	if rounds < 0 {
		return fuzzArgs{}, usageError("num_of_iterations: must be non-negative, got %d", rounds)
	}

	return fuzzArgs{seed: prngSeed, rounds: clampInt(rounds)}, nil
}

func execFuzz(
	ctx context.Context,
	o *IO,
	flags *flag.FlagSet,
	env map[string]string,
	fsys fs.FS,
	stdoutIsTerminal bool,
	args []string,
) error {
	lenient, _ := flags.GetBool("lenient")
	outPath, _ := flags.GetString("out")
	wantStats, _ := flags.GetBool("stats")

	if flags.Changed("out") && outPath == "" {
		return usageError("--out cannot be empty")
	}

	// Arguments are checked before anything touches the filesystem.
	parsed, err := parseFuzzArgs(args, lenient)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags, env, fsys)
	if err != nil {
		return err
	}

	loaded, err := seed.NewLoader(fsys, cfg.EffectiveCwd, cfg.SeedFiles).Load()
	if err != nil {
		if !errors.Is(err, seed.ErrSeedNotFound) || cfg.MissingSeed == config.MissingSeedFail {
			return err
		}

		o.Warn(err.Error(), "running on an empty buffer")
	}

	sink, finish := openSink(o, fsys, cfg.EffectiveCwd, outPath)

	if outPath == "" && stdoutIsTerminal && parsed.rounds > 0 && len(loaded.Data) > 0 {
		o.Warn("stdout is a terminal", "output is raw binary; redirect it or use --out")
	}

	engine, err := mutate.New(loaded.Data, rng.New(parsed.seed), sink, cfg.MutateOptions())
	if err != nil {
		return finish(err)
	}

	runErr := finish(engine.Run(ctx, parsed.rounds))

	if wantStats {
		source := loaded.Path
		if source == "" {
			source = "(none)"
		}

		o.ErrPrintf("seed_file=%s prng_seed=%d final_len=%d warnings=%d\n",
			source, parsed.seed, engine.Len(), len(o.Warnings()))
		o.ErrPrintln(engine.Stats().String())
	}

	return runErr
}

// openSink returns the writer the engine emits into and a finish function
// that flushes it. finish takes the run's error and returns the combined
// result; with --out, a failed run leaves any existing file untouched.
func openSink(o *IO, fsys fs.FS, workDir, outPath string) (io.Writer, func(error) error) {
	if outPath == "" {
		buf := bufio.NewWriterSize(o, outputBufferSize)

		return buf, func(runErr error) error {
			return errors.Join(runErr, buf.Flush())
		}
	}

	if !filepath.IsAbs(outPath) {
		outPath = filepath.Join(workDir, outPath)
	}

	pr, pw := io.Pipe()
	buf := bufio.NewWriterSize(pw, outputBufferSize)
	done := make(chan error, 1)

	go func() {
		err := fsys.WriteAtomic(outPath, pr)
		// Unblock the producer if the writer gave up early.
		_ = pr.CloseWithError(err)
		done <- err
	}()

	return buf, func(runErr error) error {
		if runErr == nil {
			runErr = buf.Flush()
		}

		if runErr != nil {
			_ = pw.CloseWithError(runErr)
			<-done

			return runErr
		}

		_ = pw.Close()

		if err := <-done; err != nil {
			return fmt.Errorf("write %s: %w", outPath, err)
		}

		return nil
	}
}
