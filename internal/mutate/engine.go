// Package mutate implements the blind byte-level mutation engine.
//
// An [Engine] owns a working buffer and a [rng.Stream]. Each round optionally
// grows the buffer, replaces each byte with a fixed probability, writes the
// result to a sink and keeps it as the input for the next round.
//
// Draw order per round is fixed:
//
//  1. growth bytes (only on growth rounds with a non-empty buffer)
//  2. for each byte: one percent roll, then one byte draw if the roll hit
//
// For a given seed and initial buffer, the emitted stream is therefore
// reproducible bit for bit.
package mutate

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/calvinalkan/bytefuzz/internal/rng"
)

// Defaults reproduce the classic 13% / every 500th round / 10 bytes schedule.
const (
	DefaultMutatePercent = 13
	DefaultGrowEvery     = 500
	DefaultGrowBy        = 10
)

// Options tunes the engine.
type Options struct {
	// MutatePercent is the per-byte replacement probability in percent, 0-100.
	// At 0 the percent roll is still drawn for every byte.
	MutatePercent int

	// GrowEvery is the growth period. Round i grows when i%GrowEvery == 0.
	GrowEvery int

	// GrowBy is the number of random bytes inserted on growth rounds.
	GrowBy int
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		MutatePercent: DefaultMutatePercent,
		GrowEvery:     DefaultGrowEvery,
		GrowBy:        DefaultGrowBy,
	}
}

// Validate reports whether o can drive an engine.
func (o Options) Validate() error {
	if o.MutatePercent < 0 || o.MutatePercent > 100 {
		return fmt.Errorf("%w: mutate percent %d not in 0-100", ErrInvalidOptions, o.MutatePercent)
	}

	if o.GrowEvery <= 0 {
		return fmt.Errorf("%w: grow every %d must be positive", ErrInvalidOptions, o.GrowEvery)
	}

	if o.GrowBy < 0 {
		return fmt.Errorf("%w: grow by %d must be non-negative", ErrInvalidOptions, o.GrowBy)
	}

	return nil
}

// Engine mutates a working buffer round by round.
//
// Not safe for concurrent use.
type Engine struct {
	buf    []byte
	next   []byte
	stream *rng.Stream
	sink   io.Writer
	opts   Options
	stats  Stats
}

// New creates an engine over a copy of initial.
// Panics if stream or sink is nil.
func New(initial []byte, stream *rng.Stream, sink io.Writer, opts Options) (*Engine, error) {
	if stream == nil {
		panic("stream is nil")
	}

	if sink == nil {
		panic("sink is nil")
	}

	err := opts.Validate()
	if err != nil {
		return nil, err
	}

	return &Engine{
		buf:    slices.Clone(initial),
		stream: stream,
		sink:   sink,
		opts:   opts,
	}, nil
}

// Options returns the options the engine was created with.
func (e *Engine) Options() Options {
	return e.opts
}

// Buffer returns a copy of the current working buffer.
func (e *Engine) Buffer() []byte {
	return slices.Clone(e.buf)
}

// Len returns the current working buffer length.
func (e *Engine) Len() int {
	return len(e.buf)
}

// Stats returns the counters accumulated so far.
func (e *Engine) Stats() Stats {
	return e.stats
}

// IsGrowthRound reports whether round i (1-based) grows the buffer.
func (e *Engine) IsGrowthRound(i int) bool {
	return i%e.opts.GrowEvery == 0
}

// Round performs one mutation round and emits the result to the sink.
//
// The returned slice is the new working buffer. It aliases engine memory and
// must not be retained across calls to Round; use [Engine.Buffer] for a copy.
//
// The mutation itself cannot fail; the error is the sink's.
func (e *Engine) Round(grow bool) ([]byte, error) {
	if grow {
		e.grow()
	}

	e.mutate()

	e.stats.Rounds++
	e.stats.Emitted += int64(len(e.buf))

	_, err := e.sink.Write(e.buf)
	if err != nil {
		return e.buf, fmt.Errorf("%w: %w", ErrSinkWrite, err)
	}

	return e.buf, nil
}

// Run drives n rounds, growing on every GrowEvery-th round.
//
// It returns early with the sink's error, or with ctx.Err() when ctx is
// cancelled between rounds. n <= 0 runs nothing.
func (e *Engine) Run(ctx context.Context, n int) error {
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stopped after %d of %d rounds: %w", i-1, n, err)
		}

		if _, err := e.Round(e.IsGrowthRound(i)); err != nil {
			return fmt.Errorf("round %d: %w", i, err)
		}
	}

	return nil
}

// grow inserts GrowBy fresh bytes right before the last byte.
// An empty buffer has no last byte: growth is skipped and nothing is drawn.
func (e *Engine) grow() {
	if len(e.buf) == 0 || e.opts.GrowBy == 0 {
		return
	}

	extra := make([]byte, e.opts.GrowBy)
	for i := range extra {
		extra[i] = e.stream.Byte()
	}

	e.buf = slices.Insert(e.buf, len(e.buf)-1, extra...)
	e.stats.Growths++
}

func (e *Engine) mutate() {
	e.next = slices.Grow(e.next[:0], len(e.buf))

	for _, b := range e.buf {
		if e.stream.Chance(e.opts.MutatePercent) {
			r := e.stream.Byte()
			if r != b {
				e.stats.Changed++
			}

			b = r
			e.stats.Replaced++
		}

		e.next = append(e.next, b)
	}

	e.stats.Considered += int64(len(e.buf))
	e.buf, e.next = e.next, e.buf
}
