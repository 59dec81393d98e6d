package mutate

import "errors"

var (
	// ErrInvalidOptions is returned by [New] for out-of-range [Options].
	ErrInvalidOptions = errors.New("invalid mutation options")

	// ErrSinkWrite wraps a failed write of an emitted buffer.
	ErrSinkWrite = errors.New("write mutated buffer")
)
