// Package seed locates and reads the initial corpus buffer.
package seed

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/calvinalkan/bytefuzz/internal/fs"
)

// DefaultCandidates are the file names tried when none are configured.
var DefaultCandidates = []string{"seed", "_seed_"}

// ErrSeedNotFound is returned when none of the candidates could be opened.
var ErrSeedNotFound = errors.New("unable to open the seed file")

// Seed is a loaded seed file.
type Seed struct {
	// Path is the resolved path that was read. Empty if nothing was loaded.
	Path string

	// Data is the raw file contents.
	Data []byte
}

// Loader tries candidate names in order and reads the first one that opens.
type Loader struct {
	FS fs.FS

	// Dir resolves relative candidate names. Empty means the process cwd.
	Dir string

	// Candidates in priority order. Nil means [DefaultCandidates].
	Candidates []string
}

// NewLoader returns a loader over fsys rooted at dir.
// Panics if fsys is nil.
func NewLoader(fsys fs.FS, dir string, candidates []string) *Loader {
	if fsys == nil {
		panic("fs is nil")
	}

	return &Loader{FS: fsys, Dir: dir, Candidates: candidates}
}

// Load reads the first candidate that opens.
//
// A directory counts as a name that did not open. If none open, it returns an
// empty [Seed] and an error wrapping [ErrSeedNotFound]. A file that opens but
// cannot be read is not skipped: its read error is returned.
func (l *Loader) Load() (Seed, error) {
	candidates := l.Candidates
	if candidates == nil {
		candidates = DefaultCandidates
	}

	tried := make([]string, 0, len(candidates))

	for _, name := range candidates {
		path := l.resolve(name)

		data, opened, err := l.read(path)
		if !opened {
			tried = append(tried, path)

			continue
		}

		if err != nil {
			return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
		}

		return Seed{Path: path, Data: data}, nil
	}

	return Seed{}, fmt.Errorf("%w (tried %s)", ErrSeedNotFound, strings.Join(tried, ", "))
}

// read opens path and reads it fully. The file is closed before returning.
func (l *Loader) read(path string) (data []byte, opened bool, err error) {
	f, err := l.FS.Open(path)
	if err != nil {
		return nil, false, nil
	}

	defer func() {
		closeErr := f.Close()
		if err == nil && closeErr != nil {
			err = closeErr
		}
	}()

	info, statErr := f.Stat()
	if statErr == nil && info.IsDir() {
		return nil, false, nil
	}

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, true, err
	}

	return data, true, nil
}

func (l *Loader) resolve(name string) string {
	if l.Dir == "" || filepath.IsAbs(name) {
		return name
	}

	return filepath.Join(l.Dir, name)
}
