// Package fs provides the filesystem abstraction used by bytefuzz.
//
// The main types are:
//   - [FS]: interface for the filesystem operations bytefuzz performs
//   - [File]: interface for open files (satisfied by [os.File])
//   - [Real]: production implementation using [os] and atomic writes
//
// Seed loading goes through [FS.Open] so tests can observe that every opened
// file is closed again. Config files are read with [FS.ReadFile] and
// [FS.Exists]. Output files go through [FS.WriteAtomic] so a reader never
// sees a partially written stream.
package fs

import (
	"io"
	"os"
)

// File represents an open file descriptor.
//
// This interface is satisfied by [os.File] and can be used with all
// standard library functions that accept [io.Reader] or [io.Closer].
type File interface {
	io.ReadCloser

	// Stat returns the [os.FileInfo] for this file. See [os.File.Stat].
	Stat() (os.FileInfo, error)
}

// FS defines the filesystem operations bytefuzz needs.
type FS interface {
	// Open opens a file for reading. See [os.Open].
	Open(path string) (File, error)

	// ReadFile reads an entire file into memory. See [os.ReadFile].
	ReadFile(path string) ([]byte, error)

	// Exists reports whether a file or directory exists.
	// Returns (false, nil) if not found, (false, err) on other errors.
	Exists(path string) (bool, error)

	// WriteAtomic streams r into path via a temp file + rename.
	// Readers of path see either the old contents or all of r, never a prefix.
	WriteAtomic(path string, r io.Reader) error
}

// Compile-time interface checks.
var _ File = (*os.File)(nil)
