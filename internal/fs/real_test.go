package fs

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func Test_RealFS_Exists_Returns_False_When_Path_Does_Not_Exist(t *testing.T) {
	fs := NewReal()
	dir := t.TempDir()

	exists, err := fs.Exists(filepath.Join(dir, "does-not-exist.txt"))

	if got, want := err, error(nil); !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}

	if got, want := exists, false; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

func Test_RealFS_Exists_Returns_True_When_Path_Is_A_File(t *testing.T) {
	fs := NewReal()
	dir := t.TempDir()
	path := filepath.Join(dir, "seed")

	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	exists, err := fs.Exists(path)

	if got, want := err, error(nil); !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}

	if got, want := exists, true; got != want {
		t.Fatalf("exists=%v, want=%v", got, want)
	}
}

func Test_RealFS_Open_Returns_Not_Exist_When_File_Is_Missing(t *testing.T) {
	fs := NewReal()

	_, err := fs.Open(filepath.Join(t.TempDir(), "missing"))

	if got, want := err, os.ErrNotExist; !errors.Is(got, want) {
		t.Fatalf("err=%v, want=%v", got, want)
	}
}

func Test_RealFS_Open_Reads_Raw_Bytes(t *testing.T) {
	fs := NewReal()
	path := filepath.Join(t.TempDir(), "seed")
	content := []byte{0x00, 'A', 0xff, '\n', 'B'}

	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	f, err := fs.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()

	got, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if string(got) != string(content) {
		t.Fatalf("content=%q, want=%q", got, content)
	}
}

func Test_RealFS_WriteAtomic_Replaces_File_Contents(t *testing.T) {
	fs := NewReal()
	path := filepath.Join(t.TempDir(), "out.bin")

	if err := os.WriteFile(path, []byte("old contents"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := fs.WriteAtomic(path, strings.NewReader("new")); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if got, want := string(got), "new"; got != want {
		t.Fatalf("content=%q, want=%q", got, want)
	}
}

func Test_RealFS_WriteAtomic_Leaves_No_File_When_Reader_Fails(t *testing.T) {
	fs := NewReal()
	path := filepath.Join(t.TempDir(), "out.bin")

	pr, pw := io.Pipe()
	pw.CloseWithError(errors.New("producer failed"))

	if err := fs.WriteAtomic(path, pr); err == nil {
		t.Fatal("expected error")
	}

	exists, err := fs.Exists(path)
	if err != nil {
		t.Fatalf("exists: %v", err)
	}

	if exists {
		t.Fatal("partial output file left behind")
	}
}
