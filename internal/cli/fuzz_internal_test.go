package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/calvinalkan/bytefuzz/internal/fs"
)

// recordingFS records every Open call.
type recordingFS struct {
	fs.FS

	opened []string
}

func (r *recordingFS) Open(path string) (fs.File, error) {
	r.opened = append(r.opened, path)
	return r.FS.Open(path)
}

func runFuzzCmd(t *testing.T, fsys fs.FS, tty bool, args ...string) (string, string, int) {
	t.Helper()

	var out, errOut bytes.Buffer

	cmd := FuzzCmd(map[string]string{"HOME": t.TempDir()}, fsys, tty)
	code := cmd.Run(context.Background(), NewIO(&out, &errOut), args)

	return out.String(), errOut.String(), code
}

func Test_FuzzCmd_Does_Not_Open_Seed_When_Arguments_Missing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seed"), []byte("AB"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	for _, args := range [][]string{{"--cwd", dir}, {"--cwd", dir, "42"}, {"--cwd", dir, "x", "1"}} {
		rec := &recordingFS{FS: fs.NewReal()}

		stdout, _, code := runFuzzCmd(t, rec, false, args...)

		if got, want := code, exitFailure; got != want {
			t.Errorf("args %v: exitCode=%d, want=%d", args, got, want)
		}

		if stdout != "" {
			t.Errorf("args %v: stdout=%q, want empty", args, stdout)
		}

		if len(rec.opened) != 0 {
			t.Errorf("args %v: opened %v, want no seed reads", args, rec.opened)
		}
	}
}

func Test_FuzzCmd_Opens_Candidates_In_Order(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "_seed_"), []byte("AB"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	rec := &recordingFS{FS: fs.NewReal()}

	_, stderr, code := runFuzzCmd(t, rec, false, "--cwd", dir, "1", "1")
	if code != exitOK {
		t.Fatalf("exitCode=%d, stderr=%s", code, stderr)
	}

	want := []string{filepath.Join(dir, "seed"), filepath.Join(dir, "_seed_")}
	if strings.Join(rec.opened, "|") != strings.Join(want, "|") {
		t.Errorf("opened=%v, want=%v", rec.opened, want)
	}
}

func Test_FuzzCmd_Warns_When_Stdout_Is_Terminal(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "seed"), []byte("AB"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	stdout, stderr, code := runFuzzCmd(t, fs.NewReal(), true, "--cwd", dir, "1", "3")

	if code != exitOK {
		t.Fatalf("exitCode=%d, stderr=%s", code, stderr)
	}

	if got, want := len(stdout), 6; got != want {
		t.Errorf("len(stdout)=%d, want=%d", got, want)
	}

	if !strings.Contains(stderr, "warning: stdout is a terminal") {
		t.Errorf("stderr=%q, want terminal warning", stderr)
	}

	_, stderr, _ = runFuzzCmd(t, fs.NewReal(), true, "--cwd", dir, "-o", "out.bin", "1", "3")
	if strings.Contains(stderr, "terminal") {
		t.Errorf("stderr=%q, want no terminal warning with --out", stderr)
	}
}

func Test_IsTerminal_Returns_False_For_Non_File_Writer(t *testing.T) {
	t.Parallel()

	if isTerminal(&bytes.Buffer{}) {
		t.Error("bytes.Buffer reported as terminal")
	}
}

func Test_IO_Prints_Warnings_Once_Before_Output(t *testing.T) {
	t.Parallel()

	var out, errOut bytes.Buffer

	o := NewIO(&out, &errOut)
	o.Warn("first", "do something")
	o.Warn("bare", "")

	_, _ = o.Write([]byte("raw"))
	_, _ = o.Write([]byte("more"))
	o.Warn("late", "fix it")
	o.Finish()
	o.Finish()

	if got, want := out.String(), "rawmore"; got != want {
		t.Errorf("stdout=%q, want=%q", got, want)
	}

	want := "warning: first: do something\nwarning: bare\nwarning: late: fix it\n"
	if got := errOut.String(); got != want {
		t.Errorf("stderr=%q, want=%q", got, want)
	}

	if got, want := len(o.Warnings()), 3; got != want {
		t.Errorf("warnings=%d, want=%d", got, want)
	}
}
