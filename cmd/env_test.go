// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> tagging service -> store -> SQLite.
//
// internal/validate, internal/query, and internal/store are also exercised
// by these integration tests, on top of their own package unit tests: if
// matching, validation, or persistence breaks, the CLI tests fail too.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the tagfs binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "tagfs-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "tagfs"
		if os.PathSeparator == '\\' {
			binaryName = "tagfs.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state: a temp directory with its own
// tag store, isolated from the developer's real ~/.tagfs.
type testEnv struct {
	t      *testing.T
	dir    string
	dbPath string
	binary string
}

// newTestEnv creates a temp directory and points TAGFS_DATABASE at a
// fresh store file inside it, so each test runs against an isolated
// database.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	return &testEnv{
		t:      t,
		dir:    dir,
		dbPath: filepath.Join(dir, "tagfs.db"),
		binary: binary,
	}
}

// run executes tagfs with the given args and returns stdout+stderr.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("tagfs %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes tagfs and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "TAGFS_DATABASE="+e.dbPath, "HOME="+e.dir)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// command builds an *exec.Cmd for tagfs with the test env's isolated
// database and home directory, for tests that need to tweak Env or Stdin
// beyond what run/runErr allow.
func (e *testEnv) command(args ...string) *exec.Cmd {
	e.t.Helper()
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "TAGFS_DATABASE="+e.dbPath, "HOME="+e.dir)
	return cmd
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}
