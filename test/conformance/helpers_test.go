//go:build conformance

package conformance

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

var fsleaseBinary string

func init() {
	// Find the fslease binary
	cwd, _ := os.Getwd()
	// Walk up to find bin/fslease
	for {
		binPath := filepath.Join(cwd, "bin", "fslease")
		if _, err := os.Stat(binPath); err == nil {
			fsleaseBinary = binPath
			return
		}
		parent := filepath.Dir(cwd)
		if parent == cwd {
			break
		}
		cwd = parent
	}
	// Fallback to PATH
	fsleaseBinary = "fslease"
}

// newTarget creates a temp directory with one target file and returns the
// target path.
func newTarget(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	target := filepath.Join(dir, "resource.db")
	if err := os.WriteFile(target, []byte("payload"), 0644); err != nil {
		t.Fatalf("create target: %v", err)
	}
	return target
}

// runFslease executes the fslease binary with args.
func runFslease(t *testing.T, args ...string) (stdout, stderr string, exitCode int) {
	t.Helper()
	cmd := exec.Command(fsleaseBinary, args...)
	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout = stdoutBuf.String()
	stderr = stderrBuf.String()

	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = 1
		}
	} else {
		exitCode = 0
	}
	return
}

// lockPathFor derives the sidecar path next to a target the way the binary
// does.
func lockPathFor(target string) string {
	ext := filepath.Ext(target)
	if ext == "" {
		return target + ".lock"
	}
	return target[:len(target)-len(ext)] + ".lock"
}

// fileExists checks if a file exists.
func fileExists(t *testing.T, path string) bool {
	t.Helper()
	_, err := os.Stat(path)
	if err == nil {
		return true
	}
	if os.IsNotExist(err) {
		return false
	}
	t.Fatalf("failed to stat file %s: %v", path, err)
	return false
}
