package executor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExecute(t *testing.T) {
	exec := New()
	out, err := exec.Execute(context.Background(), "sh", "-c", "echo hello")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("Execute() = %q, want %q", out, "hello")
	}
}

func TestExecuteIncludesStderr(t *testing.T) {
	exec := New()
	_, err := exec.Execute(context.Background(), "sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Execute() should fail for non-zero exit")
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("error %q should contain stderr", err)
	}
}

func TestExecuteInDir(t *testing.T) {
	dir := t.TempDir()
	exec := New()
	if _, err := exec.ExecuteInDir(context.Background(), dir, "sh", "-c", "touch marker"); err != nil {
		t.Fatalf("ExecuteInDir() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "marker")); err != nil {
		t.Errorf("marker not created in working directory: %v", err)
	}
}

func TestExecuteCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().Execute(ctx, "sh", "-c", "sleep 5")
	if err == nil {
		t.Fatal("Execute() should fail on canceled context")
	}
}

func TestLookPath(t *testing.T) {
	exec := New()
	if err := exec.LookPath("sh"); err != nil {
		t.Errorf("LookPath(sh) error = %v", err)
	}
	if err := exec.LookPath("definitely-not-a-real-binary-xyz"); err == nil {
		t.Error("LookPath() should fail for a missing binary")
	}
}

func TestTail(t *testing.T) {
	if got := tail("abc", 5); got != "abc" {
		t.Errorf("tail() = %q, want %q", got, "abc")
	}
	if got := tail("abcdef", 3); got != "...def" {
		t.Errorf("tail() = %q, want %q", got, "...def")
	}
}
