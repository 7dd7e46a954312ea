package cmdexec_test

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"

	"github.com/pagecrafthq/pagecraft/cmd/internal/cmdexec"
)

func TestOutput(t *testing.T) {
	out, err := cmdexec.Output(context.Background(), t.TempDir(), "sh", "-c", "echo '  hello  '")
	if err != nil {
		t.Fatalf("Output() error: %v", err)
	}
	if out != "hello" {
		t.Errorf("Output() = %q, want whitespace-trimmed %q", out, "hello")
	}
}

func TestOutput_RelativeDir(t *testing.T) {
	if _, err := cmdexec.Output(context.Background(), ".", "sh", "-c", "true"); err == nil {
		t.Error("Output() should reject a relative dir")
	}
}

func TestOutput_ExitError(t *testing.T) {
	_, err := cmdexec.Output(context.Background(), t.TempDir(),
		"sh", "-c", "echo boom >&2; exit 3")
	if err == nil {
		t.Fatal("Output() should fail for a non-zero exit")
	}

	var exitErr *cmdexec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error is %T, want *cmdexec.ExitError", err)
	}
	if exitErr.ExitCode != 3 {
		t.Errorf("ExitCode = %d, want 3", exitErr.ExitCode)
	}
	if exitErr.Stderr == "" {
		t.Error("Stderr should carry the command's stderr")
	}
}

func TestRun(t *testing.T) {
	if err := cmdexec.Run(context.Background(), t.TempDir(), "sh", "-c", "true"); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	err := cmdexec.Run(context.Background(), t.TempDir(), "sh", "-c", "exit 2")
	var exitErr *cmdexec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode != 2 {
		t.Errorf("Run() error = %v, want ExitError with code 2", err)
	}
}
