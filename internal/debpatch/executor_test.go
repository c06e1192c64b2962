package debpatch

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"
)

func TestExecutorRunReportsExitCode(t *testing.T) {
	e := &Executor{Context: context.Background()}
	err := e.Run(exec.Command("sh", "-c", "exit 3"))
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("err = %v, want *ProcessError", err)
	}
	if procErr.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", procErr.ExitCode)
	}
}

func TestExecutorOutputCapturesStdout(t *testing.T) {
	e := &Executor{Context: context.Background()}
	out, err := e.Output(exec.Command("echo", "hello"))
	if err != nil {
		t.Fatalf("Output: %v", err)
	}
	if strings.TrimSpace(out) != "hello" {
		t.Errorf("out = %q, want hello", out)
	}
}

func TestExecutorInteractiveRun(t *testing.T) {
	// Interactive commands skip process-group isolation so they can keep
	// the TTY; success and failure must still report the same way.
	e := &Executor{Context: context.Background(), Interactive: true}
	if err := e.Run(exec.Command("true")); err != nil {
		t.Fatalf("Run: %v", err)
	}
	err := e.Run(exec.Command("sh", "-c", "exit 7"))
	var procErr *ProcessError
	if !errors.As(err, &procErr) {
		t.Fatalf("err = %v, want *ProcessError", err)
	}
	if procErr.ExitCode != 7 {
		t.Errorf("exit code = %d, want 7", procErr.ExitCode)
	}
}
