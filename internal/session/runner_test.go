package session

import (
	"context"
	"errors"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/yanaldoshi/codi/internal/interp"
)

func requireBinary(t *testing.T, bin string) {
	t.Helper()
	if _, err := exec.LookPath(bin); err != nil {
		t.Skipf("%s not available on host", bin)
	}
}

func TestRun_MissingBinary(t *testing.T) {
	d := &interp.Descriptor{
		Name:   "ghost",
		Bin:    "definitely-not-a-real-binary-xyz",
		Prompt: regexp.MustCompile(`^> `),
	}

	_, err := NewRunner().Run(context.Background(), d, "1\n")
	if !errors.Is(err, interp.ErrBinaryNotFound) {
		t.Fatalf("expected ErrBinaryNotFound, got %v", err)
	}
}

func TestRun_BatchInBatchOut(t *testing.T) {
	requireBinary(t, "cat")

	d := &interp.Descriptor{
		Name:   "cat",
		Bin:    "cat",
		Prompt: regexp.MustCompile(`^$`),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := NewRunner().Run(ctx, d, "hello pane\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "hello pane") {
		t.Errorf("expected transcript to contain the input, got %q", out)
	}
}

func TestRun_EnvOverrides(t *testing.T) {
	requireBinary(t, "sh")

	d := &interp.Descriptor{
		Name:   "sh",
		Bin:    "sh",
		Prompt: regexp.MustCompile(`^\$ `),
		Env:    map[string]string{"CODI_PROBE": "pane-env"},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := NewRunner().Run(ctx, d, "echo $CODI_PROBE\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "pane-env") {
		t.Errorf("expected env override visible to the interpreter, got %q", out)
	}
}

func TestRun_StalledInterpreter(t *testing.T) {
	requireBinary(t, "sleep")

	// sleep never reads stdin, so end-of-input cannot terminate it.
	d := &interp.Descriptor{
		Name:   "stuck",
		Bin:    "sleep",
		Args:   []string{"30"},
		Prompt: regexp.MustCompile(`^$`),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := NewRunner().Run(ctx, d, "anything\n")
	if !errors.Is(err, ErrStalled) {
		t.Fatalf("expected ErrStalled, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("bounded wait not enforced, took %s", elapsed)
	}
}

func TestRun_AbnormalExitIsNotAnError(t *testing.T) {
	requireBinary(t, "sh")

	d := &interp.Descriptor{
		Name:   "sh",
		Bin:    "sh",
		Prompt: regexp.MustCompile(`^\$ `),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	out, err := NewRunner().Run(ctx, d, "echo before\nexit 3\n")
	if err != nil {
		t.Fatalf("expected abnormal exit to be a complete run, got %v", err)
	}
	if !strings.Contains(out, "before") {
		t.Errorf("expected drained output kept, got %q", out)
	}
}
