// Package session runs one interpreter process per evaluation and captures
// its full output.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/x/xpty"

	"github.com/yanaldoshi/codi/internal/interp"
)

// ErrStalled reports an interpreter that did not finish within the bounded
// wait. The caller keeps its previous result content.
var ErrStalled = errors.New("interpreter stalled")

// endOfTransmission closes the interpreter's input side through the pty.
const endOfTransmission = 0x04

// drainGrace bounds how long Run waits for the pty read side to settle after
// the process has exited.
const drainGrace = 100 * time.Millisecond

// Runner spawns interpreters under a pseudo-terminal and collects their
// output. The pty is required: most interpreters disable their prompt and
// switch to block buffering when stdin is a plain pipe.
type Runner struct {
	Cols, Rows int
}

// NewRunner returns a Runner with a standard terminal geometry.
func NewRunner() *Runner {
	return &Runner{Cols: 80, Rows: 24}
}

// Run writes the whole source to a fresh interpreter process and returns the
// raw transcript once the process exits. Batch in, batch out: there is no
// interleaving of partial reads and writes.
//
// The ctx deadline is the bounded wait. A process still alive past it is
// killed and reported as ErrStalled. An abnormal exit is not an error:
// interpreters legitimately exit nonzero on end of input, so whatever output
// was drained is returned as a complete run.
func (r *Runner) Run(ctx context.Context, d *interp.Descriptor, source string) (string, error) {
	if err := d.CheckBinary(); err != nil {
		return "", err
	}

	pty, err := xpty.NewPty(r.Cols, r.Rows)
	if err != nil {
		return "", fmt.Errorf("open pty: %w", err)
	}
	defer pty.Close()

	cmd := exec.Command(d.Bin, d.Args...)
	cmd.Env = append(os.Environ(), d.EnvList()...)
	if err := pty.Start(cmd); err != nil {
		return "", fmt.Errorf("start %s: %w", d.Bin, err)
	}

	// Feed the full source, then end-of-transmission so the interpreter
	// sees its input close and terminates naturally.
	go func() {
		io.WriteString(pty, source)
		if !strings.HasSuffix(source, "\n") {
			io.WriteString(pty, "\n")
		}
		pty.Write([]byte{endOfTransmission})
	}()

	var buf lockedBuffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		// The pty read side errors once the child exits; that is the
		// normal end of the transcript, not a failure.
		io.Copy(&buf, pty)
	}()

	if err := xpty.WaitProcess(ctx, cmd); err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return "", fmt.Errorf("%w: %s exceeded the bounded wait", ErrStalled, d.Bin)
		}
		// Nonzero exit on end of input: keep the transcript.
	}

	select {
	case <-drained:
	case <-time.After(drainGrace):
	}
	return buf.String(), nil
}

// lockedBuffer guards the transcript against the reader goroutine still
// draining when the grace period expires.
type lockedBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
