package pane

import (
	"context"
	"sync"
	"time"

	"github.com/yanaldoshi/codi/internal/interp"
	"github.com/yanaldoshi/codi/internal/transcript"
)

// State of a pane in the update machine. A source view with no pane at all is
// simply absent from the scheduler.
type State int

const (
	// StateIdle: pane is live and at rest.
	StateIdle State = iota
	// StateUpdating: one evaluation run is in flight.
	StateUpdating
	// StateKilled: pane has been torn down.
	StateKilled
)

// RunFunc produces the raw transcript for source text under the given
// descriptor. Satisfied by (*session.Runner).Run.
type RunFunc func(ctx context.Context, d *interp.Descriptor, source string) (string, error)

// Config holds scheduler tuning.
type Config struct {
	// Debounce is the quiescence interval: how long after the last edit
	// before a new evaluation run fires.
	Debounce time.Duration

	// Timeout is the bounded wait for one interpreter run.
	Timeout time.Duration

	// Autoclose kills a pane when its source view's containing context is
	// abandoned.
	Autoclose bool

	// Report receives per-run failures (stalled interpreter). Optional.
	Report func(error)
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Debounce: 250 * time.Millisecond,
		Timeout:  5 * time.Second,
	}
}

// Scheduler owns all evaluation panes and drives their update cycles. Panes
// for different source views are independent; within one pane at most one run
// is ever in flight.
type Scheduler struct {
	host Host
	reg  *interp.Registry
	run  RunFunc
	norm *transcript.Normalizer
	cfg  Config

	mu    sync.Mutex
	panes map[View]*entry
}

type entry struct {
	pane  *Pane
	state State
	timer *time.Timer
	// pending records an update signal that arrived while a run was in
	// flight; it coalesces into one trailing rerun.
	pending bool
}

// NewScheduler wires the scheduler to its collaborators: the host view
// system, the interpreter registry, the session runner, and the platform
// normalizer.
func NewScheduler(host Host, reg *interp.Registry, run RunFunc, norm *transcript.Normalizer, cfg Config) *Scheduler {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultConfig().Debounce
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Scheduler{
		host:  host,
		reg:   reg,
		run:   run,
		norm:  norm,
		cfg:   cfg,
		panes: make(map[View]*entry),
	}
}

// Spawn creates an evaluation pane for source bound to the interpreter
// registered under identity, and schedules an initial run. At most one pane
// exists per source view: spawning over a live one kills it first. All
// configuration errors (unknown identity, incomplete descriptor, missing
// binary) abort the spawn with no pane created.
func (s *Scheduler) Spawn(source View, identity string, raw bool) (*Pane, error) {
	d, err := s.reg.Resolve(identity)
	if err != nil {
		return nil, err
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := d.CheckBinary(); err != nil {
		return nil, err
	}

	s.Kill(source)

	result, err := s.host.CreateResultView(source)
	if err != nil {
		return nil, err
	}
	result.SetReadOnly(true)

	p := newPane(source, result, d, raw)
	s.host.BindScroll(source, result)

	s.mu.Lock()
	s.panes[source] = &entry{pane: p, state: StateIdle}
	s.mu.Unlock()

	go s.update(source)
	return p, nil
}

// Kill tears down the pane for source: stops any pending update, destroys the
// owned result view, and clears all transient state. Killing an absent pane
// is a no-op; teardown is idempotent.
func (s *Scheduler) Kill(source View) {
	s.mu.Lock()
	e := s.panes[source]
	if e == nil {
		s.mu.Unlock()
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.state = StateKilled
	delete(s.panes, source)
	p := e.pane
	s.mu.Unlock()

	s.host.UnbindScroll(p.Source, p.Result)
	s.host.DestroyResultView(p.Result)
}

// Toggle kills the pane for source if one exists, otherwise spawns one.
func (s *Scheduler) Toggle(source View, identity string, raw bool) (*Pane, error) {
	s.mu.Lock()
	_, exists := s.panes[source]
	s.mu.Unlock()

	if exists {
		s.Kill(source)
		return nil, nil
	}
	return s.Spawn(source, identity, raw)
}

// NotifyEdit signals that the source buffer changed. The evaluation run fires
// after the quiescence interval with no further edits; a newer edit before
// then cancels and rearms the wait.
func (s *Scheduler) NotifyEdit(source View) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.panes[source]
	if e == nil || e.state == StateKilled {
		return
	}
	if e.timer != nil {
		e.timer.Stop()
	}
	e.timer = time.AfterFunc(s.cfg.Debounce, func() {
		s.update(source)
	})
}

// SourceClosed signals that the source view is gone. Its pane, if any, is
// killed.
func (s *Scheduler) SourceClosed(source View) {
	s.Kill(source)
}

// ContextAbandoned signals that the surrounding context of the source view
// was abandoned. The pane is killed only when autoclose is on.
func (s *Scheduler) ContextAbandoned(source View) {
	if s.cfg.Autoclose {
		s.Kill(source)
	}
}

// StateOf reports the pane state for source. The second return is false when
// no pane exists.
func (s *Scheduler) StateOf(source View) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.panes[source]
	if !ok {
		return StateKilled, false
	}
	return e.state, true
}

// update runs one evaluation cycle for the pane bound to source. A signal
// arriving while a run is in flight is coalesced into a single trailing
// rerun; runs never overlap for the same pane.
func (s *Scheduler) update(source View) {
	s.mu.Lock()
	e := s.panes[source]
	if e == nil || e.state == StateKilled {
		s.mu.Unlock()
		return
	}
	if e.state == StateUpdating {
		e.pending = true
		s.mu.Unlock()
		return
	}
	e.state = StateUpdating
	p := e.pane
	s.mu.Unlock()

	text := p.Source.Text()

	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	raw, err := s.run(ctx, p.Interp, text)
	cancel()

	if err != nil {
		// Stalled interpreter: previous result content stays, the pane
		// remains spawned.
		if s.cfg.Report != nil {
			s.cfg.Report(err)
		}
	} else {
		src := transcript.Source{
			Lines:      len(transcript.Lines(text)),
			Prompt:     p.Interp.Prompt,
			Preprocess: p.Interp.Preprocess,
		}
		normalized := s.norm.Normalize(raw, src)

		var lines []string
		if p.RawMode {
			lines = transcript.Lines(normalized)
		} else {
			lines = transcript.Extract(normalized, p.Interp.Prompt)
		}

		s.mu.Lock()
		alive := e.state != StateKilled
		s.mu.Unlock()
		if alive {
			p.Apply(lines)
		}
	}

	s.mu.Lock()
	if e.state != StateKilled {
		e.state = StateIdle
	}
	rerun := e.pending && e.state != StateKilled
	e.pending = false
	s.mu.Unlock()

	if rerun {
		go s.update(source)
	}
}
