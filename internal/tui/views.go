package tui

import (
	"strings"
	"sync"

	"github.com/yanaldoshi/codi/internal/pane"
)

// sourceView adapts the textarea buffer to pane.View. The scheduler reads it
// from worker goroutines, so it works off a snapshot the update loop refreshes
// after every keystroke rather than touching bubbletea state directly.
type sourceView struct {
	mu        sync.Mutex
	text      string
	scrollTop int
	curLine   int
	curCol    int
}

func (v *sourceView) set(text string, scrollTop, line, col int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text = text
	v.scrollTop = scrollTop
	v.curLine = line
	v.curCol = col
}

func (v *sourceView) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.text
}

// SetLines is part of pane.View; evaluation never rewrites the source buffer.
func (v *sourceView) SetLines(lines []string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.text = strings.Join(lines, "\n")
}

func (v *sourceView) ScrollTop() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollTop
}

func (v *sourceView) SetScrollTop(top int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrollTop = top
}

func (v *sourceView) Cursor() (int, int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.curLine, v.curCol
}

func (v *sourceView) SetCursor(line, col int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.curLine = line
	v.curCol = col
}

func (v *sourceView) SetReadOnly(bool) {}

// resultView delivers replacement content to the update loop instead of
// mutating the viewport from the scheduler's goroutine. The channel holds the
// latest content only; stale frames are dropped.
type resultView struct {
	mu        sync.Mutex
	lines     []string
	scrollTop int
	ch        chan []string
}

func (v *resultView) Text() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return strings.Join(v.lines, "\n")
}

func (v *resultView) SetLines(lines []string) {
	v.mu.Lock()
	v.lines = append([]string(nil), lines...)
	v.mu.Unlock()

	select {
	case <-v.ch:
	default:
	}
	v.ch <- append([]string(nil), lines...)
}

func (v *resultView) ScrollTop() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.scrollTop
}

func (v *resultView) SetScrollTop(top int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.scrollTop = top
}

func (v *resultView) Cursor() (int, int) { return 0, 0 }
func (v *resultView) SetCursor(int, int) {}
func (v *resultView) SetReadOnly(bool)   {}

// host implements pane.Host for the TUI. Scroll binding is realized in the
// render loop, which keeps the result viewport offset locked to the source
// cursor line, so Bind/Unbind carry no state here.
type host struct {
	updates chan []string
}

func (h *host) CreateResultView(pane.View) (pane.View, error) {
	return &resultView{ch: h.updates}, nil
}

func (h *host) DestroyResultView(pane.View) {}
func (h *host) BindScroll(_, _ pane.View)   {}
func (h *host) UnbindScroll(_, _ pane.View) {}
