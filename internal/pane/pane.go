package pane

import (
	"github.com/google/uuid"

	"github.com/yanaldoshi/codi/internal/interp"
)

// Pane is one live evaluation pane: a source view paired with an owned result
// view and a bound interpreter. The source view is only referenced, never
// owned; the result view is destroyed when the pane is killed.
type Pane struct {
	ID      string
	Source  View
	Result  View
	Interp  *interp.Descriptor
	RawMode bool

	// View state captured before each update and restored after, so the
	// update is visually transparent to the user.
	scrollTop  int
	cursorLine int
	cursorCol  int
}

func newPane(source, result View, d *interp.Descriptor, raw bool) *Pane {
	return &Pane{
		ID:      uuid.New().String(),
		Source:  source,
		Result:  result,
		Interp:  d,
		RawMode: raw,
	}
}

// Apply replaces the result view's content while leaving the source view's
// viewport and cursor exactly where they were.
func (p *Pane) Apply(lines []string) {
	p.capture()
	p.Result.SetLines(lines)
	p.restore()
}

func (p *Pane) capture() {
	p.scrollTop = p.Source.ScrollTop()
	p.cursorLine, p.cursorCol = p.Source.Cursor()
}

func (p *Pane) restore() {
	p.Source.SetScrollTop(p.scrollTop)
	p.Source.SetCursor(p.cursorLine, p.cursorCol)
}
