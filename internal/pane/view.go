// Package pane pairs a source view with a live result view and keeps the two
// synchronized across evaluation runs.
package pane

// View is the slice of the host view system the core needs: readable text,
// replaceable line content, a viewport scroll position, and a cursor.
// Implementations must tolerate calls after the underlying view has closed;
// teardown is idempotent and never surfaces view errors to the user.
type View interface {
	// Text returns the full buffer contents.
	Text() string

	// SetLines replaces the buffer contents.
	SetLines(lines []string)

	ScrollTop() int
	SetScrollTop(top int)

	Cursor() (line, col int)
	SetCursor(line, col int)

	// SetReadOnly marks the view non-modifiable by the user.
	SetReadOnly(ro bool)
}

// Host is the external view system: it creates and destroys result views and
// binds their scroll and cursor movement to a source view.
type Host interface {
	// CreateResultView creates a read-only side view paired with source.
	CreateResultView(source View) (View, error)

	// DestroyResultView tears down a result view. Must be idempotent.
	DestroyResultView(result View)

	// BindScroll keeps the two views' vertical scroll and cursor line
	// moving together until unbound.
	BindScroll(source, result View)
	UnbindScroll(source, result View)
}
