package field

import "github.com/agbru/moneymask/internal/numfmt"

// TextField is the part of a UI text widget a Binding needs.
type TextField interface {
	Text() string
	// SetText replaces the text. Implementations may notify watchers
	// synchronously, before SetText returns.
	SetText(text string)
	// SetSelection moves the caret to a rune offset.
	SetSelection(offset int)
	AddWatcher(w Watcher)
	RemoveWatcher(w Watcher)
}

// Watcher is notified after the text of a field changed.
type Watcher interface {
	AfterTextChanged(text string)
}

// Listener decides what a field must show after an edit.
type Listener interface {
	// OnEdit returns the text to write back and true, or false when the
	// field must be left alone.
	OnEdit(text string) (numfmt.EditResult, bool)
}

// OutcomeListener is a Listener that can also classify an edit. Bindings
// use it to report precise outcomes to their observers.
type OutcomeListener interface {
	Listener
	Apply(text string) numfmt.Outcome
}

// Resetter is implemented by listeners holding per-field state.
type Resetter interface {
	Reset()
}

// NumberListener applies a numfmt.Formatter to one field. It owns the
// field's re-entry state, so a listener must not be shared between fields.
type NumberListener struct {
	formatter *numfmt.Formatter
	state     numfmt.State
}

// NewNumberListener creates a listener with fresh state.
func NewNumberListener(f *numfmt.Formatter) *NumberListener {
	return &NumberListener{formatter: f}
}

// OnEdit implements Listener.
func (l *NumberListener) OnEdit(text string) (numfmt.EditResult, bool) {
	return l.formatter.OnEdit(text, &l.state)
}

// Apply implements OutcomeListener.
func (l *NumberListener) Apply(text string) numfmt.Outcome {
	return l.formatter.Apply(text, &l.state)
}

// Reset discards the remembered text.
func (l *NumberListener) Reset() { l.state.Reset() }

// State exposes the listener's re-entry state for diagnostics.
func (l *NumberListener) State() *numfmt.State { return &l.state }

// Formatter returns the formatter the listener applies.
func (l *NumberListener) Formatter() *numfmt.Formatter { return l.formatter }
