package field

import (
	"github.com/agbru/moneymask/internal/logging"
	"github.com/agbru/moneymask/internal/numfmt"
)

// WriteBack selects how a Binding writes a result back to its field.
type WriteBack int

const (
	// DetachDuringWriteBack removes the binding from the field's watchers
	// while the new text is written, so the write produces no callback.
	DetachDuringWriteBack WriteBack = iota
	// GuardOnly keeps the binding attached. The write is delivered back to
	// the listener, which recognises its own output and does nothing.
	GuardOnly
)

func (w WriteBack) String() string {
	if w == GuardOnly {
		return "guard-only"
	}
	return "detach"
}

// Event describes one edit seen by a Binding.
type Event struct {
	// Field is the binding name, empty unless set with WithName.
	Field   string
	Text    string
	Outcome numfmt.Outcome
}

// Observer receives every edit event of a Binding.
type Observer interface {
	ObserveEdit(e Event)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(e Event)

// ObserveEdit calls f(e).
func (f ObserverFunc) ObserveEdit(e Event) { f(e) }

// Option customizes a Binding.
type Option func(*Binding)

// WithWriteBack sets the write-back strategy. The default is
// DetachDuringWriteBack.
func WithWriteBack(w WriteBack) Option {
	return func(b *Binding) { b.strategy = w }
}

// WithObserver adds an observer.
func WithObserver(o Observer) Option {
	return func(b *Binding) { b.observers = append(b.observers, o) }
}

// WithLogger sets the logger used for write-back tracing.
func WithLogger(l logging.Logger) Option {
	return func(b *Binding) { b.logger = l }
}

// WithName names the binding in events and logs.
func WithName(name string) Option {
	return func(b *Binding) { b.name = name }
}

// Binding connects a Listener to a TextField. It is the handle through
// which the binding is later replaced or removed. Like the fields it serves,
// a Binding is meant to be used from a single goroutine.
type Binding struct {
	field     TextField
	listener  Listener
	strategy  WriteBack
	observers []Observer
	logger    logging.Logger
	name      string
	attached  bool
}

// Bind attaches a listener to a field and returns the binding handle.
//
// Parameters:
//   - f: The field to watch.
//   - l: The listener deciding the field's text after each edit.
//   - opts: Write-back strategy, observers, logger and name.
//
// Returns:
//   - *Binding: The attached binding.
func Bind(f TextField, l Listener, opts ...Option) *Binding {
	b := &Binding{field: f, listener: l}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = logging.OrNop(b.logger)
	if b.name != "" {
		b.logger = b.logger.With(logging.String("field", b.name))
	}
	b.attach()
	return b
}

func (b *Binding) attach() {
	b.field.AddWatcher(b)
	b.attached = true
	for _, o := range b.observers {
		if bo, ok := o.(BindObserver); ok {
			bo.FieldBound()
		}
	}
}

// BindObserver is implemented by observers that track how many fields are
// bound.
type BindObserver interface {
	FieldBound()
	FieldUnbound()
}

// Detach removes the binding from its field and discards the listener's
// state. Detaching twice is a no-op.
func (b *Binding) Detach() {
	if !b.attached {
		return
	}
	b.field.RemoveWatcher(b)
	b.attached = false
	if r, ok := b.listener.(Resetter); ok {
		r.Reset()
	}
	for _, o := range b.observers {
		if bo, ok := o.(BindObserver); ok {
			bo.FieldUnbound()
		}
	}
	b.logger.Debug("field detached")
}

// Rebind replaces the listener on the same field. The previous listener is
// detached first, so at most one listener ever watches the field through
// this binding.
func (b *Binding) Rebind(l Listener) {
	b.Detach()
	b.listener = l
	b.attach()
}

// Listener returns the current listener.
func (b *Binding) Listener() Listener { return b.listener }

// Attached reports whether the binding is watching its field.
func (b *Binding) Attached() bool { return b.attached }

// Strategy returns the write-back strategy.
func (b *Binding) Strategy() WriteBack { return b.strategy }

// AfterTextChanged implements Watcher.
func (b *Binding) AfterTextChanged(text string) {
	if !b.attached {
		return
	}

	out := b.apply(text)
	for _, o := range b.observers {
		o.ObserveEdit(Event{Field: b.name, Text: text, Outcome: out})
	}
	if !out.Changed() {
		return
	}

	res := out.Result
	b.logger.Debug("write back",
		logging.String("text", res.DisplayText),
		logging.String("strategy", b.strategy.String()),
	)
	if b.strategy == DetachDuringWriteBack {
		b.field.RemoveWatcher(b)
		defer b.field.AddWatcher(b)
	}
	b.field.SetText(res.DisplayText)
	b.field.SetSelection(res.CaretOffset)
}

func (b *Binding) apply(text string) numfmt.Outcome {
	if ol, ok := b.listener.(OutcomeListener); ok {
		return ol.Apply(text)
	}
	res, ok := b.listener.OnEdit(text)
	if !ok {
		return numfmt.Outcome{Kind: numfmt.NoOpUnchanged}
	}
	return numfmt.Outcome{Kind: numfmt.Reformatted, Result: res}
}
