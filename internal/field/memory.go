package field

import "unicode/utf8"

// DefaultMaxDepth bounds how deeply SetText may re-enter itself through
// watchers before MemoryField stops notifying.
const DefaultMaxDepth = 8

// MemoryField is an in-memory TextField. SetText notifies every watcher
// synchronously, including when called from inside a watcher, which is how
// a formatter's write-back reaches the formatter again on real widgets.
//
// MemoryField is not safe for concurrent use.
type MemoryField struct {
	text       string
	caret      int
	watchers   []Watcher
	depth      int
	maxDepth   int
	writes     int
	violations int
}

// NewMemoryField creates a field holding text, caret at the end.
func NewMemoryField(text string) *MemoryField {
	return &MemoryField{text: text, caret: utf8.RuneCountInString(text), maxDepth: DefaultMaxDepth}
}

// SetMaxDepth changes the re-entry depth cap.
func (m *MemoryField) SetMaxDepth(depth int) { m.maxDepth = depth }

// Text implements TextField.
func (m *MemoryField) Text() string { return m.text }

// Caret returns the caret rune offset.
func (m *MemoryField) Caret() int { return m.caret }

// SetText implements TextField. The caret moves to the end of the new text.
func (m *MemoryField) SetText(text string) {
	m.text = text
	m.caret = utf8.RuneCountInString(text)
	m.writes++

	if m.depth >= m.maxDepth {
		m.violations++
		return
	}
	m.depth++
	defer func() { m.depth-- }()

	watchers := append([]Watcher(nil), m.watchers...)
	for _, w := range watchers {
		if m.watching(w) {
			w.AfterTextChanged(text)
		}
	}
}

// SetSelection implements TextField. The offset is clamped to the text.
func (m *MemoryField) SetSelection(offset int) {
	n := utf8.RuneCountInString(m.text)
	m.caret = max(0, min(offset, n))
}

// AddWatcher implements TextField.
func (m *MemoryField) AddWatcher(w Watcher) {
	m.watchers = append(m.watchers, w)
}

// RemoveWatcher implements TextField. It removes one registration of w.
func (m *MemoryField) RemoveWatcher(w Watcher) {
	for i, x := range m.watchers {
		if x == w {
			m.watchers = append(m.watchers[:i], m.watchers[i+1:]...)
			return
		}
	}
}

func (m *MemoryField) watching(w Watcher) bool {
	for _, x := range m.watchers {
		if x == w {
			return true
		}
	}
	return false
}

// Watchers returns the number of registered watchers.
func (m *MemoryField) Watchers() int { return len(m.watchers) }

// Type appends each rune of s as a separate keystroke.
func (m *MemoryField) Type(s string) {
	for _, r := range s {
		m.SetText(m.text + string(r))
	}
}

// Backspace deletes the last rune, as one keystroke. It is a no-op on an
// empty field.
func (m *MemoryField) Backspace() {
	if m.text == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(m.text)
	m.SetText(m.text[:len(m.text)-size])
}

// Writes returns the number of SetText calls, nested ones included.
func (m *MemoryField) Writes() int { return m.writes }

// Violations returns how many times the depth cap cut off notification.
func (m *MemoryField) Violations() int { return m.violations }
