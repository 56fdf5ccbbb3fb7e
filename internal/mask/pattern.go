//go:generate mockgen -source=pattern.go -destination=mocks/mock_pattern.go -package=mocks

package mask

import (
	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/numfmt"
)

// Result is the output of a pattern mask.
type Result struct {
	// Formatted is the text to display.
	Formatted string
	// Extracted is the value with the mask's literal characters removed.
	Extracted string
	// Complete reports whether every mandatory position is filled.
	Complete bool
}

// PatternMask is a fixed-pattern mask engine (phone numbers, dates, card
// numbers). This module does not ship one; callers plug theirs in with
// WithPatternFactory.
type PatternMask interface {
	// Apply formats text against the pattern. With autocomplete set the
	// engine appends trailing literal characters as soon as they are
	// unambiguous.
	Apply(text string, autocomplete bool) Result
}

// PatternFactory compiles a pattern into a PatternMask.
type PatternFactory func(pattern string) (PatternMask, error)

// PatternMasker is a Masker backed by a PatternMask.
type PatternMasker struct {
	pattern string
	mask    PatternMask
}

// NewPatternMasker wraps a compiled pattern mask.
func NewPatternMasker(pattern string, m PatternMask) *PatternMasker {
	return &PatternMasker{pattern: pattern, mask: m}
}

// Mask implements Masker.
func (p *PatternMasker) Mask(input string) string {
	return p.mask.Apply(input, true).Formatted
}

// Unmask implements Masker.
func (p *PatternMasker) Unmask(input string) string {
	return p.mask.Apply(input, true).Extracted
}

// NewListener implements Masker.
func (p *PatternMasker) NewListener() field.Listener {
	return &patternListener{mask: p.mask}
}

// Pattern returns the pattern string.
func (p *PatternMasker) Pattern() string { return p.pattern }

// patternListener only writes back when the mask changed the text. The last
// output is remembered so that the write-back, delivered again, is ignored
// without running the mask a second time.
type patternListener struct {
	mask PatternMask
	last string
	has  bool
}

func (l *patternListener) OnEdit(text string) (numfmt.EditResult, bool) {
	if l.has && text == l.last {
		return numfmt.EditResult{}, false
	}
	formatted := l.mask.Apply(text, true).Formatted
	l.last, l.has = formatted, true
	if formatted == text {
		return numfmt.EditResult{}, false
	}
	return numfmt.EditResult{DisplayText: formatted, CaretOffset: len([]rune(formatted))}, true
}

func (l *patternListener) Reset() {
	l.last, l.has = "", false
}
