package numfmt

import (
	"strings"
	"unicode/utf8"
)

// Token is the canonical reading of raw field text: prefix and grouping
// separators removed, at most one decimal separator kept.
type Token struct {
	// Negative is set when a leading minus sign was accepted.
	Negative bool
	// IntegerDigits holds the characters before the first decimal
	// separator. It may be empty.
	IntegerDigits string
	// HasPoint reports whether a decimal separator was present.
	HasPoint bool
	// FractionDigits holds at most Precision characters after the first
	// decimal separator.
	FractionDigits string
	// TypedFraction holds every character after the first decimal
	// separator, with further separators removed.
	TypedFraction string

	IsEmpty     bool
	IsBarePoint bool
	IsBareSign  bool

	decimal rune
}

// Tokenize cleans raw field text into a Token. It never fails: characters
// that are neither digits nor separators are carried through and rejected
// later, when the token is rendered.
//
// Only one literal occurrence of the prefix, at the very start, is removed.
// "1.2.3" reads as integer "1" and fraction "23".
func Tokenize(raw string, cfg Config) Token {
	tok := Token{decimal: cfg.decimal}

	rest := strings.TrimPrefix(raw, cfg.prefix)
	rest = strings.ReplaceAll(rest, string(cfg.grouping), "")

	if cfg.allowNegative && strings.HasPrefix(rest, "-") {
		tok.Negative = true
		rest = rest[1:]
		if rest == "" {
			tok.IsBareSign = true
			return tok
		}
	}

	if rest == "" {
		tok.IsEmpty = true
		return tok
	}

	point := string(cfg.decimal)
	if rest == point {
		tok.IsBarePoint = true
		tok.HasPoint = true
		return tok
	}

	before, after, found := strings.Cut(rest, point)
	tok.IntegerDigits = before
	if found {
		tok.HasPoint = true
		tok.TypedFraction = strings.ReplaceAll(after, point, "")
		tok.FractionDigits = truncateRunes(tok.TypedFraction, cfg.precision)
	}
	return tok
}

// Canonical returns the token as typed: sign, integer digits, and the
// decimal separator followed by every typed fraction digit. This is the
// form the re-entry guard compares.
func (t Token) Canonical() string {
	return t.render(t.TypedFraction)
}

// Truncated is like Canonical but with the fraction cut to the configured
// precision.
func (t Token) Truncated() string {
	return t.render(t.FractionDigits)
}

// Extracted returns the machine-readable form of the token: like Canonical
// but always using '.' as decimal separator.
func (t Token) Extracted() string {
	var b strings.Builder
	if t.Negative {
		b.WriteByte('-')
	}
	b.WriteString(t.IntegerDigits)
	if t.HasPoint {
		b.WriteByte('.')
		b.WriteString(t.TypedFraction)
	}
	return b.String()
}

func (t Token) render(fraction string) string {
	if t.IsEmpty {
		return ""
	}
	var b strings.Builder
	if t.Negative {
		b.WriteByte('-')
	}
	b.WriteString(t.IntegerDigits)
	if t.HasPoint {
		b.WriteRune(t.decimal)
		b.WriteString(fraction)
	}
	return b.String()
}

// truncateRunes returns at most n leading runes of s.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

func runeLen(s string) int { return utf8.RuneCountInString(s) }
