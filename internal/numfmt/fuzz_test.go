package numfmt

import (
	"testing"
	"unicode/utf8"
)

// FuzzApply feeds arbitrary text through the formatter and checks the
// invariants that must hold for any input: no panic, valid UTF-8 output,
// precision bound and re-entry stability.
func FuzzApply(f *testing.F) {
	for _, seed := range []string{"", "$", "$1234.567", "0.000", ".", "-", "$-1,2.3.4", "\xff", "12a", "$$$"} {
		f.Add(seed, uint8(2), false)
	}
	f.Add("$-0.0001", uint8(3), true)

	f.Fuzz(func(t *testing.T, raw string, precision uint8, negative bool) {
		cfg := MustConfig(WithPrefix("$"), WithPrecision(int(precision%8)), WithNegative(negative))
		fm := New(cfg)
		var st State

		out := fm.Apply(raw, &st)
		if !out.Changed() {
			return
		}
		display := out.Result.DisplayText
		if !utf8.ValidString(display) {
			t.Fatalf("Apply(%q) produced invalid UTF-8 %q", raw, display)
		}
		if n := runeLen(Tokenize(display, cfg).TypedFraction); n > cfg.Precision() {
			t.Errorf("Apply(%q) = %q has %d fraction digits, precision %d", raw, display, n, cfg.Precision())
		}
		if again := fm.Apply(display, &st); again.Changed() {
			t.Errorf("Apply(%q) = %q is not stable: %v %q", raw, display, again.Kind, again.Result.DisplayText)
		}
	})
}
