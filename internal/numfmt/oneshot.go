package numfmt

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/agbru/moneymask/internal/errors"
)

// Format renders a complete value in one shot, as if it had been typed into
// an empty field. Text the engine would leave alone is returned unchanged.
func (f *Formatter) Format(raw string) string {
	var st State
	out := f.Apply(raw, &st)
	if out.Changed() {
		return out.Result.DisplayText
	}
	return raw
}

// Extract returns the unmasked value of display text: prefix and grouping
// separators removed, the decimal separator normalized to '.', the sign
// kept. Fraction digits are returned as typed, not truncated.
func (f *Formatter) Extract(display string) string {
	return Tokenize(display, f.cfg).Extracted()
}

// Value parses display text into a decimal, truncated to the configured
// precision with the configured rounding policy.
func (f *Formatter) Value(display string) (decimal.Decimal, error) {
	tok := Tokenize(display, f.cfg)
	if tok.IsEmpty || tok.IsBarePoint || tok.IsBareSign {
		return decimal.Zero, nil
	}
	if !isDigits(tok.IntegerDigits) || !isDigits(tok.TypedFraction) {
		return decimal.Zero, apperrors.ParseAnomaly{Input: tok.Canonical(), Reason: "not a number"}
	}
	d, err := decimal.NewFromString(orZero(tok.IntegerDigits) + "." + orZero(tok.TypedFraction))
	if err != nil {
		return decimal.Zero, apperrors.ParseAnomaly{Input: tok.Canonical(), Reason: "not a number", Cause: err}
	}
	if tok.Negative {
		d = d.Neg()
	}
	return f.round(d, int32(f.cfg.precision)), nil
}
