package numfmt

import (
	"strings"

	"github.com/shopspring/decimal"

	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/format"
	"github.com/agbru/moneymask/internal/logging"
)

// EditResult is the text a field must show after an edit. The caret is
// always pinned to the end of the text.
type EditResult struct {
	DisplayText string
	// CaretOffset is measured in runes.
	CaretOffset int
}

func resultFor(display string) EditResult {
	return EditResult{DisplayText: display, CaretOffset: runeLen(display)}
}

// OutcomeKind classifies what an edit led to.
type OutcomeKind int

const (
	// Reformatted means a new display text was produced.
	Reformatted OutcomeKind = iota
	// PrefixReset means the user deleted into the prefix and the field is
	// re-anchored to the bare prefix.
	PrefixReset
	// NoOpPrefixOnly means the field holds exactly the prefix.
	NoOpPrefixOnly
	// NoOpUnchanged means the canonical text equals the remembered one,
	// typically the formatter's own output delivered again.
	NoOpUnchanged
	// NoOpEmpty means nothing is left once prefix and separators are gone.
	NoOpEmpty
	// NoOpAnomaly means the text is not a well-formed partial number.
	NoOpAnomaly
)

var outcomeNames = [...]string{
	Reformatted:    "reformatted",
	PrefixReset:    "prefix_reset",
	NoOpPrefixOnly: "noop_prefix",
	NoOpUnchanged:  "noop_unchanged",
	NoOpEmpty:      "noop_empty",
	NoOpAnomaly:    "noop_anomaly",
}

func (k OutcomeKind) String() string {
	if int(k) >= 0 && int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return "unknown"
}

// Outcome is the full result of Apply.
type Outcome struct {
	Kind   OutcomeKind
	Result EditResult
}

// Changed reports whether Result must be written back to the field.
func (o Outcome) Changed() bool {
	return o.Kind == Reformatted || o.Kind == PrefixReset
}

// State is the per-field memory of the formatter: the canonical form of the
// text most recently accepted. The zero value is ready to use.
type State struct {
	last string
	has  bool
}

// Last returns the remembered canonical text.
func (s *State) Last() (string, bool) { return s.last, s.has }

// Reset forgets the remembered text.
func (s *State) Reset() { *s = State{} }

func (s *State) matches(canonical string) bool { return s.has && s.last == canonical }

func (s *State) remember(canonical string) {
	s.last, s.has = canonical, true
}

// Formatter applies a Config to field edits. It holds no per-field state and
// is safe for concurrent use.
type Formatter struct {
	cfg    Config
	logger logging.Logger
}

// FormatterOption customizes a Formatter.
type FormatterOption func(*Formatter)

// WithLogger sets the logger used to report absorbed parse anomalies.
func WithLogger(l logging.Logger) FormatterOption {
	return func(f *Formatter) { f.logger = l }
}

// New creates a Formatter for a validated configuration.
func New(cfg Config, opts ...FormatterOption) *Formatter {
	f := &Formatter{cfg: cfg}
	for _, opt := range opts {
		opt(f)
	}
	f.logger = logging.OrNop(f.logger)
	return f
}

// Config returns the formatter configuration.
func (f *Formatter) Config() Config { return f.cfg }

// OnEdit processes the full text of a field after an edit. It returns the
// text to write back and true, or false when the field must be left alone.
func (f *Formatter) OnEdit(raw string, st *State) (EditResult, bool) {
	out := f.Apply(raw, st)
	return out.Result, out.Changed()
}

// Apply processes the full text of a field after an edit and reports how it
// was handled. The state is updated in place.
//
// Parameters:
//   - raw: The complete current text of the field.
//   - st: The field's state; must not be nil.
//
// Returns:
//   - Outcome: The classification and, when Changed, the text to write back.
func (f *Formatter) Apply(raw string, st *State) Outcome {
	prefix := f.cfg.prefix
	if prefix != "" {
		if runeLen(raw) < runeLen(prefix) {
			st.Reset()
			return Outcome{Kind: PrefixReset, Result: resultFor(prefix)}
		}
		if raw == prefix {
			return Outcome{Kind: NoOpPrefixOnly}
		}
	}

	tok := Tokenize(raw, f.cfg)
	canonical := tok.Canonical()
	if canonical == "" {
		return Outcome{Kind: NoOpEmpty}
	}
	if st.matches(canonical) {
		return Outcome{Kind: NoOpUnchanged}
	}
	// Committed before rendering: a failed render must not leave the guard
	// holding an older value.
	st.remember(canonical)

	body, err := f.render(tok)
	if err != nil {
		f.logger.Debug("edit ignored", logging.String("text", raw), logging.Err(err))
		return Outcome{Kind: NoOpAnomaly}
	}

	display := prefix + body
	st.remember(Tokenize(display, f.cfg).Canonical())
	return Outcome{Kind: Reformatted, Result: resultFor(display)}
}

func (f *Formatter) render(tok Token) (string, error) {
	sign := ""
	if tok.Negative {
		sign = "-"
	}

	switch {
	case tok.IsBareSign:
		return sign, nil
	case tok.IsBarePoint:
		return sign + string(f.cfg.decimal), nil
	case !tok.HasPoint:
		return f.renderInteger(tok, sign)
	default:
		return f.renderDecimal(tok, sign)
	}
}

func (f *Formatter) renderInteger(tok Token, sign string) (string, error) {
	if !isDigits(tok.IntegerDigits) {
		return "", apperrors.ParseAnomaly{Input: tok.Canonical(), Reason: "integer part is not numeric"}
	}
	digits := strings.TrimLeft(tok.IntegerDigits, "0")
	if digits == "" {
		digits = "0"
	}
	return sign + f.group(digits), nil
}

func (f *Formatter) renderDecimal(tok Token, sign string) (string, error) {
	if !isDigits(tok.IntegerDigits) || !isDigits(tok.TypedFraction) {
		return "", apperrors.ParseAnomaly{Input: tok.Canonical(), Reason: "decimal is not numeric"}
	}
	precision := f.cfg.precision
	point := string(f.cfg.decimal)

	if isZeros(tok.IntegerDigits) && isZeros(tok.TypedFraction) {
		// Standard formatting would collapse the zeros the user is typing.
		typed := tok.Canonical()
		if runeLen(tok.TypedFraction) <= precision {
			return typed, nil
		}
		typed = typed[:len(typed)-1]
		cut := tok.IntegerDigits + point + truncateRunes(tok.TypedFraction, precision)
		if len(typed) > len(sign)+len(cut) {
			typed = sign + cut
		}
		return typed, nil
	}

	places := min(runeLen(tok.TypedFraction), precision)
	value, err := decimal.NewFromString(orZero(tok.IntegerDigits) + "." + orZero(tok.TypedFraction))
	if err != nil {
		return "", apperrors.ParseAnomaly{Input: tok.Canonical(), Reason: "decimal is not numeric", Cause: err}
	}
	if tok.Negative {
		value = value.Neg()
	}

	rounded := f.round(value, int32(places))
	if rounded.IsZero() {
		sign = ""
	}
	fixed := rounded.Abs().StringFixed(int32(places))
	integer, fraction, _ := strings.Cut(fixed, ".")
	if integer == "0" && tok.IntegerDigits == "" && f.cfg.emptyInteger == EmptyIntegerBlank && precision > 0 {
		integer = ""
	}

	out := sign + f.group(integer)
	if precision == 0 {
		return out, nil
	}
	return out + point + fraction, nil
}

func (f *Formatter) round(d decimal.Decimal, places int32) decimal.Decimal {
	switch f.cfg.rounding {
	case HalfUp:
		return d.Round(places)
	case HalfEven:
		return d.RoundBank(places)
	case Floor:
		return d.RoundFloor(places)
	case Ceil:
		return d.RoundCeil(places)
	default:
		return d.Truncate(places)
	}
}

func (f *Formatter) group(digits string) string {
	return format.GroupDigits(digits, f.cfg.grouping, f.cfg.groupSize)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isZeros(s string) bool {
	return strings.Trim(s, "0") == ""
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
