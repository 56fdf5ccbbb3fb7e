package numfmt

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/format"
)

// Default configuration values.
const (
	DefaultPrecision         = 2
	DefaultGroupingSeparator = ','
	DefaultDecimalSeparator  = '.'
)

// RoundingPolicy selects how digits beyond the configured precision are
// dropped.
type RoundingPolicy int

const (
	// Truncate drops excess digits (rounds toward zero).
	Truncate RoundingPolicy = iota
	// HalfUp rounds half away from zero.
	HalfUp
	// HalfEven rounds half to the nearest even digit (banker's rounding).
	HalfEven
	// Floor rounds toward negative infinity.
	Floor
	// Ceil rounds toward positive infinity.
	Ceil
)

var roundingNames = map[RoundingPolicy]string{
	Truncate: "truncate",
	HalfUp:   "half-up",
	HalfEven: "half-even",
	Floor:    "floor",
	Ceil:     "ceil",
}

func (p RoundingPolicy) String() string {
	if name, ok := roundingNames[p]; ok {
		return name
	}
	return fmt.Sprintf("RoundingPolicy(%d)", int(p))
}

// ParseRoundingPolicy parses a policy name ("truncate", "half-up",
// "half-even", "floor", "ceil"). Matching is case-insensitive and accepts
// underscores in place of dashes.
func ParseRoundingPolicy(s string) (RoundingPolicy, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "_", "-")
	for p, name := range roundingNames {
		if name == key {
			return p, nil
		}
	}
	return Truncate, apperrors.NewConfigError("unknown rounding policy %q (want truncate, half-up, half-even, floor or ceil)", s)
}

// EmptyIntegerStyle decides how an empty integer part (input that starts
// with the decimal separator) is rendered.
type EmptyIntegerStyle int

const (
	// EmptyIntegerZero renders "0" before the separator: ".5" -> "0.5".
	EmptyIntegerZero EmptyIntegerStyle = iota
	// EmptyIntegerBlank renders nothing before the separator: ".5" -> ".5".
	EmptyIntegerBlank
)

func (s EmptyIntegerStyle) String() string {
	if s == EmptyIntegerBlank {
		return "blank"
	}
	return "zero"
}

// ParseEmptyIntegerStyle parses "zero" or "blank".
func ParseEmptyIntegerStyle(s string) (EmptyIntegerStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "zero", "":
		return EmptyIntegerZero, nil
	case "blank":
		return EmptyIntegerBlank, nil
	}
	return EmptyIntegerZero, apperrors.NewConfigError("unknown empty-integer style %q (want zero or blank)", s)
}

// Config is the immutable formatter configuration. Build it with NewConfig.
type Config struct {
	prefix        string
	precision     int
	grouping      rune
	decimal       rune
	groupSize     int
	rounding      RoundingPolicy
	emptyInteger  EmptyIntegerStyle
	allowNegative bool
	locale        string
}

// Option customizes a Config under construction. Options are applied in
// order; later options win.
type Option func(*Config) error

// WithPrefix sets the literal text rendered before the digits, such as a
// currency symbol or an ISO code.
func WithPrefix(prefix string) Option {
	return func(c *Config) error {
		c.prefix = prefix
		return nil
	}
}

// WithPrecision sets the maximum number of fraction digits retained.
func WithPrecision(precision int) Option {
	return func(c *Config) error {
		c.precision = precision
		return nil
	}
}

// WithSeparators sets the grouping and decimal separators.
func WithSeparators(grouping, decimal rune) Option {
	return func(c *Config) error {
		c.grouping = grouping
		c.decimal = decimal
		return nil
	}
}

// WithGroupSize sets the number of digits between grouping separators.
func WithGroupSize(size int) Option {
	return func(c *Config) error {
		c.groupSize = size
		return nil
	}
}

// WithLocale derives both separators from a BCP 47 language tag.
func WithLocale(tag string) Option {
	return func(c *Config) error {
		grouping, decimal, err := SeparatorsForLocale(tag)
		if err != nil {
			return err
		}
		c.grouping, c.decimal, c.locale = grouping, decimal, tag
		return nil
	}
}

// WithHostLocale derives the separators from the process locale
// environment (LC_ALL, LC_NUMERIC, LANG). When no usable locale is found the
// separators are left unchanged.
func WithHostLocale() Option {
	return func(c *Config) error {
		tag, ok := HostLocale()
		if !ok {
			return nil
		}
		grouping, decimal, err := SeparatorsForLocale(tag)
		if err != nil {
			return nil
		}
		c.grouping, c.decimal, c.locale = grouping, decimal, tag
		return nil
	}
}

// WithCurrency sets the precision to the ISO 4217 standard scale of the
// currency and, when no prefix has been set yet, uses the ISO code followed
// by a space as prefix.
func WithCurrency(iso string) Option {
	return func(c *Config) error {
		precision, err := CurrencyPrecision(iso)
		if err != nil {
			return err
		}
		c.precision = precision
		if c.prefix == "" {
			c.prefix = strings.ToUpper(strings.TrimSpace(iso)) + " "
		}
		return nil
	}
}

// WithRounding sets the rounding policy applied at the precision boundary.
func WithRounding(p RoundingPolicy) Option {
	return func(c *Config) error {
		c.rounding = p
		return nil
	}
}

// WithEmptyInteger sets how an empty integer part is rendered.
func WithEmptyInteger(s EmptyIntegerStyle) Option {
	return func(c *Config) error {
		c.emptyInteger = s
		return nil
	}
}

// WithNegative allows a leading minus sign after the prefix.
func WithNegative(allow bool) Option {
	return func(c *Config) error {
		c.allowNegative = allow
		return nil
	}
}

// NewConfig builds and validates a configuration. Invalid settings are
// rejected here, never at edit time.
//
// Parameters:
//   - opts: Options applied over the defaults (no prefix, precision 2,
//     ',' grouping, '.' decimal, truncation).
//
// Returns:
//   - Config: The validated configuration.
//   - error: A ConfigError describing the first invalid setting.
func NewConfig(opts ...Option) (Config, error) {
	c := Config{
		precision: DefaultPrecision,
		grouping:  DefaultGroupingSeparator,
		decimal:   DefaultDecimalSeparator,
		groupSize: format.DefaultGroupSize,
		rounding:  Truncate,
	}
	for _, opt := range opts {
		if err := opt(&c); err != nil {
			return Config{}, err
		}
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// MustConfig is like NewConfig but panics on error. It is intended for
// package-level defaults and tests.
func MustConfig(opts ...Option) Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Config) validate() error {
	if c.precision < 0 {
		return apperrors.NewConfigError("precision must be non-negative, got %d", c.precision)
	}
	if c.groupSize < 1 {
		return apperrors.NewConfigError("group size must be at least 1, got %d", c.groupSize)
	}
	if c.grouping == c.decimal {
		return apperrors.NewConfigError("grouping and decimal separators must differ, both are %q", c.decimal)
	}
	for _, sep := range []rune{c.grouping, c.decimal} {
		if unicode.IsDigit(sep) || sep == '-' || sep == 0 {
			return apperrors.NewConfigError("invalid separator %q", sep)
		}
	}
	if _, ok := roundingNames[c.rounding]; !ok {
		return apperrors.NewConfigError("invalid rounding policy %d", int(c.rounding))
	}
	return nil
}

// Prefix returns the literal display prefix.
func (c Config) Prefix() string { return c.prefix }

// Precision returns the maximum number of fraction digits.
func (c Config) Precision() int { return c.precision }

// GroupingSeparator returns the grouping separator.
func (c Config) GroupingSeparator() rune { return c.grouping }

// DecimalSeparator returns the decimal separator.
func (c Config) DecimalSeparator() rune { return c.decimal }

// GroupSize returns the number of digits per group.
func (c Config) GroupSize() int { return c.groupSize }

// Rounding returns the rounding policy.
func (c Config) Rounding() RoundingPolicy { return c.rounding }

// EmptyInteger returns the empty integer part style.
func (c Config) EmptyInteger() EmptyIntegerStyle { return c.emptyInteger }

// AllowNegative reports whether a leading minus sign is accepted.
func (c Config) AllowNegative() bool { return c.allowNegative }

// Locale returns the language tag the separators came from, if any.
func (c Config) Locale() string { return c.locale }

func (c Config) String() string {
	return fmt.Sprintf("prefix=%q precision=%d grouping=%q decimal=%q rounding=%s empty-integer=%s negative=%t",
		c.prefix, c.precision, c.grouping, c.decimal, c.rounding, c.emptyInteger, c.allowNegative)
}
