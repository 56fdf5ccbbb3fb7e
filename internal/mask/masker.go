package mask

import (
	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/logging"
	"github.com/agbru/moneymask/internal/numfmt"

	apperrors "github.com/agbru/moneymask/internal/errors"
)

// Masker formats whole values and creates per-field listeners for one mask.
type Masker interface {
	// Mask formats a complete value in one shot.
	Mask(input string) string
	// Unmask returns the machine-readable value of displayed text.
	Unmask(input string) string
	// NewListener returns a listener with fresh per-field state.
	NewListener() field.Listener
}

// CurrencyMasker is a Masker backed by the incremental number formatter.
type CurrencyMasker struct {
	formatter *numfmt.Formatter
}

// NewCurrencyMasker wraps a formatter.
func NewCurrencyMasker(f *numfmt.Formatter) *CurrencyMasker {
	return &CurrencyMasker{formatter: f}
}

// Mask implements Masker.
func (c *CurrencyMasker) Mask(input string) string { return c.formatter.Format(input) }

// Unmask implements Masker.
func (c *CurrencyMasker) Unmask(input string) string { return c.formatter.Extract(input) }

// NewListener implements Masker.
func (c *CurrencyMasker) NewListener() field.Listener {
	return field.NewNumberListener(c.formatter)
}

// Formatter returns the underlying formatter.
func (c *CurrencyMasker) Formatter() *numfmt.Formatter { return c.formatter }

type resolveOptions struct {
	formatterOpts []numfmt.Option
	factory       PatternFactory
	logger        logging.Logger
}

// ResolveOption customizes Resolve.
type ResolveOption func(*resolveOptions)

// WithFormatterOptions sets the number formatter options used for currency
// descriptors. A descriptor prefix is applied after them and wins.
func WithFormatterOptions(opts ...numfmt.Option) ResolveOption {
	return func(o *resolveOptions) { o.formatterOpts = append(o.formatterOpts, opts...) }
}

// WithPatternFactory sets the engine used for pattern descriptors.
func WithPatternFactory(f PatternFactory) ResolveOption {
	return func(o *resolveOptions) { o.factory = f }
}

// WithLogger sets the logger handed to the number formatter.
func WithLogger(l logging.Logger) ResolveOption {
	return func(o *resolveOptions) { o.logger = l }
}

// Resolve builds the Masker a descriptor selects.
//
// Parameters:
//   - desc: The parsed descriptor.
//   - opts: Formatter options, pattern factory and logger.
//
// Returns:
//   - Masker: A CurrencyMasker or a PatternMasker.
//   - error: A ConfigError when the formatter options are invalid or a
//     pattern is requested without a factory.
func Resolve(desc Descriptor, opts ...ResolveOption) (Masker, error) {
	var o resolveOptions
	for _, opt := range opts {
		opt(&o)
	}

	switch desc.Kind {
	case KindCurrency:
		fopts := o.formatterOpts
		if desc.HasPrefix {
			fopts = append(append([]numfmt.Option(nil), fopts...), numfmt.WithPrefix(desc.Prefix))
		}
		cfg, err := numfmt.NewConfig(fopts...)
		if err != nil {
			return nil, err
		}
		return NewCurrencyMasker(numfmt.New(cfg, numfmt.WithLogger(o.logger))), nil
	case KindPattern:
		if o.factory == nil {
			return nil, apperrors.NewConfigError("no pattern mask engine for %q", desc.Pattern)
		}
		m, err := o.factory(desc.Pattern)
		if err != nil {
			return nil, apperrors.WrapError(err, "compiling pattern %q", desc.Pattern)
		}
		return NewPatternMasker(desc.Pattern, m), nil
	}
	return nil, apperrors.NewConfigError("unknown mask kind %d", int(desc.Kind))
}

// ResolveString parses and resolves a descriptor in one step.
func ResolveString(s string, opts ...ResolveOption) (Masker, error) {
	desc, err := ParseDescriptor(s)
	if err != nil {
		return nil, err
	}
	return Resolve(desc, opts...)
}
