package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/numfmt"
	"github.com/agbru/moneymask/internal/ui"
)

// EnvPrefix prefixes every environment variable read by this package.
const EnvPrefix = "MONEYMASK_"

// Run modes.
const (
	ModeREPL    = "repl"
	ModeTUI     = "tui"
	ModeBatch   = "batch"
	ModeFormat  = "format"
	ModeExtract = "extract"
)

var modes = []string{ModeREPL, ModeTUI, ModeBatch, ModeFormat, ModeExtract}

// Defaults.
const (
	DefaultMask      = "currency"
	DefaultTimeout   = 30 * time.Second
	DefaultWriteBack = "detach"
	// PrecisionAuto leaves the precision to the currency, or to the
	// formatter default when no currency is set.
	PrecisionAuto = -1
)

// AppConfig holds the resolved application configuration.
type AppConfig struct {
	// Mode is one of repl, tui, batch, format or extract.
	Mode string
	// Mask is the mask descriptor: "currency", "currency/<prefix>" or a
	// pattern.
	Mask string

	Prefix       string
	Precision    int
	Grouping     string
	Decimal      string
	Locale       string
	Currency     string
	Rounding     string
	EmptyInteger string
	Negative     bool
	WriteBack    string

	// Input is the batch input file, "-" for stdin.
	Input      string
	OutputFile string
	JSON       bool
	// Unmask makes batch mode extract values instead of masking them.
	Unmask  bool
	Workers int
	Timeout time.Duration

	Profile string
	Field   string
	// SaveProfile is a profile file to write the formatter settings to.
	SaveProfile string

	MetricsAddr string
	Verbose     bool
	Quiet       bool
	NoColor     bool
	Theme       string
	// Completion names a shell to print a completion script for.
	Completion string

	// Args holds the positional arguments: values for format and extract.
	Args []string
}

// NewFlagSet declares every command-line flag, bound to the fields of cfg.
// Shell completion reads the same set, so it never drifts from the parser.
func NewFlagSet(programName string, cfg *AppConfig, errWriter io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.Mode, "mode", ModeREPL, "Run mode: "+strings.Join(modes, ", ")+".")
	fs.StringVar(&cfg.Mask, "mask", DefaultMask, "Mask descriptor: currency, currency/<prefix> or a pattern.")
	fs.StringVar(&cfg.Prefix, "prefix", "", "Literal text shown before the amount, e.g. \"$\" or \"R$ \".")
	fs.IntVar(&cfg.Precision, "precision", PrecisionAuto, "Maximum fraction digits (-1 derives it from -currency, else 2).")
	fs.StringVar(&cfg.Grouping, "grouping", "", "Grouping separator (one character).")
	fs.StringVar(&cfg.Decimal, "decimal", "", "Decimal separator (one character).")
	fs.StringVar(&cfg.Locale, "locale", "", "BCP 47 locale for the separators, or \"host\".")
	fs.StringVar(&cfg.Currency, "currency", "", "ISO 4217 currency code setting precision and default prefix.")
	fs.StringVar(&cfg.Rounding, "rounding", numfmt.Truncate.String(), "Rounding policy: truncate, half-up, half-even, floor, ceil.")
	fs.StringVar(&cfg.EmptyInteger, "empty-integer", numfmt.EmptyIntegerZero.String(), "Rendering of an empty integer part: zero or blank.")
	fs.BoolVar(&cfg.Negative, "negative", false, "Accept a leading minus sign.")
	fs.StringVar(&cfg.WriteBack, "write-back", DefaultWriteBack, "Write-back strategy: detach or guard.")
	fs.StringVar(&cfg.Input, "input", "-", "Batch input file (\"-\" for stdin).")
	fs.StringVar(&cfg.Input, "i", "-", "Batch input file (shorthand).")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write batch output to a file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write batch output to a file (shorthand).")
	fs.BoolVar(&cfg.JSON, "json", false, "Batch output as JSON lines.")
	fs.BoolVar(&cfg.Unmask, "unmask", false, "Extract values instead of masking them in batch mode.")
	fs.IntVar(&cfg.Workers, "workers", 0, "Batch workers (0 uses the number of CPUs).")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum batch run time.")
	fs.StringVar(&cfg.Profile, "profile", "", "Profile file (.toml, .yaml or .yml).")
	fs.StringVar(&cfg.Field, "field", "", "Field of the profile to use (defaults to the profile's default).")
	fs.StringVar(&cfg.SaveProfile, "save-profile", "", "Write the formatter settings to this profile file and exit.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address, e.g. :9090.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose output (shorthand).")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose output, logs every edit outcome.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print results only.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Print results only (shorthand).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colors.")
	fs.StringVar(&cfg.Theme, "theme", ui.DarkTheme.Name, "Color theme: "+strings.Join(ui.ThemeNames(), ", ")+".")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a shell completion script (bash, zsh, fish or powershell).")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [flags] [values...]\n\n", programName)
		fmt.Fprintln(errWriter, "Incremental currency and decimal masking for text fields.")
		fmt.Fprintln(errWriter, "\nFlags:")
		fs.PrintDefaults()
	}
	return fs
}

// ParseConfig parses command-line arguments and resolves the configuration.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The arguments, without the program name.
//   - errWriter: Where flag errors and usage are written.
//
// Returns:
//   - AppConfig: The resolved and validated configuration.
//   - error: flag.ErrHelp when help was requested, a ConfigError otherwise.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	config := AppConfig{}
	fs := NewFlagSet(programName, &config, errWriter)

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return AppConfig{}, err
		}
		return AppConfig{}, apperrors.WrapConfigError(err, "invalid arguments")
	}
	config.Args = fs.Args()

	if path := profilePath(config, fs); path != "" {
		profile, err := LoadProfile(path)
		if err != nil {
			return AppConfig{}, err
		}
		name := config.Field
		if !isFlagSet(fs, "field") {
			name = getEnvString("FIELD", name)
		}
		fp, err := profile.Lookup(name)
		if err != nil {
			return AppConfig{}, err
		}
		applyProfile(&config, fp, fs)
	}
	applyEnvOverrides(fs)
	config = ApplyDefaults(config)

	if err := config.Validate(); err != nil {
		return AppConfig{}, err
	}
	return config, nil
}

func profilePath(c AppConfig, fs *flag.FlagSet) string {
	if isFlagSet(fs, "profile") {
		return c.Profile
	}
	return getEnvString("PROFILE", c.Profile)
}

// Validate checks the configuration for consistency. Formatter settings are
// checked by building a formatter configuration from them.
func (c AppConfig) Validate() error {
	if !contains(modes, c.Mode) {
		return apperrors.NewConfigError("unknown mode %q (want %s)", c.Mode, strings.Join(modes, ", "))
	}
	if c.Mask == "" {
		return apperrors.NewConfigError("mask descriptor must not be empty")
	}
	if c.Precision < PrecisionAuto {
		return apperrors.NewConfigError("precision must be -1 or greater, got %d", c.Precision)
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must be non-negative, got %d", c.Workers)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := c.WriteBackStrategy(); err != nil {
		return err
	}
	if _, ok := ui.LookupTheme(c.Theme); c.Theme != "" && !ok {
		return apperrors.NewConfigError("unknown theme %q (want %s)", c.Theme, strings.Join(ui.ThemeNames(), ", "))
	}
	if (c.Mode == ModeFormat || c.Mode == ModeExtract) && len(c.Args) == 0 && c.Completion == "" && c.SaveProfile == "" {
		return apperrors.NewConfigError("mode %s needs at least one value", c.Mode)
	}
	opts, err := c.FormatterOptions()
	if err != nil {
		return err
	}
	_, err = numfmt.NewConfig(opts...)
	return err
}

// FormatterOptions converts the configuration into number formatter
// options. Locale separators come first so that explicit separators win. The
// prefix precedes the currency, which only supplies a prefix when none is
// set, and an explicit precision follows it.
func (c AppConfig) FormatterOptions() ([]numfmt.Option, error) {
	var opts []numfmt.Option

	switch c.Locale {
	case "":
	case "host":
		opts = append(opts, numfmt.WithHostLocale())
	default:
		opts = append(opts, numfmt.WithLocale(c.Locale))
	}

	if c.Grouping != "" || c.Decimal != "" {
		grouping, err := singleRune("grouping", c.Grouping, numfmt.DefaultGroupingSeparator)
		if err != nil {
			return nil, err
		}
		decimal, err := singleRune("decimal", c.Decimal, numfmt.DefaultDecimalSeparator)
		if err != nil {
			return nil, err
		}
		opts = append(opts, separatorsOption(c.Grouping != "", grouping, c.Decimal != "", decimal))
	}

	if c.Prefix != "" {
		opts = append(opts, numfmt.WithPrefix(c.Prefix))
	}
	if c.Currency != "" {
		opts = append(opts, numfmt.WithCurrency(c.Currency))
	}
	if c.Precision != PrecisionAuto {
		opts = append(opts, numfmt.WithPrecision(c.Precision))
	}

	rounding, err := numfmt.ParseRoundingPolicy(c.Rounding)
	if err != nil {
		return nil, err
	}
	empty, err := numfmt.ParseEmptyIntegerStyle(c.EmptyInteger)
	if err != nil {
		return nil, err
	}
	opts = append(opts,
		numfmt.WithRounding(rounding),
		numfmt.WithEmptyInteger(empty),
		numfmt.WithNegative(c.Negative),
	)
	return opts, nil
}

// separatorsOption overrides only the separators that were given, keeping
// the ones a locale set for the others.
func separatorsOption(hasGrouping bool, grouping rune, hasDecimal bool, decimal rune) numfmt.Option {
	return func(cfg *numfmt.Config) error {
		g, d := cfg.GroupingSeparator(), cfg.DecimalSeparator()
		if hasGrouping {
			g = grouping
		}
		if hasDecimal {
			d = decimal
		}
		return numfmt.WithSeparators(g, d)(cfg)
	}
}

// WriteBackStrategy parses the write-back setting.
func (c AppConfig) WriteBackStrategy() (field.WriteBack, error) {
	switch strings.ToLower(c.WriteBack) {
	case "detach", "":
		return field.DetachDuringWriteBack, nil
	case "guard", "guard-only":
		return field.GuardOnly, nil
	}
	return field.DetachDuringWriteBack, apperrors.NewConfigError("unknown write-back strategy %q (want detach or guard)", c.WriteBack)
}

func singleRune(name, s string, def rune) (rune, error) {
	if s == "" {
		return def, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, apperrors.NewConfigError("%s separator must be a single character, got %q", name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
