package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/agbru/moneymask/internal/batch"
	"github.com/agbru/moneymask/internal/cli"
	"github.com/agbru/moneymask/internal/config"
	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/field"
	"github.com/agbru/moneymask/internal/logging"
	"github.com/agbru/moneymask/internal/mask"
	"github.com/agbru/moneymask/internal/metrics"
	"github.com/agbru/moneymask/internal/tui"
	"github.com/agbru/moneymask/internal/ui"
)

// Application represents the moneymask application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	// In is read by the REPL and by batch mode when the input is "-".
	In io.Reader
	// PatternFactory compiles pattern descriptors. Without one, only
	// currency masks resolve.
	PatternFactory mask.PatternFactory

	logger  logging.Logger
	metrics *metrics.Metrics
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithPatternFactory sets the engine used for pattern descriptors.
func WithPatternFactory(f mask.PatternFactory) AppOption {
	return func(a *Application) { a.PatternFactory = f }
}

// WithInput replaces standard input.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.In = r }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}

	programName := "moneymask"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.SaveProfile != "" {
		return a.runSaveProfile(out)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	zerolog.SetGlobalLevel(a.logLevel())
	if err := ui.InitTheme(a.Config.Theme, a.Config.NoColor); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	a.logger = logging.NewConsoleLogger(a.ErrWriter, "moneymask", ui.Current().Name == ui.NoColorTheme.Name)

	if a.Config.MetricsAddr != "" {
		if code := a.startMetrics(ctx); code != apperrors.ExitSuccess {
			return code
		}
	}

	masker, err := a.resolve(a.Config.Mask)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitCodeFor(err)
	}

	switch a.Config.Mode {
	case config.ModeTUI:
		return a.runTUI(ctx, masker)
	case config.ModeBatch:
		return a.runBatch(ctx, out, masker)
	case config.ModeFormat, config.ModeExtract:
		return a.runOneShot(out, masker)
	default:
		return a.runREPL(out)
	}
}

func (a *Application) logLevel() zerolog.Level {
	switch {
	case a.Config.Verbose:
		return zerolog.DebugLevel
	case a.Config.Quiet:
		return zerolog.WarnLevel
	}
	return zerolog.InfoLevel
}

// resolve builds a masker from a descriptor with the configured formatter
// settings.
func (a *Application) resolve(descriptor string) (mask.Masker, error) {
	fopts, err := a.Config.FormatterOptions()
	if err != nil {
		return nil, err
	}
	opts := []mask.ResolveOption{
		mask.WithFormatterOptions(fopts...),
		mask.WithLogger(a.logger),
	}
	if a.PatternFactory != nil {
		opts = append(opts, mask.WithPatternFactory(a.PatternFactory))
	}
	return mask.ResolveString(descriptor, opts...)
}

// observers returns the edit observers shared by the interactive modes.
func (a *Application) observers() []field.Observer {
	if a.metrics == nil {
		return nil
	}
	return []field.Observer{a.metrics}
}

// startMetrics serves Prometheus metrics until ctx is canceled.
func (a *Application) startMetrics(ctx context.Context) int {
	a.metrics = metrics.New(prometheus.NewRegistry())
	srv, err := metrics.Listen(a.Config.MetricsAddr, a.metrics, a.logger)
	if err != nil {
		a.logger.Error("metrics server failed to start", err, logging.String("addr", a.Config.MetricsAddr))
		return apperrors.ExitErrorConfig
	}
	go func() {
		if err := srv.Serve(ctx); err != nil {
			a.logger.Error("metrics server stopped", err)
		}
	}()
	return apperrors.ExitSuccess
}

// runCompletion generates shell completion scripts, offering the profile's
// field names for -field.
func (a *Application) runCompletion(out io.Writer) int {
	var fields []string
	if a.Config.Profile != "" {
		if p, err := config.LoadProfile(a.Config.Profile); err == nil {
			fields = p.Names()
		}
	}
	if err := cli.GenerateCompletion(out, a.Config.Completion, config.NewFlagSet("moneymask", &config.AppConfig{}, io.Discard), fields); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runSaveProfile writes the formatter settings as a one-field profile.
func (a *Application) runSaveProfile(out io.Writer) int {
	name := a.Config.Field
	if name == "" {
		name = "default"
	}
	p := &config.Profile{
		Default: name,
		Fields:  map[string]config.FieldProfile{name: config.ProfileFrom(a.Config)},
	}
	if err := config.SaveProfile(a.Config.SaveProfile, p); err != nil {
		return a.fail(err)
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "Saved field %q to %s\n", name, a.Config.SaveProfile)
	}
	return apperrors.ExitSuccess
}

// runREPL starts the interactive field session.
func (a *Application) runREPL(out io.Writer) int {
	strategy, _ := a.Config.WriteBackStrategy()
	repl, err := cli.NewREPL(cli.REPLConfig{
		Descriptor: a.Config.Mask,
		Resolve:    a.resolve,
		WriteBack:  strategy,
		Observers:  a.observers(),
		Logger:     a.logger,
		ShowEvents: a.Config.Verbose,
	})
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI field.
func (a *Application) runTUI(ctx context.Context, masker mask.Masker) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	strategy, _ := a.Config.WriteBackStrategy()
	return tui.Run(ctx, tui.Options{
		Masker:     masker,
		Descriptor: a.Config.Mask,
		WriteBack:  strategy,
		Observers:  a.observers(),
		Logger:     a.logger,
		Version:    Version,
	})
}

// runBatch masks or unmasks every line of the input.
func (a *Application) runBatch(ctx context.Context, out io.Writer, masker mask.Masker) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	in := a.In
	if a.Config.Input != "-" {
		f, err := os.Open(a.Config.Input)
		if err != nil {
			return a.fail(apperrors.ValidationError{Field: "input", Message: "cannot open", Cause: err})
		}
		defer f.Close()
		in = f
	}

	values, err := batch.ReadValues(in)
	if err != nil {
		return a.fail(apperrors.ValidationError{Field: "input", Message: "cannot read", Cause: err})
	}

	dir := batch.Mask
	if a.Config.Unmask {
		dir = batch.Unmask
	}
	records, sum, err := batch.Run(ctx, masker, values, batch.Options{
		Workers:   a.Config.Workers,
		Direction: dir,
		Metrics:   a.metrics,
		Logger:    a.logger,
	})
	if err != nil {
		return a.fail(err)
	}

	w := out
	if a.Config.OutputFile != "" {
		f, err := os.Create(a.Config.OutputFile)
		if err != nil {
			return a.fail(apperrors.WrapError(err, "creating output file"))
		}
		defer f.Close()
		w = f
	}
	if a.Config.JSON {
		err = batch.WriteJSON(w, records)
	} else {
		err = batch.WriteTSV(w, records, a.Config.Quiet)
	}
	if err != nil {
		return a.fail(err)
	}

	if !a.Config.Quiet {
		fmt.Fprintf(a.ErrWriter, "%s%s%s\n", ui.ColorDim(), batch.FormatSummary(sum), ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// runOneShot masks (format mode) or unmasks (extract mode) the positional
// arguments.
func (a *Application) runOneShot(out io.Writer, masker mask.Masker) int {
	convs := make([]cli.Conversion, len(a.Config.Args))
	for i, arg := range a.Config.Args {
		res := masker.Mask(arg)
		if a.Config.Mode == config.ModeExtract {
			res = masker.Unmask(arg)
		}
		convs[i] = cli.Conversion{Input: arg, Output: res}
	}
	err := cli.DisplayConversions(out, convs, cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Descriptor: a.Config.Mask,
	})
	if err != nil {
		return a.fail(err)
	}
	return apperrors.ExitSuccess
}

func (a *Application) fail(err error) int {
	fmt.Fprintf(a.ErrWriter, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	return apperrors.ExitCodeFor(err)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
