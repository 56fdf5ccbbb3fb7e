package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/moneymask/internal/errors"
	"github.com/agbru/moneymask/internal/format"
	"github.com/agbru/moneymask/internal/logging"
	"github.com/agbru/moneymask/internal/mask"
	"github.com/agbru/moneymask/internal/metrics"
)

const instrumentationName = "github.com/agbru/moneymask/internal/batch"

// Direction selects what a run does to each value.
type Direction int

const (
	// Mask renders raw values for display.
	Mask Direction = iota
	// Unmask extracts the value from display text.
	Unmask
)

func (d Direction) String() string {
	if d == Unmask {
		return "unmask"
	}
	return "mask"
}

// Record is the result for one input value.
type Record struct {
	// Line is the 1-based input line number.
	Line    int    `json:"line"`
	Input   string `json:"input"`
	Output  string `json:"output"`
	Changed bool   `json:"changed"`
}

// Options configures a run.
type Options struct {
	// Workers bounds concurrency. Zero uses runtime.NumCPU.
	Workers   int
	Direction Direction
	// Metrics is optional.
	Metrics *metrics.Metrics
	Logger  logging.Logger
}

// Summary describes a completed run.
type Summary struct {
	Total    int
	Changed  int
	Duration time.Duration
}

// Value is one input line.
type Value struct {
	Line int
	Text string
}

// ReadValues reads one value per line. Blank lines are skipped and a
// trailing carriage return is dropped.
func ReadValues(r io.Reader) ([]Value, error) {
	var values []Value
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSuffix(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		values = append(values, Value{Line: line, Text: text})
	}
	if err := sc.Err(); err != nil {
		return nil, apperrors.WrapError(err, "reading values")
	}
	return values, nil
}

// Run applies the masker to every value. m's Mask and Unmask must be safe
// for concurrent use, which holds for currency maskers.
//
// Parameters:
//   - ctx: Cancels the run; remaining values are not processed.
//   - m: The masker.
//   - values: The inputs, usually from ReadValues.
//   - opts: Workers, direction, metrics and logger.
//
// Returns:
//   - []Record: One record per value, in input order.
//   - Summary: Counts and duration.
//   - error: The context error if the run was cut short.
func Run(ctx context.Context, m mask.Masker, values []Value, opts Options) ([]Record, Summary, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	logger := logging.OrNop(opts.Logger).With(logging.String("direction", opts.Direction.String()))
	dir := attribute.String("direction", opts.Direction.String())

	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "batch.run")
	defer span.End()
	span.SetAttributes(dir, attribute.Int("values", len(values)), attribute.Int("workers", workers))

	valueCounter, runDuration := batchInstruments(otel.Meter(instrumentationName), logger)

	start := time.Now()
	records := make([]Record, len(values))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, v := range values {
		i, v := i, v
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var out string
			if opts.Direction == Unmask {
				out = m.Unmask(v.Text)
			} else {
				out = m.Mask(v.Text)
			}
			records[i] = Record{Line: v.Line, Input: v.Text, Output: out, Changed: out != v.Text}
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	sum := Summary{Total: len(values), Duration: time.Since(start)}
	for _, r := range records {
		if r.Changed {
			sum.Changed++
		}
	}
	opts.Metrics.ObserveBatchDuration(sum.Duration)
	runDuration.Record(ctx, float64(sum.Duration)/float64(time.Millisecond), metric.WithAttributes(dir))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("batch canceled", err, logging.Int("values", len(values)))
		return nil, sum, err
	}

	for _, r := range records {
		status := "unchanged"
		if r.Changed {
			status = "changed"
		}
		opts.Metrics.ObserveBatchValue(status)
		valueCounter.Add(ctx, 1, metric.WithAttributes(dir, attribute.String("status", status)))
	}
	span.SetAttributes(attribute.Int("changed", sum.Changed))
	logger.Info("batch done",
		logging.Int("values", sum.Total),
		logging.Int("changed", sum.Changed),
		logging.String("duration", format.FormatExecutionDuration(sum.Duration)),
		logging.String("rate", format.FormatRate(sum.Total, sum.Duration)),
	)
	return records, sum, nil
}

// batchInstruments creates the run's otel instruments. An instrument the
// meter refuses is replaced by a no-op one and the failure is logged.
func batchInstruments(meter metric.Meter, logger logging.Logger) (metric.Int64Counter, metric.Float64Histogram) {
	var counter metric.Int64Counter = noop.Int64Counter{}
	var histogram metric.Float64Histogram = noop.Float64Histogram{}

	c, err := meter.Int64Counter("moneymask.batch.values",
		metric.WithDescription("Number of values processed by batch runs"),
		metric.WithUnit("{value}"))
	if err != nil {
		logger.Error("otel instrument unavailable", err, logging.String("instrument", "moneymask.batch.values"))
	} else {
		counter = c
	}

	h, err := meter.Float64Histogram("moneymask.batch.duration",
		metric.WithDescription("Latency of batch runs"),
		metric.WithUnit("ms"))
	if err != nil {
		logger.Error("otel instrument unavailable", err, logging.String("instrument", "moneymask.batch.duration"))
	} else {
		histogram = h
	}
	return counter, histogram
}

// FormatSummary describes a summary on one line.
func FormatSummary(s Summary) string {
	return fmt.Sprintf("%d values, %d changed, in %s", s.Total, s.Changed, format.FormatExecutionDuration(s.Duration))
}
