// Package chudnovsky computes π with the Chudnovsky series evaluated by
// binary splitting, and √10005 with a Pell doubling recurrence, both on a
// fork-join pool.
//
// The rendered result holds the requested number of significant digits,
// truncated, with the leading "3" and no decimal point.
package chudnovsky

//go:generate mockgen -source=calculator.go -destination=mocks/mock_calculator.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky/memory"
	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/progress"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrInvalidDigits is returned when zero digits are requested.
var ErrInvalidDigits = errors.New("chudnovsky: digit count must be positive")

var (
	calculationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picalc_calculations_total",
			Help: "The total number of π calculations processed",
		},
		[]string{"algorithm", "status"},
	)
	calculationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "picalc_calculation_duration_seconds",
			Help: "The duration of π calculations in seconds",
		},
		[]string{"algorithm"},
	)
	pellIterations = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "picalc_pell_iterations",
			Help:    "Number of Pell doubling steps per calculation",
			Buckets: prometheus.LinearBuckets(2, 4, 10),
		},
	)
	forkedTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "picalc_forked_tasks_total",
			Help: "Tasks executed on a pool goroutine rather than inline",
		},
		[]string{"algorithm"},
	)
)

// Result is the outcome of one π calculation.
type Result struct {
	// Digits holds the significant digits of π, leading "3" included.
	Digits string
	// Precision records the sizes derived from the digit count.
	Precision Precision
	// PellIterations is the number of doubling steps of the √10005 engine.
	PellIterations int
	// Tasks counts how forked tasks ran on the pool.
	Tasks parallel.Stats
	// GC is the collector activity when GC control was active.
	GC memory.GCStats
}

// Calculator is the interface the orchestration layer uses to run a π
// calculation.
type Calculator interface {
	// Calculate computes digits significant digits of π. Progress updates
	// are sent to progressChan without blocking; a nil channel disables
	// them. calcIndex identifies the calculator in those updates.
	Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, digits uint64, opts Options) (*Result, error)

	// Name returns the display name of the calculator.
	Name() string
}

// PiCalculator decorates a core algorithm with input validation, progress
// plumbing, GC control, tracing and metrics.
type PiCalculator struct {
	core coreCalculator
}

// NewCalculator wraps core. It panics if core is nil.
func NewCalculator(core coreCalculator) Calculator {
	if core == nil {
		panic("chudnovsky: the `coreCalculator` implementation cannot be nil")
	}
	return &PiCalculator{core: core}
}

// Name returns the name of the wrapped algorithm.
func (c *PiCalculator) Name() string {
	return c.core.Name()
}

// Calculate implements Calculator with a channel observer.
func (c *PiCalculator) Calculate(ctx context.Context, progressChan chan<- progress.ProgressUpdate, calcIndex int, digits uint64, opts Options) (*Result, error) {
	subject := progress.NewProgressSubject()
	if progressChan != nil {
		subject.Register(progress.NewChannelObserver(progressChan))
	}
	return c.CalculateWithObservers(ctx, subject, calcIndex, digits, opts)
}

// CalculateWithObservers runs the calculation and notifies every observer
// registered on subject. A nil subject disables progress reporting.
func (c *PiCalculator) CalculateWithObservers(ctx context.Context, subject *progress.ProgressSubject, calcIndex int, digits uint64, opts Options) (result *Result, err error) {
	algoName := c.core.Name()
	ctx, span := otel.Tracer("picalc").Start(ctx, "Calculate", trace.WithAttributes(
		attribute.String("algorithm", algoName),
		attribute.Int64("digits", int64(digits)),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		calculationsTotal.WithLabelValues(algoName, status).Inc()
		calculationDuration.WithLabelValues(algoName).Observe(duration)

		log.Debug().
			Str("algo", algoName).
			Uint64("digits", digits).
			Float64("duration", duration).
			Str("status", status).
			Msg("calculation completed")
	}()

	if digits == 0 {
		return nil, ErrInvalidDigits
	}

	reporter := progress.ProgressCallback(func(float64) {})
	if subject != nil {
		reporter = subject.AsProgressCallback(calcIndex)
	}

	prec := NewPrecision(digits)
	log.Debug().
		Str("algo", algoName).
		Uint64("terms", prec.Terms).
		Uint64("bits", prec.Bits).
		Msg("calculation started")

	gc := memory.NewGCController(memory.GCMode(opts.GCMode), digits)
	gc.SetLogger(log.Logger)
	gc.Begin()
	result, err = c.core.CalculateCore(ctx, reporter, prec, normalizeOptions(opts))
	gc.End()
	if err != nil {
		return nil, err
	}

	result.GC = gc.Stats()
	pellIterations.Observe(float64(result.PellIterations))
	forkedTasksTotal.WithLabelValues(algoName).Add(float64(result.Tasks.Spawned))
	span.SetAttributes(attribute.Int64("terms", int64(prec.Terms)))
	reporter(1.0)
	return result, nil
}
