package calibration

import (
	"context"
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/logging"
	"github.com/agbru/picalc/internal/progress"
)

// minTrialTimeout bounds a single trial when the configured timeout is
// short or absent.
const minTrialTimeout = 2 * time.Second

// calibrationRunner times calculations of CalibrationDigits digits.
type calibrationRunner struct {
	ctx      context.Context
	perTrial time.Duration
	digits   uint64
	logger   logging.Logger
}

// newCalibrationRunner splits timeout across trials. A zero timeout gives
// each trial a minute.
func newCalibrationRunner(ctx context.Context, timeout time.Duration, logger logging.Logger) *calibrationRunner {
	perTrial := timeout / 6
	if timeout == 0 {
		perTrial = time.Minute
	}
	if perTrial < minTrialTimeout {
		perTrial = minTrialTimeout
	}
	return &calibrationRunner{ctx: ctx, perTrial: perTrial, digits: chudnovsky.CalibrationDigits, logger: logger}
}

// runTrial computes r.digits digits with threshold and returns the elapsed
// time.
func (r *calibrationRunner) runTrial(calc chudnovsky.Calculator, progressChan chan<- progress.ProgressUpdate, threshold int) (time.Duration, error) {
	ctx, cancel := context.WithTimeout(r.ctx, r.perTrial)
	defer cancel()
	start := time.Now()
	_, err := calc.Calculate(ctx, progressChan, 0, r.digits, chudnovsky.Options{ParallelThreshold: threshold})
	duration := time.Since(start)
	if err != nil {
		r.logger.Error("calibration trial failed", err, logging.Int("threshold", threshold))
		return duration, err
	}
	r.logger.Debug("calibration trial",
		logging.Int("threshold", threshold),
		logging.Uint64("digits", r.digits),
		logging.Duration("duration", duration))
	return duration, nil
}

// measure runs one trial per candidate. It stops early when the parent
// context is done.
func (r *calibrationRunner) measure(calc chudnovsky.Calculator, progressChan chan<- progress.ProgressUpdate, candidates []int) []calibrationResult {
	results := make([]calibrationResult, 0, len(candidates))
	for _, cand := range candidates {
		if r.ctx.Err() != nil {
			break
		}
		dur, err := r.runTrial(calc, progressChan, cand)
		results = append(results, calibrationResult{Threshold: cand, Duration: dur, Err: err})
	}
	return results
}

// bestResult returns the fastest successful result. ok is false when every
// trial failed.
func bestResult(results []calibrationResult) (best calibrationResult, ok bool) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if !ok || res.Duration < best.Duration {
			best, ok = res, true
		}
	}
	return best, ok
}
