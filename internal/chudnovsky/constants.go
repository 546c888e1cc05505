package chudnovsky

import "math"

// ─────────────────────────────────────────────────────────────────────────────
// Series Constants
// ─────────────────────────────────────────────────────────────────────────────
//
// 1/π = 12 Σ (-1)^k (6k)! (A + B·k) / ((3k)! (k!)³ C^(3k+3/2))

const (
	// SeriesA is the constant term of the Chudnovsky numerator polynomial.
	SeriesA = 13591409
	// SeriesB is the linear coefficient of the numerator polynomial.
	SeriesB = 545140134
	// SeriesC is the Chudnovsky modulus.
	SeriesC = 640320
	// SeriesC3Over24 is C³/24, the per-term factor of Q.
	SeriesC3Over24 = 10939058860032000

	// Radicand is D in √D, with C^(3/2)/12 = 426880·√10005.
	Radicand = 10005
	// ScaleFactor is C^(3/2) / (12·√10005).
	ScaleFactor = 426880
)

// DigitsPerTerm is log10(C³/1728) = log10(53360³), the number of decimal
// digits each series term contributes.
var DigitsPerTerm = 3 * math.Log10(53360)

// ─────────────────────────────────────────────────────────────────────────────
// Performance Tuning Constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	// DefaultParallelThreshold is the range size, in terms, at which the
	// binary splitting recursion starts forking subtasks. Smaller ranges
	// are evaluated sequentially in the calling goroutine.
	DefaultParallelThreshold = 50_000

	// CancelCheckSpan is the minimum sequential range size at which the
	// recursion polls the context for cancellation.
	CancelCheckSpan = 1024

	// PellGuardDigits is added to half the requested digits to size the
	// Pell convergent denominator.
	PellGuardDigits = 5

	// CalibrationDigits is the digit count used by threshold calibration
	// runs. It is large enough for forking to matter and small enough to
	// finish in a few seconds.
	CalibrationDigits = 200_000
)
