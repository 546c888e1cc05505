package chudnovsky

import (
	"math"
	"math/big"
)

// Precision holds every size derived from a requested digit count.
type Precision struct {
	// Digits is the number of significant decimal digits requested.
	Digits uint64
	// Bits is the binary precision equivalent to Digits.
	Bits uint64
	// Terms is the length of the binary splitting range [0, Terms).
	Terms uint64
	// PellTarget is the bound the √10005 convergent denominator must exceed.
	PellTarget *big.Int
}

// NewPrecision derives the precision targets for digits. digits must be
// positive.
func NewPrecision(digits uint64) Precision {
	exp := new(big.Int).SetUint64(digits/2 + PellGuardDigits)
	return Precision{
		Digits:     digits,
		Bits:       uint64(math.Ceil(float64(digits) * math.Log2(10))),
		Terms:      TermCount(digits),
		PellTarget: new(big.Int).Exp(big.NewInt(10), exp, nil),
	}
}

// TermCount returns the binary splitting range length for digits.
// The range [0, n) sums series terms 0..n, and the extra term keeps the
// truncation error below 10^-(digits+13) whatever the rounding of the
// floating-point estimate.
func TermCount(digits uint64) uint64 {
	return uint64(float64(digits)/DigitsPerTerm) + 1
}
