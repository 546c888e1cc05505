package chudnovsky

import (
	"fmt"
	"math/big"
)

// Fraction is an unreduced rational Num/Den.
type Fraction struct {
	Num, Den *big.Int
}

// Rat returns the fraction as a normalized big.Rat. Normalization computes
// a GCD, so this is meant for tests and small values.
func (f Fraction) Rat() *big.Rat {
	return new(big.Rat).SetFrac(f.Num, f.Den)
}

var bigScale = big.NewInt(ScaleFactor)

// Assemble builds π ≈ 426880·X·Q / ((A·Q + T)·Y) from the root triple of
// [0, n) and a convergent X/Y of √10005. It consumes both arguments.
func Assemble(root PQT, sqrt Convergent) Fraction {
	num := new(big.Int).Mul(sqrt.X, bigScale)
	num.Mul(num, root.Q)

	den := root.Q.Mul(root.Q, bigA)
	den.Add(den, root.T)
	den.Mul(den, sqrt.Y)
	return Fraction{Num: num, Den: den}
}

// assemble is Assemble with the numerator and the denominator forked.
func (e *engine) assemble(root PQT, sqrt Convergent) (Fraction, error) {
	var num, den *big.Int
	err := e.pool.Join(
		func() error {
			x := new(big.Int).Mul(sqrt.X, bigScale)
			num = e.mul(x, x, root.Q)
			return nil
		},
		func() error {
			s := new(big.Int).Mul(root.Q, bigA)
			s.Add(s, root.T)
			den = e.mul(s, s, sqrt.Y)
			return nil
		},
	)
	if err != nil {
		return Fraction{}, err
	}
	return Fraction{Num: num, Den: den}, nil
}

// Render returns floor(f·10^(digits-1)) in decimal. For a value in [1, 10)
// such as π, that is its first digits significant digits, truncated, with
// no decimal point.
func Render(f Fraction, digits uint64) (string, error) {
	if digits == 0 {
		return "", ErrInvalidDigits
	}
	if f.Den == nil || f.Den.Sign() <= 0 || f.Num == nil || f.Num.Sign() <= 0 {
		return "", fmt.Errorf("chudnovsky: cannot render non-positive fraction")
	}
	scale := new(big.Int).Exp(big.NewInt(10), new(big.Int).SetUint64(digits-1), nil)
	q := scale.Mul(scale, f.Num)
	q.Quo(q, f.Den)
	return q.String(), nil
}
