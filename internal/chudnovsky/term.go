package chudnovsky

import "math/big"

// PQT holds the binary splitting accumulators for one index range.
// A triple owns its integers: once passed to Merge it must not be reused.
type PQT struct {
	P, Q, T *big.Int
}

var (
	bigA        = big.NewInt(SeriesA)
	bigC3Over24 = new(big.Int).SetUint64(SeriesC3Over24)
)

// Term returns the triple for the single-index range [n-1, n).
//
//	P(n) = (2n-1)(6n-1)(6n-5)
//	Q(n) = (C³/24)·n³
//	T(n) = (-1)^n·(A + B·n)·P(n)
//
// n must be at least 1.
func Term(n uint64) PQT {
	var f big.Int

	p := new(big.Int).SetUint64(2*n - 1)
	p.Mul(p, f.SetUint64(6*n-1))
	p.Mul(p, f.SetUint64(6*n-5))

	q := new(big.Int).SetUint64(n)
	q.Mul(q, q)
	q.Mul(q, f.SetUint64(n))
	q.Mul(q, bigC3Over24)

	t := new(big.Int).SetUint64(SeriesB)
	t.Mul(t, f.SetUint64(n))
	t.Add(t, bigA)
	t.Mul(t, p)
	if n&1 == 1 {
		t.Neg(t)
	}

	return PQT{P: p, Q: q, T: t}
}
