package chudnovsky

import (
	"math/big"
	"testing"
)

func TestTermClosedForm(t *testing.T) {
	t.Parallel()
	tests := []struct {
		n       uint64
		p, q, t string
	}{
		{1, "5", "10939058860032000", "-2793657715"},
		{2, "231", "87512470880256000", "254994357387"},
		{3, "1105", "295354589220864000", "-1822158051155"},
	}
	for _, tt := range tests {
		got := Term(tt.n)
		if got.P.String() != tt.p || got.Q.String() != tt.q || got.T.String() != tt.t {
			t.Errorf("Term(%d) = (%s, %s, %s), want (%s, %s, %s)",
				tt.n, got.P, got.Q, got.T, tt.p, tt.q, tt.t)
		}
	}
}

// chudnovskySum returns Σ_{k=0}^{n} (-1)^k (6k)! (A+Bk) / ((3k)! (k!)³ C^(3k))
// evaluated term by term with factorials.
func chudnovskySum(n int64) *big.Rat {
	sum := new(big.Rat)
	c3 := new(big.Int).Exp(big.NewInt(SeriesC), big.NewInt(3), nil)
	for k := int64(0); k <= n; k++ {
		num := factorial(6 * k)
		num.Mul(num, big.NewInt(SeriesA+SeriesB*k))
		if k%2 == 1 {
			num.Neg(num)
		}
		kf := factorial(k)
		den := factorial(3 * k)
		den.Mul(den, kf)
		den.Mul(den, kf)
		den.Mul(den, kf)
		den.Mul(den, new(big.Int).Exp(c3, big.NewInt(k), nil))
		sum.Add(sum, new(big.Rat).SetFrac(num, den))
	}
	return sum
}

func factorial(n int64) *big.Int {
	if n == 0 {
		return big.NewInt(1)
	}
	return new(big.Int).MulRange(1, n)
}

// The triple over [0, n) encodes the partial sum of terms 0..n as
// (A·Q + T) / Q.
func TestLeafTriplesMatchBruteForceSum(t *testing.T) {
	t.Parallel()
	for n := uint64(1); n <= 3; n++ {
		root := foldTerms(0, n)
		num := new(big.Int).Mul(root.Q, bigA)
		num.Add(num, root.T)
		got := new(big.Rat).SetFrac(num, root.Q)

		if want := chudnovskySum(int64(n)); got.Cmp(want) != 0 {
			t.Errorf("n=%d: triple sum %s, brute force %s", n, got.FloatString(30), want.FloatString(30))
		}
	}
}

func TestTermLargeIndexDoesNotOverflow(t *testing.T) {
	t.Parallel()
	const n = 10_000_000
	got := Term(n)

	want := new(big.Int).SetUint64(2*n - 1)
	want.Mul(want, big.NewInt(6*n-1))
	want.Mul(want, big.NewInt(6*n-5))
	if got.P.Cmp(want) != 0 {
		t.Errorf("P(%d) = %s, want %s", n, got.P, want)
	}
	if got.T.Sign() != 1 {
		t.Errorf("T(%d) must be positive for even n", n)
	}
}
