package chudnovsky

import (
	"math/big"
)

// piDigits101 is π to 101 significant digits, without the decimal point.
const piDigits101 = "31415926535897932384626433832795028841971693993751058209749445923078164062862089986280348253421170679"

// pi100 is π to 100 significant digits.
var pi100 = piDigits101[:100]

var bigOne = big.NewInt(1)

// foldTerms returns the triple for [n1, n2) merged strictly left to right.
func foldTerms(n1, n2 uint64) PQT {
	acc := Term(n1 + 1)
	for n := n1 + 2; n <= n2; n++ {
		acc = Merge(acc, Term(n))
	}
	return acc
}

func equalPQT(a, b PQT) bool {
	return a.P.Cmp(b.P) == 0 && a.Q.Cmp(b.Q) == 0 && a.T.Cmp(b.T) == 0
}

// machinPi returns π truncated to digits significant digits using
// π = 16·arctan(1/5) - 4·arctan(1/239) in fixed point.
func machinPi(digits int) string {
	const guard = 10
	ten := big.NewInt(10)
	unity := new(big.Int).Exp(ten, big.NewInt(int64(digits-1+guard)), nil)
	pi := new(big.Int).Mul(arccot(5, unity), big.NewInt(4))
	pi.Sub(pi, arccot(239, unity))
	pi.Mul(pi, big.NewInt(4))
	pi.Quo(pi, new(big.Int).Exp(ten, big.NewInt(guard), nil))
	return pi.String()
}

func arccot(x int64, unity *big.Int) *big.Int {
	bx := big.NewInt(x)
	x2 := big.NewInt(x * x)
	sum := new(big.Int).Quo(unity, bx)
	xpow := new(big.Int).Set(sum)
	term := new(big.Int)
	sign := -1
	for n := int64(3); xpow.Sign() != 0; n += 2 {
		xpow.Quo(xpow, x2)
		term.Quo(xpow, big.NewInt(n))
		if sign < 0 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
		sign = -sign
	}
	return sum
}
