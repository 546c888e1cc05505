package chudnovsky

import (
	"context"
	"fmt"
	"math/big"

	"github.com/agbru/picalc/internal/parallel"
)

// Convergent is a rational approximation X/Y of √10005.
type Convergent struct {
	X, Y *big.Int
}

var bigRadicand = big.NewInt(Radicand)

// pellSeeds returns the two starting convergents: the trivial solution
// (1, 0) and the fundamental solution (4001, 40) of X² - 10005·Y² = 1.
func pellSeeds() (Convergent, Convergent) {
	return Convergent{X: big.NewInt(1), Y: big.NewInt(0)},
		Convergent{X: big.NewInt(4001), Y: big.NewInt(40)}
}

// Sqrt returns a convergent of √10005 whose denominator exceeds target,
// along with the number of doubling steps it took. The products of each
// step are forked on pool.
func Sqrt(ctx context.Context, pool *parallel.Pool, target *big.Int) (Convergent, int, error) {
	if target == nil || target.Sign() <= 0 {
		return Convergent{}, 0, fmt.Errorf("chudnovsky: invalid Pell target %v", target)
	}
	return newEngine(pool, 0, nil).sqrt(ctx, target)
}

// sqrt combines the last two convergents until the denominator passes
// target. Combining solutions of exponents i and j yields exponent i+j, so
// the exponent follows the Fibonacci sequence and the loop runs a number of
// times logarithmic in the digits of target.
func (e *engine) sqrt(ctx context.Context, target *big.Int) (Convergent, int, error) {
	prev, cur := pellSeeds()
	for iter := 1; ; iter++ {
		if err := ctx.Err(); err != nil {
			return Convergent{}, iter - 1, err
		}
		next, err := e.combine(prev, cur)
		if err != nil {
			return Convergent{}, iter, err
		}
		if next.Y.Cmp(target) > 0 {
			return next, iter, nil
		}
		prev, cur = cur, next
	}
}

// combine returns the Brahmagupta composition of two convergents:
//
//	X = Xa·Xb + D·Ya·Yb
//	Y = Xa·Yb + Ya·Xb
func (e *engine) combine(a, b Convergent) (Convergent, error) {
	var xx, yy, xy, yx *big.Int
	err := runMulTasks(e.mul, e.pool.Join, []mulTask{
		{dest: &xx, a: a.X, b: b.X},
		{dest: &yy, a: a.Y, b: b.Y},
		{dest: &xy, a: a.X, b: b.Y},
		{dest: &yx, a: a.Y, b: b.X},
	})
	if err != nil {
		return Convergent{}, err
	}
	yy.Mul(yy, bigRadicand)
	return Convergent{X: xx.Add(xx, yy), Y: xy.Add(xy, yx)}, nil
}

// PellNorm returns X² - 10005·Y², which is 1 for every convergent Sqrt
// produces.
func PellNorm(c Convergent) *big.Int {
	x2 := new(big.Int).Mul(c.X, c.X)
	y2 := new(big.Int).Mul(c.Y, c.Y)
	y2.Mul(y2, bigRadicand)
	return x2.Sub(x2, y2)
}
