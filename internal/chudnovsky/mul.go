package chudnovsky

import "math/big"

// multiplier sets z = x·y and returns z. z may alias x or y.
type multiplier func(z, x, y *big.Int) *big.Int

func bigMul(z, x, y *big.Int) *big.Int {
	return z.Mul(x, y)
}

// mulTask is one product of a merge or Pell doubling step.
type mulTask struct {
	dest **big.Int
	a, b *big.Int
}

// runMulTasks evaluates every product through fork, which is either a
// pool join or a sequential loop.
func runMulTasks(mul multiplier, fork func(...func() error) error, tasks []mulTask) error {
	fns := make([]func() error, len(tasks))
	for i := range tasks {
		task := &tasks[i]
		fns[i] = func() error {
			*task.dest = mul(new(big.Int), task.a, task.b)
			return nil
		}
	}
	return fork(fns...)
}
