//go:build gmp

// This file adds a GMP multiplication backend, compiled only with the "gmp"
// build tag (go build -tags=gmp). It needs libgmp at build and run time:
//   - Linux: sudo apt-get install libgmp-dev
//   - macOS: brew install gmp

package chudnovsky

import (
	"context"
	"math/big"

	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/progress"
	"github.com/ncw/gmp"
)

// gmpMulThresholdBits is the operand size below which the conversion cost
// outweighs GMP's faster multiplication.
const gmpMulThresholdBits = 1 << 16

func init() {
	_ = RegisterCalculator("gmp", func() coreCalculator { return &GMPCalculator{} })
}

// GMPCalculator is ParallelCalculator with large products delegated to GMP.
type GMPCalculator struct{}

// Name returns the algorithm name.
func (c *GMPCalculator) Name() string {
	return "Chudnovsky (GMP)"
}

// CalculateCore implements coreCalculator.
func (c *GMPCalculator) CalculateCore(ctx context.Context, reporter progress.ProgressCallback, prec Precision, opts Options) (*Result, error) {
	pool := parallel.NewPool(opts.Workers)
	return newEngine(pool, opts.ParallelThreshold, gmpMul).run(ctx, reporter, prec)
}

func gmpMul(z, x, y *big.Int) *big.Int {
	if x.BitLen() < gmpMulThresholdBits || y.BitLen() < gmpMulThresholdBits {
		return z.Mul(x, y)
	}
	gx, gy := toGMP(x), toGMP(y)
	gx.Mul(gx, gy)
	return fromGMP(z, gx)
}

func toGMP(x *big.Int) *gmp.Int {
	g := new(gmp.Int).SetBytes(x.Bytes())
	if x.Sign() < 0 {
		g.Neg(g)
	}
	return g
}

func fromGMP(z *big.Int, g *gmp.Int) *big.Int {
	neg := g.Sign() < 0
	z.SetBytes(g.Bytes())
	if neg {
		z.Neg(z)
	}
	return z
}
