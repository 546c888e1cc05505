package chudnovsky

import "math/big"

// Merge combines the triples of two adjacent ranges [n1,m) and [m,n2) into
// the triple of [n1,n2):
//
//	P = P1·P2
//	Q = Q1·Q2
//	T = T1·Q2 + P1·T2
//
// Merge consumes both arguments and reuses their storage.
func Merge(left, right PQT) PQT {
	return mergeWith(bigMul, left, right)
}

func mergeWith(mul multiplier, left, right PQT) PQT {
	t := mul(new(big.Int), left.T, right.Q)
	right.T = mul(right.T, left.P, right.T)
	t.Add(t, right.T)
	left.P = mul(left.P, left.P, right.P)
	left.Q = mul(left.Q, left.Q, right.Q)
	return PQT{P: left.P, Q: left.Q, T: t}
}

// mergeForked computes the four products of a merge as independent tasks
// and adds the two halves of T once they are joined.
func mergeForked(mul multiplier, fork func(...func() error) error, left, right PQT) (PQT, error) {
	var p, q, t1, t2 *big.Int
	err := runMulTasks(mul, fork, []mulTask{
		{dest: &p, a: left.P, b: right.P},
		{dest: &q, a: left.Q, b: right.Q},
		{dest: &t1, a: left.T, b: right.Q},
		{dest: &t2, a: left.P, b: right.T},
	})
	if err != nil {
		return PQT{}, err
	}
	return PQT{P: p, Q: q, T: t1.Add(t1, t2)}, nil
}
