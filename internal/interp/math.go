package interp

import "golang.org/x/exp/constraints"

func Lerp[F constraints.Float](a, b, t F) F {
	return a + (b-a)*t
}

// InvLerp returns where v sits between a and b; a != b.
func InvLerp[F constraints.Float](a, b, v F) F {
	return (v - a) / (b - a)
}

func Clamp[N constraints.Integer | constraints.Float](n, minN, maxN N) N {
	n = min(n, maxN)
	n = max(n, minN)

	return n
}
