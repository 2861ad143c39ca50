// Package mathx holds small generic numeric helpers.
package mathx

import "golang.org/x/exp/constraints"

// Clamp limits v to [lo, hi]. If lo > hi, the bounds are swapped.
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if hi < lo {
		lo, hi = hi, lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scale maps v in [0, 100] linearly onto [lo, hi], clamping v first.
func Scale[T constraints.Integer](v int, lo, hi T) T {
	v = Clamp(v, 0, 100)
	return lo + T(int64(hi-lo)*int64(v)/100)
}
