package mathx

import "golang.org/x/exp/constraints"

// SatSub returns a-b, or 0 when b >= a. The second result reports whether a non-zero b
// swallowed all of a.
func SatSub[T constraints.Unsigned](a, b T) (T, bool) {
	if b >= a {
		return 0, b > 0
	}
	return a - b, false
}
