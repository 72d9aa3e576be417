package common

import "cmp"

// MapRange linearly maps v from [inLo, inHi] onto [outLo, outHi]. A
// degenerate input range maps everything onto outLo.
func MapRange(v, inLo, inHi, outLo, outHi float64) float64 {
	if inHi == inLo {
		return outLo
	}
	return outLo + (v-inLo)*(outHi-outLo)/(inHi-inLo)
}

// Constrain clamps v to [lo, hi].
func Constrain[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(v, hi))
}
