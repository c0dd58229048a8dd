package emath

import "math"

// Some functions that only operate on basic types, that are useful

func Clamp(f, min, max float64) float64 {
	if f < min { return min }
	if f > max { return max }
	return f
}

// quantGuard absorbs the round-off in x/255*255, which can land a hair
// under x and would otherwise floor down a whole level.
const quantGuard = 1e-9

// Quantize8 maps a unit float onto an 8-bit level: floor(f*255),
// clamped to [0,255]. A NaN lands on 0.
func Quantize8(f float64) int {
	if math.IsNaN(f) {
		return 0
	}
	x := math.Floor(f*255.0 + quantGuard)
	if x < 0 { return 0 }
	if x > 255 { return 255 }
	return int(x)
}
