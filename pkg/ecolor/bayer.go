package ecolor

import(
	"github.com/abworrall/jpg2raw/pkg/emath"
)

// The sensor's color filter array, a 2x2 tile:
//   G R
//   B G
// BayerSite returns which channel (0=R, 1=G, 2=B) the photosite at (row,col) records.
func BayerSite(row, col int) int {
	switch {
	case row%2 == 0 && col%2 == 1: return 0
	case row%2 == 1 && col%2 == 0: return 2
	default:                       return 1
	}
}

// Remosaic keeps only the channel sampled at (row,col), zeroing the
// other two. Green photosites get halved: the forward pipeline's
// demosaic doubles green (there are two of them per tile), so we undo
// that here.
func Remosaic(row, col int, in emath.Vec3) emath.Vec3 {
	out := BayerMask(row, col, in)
	out[1] /= 2.0
	return out
}

// BayerMask zeroes the two channels not sampled at (row,col), and leaves
// the sampled one alone.
func BayerMask(row, col int, in emath.Vec3) emath.Vec3 {
	out := emath.Vec3{}
	ch := BayerSite(row, col)
	out[ch] = in[ch]
	return out
}
