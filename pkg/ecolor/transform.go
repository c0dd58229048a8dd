package ecolor

import(
	"github.com/abworrall/jpg2raw/pkg/emath"
)

// Transform maps a color through a 3x3 matrix, flooring each channel
// at zero (there is no such thing as negative light).
//   out[j] = max(sum_i m[j][i] * in[i], 0)
//
// The reverse pipeline hands in the inverse of the camera's combined
// white balance & color space matrix (TsTw); the forward pipeline
// hands in TsTw itself.
func Transform(m emath.Mat3, in emath.Vec3) emath.Vec3 {
	out := m.Apply(in)
	out.FloorAt(0.0)
	return out
}

