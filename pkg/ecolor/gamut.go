package ecolor

import(
	"fmt"
	"math"

	"github.com/abworrall/jpg2raw/pkg/emath"
)

// A GamutModel is a radial basis function interpolant fitted to the
// camera's calibration measurements:
//   out[j] = sum_k |c - cp[k]| * w[k][j]  +  p[0][j] + p[1][j]*c0 + p[2][j]*c1 + p[3][j]*c2
//
// Evaluating it costs O(N) per pixel; with N in the thousands this is
// by far the most expensive step in the pipeline.
type GamutModel struct {
	ControlPoints []emath.Vec3
	Weights       []emath.Vec3
	Coefs         [4]emath.Vec3  // constant term, then the linear terms for c0, c1, c2
}

func (gm GamutModel)NumControlPoints() int { return len(gm.ControlPoints) }

func (gm GamutModel)Validate() error {
	if len(gm.ControlPoints) == 0 {
		return fmt.Errorf("gamut model has no control points")
	}
	if len(gm.ControlPoints) != len(gm.Weights) {
		return fmt.Errorf("gamut model has %d control points but %d weights",
			len(gm.ControlPoints), len(gm.Weights))
	}
	return nil
}

func (gm GamutModel)String() string {
	return fmt.Sprintf("GamutModel[%d control points, coefs %s %s %s %s]", len(gm.ControlPoints),
		gm.Coefs[0], gm.Coefs[1], gm.Coefs[2], gm.Coefs[3])
}

// Eval runs the model for a single color
func (gm *GamutModel)Eval(c emath.Vec3) emath.Vec3 {
	out := emath.Vec3{}

	for k := range gm.ControlPoints {
		cp := &gm.ControlPoints[k]
		d0, d1, d2 := c[0]-cp[0], c[1]-cp[1], c[2]-cp[2]
		dist := math.Sqrt(d0*d0 + d1*d1 + d2*d2)

		w := &gm.Weights[k]
		out[0] += dist * w[0]
		out[1] += dist * w[1]
		out[2] += dist * w[2]
	}

	// Add on the polynomial (affine) part
	p := &gm.Coefs
	for j:=0; j<3; j++ {
		out[j] += p[0][j] + p[1][j]*c[0] + p[2][j]*c[1] + p[3][j]*c[2]
	}

	return out
}

// PassthroughGamutModel is a single control point with zero weight and an
// identity polynomial, so Eval(c) == c.
func PassthroughGamutModel() GamutModel {
	return GamutModel{
		ControlPoints: []emath.Vec3{{0, 0, 0}},
		Weights:       []emath.Vec3{{0, 0, 0}},
		Coefs: [4]emath.Vec3{
			{0, 0, 0},
			{1, 0, 0},
			{0, 1, 0},
			{0, 0, 1},
		},
	}
}
