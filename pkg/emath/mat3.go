package emath

// 3x3 matrices, used for color transforms

import(
	"fmt"
	"math"

	"golang.org/x/image/math/f64"  // Will be "image/math/f64" at some point, hopefully make this file redundant
	"gonum.org/v1/gonum/mat"
)

// Use local types so we can hang methods off them. Mat3 is row-major.
type Vec3 f64.Vec3
type Mat3 f64.Mat3

// A SingularMatrixError means a color matrix can't be inverted. This
// is a configuration problem (bad calibration data), never something
// to recover from.
type SingularMatrixError struct {
	M   Mat3
	Det float64
}

func (e SingularMatrixError)Error() string {
	return fmt.Sprintf("matrix is singular (det=%g):\n%s", e.Det, e.M)
}

func Identity3() Mat3 {
	return Mat3{
		1, 0, 0,
		0, 1, 0,
		0, 0, 1,
	}
}

func (a Mat3)Mult(b Mat3) Mat3 {
	return Mat3{
		a[3*0+0]*b[3*0+0] + a[3*0+1]*b[3*1+0] + a[3*0+2]*b[3*2+0],
		a[3*0+0]*b[3*0+1] + a[3*0+1]*b[3*1+1] + a[3*0+2]*b[3*2+1],
		a[3*0+0]*b[3*0+2] + a[3*0+1]*b[3*1+2] + a[3*0+2]*b[3*2+2],

		a[3*1+0]*b[3*0+0] + a[3*1+1]*b[3*1+0] + a[3*1+2]*b[3*2+0],
		a[3*1+0]*b[3*0+1] + a[3*1+1]*b[3*1+1] + a[3*1+2]*b[3*2+1],
		a[3*1+0]*b[3*0+2] + a[3*1+1]*b[3*1+2] + a[3*1+2]*b[3*2+2],

		a[3*2+0]*b[3*0+0] + a[3*2+1]*b[3*1+0] + a[3*2+2]*b[3*2+0],
		a[3*2+0]*b[3*0+1] + a[3*2+1]*b[3*1+1] + a[3*2+2]*b[3*2+1],
		a[3*2+0]*b[3*0+2] + a[3*2+1]*b[3*1+2] + a[3*2+2]*b[3*2+2],
	}
}

// Apply computes m.v, so out[j] = sum_i m[j][i] * v[i]
func (m Mat3)Apply(v Vec3) Vec3 {
	return Vec3{
		(m[3*0+0]*v[0] + m[3*0+1]*v[1] + m[3*0+2]*v[2]),
	  (m[3*1+0]*v[0] + m[3*1+1]*v[1] + m[3*1+2]*v[2]),
	  (m[3*2+0]*v[0] + m[3*2+1]*v[1] + m[3*2+2]*v[2]),
	}
}

func (m Mat3)dense() *mat.Dense { return mat.NewDense(3, 3, m[:]) }

func (m Mat3)Det() float64 { return mat.Det(m.dense()) }

// Inverse hands the work off to gonum. A zero (or non-finite)
// determinant, or a matrix too ill-conditioned for gonum to invert,
// gets a SingularMatrixError.
func (m Mat3)Inverse() (Mat3, error) {
	det := m.Det()
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Mat3{}, SingularMatrixError{M: m, Det: det}
	}

	var inv mat.Dense
	if err := inv.Inverse(m.dense()); err != nil {
		return Mat3{}, SingularMatrixError{M: m, Det: det}
	}

	ret := Mat3{}
	for j:=0; j<3; j++ {
		for i:=0; i<3; i++ {
			ret[3*j+i] = inv.At(j, i)
		}
	}
	return ret, nil
}

// MaxAbsDiff is the largest elementwise difference between two matrices
func (a Mat3)MaxAbsDiff(b Mat3) float64 {
	max := 0.0
	for i:=0; i<9; i++ {
		if d := math.Abs(a[i] - b[i]); d > max { max = d }
	}
	return max
}

func (m Mat3)String() string {
	str := fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*0+0], m[3*0+1], m[3*0+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*1+0], m[3*1+1], m[3*1+2])
	str += fmt.Sprintf("[%10f, %10f, %10f]\n", m[3*2+0], m[3*2+1], m[3*2+2])
	return str
}
func (v Vec3)String() string {
	return fmt.Sprintf("[%12.10f, %12.10f, %12.10f]", v[0], v[1], v[2])
}

// Places the vector on the diagonal of a matrix
func (v Vec3)Diag() Mat3 {
	return Mat3{
		v[0],    0,    0,
		   0, v[1],    0,
		   0,    0, v[2],
	}
}

// Places the vector on the diagonal of a matrix, then inverts it
func (v Vec3)InvertDiag() Mat3 {
	return Mat3{
		1.0 / v[0],           0,           0,
		0,           1.0 / v[1],           0,
		0,                    0,  1.0 / v[2],
	}
}

func (v *Vec3)FloorAt(min float64) {
	if v[0] < min { v[0] = min }
	if v[1] < min { v[1] = min }
	if v[2] < min { v[2] = min }
}

func (v *Vec3)CeilingAt(max float64) {
	if v[0] > max { v[0] = max }
	if v[1] > max { v[1] = max }
	if v[2] > max { v[2] = max }
}
