package ecolor

import(
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/jpg2raw/pkg/emath"
)

func TestToneCurveLookup(t *testing.T) {
	tc := LinearToneCurve()
	for x:=0; x<256; x++ {
		v := float64(x) / 255.0
		assert.Equal(t, emath.Vec3{v, v, v}, tc.Lookup(emath.Vec3{v, v, v}))
	}

	// Each channel uses its own column of the table
	tc[255] = emath.Vec3{10, 20, 30}
	tc[0] = emath.Vec3{-1, -2, -3}
	assert.Equal(t, emath.Vec3{10, 20, -3}, tc.Lookup(emath.Vec3{1.0, 1.7, -0.4}))
}

func TestGamutModelPassthrough(t *testing.T) {
	gm := PassthroughGamutModel()
	require.NoError(t, gm.Validate())

	c := emath.Vec3{0.1, 0.7, 0.33}
	assert.Equal(t, c, gm.Eval(c))
}

func TestGamutModelEval(t *testing.T) {
	gm := GamutModel{
		ControlPoints: []emath.Vec3{{0, 0, 0}, {1, 1, 1}},
		Weights:       []emath.Vec3{{1, 0, 0}, {0, 0, 2}},
		Coefs:         [4]emath.Vec3{{0.5, 0.5, 0.5}},
	}

	// Distance to (0,0,0) is 1, to (1,1,1) is sqrt(2)
	out := gm.Eval(emath.Vec3{1, 0, 0})
	assert.InDelta(t, 1.5, out[0], 1e-12)
	assert.InDelta(t, 0.5, out[1], 1e-12)
	assert.InDelta(t, 0.5+2*1.4142135623730951, out[2], 1e-12)
}

func TestGamutModelAffineOnly(t *testing.T) {
	gm := GamutModel{
		ControlPoints: []emath.Vec3{{0.9, 0.1, 0.4}},
		Weights:       []emath.Vec3{{0, 0, 0}},
		Coefs: [4]emath.Vec3{
			{0.5, -0.25, 0.125},
			{1, 0, 2},
			{0.5, 1, 0},
			{0, -1, 0.25},
		},
	}
	require.NoError(t, gm.Validate())

	assert.Equal(t, emath.Vec3{1, -0.75, 0.875}, gm.Eval(emath.Vec3{0.25, 0.5, 1}))
	assert.Equal(t, emath.Vec3{0.5, -0.25, 0.125}, gm.Eval(emath.Vec3{0, 0, 0}))
}

func TestGamutModelValidate(t *testing.T) {
	assert.Error(t, GamutModel{}.Validate())
	assert.Error(t, GamutModel{
		ControlPoints: make([]emath.Vec3, 3),
		Weights:       make([]emath.Vec3, 2),
	}.Validate())
}

func TestTransform(t *testing.T) {
	m := emath.Mat3{
		1, -1, 0,
		0, 2, 0,
		0, 0, -1,
	}
	assert.Equal(t, emath.Vec3{0, 1, 0}, Transform(m, emath.Vec3{0.25, 0.5, 0.75}))
}

func TestBayer(t *testing.T) {
	// G R
	// B G
	assert.Equal(t, 1, BayerSite(0, 0))
	assert.Equal(t, 0, BayerSite(0, 1))
	assert.Equal(t, 2, BayerSite(1, 0))
	assert.Equal(t, 1, BayerSite(1, 1))
	assert.Equal(t, BayerSite(1, 0), BayerSite(7, 4))

	white := emath.Vec3{1, 1, 1}
	assert.Equal(t, emath.Vec3{0, 0.5, 0}, Remosaic(0, 0, white))
	assert.Equal(t, emath.Vec3{1, 0, 0}, Remosaic(0, 1, white))
	assert.Equal(t, emath.Vec3{0, 0, 1}, Remosaic(1, 0, white))
	assert.Equal(t, emath.Vec3{0, 0.5, 0}, Remosaic(1, 1, white))

	c := emath.Vec3{0.3, 0.6, 0.9}
	for row:=0; row<4; row++ {
		for col:=0; col<4; col++ {
			once := BayerMask(row, col, c)
			assert.Equal(t, once, BayerMask(row, col, once))
			assert.Equal(t, BayerMask(row, col, Remosaic(row, col, c)), Remosaic(row, col, c))
		}
	}
}
