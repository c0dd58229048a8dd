package emath

import(
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApply(t *testing.T) {
	m := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	assert.Equal(t, Vec3{14, 32, 50}, m.Apply(Vec3{1, 2, 3}))
	assert.Equal(t, Vec3{1, 2, 3}, Identity3().Apply(Vec3{1, 2, 3}))
}

func TestMultDiag(t *testing.T) {
	m := Mat3{
		1, 2, 3,
		4, 5, 6,
		7, 8, 9,
	}
	got := m.Mult(Vec3{1, 10, 100}.Diag())
	assert.Equal(t, Mat3{1, 20, 300, 4, 50, 600, 7, 80, 900}, got)
	assert.Equal(t, m, m.Mult(Identity3()))
}

func TestInverse(t *testing.T) {
	tests := []struct{
		name string
		m    Mat3
	}{
		{"identity", Identity3()},
		{"diagonal", Vec3{2, 4, 0.5}.Diag()},
		{"camera-ish", Mat3{
			 1.9,  -0.6, -0.3,
			-0.2,   1.5, -0.3,
			 0.05, -0.45, 1.4,
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inv, err := tc.m.Inverse()
			require.NoError(t, err)
			assert.InDelta(t, 0.0, tc.m.Mult(inv).MaxAbsDiff(Identity3()), 1e-12)
			assert.InDelta(t, 0.0, inv.Mult(tc.m).MaxAbsDiff(Identity3()), 1e-12)
		})
	}

	inv, err := Vec3{2, 4, 0.5}.Diag().Inverse()
	require.NoError(t, err)
	assert.InDelta(t, 0.0, inv.MaxAbsDiff(Vec3{2, 4, 0.5}.InvertDiag()), 1e-15)
}

func TestInverseSingular(t *testing.T) {
	for _, m := range []Mat3{
		{},
		{1, 2, 3, 2, 4, 6, 1, 1, 1},
	} {
		_, err := m.Inverse()
		require.Error(t, err)

		var sme SingularMatrixError
		require.True(t, errors.As(err, &sme))
		assert.Equal(t, 0.0, sme.Det)
	}
}

func TestFloorCeiling(t *testing.T) {
	v := Vec3{-1, 0.5, 2}
	v.FloorAt(0)
	assert.Equal(t, Vec3{0, 0.5, 2}, v)
	v.CeilingAt(1)
	assert.Equal(t, Vec3{0, 0.5, 1}, v)
}
