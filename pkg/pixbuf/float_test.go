package pixbuf

import(
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyIsDeep(t *testing.T) {
	f := NewFloat(2, 2)
	f.Pix[0] = 0.25
	c := f.Copy()
	c.Pix[0] = 0.75
	assert.Equal(t, 0.25, f.Pix[0])
}

func TestCountOutOfRange(t *testing.T) {
	f := NewFloat(1, 2)
	copy(f.Pix, []float64{-0.1, 0, 1, 1.01, 0.5, 0.5})
	assert.Equal(t, 2, f.CountOutOfRange(0, 1))
}

func TestStats(t *testing.T) {
	f := NewFloat(10, 10)
	for i := range f.Pix {
		f.Pix[i] = 0.5
	}
	f.Pix[0] = -1
	s := f.Stats()
	assert.Contains(t, s, "p50=0.50")
	assert.Contains(t, s, "outside[0,1]=1")

	assert.Contains(t, (&Float{}).Stats(), "empty")
}

func TestDumps(t *testing.T) {
	dir := t.TempDir()
	f := NewFloat(16, 24)
	for i := range f.Pix {
		f.Pix[i] = float64(i%7) / 3.0
	}

	require.NoError(t, f.ToImg("preview", filepath.Join(dir, "f.png")))
	require.NoError(t, WriteHDR(f, filepath.Join(dir, "f.hdr")))

	for _, name := range []string{"f.png", "f.hdr"} {
		st, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Greater(t, st.Size(), int64(0))
	}

	// The preview is clamped, but still has the buffer's shape
	u, _, err := LoadFile(filepath.Join(dir, "f.png"))
	require.NoError(t, err)
	assert.Equal(t, 16, u.Rows)
	assert.Equal(t, 24, u.Cols)
}
