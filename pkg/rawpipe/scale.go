package rawpipe

import(
	"github.com/abworrall/jpg2raw/pkg/emath"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// Scale maps 8-bit samples onto [0,1]
func Scale(in *pixbuf.Uint8) *pixbuf.Float {
	out := pixbuf.NewFloat(in.Rows, in.Cols)
	for i, v := range in.Pix {
		out.Pix[i] = float64(v) / 255.0
	}
	return out
}

// Descale maps [0,1] back to 8-bit samples, truncating. Anything outside
// [0,1] is clamped; noise and interpolation overshoot a little all the
// time, so this isn't an error.
func Descale(in *pixbuf.Float) *pixbuf.Uint8 {
	out := pixbuf.NewUint8(in.Rows, in.Cols)
	for i, v := range in.Pix {
		out.Pix[i] = descaleSample(v)
	}
	return out
}

func descaleSample(v float64) uint8 { return uint8(emath.Quantize8(v)) }
