package rawpipe

import(
	"github.com/abworrall/jpg2raw/pkg/ecolor"
	"github.com/abworrall/jpg2raw/pkg/emath"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// InvertColorTransform applies the already-inverted white balance &
// color space matrix, flooring at zero.
func InvertColorTransform(in *pixbuf.Float, inv emath.Mat3, workers int) *pixbuf.Float {
	return ColorTransform(in, inv, workers)
}

func ColorTransform(in *pixbuf.Float, m emath.Mat3, workers int) *pixbuf.Float {
	return applyPixelFunc(in, workers, func(_, _ int, c emath.Vec3) emath.Vec3 {
		return ecolor.Transform(m, c)
	})
}
