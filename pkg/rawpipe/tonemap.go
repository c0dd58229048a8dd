package rawpipe

import(
	"github.com/abworrall/jpg2raw/pkg/ecolor"
	"github.com/abworrall/jpg2raw/pkg/emath"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// InvertToneMap undoes the camera's tone curve, by looking up each
// channel in the measured inverse response table.
func InvertToneMap(in *pixbuf.Float, tc *ecolor.ToneCurve, workers int) *pixbuf.Float {
	return ToneMap(in, tc, workers)
}

// ToneMap is the same table lookup; which direction it goes depends
// only on which table is handed in.
func ToneMap(in *pixbuf.Float, tc *ecolor.ToneCurve, workers int) *pixbuf.Float {
	return applyPixelFunc(in, workers, func(_, _ int, c emath.Vec3) emath.Vec3 {
		return tc.Lookup(c)
	})
}
