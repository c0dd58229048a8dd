package rawpipe

import(
	"github.com/abworrall/jpg2raw/pkg/ecolor"
	"github.com/abworrall/jpg2raw/pkg/emath"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// A GamutMapper runs a GamutModel over every pixel in a buffer. This is
// where nearly all the pipeline's time goes, so there are a few ways
// to do it; they all compute exactly the same per-pixel formula
// (ecolor.GamutModel.Eval).
type GamutMapper interface {
	Map(in *pixbuf.Float) *pixbuf.Float
}

// NaiveGamutMapper walks the pixels one at a time on a single goroutine
type NaiveGamutMapper struct {
	Model *ecolor.GamutModel
}

func (m NaiveGamutMapper)Map(in *pixbuf.Float) *pixbuf.Float {
	out := in.NewFromThis()
	for row:=0; row<in.Rows; row++ {
		for col:=0; col<in.Cols; col++ {
			out.SetVec(row, col, m.Model.Eval(in.Vec(row, col)))
		}
	}
	return out
}

func (m NaiveGamutMapper)String() string { return "naive" }

// ParallelGamutMapper spreads rows across goroutines
type ParallelGamutMapper struct {
	Model   *ecolor.GamutModel
	Workers int
}

func (m ParallelGamutMapper)Map(in *pixbuf.Float) *pixbuf.Float {
	return applyPixelFunc(in, m.Workers, func(_, _ int, c emath.Vec3) emath.Vec3 {
		return m.Model.Eval(c)
	})
}

func (m ParallelGamutMapper)String() string { return "parallel" }
