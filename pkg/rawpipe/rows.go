package rawpipe

import(
	"golang.org/x/sync/errgroup"

	"github.com/abworrall/jpg2raw/pkg/emath"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// A PixelFunc computes one output pixel from the input pixel at the same position
type PixelFunc func(row, col int, in emath.Vec3) emath.Vec3

// forEachRow calls fn for every row, spreading the rows over up to
// `workers` goroutines. fn must only write to its own row of the output.
func forEachRow(rows, workers int, fn func(row int)) {
	if workers <= 1 || rows < 2 {
		for row:=0; row<rows; row++ {
			fn(row)
		}
		return
	}

	var g errgroup.Group
	g.SetLimit(workers)
	for row:=0; row<rows; row++ {
		g.Go(func() error {
			fn(row)
			return nil
		})
	}
	g.Wait()
}

// applyPixelFunc returns a new buffer with pf applied to every pixel of `in`
func applyPixelFunc(in *pixbuf.Float, workers int, pf PixelFunc) *pixbuf.Float {
	out := in.NewFromThis()
	forEachRow(in.Rows, workers, func(row int) {
		for col:=0; col<in.Cols; col++ {
			out.SetVec(row, col, pf(row, col, in.Vec(row, col)))
		}
	})
	return out
}
