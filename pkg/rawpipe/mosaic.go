package rawpipe

import(
	"github.com/abworrall/jpg2raw/pkg/ecolor"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// Remosaic throws away the two channels that the sensor didn't sample
// at each pixel (see ecolor.BayerSite), leaving one value per pixel.
func Remosaic(in *pixbuf.Float, workers int) *pixbuf.Float {
	return applyPixelFunc(in, workers, ecolor.Remosaic)
}

// Demosaic is the forward pipeline's bilinear interpolation. Each
// missing channel is averaged from the nearest photosites of that
// color. The greens were halved by the remosaic, so they get doubled
// back. The one pixel border has no full neighbourhood and is copied
// through as-is.
func Demosaic(in *pixbuf.Float, workers int) *pixbuf.Float {
	out := in.Copy()
	if in.Rows < 3 || in.Cols < 3 {
		return out
	}

	at := func(row, col, ch int) float64 { return in.Sample(row, col, ch) }

	forEachRow(in.Rows, workers, func(row int) {
		if row == 0 || row == in.Rows-1 {
			return
		}
		for col:=1; col<in.Cols-1; col++ {
			var r, g, b float64

			switch ecolor.BayerSite(row, col) {
			case pixbuf.R:
				r = at(row, col, pixbuf.R)
				g = (at(row-1, col, pixbuf.G) + at(row+1, col, pixbuf.G) + at(row, col-1, pixbuf.G) + at(row, col+1, pixbuf.G)) / 2
				b = (at(row-1, col-1, pixbuf.B) + at(row-1, col+1, pixbuf.B) + at(row+1, col-1, pixbuf.B) + at(row+1, col+1, pixbuf.B)) / 4

			case pixbuf.B:
				r = (at(row-1, col-1, pixbuf.R) + at(row-1, col+1, pixbuf.R) + at(row+1, col-1, pixbuf.R) + at(row+1, col+1, pixbuf.R)) / 4
				g = (at(row-1, col, pixbuf.G) + at(row+1, col, pixbuf.G) + at(row, col-1, pixbuf.G) + at(row, col+1, pixbuf.G)) / 2
				b = at(row, col, pixbuf.B)

			default:
				// Green photosite. On even rows the reds are left & right, blues above & below; odd rows are the other way round.
				g = at(row, col, pixbuf.G) * 2
				if row%2 == 0 {
					r = (at(row, col-1, pixbuf.R) + at(row, col+1, pixbuf.R)) / 2
					b = (at(row-1, col, pixbuf.B) + at(row+1, col, pixbuf.B)) / 2
				} else {
					r = (at(row-1, col, pixbuf.R) + at(row+1, col, pixbuf.R)) / 2
					b = (at(row, col-1, pixbuf.B) + at(row, col+1, pixbuf.B)) / 2
				}
			}

			i := out.Offset(row, col)
			out.Pix[i+pixbuf.R], out.Pix[i+pixbuf.G], out.Pix[i+pixbuf.B] = r, g, b
		}
	})

	return out
}
