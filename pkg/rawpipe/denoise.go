package rawpipe

import(
	"sort"

	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// Denoise is a 3x3 median filter, per channel. Border pixels are copied through.
func Denoise(in *pixbuf.Float, workers int) *pixbuf.Float {
	out := in.Copy()
	if in.Rows < 3 || in.Cols < 3 {
		return out
	}

	forEachRow(in.Rows, workers, func(row int) {
		if row == 0 || row == in.Rows-1 {
			return
		}
		var window [9]float64
		for col:=1; col<in.Cols-1; col++ {
			for ch:=0; ch<pixbuf.Channels; ch++ {
				n := 0
				for r:=row-1; r<=row+1; r++ {
					for c:=col-1; c<=col+1; c++ {
						window[n] = in.Sample(r, c, ch)
						n++
					}
				}
				sort.Float64s(window[:])
				out.SetSample(row, col, ch, window[4])
			}
		}
	})

	return out
}
