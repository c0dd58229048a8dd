package pixbuf

import(
	"fmt"
	"image"
	"image/color"

	"github.com/codahale/hdrhistogram"
	"github.com/fogleman/gg" // Move to https://pkg.go.dev/golang.org/x/image/font#Drawer sometime
	"gonum.org/v1/gonum/floats"

	"github.com/abworrall/jpg2raw/pkg/emath"
)

// Float is the working buffer for the pipeline. Values are nominally
// in [0,1], but intermediate stages can go outside that.
type Float struct {
	Rows, Cols int
	Pix        []float64
}

func NewFloat(rows, cols int) *Float {
	return &Float{Rows: rows, Cols: cols, Pix: make([]float64, rows*cols*Channels)}
}

func (f *Float)NewFromThis() *Float            { return NewFloat(f.Rows, f.Cols) }
func (f *Float)Validate() error                { return validate(f.Rows, f.Cols, Channels, len(f.Pix)) }
func (f *Float)Offset(row, col int) int        { return (row*f.Cols + col) * Channels }
func (f *Float)Sample(row, col, ch int) float64 { return f.Pix[f.Offset(row,col)+ch] }
func (f *Float)SetSample(row, col, ch int, v float64) { f.Pix[f.Offset(row,col)+ch] = v }

func (f *Float)Vec(row, col int) emath.Vec3 {
	i := f.Offset(row, col)
	return emath.Vec3{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

func (f *Float)SetVec(row, col int, v emath.Vec3) {
	i := f.Offset(row, col)
	f.Pix[i], f.Pix[i+1], f.Pix[i+2] = v[0], v[1], v[2]
}

func (f *Float)Copy() *Float {
	g := f.NewFromThis()
	copy(g.Pix, f.Pix)
	return g
}

func (f *Float)String() string {
	return fmt.Sprintf("float[%dx%dx%d]", f.Rows, f.Cols, Channels)
}

// CountOutOfRange counts the samples outside [min,max]
func (f *Float)CountOutOfRange(min, max float64) int {
	n := 0
	for _, v := range f.Pix {
		if v < min || v > max { n++ }
	}
	return n
}

const(
	statsScale = 10000  // histogram resolution, 1e-4
	statsMax   = 16.0   // samples above this are lumped in the top bucket
)

// Stats summarizes the samples. The percentiles come from a histogram over
// [0,statsMax], so negative samples count as zero there (min still shows them).
func (f *Float)Stats() string {
	if len(f.Pix) == 0 {
		return fmt.Sprintf("fb[%dx%d, empty]", f.Cols, f.Rows)
	}

	h := hdrhistogram.New(1, int64(statsMax*statsScale)+1, 3)
	for _, v := range f.Pix {
		h.RecordValue(int64(emath.Clamp(v, 0, statsMax)*statsScale) + 1)
	}
	pct := func(q float64) float64 { return float64(h.ValueAtQuantile(q)-1) / statsScale }

	return fmt.Sprintf("fb[%dx%d, vals{%f,%f}, p50=%.4f, p99=%.4f, outside[0,1]=%d]", f.Cols, f.Rows,
		floats.Min(f.Pix), floats.Max(f.Pix), pct(50), pct(99), f.CountOutOfRange(0, 1))
}

// ToImg saves a preview PNG, with the samples clamped to [0,1] and a title drawn on top.
func (f *Float)ToImg(title, filename string) error {
	img := image.NewRGBA64(image.Rectangle{Max:image.Point{f.Cols, f.Rows}})
	for row:=0; row<f.Rows; row++ {
		for col:=0; col<f.Cols; col++ {
			v := f.Vec(row, col)
			v.FloorAt(0.0)
			v.CeilingAt(1.0)
			img.Set(col, row, color.RGBA64{uint16(v[0] * 65535.0), uint16(v[1] * 65535.0), uint16(v[2] * 65535.0), 0xFFFF})
		}
	}

	dc := gg.NewContextForImage(img)
	dc.SetRGB(1,1,1)
	dc.DrawString(title, 10, 20)
	return dc.SavePNG(filename)
}
