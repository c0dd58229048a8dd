package pixbuf

import(
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Grayscale replaces each pixel with a neutral gray of the same
// luminance (CIE Y), assuming the buffer holds sRGB.
func Grayscale(in *Uint8) *Uint8 {
	out := NewUint8(in.Rows, in.Cols)

	for row:=0; row<in.Rows; row++ {
		for col:=0; col<in.Cols; col++ {
			c, _ := colorful.MakeColor(in.At(col, row))
			_, lum, _ := c.Xyz()
			gray, _, _ := colorful.LinearRgb(lum, lum, lum).Clamped().RGB255()

			i := out.Offset(row, col)
			out.Pix[i+R], out.Pix[i+G], out.Pix[i+B] = gray, gray, gray
		}
	}

	return out
}
