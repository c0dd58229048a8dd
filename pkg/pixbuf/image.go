package pixbuf

// A few helpers to get buffers in and out of golang's image libraries

import(
	"fmt"
	"image"
	"image/color"
	"image/png"
	"log"
	"os"

	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
)

// Implement image.Image, so Uint8 buffers can go straight to an encoder
func (u *Uint8)ColorModel() color.Model  { return color.RGBAModel }
func (u *Uint8)Bounds() image.Rectangle  { return image.Rect(0, 0, u.Cols, u.Rows) }
func (u *Uint8)At(x, y int) color.Color {
	i := u.Offset(y, x)
	return color.RGBA{u.Pix[i], u.Pix[i+1], u.Pix[i+2], 0xFF}
}

// Implement hdr.Image (a superset of image.Image), so that intermediate
// stages can be written out with their unbounded values intact.
func (f *Float)ColorModel() color.Model        { return hdrcolor.RGBModel }
func (f *Float)Bounds() image.Rectangle        { return image.Rect(0, 0, f.Cols, f.Rows) }
func (f *Float)At(x, y int) color.Color        { return f.HDRAt(x, y) }
func (f *Float)HDRAt(x, y int) hdrcolor.Color {
	v := f.Vec(y, x)
	return hdrcolor.RGB{R: v[0], G: v[1], B: v[2]}
}
func (f *Float)Size() int                      { return f.Rows * f.Cols }

var _ hdr.Image = &Float{}

// FromImage copies any image.Image into a Uint8 buffer, dropping alpha.
func FromImage(img image.Image) *Uint8 {
	b := img.Bounds()
	u := NewUint8(b.Dy(), b.Dx())

	for row:=0; row<u.Rows; row++ {
		for col:=0; col<u.Cols; col++ {
			r, g, bl, _ := img.At(b.Min.X + col, b.Min.Y + row).RGBA()
			i := u.Offset(row, col)
			u.Pix[i+R] = uint8(r >> 8)
			u.Pix[i+G] = uint8(g >> 8)
			u.Pix[i+B] = uint8(bl >> 8)
		}
	}

	return u
}

func WritePNG(img image.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return png.Encode(writer, img)
	}
}

// WriteHDR outputs a Radiance RGBE image. You can load this into photoshop or other HDR tools.
func WriteHDR(img hdr.Image, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("WriteHDR, open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		err := rgbe.Encode(writer, img)
		if err != nil {
			log.Printf("WriteHDR, encoding RGBE file: %v\n", err)
		}
		return err
	}
}
