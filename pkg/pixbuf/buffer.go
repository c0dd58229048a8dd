package pixbuf

// Pixel buffers: rows x cols x 3, stored row-major with the channels
// interleaved (HWC). Row/col are what the rest of the pipeline talks in;
// the image.Image adapters translate to x/y.

import(
	"fmt"
)

const Channels = 3

// Channel indices
const(
	R = 0
	G = 1
	B = 2
)

// A ShapeMismatchError means a buffer isn't the HxWx3 thing a stage
// expects.
type ShapeMismatchError struct {
	Rows, Cols, Channels int
	Len                  int // length of the sample slice we were given
}

func (e ShapeMismatchError)Error() string {
	return fmt.Sprintf("buffer shape mismatch: %dx%dx%d (want %d channels), but %d samples",
		e.Rows, e.Cols, e.Channels, Channels, e.Len)
}

func validate(rows, cols, chans, n int) error {
	if rows <= 0 || cols <= 0 || chans != Channels || n != rows*cols*chans {
		return ShapeMismatchError{Rows: rows, Cols: cols, Channels: chans, Len: n}
	}
	return nil
}

// Uint8 is the device-native buffer, samples in [0,255]
type Uint8 struct {
	Rows, Cols int
	Pix        []uint8
}

func NewUint8(rows, cols int) *Uint8 {
	return &Uint8{Rows: rows, Cols: cols, Pix: make([]uint8, rows*cols*Channels)}
}

func (u *Uint8)Validate() error            { return validate(u.Rows, u.Cols, Channels, len(u.Pix)) }
func (u *Uint8)Offset(row, col int) int    { return (row*u.Cols + col) * Channels }
func (u *Uint8)Sample(row, col, ch int) uint8 { return u.Pix[u.Offset(row,col)+ch] }
func (u *Uint8)SetSample(row, col, ch int, v uint8) { u.Pix[u.Offset(row,col)+ch] = v }

func (u *Uint8)String() string {
	return fmt.Sprintf("uint8[%dx%dx%d]", u.Rows, u.Cols, Channels)
}
