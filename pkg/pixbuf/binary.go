package pixbuf

import(
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// The .bin container is what the imaging-pipeline simulators consume:
// three little-endian int32s (rows, cols, channels), then the samples
// as HWC uint8.

// MaxBinaryPixels bounds the shape a .bin header may claim, so a corrupt
// header can't ask for an absurd allocation.
const MaxBinaryPixels = 1 << 28

func ReadBinary(r io.Reader) (*Uint8, error) {
	var shape [3]int32
	if err := binary.Read(r, binary.LittleEndian, &shape); err != nil {
		return nil, fmt.Errorf("bin header: %v", err)
	}

	rows, cols, chans := int(shape[0]), int(shape[1]), int(shape[2])
	if rows <= 0 || cols <= 0 || chans != Channels || int64(rows)*int64(cols) > MaxBinaryPixels {
		return nil, ShapeMismatchError{Rows: rows, Cols: cols, Channels: chans}
	}

	u := NewUint8(rows, cols)
	if _, err := io.ReadFull(r, u.Pix); err != nil {
		return nil, fmt.Errorf("bin samples (%s): %v", u, err)
	}

	return u, nil
}

func WriteBinary(w io.Writer, u *Uint8) error {
	if err := u.Validate(); err != nil {
		return err
	}
	shape := [3]int32{int32(u.Rows), int32(u.Cols), Channels}
	if err := binary.Write(w, binary.LittleEndian, shape); err != nil {
		return fmt.Errorf("bin header: %v", err)
	}
	_, err := w.Write(u.Pix)
	return err
}

func ReadBinaryFile(filename string) (*Uint8, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("open+r '%s': %v", filename, err)
	}
	defer f.Close()
	return ReadBinary(f)
}

func WriteBinaryFile(u *Uint8, filename string) error {
	if writer, err := os.Create(filename); err != nil {
		return fmt.Errorf("open+w '%s': %v", filename, err)
	} else {
		defer writer.Close()
		return WriteBinary(writer, u)
	}
}
