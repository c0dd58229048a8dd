package pixbuf

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/rwcarlsen/goexif/exif"
	"golang.org/x/image/tiff"
)

// Metadata is whatever we could learn about the camera from the file
type Metadata struct {
	Make        string
	CameraModel string // The EXIF Model tag, e.g. "NIKON D7000"; empty if no EXIF
}

// IsImageFile says whether LoadFile knows what to do with the filename
func IsImageFile(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff", ".bin":
		return true
	}
	return false
}

// LoadFile decodes an image file into a Uint8 buffer, picking the
// decoder from the file extension.
func LoadFile(filename string) (*Uint8, Metadata, error) {
	md := Metadata{}
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == ".bin" {
		u, err := ReadBinaryFile(filename)
		return u, md, err
	}

	// First, try to load the EXIF metadata. Plenty of images don't have any, which is fine.
	if ext == ".jpg" || ext == ".jpeg" || ext == ".tif" || ext == ".tiff" {
		md = loadExif(filename)
	}

	var decode func(f *os.File) (image.Image, error)
	switch ext {
	case ".png":           decode = func(f *os.File) (image.Image, error) { return png.Decode(f) }
	case ".jpg", ".jpeg":  decode = func(f *os.File) (image.Image, error) { return jpeg.Decode(f) }
	case ".tif", ".tiff":  decode = func(f *os.File) (image.Image, error) { return tiff.Decode(f) }
	default:
		return nil, md, fmt.Errorf("'%s': unhandled image type '%s'", filename, ext)
	}

	// Re-open the file, now for the image data
	if reader, err := os.Open(filename); err != nil {
		return nil, md, fmt.Errorf("open+r img '%s': %v", filename, err)
	} else {
		defer reader.Close()
		img, err := decode(reader)
		if err != nil {
			return nil, md, fmt.Errorf("%s loading '%s': %v", ext, filename, err)
		}
		return FromImage(img), md, nil
	}
}

func loadExif(filename string) Metadata {
	md := Metadata{}

	reader, err := os.Open(filename)
	if err != nil {
		return md
	}
	defer reader.Close()

	ex, err := exif.Decode(reader)
	if err != nil {
		return md
	}

	if tag, err := ex.Get(exif.Model); err == nil {
		if val, err := tag.StringVal(); err == nil {
			md.CameraModel = strings.TrimSpace(val)
		}
	}
	if tag, err := ex.Get(exif.Make); err == nil {
		if val, err := tag.StringVal(); err == nil {
			md.Make = strings.TrimSpace(val)
		}
	}

	return md
}

// SaveFile writes the buffer as PNG, or as the .bin container if that's the extension
func SaveFile(u *Uint8, filename string) error {
	if strings.ToLower(filepath.Ext(filename)) == ".bin" {
		return WriteBinaryFile(u, filename)
	}
	return WritePNG(u, filename)
}
