package camcal

import(
	"fmt"
	"os"
	"strings"
	"unicode"
)

func normalizeModelName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		return -1
	}, s)
}

// ResolveCameraModel finds the directory under modelDir for a camera
// name as the camera writes it in EXIF, ignoring case, spaces and
// punctuation; so "NIKON D7000" finds "NikonD7000".
func ResolveCameraModel(modelDir, exifModel string) (string, error) {
	want := normalizeModelName(exifModel)
	if want == "" {
		return "", fmt.Errorf("no camera model to look for")
	}

	entries, err := os.ReadDir(modelDir)
	if err != nil {
		return "", fmt.Errorf("readdir %s: %v", modelDir, err)
	}

	for _, e := range entries {
		if e.IsDir() && normalizeModelName(e.Name()) == want {
			return e.Name(), nil
		}
	}

	return "", fmt.Errorf("no calibration in %s for camera '%s'", modelDir, exifModel)
}
