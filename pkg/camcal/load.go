package camcal

import(
	"fmt"
	"log"

	"github.com/abworrall/jpg2raw/pkg/ecolor"
	"github.com/abworrall/jpg2raw/pkg/emath"
)

// ColorCalibration holds the color space transform (Ts), the white
// balance gains for the selected index (Tw, the diagonal), and the
// combined matrix for that index (TsTw) that the pipeline actually uses.
type ColorCalibration struct {
	Ts   emath.Mat3
	Tw   emath.Vec3
	TsTw emath.Mat3
}

// Calibration is everything loaded for one camera model. It is read
// only once loaded.
type Calibration struct {
	Config
	ToneCurve ecolor.ToneCurve
	Gamut     ecolor.GamutModel
	Color     ColorCalibration
}

func (c Calibration)String() string {
	return fmt.Sprintf("Calibration[%s/%s, %s, wb#%d, %s]", c.ModelDir, c.CameraModel,
		c.Direction, c.WhiteBalanceIndex, c.Gamut)
}

// Load reads all the calibration files for the configured camera
// model. Any problem at all is returned as an error; nothing gets
// partially loaded.
func Load(cfg Config) (*Calibration, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("calibration config: %v", err)
	}

	cal := Calibration{Config: cfg}
	var err error

	if cal.ToneCurve, err = LoadToneCurve(cfg.ToneCurveFile()); err != nil {
		return nil, err
	}
	if cal.Gamut, err = LoadGamutModel(cfg.ControlPointsFile(), cfg.CoefsFile(), cfg.NumControlPoints); err != nil {
		return nil, err
	}
	if cal.Color, err = LoadColorCalibration(cfg.TransformFile(), cfg.WhiteBalanceIndex); err != nil {
		return nil, err
	}

	log.Printf("Loaded %s\n", cal)
	return &cal, nil
}

// LoadToneCurve reads the response functions: a header, then 256 rows
// (one per 8-bit level) of per-channel values.
func LoadToneCurve(filename string) (ecolor.ToneCurve, error) {
	tc := ecolor.ToneCurve{}

	rows, err := readTable(filename, len(tc))
	if err != nil {
		return tc, err
	}
	copy(tc[:], rows)

	return tc, nil
}

// LoadGamutModel reads the control points (a header, then N rows) and
// the coefs file (a header, then N rows of weights followed by 4 rows of
// polynomial coefficients). If numCtrlPts is zero, N is however many
// control points are in the file.
func LoadGamutModel(ctrlPtsFile, coefsFile string, numCtrlPts int) (ecolor.GamutModel, error) {
	gm := ecolor.GamutModel{}

	cps, err := readTable(ctrlPtsFile, numCtrlPts)
	if err != nil {
		return gm, err
	}
	n := len(cps)

	rows, err := readTable(coefsFile, n+4)
	if err != nil {
		return gm, err
	}

	gm.ControlPoints = cps
	gm.Weights = rows[:n]
	copy(gm.Coefs[:], rows[n:])

	if err := gm.Validate(); err != nil {
		return gm, &CalibrationLoadError{File: coefsFile, Line: -1, Err: err}
	}

	return gm, nil
}

// The transform file layout, 0-based line numbers:
//   0:        header
//   1-3:      Ts, the color space transform
//   4:        (label)
// and then a 5 line block for each white balance index i (1-based), starting at 5+5*(i-1):
//   +0 - +2:  TsTw, the combined color space & white balance transform
//   +3:       the white balance gains (Tw's diagonal)
//   +4:       (label)
func transformBlockStart(wbIndex int) int { return 5 + 5*(wbIndex-1) }

// LoadColorCalibration reads the matrices for the given white balance index.
func LoadColorCalibration(filename string, wbIndex int) (ColorCalibration, error) {
	cc := ColorCalibration{}

	if wbIndex < 1 {
		return cc, loadErr(filename, -1, "white balance index %d, must be >= 1", wbIndex)
	}

	lines, err := readLines(filename)
	if err != nil {
		return cc, err
	}

	if cc.Ts, err = readMat3(filename, lines, 1); err != nil {
		return cc, err
	}

	base := transformBlockStart(wbIndex)
	if cc.TsTw, err = readMat3(filename, lines, base); err != nil {
		return cc, err
	}

	if base+3 >= len(lines) {
		return cc, loadErr(filename, -1, "white balance index %d needs line %d, file has %d lines", wbIndex, base+3, len(lines))
	} else if cc.Tw, err = parseVec3(lines[base+3]); err != nil {
		return cc, &CalibrationLoadError{File: filename, Line: base+3, Err: err}
	}

	return cc, nil
}
