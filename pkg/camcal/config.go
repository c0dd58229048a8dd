package camcal

import(
	"fmt"
	"path/filepath"
)

// A Direction picks which set of calibration files to load. The camera
// model directory carries both: raw2jpg_* describe the camera's own
// rendering (forward), jpg2raw_* are fitted to undo it (reverse).
type Direction string

const(
	Reverse Direction = "reverse"
	Forward Direction = "forward"
)

func (d Direction)FilePrefix() string {
	if d == Forward {
		return "raw2jpg"
	}
	return "jpg2raw"
}

const(
	DefaultModelDir          = "cam_models"
	DefaultWhiteBalanceIndex = 6
	DefaultNumControlPoints  = 3702
)

// Config says where the calibration for a camera lives, and which bits of it to use.
type Config struct {
	ModelDir          string     // Holds one subdirectory per camera model
	CameraModel       string     // e.g. "NikonD7000"
	WhiteBalanceIndex int        // 1-based; selects a matrix block in the transform file
	NumControlPoints  int        // Gamut model size. 0 means take it from the control point file
	Direction         Direction
}

func NewConfig() Config {
	return Config{
		ModelDir:          DefaultModelDir,
		WhiteBalanceIndex: DefaultWhiteBalanceIndex,
		NumControlPoints:  DefaultNumControlPoints,
		Direction:         Reverse,
	}
}

func (c Config)Validate() error {
	switch {
	case c.CameraModel == "":
		return fmt.Errorf("no camera model configured")
	case c.WhiteBalanceIndex < 1:
		return fmt.Errorf("white balance index %d, must be >= 1", c.WhiteBalanceIndex)
	case c.NumControlPoints < 0:
		return fmt.Errorf("num control points %d, must be >= 0", c.NumControlPoints)
	case c.Direction != Reverse && c.Direction != Forward:
		return fmt.Errorf("no direction named '%s'", c.Direction)
	}
	return nil
}

func (c Config)path(suffix string) string {
	return filepath.Join(c.ModelDir, c.CameraModel, c.Direction.FilePrefix() + "_" + suffix)
}

func (c Config)ToneCurveFile() string     { return c.path("respFcns.txt") }
func (c Config)ControlPointsFile() string { return c.path("ctrlPoints.txt") }
func (c Config)CoefsFile() string         { return c.path("coefs.txt") }
func (c Config)TransformFile() string     { return c.path("transform.txt") }
