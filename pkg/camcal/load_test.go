package camcal

import(
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abworrall/jpg2raw/pkg/emath"
)

func writeFile(t *testing.T, filename string, lines []string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(filename), 0755))
	require.NoError(t, os.WriteFile(filename, []byte(strings.Join(lines, "\n")+"\n"), 0644))
}

func vecLine(v emath.Vec3) string { return fmt.Sprintf("%g %g %g", v[0], v[1], v[2]) }

// writeTestCalibration writes a small calibration set: a tone curve of
// x/255*scale, n control points, and 3 white balance blocks where block
// i has TsTw = i*identity and Tw = (i, i, i).
func writeTestCalibration(t *testing.T, cfg Config, n int, scale float64) {
	t.Helper()

	tc := []string{"response functions"}
	for x:=0; x<256; x++ {
		v := float64(x) / 255.0 * scale
		tc = append(tc, vecLine(emath.Vec3{v, v, v}))
	}
	writeFile(t, cfg.ToneCurveFile(), tc)

	cps := []string{"control points"}
	coefs := []string{"coefs"}
	for k:=0; k<n; k++ {
		f := float64(k) / float64(n)
		cps = append(cps, vecLine(emath.Vec3{f, f / 2, 1 - f}))
		coefs = append(coefs, "0 0 0")
	}
	coefs = append(coefs, "0 0 0", "1 0 0", "0 1 0", "0 0 1")
	writeFile(t, cfg.ControlPointsFile(), cps)
	writeFile(t, cfg.CoefsFile(), coefs)

	tr := []string{"transform", "1 0 0", "0 1 0", "0 0 1", "wb"}
	for i:=1; i<=3; i++ {
		f := float64(i)
		tr = append(tr,
			vecLine(emath.Vec3{f, 0, 0}),
			vecLine(emath.Vec3{0, f, 0}),
			vecLine(emath.Vec3{0, 0, f}),
			vecLine(emath.Vec3{f, f, f}),
			fmt.Sprintf("wb %d", i))
	}
	writeFile(t, cfg.TransformFile(), tr)
}

func testConfig(t *testing.T) Config {
	cfg := NewConfig()
	cfg.ModelDir = t.TempDir()
	cfg.CameraModel = "TestCam"
	cfg.WhiteBalanceIndex = 2
	cfg.NumControlPoints = 5
	return cfg
}

func TestLoad(t *testing.T) {
	cfg := testConfig(t)
	writeTestCalibration(t, cfg, 5, 2.0)

	cal, err := Load(cfg)
	require.NoError(t, err)

	assert.Equal(t, emath.Vec3{2, 2, 2}, cal.ToneCurve[255])
	assert.Equal(t, emath.Vec3{0, 0, 0}, cal.ToneCurve[0])
	assert.Equal(t, 5, cal.Gamut.NumControlPoints())
	assert.Equal(t, emath.Vec3{0.2, 0.1, 0.8}, cal.Gamut.ControlPoints[1])
	assert.Equal(t, emath.Vec3{1, 0, 0}, cal.Gamut.Coefs[1])

	assert.Equal(t, emath.Identity3(), cal.Color.Ts)
	assert.Equal(t, emath.Vec3{2, 2, 2}.Diag(), cal.Color.TsTw)
	assert.Equal(t, emath.Vec3{2, 2, 2}, cal.Color.Tw)
}

func TestLoadWhiteBalanceSelection(t *testing.T) {
	cfg := testConfig(t)
	writeTestCalibration(t, cfg, 5, 1.0)

	for wb:=1; wb<=3; wb++ {
		cc, err := LoadColorCalibration(cfg.TransformFile(), wb)
		require.NoError(t, err)
		f := float64(wb)
		assert.Equal(t, emath.Vec3{f, f, f}.Diag(), cc.TsTw, "wb#%d", wb)
		assert.Equal(t, emath.Vec3{f, f, f}, cc.Tw, "wb#%d", wb)
	}

	for _, wb := range []int{0, 4, 6} {
		_, err := LoadColorCalibration(cfg.TransformFile(), wb)
		var cle *CalibrationLoadError
		assert.True(t, errors.As(err, &cle), "wb#%d: %v", wb, err)
	}
}

func TestLoadInferNumControlPoints(t *testing.T) {
	cfg := testConfig(t)
	writeTestCalibration(t, cfg, 7, 1.0)

	cfg.NumControlPoints = 0
	cal, err := Load(cfg)
	require.NoError(t, err)
	assert.Equal(t, 7, cal.Gamut.NumControlPoints())
	assert.Equal(t, 7, len(cal.Gamut.Weights))
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing dir", func(t *testing.T) {
		cfg := testConfig(t)
		_, err := Load(cfg)

		var cle *CalibrationLoadError
		require.True(t, errors.As(err, &cle))
		assert.Equal(t, cfg.ToneCurveFile(), cle.File)
		assert.True(t, errors.Is(err, os.ErrNotExist))
	})

	t.Run("wrong control point count", func(t *testing.T) {
		cfg := testConfig(t)
		writeTestCalibration(t, cfg, 4, 1.0)
		_, err := Load(cfg)

		var cle *CalibrationLoadError
		require.True(t, errors.As(err, &cle))
		assert.Equal(t, cfg.ControlPointsFile(), cle.File)
	})

	t.Run("short tone curve", func(t *testing.T) {
		cfg := testConfig(t)
		writeTestCalibration(t, cfg, 5, 1.0)
		writeFile(t, cfg.ToneCurveFile(), []string{"hdr", "0 0 0", "1 1 1"})
		_, err := Load(cfg)

		var cle *CalibrationLoadError
		require.True(t, errors.As(err, &cle))
		assert.Equal(t, cfg.ToneCurveFile(), cle.File)
	})

	t.Run("malformed row", func(t *testing.T) {
		cfg := testConfig(t)
		writeTestCalibration(t, cfg, 5, 1.0)
		writeFile(t, cfg.ControlPointsFile(), []string{"hdr", "0 0 0", "0 0 0", "0 zero 0", "0 0 0", "0 0 0"})
		_, err := Load(cfg)

		var cle *CalibrationLoadError
		require.True(t, errors.As(err, &cle))
		assert.Equal(t, 3, cle.Line)
	})

	t.Run("coefs missing polynomial rows", func(t *testing.T) {
		cfg := testConfig(t)
		writeTestCalibration(t, cfg, 5, 1.0)
		writeFile(t, cfg.CoefsFile(), []string{"hdr", "0 0 0", "0 0 0", "0 0 0", "0 0 0", "0 0 0"})
		_, err := Load(cfg)

		var cle *CalibrationLoadError
		require.True(t, errors.As(err, &cle))
		assert.Equal(t, cfg.CoefsFile(), cle.File)
	})

	t.Run("no camera model", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CameraModel = ""
		_, err := Load(cfg)
		assert.Error(t, err)
	})
}

func TestConfigPaths(t *testing.T) {
	cfg := NewConfig()
	cfg.ModelDir = "models"
	cfg.CameraModel = "NikonD7000"

	assert.Equal(t, filepath.Join("models", "NikonD7000", "jpg2raw_respFcns.txt"), cfg.ToneCurveFile())
	assert.Equal(t, filepath.Join("models", "NikonD7000", "jpg2raw_transform.txt"), cfg.TransformFile())

	cfg.Direction = Forward
	assert.Equal(t, filepath.Join("models", "NikonD7000", "raw2jpg_ctrlPoints.txt"), cfg.ControlPointsFile())
	assert.Equal(t, filepath.Join("models", "NikonD7000", "raw2jpg_coefs.txt"), cfg.CoefsFile())

	cfg.Direction = "sideways"
	assert.Error(t, cfg.Validate())
}

func TestResolveCameraModel(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"NikonD7000", "Canon_EOS_5D"} {
		require.NoError(t, os.MkdirAll(filepath.Join(dir, name), 0755))
	}

	model, err := ResolveCameraModel(dir, "NIKON D7000")
	require.NoError(t, err)
	assert.Equal(t, "NikonD7000", model)

	model, err = ResolveCameraModel(dir, "Canon EOS 5D")
	require.NoError(t, err)
	assert.Equal(t, "Canon_EOS_5D", model)

	_, err = ResolveCameraModel(dir, "Pentax K-1")
	assert.Error(t, err)
	_, err = ResolveCameraModel(dir, "")
	assert.Error(t, err)
}
