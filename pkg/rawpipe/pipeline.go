package rawpipe

import(
	"fmt"
	"log"
	"math/rand/v2"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/abworrall/jpg2raw/pkg/camcal"
	"github.com/abworrall/jpg2raw/pkg/emath"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// Pipeline holds everything needed to process images with one camera
// calibration. It is built once, up front, and does not change while
// images are processed.
type Pipeline struct {
	Config
	Calibration   *camcal.Calibration
	ColorMatrix   emath.Mat3      // Inverted TsTw going in reverse, TsTw as-is going forward
	GamutMapper   GamutMapper
	NoiseInjector NoiseInjector   // nil for none
	RunID         string
}

// NewPipeline loads the calibration named by the config, and prepares
// the color matrix. Nothing is left to load lazily.
func NewPipeline(cfg Config) (*Pipeline, error) {
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}

	cal, err := camcal.Load(cfg.Config)
	if err != nil {
		return nil, err
	}

	return NewPipelineFromCalibration(cfg, cal)
}

// NewPipelineFromCalibration is for when the calibration is already to hand
func NewPipelineFromCalibration(cfg Config, cal *camcal.Calibration) (*Pipeline, error) {
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	if err := cal.Gamut.Validate(); err != nil {
		return nil, fmt.Errorf("calibration '%s': %w", cal.CameraModel, err)
	}

	p := Pipeline{
		Config:        cfg,
		Calibration:   cal,
		ColorMatrix:   cal.Color.TsTw,
		NoiseInjector: cfg.GetNoiseInjector(),
		RunID:         uuid.NewString(),
	}
	p.GamutMapper = cfg.GetGamutMapper(&p.Calibration.Gamut)

	if cfg.Direction == camcal.Reverse {
		inv, err := cal.Color.TsTw.Inverse()
		if err != nil {
			return nil, fmt.Errorf("inverting TsTw for '%s' wb#%d: %w", cal.CameraModel, cal.WhiteBalanceIndex, err)
		}
		p.ColorMatrix = inv
	}

	if p.Verbosity > 1 {
		tsTw := cal.Color.Ts.Mult(cal.Color.Tw.Diag())
		log.Printf("[%s] Ts*diag(Tw) vs TsTw, max abs diff %.6f\n", p.ShortID(), tsTw.MaxAbsDiff(cal.Color.TsTw))
	}

	return &p, nil
}

func (p *Pipeline)ShortID() string {
	if len(p.RunID) < 8 {
		return p.RunID
	}
	return p.RunID[:8]
}

func (p *Pipeline)String() string {
	noise := "none"
	if p.NoiseInjector != nil {
		noise = fmt.Sprintf("%v", p.NoiseInjector)
	}
	return fmt.Sprintf("Pipeline[%s, %s, gamut=%v, noise=%s]", p.ShortID(), p.Calibration, p.GamutMapper, noise)
}

// Run processes the image in whichever direction the pipeline was configured for
func (p *Pipeline)Run(in *pixbuf.Uint8) (*pixbuf.Uint8, error) {
	if p.Direction == camcal.Forward {
		return p.Develop(in)
	}
	return p.Revert(in)
}

// Revert takes a camera-processed RGB image back to an approximation
// of the sensor data it came from. The noise injector, if any, gets a
// generator seeded from Config.Seed.
func (p *Pipeline)Revert(in *pixbuf.Uint8) (*pixbuf.Uint8, error) {
	return p.RevertWithRand(in, p.newRand())
}

func (p *Pipeline)RevertWithRand(in *pixbuf.Uint8, rng NormalSource) (*pixbuf.Uint8, error) {
	if p.Direction != camcal.Reverse {
		return nil, fmt.Errorf("pipeline is configured for '%s', not reverse", p.Direction)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	checkpoint := p.checkpointer()
	tStart := time.Now()
	log.Printf("[%s] Reverting %s\n", p.ShortID(), in)

	buf := Scale(in)
	checkpoint("scaled", buf)

	log.Printf("[%s] Reverse tone mapping\n", p.ShortID())
	buf = InvertToneMap(buf, &p.Calibration.ToneCurve, p.Workers)
	checkpoint("tonemap", buf)

	log.Printf("[%s] Reverse gamut mapping (%v)\n", p.ShortID(), p.GamutMapper)
	buf = p.GamutMapper.Map(buf)
	checkpoint("gamut", buf)

	log.Printf("[%s] Reverse color mapping & white balancing\n", p.ShortID())
	buf = InvertColorTransform(buf, p.ColorMatrix, p.Workers)
	checkpoint("color", buf)

	if p.NoiseInjector != nil {
		log.Printf("[%s] Adding noise (%v)\n", p.ShortID(), p.NoiseInjector)
		buf = p.NoiseInjector.Inject(buf, rng)
		checkpoint("noise", buf)
	}

	log.Printf("[%s] Remosaicing\n", p.ShortID())
	buf = Remosaic(buf, p.Workers)
	checkpoint("remosaic", buf)

	if n := buf.CountOutOfRange(0, 1); n > 0 {
		log.Printf("[%s] %d samples outside [0,1], clamped\n", p.ShortID(), n)
	}
	out := Descale(buf)

	log.Printf("[%s] Reverted in %s\n", p.ShortID(), time.Since(tStart))
	return out, nil
}

// Develop goes the other way: from a mosaic to a rendered RGB image,
// the way the camera's processing would.
func (p *Pipeline)Develop(in *pixbuf.Uint8) (*pixbuf.Uint8, error) {
	if p.Direction != camcal.Forward {
		return nil, fmt.Errorf("pipeline is configured for '%s', not forward", p.Direction)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}

	checkpoint := p.checkpointer()
	tStart := time.Now()
	log.Printf("[%s] Developing %s\n", p.ShortID(), in)

	buf := Scale(in)
	checkpoint("scaled", buf)

	log.Printf("[%s] Demosaicing\n", p.ShortID())
	buf = Demosaic(buf, p.Workers)
	checkpoint("demosaic", buf)

	log.Printf("[%s] Denoising\n", p.ShortID())
	buf = Denoise(buf, p.Workers)
	checkpoint("denoise", buf)

	log.Printf("[%s] Color mapping & white balancing\n", p.ShortID())
	buf = ColorTransform(buf, p.ColorMatrix, p.Workers)
	checkpoint("color", buf)

	log.Printf("[%s] Gamut mapping (%v)\n", p.ShortID(), p.GamutMapper)
	buf = p.GamutMapper.Map(buf)
	checkpoint("gamut", buf)

	log.Printf("[%s] Tone mapping\n", p.ShortID())
	buf = ToneMap(buf, &p.Calibration.ToneCurve, p.Workers)
	checkpoint("tonemap", buf)

	if n := buf.CountOutOfRange(0, 1); n > 0 {
		log.Printf("[%s] %d samples outside [0,1], clamped\n", p.ShortID(), n)
	}
	out := Descale(buf)

	log.Printf("[%s] Developed in %s\n", p.ShortID(), time.Since(tStart))
	return out, nil
}

// A zero seed means pick one from the clock
func (p *Pipeline)newRand() *rand.Rand {
	seed := p.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
		if p.NoiseInjector != nil {
			log.Printf("[%s] Noise seed %d\n", p.ShortID(), seed)
		}
	}
	return rand.New(rand.NewPCG(seed, seed))
}

// checkpointer returns a func to call after each stage, which logs
// buffer stats and optionally dumps the buffer to disk.
func (p *Pipeline)checkpointer() func(name string, buf *pixbuf.Float) {
	stage := 0

	return func(name string, buf *pixbuf.Float) {
		stage++

		if p.Verbosity > 0 {
			log.Printf("[%s]   %-9s %s\n", p.ShortID(), name, buf.Stats())
		}

		if !p.DumpStages {
			return
		}

		base := filepath.Join(p.DumpDir, fmt.Sprintf("%s-%02d-%s", p.ShortID(), stage, name))
		title := fmt.Sprintf("%s %02d %s", p.ShortID(), stage, name)
		if err := buf.ToImg(title, base+".png"); err != nil {
			log.Printf("[%s] stage dump: %v\n", p.ShortID(), err)
		}
		if err := pixbuf.WriteHDR(buf, base+".hdr"); err != nil {
			log.Printf("[%s] stage dump: %v\n", p.ShortID(), err)
		}
	}
}
