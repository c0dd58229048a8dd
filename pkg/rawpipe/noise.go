package rawpipe

import(
	"fmt"
	"math"

	"github.com/abworrall/jpg2raw/pkg/pixbuf"
)

// NormalSource is anything that hands out standard normal deviates;
// *math/rand.Rand and *math/rand/v2.Rand both qualify.
type NormalSource interface {
	NormFloat64() float64
}

// A NoiseInjector puts back some of the sensor noise that the camera's
// processing took out. Injectors run over the pixels in raster order on
// a single goroutine, so the same seed always gives the same image.
type NoiseInjector interface {
	Inject(in *pixbuf.Float, rng NormalSource) *pixbuf.Float
}

// ShotNoiseParams describe one channel's noise as a function of the
// signal s (in 8-bit levels): variance = A*s + B.
type ShotNoiseParams struct {
	A float64 `yaml:"a"`
	B float64 `yaml:"b"`
}

func (p ShotNoiseParams)String() string { return fmt.Sprintf("{a=%.4f,b=%.4f}", p.A, p.B) }

// Variance is floored at zero
func (p ShotNoiseParams)Variance(s float64) float64 { return math.Max(p.A*s + p.B, 0) }

const DefaultNoiseVariance = 0.1

// Ballpark figures for an APS-C sensor at base ISO; red & blue get more
// analog gain from white balancing than green does.
var DefaultShotNoise = [3]ShotNoiseParams{
	{A: 0.0588, B: 0.40},
	{A: 0.0400, B: 0.35},
	{A: 0.0700, B: 0.45},
}

// The noise models are all in 8-bit levels, so each sample is descaled
// (truncated & clamped, as Descale does), perturbed, and brought back.
func injectNoise(in *pixbuf.Float, rng NormalSource, variance func(ch int, s float64) float64) *pixbuf.Float {
	out := in.NewFromThis()
	for i, v := range in.Pix {
		s := float64(descaleSample(v))
		std := math.Sqrt(variance(i%pixbuf.Channels, s))
		out.Pix[i] = (s + std*rng.NormFloat64()) / 255.0
	}
	return out
}

// UniformNoise adds gaussian noise of the same variance to every sample
type UniformNoise struct {
	Variance float64
}

func (n UniformNoise)Inject(in *pixbuf.Float, rng NormalSource) *pixbuf.Float {
	v := math.Max(n.Variance, 0)
	return injectNoise(in, rng, func(_ int, _ float64) float64 { return v })
}

func (n UniformNoise)String() string { return fmt.Sprintf("uniform{var=%.3f}", n.Variance) }

// ShotNoise is signal dependent, per channel
type ShotNoise struct {
	Params [3]ShotNoiseParams
}

func (n ShotNoise)Inject(in *pixbuf.Float, rng NormalSource) *pixbuf.Float {
	return injectNoise(in, rng, func(ch int, s float64) float64 { return n.Params[ch].Variance(s) })
}

func (n ShotNoise)String() string { return fmt.Sprintf("shot%v", n.Params) }
