package rawpipe

import(
	"fmt"
	"log"
	"os"
	"runtime"

	"gopkg.in/yaml.v2"

	"github.com/abworrall/jpg2raw/pkg/camcal"
	"github.com/abworrall/jpg2raw/pkg/ecolor"
)

/* Example config file ...

modeldir: ../cam_vision_pipe/cam_models
cameramodel: NikonD7000
whitebalanceindex: 6
numcontrolpoints: 3702
direction: reverse
gamutevaluator: parallel
noise: shot
shotnoise:
  - {a: 0.0588, b: 0.40}
  - {a: 0.0400, b: 0.35}
  - {a: 0.0700, b: 0.45}
seed: 42

*/

type Config struct {
	camcal.Config              `yaml:",inline"`

	Verbosity      int

	GamutEvaluator string      // "naive", or "parallel"
	Workers        int         // How many rows get processed at once. 0 means GOMAXPROCS

	Noise          string      // "", "uniform", or "shot"
	NoiseVariance  float64     // for "uniform", in 8-bit levels^2
	ShotNoise      [3]ShotNoiseParams  // for "shot", per channel
	Seed           uint64

	DumpStages     bool        // Write out a preview PNG and a .hdr after each stage
	DumpDir        string
}

func NewConfig() Config {
	return Config{
		Config:         camcal.NewConfig(),
		GamutEvaluator: "parallel",
		NoiseVariance:  DefaultNoiseVariance,
		ShotNoise:      DefaultShotNoise,
		DumpDir:        ".",
	}
}

func NewConfigFromYaml(b []byte) (Config, error) {
	c := NewConfig()
	if err := yaml.Unmarshal(b, &c); err != nil {
		return c, err
	}
	return c, c.Finalize()
}

func LoadConfig(filename string) (Config, error) {
	contents, err := os.ReadFile(filename)
	if err != nil {
		return Config{}, fmt.Errorf("config read %s: %v", filename, err)
	}

	c, err := NewConfigFromYaml(contents)
	if err != nil {
		return c, fmt.Errorf("config parse %s: %v", filename, err)
	}
	return c, nil
}

func (c Config)AsYaml() string {
	b, err := yaml.Marshal(c)
	if err != nil {
		log.Fatalf("Can't marshal config yaml: %v\n", err)
	}
	return string(b)
}

// Finalize fills in defaults, and does sanity checks on the direction & strategy names
func (c *Config)Finalize() error {
	if c.GamutEvaluator == "" {
		c.GamutEvaluator = "parallel"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Direction == "" {
		c.Direction = camcal.Reverse
	}

	switch c.Direction {
	case camcal.Reverse, camcal.Forward:
	default:
		return fmt.Errorf("no Direction named '%s'", c.Direction)
	}

	switch c.GamutEvaluator {
	case "naive", "parallel":
	default:
		return fmt.Errorf("no GamutEvaluator named '%s'", c.GamutEvaluator)
	}

	switch c.Noise {
	case "", "none", "uniform", "shot":
	default:
		return fmt.Errorf("no Noise strategy named '%s'", c.Noise)
	}
	if c.NoiseVariance < 0 {
		return fmt.Errorf("NoiseVariance %f is negative", c.NoiseVariance)
	}

	return nil
}

func (c Config)GetGamutMapper(gm *ecolor.GamutModel) GamutMapper {
	switch c.GamutEvaluator {
	case "naive":    return NaiveGamutMapper{Model: gm}
	default:         return ParallelGamutMapper{Model: gm, Workers: c.Workers}
	}
}

// GetNoiseInjector returns nil if no noise should be added
func (c Config)GetNoiseInjector() NoiseInjector {
	switch c.Noise {
	case "uniform": return UniformNoise{Variance: c.NoiseVariance}
	case "shot":    return ShotNoise{Params: c.ShotNoise}
	default:        return nil
	}
}
