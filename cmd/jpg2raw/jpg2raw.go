package main

import(
	"flag"
	"fmt"
	"log"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/abworrall/jpg2raw/pkg/camcal"
	"github.com/abworrall/jpg2raw/pkg/pixbuf"
	"github.com/abworrall/jpg2raw/pkg/rawpipe"
)

var(
	fVerbosity int
	fOutput string
	fModelDir string
	fCameraModel string
	fWhiteBalanceIndex int
	fNumControlPoints int
	fGamutEvaluator string
	fWorkers int
	fNoise string
	fNoiseVariance float64
	fSeed uint64
	fForward bool
	fGrayscale bool
	fConvert bool
	fDumpStages bool
	fDumpDir string
	fLogFile string
)

func init() {
	flag.IntVar(&fVerbosity, "v", 0, "how verbose to get")
	flag.StringVar(&fOutput, "o", "", "output filename (only when processing a single image); default is raw_<input>.png")

	flag.StringVar(&fModelDir, "modeldir", camcal.DefaultModelDir, "directory holding one calibration subdirectory per camera model")
	flag.StringVar(&fCameraModel, "model", "", "camera model (subdirectory of -modeldir); default is to use the EXIF Model tag")
	flag.IntVar(&fWhiteBalanceIndex, "wb", camcal.DefaultWhiteBalanceIndex, "white balance index (1-based)")
	flag.IntVar(&fNumControlPoints, "cps", camcal.DefaultNumControlPoints, "number of gamut control points; 0 to take all in the file")
	flag.BoolVar(&fForward, "forward", false, "run the forward pipeline (mosaic to rendered RGB) instead")

	flag.StringVar(&fGamutEvaluator, "gamut", "parallel", "how to evaluate the gamut model: naive, parallel")
	flag.IntVar(&fWorkers, "workers", 0, "rows to process concurrently; 0 means GOMAXPROCS")
	flag.StringVar(&fNoise, "noise", "", "noise to inject while reverting: none, uniform, shot")
	flag.Float64Var(&fNoiseVariance, "noisevar", rawpipe.DefaultNoiseVariance, "variance for -noise=uniform, in 8-bit levels^2")
	flag.Uint64Var(&fSeed, "seed", 0, "seed for the noise generator; 0 picks one from the clock")

	flag.BoolVar(&fGrayscale, "grayscale", false, "just convert the images to grayscale")
	flag.BoolVar(&fConvert, "convert", false, "just convert between .bin and image files (use with -o)")
	flag.BoolVar(&fDumpStages, "dump", false, "write a preview PNG and a .hdr after each pipeline stage")
	flag.StringVar(&fDumpDir, "dumpdir", ".", "where -dump writes to")
	flag.StringVar(&fLogFile, "logfile", "", "log to this (rotated) file instead of stderr")
	flag.Parse()

	if fLogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   fLogFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
		})
	}

	log.Printf("jpg2raw starting\n")
}

func main() {
	cfg := rawpipe.NewConfig()
	images := []string{}

	for _, arg := range flag.Args() {
		if ext := strings.ToLower(filepath.Ext(arg)); ext == ".yaml" || ext == ".yml" {
			c, err := rawpipe.LoadConfig(arg)
			if err != nil {
				log.Fatal(err)
			}
			cfg = c
		} else if pixbuf.IsImageFile(arg) {
			images = append(images, arg)
		} else {
			log.Fatalf("don't know what to do with '%s'\n", arg)
		}
	}

	if len(images) == 0 {
		log.Fatal("no images given")
	} else if fOutput != "" && len(images) > 1 {
		log.Fatal("-o only makes sense with a single image")
	}

	applyFlags(&cfg)
	if err := cfg.Finalize(); err != nil {
		log.Fatal(err)
	}

	if cfg.Verbosity > 0 {
		log.Printf("Final configuration:-\n\n%s\n", cfg.AsYaml())
	}

	pipelines := map[string]*rawpipe.Pipeline{}

	for _, filename := range images {
		in, md, err := pixbuf.LoadFile(filename)
		if err != nil {
			log.Fatal(err)
		}

		var out *pixbuf.Uint8
		if fGrayscale {
			out = pixbuf.Grayscale(in)
		} else if fConvert {
			out = in
		} else {
			p, err := getPipeline(pipelines, cfg, md)
			if err != nil {
				log.Fatal(err)
			}
			if out, err = p.Run(in); err != nil {
				log.Fatalf("'%s': %v", filename, err)
			}
		}

		outFilename := outputFilename(filename, cfg)
		if err := pixbuf.SaveFile(out, outFilename); err != nil {
			log.Fatal(err)
		}
		log.Printf("Wrote %s\n", outFilename)
	}
}

// Only override the config file with flags that were actually given on the command line
func applyFlags(cfg *rawpipe.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "v":         cfg.Verbosity = fVerbosity
		case "modeldir":  cfg.ModelDir = fModelDir
		case "model":     cfg.CameraModel = fCameraModel
		case "wb":        cfg.WhiteBalanceIndex = fWhiteBalanceIndex
		case "cps":       cfg.NumControlPoints = fNumControlPoints
		case "gamut":     cfg.GamutEvaluator = fGamutEvaluator
		case "workers":   cfg.Workers = fWorkers
		case "noise":     cfg.Noise = fNoise
		case "noisevar":  cfg.NoiseVariance = fNoiseVariance
		case "seed":      cfg.Seed = fSeed
		case "dump":      cfg.DumpStages = fDumpStages
		case "dumpdir":   cfg.DumpDir = fDumpDir
		case "forward":
			if fForward {
				cfg.Direction = camcal.Forward
			} else {
				cfg.Direction = camcal.Reverse
			}
		}
	})
}

// getPipeline builds one pipeline per camera model, as they're needed.
// If no model was configured, the image's EXIF picks one.
func getPipeline(cache map[string]*rawpipe.Pipeline, cfg rawpipe.Config, md pixbuf.Metadata) (*rawpipe.Pipeline, error) {
	if cfg.CameraModel == "" {
		model, err := camcal.ResolveCameraModel(cfg.ModelDir, md.CameraModel)
		if err != nil {
			return nil, fmt.Errorf("no -model given, and EXIF lookup failed: %v", err)
		}
		log.Printf("Camera '%s %s' uses calibration '%s'\n", md.Make, md.CameraModel, model)
		cfg.CameraModel = model
	}

	if p, exists := cache[cfg.CameraModel]; exists {
		return p, nil
	}

	p, err := rawpipe.NewPipeline(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Verbosity > 0 {
		log.Printf("%s\n", p)
	}
	cache[cfg.CameraModel] = p
	return p, nil
}

func outputFilename(filename string, cfg rawpipe.Config) string {
	if fOutput != "" {
		return fOutput
	}
	prefix := "raw_"
	if fGrayscale {
		prefix = "gray_"
	} else if fConvert {
		prefix = "conv_"
	} else if cfg.Direction == camcal.Forward {
		prefix = "rgb_"
	}
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return filepath.Join(filepath.Dir(filename), prefix+base+".png")
}
