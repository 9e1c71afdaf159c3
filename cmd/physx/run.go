package main

import (
	"flag"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"physx/internal/commands"
	"physx/internal/logger"
	"physx/internal/physics"
	"physx/internal/scenegen"
	"physx/internal/simconfig"
)

// printer prints summaries with grouped digits, e.g. "1,000 frames".
var printer = message.NewPrinter(language.English)

// loadConfig reads the config file, then PHYSX_* variables, then the flags the
// user actually set on fs.
func loadConfig(path string, fs *flag.FlagSet, overrides map[string]func(*simconfig.Config)) (simconfig.Config, error) {
	cfg, err := simconfig.Load(path)
	if err != nil {
		return cfg, err
	}
	if err := simconfig.ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	fs.Visit(func(f *flag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply(&cfg)
		}
	})
	return cfg, cfg.Validate()
}

func registerRun(reg *commands.Registry) {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", simconfig.DefaultPath, "YAML config file")
	frames := fs.Int("frames", 0, "number of frames to simulate")
	dt := fs.Float64("dt", 0, "seconds per frame")
	startup := fs.String("startup", "", "file to load bodies from")
	logFile := fs.String("log", "", "report log file")
	out := fs.String("out", "", "file to save bodies to after the run")
	mode := fs.String("mode", "", "sequential or snapshot")
	format := fs.String("format", "", "record format for -out: legacy or v1")
	console := fs.Bool("console", false, "echo reports to stdout")

	reg.Register("run", "load bodies, simulate frames, write the log and the records", fs, func([]string) error {
		cfg, err := loadConfig(*configPath, fs, map[string]func(*simconfig.Config){
			"frames":  func(c *simconfig.Config) { c.Frames = *frames },
			"dt":      func(c *simconfig.Config) { c.DeltaTime = *dt },
			"startup": func(c *simconfig.Config) { c.StartupFile = *startup },
			"log":     func(c *simconfig.Config) { c.LogFile = *logFile },
			"out":     func(c *simconfig.Config) { c.RecordFile = *out },
			"mode":    func(c *simconfig.Config) { c.Mode = *mode },
			"format":  func(c *simconfig.Config) { c.Format = *format },
			"console": func(c *simconfig.Config) { c.Console = *console },
		})
		if err != nil {
			return err
		}
		return run(cfg)
	})
}

func run(cfg simconfig.Config) error {
	opts, err := cfg.LoggerOptions()
	if err != nil {
		return err
	}
	log, err := logger.New(opts)
	if err != nil {
		return err
	}
	w, err := cfg.NewWorld(log)
	if err != nil {
		return err
	}
	if err := w.LoadFrom(cfg.StartupFile); err != nil {
		return err
	}

	w.Run(cfg.Frames, nil)

	if err := log.Err(); err != nil {
		return err
	}
	if cfg.RecordFile != "" {
		if err := w.SaveTo(cfg.RecordFile); err != nil {
			return err
		}
	}
	printer.Printf("%d frames, %d bodies, log %s\n", cfg.Frames, w.Len(), cfg.LogFile)
	return nil
}

func registerInit(reg *commands.Registry) {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	def := scenegen.DefaultOptions()
	n := fs.Int("n", def.Count, "number of bodies (scatter)")
	seed := fs.Uint64("seed", 0, "random seed, 0 for time-based")
	layout := fs.String("layout", "scatter", "scatter or grid")
	width := fs.Int("width", def.Width, "grid cells along X")
	depth := fs.Int("depth", def.Depth, "grid cells along Z")
	radius := fs.Float64("radius", def.Radius, "scatter radius")
	speed := fs.Float64("speed", def.MaxSpeed, "maximum initial speed (scatter)")
	out := fs.String("out", "", "startup file to write (default from config)")
	format := fs.String("format", "", "legacy or v1 (default from config)")
	configPath := fs.String("config", simconfig.DefaultPath, "YAML config file")

	reg.Register("init", "write a generated startup file", fs, func([]string) error {
		cfg, err := loadConfig(*configPath, fs, map[string]func(*simconfig.Config){
			"out":    func(c *simconfig.Config) { c.StartupFile = *out },
			"format": func(c *simconfig.Config) { c.Format = *format },
		})
		if err != nil {
			return err
		}
		l, err := scenegen.ParseLayout(*layout)
		if err != nil {
			return err
		}
		rf, err := physics.ParseRecordFormat(cfg.Format)
		if err != nil {
			return err
		}
		opts := def
		opts.Layout = l
		opts.Seed = *seed
		opts.Count = *n
		opts.Width, opts.Depth = *width, *depth
		opts.Radius = *radius
		opts.MaxSpeed = *speed

		count, err := scenegen.WriteStartup(cfg.StartupFile, rf, opts)
		if err != nil {
			return err
		}
		printer.Printf("wrote %d bodies to %s\n", count, cfg.StartupFile)
		return nil
	})
}
