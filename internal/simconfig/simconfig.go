package simconfig

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"physx/internal/logger"
	"physx/internal/physics"
)

// DefaultPath is the config file read by the CLI, relative to the working directory.
const DefaultPath = "physx.yaml"

// Config holds the settings of one simulation run.
type Config struct {
	DeltaTime   float64 `yaml:"delta_time"`
	Frames      int     `yaml:"frames"`
	StartupFile string  `yaml:"startup_file"`
	LogFile     string  `yaml:"log_file"`
	RecordFile  string  `yaml:"record_file"`
	RoundDigits int     `yaml:"round_digits"`
	// LogMode is "rewrite" or "append".
	LogMode string `yaml:"log_mode"`
	// Format is the record format written to RecordFile: "legacy" or "v1".
	Format string `yaml:"format"`
	// Mode is "sequential" or "snapshot".
	Mode       string `yaml:"mode"`
	Console    bool   `yaml:"console"`
	Timestamps bool   `yaml:"timestamps"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		DeltaTime:   1,
		Frames:      1000,
		StartupFile: "startup_file.json",
		LogFile:     logger.DefaultPath,
		RecordFile:  "Result.json",
		RoundDigits: physics.DefaultRoundDigits,
		LogMode:     logger.Rewrite.String(),
		Format:      physics.FormatLegacy.String(),
		Mode:        physics.Sequential.String(),
	}
}

// Load reads a YAML config from path on top of Default(). A missing file yields
// Default() with no error; an unreadable or invalid file is an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("simconfig: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("simconfig: %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path as YAML, creating the parent directory if needed.
func Save(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides cfg fields from PHYSX_* variables returned by lookup
// (normally os.LookupEnv).
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"PHYSX_STARTUP_FILE": &cfg.StartupFile,
		"PHYSX_LOG_FILE":     &cfg.LogFile,
		"PHYSX_RECORD_FILE":  &cfg.RecordFile,
		"PHYSX_LOG_MODE":     &cfg.LogMode,
		"PHYSX_FORMAT":       &cfg.Format,
		"PHYSX_MODE":         &cfg.Mode,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	ints := map[string]*int{
		"PHYSX_FRAMES":       &cfg.Frames,
		"PHYSX_ROUND_DIGITS": &cfg.RoundDigits,
	}
	for key, dst := range ints {
		if v, ok := lookup(key); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("simconfig: %s: %w", key, err)
			}
			*dst = n
		}
	}
	bools := map[string]*bool{
		"PHYSX_CONSOLE":    &cfg.Console,
		"PHYSX_TIMESTAMPS": &cfg.Timestamps,
	}
	for key, dst := range bools {
		if v, ok := lookup(key); ok {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("simconfig: %s: %w", key, err)
			}
			*dst = b
		}
	}
	if v, ok := lookup("PHYSX_DELTA_TIME"); ok {
		f, err := physics.ParseDecimal(v)
		if err != nil {
			return fmt.Errorf("simconfig: PHYSX_DELTA_TIME: %w", err)
		}
		cfg.DeltaTime = f
	}
	return nil
}

// Validate checks the numeric fields and the names of the enumerated ones.
func (c Config) Validate() error {
	if !(c.DeltaTime > 0) {
		return fmt.Errorf("simconfig: delta_time %v must be positive", c.DeltaTime)
	}
	if c.Frames < 0 {
		return fmt.Errorf("simconfig: frames %d must not be negative", c.Frames)
	}
	if c.RoundDigits < 0 {
		return fmt.Errorf("simconfig: round_digits %d must not be negative", c.RoundDigits)
	}
	if _, err := logger.ParseMode(c.LogMode); err != nil {
		return fmt.Errorf("simconfig: %w", err)
	}
	if _, err := physics.ParseRecordFormat(c.Format); err != nil {
		return fmt.Errorf("simconfig: %w", err)
	}
	if _, err := physics.ParseStepMode(c.Mode); err != nil {
		return fmt.Errorf("simconfig: %w", err)
	}
	return nil
}

// NewWorld builds a world configured by c that reports to sink.
func (c Config) NewWorld(sink physics.Sink) (*physics.World, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	w := physics.NewWorld(sink)
	w.DeltaTime = c.DeltaTime
	if err := w.SetRoundDigits(c.RoundDigits); err != nil {
		return nil, err
	}
	format, _ := physics.ParseRecordFormat(c.Format)
	w.SetFormat(format)
	mode, _ := physics.ParseStepMode(c.Mode)
	w.SetMode(mode)
	return w, nil
}

// LoggerOptions returns the logger settings described by c.
func (c Config) LoggerOptions() (logger.Options, error) {
	mode, err := logger.ParseMode(c.LogMode)
	if err != nil {
		return logger.Options{}, fmt.Errorf("simconfig: %w", err)
	}
	opts := logger.Options{Path: c.LogFile, Mode: mode, Timestamps: c.Timestamps}
	if c.Console {
		opts.Console = os.Stdout
	}
	return opts, nil
}
