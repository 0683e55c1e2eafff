// Package config holds the settings of an epicycle animation.
//
// Settings are layered: built-in defaults, then an optional YAML file, then
// EPICYCLE_* environment variables (which may come from a .env file).
// Settings are read once at startup; a running animation never sees changes.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/animate"
	"github.com/npillmayer/schuko/tracing"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned for settings out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the complete set of settings.
type Config struct {
	Text              string        `yaml:"text"`
	FontFile          string        `yaml:"font"` // empty for Go Regular
	FontSize          float64       `yaml:"font_size"`
	SampleDensity     float64       `yaml:"sample_density"`
	EpicycleFade      time.Duration `yaml:"epicycle_fade"`
	Hold              time.Duration `yaml:"hold"`
	PathFade          time.Duration `yaml:"path_fade"`
	MinAmplitude      float64       `yaml:"min_amplitude"`
	EpicycleAlpha     float64       `yaml:"epicycle_alpha"`
	PathAlpha         float64       `yaml:"path_alpha"`
	SkipEpicycleFade  bool          `yaml:"skip_epicycle_fade"`
	SignedFrequencies bool          `yaml:"signed_frequencies"`
	FastTransform     bool          `yaml:"fast_transform"`
	Width             int           `yaml:"width"`
	Height            int           `yaml:"height"`
	TicksPerSecond    int           `yaml:"tps"`
	TraceLevel        string        `yaml:"trace_level"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Text:           "Go",
		FontSize:       200,
		SampleDensity:  0.1,
		EpicycleFade:   1000 * time.Millisecond,
		Hold:           10000 * time.Millisecond,
		PathFade:       1000 * time.Millisecond,
		MinAmplitude:   0.1,
		EpicycleAlpha:  100,
		PathAlpha:      255,
		Width:          800,
		Height:         600,
		TicksPerSecond: 60,
		TraceLevel:     "info",
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file
// keep their default values.
func Load(path string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return c, c.Validate()
}

// LoadEnvFiles loads .env style files into the process environment.
// Missing files are not an error.
func LoadEnvFiles(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return err
		}
	}
	return nil
}

// FromEnv overrides settings from EPICYCLE_* environment variables, e.g.
// EPICYCLE_TEXT or EPICYCLE_HOLD=5s.
func (c *Config) FromEnv() error {
	var errs []error
	str := func(key string, v *string) {
		if s, ok := os.LookupEnv("EPICYCLE_" + key); ok {
			*v = s
		}
	}
	num := func(key string, v *float64) {
		if s, ok := os.LookupEnv("EPICYCLE_" + key); ok {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				errs = append(errs, fmt.Errorf("EPICYCLE_%s: %w", key, err))
				return
			}
			*v = f
		}
	}
	integer := func(key string, v *int) {
		if s, ok := os.LookupEnv("EPICYCLE_" + key); ok {
			i, err := strconv.Atoi(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("EPICYCLE_%s: %w", key, err))
				return
			}
			*v = i
		}
	}
	dur := func(key string, v *time.Duration) {
		if s, ok := os.LookupEnv("EPICYCLE_" + key); ok {
			d, err := time.ParseDuration(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("EPICYCLE_%s: %w", key, err))
				return
			}
			*v = d
		}
	}
	flag := func(key string, v *bool) {
		if s, ok := os.LookupEnv("EPICYCLE_" + key); ok {
			b, err := strconv.ParseBool(s)
			if err != nil {
				errs = append(errs, fmt.Errorf("EPICYCLE_%s: %w", key, err))
				return
			}
			*v = b
		}
	}
	str("TEXT", &c.Text)
	str("FONT", &c.FontFile)
	str("TRACE_LEVEL", &c.TraceLevel)
	num("FONT_SIZE", &c.FontSize)
	num("SAMPLE_DENSITY", &c.SampleDensity)
	num("MIN_AMPLITUDE", &c.MinAmplitude)
	num("EPICYCLE_ALPHA", &c.EpicycleAlpha)
	num("PATH_ALPHA", &c.PathAlpha)
	dur("EPICYCLE_FADE", &c.EpicycleFade)
	dur("HOLD", &c.Hold)
	dur("PATH_FADE", &c.PathFade)
	integer("WIDTH", &c.Width)
	integer("HEIGHT", &c.Height)
	integer("TPS", &c.TicksPerSecond)
	flag("SKIP_EPICYCLE_FADE", &c.SkipEpicycleFade)
	flag("SIGNED_FREQUENCIES", &c.SignedFrequencies)
	flag("FAST_TRANSFORM", &c.FastTransform)
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// Validate checks that all settings are in range.
func (c Config) Validate() error {
	var problems []string
	if c.FontSize <= 0 {
		problems = append(problems, "font size must be positive")
	}
	if c.SampleDensity <= 0 {
		problems = append(problems, "sample density must be positive")
	}
	if c.EpicycleFade < 0 || c.Hold < 0 || c.PathFade < 0 {
		problems = append(problems, "durations must not be negative")
	}
	if c.MinAmplitude < 0 {
		problems = append(problems, "minimum amplitude must not be negative")
	}
	if c.EpicycleAlpha < 0 || c.EpicycleAlpha > 255 || c.PathAlpha < 0 || c.PathAlpha > 255 {
		problems = append(problems, "opacities must lie within 0…255")
	}
	if c.Width <= 0 || c.Height <= 0 {
		problems = append(problems, "window size must be positive")
	}
	if c.TicksPerSecond <= 0 {
		problems = append(problems, "tick rate must be positive")
	}
	if _, ok := traceLevels[strings.ToLower(c.TraceLevel)]; !ok {
		problems = append(problems, fmt.Sprintf("unknown trace level %q", c.TraceLevel))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// FrameTime is the wall clock time of one tick.
func (c Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}

// Options derives the animation options.
func (c Config) Options() animate.Options {
	opts := animate.DefaultOptions()
	opts.EpicycleFade = c.EpicycleFade
	opts.Hold = c.Hold
	opts.PathFade = c.PathFade
	opts.MinAmplitude = c.MinAmplitude
	opts.EpicycleAlpha = c.EpicycleAlpha
	opts.PathAlpha = c.PathAlpha
	opts.SkipEpicycleFade = c.SkipEpicycleFade
	opts.Center = epicycle.Origin
	return opts
}

var traceLevels = map[string]func(tracing.Trace){
	"error": func(t tracing.Trace) { t.SetTraceLevel(tracing.LevelError) },
	"info":  func(t tracing.Trace) { t.SetTraceLevel(tracing.LevelInfo) },
	"debug": func(t tracing.Trace) { t.SetTraceLevel(tracing.LevelDebug) },
}

// TraceKeys are the tracers of all packages of this module.
var TraceKeys = []string{
	"epicycle", "epicycle.polygon", "epicycle.glyph", "epicycle.dft", "epicycle.animate", "epicycle.view",
}

// ApplyTraceLevel sets the configured trace level on all tracers.
func (c Config) ApplyTraceLevel() {
	set, ok := traceLevels[strings.ToLower(c.TraceLevel)]
	if !ok {
		return
	}
	for _, key := range TraceKeys {
		set(tracing.Select(key))
	}
}
