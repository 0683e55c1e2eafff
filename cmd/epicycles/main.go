// Command epicycles traces a text outline with a chain of rotating circles.
//
//	epicycles [-config file.yaml] [-term | -headless] [-report]
//
// Settings come from defaults, the YAML file and EPICYCLE_* environment
// variables (a .env file in the working directory is read as well).
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/animate"
	"github.com/npillmayer/epicycle/config"
	"github.com/npillmayer/epicycle/dft"
	"github.com/npillmayer/epicycle/glyph"
	"github.com/npillmayer/epicycle/view"
	"github.com/npillmayer/epicycle/view/term"
	"github.com/npillmayer/epicycle/view/window"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("epicycle")
}

func main() {
	var (
		cfgFile  string
		useTerm  bool
		headless bool
		frames   int
		report   bool
		top      int
	)
	flag.StringVar(&cfgFile, "config", "", "YAML settings file.")
	flag.BoolVar(&useTerm, "term", false, "Animate in the terminal.")
	flag.BoolVar(&headless, "headless", false, "Run without any display.")
	flag.IntVar(&frames, "frames", 0, "Stop after N frames in headless mode (0 = one full cycle).")
	flag.BoolVar(&report, "report", false, "Print the spectrum and exit.")
	flag.IntVar(&top, "top", 12, "Number of coefficients in the report.")
	flag.Parse()

	cfg, err := settings(cfgFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	cfg.ApplyTraceLevel()

	pts, spectrum, err := prepare(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if report {
		fmt.Println(Report(spectrum, top))
		return
	}

	m := animate.New(spectrum, cfg.Options())
	ext := view.Extent(pts, 0.25)
	switch {
	case headless:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = runHeadless(ctx, m, cfg.FrameTime(), frames)
	case useTerm:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = term.Run(ctx, m, ext, cfg.FrameTime())
	default:
		err = window.Run(m, ext, window.Settings{
			Title:          "Epicycles: " + cfg.Text,
			Width:          cfg.Width,
			Height:         cfg.Height,
			TicksPerSecond: cfg.TicksPerSecond,
		})
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// settings layers defaults, the YAML file and the environment.
func settings(cfgFile string) (config.Config, error) {
	if err := config.LoadEnvFiles(".env"); err != nil {
		return config.Config{}, err
	}
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		if cfg, err = config.Load(cfgFile); err != nil {
			return config.Config{}, err
		}
	}
	if err := cfg.FromEnv(); err != nil {
		return config.Config{}, err
	}
	return cfg, cfg.Validate()
}

// prepare samples the text outline and transforms it. Sampling falls back
// to a circle; a degenerate transform falls back to the lenient one.
func prepare(cfg config.Config) ([]epicycle.Pair, *dft.Spectrum, error) {
	var ttf []byte
	if cfg.FontFile != "" {
		var err error
		if ttf, err = os.ReadFile(cfg.FontFile); err != nil {
			return nil, nil, err
		}
	}
	sampler, err := glyph.NewSampler(ttf, cfg.SampleDensity)
	if err != nil {
		return nil, nil, err
	}
	pts := glyph.SampleOrFallback(sampler, cfg.Text, cfg.FontSize)
	tracer().Infof("sampled %d points for %q", len(pts), cfg.Text)

	transform := dft.Transform
	if cfg.FastTransform {
		transform = dft.TransformFast
	}
	spectrum, err := transform(pts)
	if err != nil {
		tracer().Errorf("%v, using lenient transform", err)
		spectrum = dft.TransformLenient(pts)
	}
	if cfg.SignedFrequencies {
		spectrum = spectrum.Centered()
	}
	return pts, spectrum, nil
}

// runHeadless advances m on a ticker without painting. frames = 0 runs one
// full lifecycle.
func runHeadless(ctx context.Context, m *animate.Machine, frameTime time.Duration, frames int) error {
	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()
	clock := view.NewClock()
	start := m.Cycles()
	for i := 0; frames == 0 || i < frames; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
		f := m.Advance(clock.Tick())
		tracer().Debugf("frame %d: %s t=%.4f tip=%v", i, f.State, f.T, f.Tip)
		if frames == 0 && m.Cycles() > start {
			break
		}
	}
	tracer().Infof("headless run done after %d cycles", m.Cycles()-start)
	return nil
}
