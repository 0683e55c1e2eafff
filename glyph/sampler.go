// Package glyph converts text into ordered outline sample points.
//
// Text is laid out glyph by glyph on a common baseline. Each glyph outline
// is a set of closed contours built from line, quadratic and cubic
// segments; every segment is flattened into points spaced by roughly
// 1/density units of length. Contours are concatenated in font order,
// which is the order an epicycle reconstruction will trace them in.
//
// Coordinates follow the font rasterizer convention: y increases
// downwards.
package glyph

import (
	"errors"
	"fmt"

	"github.com/npillmayer/epicycle"
	"github.com/npillmayer/epicycle/polygon"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// tracer writes to trace with key 'epicycle.glyph'
func tracer() tracing.Trace {
	return tracing.Select("epicycle.glyph")
}

var (
	// ErrFontParse indicates font data which could not be parsed.
	ErrFontParse = errors.New("cannot parse font")
	// ErrNoGlyphs indicates text without any visible outline.
	ErrNoGlyphs = errors.New("text has no glyph outlines")
	// ErrInvalidDensity indicates a sample density or font size ≤ 0.
	ErrInvalidDensity = errors.New("sample density and font size must be positive")
)

// Sampler turns text into outline points for one font.
// A Sampler is not safe for concurrent use.
type Sampler struct {
	font    *sfnt.Font
	buf     sfnt.Buffer
	density float64 // sample points per unit of outline length
}

// NewSampler creates a sampler for a TrueType or OpenType font. If ttf is
// nil, the Go Regular font is used. density is the number of sample points
// per unit of outline length, e.g. 0.1 for a point every 10 pixels.
func NewSampler(ttf []byte, density float64) (*Sampler, error) {
	if density <= 0 {
		return nil, fmt.Errorf("%w: density %g", ErrInvalidDensity, density)
	}
	if ttf == nil {
		ttf = goregular.TTF
	}
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFontParse, err)
	}
	return &Sampler{font: f, density: density}, nil
}

// Density is the number of sample points per unit of outline length.
func (s *Sampler) Density() float64 {
	return s.density
}

// Outline lays out text at the given font size (pixels per em) and returns
// one cyclic polygon per glyph contour. Positions are relative to the start
// of the baseline.
func (s *Sampler) Outline(text string, size float64) ([]*polygon.Polygon, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: font size %g", ErrInvalidDensity, size)
	}
	ppem := fixed.Int26_6(size * 64)
	var contours []*polygon.Polygon
	var dot fixed.Int26_6
	for _, r := range text {
		idx, err := s.font.GlyphIndex(&s.buf, r)
		if err != nil || idx == 0 {
			tracer().Infof("no glyph for %q, skipping", r)
			continue
		}
		segs, err := s.font.LoadGlyph(&s.buf, idx, ppem, nil)
		if err != nil {
			return nil, fmt.Errorf("loading glyph for %q: %w", r, err)
		}
		origin := epicycle.P(fix2float(dot), 0)
		contours = append(contours, flatten(segs, origin, s.density)...)
		adv, err := s.font.GlyphAdvance(&s.buf, idx, ppem, font.HintingNone)
		if err != nil {
			return nil, fmt.Errorf("advance of glyph for %q: %w", r, err)
		}
		dot += adv
	}
	if len(contours) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoGlyphs, text)
	}
	tracer().Debugf("text %q has %d contours", text, len(contours))
	return contours, nil
}

// Sample returns the outline points of text, centered around the origin.
func (s *Sampler) Sample(text string, size float64) ([]epicycle.Pair, error) {
	contours, err := s.Outline(text, size)
	if err != nil {
		return nil, err
	}
	c := polygon.Center(contours...)
	pts := polygon.Concat(contours...).Translated(-c).Points()
	tracer().Infof("sampled %d points from %q", len(pts), text)
	return pts, nil
}

// FallbackPoints is the number of points of the fallback circle.
const FallbackPoints = 100

// Fallback returns the shape substituted for text which cannot be sampled:
// a circle around the origin.
func Fallback(radius float64) []epicycle.Pair {
	return polygon.Circle(epicycle.Origin, radius, FallbackPoints).Points()
}

// SampleOrFallback samples text with s. If s is nil or sampling fails, the
// error is traced and a fallback circle of radius size/2 is returned
// instead, so that an animation always has something to draw.
func SampleOrFallback(s *Sampler, text string, size float64) []epicycle.Pair {
	if s == nil {
		tracer().Errorf("no sampler, using fallback circle")
		return Fallback(size / 2)
	}
	pts, err := s.Sample(text, size)
	if err != nil {
		tracer().Errorf("sampling %q failed, using fallback circle: %v", text, err)
		return Fallback(size / 2)
	}
	return pts
}
