package epicycle

import (
	"errors"
	"fmt"
	"math"
)

// ErrColorRange is returned for color components outside 0…255.
var ErrColorRange = errors.New("color component out of range 0…255")

// Color is a non-premultiplied RGBA color with 8 bit components.
// It satisfies image/color.Color, so frontends may hand it to drawing
// libraries directly.
type Color struct {
	R, G, B, A uint8
}

// White is the default stroke color for paths and epicycles.
var White = Color{255, 255, 255, 255}

// NewColor creates a color from integer components, checking that every
// component lies within 0…255.
func NewColor(r, g, b, a int) (Color, error) {
	for _, c := range [...]int{r, g, b, a} {
		if c < 0 || c > 255 {
			return Color{}, fmt.Errorf("%w: %d", ErrColorRange, c)
		}
	}
	return Color{uint8(r), uint8(g), uint8(b), uint8(a)}, nil
}

// WithAlpha returns c with its alpha replaced. alpha is a float on the
// 0…255 scale; it is rounded and clamped into range.
func (c Color) WithAlpha(alpha float64) Color {
	c.A = clampByte(alpha)
	return c
}

// RGBA implements image/color.Color. Components are alpha-premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = uint32(c.A)
	r = uint32(c.R) * a / 0xff
	g = uint32(c.G) * a / 0xff
	b = uint32(c.B) * a / 0xff
	r |= r << 8
	g |= g << 8
	b |= b << 8
	a |= a << 8
	return
}

// Intensity is the alpha channel as a fraction 0…1.
func (c Color) Intensity() float64 {
	return float64(c.A) / 255
}

func (c Color) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%d)", c.R, c.G, c.B, c.A)
}

func clampByte(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
