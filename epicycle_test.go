package epicycle

import (
	"errors"
	"math"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestNumericBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	a := 0.000000008
	if !Is0(a) {
		t.Errorf("Expected a to be zero, is not")
	}
	if Finite(math.NaN()) || Finite(math.Inf(-1)) {
		t.Errorf("Expected NaN and -Inf to be non-finite")
	}
}

func TestPairBasic(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := P(3, 2)
	q := P(-3, -2)
	r := p + q
	if !r.IsOrigin() {
		t.Errorf("Expected p + q to be (0,0), is %v", r)
	}
	if C2P(complex(math.NaN(), 1)) != Origin {
		t.Errorf("Expected NaN complex to map onto origin")
	}
}

func TestPolar(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	p := Polar(2, math.Pi/2)
	if !p.Equal(P(0, 2)) {
		t.Errorf("Expected polar (2, π/2) to be (0,2), is %v", p)
	}
	if math.Abs(p.Abs()-2) > 1e-12 {
		t.Errorf("Expected |p| = 2, is %g", p.Abs())
	}
}

func TestFitCentersOrigin(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	m := Fit(10, 5, 200, 100, 0)
	if c := m.Transform(Origin); !c.Equal(P(100, 50)) {
		t.Errorf("Expected origin to map to device center, is %v", c)
	}
	if c := m.Transform(P(10, 0)); !c.Equal(P(200, 50)) {
		t.Errorf("Expected (10,0) to map to right border, is %v", c)
	}
	if math.Abs(m.Scale()-10) > 1e-9 {
		t.Errorf("Expected scale 10, is %g", m.Scale())
	}
}

func TestColorRange(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	if _, err := NewColor(0, 0, 256, 0); !errors.Is(err, ErrColorRange) {
		t.Errorf("Expected ErrColorRange, got %v", err)
	}
	c, err := NewColor(255, 128, 0, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.WithAlpha(-3).A != 0 || c.WithAlpha(300).A != 255 || c.WithAlpha(99.6).A != 100 {
		t.Errorf("Expected alpha to be clamped and rounded")
	}
	_, _, _, a := c.RGBA()
	if a != 100|100<<8 {
		t.Errorf("Expected 16 bit alpha of 100, is %d", a)
	}
}
