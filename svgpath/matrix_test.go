package svgpath

import (
	"math"
	"testing"
)

func nearPoint(t *testing.T, gx, gy, wx, wy float64) {
	t.Helper()
	if math.Abs(gx-wx) > 1e-9 || math.Abs(gy-wy) > 1e-9 {
		t.Errorf("got (%g, %g), want (%g, %g)", gx, gy, wx, wy)
	}
}

func TestMatrixIdentity(t *testing.T) {
	x, y := Identity.Transform(3, 4)
	nearPoint(t, x, y, 3, 4)
}

func TestMatrixOrder(t *testing.T) {
	// Mult applies the right hand side first
	m := Identity.Translate(10, 0).Scale(2, 2)
	x, y := m.Transform(1, 1)
	nearPoint(t, x, y, 12, 2)
}

func TestParseTransform(t *testing.T) {
	for _, tc := range []struct {
		in     string
		px, py float64
		wx, wy float64
	}{
		{"translate(5 6)", 0, 0, 5, 6},
		{"translate(5)", 0, 0, 5, 0},
		{"scale(2)", 3, 4, 6, 8},
		{"scale(2 3)", 1, 1, 2, 3},
		{"rotate(90)", 1, 0, 0, 1},
		{"rotate(90 10 0)", 10, 0, 10, 0},
		{"matrix(1 0 0 1 5 6)", 0, 0, 5, 6},
		{"translate(10 0) scale(2)", 1, 0, 12, 0},
	} {
		m, err := ParseTransform(Identity, tc.in)
		if err != nil {
			t.Errorf("ParseTransform(%q): %s", tc.in, err)
			continue
		}
		x, y := m.Transform(tc.px, tc.py)
		if math.Abs(x-tc.wx) > 1e-9 || math.Abs(y-tc.wy) > 1e-9 {
			t.Errorf("ParseTransform(%q).Transform(%g, %g) = (%g, %g), want (%g, %g)",
				tc.in, tc.px, tc.py, x, y, tc.wx, tc.wy)
		}
	}
}

func TestParseTransformSkew(t *testing.T) {
	m, err := ParseTransform(Identity, "skewX(45)")
	if err != nil {
		t.Fatal(err)
	}
	x, y := m.Transform(0, 1)
	nearPoint(t, x, y, 1, 1)
}

func TestParseTransformErrors(t *testing.T) {
	for _, in := range []string{
		"translate(1 2 3)",
		"scale()",
		"matrix(1 2 3)",
		"frobnicate(1)",
	} {
		if _, err := ParseTransform(Identity, in); err == nil {
			t.Errorf("expected error for %q", in)
		}
	}
}
