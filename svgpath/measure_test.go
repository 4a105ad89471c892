package svgpath

import (
	"math"
	"testing"

	"github.com/steve02081504/animate-SVG/svgdom"
)

func element(t *testing.T, markup string) *svgdom.Node {
	t.Helper()
	doc, err := svgdom.ParseString(markup)
	if err != nil {
		t.Fatalf("can't parse %q: %s", markup, err)
	}
	return doc.Root
}

func TestIsOutline(t *testing.T) {
	for _, tag := range []string{"path", "line", "rect", "circle", "ellipse", "polyline", "polygon"} {
		if !IsOutline(tag) {
			t.Errorf("%s should be an outline", tag)
		}
	}
	for _, tag := range []string{"g", "svg", "use", "text", "defs"} {
		if IsOutline(tag) {
			t.Errorf("%s should not be an outline", tag)
		}
	}
}

func TestMeasureLine(t *testing.T) {
	n := element(t, `<line x1="0" y1="0" x2="3" y2="4"/>`)
	l, err := Measure(n)
	if err != nil {
		t.Fatal(err)
	}
	near(t, l, 5, 1e-6)
}

func TestMeasureRect(t *testing.T) {
	n := element(t, `<rect x="0" y="0" width="10" height="5"/>`)
	l, err := Measure(n)
	if err != nil {
		t.Fatal(err)
	}
	near(t, l, 30, 1e-3)
}

func TestMeasureCircle(t *testing.T) {
	n := element(t, `<circle cx="50" cy="50" r="10"/>`)
	l, err := Measure(n)
	if err != nil {
		t.Fatal(err)
	}
	near(t, l, 2*math.Pi*10, 0.2)
}

func TestMeasureEllipse(t *testing.T) {
	n := element(t, `<ellipse cx="0" cy="0" rx="10" ry="10"/>`)
	l, err := Measure(n)
	if err != nil {
		t.Fatal(err)
	}
	near(t, l, 2*math.Pi*10, 0.2)
}

func TestMeasurePolyline(t *testing.T) {
	n := element(t, `<polyline points="0,0 10,0 10,10"/>`)
	l, err := Measure(n)
	if err != nil {
		t.Fatal(err)
	}
	near(t, l, 20, 1e-6)

	closed := element(t, `<polygon points="0,0 10,0 10,10 0,10"/>`)
	l, err = Measure(closed)
	if err != nil {
		t.Fatal(err)
	}
	near(t, l, 40, 1e-6)
}

func TestMeasurePath(t *testing.T) {
	n := element(t, `<path d="M0 0H10V10"/>`)
	l, err := Measure(n)
	if err != nil {
		t.Fatal(err)
	}
	near(t, l, 20, 1e-6)
}

func TestMeasureErrors(t *testing.T) {
	for _, markup := range []string{
		`<path/>`,                        // no d attribute
		`<path d="M0 0 L"/>`,             // malformed data
		`<polyline points="0 0 10"/>`,    // odd point count
		`<g/>`,                           // no geometry at all
		`<rect width="nope" height="1"/>`,
	} {
		if _, err := Measure(element(t, markup)); err == nil {
			t.Errorf("expected error for %s", markup)
		}
	}
}

func TestMeasureDegenerateShapes(t *testing.T) {
	// zero-sized shapes measure as zero, not as errors
	for _, markup := range []string{
		`<rect width="0" height="10"/>`,
		`<circle r="0"/>`,
		`<polyline points="1,1"/>`,
	} {
		l, err := Measure(element(t, markup))
		if err != nil {
			t.Errorf("unexpected error for %s: %s", markup, err)
		}
		if l != 0 {
			t.Errorf("expected zero length for %s, got %g", markup, l)
		}
	}
}
