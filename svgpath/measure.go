package svgpath

import (
	"errors"
	"fmt"
	"math"

	"github.com/steve02081504/animate-SVG/svgdom"
)

// This file lowers outline elements of the document tree to paths
// and exposes the length measurement used by the animation scheduler.

type shapeFunc func(n *svgdom.Node, p *Path) error

var shapeFuncs = map[string]shapeFunc{
	"path":     pathF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
}

// IsOutline reports whether elements with the given tag carry
// drawable outline geometry.
func IsOutline(tag string) bool {
	_, ok := shapeFuncs[tag]
	return ok
}

// ElementPath lowers an outline element to its path equivalent.
func ElementPath(n *svgdom.Node) (Path, error) {
	df, ok := shapeFuncs[n.Tag]
	if !ok {
		return nil, fmt.Errorf("element %q has no outline geometry", n.Tag)
	}
	var p Path
	if err := df(n, &p); err != nil {
		return nil, err
	}
	return p, nil
}

var errNotFinite = errors.New("outline length is not finite")

// Measure returns the total outline length of the element.
// Elements without well defined geometry yield an error, which callers
// treat as "unmeasurable, exclude from scheduling".
func Measure(n *svgdom.Node) (float64, error) {
	p, err := ElementPath(n)
	if err != nil {
		return 0, err
	}
	l := p.Length()
	if math.IsNaN(l) || math.IsInf(l, 0) {
		return 0, errNotFinite
	}
	return l, nil
}

func attrFloat(n *svgdom.Node, name string) (float64, error) {
	v, ok := n.Attr(name)
	if !ok || v == "" {
		return 0, nil
	}
	return ParseFloat(v, 64)
}

func pathF(n *svgdom.Node, p *Path) error {
	d, ok := n.Attr("d")
	if !ok {
		return errors.New("path element without d attribute")
	}
	compiled, err := CompilePath(d)
	if err != nil {
		return err
	}
	*p = compiled
	return nil
}

func rectF(n *svgdom.Node, p *Path) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, spec := range []struct {
		dst  *float64
		name string
	}{{&x, "x"}, {&y, "y"}, {&w, "width"}, {&h, "height"}, {&rx, "rx"}, {&ry, "ry"}} {
		if *spec.dst, err = attrFloat(n, spec.name); err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		return nil
	}
	if rx != 0 && ry == 0 {
		ry = rx
	}
	if ry != 0 && rx == 0 {
		rx = ry
	}
	p.addRoundRect(x, y, x+w, y+h, rx, ry, 0)
	return nil
}

func circleF(n *svgdom.Node, p *Path) error {
	var cx, cy, rx, ry float64
	var err error
	if cx, err = attrFloat(n, "cx"); err != nil {
		return err
	}
	if cy, err = attrFloat(n, "cy"); err != nil {
		return err
	}
	if r, err := attrFloat(n, "r"); err != nil {
		return err
	} else {
		rx, ry = r, r
	}
	if v, ok := n.Attr("rx"); ok && v != "" {
		if rx, err = ParseFloat(v, 64); err != nil {
			return err
		}
	}
	if v, ok := n.Attr("ry"); ok && v != "" {
		if ry, err = ParseFloat(v, 64); err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	p.addEllipse(cx, cy, rx, ry)
	return nil
}

func lineF(n *svgdom.Node, p *Path) error {
	var x1, y1, x2, y2 float64
	var err error
	for _, spec := range []struct {
		dst  *float64
		name string
	}{{&x1, "x1"}, {&y1, "y1"}, {&x2, "x2"}, {&y2, "y2"}} {
		if *spec.dst, err = attrFloat(n, spec.name); err != nil {
			return err
		}
	}
	p.Start(toFixedP(x1, y1))
	p.Line(toFixedP(x2, y2))
	return nil
}

func polylineF(n *svgdom.Node, p *Path) error {
	raw, _ := n.Attr("points")
	pts, err := parsePoints(raw)
	if err != nil {
		return err
	}
	if len(pts)%2 != 0 {
		return errors.New("polygon has odd number of points")
	}
	if len(pts) >= 4 {
		p.Start(toFixedP(pts[0], pts[1]))
		for i := 2; i < len(pts)-1; i += 2 {
			p.Line(toFixedP(pts[i], pts[i+1]))
		}
	}
	return nil
}

func polygonF(n *svgdom.Node, p *Path) error {
	err := polylineF(n, p)
	if err == nil && len(*p) > 1 {
		p.Stop(true)
	}
	return err
}
