package svgpath

import (
	"golang.org/x/image/math/fixed"
)

// Adder accumulates path segments; the rasterx filler, stroker and
// dasher types all satisfy it.
type Adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

// AddTo replays the path into dst, mapping every point through m.
func (p Path) AddTo(dst Adder, m Matrix2D) {
	started := false
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			if started {
				dst.Stop(false)
			}
			dst.Start(m.TFixed(fixed.Point26_6(op)))
			started = true
		case LineTo:
			dst.Line(m.TFixed(fixed.Point26_6(op)))
		case QuadTo:
			dst.QuadBezier(m.TFixed(op[0]), m.TFixed(op[1]))
		case CubicTo:
			dst.CubeBezier(m.TFixed(op[0]), m.TFixed(op[1]), m.TFixed(op[2]))
		case Close:
			dst.Stop(true)
			started = false
		}
	}
	if started {
		dst.Stop(false)
	}
}
