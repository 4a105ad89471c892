package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file measures the total length of a path, the quantity the
// drawing animation feeds into stroke-dasharray and stroke-dashoffset.
// Bezier segments are flattened by recursive midpoint subdivision.

// flatTolerance is the maximum distance, in user units, between a
// curve and its chord before subdivision stops.
const flatTolerance = 0.01

type point struct{ x, y float64 }

func fromFixed(p fixed.Point26_6) point {
	return point{float64(p.X) / 64, float64(p.Y) / 64}
}

func dist(a, b point) float64 {
	return math.Hypot(b.x-a.x, b.y-a.y)
}

// distToLine is the distance from p to the segment a-b, used as the
// flatness criterion for subdivision.
func distToLine(p, a, b point) float64 {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return dist(p, a)
	}
	return math.Abs(dy*p.x-dx*p.y+b.x*a.y-b.y*a.x) / l
}

type flattener struct {
	start, cur point
	started    bool
	total      float64
}

func (f *flattener) move(p point) {
	f.start, f.cur = p, p
	f.started = true
}

func (f *flattener) line(p point) {
	if !f.started {
		f.move(p)
		return
	}
	f.total += dist(f.cur, p)
	f.cur = p
}

func lerp(a, b point, t float64) point {
	return point{a.x + (b.x-a.x)*t, a.y + (b.y-a.y)*t}
}

func (f *flattener) quad(b, c point, depth int) {
	a := f.cur
	if depth > 24 || distToLine(b, a, c) <= flatTolerance {
		f.line(c)
		return
	}
	ab, bc := lerp(a, b, 0.5), lerp(b, c, 0.5)
	mid := lerp(ab, bc, 0.5)
	f.quad(ab, mid, depth+1)
	f.quad(bc, c, depth+1)
}

func (f *flattener) cubic(b, c, d point, depth int) {
	a := f.cur
	if depth > 24 || (distToLine(b, a, d) <= flatTolerance && distToLine(c, a, d) <= flatTolerance) {
		f.line(d)
		return
	}
	ab, bc, cd := lerp(a, b, 0.5), lerp(b, c, 0.5), lerp(c, d, 0.5)
	abc, bcd := lerp(ab, bc, 0.5), lerp(bc, cd, 0.5)
	mid := lerp(abc, bcd, 0.5)
	f.cubic(ab, abc, mid, depth+1)
	f.cubic(bcd, cd, d, depth+1)
}

func (op MoveTo) flatten(f *flattener) { f.move(fromFixed(fixed.Point26_6(op))) }

func (op LineTo) flatten(f *flattener) { f.line(fromFixed(fixed.Point26_6(op))) }

func (op QuadTo) flatten(f *flattener) {
	f.quad(fromFixed(op[0]), fromFixed(op[1]), 0)
}

func (op CubicTo) flatten(f *flattener) {
	f.cubic(fromFixed(op[0]), fromFixed(op[1]), fromFixed(op[2]), 0)
}

func (op Close) flatten(f *flattener) {
	if f.started {
		f.line(f.start)
	}
}

// Length returns the total length of the path in user units.
// Malformed geometry can produce a non-finite total; callers that
// need a guarantee should go through Measure, which rejects it.
func (p Path) Length() float64 {
	var f flattener
	for _, op := range p {
		op.flatten(&f)
	}
	return f.total
}
