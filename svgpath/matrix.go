package svgpath

import (
	"errors"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Matrix2D is an affine transform:
//
//	x' = A*x + C*y + E
//	y' = B*x + D*y + F
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// Mult returns a times b, so that applying the result is
// equivalent to applying b first, then a.
func (a Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: a.A*b.A + a.C*b.B,
		B: a.B*b.A + a.D*b.B,
		C: a.A*b.C + a.C*b.D,
		D: a.B*b.C + a.D*b.D,
		E: a.A*b.E + a.C*b.F + a.E,
		F: a.B*b.E + a.D*b.F + a.F,
	}
}

// Translate composes a translation onto the transform.
func (a Matrix2D) Translate(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale composes a scaling onto the transform.
func (a Matrix2D) Scale(x, y float64) Matrix2D {
	return a.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate composes a rotation (in radians) onto the transform.
func (a Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sin(theta), math.Cos(theta)
	return a.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX composes an x-axis skew (in radians) onto the transform.
func (a Matrix2D) SkewX(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY composes a y-axis skew (in radians) onto the transform.
func (a Matrix2D) SkewY(theta float64) Matrix2D {
	return a.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}

// Transform applies the transform to the point (x, y).
func (a Matrix2D) Transform(x, y float64) (float64, float64) {
	return a.A*x + a.C*y + a.E, a.B*x + a.D*y + a.F
}

// TFixed applies the transform to a fixed point.
func (a Matrix2D) TFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := a.Transform(float64(p.X)/64, float64(p.Y)/64)
	return toFixedP(x, y)
}

var errParamMismatch = errors.New("param mismatch")

func applyTransformOp(m1 Matrix2D, k string, pts []float64) (Matrix2D, error) {
	ln := len(pts)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(pts[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(pts[1], pts[2]).
				Rotate(pts[0]*math.Pi/180).
				Translate(-pts[1], -pts[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(pts[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(pts[0], pts[1])
		} else {
			return m1, errParamMismatch
		}
	case "skewx":
		if ln == 1 {
			m1 = m1.SkewX(pts[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "skewy":
		if ln == 1 {
			m1 = m1.SkewY(pts[0] * math.Pi / 180)
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(pts[0], pts[0])
		} else if ln == 2 {
			m1 = m1.Scale(pts[0], pts[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(Matrix2D{
				A: pts[0],
				B: pts[1],
				C: pts[2],
				D: pts[3],
				E: pts[4],
				F: pts[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

// ParseTransform compiles the content of an SVG transform attribute,
// composed onto base.
func ParseTransform(base Matrix2D, v string) (Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := base
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		pts, err := parsePoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = applyTransformOp(m1, strings.ToLower(strings.TrimSpace(d[0])), pts)
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}
