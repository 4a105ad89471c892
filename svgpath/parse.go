package svgpath

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

// This file compiles the `d` attribute of SVG path elements.

var unitSuffixes = []string{"cm", "mm", "px", "pt", "pc", "in", "em", "%"}

func trimSuffixes(a string) (b string) {
	b = strings.TrimSpace(a)
	for _, v := range unitSuffixes {
		b = strings.TrimSuffix(b, v)
	}
	return
}

// ParseFloat works like strconv.ParseFloat, but allows a trailing unit suffix.
func ParseFloat(s string, bitSize int) (float64, error) {
	return strconv.ParseFloat(trimSuffixes(s), bitSize)
}

// parsePoints reads a list of coordinates. Numbers may be separated by
// commas, whitespace, a sign starting the next number, or a second
// decimal point, all of which occur in minified path data.
func parsePoints(s string) ([]float64, error) {
	var (
		pts []float64
		cur strings.Builder
	)
	flush := func() error {
		if cur.Len() == 0 {
			return nil
		}
		f, err := strconv.ParseFloat(cur.String(), 64)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", cur.String(), err)
		}
		pts = append(pts, f)
		cur.Reset()
		return nil
	}
	last := byte(0)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == ',' || c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if err := flush(); err != nil {
				return nil, err
			}
		case c == '-' || c == '+':
			// a sign starts a new number unless it follows an exponent
			if cur.Len() > 0 && last != 'e' && last != 'E' {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			cur.WriteByte(c)
		case c == '.':
			if strings.ContainsRune(cur.String(), '.') {
				if err := flush(); err != nil {
					return nil, err
				}
			}
			cur.WriteByte(c)
		default:
			cur.WriteByte(c)
		}
		last = c
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return pts, nil
}

// pathCursor accumulates the state needed while compiling path data
type pathCursor struct {
	path                   Path
	placeX, placeY         float64
	pathStartX, pathStartY float64
	cntlPtX, cntlPtY       float64
	lastKey                byte
	inPath                 bool
}

var errCmdMismatch = errors.New("command param mismatch")

// CompilePath translates the SVG path description string into a Path.
func CompilePath(svgd string) (Path, error) {
	c := pathCursor{pathStartX: -1, pathStartY: -1, lastKey: ' '}
	lastIndex := -1
	for i, v := range svgd {
		if unicode.IsLetter(v) && v != 'e' && v != 'E' {
			if lastIndex != -1 {
				if err := c.addSeg(svgd[lastIndex:i]); err != nil {
					return nil, err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgd[lastIndex:]); err != nil {
			return nil, err
		}
	}
	return c.path, nil
}

// reflectControl computes the first control point of a smooth
// curve command by reflecting the previous control point.
func (c *pathCursor) reflectControl(prev ...byte) (x, y float64) {
	for _, k := range prev {
		if c.lastKey == k {
			return 2*c.placeX - c.cntlPtX, 2*c.placeY - c.cntlPtY
		}
	}
	return c.placeX, c.placeY
}

func (c *pathCursor) moveTo(x, y float64) {
	c.path.Start(toFixedP(x, y))
	c.placeX, c.placeY = x, y
	c.pathStartX, c.pathStartY = x, y
	c.inPath = true
}

func (c *pathCursor) lineTo(x, y float64) {
	if !c.inPath {
		c.moveTo(x, y)
		return
	}
	c.path.Line(toFixedP(x, y))
	c.placeX, c.placeY = x, y
}

// addSeg compiles a single segment of path data, which is one command
// letter followed by its coordinates.
func (c *pathCursor) addSeg(seg string) error {
	k := seg[0]
	pts, err := parsePoints(seg[1:])
	if err != nil {
		return err
	}
	rel := k >= 'a' // lowercase commands take relative coordinates

	mustLen := func(per int) error {
		if per == 0 {
			if len(pts) != 0 {
				return errCmdMismatch
			}
			return nil
		}
		if len(pts) == 0 || len(pts)%per != 0 {
			return errCmdMismatch
		}
		return nil
	}

	switch k {
	case 'M', 'm':
		if err := mustLen(2); err != nil {
			return err
		}
		for i := 0; i < len(pts); i += 2 {
			x, y := pts[i], pts[i+1]
			if rel {
				x += c.placeX
				y += c.placeY
			}
			if i == 0 {
				c.moveTo(x, y)
			} else {
				// extra coordinate pairs are implicit line-to commands
				c.lineTo(x, y)
			}
		}
	case 'L', 'l':
		if err := mustLen(2); err != nil {
			return err
		}
		for i := 0; i < len(pts); i += 2 {
			x, y := pts[i], pts[i+1]
			if rel {
				x += c.placeX
				y += c.placeY
			}
			c.lineTo(x, y)
		}
	case 'H', 'h':
		if err := mustLen(1); err != nil {
			return err
		}
		for _, x := range pts {
			if rel {
				x += c.placeX
			}
			c.lineTo(x, c.placeY)
		}
	case 'V', 'v':
		if err := mustLen(1); err != nil {
			return err
		}
		for _, y := range pts {
			if rel {
				y += c.placeY
			}
			c.lineTo(c.placeX, y)
		}
	case 'C', 'c':
		if err := mustLen(6); err != nil {
			return err
		}
		for i := 0; i < len(pts); i += 6 {
			p := append([]float64{}, pts[i:i+6]...)
			if rel {
				for j := 0; j < 6; j += 2 {
					p[j] += c.placeX
					p[j+1] += c.placeY
				}
			}
			c.path.CubeBezier(toFixedP(p[0], p[1]), toFixedP(p[2], p[3]), toFixedP(p[4], p[5]))
			c.cntlPtX, c.cntlPtY = p[2], p[3]
			c.placeX, c.placeY = p[4], p[5]
			c.lastKey = k
		}
	case 'S', 's':
		if err := mustLen(4); err != nil {
			return err
		}
		for i := 0; i < len(pts); i += 4 {
			p := append([]float64{}, pts[i:i+4]...)
			if rel {
				for j := 0; j < 4; j += 2 {
					p[j] += c.placeX
					p[j+1] += c.placeY
				}
			}
			c1x, c1y := c.reflectControl('C', 'c', 'S', 's')
			c.path.CubeBezier(toFixedP(c1x, c1y), toFixedP(p[0], p[1]), toFixedP(p[2], p[3]))
			c.cntlPtX, c.cntlPtY = p[0], p[1]
			c.placeX, c.placeY = p[2], p[3]
			c.lastKey = k
		}
	case 'Q', 'q':
		if err := mustLen(4); err != nil {
			return err
		}
		for i := 0; i < len(pts); i += 4 {
			p := append([]float64{}, pts[i:i+4]...)
			if rel {
				for j := 0; j < 4; j += 2 {
					p[j] += c.placeX
					p[j+1] += c.placeY
				}
			}
			c.path.QuadBezier(toFixedP(p[0], p[1]), toFixedP(p[2], p[3]))
			c.cntlPtX, c.cntlPtY = p[0], p[1]
			c.placeX, c.placeY = p[2], p[3]
			c.lastKey = k
		}
	case 'T', 't':
		if err := mustLen(2); err != nil {
			return err
		}
		for i := 0; i < len(pts); i += 2 {
			x, y := pts[i], pts[i+1]
			if rel {
				x += c.placeX
				y += c.placeY
			}
			c1x, c1y := c.reflectControl('Q', 'q', 'T', 't')
			c.path.QuadBezier(toFixedP(c1x, c1y), toFixedP(x, y))
			c.cntlPtX, c.cntlPtY = c1x, c1y
			c.placeX, c.placeY = x, y
			c.lastKey = k
		}
	case 'A', 'a':
		if err := mustLen(7); err != nil {
			return err
		}
		for i := 0; i < len(pts); i += 7 {
			p := append([]float64{}, pts[i:i+7]...)
			if rel {
				p[5] += c.placeX
				p[6] += c.placeY
			}
			c.addArcFromA(p)
		}
	case 'Z', 'z':
		if err := mustLen(0); err != nil {
			return err
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX, c.placeY = c.pathStartX, c.pathStartY
			c.inPath = false
		}
	default:
		return fmt.Errorf("unknown path command %q", string(k))
	}
	if k != 'C' && k != 'c' && k != 'S' && k != 's' &&
		k != 'Q' && k != 'q' && k != 'T' && k != 't' {
		c.lastKey = k
	}
	return nil
}

// addArcFromA adds an arc command to the cursor path using the start,
// radii, rotation and flags in pts (rx ry x-rot large-arc sweep x y).
func (c *pathCursor) addArcFromA(pts []float64) {
	if pts[0] == 0 || pts[1] == 0 {
		// SVG says degenerate radii collapse to a straight line
		c.lineTo(pts[5], pts[6])
		return
	}
	rotX := pts[2] * math.Pi / 180
	cx, cy := findEllipseCenter(&pts[0], &pts[1], rotX, c.placeX, c.placeY, pts[5], pts[6], pts[4] == 0, pts[3] == 0)
	lx, ly := c.path.addArc(pts, cx, cy, c.placeX, c.placeY)
	c.placeX, c.placeY = lx, ly
}
