package svganim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/steve02081504/animate-SVG/svgdom"
	"github.com/steve02081504/animate-SVG/svgpath"
)

const (
	// markerClass on the root element arms the injected stylesheet;
	// removing it stops the animation without touching per element
	// styling.
	markerClass = "svg-draw"

	// outlineClass tags every scheduled outline so the shared CSS
	// rule, and later cleanup, can find them.
	outlineClass = "svg-draw-path"

	keyframeStroke = "svg-draw-stroke"
	keyframeFill   = "svg-draw-fill"

	// sentinel detects an already injected stylesheet.
	sentinel = "@keyframes " + keyframeStroke

	// drawPortion is the fraction of the total duration spent
	// drawing outlines; the remainder fades the fills in.
	drawPortion = 0.7

	// lengthEpsilon filters out degenerate outlines whose dash
	// animation would be invisible.
	lengthEpsilon = 0.1
)

// Schedule measures every visible outline under root and writes its
// draw timing as inline style properties, then injects the shared
// keyframe stylesheet. Running it twice is a no-op in effect: style
// properties are replaced, not appended, and the stylesheet is
// injected at most once.
func Schedule(root *svgdom.Node, cfg *Config) {
	c := cfg.withDefaults()

	outlines := collectOutlines(root)
	if len(outlines) == 0 {
		injectStylesheet(root, c.LineThickness)
		return
	}

	minLen, maxLen := outlines[0].length, outlines[0].length
	for _, o := range outlines[1:] {
		if o.length < minLen {
			minLen = o.length
		}
		if o.length > maxLen {
			maxLen = o.length
		}
	}

	total := c.AnimationDuration.Seconds()
	n := len(outlines)
	for i, o := range outlines {
		relative := o.length / maxLen
		compensation := (minLen / maxLen) / relative * (drawPortion - minLen/maxLen)
		duration := (relative + compensation) * drawPortion * total
		delay := float64(i) / float64(n)

		addClass(o.node, outlineClass)
		setStyleProps(o.node, []declaration{
			{"stroke-dasharray", formatFloat(o.length)},
			{"stroke-dashoffset", formatFloat(o.length)},
			{"animation-duration", formatFloat(duration) + "s," + formatFloat(total) + "s"},
			{"animation-delay", formatFloat(delay) + "s,0s"},
			{"fill-opacity", "0"},
		})
	}

	injectStylesheet(root, c.LineThickness)
}

type outline struct {
	node   *svgdom.Node
	length float64
}

// collectOutlines gathers measurable outlines in document order,
// skipping defs subtrees entirely: templates there are only rendered
// through references, never directly. Outlines that cannot be
// measured, or whose length is negligible, are left untouched.
func collectOutlines(root *svgdom.Node) []outline {
	var out []outline
	root.Walk(func(n *svgdom.Node) bool {
		if n.Tag == "defs" {
			return false
		}
		if !svgpath.IsOutline(n.Tag) {
			return true
		}
		length, err := svgpath.Measure(n)
		if err != nil || length <= lengthEpsilon {
			return true
		}
		out = append(out, outline{n, length})
		return true
	})
	return out
}

// injectStylesheet appends a style element holding the shared rule
// and keyframes to the document's defs, creating the defs container
// when absent. A stylesheet already carrying the keyframes is left
// alone.
func injectStylesheet(root *svgdom.Node, thickness float64) {
	if hasStylesheet(root) {
		return
	}
	var defs *svgdom.Node
	for _, c := range root.Children {
		if c.Tag == "defs" {
			defs = c
			break
		}
	}
	if defs == nil {
		defs = svgdom.NewElement("defs")
		root.AppendChild(defs)
	}
	style := svgdom.NewElement("style")
	style.SetAttr("type", "text/css")
	style.AppendChild(svgdom.NewText(stylesheet(thickness)))
	defs.AppendChild(style)
}

func hasStylesheet(root *svgdom.Node) bool {
	found := false
	root.Walk(func(n *svgdom.Node) bool {
		if found {
			return false
		}
		if n.Tag != "style" {
			return true
		}
		for _, c := range n.Children {
			if strings.Contains(c.Text, sentinel) {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func stylesheet(thickness float64) string {
	width := formatFloat(thickness) + "%"
	return fmt.Sprintf(`
.%s .%s {
  animation-name: %s, %s;
  animation-timing-function: ease;
  animation-fill-mode: forwards;
}
@keyframes %s {
  to { stroke-dashoffset: 0; }
}
@keyframes %s {
  0%% { fill-opacity: 0; stroke-width: %s; }
  65%% { fill-opacity: 0; stroke-width: %s; }
  100%% { fill-opacity: 1; stroke-width: 0; }
}
`, markerClass, outlineClass,
		keyframeStroke, keyframeFill,
		keyframeStroke,
		keyframeFill, width, width)
}

// formatFloat renders a value with at most three decimals, trimmed.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', 3, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	if s == "" || s == "-" {
		return "0"
	}
	return s
}
