// Implements a raster preview backend for animated documents,
// by wrapping rasterx. Only flat colors are supported: the preview
// exists to eyeball the expanded geometry, not to be a full renderer.
package svgraster

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/steve02081504/animate-SVG/svgdom"
	"github.com/steve02081504/animate-SVG/svgpath"
)

// drawState is the inherited paint context at one point of the walk.
type drawState struct {
	fill        color.Color // nil means painting is off
	stroke      color.Color
	strokeWidth float64
	opacity     float64
	transform   svgpath.Matrix2D
}

// Renderer rasterizes outlines into an RGBA image. Filling and
// stroking use separated rasterx instances to avoid shared state.
type Renderer struct {
	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
	scale  float64
}

// Render rasterizes the document into an image of the given pixel
// width, scaled uniformly from the viewBox (or the width/height
// attributes when no viewBox is declared).
func Render(doc *svgdom.Document, width int) (*image.RGBA, error) {
	if doc == nil || doc.Root == nil || doc.Root.Tag != "svg" {
		return nil, fmt.Errorf("render: not an svg document")
	}
	minX, minY, vbW, vbH, err := viewBox(doc.Root)
	if err != nil {
		return nil, err
	}
	scale := float64(width) / vbW
	height := int(vbH * scale)
	if height <= 0 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())

	rd := &Renderer{
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
		scale:  scale,
	}
	base := drawState{
		fill:        color.NRGBA{0, 0, 0, 255},
		strokeWidth: 1,
		opacity:     1,
		transform:   svgpath.Identity.Scale(scale, scale).Translate(-minX, -minY),
	}
	rd.walk(doc.Root, base)
	return img, nil
}

func viewBox(root *svgdom.Node) (minX, minY, w, h float64, err error) {
	if vb, ok := root.Attr("viewBox"); ok {
		fields := strings.Fields(strings.ReplaceAll(vb, ",", " "))
		if len(fields) != 4 {
			return 0, 0, 0, 0, fmt.Errorf("render: malformed viewBox %q", vb)
		}
		var vals [4]float64
		for i, f := range fields {
			vals[i], err = svgpath.ParseFloat(f, 64)
			if err != nil {
				return 0, 0, 0, 0, fmt.Errorf("render: malformed viewBox %q", vb)
			}
		}
		if vals[2] <= 0 || vals[3] <= 0 {
			return 0, 0, 0, 0, fmt.Errorf("render: empty viewBox %q", vb)
		}
		return vals[0], vals[1], vals[2], vals[3], nil
	}
	w, errW := svgpath.ParseFloat(root.AttrOr("width", ""), 64)
	h, errH := svgpath.ParseFloat(root.AttrOr("height", ""), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return 0, 0, 0, 0, fmt.Errorf("render: document declares no usable size")
	}
	return 0, 0, w, h, nil
}

func (rd *Renderer) walk(n *svgdom.Node, state drawState) {
	if n.Tag == "defs" || n.Tag == "style" || n.Tag == "symbol" {
		return
	}
	state = applyAttrs(n, state)
	if svgpath.IsOutline(n.Tag) {
		rd.draw(n, state)
	}
	for _, c := range n.Children {
		if c.IsElement() {
			rd.walk(c, state)
		}
	}
}

// applyAttrs folds the element's presentation attributes and inline
// style into the inherited state. The style attribute wins over the
// presentation attribute of the same name.
func applyAttrs(n *svgdom.Node, state drawState) drawState {
	props := map[string]string{}
	for _, name := range []string{"fill", "stroke", "stroke-width", "opacity", "fill-opacity", "transform"} {
		if v, ok := n.Attr(name); ok {
			props[name] = v
		}
	}
	for _, pair := range strings.Split(n.AttrOr("style", ""), ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		props[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
	}

	if v, ok := props["fill"]; ok {
		if c, err := ParseColor(v); err == nil {
			state.fill = c
		}
	}
	if v, ok := props["stroke"]; ok {
		if c, err := ParseColor(v); err == nil {
			state.stroke = c
		}
	}
	if v, ok := props["stroke-width"]; ok {
		if f, err := svgpath.ParseFloat(v, 64); err == nil {
			state.strokeWidth = f
		}
	}
	for _, name := range []string{"opacity", "fill-opacity"} {
		if v, ok := props[name]; ok {
			if f, err := svgpath.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
				state.opacity *= f
			}
		}
	}
	if v, ok := props["transform"]; ok {
		if m, err := svgpath.ParseTransform(state.transform, v); err == nil {
			state.transform = m
		}
	}
	return state
}

func (rd *Renderer) draw(n *svgdom.Node, state drawState) {
	path, err := svgpath.ElementPath(n)
	if err != nil || len(path) == 0 {
		return
	}
	if state.fill != nil {
		rd.filler.Clear()
		rd.filler.Scanner.SetColor(rasterx.ApplyOpacity(state.fill, state.opacity))
		path.AddTo(rd.filler, state.transform)
		rd.filler.Draw()
	}
	if state.stroke != nil && state.strokeWidth > 0 {
		rd.dasher.Clear()
		rd.dasher.Scanner.SetColor(rasterx.ApplyOpacity(state.stroke, state.opacity))
		width := fixed.Int26_6(state.strokeWidth * rd.scale * 64)
		rd.dasher.SetStroke(
			width, 4<<6, rasterx.ButtCap, rasterx.ButtCap,
			rasterx.FlatGap, rasterx.Miter, nil, 0,
		)
		path.AddTo(rd.dasher, state.transform)
		rd.dasher.Draw()
	}
}
