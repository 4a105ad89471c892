// Turns a static SVG tree into a self contained drawing animation:
// reuse references are expanded into concrete geometry, every outline
// gets a dash based draw schedule proportional to its length, and one
// shared keyframe stylesheet is injected into the tree.
package svganim

import (
	"time"

	"github.com/steve02081504/animate-SVG/svgfetch"
)

const (
	// DefaultDuration is the shared animation duration when the
	// configuration leaves it unset.
	DefaultDuration = 3 * time.Second

	// DefaultLineThickness is the stroke width, as a percentage,
	// applied while an outline is being drawn.
	DefaultLineThickness = 0.5

	// DefaultMaxDepth bounds the reference expansion recursion.
	DefaultMaxDepth = 10
)

// Config tunes one pipeline invocation. The zero value of every field
// selects its default, so callers only set what they care about.
type Config struct {
	// AnimationDuration is the shared total duration: outlines draw
	// within the first 70% of it and fill in during the remainder.
	AnimationDuration time.Duration

	// LineThickness is the stroke width percentage used while drawing.
	LineThickness float64

	// BasePath is the URL relative reference targets resolve against.
	// When empty, the document's own URL is used.
	BasePath string

	// MaxDepth bounds recursive reference expansion.
	MaxDepth int

	// Loader fetches external documents; nil selects the shared
	// process-wide loader with its unbounded cache.
	Loader *svgfetch.Loader
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.AnimationDuration <= 0 {
		out.AnimationDuration = DefaultDuration
	}
	if out.LineThickness <= 0 {
		out.LineThickness = DefaultLineThickness
	}
	if out.MaxDepth <= 0 {
		out.MaxDepth = DefaultMaxDepth
	}
	return out
}
