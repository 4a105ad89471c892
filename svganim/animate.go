package svganim

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/steve02081504/animate-SVG/svgdom"
	"github.com/steve02081504/animate-SVG/svgfetch"
)

// ErrInvalidRoot is returned when the document has no svg root to
// animate.
var ErrInvalidRoot = errors.New("svganim: document root is not an svg element")

// Animation is a handle over one running in-tree animation. The
// document plays until the configured duration elapses, after which
// the marker class and all per outline styling are removed again.
type Animation struct {
	root     *svgdom.Node
	duration time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	playing bool
}

// Duration reports the configured total duration.
func (a *Animation) Duration() time.Duration { return a.duration }

func pipelineLoader(cfg Config) *svgfetch.Loader {
	if cfg.Loader != nil {
		return cfg.Loader
	}
	return svgfetch.DefaultLoader()
}

func baseURL(doc *svgdom.Document, cfg Config) string {
	if cfg.BasePath != "" {
		return cfg.BasePath
	}
	return doc.URL
}

// Animate runs the full pipeline over the document in place: reuse
// references are expanded, outlines scheduled, the stylesheet
// injected, and the marker class added so the animation starts. The
// returned handle reverts the tree to its idle state once the
// duration elapses, or earlier through Reset.
func Animate(ctx context.Context, doc *svgdom.Document, cfg *Config) (*Animation, error) {
	if doc == nil || doc.Root == nil || doc.Root.Tag != "svg" {
		return nil, ErrInvalidRoot
	}
	c := cfg.withDefaults()

	e := &expander{loader: pipelineLoader(c)}
	e.expand(ctx, doc.Root, baseURL(doc, c), c.MaxDepth)
	Schedule(doc.Root, &c)
	addClass(doc.Root, markerClass)

	a := &Animation{
		root:     doc.Root,
		duration: c.AnimationDuration,
		playing:  true,
	}
	// assigned under the lock so an immediately firing timer sees it
	a.mu.Lock()
	a.timer = time.AfterFunc(c.AnimationDuration, a.Reset)
	a.mu.Unlock()
	return a, nil
}

// Playing reports whether the animation is still running.
func (a *Animation) Playing() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

// Reset returns the tree to its idle state immediately: the marker
// class comes off the root and every scheduled outline loses its
// timing styling. Safe to call more than once.
func (a *Animation) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.playing {
		return
	}
	a.playing = false
	if a.timer != nil {
		a.timer.Stop()
	}
	removeClass(a.root, markerClass)
	clearScheduling(a.root)
}

// clearScheduling strips the per outline timing styling written by
// Schedule. The injected stylesheet stays: without the marker class
// it is inert.
func clearScheduling(root *svgdom.Node) {
	var scheduled []*svgdom.Node
	root.Walk(func(n *svgdom.Node) bool {
		if hasClass(n, outlineClass) {
			scheduled = append(scheduled, n)
		}
		return true
	})
	for _, n := range scheduled {
		removeStyleProps(n,
			"stroke-dasharray", "stroke-dashoffset",
			"animation-duration", "animation-delay", "fill-opacity")
		removeClass(n, outlineClass)
	}
}

// ExportAnimated runs the pipeline over a clone of the document and
// serializes the result as a standalone SVG that animates on load.
// The input document is never modified.
func ExportAnimated(ctx context.Context, doc *svgdom.Document, cfg *Config) (string, error) {
	if doc == nil || doc.Root == nil || doc.Root.Tag != "svg" {
		return "", ErrInvalidRoot
	}
	c := cfg.withDefaults()

	clone := doc.Clone()
	e := &expander{loader: pipelineLoader(c)}
	e.expand(ctx, clone.Root, baseURL(clone, c), c.MaxDepth)
	Schedule(clone.Root, &c)
	addClass(clone.Root, markerClass)
	return clone.Serialize(), nil
}
