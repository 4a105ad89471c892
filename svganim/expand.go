package svganim

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/steve02081504/animate-SVG/svgdom"
	"github.com/steve02081504/animate-SVG/svgfetch"
)

// Reference expansion: every use element is replaced in place by a
// group holding a clone of its target, local or fetched from another
// document, and the substituted content is expanded in turn.

// inheritedAttrs is the fixed allow-list of presentation attributes
// migrated from a reference onto its replacement group, preserving
// visual inheritance after substitution.
var inheritedAttrs = []string{
	"class", "style", "fill", "fill-opacity", "stroke", "stroke-width",
	"stroke-linecap", "stroke-linejoin", "opacity", "color",
}

type expander struct {
	loader *svgfetch.Loader

	// mu serializes structural tree mutation: sibling references share
	// a parent, and their resolutions run concurrently.
	mu sync.Mutex
}

// Expand recursively substitutes every reuse reference under root,
// resolving relative targets against baseURL and descending at most
// maxDepth levels. Unresolvable references are dropped silently;
// expansion never fails.
func Expand(ctx context.Context, root *svgdom.Node, baseURL string, maxDepth int) {
	e := &expander{loader: svgfetch.DefaultLoader()}
	e.expand(ctx, root, baseURL, maxDepth)
}

func (e *expander) expand(ctx context.Context, root *svgdom.Node, baseURL string, depth int) {
	var refs []*svgdom.Node
	// references under defs belong to templates: they expand inside
	// the clones substituted for their referencing elements, never in
	// the template itself
	root.Walk(func(n *svgdom.Node) bool {
		if n.Tag == "defs" {
			return false
		}
		if n.Tag == "use" {
			refs = append(refs, n)
		}
		return true
	})
	if len(refs) == 0 {
		return
	}
	if depth <= 0 {
		// depth exhausted: remaining references stay in the tree
		return
	}
	var g errgroup.Group
	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			// sibling resolutions are independent, failures never
			// cancel each other
			e.resolve(ctx, ref, baseURL, depth)
			return nil
		})
	}
	_ = g.Wait()
}

// locator splits a reference target into its document part and
// fragment id. An empty docURL means the target is document-local.
func splitLocator(target string) (docURL, fragment string) {
	if strings.HasPrefix(target, "#") {
		return "", target[1:]
	}
	if i := strings.IndexByte(target, '#'); i >= 0 {
		return target[:i], target[i+1:]
	}
	return target, ""
}

func resolveAgainst(base, ref string) string {
	bu, err := url.Parse(base)
	if err != nil {
		return ref
	}
	ru, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return bu.ResolveReference(ru).String()
}

func (e *expander) resolve(ctx context.Context, ref *svgdom.Node, baseURL string, depth int) {
	target, ok := ref.Attr("href")
	if !ok || target == "" {
		return // nothing to resolve, leave the element alone
	}

	docPart, fragment := splitLocator(target)
	var (
		resolved *svgdom.Node
		nextBase = baseURL
	)
	if docPart == "" {
		// Document-local reference. Searching from the topmost
		// ancestor covers both the attached tree and a detached
		// fragment holding the reference. The lock keeps the
		// traversal clear of sibling replacements.
		e.mu.Lock()
		resolved = ref.Root().ElementByID(fragment)
		e.mu.Unlock()
	} else {
		docURL := resolveAgainst(baseURL, docPart)
		doc, err := e.loader.Load(ctx, docURL)
		if err != nil || doc.Root == nil {
			e.drop(ref)
			return
		}
		if fragment == "" {
			resolved = doc.Root
		} else {
			resolved = doc.Root.ElementByID(fragment)
		}
		// nested relative references resolve against the fetched
		// document, not the referencing one
		nextBase = doc.URL
	}
	if resolved == nil {
		e.drop(ref)
		return
	}

	group := buildGroup(ref)

	// cloning and replacement run under the same lock: a sibling
	// resolution may be grafting into the very subtree being cloned
	e.mu.Lock()
	// symbol and defs wrappers are never rendered themselves, only
	// their children are inlined
	if resolved.Tag == "symbol" || resolved.Tag == "defs" {
		for _, c := range resolved.Children {
			group.AppendChild(c.Clone())
		}
	} else {
		group.AppendChild(resolved.Clone())
	}
	parent := ref.Parent
	if parent == nil || !parent.ReplaceChild(ref, group) {
		e.mu.Unlock()
		return
	}
	e.mu.Unlock()

	e.expand(ctx, group, nextBase, depth-1)
}

// drop removes an unresolvable reference without substitution.
func (e *expander) drop(ref *svgdom.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if ref.Parent != nil {
		ref.Parent.RemoveChild(ref)
	}
}

// buildGroup assembles the group element standing in for the
// reference, migrating its positioning and presentation attributes.
// The resolved content is cloned in afterwards, under the expander
// lock.
func buildGroup(ref *svgdom.Node) *svgdom.Node {
	group := svgdom.NewElement("g")

	// x/y offsets become a translate prepended to the reference's own
	// transform
	x := ref.AttrOr("x", "")
	y := ref.AttrOr("y", "")
	transform := ref.AttrOr("transform", "")
	if x != "" || y != "" {
		if x == "" {
			x = "0"
		}
		if y == "" {
			y = "0"
		}
		translate := fmt.Sprintf("translate(%s %s)", x, y)
		if transform == "" {
			transform = translate
		} else {
			transform = translate + " " + transform
		}
	}
	if transform != "" {
		group.SetAttr("transform", transform)
	}

	for _, name := range inheritedAttrs {
		if v, ok := ref.Attr(name); ok {
			group.SetAttr(name, v)
		}
	}
	return group
}
