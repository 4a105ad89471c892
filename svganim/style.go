package svganim

import (
	"strings"

	"github.com/steve02081504/animate-SVG/svgdom"
)

// Helpers over the style and class attributes. Style properties are
// set declaration-by-declaration, never appended blindly, so running
// the scheduler twice over one tree leaves a single declaration per
// property (the round-trip stability the exporter relies on).

type declaration struct {
	name, value string
}

func parseStyle(s string) []declaration {
	var decls []declaration
	for _, pair := range strings.Split(s, ";") {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) != 2 {
			continue
		}
		k := strings.TrimSpace(kv[0])
		v := strings.TrimSpace(kv[1])
		if k != "" {
			decls = append(decls, declaration{k, v})
		}
	}
	return decls
}

func serializeStyle(decls []declaration) string {
	chunks := make([]string, len(decls))
	for i, d := range decls {
		chunks[i] = d.name + ":" + d.value
	}
	return strings.Join(chunks, ";")
}

// setStyleProps updates the element's style attribute, replacing
// existing declarations of the same property in place.
func setStyleProps(n *svgdom.Node, props []declaration) {
	decls := parseStyle(n.AttrOr("style", ""))
	for _, p := range props {
		found := false
		for i := range decls {
			if decls[i].name == p.name {
				decls[i].value = p.value
				found = true
				break
			}
		}
		if !found {
			decls = append(decls, p)
		}
	}
	n.SetAttr("style", serializeStyle(decls))
}

// removeStyleProps deletes the given properties from the element's
// style attribute, dropping the attribute entirely when empty.
func removeStyleProps(n *svgdom.Node, names ...string) {
	decls := parseStyle(n.AttrOr("style", ""))
	kept := decls[:0]
	for _, d := range decls {
		drop := false
		for _, name := range names {
			if d.name == name {
				drop = true
				break
			}
		}
		if !drop {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		n.RemoveAttr("style")
		return
	}
	n.SetAttr("style", serializeStyle(kept))
}

func hasClass(n *svgdom.Node, class string) bool {
	for _, c := range strings.Fields(n.AttrOr("class", "")) {
		if c == class {
			return true
		}
	}
	return false
}

func addClass(n *svgdom.Node, class string) {
	if hasClass(n, class) {
		return
	}
	cur := n.AttrOr("class", "")
	if cur == "" {
		n.SetAttr("class", class)
		return
	}
	n.SetAttr("class", cur+" "+class)
}

func removeClass(n *svgdom.Node, class string) {
	fields := strings.Fields(n.AttrOr("class", ""))
	kept := fields[:0]
	for _, c := range fields {
		if c != class {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		n.RemoveAttr("class")
		return
	}
	n.SetAttr("class", strings.Join(kept, " "))
}
