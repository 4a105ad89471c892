package svgdom

import (
	"strings"
	"testing"
)

const sample = `<svg viewBox="0 0 100 100"><defs><circle id="dot" r="4"/></defs><g class="layer"><use href="#dot" x="10"/></g></svg>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(sample)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	return doc
}

func TestParseRejectsGarbage(t *testing.T) {
	for _, s := range []string{
		"",
		"not xml at all",
		"<svg><unclosed></svg>",
		"<a/><b/>",
	} {
		if _, err := ParseString(s); err == nil {
			t.Errorf("expected parse error for %q", s)
		}
	}
}

func TestParseBuildsTree(t *testing.T) {
	doc := parseSample(t)
	if doc.Root.Tag != "svg" {
		t.Fatalf("expected svg root, got %s", doc.Root.Tag)
	}
	if len(doc.Root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(doc.Root.Children))
	}
	g := doc.Root.Children[1]
	if g.Tag != "g" || g.Parent != doc.Root {
		t.Errorf("unexpected second child %s", g.Tag)
	}
}

func TestAttrMatchesNamespacedNames(t *testing.T) {
	doc, err := ParseString(`<svg xmlns:xlink="http://www.w3.org/1999/xlink"><use xlink:href="#a"/></svg>`)
	if err != nil {
		t.Fatal(err)
	}
	use := doc.Root.FindAll("use")[0]
	if v, ok := use.Attr("href"); !ok || v != "#a" {
		t.Errorf("expected href #a through xlink, got %q (%v)", v, ok)
	}
}

func TestSetAttrPreservesOrder(t *testing.T) {
	n := NewElement("rect")
	n.SetAttr("x", "1")
	n.SetAttr("y", "2")
	n.SetAttr("x", "3")
	if len(n.Attrs) != 2 {
		t.Fatalf("expected 2 attrs, got %d", len(n.Attrs))
	}
	if n.Attrs[0].Value != "3" || n.Attrs[1].Value != "2" {
		t.Errorf("unexpected attrs %v", n.Attrs)
	}
}

func TestElementByID(t *testing.T) {
	doc := parseSample(t)
	dot := doc.Root.ElementByID("dot")
	if dot == nil || dot.Tag != "circle" {
		t.Fatalf("expected circle for id dot, got %v", dot)
	}
	if doc.Root.ElementByID("missing") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestCloneDetaches(t *testing.T) {
	doc := parseSample(t)
	g := doc.Root.Children[1]
	c := g.Clone()
	if c.Parent != nil {
		t.Error("clone should be detached")
	}
	c.Children[0].SetAttr("x", "99")
	if v := g.Children[0].AttrOr("x", ""); v != "10" {
		t.Errorf("mutating the clone changed the original: x=%q", v)
	}
	if c.Root() != c {
		t.Error("detached clone should be its own root")
	}
}

func TestReplaceChild(t *testing.T) {
	doc := parseSample(t)
	g := doc.Root.Children[1]
	use := g.Children[0]
	repl := NewElement("g")
	if !g.ReplaceChild(use, repl) {
		t.Fatal("replace failed")
	}
	if g.Children[0] != repl || repl.Parent != g {
		t.Error("replacement not wired into the tree")
	}
	if use.Parent != nil {
		t.Error("replaced node should be detached")
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	doc := parseSample(t)
	out := doc.Serialize()
	doc2, err := ParseString(out)
	if err != nil {
		t.Fatalf("can't reparse serialized output: %s\n%s", err, out)
	}
	if doc2.Serialize() != out {
		t.Errorf("serialization is not stable:\n%s\n%s", out, doc2.Serialize())
	}
	if !strings.Contains(out, `href="#dot"`) {
		t.Errorf("lost attribute in round trip: %s", out)
	}
}

func TestSerializeEscapes(t *testing.T) {
	n := NewElement("text")
	n.SetAttr("data-v", `a<b&"c"`)
	n.AppendChild(NewText("x < y & z"))
	out := n.Serialize()
	if _, err := ParseString("<svg>" + out + "</svg>"); err != nil {
		t.Errorf("escaped output does not reparse: %s\n%s", err, out)
	}
}

func TestWalkPrunes(t *testing.T) {
	doc := parseSample(t)
	var seen []string
	doc.Root.Walk(func(n *Node) bool {
		seen = append(seen, n.Tag)
		return n.Tag != "defs"
	})
	for _, tag := range seen {
		if tag == "circle" {
			t.Error("walk descended into a pruned subtree")
		}
	}
}
