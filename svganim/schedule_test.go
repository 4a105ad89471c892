package svganim

import (
	"strings"
	"testing"
	"time"

	"github.com/steve02081504/animate-SVG/svgdom"
)

func parseDoc(t *testing.T, markup string) *svgdom.Document {
	t.Helper()
	doc, err := svgdom.ParseString(markup)
	if err != nil {
		t.Fatalf("can't parse document: %s", err)
	}
	return doc
}

// styleProp extracts one declaration from the element's style attribute.
func styleProp(n *svgdom.Node, name string) string {
	for _, d := range parseStyle(n.AttrOr("style", "")) {
		if d.name == name {
			return d.value
		}
	}
	return ""
}

func TestScheduleDurations(t *testing.T) {
	doc := parseDoc(t, `<svg>
		<path id="a" d="M0 0H10"/>
		<path id="b" d="M0 0H5"/>
		<path id="c" d="M0 0H1"/>
	</svg>`)
	Schedule(doc.Root, &Config{AnimationDuration: 3 * time.Second})

	for _, tc := range []struct {
		id   string
		want string
	}{
		// lengths 10, 5 and 1: the longest draws for most of the
		// window, short outlines are slowed down so they do not flash
		{"a", "2.226s,3s"},
		{"b", "1.302s,3s"},
		{"c", "1.47s,3s"},
	} {
		n := doc.Root.ElementByID(tc.id)
		if got := styleProp(n, "animation-duration"); got != tc.want {
			t.Errorf("%s: animation-duration = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestScheduleDelays(t *testing.T) {
	doc := parseDoc(t, `<svg>
		<path id="a" d="M0 0H10"/>
		<path id="b" d="M0 0H5"/>
		<path id="c" d="M0 0H1"/>
	</svg>`)
	Schedule(doc.Root, nil)

	for _, tc := range []struct {
		id   string
		want string
	}{
		{"a", "0s,0s"},
		{"b", "0.333s,0s"},
		{"c", "0.667s,0s"},
	} {
		n := doc.Root.ElementByID(tc.id)
		if got := styleProp(n, "animation-delay"); got != tc.want {
			t.Errorf("%s: animation-delay = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestScheduleDashSetup(t *testing.T) {
	doc := parseDoc(t, `<svg><path id="a" d="M0 0H10"/></svg>`)
	Schedule(doc.Root, nil)

	n := doc.Root.ElementByID("a")
	if got := styleProp(n, "stroke-dasharray"); got != "10" {
		t.Errorf("stroke-dasharray = %q, want 10", got)
	}
	if got := styleProp(n, "stroke-dashoffset"); got != "10" {
		t.Errorf("stroke-dashoffset = %q, want 10", got)
	}
	if got := styleProp(n, "fill-opacity"); got != "0" {
		t.Errorf("fill-opacity = %q, want 0", got)
	}
	if !hasClass(n, outlineClass) {
		t.Error("scheduled outline is missing the class hook")
	}
}

func TestScheduleSingleOutline(t *testing.T) {
	doc := parseDoc(t, `<svg><path id="a" d="M0 0H10"/></svg>`)
	Schedule(doc.Root, &Config{AnimationDuration: 3 * time.Second})

	n := doc.Root.ElementByID("a")
	// with one outline the compensation turns negative and the draw
	// window shrinks to 49% of the total
	if got := styleProp(n, "animation-duration"); got != "1.47s,3s" {
		t.Errorf("animation-duration = %q", got)
	}
	if got := styleProp(n, "animation-delay"); got != "0s,0s" {
		t.Errorf("animation-delay = %q", got)
	}
}

func TestScheduleSkipsDefs(t *testing.T) {
	doc := parseDoc(t, `<svg>
		<defs><path id="tpl" d="M0 0H10"/></defs>
		<path id="a" d="M0 0H10"/>
	</svg>`)
	Schedule(doc.Root, nil)

	tpl := doc.Root.ElementByID("tpl")
	if _, ok := tpl.Attr("style"); ok {
		t.Error("template outline under defs was scheduled")
	}
	if hasClass(tpl, outlineClass) {
		t.Error("template outline under defs was tagged")
	}
	if !hasClass(doc.Root.ElementByID("a"), outlineClass) {
		t.Error("visible outline was not scheduled")
	}
}

func TestScheduleSkipsDegenerateOutlines(t *testing.T) {
	doc := parseDoc(t, `<svg>
		<path id="tiny" d="M0 0H0.05"/>
		<path id="broken" d="M0 0 L"/>
		<path id="a" d="M0 0H10"/>
	</svg>`)
	Schedule(doc.Root, nil)

	for _, id := range []string{"tiny", "broken"} {
		n := doc.Root.ElementByID(id)
		if _, ok := n.Attr("style"); ok {
			t.Errorf("%s should be left untouched", id)
		}
	}
	// the retained outline is alone, so its delay slots over 1
	if got := styleProp(doc.Root.ElementByID("a"), "animation-delay"); got != "0s,0s" {
		t.Errorf("animation-delay = %q", got)
	}
}

func TestScheduleInjectsStylesheetOnce(t *testing.T) {
	doc := parseDoc(t, `<svg><path d="M0 0H10"/></svg>`)
	Schedule(doc.Root, nil)
	Schedule(doc.Root, nil)

	out := doc.Serialize()
	if got := strings.Count(out, sentinel); got != 1 {
		t.Errorf("expected one injected stylesheet, got %d\n%s", got, out)
	}
	if got := strings.Count(out, "stroke-dasharray"); got != 1 {
		t.Errorf("expected one dasharray declaration, got %d\n%s", got, out)
	}
}

func TestScheduleStylesheetContent(t *testing.T) {
	doc := parseDoc(t, `<svg><path d="M0 0H10"/></svg>`)
	Schedule(doc.Root, &Config{LineThickness: 1.5})

	out := doc.Serialize()
	for _, want := range []string{
		"@keyframes " + keyframeStroke,
		"@keyframes " + keyframeFill,
		"." + markerClass + " ." + outlineClass,
		"stroke-width: 1.5%",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("stylesheet is missing %q\n%s", want, out)
		}
	}
	var styles []*svgdom.Node
	doc.Root.Walk(func(n *svgdom.Node) bool {
		if n.Tag == "style" {
			styles = append(styles, n)
		}
		return true
	})
	if len(styles) != 1 || styles[0].Parent.Tag != "defs" {
		t.Error("stylesheet should live in defs")
	}
}

func TestScheduleRestyleKeepsValuesCurrent(t *testing.T) {
	doc := parseDoc(t, `<svg><path id="a" d="M0 0H10"/><path id="b" d="M0 0H5"/></svg>`)
	Schedule(doc.Root, &Config{AnimationDuration: 3 * time.Second})
	// rescheduling with a different duration replaces the values
	Schedule(doc.Root, &Config{AnimationDuration: 6 * time.Second})

	n := doc.Root.ElementByID("a")
	if got := styleProp(n, "animation-duration"); !strings.HasSuffix(got, ",6s") {
		t.Errorf("animation-duration = %q, want total 6s", got)
	}
}
