package diagram

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestToDOT_Basic(t *testing.T) {
	d := New("Basic")
	a := d.Node(KindUser, "a")
	b := d.Node(KindServer, "b")
	_ = d.Connect(a, b, Edge{})

	dot := ToDOT(d)

	if !strings.HasPrefix(dot, `digraph "Basic" {`) {
		t.Error("ToDOT() output missing digraph declaration")
	}
	if !strings.Contains(dot, `"n1" [`) {
		t.Error("ToDOT() output missing node a")
	}
	if !strings.Contains(dot, `"n2" [`) {
		t.Error("ToDOT() output missing node b")
	}
	if !strings.Contains(dot, `"n1" -> "n2" [dir="forward"];`) {
		t.Errorf("ToDOT() output missing edge:\n%s", dot)
	}
}

func TestToDOT_GraphAttrs(t *testing.T) {
	d := New("Title", WithDirection(TopToBottom))

	dot := ToDOT(d)

	if !strings.Contains(dot, `label="Title"`) {
		t.Error("ToDOT() missing diagram title label")
	}
	if !strings.Contains(dot, `rankdir="TB"`) {
		t.Error("ToDOT() missing rankdir")
	}
	if strings.Contains(dot, "->") {
		t.Error("ToDOT() emitted an edge for an edgeless diagram")
	}
}

func TestToDOT_Clusters(t *testing.T) {
	d := New("Clusters")
	outer := d.Cluster("Outer", Attrs{"rank": "same"})
	outer.Node(KindServer, "x")
	inner := outer.Cluster("Inner", nil)
	inner.Node(KindGo, "y")

	dot := ToDOT(d)

	for _, want := range []string{
		`subgraph "cluster_Outer" {`,
		`subgraph "cluster_Inner" {`,
		`rank="same"`,
		`label="Outer"`,
		`label="Inner"`,
		`bgcolor="#EBF3E7"`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("ToDOT() missing %q", want)
		}
	}
	if strings.Index(dot, "cluster_Inner") < strings.Index(dot, "cluster_Outer") {
		t.Error("ToDOT() nested cluster should follow its parent")
	}
}

func TestToDOT_Deterministic(t *testing.T) {
	build := func() string {
		d := New("Same", WithGraphAttrs(Attrs{"z": "1", "a": "2", "m": "3"}))
		c := d.Cluster("c", Attrs{"rank": "same"})
		a := c.Node(KindPython, "a")
		b := d.Node(KindReact, "b")
		_ = d.Connect(a, b, Edge{Label: "l", Color: "#000000", PenWidth: 2, Style: "dashed"})
		return ToDOT(d)
	}

	first := build()
	for i := 0; i < 20; i++ {
		if got := build(); got != first {
			t.Fatalf("ToDOT() not deterministic on run %d", i)
		}
	}
}

func TestToDOT_SortedAttrs(t *testing.T) {
	got := fmtAttrs(Attrs{"b": "2", "c": "3", "a": "1"})
	want := `a="1", b="2", c="3"`
	if got != want {
		t.Errorf("fmtAttrs() = %q, want %q", got, want)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "abc", `"abc"`},
		{"newline", "CD\n(capture)", `"CD\n(capture)"`},
		{"quotes", `say "hi"`, `"say \"hi\""`},
		{"backslash", `a\b`, `"a\\b"`},
		{"unicode kept", "映像", `"映像"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quote(tt.in); got != tt.want {
				t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestNodeAttrs_Signature(t *testing.T) {
	n := &Node{Label: "RS", Kind: KindServer}
	attrs := n.Attrs()

	if attrs["shape"] != "cylinder" {
		t.Errorf("server shape = %q, want cylinder", attrs["shape"])
	}
	if attrs["style"] != "rounded,filled" {
		t.Errorf("server style = %q, want rounded,filled", attrs["style"])
	}
	if _, ok := attrs["image"]; ok {
		t.Error("non-custom node should not carry an image")
	}
}

func TestNodeAttrs_CustomIcon(t *testing.T) {
	icon := filepath.Join(t.TempDir(), "camera.png")
	if err := os.WriteFile(icon, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	n := &Node{Label: "Camera\nbody", Kind: KindCustom, Icon: icon}
	attrs := n.Attrs()

	if attrs["shape"] != "none" {
		t.Errorf("icon shape = %q, want none", attrs["shape"])
	}
	if attrs["image"] != icon {
		t.Errorf("icon image = %q, want %q", attrs["image"], icon)
	}
	if attrs["height"] != "2.3" {
		t.Errorf("icon height = %q, want 2.3 for a two-line label", attrs["height"])
	}
}

func TestNodeAttrs_MissingIconFallsBack(t *testing.T) {
	n := &Node{Label: "Camera", Kind: KindCustom, Icon: "/does/not/exist.png"}
	attrs := n.Attrs()

	if _, ok := attrs["image"]; ok {
		t.Error("missing icon should not be referenced")
	}
	if attrs["shape"] != signatures[KindCustom].shape {
		t.Errorf("missing icon shape = %q, want custom signature", attrs["shape"])
	}
}
