package diagram

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind selects the visual signature of a node.
type Kind string

const (
	KindUser   Kind = "user"
	KindClient Kind = "client"
	KindMobile Kind = "mobile"
	KindTablet Kind = "tablet"
	KindServer Kind = "server"
	KindPython Kind = "python"
	KindGo     Kind = "go"
	KindReact  Kind = "react"
	KindCustom Kind = "custom"
	KindBlank  Kind = "blank"
)

type signature struct {
	shape     string
	fillcolor string
	fontcolor string
}

// signatures stand in for icon images. Colors follow the usual brand or
// category palette of each kind.
var signatures = map[Kind]signature{
	KindUser:   {shape: "egg", fillcolor: "#DCE8F5", fontcolor: "#2D3436"},
	KindClient: {shape: "box3d", fillcolor: "#E8E8E8", fontcolor: "#2D3436"},
	KindMobile: {shape: "box", fillcolor: "#D5E8D4", fontcolor: "#2D3436"},
	KindTablet: {shape: "box", fillcolor: "#DAE8FC", fontcolor: "#2D3436"},
	KindServer: {shape: "cylinder", fillcolor: "#F5F5F5", fontcolor: "#2D3436"},
	KindPython: {shape: "box", fillcolor: "#FFE873", fontcolor: "#2D3436"},
	KindGo:     {shape: "box", fillcolor: "#00ADD8", fontcolor: "#FFFFFF"},
	KindReact:  {shape: "hexagon", fillcolor: "#20232A", fontcolor: "#61DAFB"},
	KindCustom: {shape: "box", fillcolor: "#FFF2CC", fontcolor: "#2D3436"},
	KindBlank:  {shape: "plaintext", fillcolor: "", fontcolor: "#2D3436"},
}

// Kinds returns every known kind.
func Kinds() []Kind {
	return []Kind{KindUser, KindClient, KindMobile, KindTablet, KindServer,
		KindPython, KindGo, KindReact, KindCustom, KindBlank}
}

// ParseKind converts s to a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := signatures[k]; !ok {
		return "", fmt.Errorf("unknown node kind %q", s)
	}
	return k, nil
}

// Attrs returns the per-node Graphviz attributes.
func (n *Node) Attrs() Attrs {
	attrs := Attrs{"label": n.Label}

	if n.Kind == KindCustom && iconExists(n.Icon) {
		lines := strings.Count(n.Label, "\n")
		attrs["shape"] = "none"
		attrs["image"] = absPath(n.Icon)
		attrs["height"] = fmt.Sprintf("%.1f", 1.9+0.4*float64(lines))
		return attrs
	}

	sig, ok := signatures[n.Kind]
	if !ok {
		sig = signatures[KindBlank]
	}
	attrs["shape"] = sig.shape
	attrs["fixedsize"] = "false"
	attrs["labelloc"] = "c"
	attrs["fontcolor"] = sig.fontcolor
	if sig.fillcolor != "" {
		attrs["style"] = "rounded,filled"
		attrs["fillcolor"] = sig.fillcolor
	}
	return attrs
}

func iconExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
