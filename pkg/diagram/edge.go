package diagram

import (
	"strconv"
	"strings"
)

// Dir is the arrowhead placement of an edge.
type Dir string

const (
	DirForward Dir = "forward"
	DirBack    Dir = "back"
	DirBoth    Dir = "both"
	DirNone    Dir = "none"
)

// Valid reports whether d is a Graphviz dir value.
func (d Dir) Valid() bool {
	switch d {
	case DirForward, DirBack, DirBoth, DirNone:
		return true
	}
	return false
}

// Edge is the style of a connector. The zero value is a plain forward arrow
// drawn with the diagram's edge defaults.
type Edge struct {
	Label     string
	Color     string
	FontColor string
	Style     string // "", "solid", "dashed", "dotted", "bold"
	PenWidth  float64
	Dir       Dir // empty means DirForward
}

// Direction returns the effective arrow direction.
func (e Edge) Direction() Dir {
	if e.Dir == "" {
		return DirForward
	}
	return e.Dir
}

// Attrs returns the Graphviz attributes of the edge. Empty fields are omitted
// so the diagram's edge defaults apply.
func (e Edge) Attrs() Attrs {
	attrs := Attrs{"dir": string(e.Direction())}
	if e.Label != "" {
		attrs["label"] = e.Label
	}
	if e.Color != "" {
		attrs["color"] = e.Color
	}
	if e.FontColor != "" {
		attrs["fontcolor"] = e.FontColor
	}
	if e.Style != "" {
		attrs["style"] = e.Style
	}
	if e.PenWidth > 0 {
		attrs["penwidth"] = strconv.FormatFloat(e.PenWidth, 'g', -1, 64)
	}
	return attrs
}

// slug turns a title into a file stem the way diagram tools usually do:
// whitespace-separated words joined by underscores, lower-cased.
func slug(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), "_"))
}
