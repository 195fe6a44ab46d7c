package diagram

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/goccy/go-graphviz"
)

// Format is an output format.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatJPG Format = "jpg"
	FormatDOT Format = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[Format]bool{
	FormatPNG: true,
	FormatSVG: true,
	FormatJPG: true,
	FormatDOT: true,
}

// ParseFormat converts s (case-insensitive, "jpeg" accepted) to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f == "jpeg" {
		f = FormatJPG
	}
	if !ValidFormats[f] {
		return "", fmt.Errorf("invalid format: %s (must be 'png', 'svg', 'jpg', or 'dot')", s)
	}
	return f, nil
}

// Ext returns the file extension of f, without the dot.
func (f Format) Ext() string { return string(f) }

var graphvizFormats = map[Format]graphviz.Format{
	FormatPNG: graphviz.PNG,
	FormatSVG: graphviz.SVG,
	FormatJPG: graphviz.JPG,
}

// installHostFS points Graphviz's image loader at the host root. The
// embedded Graphviz sees node image paths relative to its own "/" mount, so
// the absolute icon paths written by ToDOT only resolve through this.
var installHostFS = sync.OnceFunc(func() {
	graphviz.SetFileSystem(os.DirFS("/"))
})

// Render lays out DOT source with Graphviz and returns it encoded as format.
// FormatDOT returns the source unchanged without invoking Graphviz.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	if format == FormatDOT {
		return []byte(dot), nil
	}
	gvFormat, ok := graphvizFormats[format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	installHostFS()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	if buf.Len() == 0 {
		return nil, fmt.Errorf("render %s: graphviz produced no output", format)
	}
	return buf.Bytes(), nil
}
