package diagram

import (
	"bytes"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ToDOT converts a diagram to Graphviz DOT source.
// The result can be rendered with [Render] or saved and processed with the
// Graphviz command-line tools.
//
// Output is deterministic: the same declaration always produces the same bytes.
func ToDOT(d *Diagram) string {
	var buf bytes.Buffer

	graphAttrs := maps.Clone(d.GraphAttrs)
	graphAttrs["label"] = d.Name
	if d.Direction != "" {
		graphAttrs["rankdir"] = string(d.Direction)
	}

	fmt.Fprintf(&buf, "digraph %s {\n", quote(d.Name))
	fmt.Fprintf(&buf, "  graph [%s];\n", fmtAttrs(graphAttrs))
	fmt.Fprintf(&buf, "  node [%s];\n", fmtAttrs(d.NodeAttrs))
	fmt.Fprintf(&buf, "  edge [%s];\n", fmtAttrs(d.EdgeAttrs))

	if len(d.nodes) > 0 {
		buf.WriteString("\n")
	}
	for _, n := range d.nodes {
		writeNode(&buf, n, "  ")
	}
	for _, c := range d.clusters {
		buf.WriteString("\n")
		writeCluster(&buf, c, "  ")
	}

	if len(d.edges) > 0 {
		buf.WriteString("\n")
	}
	for _, e := range d.edges {
		fmt.Fprintf(&buf, "  %s -> %s [%s];\n", quote(e.From.ID), quote(e.To.ID), fmtAttrs(e.Edge.Attrs()))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeNode(buf *bytes.Buffer, n *Node, indent string) {
	fmt.Fprintf(buf, "%s%s [%s];\n", indent, quote(n.ID), fmtAttrs(n.Attrs()))
}

func writeCluster(buf *bytes.Buffer, c *Cluster, indent string) {
	attrs := maps.Clone(c.Attrs)
	attrs["label"] = c.Label

	fmt.Fprintf(buf, "%ssubgraph %s {\n", indent, quote(c.name))
	fmt.Fprintf(buf, "%s  graph [%s];\n", indent, fmtAttrs(attrs))
	for _, n := range c.nodes {
		writeNode(buf, n, indent+"  ")
	}
	for _, sub := range c.clusters {
		writeCluster(buf, sub, indent+"  ")
	}
	fmt.Fprintf(buf, "%s}\n", indent)
}

// fmtAttrs formats attributes as a DOT attribute list in sorted key order.
func fmtAttrs(attrs Attrs) string {
	parts := make([]string, 0, len(attrs))
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		parts = append(parts, k+"="+quote(attrs[k]))
	}
	return strings.Join(parts, ", ")
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", "")

// quote returns s as a DOT double-quoted string. Unlike %q it leaves
// non-ASCII text intact, which Graphviz reads as UTF-8.
func quote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}
