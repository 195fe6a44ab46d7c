// Package diagram declares architecture diagrams in code and renders them with Graphviz.
//
// # Overview
//
// A [Diagram] is a directed graph of icon-like [Node] values grouped into
// nested [Cluster] values and joined by styled [Edge] connectors. The package
// owns nothing but the declaration: layout, routing and rasterization are
// delegated to Graphviz through [github.com/goccy/go-graphviz].
//
//	d := diagram.New("Web Service", diagram.WithDirection(diagram.LeftToRight))
//	users := d.Node(diagram.KindUser, "Users")
//	backend := d.Cluster("Backend", nil)
//	api := backend.Node(diagram.KindGo, "API")
//	_ = d.Connect(users, api, diagram.Edge{Label: "HTTPS", Color: "#1f77b4"})
//
//	dot := diagram.ToDOT(d)
//	png, err := diagram.Render(ctx, dot, diagram.FormatPNG)
//
// # Determinism
//
// [ToDOT] is a pure function of the declaration: node ids are assigned in
// declaration order and every attribute list is emitted in sorted key order.
// Rendering the same diagram twice therefore yields identical bytes, which is
// what makes re-running a generator idempotent.
//
// # Node Kinds
//
// Each [Kind] has a visual signature (shape and fill color). Custom nodes may
// carry an icon image; when the icon file exists it is drawn with
// shape=none and the label below it, otherwise the custom signature is used.
// Icon paths are written as absolute paths, and [Render] resolves them
// against the host filesystem.
//
// # Inspection
//
// [Describe] projects a diagram into a serializable [Description] that can be
// written as JSON or YAML to check nodes and edges before rasterization.
package diagram
