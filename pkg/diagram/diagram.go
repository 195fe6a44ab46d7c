package diagram

import (
	"fmt"
	"maps"
	"slices"
)

// Direction is the Graphviz rankdir of a diagram.
type Direction string

const (
	LeftToRight Direction = "LR"
	TopToBottom Direction = "TB"
	RightToLeft Direction = "RL"
	BottomToTop Direction = "BT"
)

// Valid reports whether d is one of the four Graphviz rank directions.
func (d Direction) Valid() bool {
	switch d {
	case LeftToRight, TopToBottom, RightToLeft, BottomToTop:
		return true
	}
	return false
}

// Attrs is a set of Graphviz attributes.
type Attrs map[string]string

// clusterColors are the background colors of nested clusters, by depth.
var clusterColors = []string{"#E5F5FD", "#EBF3E7", "#ECE8F6", "#FDF7E3"}

func defaultGraphAttrs() Attrs {
	return Attrs{
		"pad":       "2.0",
		"splines":   "ortho",
		"nodesep":   "0.60",
		"ranksep":   "0.75",
		"fontname":  "Sans-Serif",
		"fontsize":  "15",
		"fontcolor": "#2D3436",
		"labelloc":  "t",
	}
}

func defaultNodeAttrs() Attrs {
	return Attrs{
		"shape":      "box",
		"style":      "rounded",
		"fixedsize":  "true",
		"width":      "1.4",
		"height":     "1.4",
		"labelloc":   "b",
		"imagescale": "true",
		"fontname":   "Sans-Serif",
		"fontsize":   "13",
		"fontcolor":  "#2D3436",
	}
}

func defaultEdgeAttrs() Attrs {
	return Attrs{
		"color":     "#7B8894",
		"fontcolor": "#2D3436",
		"fontname":  "Sans-Serif",
		"fontsize":  "13",
	}
}

func defaultClusterAttrs() Attrs {
	return Attrs{
		"shape":     "box",
		"style":     "rounded",
		"labeljust": "l",
		"pencolor":  "#AEB6BF",
		"fontname":  "Sans-Serif",
		"fontsize":  "12",
	}
}

// Diagram is the root of a diagram declaration.
// It is not safe for concurrent use.
type Diagram struct {
	Name      string
	Filename  string
	Direction Direction

	GraphAttrs Attrs
	NodeAttrs  Attrs
	EdgeAttrs  Attrs

	nodes    []*Node
	clusters []*Cluster
	edges    []Connection

	all          []*Node
	clusterNames map[string]int
}

// Option configures a [Diagram].
type Option func(*Diagram)

// WithFilename sets the output file stem (without extension).
func WithFilename(name string) Option {
	return func(d *Diagram) { d.Filename = name }
}

// WithDirection sets the rank direction.
func WithDirection(dir Direction) Option {
	return func(d *Diagram) { d.Direction = dir }
}

// WithGraphAttrs merges attrs over the default graph attributes.
func WithGraphAttrs(attrs Attrs) Option {
	return func(d *Diagram) { maps.Copy(d.GraphAttrs, attrs) }
}

// WithNodeAttrs merges attrs over the default node attributes.
func WithNodeAttrs(attrs Attrs) Option {
	return func(d *Diagram) { maps.Copy(d.NodeAttrs, attrs) }
}

// WithEdgeAttrs merges attrs over the default edge attributes.
func WithEdgeAttrs(attrs Attrs) Option {
	return func(d *Diagram) { maps.Copy(d.EdgeAttrs, attrs) }
}

// New creates an empty diagram titled name.
// Without options the diagram flows left to right and its filename is derived
// from the name.
func New(name string, opts ...Option) *Diagram {
	d := &Diagram{
		Name:         name,
		Filename:     slug(name),
		Direction:    LeftToRight,
		GraphAttrs:   defaultGraphAttrs(),
		NodeAttrs:    defaultNodeAttrs(),
		EdgeAttrs:    defaultEdgeAttrs(),
		clusterNames: make(map[string]int),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Node declares a top-level node of the given kind.
func (d *Diagram) Node(kind Kind, label string) *Node {
	n := d.newNode(kind, label, "")
	d.nodes = append(d.nodes, n)
	return n
}

// Custom declares a top-level node drawn with the icon at iconPath.
func (d *Diagram) Custom(label, iconPath string) *Node {
	n := d.newNode(KindCustom, label, iconPath)
	d.nodes = append(d.nodes, n)
	return n
}

// Cluster declares a top-level cluster. attrs override the cluster defaults.
func (d *Diagram) Cluster(label string, attrs Attrs) *Cluster {
	c := d.newCluster(label, 0, attrs)
	d.clusters = append(d.clusters, c)
	return c
}

// Connect draws an edge from one node to another.
// Both nodes must have been declared on d.
func (d *Diagram) Connect(from, to *Node, e Edge) error {
	if from == nil || to == nil {
		return fmt.Errorf("connect: nil endpoint")
	}
	if !d.owns(from) {
		return fmt.Errorf("connect: node %q is not part of diagram %q", from.Label, d.Name)
	}
	if !d.owns(to) {
		return fmt.Errorf("connect: node %q is not part of diagram %q", to.Label, d.Name)
	}
	if e.Dir != "" && !e.Dir.Valid() {
		return fmt.Errorf("connect: invalid edge direction %q", e.Dir)
	}
	d.edges = append(d.edges, Connection{From: from, To: to, Edge: e})
	return nil
}

// Nodes returns every node in declaration order, including clustered ones.
func (d *Diagram) Nodes() []*Node { return d.all }

// TopNodes returns the nodes declared outside any cluster.
func (d *Diagram) TopNodes() []*Node { return d.nodes }

// Clusters returns the top-level clusters in declaration order.
func (d *Diagram) Clusters() []*Cluster { return d.clusters }

// Edges returns the connections in declaration order.
func (d *Diagram) Edges() []Connection { return d.edges }

// NodeCount returns the total number of nodes.
func (d *Diagram) NodeCount() int { return len(d.all) }

// EdgeCount returns the number of connections.
func (d *Diagram) EdgeCount() int { return len(d.edges) }

// Icons returns the absolute paths of the icon images the diagram draws,
// sorted and without duplicates. Custom nodes whose icon is missing are
// drawn without one and are not listed.
func (d *Diagram) Icons() []string {
	var icons []string
	for _, n := range d.all {
		if n.Kind == KindCustom && iconExists(n.Icon) {
			icons = append(icons, absPath(n.Icon))
		}
	}
	slices.Sort(icons)
	return slices.Compact(icons)
}

// ClusterCount returns the number of clusters at every depth.
func (d *Diagram) ClusterCount() int {
	n := 0
	var walk func([]*Cluster)
	walk = func(cs []*Cluster) {
		for _, c := range cs {
			n++
			walk(c.clusters)
		}
	}
	walk(d.clusters)
	return n
}

func (d *Diagram) owns(n *Node) bool {
	return n.index > 0 && n.index <= len(d.all) && d.all[n.index-1] == n
}

func (d *Diagram) newNode(kind Kind, label, icon string) *Node {
	n := &Node{
		index: len(d.all) + 1,
		Label: label,
		Kind:  kind,
		Icon:  icon,
	}
	n.ID = fmt.Sprintf("n%d", n.index)
	d.all = append(d.all, n)
	return n
}

func (d *Diagram) newCluster(label string, depth int, attrs Attrs) *Cluster {
	name := "cluster_" + label
	d.clusterNames[name]++
	if k := d.clusterNames[name]; k > 1 {
		name = fmt.Sprintf("%s_%d", name, k)
	}

	merged := defaultClusterAttrs()
	merged["bgcolor"] = clusterColors[depth%len(clusterColors)]
	maps.Copy(merged, attrs)

	return &Cluster{
		Label:   label,
		Attrs:   merged,
		name:    name,
		depth:   depth,
		diagram: d,
	}
}

// Cluster is a labeled group of nodes drawn as a rounded box.
type Cluster struct {
	Label string
	Attrs Attrs

	name     string
	depth    int
	diagram  *Diagram
	nodes    []*Node
	clusters []*Cluster
}

// Node declares a node of the given kind inside c.
func (c *Cluster) Node(kind Kind, label string) *Node {
	n := c.diagram.newNode(kind, label, "")
	c.nodes = append(c.nodes, n)
	return n
}

// Custom declares an icon node inside c.
func (c *Cluster) Custom(label, iconPath string) *Node {
	n := c.diagram.newNode(KindCustom, label, iconPath)
	c.nodes = append(c.nodes, n)
	return n
}

// Cluster declares a nested cluster inside c.
func (c *Cluster) Cluster(label string, attrs Attrs) *Cluster {
	sub := c.diagram.newCluster(label, c.depth+1, attrs)
	c.clusters = append(c.clusters, sub)
	return sub
}

// Nodes returns the nodes declared directly in c.
func (c *Cluster) Nodes() []*Node { return c.nodes }

// Clusters returns the clusters nested directly in c.
func (c *Cluster) Clusters() []*Cluster { return c.clusters }

// Depth returns the nesting depth; top-level clusters have depth 0.
func (c *Cluster) Depth() int { return c.depth }

// Name returns the Graphviz subgraph name.
func (c *Cluster) Name() string { return c.name }

// Node is a labeled diagram element.
type Node struct {
	ID    string
	Label string
	Kind  Kind
	Icon  string

	index int
}

// Connection is an edge between two declared nodes.
type Connection struct {
	From *Node
	To   *Node
	Edge Edge
}
