package diagram

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Description is a serializable view of a diagram, used to inspect the
// declared graph before it is rasterized.
type Description struct {
	Title     string        `json:"title" yaml:"title"`
	Filename  string        `json:"filename" yaml:"filename"`
	Direction Direction     `json:"direction" yaml:"direction"`
	Nodes     []NodeDesc    `json:"nodes" yaml:"nodes"`
	Clusters  []ClusterDesc `json:"clusters,omitempty" yaml:"clusters,omitempty"`
	Edges     []EdgeDesc    `json:"edges" yaml:"edges"`
}

// NodeDesc describes one node.
type NodeDesc struct {
	ID    string `json:"id" yaml:"id"`
	Label string `json:"label" yaml:"label"`
	Kind  Kind   `json:"kind" yaml:"kind"`
	Icon  string `json:"icon,omitempty" yaml:"icon,omitempty"`
}

// ClusterDesc describes a cluster and its members by node id.
type ClusterDesc struct {
	Label    string        `json:"label" yaml:"label"`
	Depth    int           `json:"depth" yaml:"depth"`
	Nodes    []string      `json:"nodes,omitempty" yaml:"nodes,omitempty"`
	Clusters []ClusterDesc `json:"clusters,omitempty" yaml:"clusters,omitempty"`
}

// EdgeDesc describes one connection.
type EdgeDesc struct {
	From      string  `json:"from" yaml:"from"`
	To        string  `json:"to" yaml:"to"`
	Label     string  `json:"label,omitempty" yaml:"label,omitempty"`
	Color     string  `json:"color,omitempty" yaml:"color,omitempty"`
	Style     string  `json:"style,omitempty" yaml:"style,omitempty"`
	PenWidth  float64 `json:"penwidth,omitempty" yaml:"penwidth,omitempty"`
	Direction Dir     `json:"dir" yaml:"dir"`
}

// Describe builds the description of d.
func Describe(d *Diagram) Description {
	desc := Description{
		Title:     d.Name,
		Filename:  d.Filename,
		Direction: d.Direction,
		Nodes:     make([]NodeDesc, 0, len(d.all)),
		Edges:     make([]EdgeDesc, 0, len(d.edges)),
	}
	for _, n := range d.all {
		desc.Nodes = append(desc.Nodes, NodeDesc{ID: n.ID, Label: n.Label, Kind: n.Kind, Icon: n.Icon})
	}
	for _, c := range d.clusters {
		desc.Clusters = append(desc.Clusters, describeCluster(c))
	}
	for _, e := range d.edges {
		desc.Edges = append(desc.Edges, EdgeDesc{
			From:      e.From.ID,
			To:        e.To.ID,
			Label:     e.Edge.Label,
			Color:     e.Edge.Color,
			Style:     e.Edge.Style,
			PenWidth:  e.Edge.PenWidth,
			Direction: e.Edge.Direction(),
		})
	}
	return desc
}

func describeCluster(c *Cluster) ClusterDesc {
	cd := ClusterDesc{Label: c.Label, Depth: c.depth}
	for _, n := range c.nodes {
		cd.Nodes = append(cd.Nodes, n.ID)
	}
	for _, sub := range c.clusters {
		cd.Clusters = append(cd.Clusters, describeCluster(sub))
	}
	return cd
}

// WriteJSON encodes the description as indented JSON.
func (desc Description) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(desc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// WriteYAML encodes the description as YAML.
func (desc Description) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(desc); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return enc.Close()
}

// ReadJSON decodes a description written by [Description.WriteJSON].
func ReadJSON(r io.Reader) (Description, error) {
	var desc Description
	if err := json.NewDecoder(r).Decode(&desc); err != nil {
		return Description{}, fmt.Errorf("decode json: %w", err)
	}
	return desc, nil
}
