package diagram_test

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/matzehuels/camdiagram/pkg/diagram"
)

func Example() {
	d := diagram.New("Web Service", diagram.WithDirection(diagram.LeftToRight))
	users := d.Node(diagram.KindUser, "Users")
	backend := d.Cluster("Backend", nil)
	api := backend.Node(diagram.KindGo, "API")
	_ = d.Connect(users, api, diagram.Edge{Label: "HTTPS", Color: "#1f77b4"})

	dot := diagram.ToDOT(d)
	fmt.Println(strings.Count(dot, " -> "), strings.Contains(dot, `subgraph "cluster_Backend"`))
	// Output:
	// 1 true
}

func ExampleNew() {
	d := diagram.New("Web Service", diagram.WithDirection(diagram.LeftToRight))
	users := d.Node(diagram.KindUser, "Users")

	backend := d.Cluster("Backend", diagram.Attrs{"rank": "same"})
	api := backend.Node(diagram.KindGo, "API")
	db := backend.Node(diagram.KindServer, "Database")

	_ = d.Connect(users, api, diagram.Edge{Label: "HTTPS"})
	_ = d.Connect(api, db, diagram.Edge{Label: "SQL", Style: "dashed"})

	fmt.Println(d.Filename, d.NodeCount(), d.EdgeCount())
	// Output:
	// web_service 3 2
}

func ExampleToDOT() {
	d := diagram.New("Tiny")
	a := d.Node(diagram.KindBlank, "a")
	b := d.Node(diagram.KindBlank, "b")
	_ = d.Connect(a, b, diagram.Edge{Label: "to"})

	dot := diagram.ToDOT(d)
	fmt.Println(len(dot) > 0)
	// Output:
	// true
}

func ExampleDescribe() {
	d := diagram.New("Pair")
	a := d.Node(diagram.KindUser, "a")
	b := d.Node(diagram.KindServer, "b")
	_ = d.Connect(a, b, diagram.Edge{Dir: diagram.DirBoth})

	_ = diagram.Describe(d).WriteYAML(os.Stdout)
	// Output:
	// title: Pair
	// filename: pair
	// direction: LR
	// nodes:
	//   - id: n1
	//     label: a
	//     kind: user
	//   - id: n2
	//     label: b
	//     kind: server
	// edges:
	//   - from: n1
	//     to: n2
	//     dir: both
}

func ExampleRender() {
	d := diagram.New("Render Me")
	d.Node(diagram.KindServer, "only")

	svg, err := diagram.Render(context.Background(), diagram.ToDOT(d), diagram.FormatSVG)
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	fmt.Printf("Generated SVG (%d bytes)\n", len(svg))
	// Output varies based on Graphviz version
}
