// Package pkg provides the core libraries for camdiagram.
//
// # Overview
//
// camdiagram declares the architecture of a live-camera platform (browser and
// mobile clients, control servers, camera devices, and the machines that host
// them) and renders it as two Graphviz diagrams. The pkg directory is
// organized into these areas:
//
//  1. [diagram] - Declarative graph model (nodes, clusters, styled edges) and DOT output
//  2. [topology] - The two concrete diagrams: application and infrastructure
//  3. [pipeline] - Orchestration (build → render → write)
//  4. [cache] - Render cache keyed by DOT content
//  5. [io], [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The typical data flow through camdiagram:
//
//	topology.Build(mode)
//	         ↓
//	    [diagram] package (declared graph)
//	         ↓
//	    diagram.ToDOT (deterministic DOT source)
//	         ↓
//	    diagram.Render (Graphviz, via the render cache)
//	         ↓
//	    imgs/system_app.png, imgs/system_infra.png
//
// # Quick Start
//
// Build and render one diagram:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/camdiagram/pkg/diagram"
//	    "github.com/matzehuels/camdiagram/pkg/topology"
//	)
//
//	d, _ := topology.Build(topology.ModeApp, topology.Options{IconDir: "imgs/icons"})
//	png, _ := diagram.Render(context.Background(), diagram.ToDOT(d), diagram.FormatPNG)
//
// Or run the whole pipeline, as the CLI does:
//
//	runner := pipeline.NewRunner(nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{})
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/topology/...           # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [diagram]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/diagram
// [topology]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/topology
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/camdiagram/pkg/buildinfo
package pkg
