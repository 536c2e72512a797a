// Package pkg provides the libraries behind diaviz, which turns the JSON log
// of a Thrill worker into a Graphviz picture of its DIA dataflow graph.
//
// # Architecture
//
// Data flows through diaviz as follows:
//
//	Thrill worker log (JSON lines)
//	         ↓
//	    [io] package (read creation records)
//	         ↓
//	    [dia] package (insertion-ordered DIA graph)
//	         ↓
//	    [render/nodelink] package (DOT text, embedded Graphviz)
//	         ↓
//	    DOT/SVG/PNG/JSON output
//
// [pipeline] strings these steps together for the command line, with
// [cache] holding rendered SVG and PNG output and [observability] carrying
// hooks for progress reporting.
//
// # Quick Start
//
//	g, _, err := io.ImportLog("worker-0.json")
//	if err != nil {
//	    return err
//	}
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//
// # Main Packages
//
// [dia] - The graph model: nodes keyed by DIA id in first-creation order,
// with parent references as edges. Parents that were never created are kept
// and reported by [dia.Graph.Dangling].
//
// [io] - Line-by-line log reader recognizing the DIA creation shapes, and a
// JSON node-list export.
//
// [render/nodelink] - DOT writer with a per-category operator style table
// (built in, or loaded from TOML) and Graphviz rendering.
//
// [pipeline] - Read, convert and render in one call; used by every CLI
// command.
//
// [errors] - Coded errors (INVALID_INPUT, FILE_NOT_FOUND, ...) shared by all
// packages.
//
// [dia]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/dia
// [dia.Graph.Dangling]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/dia#Graph.Dangling
// [io]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/io
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/diaviz/pkg/errors
package pkg
