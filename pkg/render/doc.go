// Package render groups the output renderers for DIA graphs.
//
// The [nodelink] subpackage writes the dataflow graph as Graphviz DOT, one
// node per DIA and one arrow per parent reference, and renders that DOT to
// SVG or PNG through an embedded Graphviz:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/matzehuels/diaviz/pkg/render/nodelink
package render
