// Package nodelink renders DIA graphs as Graphviz node-link diagrams.
//
// # Overview
//
// [ToDOT] and [WriteDOT] turn a [dia.Graph] into DOT text: one statement per
// node, a blank line, then one statement per parent edge. Graphviz does all
// layout; this package only decides labels and presentation attributes.
//
//	digraph {
//	 0[label="ReadLines.0", colorscheme=accent5, style=filled, color=1, shape=invhouse];
//	 1[label="Sum.1", colorscheme=accent5, style=filled, color=3, shape=house];
//
//	 0->1;
//	}
//
// # Styles
//
// Each node label is looked up in a [Styles] table that sorts Thrill
// operators into categories:
//
//   - Source (ReadLines, Generate, ...): color 1, inverted house
//   - Transform (ReduceByKey, Sort, ...): color 2, box
//   - Sink/Action (Sum, WriteLines, ...): color 3, house
//   - Cache: color 4, oval
//   - Collapse: color 5, oval
//
// Colors are slots in a Graphviz color scheme (accent5 by default). Labels
// outside the table get no attributes beyond their label. [DefaultStyles]
// returns the built-in table; [LoadStyles] reads a replacement from TOML.
//
// # Rendering
//
// [RenderSVG] and [RenderPNG] run the DOT text through an embedded Graphviz
// (github.com/goccy/go-graphviz), so no external dot binary is required.
//
//	dot := nodelink.ToDOT(g, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
package nodelink
