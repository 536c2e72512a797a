package nodelink

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/diaviz/pkg/dia"
	"github.com/matzehuels/diaviz/pkg/errors"
)

// Options configures DOT generation.
type Options struct {
	// Styles classifies node labels. Nil means [DefaultStyles].
	Styles *Styles
}

// ToDOT converts a DIA graph to Graphviz DOT text. See [WriteDOT].
func ToDOT(g *dia.Graph, opts Options) string {
	var buf bytes.Buffer
	_ = WriteDOT(&buf, g, opts)
	return buf.String()
}

// WriteDOT writes g to w as a DOT digraph.
//
// Nodes are declared first, in graph order, each labelled "<label>.<id>" and
// styled by its category. After a blank line every parent reference becomes
// one edge, grouped by consumer in graph order. Parents that were never
// declared still get their edge; Graphviz creates a plain node for them.
func WriteDOT(w io.Writer, g *dia.Graph, opts Options) error {
	styles := opts.Styles
	if styles == nil {
		styles = DefaultStyles()
	}

	bw := bufio.NewWriter(w)
	bw.WriteString("digraph {\n")

	for _, n := range g.Nodes() {
		attrs := fmtAttrs(n, styles)
		fmt.Fprintf(bw, " %s[%s];\n", dotID(n.ID), strings.Join(attrs, ", "))
	}

	bw.WriteString("\n")
	for _, e := range g.Edges() {
		fmt.Fprintf(bw, " %s->%s;\n", dotID(e.From), dotID(e.To))
	}

	bw.WriteString("}\n")
	return bw.Flush()
}

func fmtLabel(n dia.Node) string {
	return n.Label + "." + n.ID.String()
}

func fmtAttrs(n dia.Node, styles *Styles) []string {
	attrs := []string{"label=" + dotQuote(fmtLabel(n))}
	return append(attrs, styles.Attrs(n.Label)...)
}

var (
	numeralRe = regexp.MustCompile(`^-?(\.[0-9]+|[0-9]+(\.[0-9]*)?)$`)
	identRe   = regexp.MustCompile(`^[A-Za-z_\x{80}-\x{10FFFF}][A-Za-z_0-9\x{80}-\x{10FFFF}]*$`)
)

var dotKeywords = map[string]bool{
	"node": true, "edge": true, "graph": true, "digraph": true, "subgraph": true, "strict": true,
}

// dotID writes id bare when DOT accepts it unquoted (numerals and plain
// identifiers, as Thrill's integer ids always are) and quoted otherwise.
func dotID(id dia.ID) string {
	s := id.String()
	if numeralRe.MatchString(s) {
		return s
	}
	if identRe.MatchString(s) && !dotKeywords[strings.ToLower(s)] {
		return s
	}
	return dotQuote(s)
}

var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// dotQuote returns s as a DOT double-quoted string. Only the quote and the
// backslash are escaped; every other byte is kept as is.
func dotQuote(s string) string {
	return `"` + dotEscaper.Replace(s) + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

// Validate parses dot with Graphviz and reports whether it is well-formed.
func Validate(dot string) error {
	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	return g.Close()
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
