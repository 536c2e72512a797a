package nodelink

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/diaviz/pkg/dia"
)

func TestToDOT_SingleSource(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "ReadLines"})

	want := "digraph {\n" +
		" 0[label=\"ReadLines.0\", colorscheme=accent5, style=filled, color=1, shape=invhouse];\n" +
		"\n" +
		"}\n"
	if got := ToDOT(g, Options{}); got != want {
		t.Errorf("ToDOT() =\n%s\nwant\n%s", got, want)
	}
}

func TestToDOT_SourceAndAction(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "ReadLines"})
	g.Put(dia.Node{ID: dia.Int(1), Label: "Sum", Parents: []dia.ID{dia.Int(0)}})

	dot := ToDOT(g, Options{})

	if n := strings.Count(dot, "[label="); n != 2 {
		t.Errorf("node statements = %d, want 2", n)
	}
	if n := strings.Count(dot, "->"); n != 1 {
		t.Errorf("edge statements = %d, want 1", n)
	}
	if !strings.Contains(dot, " 0->1;\n") {
		t.Errorf("ToDOT() missing edge 0->1:\n%s", dot)
	}
	if !strings.Contains(dot, `1[label="Sum.1", colorscheme=accent5, style=filled, color=3, shape=house];`) {
		t.Errorf("ToDOT() Sum node not styled as action:\n%s", dot)
	}
}

func TestToDOT_DanglingParent(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(2), Label: "Sort", Parents: []dia.ID{dia.Int(5)}})

	dot := ToDOT(g, Options{})

	if !strings.Contains(dot, " 5->2;\n") {
		t.Errorf("ToDOT() missing dangling edge:\n%s", dot)
	}
	if strings.Contains(dot, " 5[") {
		t.Errorf("ToDOT() declared undeclared node 5:\n%s", dot)
	}
}

func TestToDOT_EdgeOrderAndDuplicates(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "Generate"})
	g.Put(dia.Node{ID: dia.Int(1), Label: "Generate"})
	g.Put(dia.Node{ID: dia.Int(2), Label: "Zip", Parents: []dia.ID{dia.Int(1), dia.Int(0), dia.Int(1)}})
	g.Put(dia.Node{ID: dia.Int(3), Label: "Size", Parents: []dia.ID{dia.Int(2)}})

	dot := ToDOT(g, Options{})
	edges := dot[strings.Index(dot, "\n\n")+2:]

	want := " 1->2;\n 0->2;\n 1->2;\n 2->3;\n}\n"
	if edges != want {
		t.Errorf("edge section =\n%q\nwant\n%q", edges, want)
	}
}

func TestToDOT_Classification(t *testing.T) {
	tests := []struct {
		label string
		style string
	}{
		{"ReadLines", "color=1, shape=invhouse"},
		{"ReadBinary", "color=1, shape=invhouse"},
		{"Generate", "color=1, shape=invhouse"},
		{"GenerateFile", "color=1, shape=invhouse"},
		{"Distribute", "color=1, shape=invhouse"},
		{"DistributeFile", "color=1, shape=invhouse"},
		{"PrefixSum", "color=2, shape=box"},
		{"ReduceByKey", "color=2, shape=box"},
		{"ReducePair", "color=2, shape=box"},
		{"ReduceToIndex", "color=2, shape=box"},
		{"GroupByKey", "color=2, shape=box"},
		{"GroupToIndex", "color=2, shape=box"},
		{"Merge", "color=2, shape=box"},
		{"Sort", "color=2, shape=box"},
		{"Window", "color=2, shape=box"},
		{"Zip", "color=2, shape=box"},
		{"AllGather", "color=3, shape=house"},
		{"Gather", "color=3, shape=house"},
		{"Size", "color=3, shape=house"},
		{"AllReduce", "color=3, shape=house"},
		{"Sum", "color=3, shape=house"},
		{"Min", "color=3, shape=house"},
		{"Max", "color=3, shape=house"},
		{"WriteBinary", "color=3, shape=house"},
		{"WriteLines", "color=3, shape=house"},
		{"WriteLinesMany", "color=3, shape=house"},
		{"Cache", "color=4, shape=oval"},
		{"Collapse", "color=5, shape=oval"},
		{"FlatMap", ""},
		{"sort", ""},
		{"ReadLinesX", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			g := dia.New()
			g.Put(dia.Node{ID: dia.Int(7), Label: tt.label})
			dot := ToDOT(g, Options{})

			if tt.style == "" {
				want := " 7[label=\"" + tt.label + ".7\"];\n"
				if !strings.Contains(dot, want) {
					t.Errorf("unstyled node: got\n%s\nwant line %q", dot, want)
				}
				return
			}
			want := " 7[label=\"" + tt.label + ".7\", colorscheme=accent5, style=filled, " + tt.style + "];\n"
			if !strings.Contains(dot, want) {
				t.Errorf("styled node: got\n%s\nwant line %q", dot, want)
			}
		})
	}
}

func TestToDOT_Idempotent(t *testing.T) {
	g := dia.New()
	for i, l := range []string{"ReadLines", "Map", "ReduceByKey", "Cache", "WriteLines"} {
		n := dia.Node{ID: dia.Int(int64(i)), Label: l}
		if i > 0 {
			n.Parents = []dia.ID{dia.Int(int64(i - 1))}
		}
		g.Put(n)
	}

	first := ToDOT(g, Options{})
	for range 5 {
		if got := ToDOT(g, Options{}); got != first {
			t.Fatalf("ToDOT() not deterministic:\n%s\nvs\n%s", got, first)
		}
	}
}

func TestToDOT_CustomStyles(t *testing.T) {
	styles, err := LoadStyles("testdata/styles.toml")
	if err != nil {
		t.Fatalf("LoadStyles() error: %v", err)
	}

	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "ReadLines"})
	g.Put(dia.Node{ID: dia.Int(1), Label: "Sum", Parents: []dia.ID{dia.Int(0)}})
	dot := ToDOT(g, Options{Styles: styles})

	if !strings.Contains(dot, `0[label="ReadLines.0", colorscheme=set19, style=filled, color=7, shape=cylinder];`) {
		t.Errorf("custom style not applied:\n%s", dot)
	}
	if !strings.Contains(dot, ` 1[label="Sum.1"];`) {
		t.Errorf("Sum should be unstyled with custom table:\n%s", dot)
	}
}

func TestWriteDOT_MatchesToDOT(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "Generate"})
	g.Put(dia.Node{ID: dia.Int(1), Label: "Collapse", Parents: []dia.ID{dia.Int(0)}})

	var buf bytes.Buffer
	if err := WriteDOT(&buf, g, Options{}); err != nil {
		t.Fatalf("WriteDOT() error: %v", err)
	}
	if buf.String() != ToDOT(g, Options{}) {
		t.Error("WriteDOT() and ToDOT() disagree")
	}
}

func TestDotID(t *testing.T) {
	tests := []struct {
		id   dia.ID
		want string
	}{
		{dia.Int(0), "0"},
		{dia.Int(123), "123"},
		{dia.Int(-4), "-4"},
		{dia.Number("1.5"), "1.5"},
		{dia.Str("7"), "7"},
		{dia.Str("reduce_3"), "reduce_3"},
		{dia.Str("node"), `"node"`},
		{dia.Str("Graph"), `"Graph"`},
		{dia.Str("sum.7"), `"sum.7"`},
		{dia.Str("a b"), `"a b"`},
		{dia.Str(`x"y`), `"x\"y"`},
		{dia.Str(`c:\tmp`), `"c:\\tmp"`},
		{dia.Str("tab\there"), "\"tab\there\""},
		{dia.Str(""), `""`},
	}

	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			if got := dotID(tt.id); got != tt.want {
				t.Errorf("dotID(%q) = %s, want %s", tt.id, got, tt.want)
			}
		})
	}
}

func TestDotQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sum.1", `"Sum.1"`},
		{`say "hi"`, `"say \"hi\""`},
		{`a\b`, `"a\\b"`},
		{"bell\x07", "\"bell\x07\""},
		{"line\nbreak", "\"line\nbreak\""},
	}

	for _, tt := range tests {
		if got := dotQuote(tt.in); got != tt.want {
			t.Errorf("dotQuote(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestToDOT_LabelEscaping(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "Map\x01\"x\""})

	dot := ToDOT(g, Options{})
	if want := " 0[label=\"Map\x01\\\"x\\\".0\"];\n"; !strings.Contains(dot, want) {
		t.Errorf("ToDOT() label not DOT-quoted:\n%q\nwant line %q", dot, want)
	}
	if strings.Contains(dot, `\x01`) {
		t.Errorf("ToDOT() wrote a Go escape sequence:\n%q", dot)
	}
}

func TestFmtLabel(t *testing.T) {
	n := dia.Node{ID: dia.Int(12), Label: "ReduceByKey"}
	if got := fmtLabel(n); got != "ReduceByKey.12" {
		t.Errorf("fmtLabel() = %q, want %q", got, "ReduceByKey.12")
	}
}

func TestValidate(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "ReadLines"})
	g.Put(dia.Node{ID: dia.Str("node"), Label: "Sum", Parents: []dia.ID{dia.Int(0), dia.Int(9)}})

	if err := Validate(ToDOT(g, Options{})); err != nil {
		t.Errorf("Validate() rejected generated DOT: %v", err)
	}
	if err := Validate(`not valid DOT {{{`); err == nil {
		t.Error("Validate() accepted invalid DOT")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	tests := []struct {
		name string
		svg  string
		want string
	}{
		{
			name: "with viewBox",
			svg:  `<svg viewBox="10 20 800 600" xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 800.00 600.00" width="800" height="600">content</svg>`,
		},
		{
			name: "no viewBox",
			svg:  `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
			want: `<svg xmlns="http://www.w3.org/2000/svg">content</svg>`,
		},
		{
			name: "zero dimensions",
			svg:  `<svg viewBox="0 0 0 0">content</svg>`,
			want: `<svg viewBox="0 0 0 0">content</svg>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := normalizeViewBox([]byte(tt.svg))
			if string(got) != tt.want {
				t.Errorf("normalizeViewBox() = %q, want %q", string(got), tt.want)
			}
		})
	}
}

func TestRenderSVG(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "ReadLines"})
	g.Put(dia.Node{ID: dia.Int(1), Label: "Sum", Parents: []dia.ID{dia.Int(0)}})

	svg, err := RenderSVG(ToDOT(g, Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("RenderSVG() output missing <svg> tag")
	}
	if !strings.Contains(string(svg), "ReadLines.0") {
		t.Error("RenderSVG() output missing node label")
	}
}

func TestRenderPNG(t *testing.T) {
	png, err := RenderPNG(`digraph { a -> b; }`)
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("RenderPNG() output is not a PNG")
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(`not valid DOT {{{`); err == nil {
		t.Error("RenderSVG() should return error for invalid DOT")
	}
}
