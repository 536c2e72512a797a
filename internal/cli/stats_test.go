package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/diaviz/pkg/dia"
	"github.com/matzehuels/diaviz/pkg/render/nodelink"
)

func TestComputeStats(t *testing.T) {
	g := dia.New()
	g.Put(dia.Node{ID: dia.Int(0), Label: "ReadLines"})
	g.Put(dia.Node{ID: dia.Int(1), Label: "Map", Parents: []dia.ID{dia.Int(0)}})
	g.Put(dia.Node{ID: dia.Int(2), Label: "ReduceByKey", Parents: []dia.ID{dia.Int(1)}})
	g.Put(dia.Node{ID: dia.Int(3), Label: "Size", Parents: []dia.ID{dia.Int(2), dia.Int(9)}})

	st := computeStats(g, nodelink.DefaultStyles())

	want := map[string]int{
		nodelink.CategorySource:    1,
		nodelink.CategoryTransform: 1,
		nodelink.CategoryAction:    1,
		nodelink.CategoryOther:     1,
	}
	for name, n := range want {
		if st.counts[name] != n {
			t.Errorf("counts[%s] = %d, want %d", name, st.counts[name], n)
		}
	}
	if st.counts[nodelink.CategoryCache] != 0 {
		t.Errorf("counts[Cache] = %d, want 0", st.counts[nodelink.CategoryCache])
	}

	if st.nodes != 4 || st.edges != 4 {
		t.Errorf("nodes/edges = %d/%d, want 4/4", st.nodes, st.edges)
	}
	if len(st.dangling) != 1 || st.dangling[0] != dia.Int(9) {
		t.Errorf("dangling = %v, want [9]", st.dangling)
	}
	if last := st.categories[len(st.categories)-1]; last != nodelink.CategoryOther {
		t.Errorf("last category = %q, want %q", last, nodelink.CategoryOther)
	}
}

func TestStatsCommand(t *testing.T) {
	path := writeLog(t,
		`{"class":"DIA","event":"create","dia_id":0,"label":"Generate","parents":[]}`,
		`{"class":"DIA","event":"execute","dia_id":0}`,
		`{"class":"DIA","event":"create","dia_id":1,"label":"Sort","parents":[0,4]}`,
	)

	out, _, err := execute(t, "stats", path)
	if err != nil {
		t.Fatalf("stats error: %v", err)
	}
	for _, want := range []string{"Source", "Transform", "nodes", "skipped", "never declared"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output missing %q:\n%s", want, out)
		}
	}
}
