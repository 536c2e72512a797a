package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/diaviz/pkg/dia"
	"github.com/matzehuels/diaviz/pkg/pipeline"
	"github.com/matzehuels/diaviz/pkg/render/nodelink"
)

// statsCommand creates the stats command, a per-category summary of a log.
func (c *CLI) statsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <thrill-worker-log.json>",
		Short: "Summarize the DIA graph by operator category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStats(cmd.Context(), cmd.OutOrStdout(), args[0])
		},
	}
}

// graphStats counts nodes per style category.
type graphStats struct {
	categories []string       // category names in table order, then CategoryOther
	counts     map[string]int // nodes per category
	nodes      int
	edges      int
	dangling   []dia.ID
}

func computeStats(g *dia.Graph, styles *nodelink.Styles) graphStats {
	st := graphStats{
		counts:   make(map[string]int),
		nodes:    g.Len(),
		edges:    g.EdgeCount(),
		dangling: g.Dangling(),
	}
	for _, cat := range styles.Categories {
		st.categories = append(st.categories, cat.Name)
	}
	st.categories = append(st.categories, nodelink.CategoryOther)

	for _, n := range g.Nodes() {
		name := nodelink.CategoryOther
		if cat, ok := styles.Classify(n.Label); ok {
			name = cat.Name
		}
		st.counts[name]++
	}
	return st
}

func (c *CLI) runStats(ctx context.Context, w io.Writer, path string) error {
	styles, err := c.loadStyles()
	if err != nil {
		return err
	}
	if styles == nil {
		styles = nodelink.DefaultStyles()
	}

	runner := c.newRunner(true)
	g, readStats, err := runner.Read(ctx, path)
	if err != nil {
		return err
	}

	st := computeStats(g, styles)

	fmt.Fprintln(w, StyleTitle.Render(path))
	for _, name := range st.categories {
		printKeyValue(w, name, StyleNumber.Render(strconv.Itoa(st.counts[name])))
	}
	printKeyValue(w, "nodes", strconv.Itoa(st.nodes))
	printKeyValue(w, "edges", strconv.Itoa(st.edges))
	printKeyValue(w, "skipped", strconv.Itoa(readStats.Skipped))
	if readStats.Overwritten > 0 {
		printWarning(w, "%d creation records replaced an earlier node", readStats.Overwritten)
	}
	if len(st.dangling) > 0 {
		printWarning(w, "%d parent IDs never declared: %v", len(st.dangling), st.dangling)
	}
	return nil
}
