package io

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/matzehuels/diaviz/pkg/dia"
)

type graph struct {
	Nodes []node `json:"nodes"`
}

type node struct {
	ID      dia.ID   `json:"id"`
	Label   string   `json:"label"`
	Type    string   `json:"type,omitempty"`
	Parents []dia.ID `json:"parents"`
}

// WriteJSON encodes a DIA graph as JSON and writes it to w.
// Nodes appear in graph order; parents is always an array, never null.
// Ids are written in their logged kind: numbers as numbers, strings as strings.
func WriteJSON(g *dia.Graph, w io.Writer) error {
	out := graph{Nodes: make([]node, 0, g.Len())}
	for _, n := range g.Nodes() {
		parents := n.Parents
		if parents == nil {
			parents = []dia.ID{}
		}
		out.Nodes = append(out.Nodes, node{ID: n.ID, Label: n.Label, Type: n.Type, Parents: parents})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
