package dia

import "slices"

// Node is a single DIA operator instance.
type Node struct {
	ID      ID     // Identifier from the log
	Label   string // Operator name, e.g. "ReadLines"
	Type    string // Operator kind when logged, e.g. "DOp"; often empty
	Parents []ID   // Inputs in log order; may be empty for sources
}

// Edge is a dataflow dependency from a parent node to its consumer.
type Edge struct {
	From ID
	To   ID
}

// Graph is an insertion-ordered mapping from node ID to [Node].
//
// The zero value is not usable; create graphs with [New].
// A Graph is not safe for concurrent mutation.
type Graph struct {
	order []ID
	nodes map[ID]Node
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{nodes: make(map[ID]Node)}
}

// Put inserts n, replacing any node with the same ID. A replaced node keeps
// its original position in iteration order. Put reports whether a node was
// replaced.
func (g *Graph) Put(n Node) bool {
	n.Parents = slices.Clone(n.Parents)
	_, exists := g.nodes[n.ID]
	if !exists {
		g.order = append(g.order, n.ID)
	}
	g.nodes[n.ID] = n
	return exists
}

// Node returns the node with the given ID.
func (g *Graph) Node(id ID) (Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Len returns the number of distinct nodes.
func (g *Graph) Len() int { return len(g.order) }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns one edge per parent reference, grouped by consumer in node
// order and by parent order within a node. Repeated parents produce repeated
// edges.
func (g *Graph) Edges() []Edge {
	var out []Edge
	for _, id := range g.order {
		for _, p := range g.nodes[id].Parents {
			out = append(out, Edge{From: p, To: id})
		}
	}
	return out
}

// EdgeCount returns len(g.Edges()) without building the slice.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, id := range g.order {
		n += len(g.nodes[id].Parents)
	}
	return n
}

// Dangling returns the parent IDs that have no node of their own, each once,
// in the order they are first referenced.
func (g *Graph) Dangling() []ID {
	var out []ID
	seen := make(map[ID]bool)
	for _, e := range g.Edges() {
		if _, ok := g.nodes[e.From]; ok || seen[e.From] {
			continue
		}
		seen[e.From] = true
		out = append(out, e.From)
	}
	return out
}
