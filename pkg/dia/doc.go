// Package dia holds the in-memory DIA graph reconstructed from a Thrill
// worker log.
//
// A DIA (distributed immutable array) node is one operator instance of a
// Thrill program: a source such as ReadLines, a transform such as
// ReduceByKey, or an action such as WriteLines. Each node knows the IDs of
// the nodes it consumes, its parents. Parents are plain IDs rather than
// pointers, so a parent that never appeared in the log is representable and
// simply yields an edge to an undeclared node.
//
// An [ID] keeps the JSON kind of the logged dia_id, so the integer 1 and the
// string "1" name two different nodes.
//
// # Ordering
//
// [Graph] remembers the order in which IDs were first inserted. Re-inserting
// an existing ID replaces the node in place and keeps its original position,
// so iteration order is stable and output built from it is reproducible.
//
// # Usage
//
//	g := dia.New()
//	g.Put(dia.Node{ID: dia.Int(0), Label: "ReadLines"})
//	g.Put(dia.Node{ID: dia.Int(1), Label: "Sum", Parents: []dia.ID{dia.Int(0)}})
//	for _, e := range g.Edges() {
//	    fmt.Println(e.From, "->", e.To)
//	}
package dia
