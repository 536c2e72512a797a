// Package io reads Thrill worker logs into DIA graphs and exports parsed
// graphs as JSON.
//
// # Log Format
//
// A Thrill worker writes one JSON object per line. Most lines describe
// network, memory or stream activity; the ones this package cares about mark
// the creation of a DIA node:
//
//	{"ts":1467,"class":"DIABase","event":"create","type":"DOp","dia_id":3,"label":"ReduceByKey","parents":[1,2]}
//
// Two creation shapes are recognized and handled identically, since older
// logs used class "DIA" for the same event:
//
//   - class "DIABase", event "create"
//   - class "DIA", event "create"
//
// From a creation record the reader takes:
//
//   - dia_id: node identifier (integer or string)
//   - label: operator name
//   - parents: array of parent identifiers
//   - type: operator kind (optional)
//
// Records without a "class" field, and records whose class/event pair is not
// a creation shape, are skipped. They are counted in [Stats] but are not
// errors.
//
// # Errors
//
// The reader does not recover from bad input. A line that is not a JSON
// object, or a creation record lacking dia_id, label or parents, aborts the
// read with an INVALID_INPUT error naming the line. Blank lines are ignored.
//
// # Import
//
// Use [ImportLog] to read a log file, or [ReadLog] for any io.Reader:
//
//	g, stats, err := io.ImportLog("worker-0.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(g.Len(), "nodes from", stats.Lines, "lines")
//
// # Export
//
// [WriteJSON] encodes a parsed graph as
//
//	{"nodes": [{"id": "0", "label": "ReadLines", "parents": []}]}
//
// with nodes in graph order.
package io
