package io

import (
	"bufio"
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/diaviz/pkg/dia"
	"github.com/matzehuels/diaviz/pkg/errors"
)

// Record classes and events that mark the creation of a DIA node.
const (
	ClassDIABase = "DIABase"
	ClassDIA     = "DIA"
	EventCreate  = "create"
)

// maxLineSize bounds a single log line.
const maxLineSize = 64 << 20

// Stats summarizes a read pass over a log.
type Stats struct {
	Lines       int // Non-blank lines read
	Creates     int // Recognized creation records
	Skipped     int // Records ignored (no class, or not a creation shape)
	Overwritten int // Creation records that replaced an earlier node with the same ID
}

// record holds the fields of a log line the reader looks at. Values stay raw
// so that a non-string class on an unrelated record is skipped rather than
// rejected.
type record map[string]json.RawMessage

// ReadLog decodes a Thrill worker log from r into a DIA graph.
//
// Each non-blank line must be a JSON object. Creation records (see package
// documentation) insert or replace a node; all other records are skipped.
// ReadLog stops at the first malformed line and returns an INVALID_INPUT
// error naming it; no partial graph is returned in that case.
//
// ReadLog does not close r.
func ReadLog(r io.Reader) (*dia.Graph, Stats, error) {
	g := dia.New()
	var st Stats

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := bytes.TrimSpace(sc.Bytes())
		if len(line) == 0 {
			continue
		}
		st.Lines++

		var rec record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, st, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d: decode record", lineNo)
		}
		if rec == nil {
			return nil, st, errors.New(errors.ErrCodeInvalidInput, "line %d: not a JSON object", lineNo)
		}

		if !isCreate(rec) {
			st.Skipped++
			continue
		}

		n, err := decodeNode(rec)
		if err != nil {
			return nil, st, errors.Wrap(errors.ErrCodeInvalidInput, err, "line %d", lineNo)
		}
		st.Creates++
		if g.Put(n) {
			st.Overwritten++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, st, errors.Wrap(errors.ErrCodeInternal, err, "read log at line %d", lineNo+1)
	}

	return g, st, nil
}

// ImportLog reads the Thrill worker log at path and returns the decoded
// graph. The file is closed before ImportLog returns, including on error.
// A missing file yields a FILE_NOT_FOUND error; decoding errors are those of
// [ReadLog].
func ImportLog(path string) (*dia.Graph, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, Stats{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, Stats{}, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()
	return ReadLog(f)
}

// isCreate reports whether rec is one of the two DIA creation shapes.
// Fields that are missing or not strings never match.
func isCreate(rec record) bool {
	class, ok := stringField(rec, "class")
	if !ok || (class != ClassDIABase && class != ClassDIA) {
		return false
	}
	event, ok := stringField(rec, "event")
	return ok && event == EventCreate
}

func stringField(rec record, key string) (string, bool) {
	raw, ok := rec[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func decodeNode(rec record) (dia.Node, error) {
	rawID, ok := rec["dia_id"]
	if !ok {
		return dia.Node{}, errMissing("dia_id")
	}
	id, err := ParseID(rawID)
	if err != nil {
		return dia.Node{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "dia_id")
	}

	rawLabel, ok := rec["label"]
	if !ok {
		return dia.Node{}, errMissing("label")
	}
	var label string
	if err := json.Unmarshal(rawLabel, &label); err != nil {
		return dia.Node{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "label")
	}

	rawParents, ok := rec["parents"]
	if !ok {
		return dia.Node{}, errMissing("parents")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawParents, &items); err != nil {
		return dia.Node{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parents")
	}
	parents := make([]dia.ID, 0, len(items))
	for i, item := range items {
		p, err := ParseID(item)
		if err != nil {
			return dia.Node{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parents[%d]", i)
		}
		parents = append(parents, p)
	}

	typ, _ := stringField(rec, "type")

	return dia.Node{ID: id, Label: label, Type: typ, Parents: parents}, nil
}

func errMissing(field string) error {
	return errors.New(errors.ErrCodeInvalidInput, "creation record missing %q", field)
}

// ParseID converts a raw JSON value into a [dia.ID]. Numbers keep their
// literal text and stay distinct from strings with the same text. Any other
// JSON type is an INVALID_INPUT error.
func ParseID(raw json.RawMessage) (dia.ID, error) {
	var id dia.ID
	if err := id.UnmarshalJSON(raw); err != nil {
		return dia.ID{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse identifier")
	}
	return id, nil
}
