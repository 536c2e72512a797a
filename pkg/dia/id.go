package dia

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID identifies a DIA node by the dia_id value found in the log.
//
// Thrill writes integers, but a JSON string is accepted as well. The JSON
// kind is part of the identity: the integer 1 and the string "1" are
// different IDs even though both print as 1. Numbers keep their literal
// text, so 1 and 1.0 are different IDs too.
type ID struct {
	text string
	str  bool
}

// Int returns the ID for the integer n.
func Int(n int64) ID { return ID{text: strconv.FormatInt(n, 10)} }

// Number returns the ID for a JSON number literal such as "17" or "-2.5".
// The text is not validated; use [ID.UnmarshalJSON] for untrusted input.
func Number(text string) ID { return ID{text: text} }

// Str returns the ID for the JSON string s.
func Str(s string) ID { return ID{text: s, str: true} }

// String returns the ID text: the number literal, or the unquoted string.
func (id ID) String() string { return id.text }

// IsString reports whether the ID came from a JSON string.
func (id ID) IsString() bool { return id.str }

// MarshalJSON writes numbers as JSON numbers and strings as JSON strings.
// The zero ID encodes as null.
func (id ID) MarshalJSON() ([]byte, error) {
	if id.str {
		return json.Marshal(id.text)
	}
	if id.text == "" {
		return []byte("null"), nil
	}
	return []byte(id.text), nil
}

// UnmarshalJSON accepts a JSON number or string. Any other JSON value,
// null included, is an error.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return fmt.Errorf("empty identifier")
	}
	switch c := data[0]; {
	case c == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = Str(s)
	case c == '-' || (c >= '0' && c <= '9'):
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*id = Number(n.String())
	default:
		return fmt.Errorf("identifier must be a number or string, got %s", data)
	}
	return nil
}
