// Package jsonutil renders values as stable JSON for scripted consumers.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// MarshalStable produces JSON with every object's keys sorted, two-space
// indentation and a trailing newline. Struct values are normalized through
// a generic map first so field declaration order never leaks into output.
func MarshalStable(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("stable marshal: %w", err)
	}

	// UseNumber keeps int64 values (lock ticks) exact through the generic
	// round trip.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return nil, fmt.Errorf("stable marshal: %w", err)
	}

	var buf bytes.Buffer
	if err := writeStable(&buf, generic, 0); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

const indentUnit = "  "

func writeStable(buf *bytes.Buffer, v any, depth int) error {
	switch val := v.(type) {
	case map[string]any:
		if len(val) == 0 {
			buf.WriteString("{}")
			return nil
		}
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteString("{\n")
		for i, k := range keys {
			writeIndent(buf, depth+1)
			keyBytes, err := json.Marshal(k)
			if err != nil {
				return err
			}
			buf.Write(keyBytes)
			buf.WriteString(": ")
			if err := writeStable(buf, val[k], depth+1); err != nil {
				return err
			}
			if i < len(keys)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte('}')

	case []any:
		if len(val) == 0 {
			buf.WriteString("[]")
			return nil
		}
		buf.WriteString("[\n")
		for i, item := range val {
			writeIndent(buf, depth+1)
			if err := writeStable(buf, item, depth+1); err != nil {
				return err
			}
			if i < len(val)-1 {
				buf.WriteByte(',')
			}
			buf.WriteByte('\n')
		}
		writeIndent(buf, depth)
		buf.WriteByte(']')

	default:
		// string, json.Number, bool, nil
		raw, err := json.Marshal(val)
		if err != nil {
			return err
		}
		buf.Write(raw)
	}
	return nil
}

func writeIndent(buf *bytes.Buffer, depth int) {
	for i := 0; i < depth; i++ {
		buf.WriteString(indentUnit)
	}
}
