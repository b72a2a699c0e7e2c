package homepage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

type objectField struct {
	key   string
	value any
}

// marshalObject encodes known fields in order, followed by extra keys in
// sorted order. Extra keys shadowed by a known field are dropped.
func marshalObject(known []objectField, extra map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	write := func(key string, value any) error {
		if buf.Len() > 1 {
			buf.WriteByte(',')
		}
		k, _ := json.Marshal(key)
		v, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
		return nil
	}

	for _, f := range known {
		if err := write(f.key, f.value); err != nil {
			return nil, err
		}
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		if !slices.ContainsFunc(known, func(f objectField) bool { return f.key == k }) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		if err := write(k, extra[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// unmarshalObject decodes a JSON object into its fields. It returns nil
// for JSON null.
func unmarshalObject(data []byte) (map[string]any, error) {
	if strings.TrimSpace(string(data)) == "null" {
		return nil, nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// takeBool removes key from fields and returns its value. A missing or
// null value reads as false.
func takeBool(fields map[string]any, key string) (bool, error) {
	v, ok := fields[key]
	if !ok {
		return false, nil
	}
	delete(fields, key)
	if v == nil {
		return false, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, v)
	}
	return b, nil
}
