package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Value is a single JSON value taken verbatim from a report.
type Value struct {
	raw json.RawMessage
}

// StringValue returns a Value holding a JSON string.
func StringValue(s string) Value {
	data, _ := json.Marshal(s)
	return Value{raw: data}
}

// IntValue returns a Value holding a JSON integer.
func IntValue(n int) Value {
	return Value{raw: json.RawMessage(strconv.Itoa(n))}
}

// RawValue returns a Value for already-encoded JSON.
func RawValue(raw json.RawMessage) Value {
	return Value{raw: append(json.RawMessage(nil), raw...)}
}

// String renders the value for display. Strings are shown without quotes;
// every other value is shown as compact JSON.
func (v Value) String() string {
	raw := bytes.TrimSpace(v.raw)
	if len(raw) == 0 {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

// Int returns the value as an integer when it holds one.
func (v Value) Int() (int, bool) {
	n, err := strconv.Atoi(string(bytes.TrimSpace(v.raw)))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if len(v.raw) == 0 {
		return []byte("null"), nil
	}
	return v.raw, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	v.raw = append(v.raw[:0], data...)
	return nil
}

// Entry is one key/value pair of a Mapping.
type Entry struct {
	Key   string
	Value Value
}

// Mapping is a JSON object that keeps its keys in document order.
//
// A nil Mapping means the object was absent; an empty non-nil Mapping means
// it was present with no keys.
type Mapping []Entry

// Get returns the value stored under key.
func (m Mapping) Get(key string) (Value, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Value{}, false
}

// MarshalJSON implements json.Marshaler, writing keys in order.
func (m Mapping) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := e.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON implements json.Unmarshaler, preserving key order.
func (m *Mapping) UnmarshalJSON(data []byte) error {
	if string(bytes.TrimSpace(data)) == "null" {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	result := Mapping{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("value for %q: %w", key, err)
		}
		result = append(result, Entry{Key: key, Value: RawValue(raw)})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = result
	return nil
}
