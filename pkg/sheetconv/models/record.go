package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Field is a single named value of a Record.
type Field struct {
	// Name is the field name; it becomes a header label on export.
	Name string
	// Value is the field value.
	Value Value
}

// Record is an ordered set of fields. The order fields were first set in is
// the column order used when the record defines a sheet header.
type Record struct {
	fields []Field
}

// NewRecord builds a record from fields; a repeated name keeps its first
// position and its last value.
func NewRecord(fields ...Field) Record {
	var r Record
	for _, f := range fields {
		r.Set(f.Name, f.Value)
	}
	return r
}

// F is shorthand for a Field.
func F(name string, v Value) Field { return Field{Name: name, Value: v} }

// Set assigns v to name. An existing field keeps its position.
func (r *Record) Set(name string, v Value) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = v
			return
		}
	}
	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Get returns the value of name.
func (r Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Null(), false
}

// Len returns the number of fields.
func (r Record) Len() int { return len(r.fields) }

// Fields returns a copy of the fields in order.
func (r Record) Fields() []Field {
	return append([]Field(nil), r.fields...)
}

// Keys returns the field names in order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.fields))
	for i, f := range r.fields {
		keys[i] = f.Name
	}
	return keys
}

// Values returns the field values in order.
func (r Record) Values() []Value {
	values := make([]Value, len(r.fields))
	for i, f := range r.fields {
		values[i] = f.Value
	}
	return values
}

// Equal reports whether r and o have the same fields in the same order.
func (r Record) Equal(o Record) bool {
	if len(r.fields) != len(o.fields) {
		return false
	}
	for i := range r.fields {
		if r.fields[i].Name != o.fields[i].Name || !r.fields[i].Value.Equal(o.fields[i].Value) {
			return false
		}
	}
	return true
}

// MarshalJSON encodes r as a JSON object with keys in field order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range r.fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshalString(f.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := f.Value.MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object keeping its key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	out := Record{}
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		var v Value
		if err := v.UnmarshalJSON(raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		out.Set(key, v)
		return nil
	})
	if err != nil {
		return err
	}

	*r = out
	return nil
}

// errNotObject is returned when an ordered decode meets a non-object.
var errNotObject = errors.New("expected a JSON object")

// decodeObject walks the members of a JSON object in document order.
func decodeObject(data []byte, member func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errNotObject
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("unexpected object key %v", tok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		if err := member(key, raw); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}
