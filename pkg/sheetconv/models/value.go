// Package models defines data structures for spreadsheet conversion.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	// KindNull is an absent value; it is written as a blank cell.
	KindNull Kind = iota
	// KindString is a text value.
	KindString
	// KindNumber is a float64 value.
	KindNumber
	// KindDate is a wall-clock date-time value.
	KindDate
	// KindBool is a boolean value.
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	case KindBool:
		return "bool"
	default:
		return "null"
	}
}

// DateLayout is the layout used to render date-times as text.
const DateLayout = "2006-01-02 15:04:05"

// DayLayout is the layout used to render whole-day dates as text.
const DayLayout = "2006-01-02"

// Value is a scalar cell value: one of string, number, date, bool or null.
// The zero Value is null.
type Value struct {
	kind Kind
	str  string
	num  float64
	date time.Time
	b    bool
}

// Null returns the null value.
func Null() Value { return Value{} }

// String returns a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number returns a numeric value.
func Number(n float64) Value { return Value{kind: KindNumber, num: n} }

// Date returns a date-time value.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// Bool returns a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Kind reports the variant held by v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Str returns the text of a string value.
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }

// Num returns the number of a numeric value.
func (v Value) Num() (float64, bool) { return v.num, v.kind == KindNumber }

// Time returns the time of a date value.
func (v Value) Time() (time.Time, bool) { return v.date, v.kind == KindDate }

// Boolean returns the flag of a boolean value.
func (v Value) Boolean() (bool, bool) { return v.b, v.kind == KindBool }

// Interface returns the Go value handed to the spreadsheet codec:
// string, float64, time.Time, bool or nil.
func (v Value) Interface() interface{} {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num
	case KindDate:
		return v.date
	case KindBool:
		return v.b
	default:
		return nil
	}
}

// IsWholeDay reports whether v is a date with no time-of-day part.
func (v Value) IsWholeDay() bool {
	if v.kind != KindDate {
		return false
	}
	h, m, s := v.date.Clock()
	return h == 0 && m == 0 && s == 0 && v.date.Nanosecond() == 0
}

// IsZero reports whether v is null or the zero value of its kind.
func (v Value) IsZero() bool {
	switch v.kind {
	case KindString:
		return v.str == ""
	case KindNumber:
		return v.num == 0
	case KindDate:
		return v.date.IsZero()
	case KindBool:
		return !v.b
	default:
		return true
	}
}

// String renders v as text. Null renders as the empty string.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case KindDate:
		if v.IsWholeDay() {
			return v.date.Format(DayLayout)
		}
		return v.date.Format(DateLayout)
	case KindBool:
		return strconv.FormatBool(v.b)
	default:
		return ""
	}
}

// Equal reports whether v and o hold the same variant and value.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindNumber:
		return v.num == o.num
	case KindDate:
		return v.date.Equal(o.date)
	case KindBool:
		return v.b == o.b
	default:
		return true
	}
}

// MarshalJSON encodes dates as RFC 3339 strings and every other kind as the
// matching JSON scalar.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return marshalString(v.str)
	case KindNumber:
		return json.Marshal(v.num)
	case KindDate:
		return json.Marshal(v.date.Format(time.RFC3339Nano))
	case KindBool:
		return json.Marshal(v.b)
	default:
		return []byte("null"), nil
	}
}

// marshalString encodes s without HTML escaping; encoders that want it
// escape again when they compact the output.
func marshalString(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// UnmarshalJSON decodes a JSON scalar. JSON strings always decode as
// strings; see ParseDates for turning date-looking strings into dates.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := FromInterface(raw)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// FromInterface converts a decoded Go scalar into a Value.
func FromInterface(x interface{}) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case string:
		return String(t), nil
	case bool:
		return Bool(t), nil
	case float64:
		return Number(t), nil
	case float32:
		return Number(float64(t)), nil
	case int:
		return Number(float64(t)), nil
	case int64:
		return Number(float64(t)), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Null(), err
		}
		return Number(n), nil
	case time.Time:
		return Date(t), nil
	default:
		return Null(), fmt.Errorf("unsupported value type %T", x)
	}
}
