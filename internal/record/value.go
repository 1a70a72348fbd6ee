package record

import (
	"encoding/json"
	"math"
	"strconv"
)

// Kind identifies the type held by a Value.
type Kind uint8

const (
	// Null marks a cell that was present but failed coercion.
	Null Kind = iota
	Float
	Int
	String
)

func (k Kind) String() string {
	switch k {
	case Float:
		return "float"
	case Int:
		return "int"
	case String:
		return "string"
	default:
		return "null"
	}
}

// Value is a single coerced cell.
type Value struct {
	kind Kind
	f    float64
	i    int64
	s    string
}

// NullValue returns the value produced by a failed coercion.
func NullValue() Value { return Value{} }

func FloatValue(f float64) Value { return Value{kind: Float, f: f} }
func IntValue(i int64) Value     { return Value{kind: Int, i: i} }
func StringValue(s string) Value { return Value{kind: String, s: s} }

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == Null }

// Float64 reports the value as a float64 for Float and Int kinds.
func (v Value) Float64() (float64, bool) {
	switch v.kind {
	case Float:
		return v.f, true
	case Int:
		return float64(v.i), true
	}
	return 0, false
}

// Int64 reports the value for Int kinds only.
func (v Value) Int64() (int64, bool) {
	if v.kind == Int {
		return v.i, true
	}
	return 0, false
}

// Str reports the raw text for String kinds only.
func (v Value) Str() (string, bool) {
	if v.kind == String {
		return v.s, true
	}
	return "", false
}

// Interface returns the Go value held, or nil for Null.
func (v Value) Interface() any {
	switch v.kind {
	case Float:
		return v.f
	case Int:
		return v.i
	case String:
		return v.s
	}
	return nil
}

// String renders the value for reports; Null renders empty.
func (v Value) String() string {
	switch v.kind {
	case Float:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case Int:
		return strconv.FormatInt(v.i, 10)
	case String:
		return v.s
	}
	return ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case Float:
		if math.IsNaN(v.f) || math.IsInf(v.f, 0) {
			return []byte("null"), nil
		}
		return json.Marshal(v.f)
	case Int:
		return json.Marshal(v.i)
	case String:
		return json.Marshal(v.s)
	}
	return []byte("null"), nil
}
