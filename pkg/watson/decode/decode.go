// Package decode gives typed, path-aware access to a parsed JSON document.
//
// Service models are decoded field by field: required fields use the plain
// accessors (String, Int, IntString, ...) and fail when the field is missing
// or has the wrong type; optional fields use the Opt* accessors, which yield
// nil instead of failing. Several upstream services send numbers and flags as
// strings ("0.93", "1", "yes"), which the *String accessors parse.
package decode

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

// Error reports why a value could not be decoded and where it sits in the document.
type Error struct {
	Path   string
	Reason string
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Value is one node of a parsed JSON document.
type Value struct {
	any  jsoniter.Any
	path string
}

// Parse validates body and returns its root value.
func Parse(body []byte) (Value, error) {
	if len(body) == 0 {
		return Value{}, &Error{Reason: "empty body"}
	}
	if !jsoniter.Valid(body) {
		return Value{}, &Error{Reason: "malformed JSON"}
	}
	return Value{any: jsoniter.Get(body)}, nil
}

// Path returns the dotted location of v inside the document ("" for the root).
func (v Value) Path() string { return v.path }

// Field returns the member key of an object. The result does not exist when v
// is not an object or has no such member.
func (v Value) Field(key string) Value {
	child := v.path + "." + key
	if v.path == "" {
		child = key
	}
	if v.any == nil || v.any.ValueType() != jsoniter.ObjectValue {
		return Value{path: child}
	}
	return Value{any: v.any.Get(key), path: child}
}

// Index returns element i of an array.
func (v Value) Index(i int) Value {
	child := fmt.Sprintf("%s[%d]", v.path, i)
	if v.any == nil || v.any.ValueType() != jsoniter.ArrayValue {
		return Value{path: child}
	}
	return Value{any: v.any.Get(i), path: child}
}

// Exists reports whether the value is present in the document.
func (v Value) Exists() bool {
	return v.any != nil && v.any.ValueType() != jsoniter.InvalidValue
}

// IsNull reports whether the value is a JSON null.
func (v Value) IsNull() bool {
	return v.any != nil && v.any.ValueType() == jsoniter.NilValue
}

func (v Value) missing() error {
	return &Error{Path: v.path, Reason: "missing"}
}

func (v Value) mismatch(want string) error {
	if !v.Exists() {
		return v.missing()
	}
	return &Error{Path: v.path, Reason: fmt.Sprintf("expected %s, got %s", want, typeName(v.any.ValueType()))}
}

func typeName(t jsoniter.ValueType) string {
	switch t {
	case jsoniter.StringValue:
		return "string"
	case jsoniter.NumberValue:
		return "number"
	case jsoniter.NilValue:
		return "null"
	case jsoniter.BoolValue:
		return "bool"
	case jsoniter.ArrayValue:
		return "array"
	case jsoniter.ObjectValue:
		return "object"
	default:
		return "invalid"
	}
}

func (v Value) is(t jsoniter.ValueType) bool {
	return v.any != nil && v.any.ValueType() == t
}

// AsString returns a JSON string.
func (v Value) AsString() (string, error) {
	if !v.is(jsoniter.StringValue) {
		return "", v.mismatch("string")
	}
	return v.any.ToString(), nil
}

// AsInt returns a JSON number that has no fractional part and fits in an int.
// The literal is parsed from its raw text so large values keep full precision.
func (v Value) AsInt() (int, error) {
	if !v.is(jsoniter.NumberValue) {
		return 0, v.mismatch("integer")
	}
	raw := strings.TrimSpace(v.any.ToString())
	if n, err := strconv.ParseInt(raw, 10, strconv.IntSize); err == nil {
		return int(n), nil
	}
	// Integral values written as 12.0 or 1e2.
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, &Error{Path: v.path, Reason: fmt.Sprintf("expected integer, got %s", raw)}
	}
	if f < math.MinInt || f >= -math.MinInt {
		return 0, &Error{Path: v.path, Reason: fmt.Sprintf("integer %s out of range", raw)}
	}
	return int(f), nil
}

// AsFloat returns a JSON number.
func (v Value) AsFloat() (float64, error) {
	if !v.is(jsoniter.NumberValue) {
		return 0, v.mismatch("number")
	}
	return v.any.ToFloat64(), nil
}

// AsBool returns a JSON boolean.
func (v Value) AsBool() (bool, error) {
	if !v.is(jsoniter.BoolValue) {
		return false, v.mismatch("bool")
	}
	return v.any.ToBool(), nil
}

// AsIntString parses an integer sent as a JSON string, e.g. "12".
func (v Value) AsIntString() (int, error) {
	s, err := v.AsString()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, &Error{Path: v.path, Reason: fmt.Sprintf("not an integer: %q", s)}
	}
	return n, nil
}

// AsFloatString parses a number sent as a JSON string, e.g. "0.93".
func (v Value) AsFloatString() (float64, error) {
	s, err := v.AsString()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, &Error{Path: v.path, Reason: fmt.Sprintf("not a number: %q", s)}
	}
	return f, nil
}

// AsBoolString parses a flag sent as a JSON string: "1"/"0", "true"/"false" or "yes"/"no".
func (v Value) AsBoolString() (bool, error) {
	s, err := v.AsString()
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes":
		return true, nil
	case "0", "false", "no":
		return false, nil
	}
	return false, &Error{Path: v.path, Reason: fmt.Sprintf("not a flag: %q", s)}
}

// AsArray returns the elements of a JSON array.
func (v Value) AsArray() ([]Value, error) {
	if !v.is(jsoniter.ArrayValue) {
		return nil, v.mismatch("array")
	}
	n := v.any.Size()
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = v.Index(i)
	}
	return out, nil
}

// AsObject checks that v is a JSON object and returns it unchanged.
func (v Value) AsObject() (Value, error) {
	if !v.is(jsoniter.ObjectValue) {
		return Value{}, v.mismatch("object")
	}
	return v, nil
}

// Raw returns the value as a generic Go value (map, slice, string, float64, bool or nil).
func (v Value) Raw() interface{} {
	if !v.Exists() {
		return nil
	}
	return v.any.GetInterface()
}
