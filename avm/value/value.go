package value

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Kind enumerates the shapes a Value can take.
type Kind byte

const (
	KindInt Kind = iota
	KindBytes
	KindTuple
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindBytes:
		return "bytes"
	case KindTuple:
		return "tuple"
	default:
		return "unknown"
	}
}

// Value is a closed tagged union over the data the machine passes around:
// a 256-bit integer, an opaque byte payload, or an ordered tuple of nested
// values. Values are immutable once constructed; the typed accessors fail
// cleanly instead of panicking on a kind mismatch.
type Value struct {
	kind  Kind
	num   U256
	bytes []byte
	tuple []Value
}

// IntValue wraps a 256-bit integer.
func IntValue(i U256) Value {
	return Value{kind: KindInt, num: i}
}

// BytesValue wraps an opaque payload. The data is copied so later caller
// mutations cannot leak into the value.
func BytesValue(data []byte) Value {
	return Value{kind: KindBytes, bytes: bytes.Clone(data)}
}

// TupleValue wraps an ordered sequence of values.
func TupleValue(elements ...Value) Value {
	return Value{kind: KindTuple, tuple: slices.Clone(elements)}
}

func (v Value) Kind() Kind {
	return v.kind
}

// AsInt returns the integer payload, or false if v is not an integer.
func (v Value) AsInt() (U256, bool) {
	if v.kind != KindInt {
		return U256{}, false
	}
	return v.num, true
}

// AsBytes returns a copy of the opaque payload, or false if v is not one.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return bytes.Clone(v.bytes), true
}

// AsTuple returns a copy of the tuple elements, or false if v is not a
// tuple.
func (v Value) AsTuple() ([]Value, bool) {
	if v.kind != KindTuple {
		return nil, false
	}
	return slices.Clone(v.tuple), true
}

// Eq compares two values structurally.
func (a Value) Eq(b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindInt:
		return a.num.Eq(b.num)
	case KindBytes:
		return bytes.Equal(a.bytes, b.bytes)
	case KindTuple:
		return slices.EqualFunc(a.tuple, b.tuple, Value.Eq)
	default:
		return false
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return v.num.String()
	case KindBytes:
		return fmt.Sprintf("0x%x", v.bytes)
	case KindTuple:
		parts := make([]string, len(v.tuple))
		for i, element := range v.tuple {
			parts[i] = element.String()
		}
		return fmt.Sprintf("Tuple(%s)", strings.Join(parts, ", "))
	default:
		return "invalid"
	}
}
