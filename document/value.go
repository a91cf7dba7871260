package document

import (
	"fmt"
	"math"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind int

const (
	// Missing is the zero Kind. It marks a path that did not resolve and is
	// never produced by decoding.
	Missing Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

var kindNames = [...]string{
	Missing: "missing",
	Null:    "null",
	Bool:    "bool",
	Number:  "number",
	String:  "string",
	Array:   "array",
	Object:  "object",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Value is a JSON value. The zero Value is Missing.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Map
}

// NullValue returns the JSON null.
func NullValue() Value { return Value{kind: Null} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{kind: Bool, b: b} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{kind: Number, n: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{kind: String, s: s} }

// ArrayValue wraps a slice of values. The slice is not copied.
func ArrayValue(items []Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{kind: Array, arr: items}
}

// ObjectValue wraps an ordered map. A nil map yields an empty object.
func ObjectValue(m *Map) Value {
	if m == nil {
		m = NewMap()
	}
	return Value{kind: Object, obj: m}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether v is the absent value.
func (v Value) IsMissing() bool { return v.kind == Missing }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == Bool }

func (v Value) AsNumber() (float64, bool) { return v.n, v.kind == Number }

func (v Value) AsString() (string, bool) { return v.s, v.kind == String }

func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == Array }

func (v Value) AsObject() (*Map, bool) { return v.obj, v.kind == Object }

// Len returns the number of elements of an array or members of an object,
// and 0 for every other kind.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return v.obj.Len()
	default:
		return 0
	}
}

// Get returns the member named key. It returns Missing when v is not an
// object or has no such member.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return Value{}
	}
	val, _ := v.obj.Get(key)
	return val
}

// Lookup resolves a dot-separated path by descending one member per segment.
// A segment indexes an array when it is a canonical decimal index ("0", "12")
// within bounds. The second result is false when any segment does not resolve.
func (v Value) Lookup(path string) (Value, bool) {
	return v.LookupSegments(strings.Split(path, "."))
}

// LookupSegments is Lookup over an already split path.
func (v Value) LookupSegments(segments []string) (Value, bool) {
	cur := v
	for _, seg := range segments {
		switch cur.kind {
		case Object:
			next, ok := cur.obj.Get(seg)
			if !ok {
				return Value{}, false
			}
			cur = next
		case Array:
			i, ok := arrayIndex(seg, len(cur.arr))
			if !ok {
				return Value{}, false
			}
			cur = cur.arr[i]
		default:
			return Value{}, false
		}
	}
	return cur, true
}

// arrayIndex parses seg as an index below n. Signs, leading zeros and
// anything but ASCII digits are rejected.
func arrayIndex(seg string, n int) (int, bool) {
	if seg == "" || len(seg) > 1 && seg[0] == '0' {
		return 0, false
	}
	i := 0
	for j := 0; j < len(seg); j++ {
		c := seg[j]
		if c < '0' || c > '9' {
			return 0, false
		}
		i = i*10 + int(c-'0')
		if i >= n {
			return 0, false
		}
	}
	return i, true
}

// Equal reports deep equality. Object member order is not significant.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Missing, Null:
		return true
	case Bool:
		return a.b == b.b
	case Number:
		return a.n == b.n
	case String:
		return a.s == b.s
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if a.obj.Len() != b.obj.Len() {
			return false
		}
		for i, key := range a.obj.keys {
			other, ok := b.obj.Get(key)
			if !ok || !Equal(a.obj.vals[i], other) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v as compact JSON. Missing renders as "undefined".
func (v Value) String() string {
	if v.kind == Missing {
		return "undefined"
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(b)
}

// FormatNumber renders n the way JSON output does: integral values without a
// fractional part, everything else in the shortest exact form.
func FormatNumber(n float64) string {
	if n == math.Trunc(n) && math.Abs(n) < 1e21 {
		return fmt.Sprintf("%.0f", n)
	}
	return fmt.Sprintf("%v", n)
}
