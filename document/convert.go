package document

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// FromInterface converts plain Go data, as produced by the usual decoders,
// into a Value. Maps with string keys become objects with sorted member
// names, since Go maps carry no order.
func FromInterface(v interface{}) (Value, error) {
	switch val := v.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return val, nil
	case bool:
		return BoolValue(val), nil
	case string:
		return StringValue(val), nil
	case []byte:
		return StringValue(string(val)), nil
	case json.Number:
		n, err := val.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("invalid number %q: %w", val.String(), err)
		}
		return NumberValue(n), nil
	case time.Time:
		return StringValue(val.Format(time.RFC3339Nano)), nil
	case []interface{}:
		items := make([]Value, 0, len(val))
		for i, item := range val {
			conv, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, conv)
		}
		return ArrayValue(items), nil
	case []map[string]interface{}:
		items := make([]Value, 0, len(val))
		for i, item := range val {
			conv, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, conv)
		}
		return ArrayValue(items), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(val))
		for key := range val {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		m := NewMap()
		for _, key := range keys {
			conv, err := FromInterface(val[key])
			if err != nil {
				return Value{}, fmt.Errorf("member %q: %w", key, err)
			}
			m.Set(key, conv)
		}
		return ObjectValue(m), nil
	}

	if n, ok := toFloat64(v); ok {
		return NumberValue(n), nil
	}
	return Value{}, fmt.Errorf("unsupported type %T", v)
}

// toFloat64 converts a value to float64 if possible
func toFloat64(v interface{}) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int8:
		return float64(val), true
	case int16:
		return float64(val), true
	case int32:
		return float64(val), true
	case int64:
		return float64(val), true
	case uint:
		return float64(val), true
	case uint8:
		return float64(val), true
	case uint16:
		return float64(val), true
	case uint32:
		return float64(val), true
	case uint64:
		return float64(val), true
	default:
		return 0, false
	}
}

// Interface converts v into plain Go data: map[string]interface{},
// []interface{}, float64, string, bool and nil. Missing becomes nil.
func (v Value) Interface() interface{} {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return v.n
	case String:
		return v.s
	case Array:
		out := make([]interface{}, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]interface{}, v.obj.Len())
		for i, key := range v.obj.keys {
			out[key] = v.obj.vals[i].Interface()
		}
		return out
	default:
		return nil
	}
}
