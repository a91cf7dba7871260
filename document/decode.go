package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrInvalidJSON is returned when input is not a single well-formed JSON value.
var ErrInvalidJSON = errors.New("invalid JSON")

// Parse decodes one JSON value from data.
func Parse(data []byte) (Value, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads exactly one JSON value from r. Object member order is kept as
// it appears in the input; a repeated member name keeps its first position and
// its last value.
func Decode(r io.Reader) (Value, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return Value{}, err
	}

	if _, err := dec.Token(); err != io.EOF {
		return Value{}, fmt.Errorf("%w: unexpected data after top-level value", ErrInvalidJSON)
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Value{}, fmt.Errorf("%w: unexpected end of input", ErrInvalidJSON)
		}
		return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}

	switch t := tok.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case string:
		return StringValue(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: number %s: %v", ErrInvalidJSON, t, err)
		}
		return NumberValue(n), nil
	case json.Delim:
		switch t {
		case '[':
			items := make([]Value, 0)
			for dec.More() {
				item, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
			return ArrayValue(items), nil
		case '{':
			m := NewMap()
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
				}
				key, ok := keyTok.(string)
				if !ok {
					return Value{}, fmt.Errorf("%w: object key is %T", ErrInvalidJSON, keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return Value{}, err
				}
				m.Set(key, val)
			}
			if _, err := dec.Token(); err != nil {
				return Value{}, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
			}
			return ObjectValue(m), nil
		}
	}
	return Value{}, fmt.Errorf("%w: unexpected token %v", ErrInvalidJSON, tok)
}
