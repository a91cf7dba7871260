package document

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestParse_PreservesMemberOrder(t *testing.T) {
	doc, err := Parse([]byte(`{"z": 1, "a": {"y": true, "b": null}, "m": "x"}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	obj, ok := doc.AsObject()
	if !ok {
		t.Fatalf("expected object, got %v", doc.Kind())
	}
	if got := strings.Join(obj.Keys(), ","); got != "z,a,m" {
		t.Errorf("top-level keys = %q, want %q", got, "z,a,m")
	}

	inner := doc.Get("a")
	innerObj, _ := inner.AsObject()
	if got := strings.Join(innerObj.Keys(), ","); got != "y,b" {
		t.Errorf("nested keys = %q, want %q", got, "y,b")
	}

	if got := doc.String(); got != `{"z":1,"a":{"y":true,"b":null},"m":"x"}` {
		t.Errorf("String() = %s", got)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"truncated object", `{"a": 1`},
		{"trailing data", `{"a": 1} {"b": 2}`},
		{"bare word", `hello`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Errorf("Parse(%q) expected error", tt.input)
			}
		})
	}
}

func TestParse_Scalars(t *testing.T) {
	tests := []struct {
		input string
		kind  Kind
		text  string
	}{
		{`null`, Null, "null"},
		{`true`, Bool, "true"},
		{`42`, Number, "42"},
		{`-3.5`, Number, "-3.5"},
		{`"hi"`, String, `"hi"`},
		{`[]`, Array, "[]"},
		{`{}`, Object, "{}"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if v.Kind() != tt.kind {
				t.Errorf("Kind() = %v, want %v", v.Kind(), tt.kind)
			}
			if v.String() != tt.text {
				t.Errorf("String() = %s, want %s", v.String(), tt.text)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	doc, err := Parse([]byte(`{"users": [1, 2], "meta": {"city": "Pune", "tags": {"x": 1}}}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	tests := []struct {
		path  string
		found bool
		want  string
	}{
		{"users", true, "[1,2]"},
		{"meta.city", true, `"Pune"`},
		{"meta.tags.x", true, "1"},
		{"meta.country", false, "undefined"},
		{"meta.city.length", false, "undefined"},
		{"users.0", true, "1"},
		{"users.1", true, "2"},
		{"users.2", false, "undefined"},
		{"users.01", false, "undefined"},
		{"users.-1", false, "undefined"},
		{"users.+1", false, "undefined"},
		{"meta.tags.0", false, "undefined"},
		{"", false, "undefined"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			v, ok := doc.Lookup(tt.path)
			if ok != tt.found {
				t.Errorf("Lookup(%q) found = %v, want %v", tt.path, ok, tt.found)
			}
			if v.String() != tt.want {
				t.Errorf("Lookup(%q) = %s, want %s", tt.path, v.String(), tt.want)
			}
		})
	}
}

func TestMap_SetOverwritesInPlace(t *testing.T) {
	m := NewMap()
	m.Set("a", NumberValue(1))
	m.Set("b", NumberValue(2))
	m.Set("a", NumberValue(3))

	if got := ObjectValue(m).String(); got != `{"a":3,"b":2}` {
		t.Errorf("object = %s, want {\"a\":3,\"b\":2}", got)
	}
}

func TestEqual(t *testing.T) {
	a, _ := Parse([]byte(`{"x": [1, "two", {"y": null}], "z": false}`))
	b, _ := Parse([]byte(`{"z": false, "x": [1, "two", {"y": null}]}`))
	c, _ := Parse([]byte(`{"z": true, "x": [1, "two", {"y": null}]}`))

	if !Equal(a, b) {
		t.Error("Equal() should ignore member order")
	}
	if Equal(a, c) {
		t.Error("Equal() should detect differing members")
	}
	if !Equal(Value{}, Value{}) {
		t.Error("Missing should equal Missing")
	}
	if Equal(Value{}, NullValue()) {
		t.Error("Missing should not equal null")
	}
}

func TestFromInterface(t *testing.T) {
	input := map[string]interface{}{
		"name":   "alice",
		"age":    int64(30),
		"score":  float32(1.5),
		"active": true,
		"tags":   []interface{}{"a", uint8(2)},
		"none":   nil,
		"raw":    json.Number("7"),
	}

	v, err := FromInterface(input)
	if err != nil {
		t.Fatalf("FromInterface() error = %v", err)
	}

	want := `{"active":true,"age":30,"name":"alice","none":null,"raw":7,"score":1.5,"tags":["a",2]}`
	if got := v.String(); got != want {
		t.Errorf("FromInterface() = %s, want %s", got, want)
	}

	if _, err := FromInterface(struct{}{}); err == nil {
		t.Error("FromInterface() expected error for struct")
	}
}

func TestInterface_RoundTrip(t *testing.T) {
	doc, _ := Parse([]byte(`{"a": [1, {"b": "c"}], "d": null}`))

	back, err := FromInterface(doc.Interface())
	if err != nil {
		t.Fatalf("FromInterface() error = %v", err)
	}
	if !Equal(doc, back) {
		t.Errorf("round trip mismatch: %s vs %s", doc, back)
	}
}

func TestMarshalIndent(t *testing.T) {
	doc, _ := Parse([]byte(`[{"id":1}]`))

	out, err := MarshalIndent(doc, "  ")
	if err != nil {
		t.Fatalf("MarshalIndent() error = %v", err)
	}
	want := "[\n  {\n    \"id\": 1\n  }\n]"
	if string(out) != want {
		t.Errorf("MarshalIndent() = %q, want %q", out, want)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{25, "25"},
		{-4, "-4"},
		{3.14, "3.14"},
		{0.5, "0.5"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
