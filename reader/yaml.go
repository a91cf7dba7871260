package reader

import (
	"fmt"
	"sort"

	"github.com/goccy/go-yaml"
	"github.com/vegasq/jsonq/document"
)

// decodeYAML decodes a single YAML document. Mappings keep their key order.
func decodeYAML(data []byte) (document.Value, error) {
	var raw interface{}
	if err := yaml.UnmarshalWithOptions(data, &raw, yaml.UseOrderedMap()); err != nil {
		return document.Value{}, err
	}
	return fromYAML(raw)
}

func fromYAML(v interface{}) (document.Value, error) {
	switch val := v.(type) {
	case yaml.MapSlice:
		m := document.NewMap()
		for _, item := range val {
			conv, err := fromYAML(item.Value)
			if err != nil {
				return document.Value{}, fmt.Errorf("key %v: %w", item.Key, err)
			}
			m.Set(yamlKey(item.Key), conv)
		}
		return document.ObjectValue(m), nil

	case []interface{}:
		items := make([]document.Value, 0, len(val))
		for i, item := range val {
			conv, err := fromYAML(item)
			if err != nil {
				return document.Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, conv)
		}
		return document.ArrayValue(items), nil

	case map[string]interface{}:
		return fromYAMLMap(len(val), func(fn func(key string, v interface{})) {
			for k, item := range val {
				fn(k, item)
			}
		})

	case map[interface{}]interface{}:
		return fromYAMLMap(len(val), func(fn func(key string, v interface{})) {
			for k, item := range val {
				fn(yamlKey(k), item)
			}
		})
	}

	return document.FromInterface(v)
}

// fromYAMLMap converts an unordered mapping with sorted member names.
func fromYAMLMap(size int, each func(fn func(key string, v interface{}))) (document.Value, error) {
	members := make(map[string]interface{}, size)
	keys := make([]string, 0, size)
	each(func(key string, v interface{}) {
		members[key] = v
		keys = append(keys, key)
	})
	sort.Strings(keys)

	m := document.NewMap()
	for _, key := range keys {
		conv, err := fromYAML(members[key])
		if err != nil {
			return document.Value{}, fmt.Errorf("key %s: %w", key, err)
		}
		m.Set(key, conv)
	}
	return document.ObjectValue(m), nil
}

func yamlKey(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}
