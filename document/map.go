package document

// Map is an object whose members keep insertion order.
type Map struct {
	keys  []string
	vals  []Value
	index map[string]int
}

// NewMap returns an empty map.
func NewMap() *Map {
	return &Map{index: make(map[string]int)}
}

// Len returns the number of members.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Get returns the member named key.
func (m *Map) Get(key string) (Value, bool) {
	if m == nil {
		return Value{}, false
	}
	i, ok := m.index[key]
	if !ok {
		return Value{}, false
	}
	return m.vals[i], true
}

// Set adds a member, or replaces the value of an existing one in place.
func (m *Map) Set(key string, v Value) {
	if i, ok := m.index[key]; ok {
		m.vals[i] = v
		return
	}
	m.index[key] = len(m.keys)
	m.keys = append(m.keys, key)
	m.vals = append(m.vals, v)
}

// Keys returns member names in order. The slice must not be modified.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	return m.keys
}

// Range calls fn for each member in order until fn returns false.
func (m *Map) Range(fn func(key string, v Value) bool) {
	if m == nil {
		return
	}
	for i, key := range m.keys {
		if !fn(key, m.vals[i]) {
			return
		}
	}
}
