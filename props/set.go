package props

import (
	"fmt"
	"sort"
	"strings"
)

// Set is an ordered mapping of attribute names to values. Replacing an
// existing key keeps its original position. A nil *Set reads as empty.
type Set struct {
	keys   []string
	values map[string]Value
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{values: make(map[string]Value)}
}

// Put stores v under key and returns s so calls can be chained.
func (s *Set) Put(key string, v Value) *Set {
	if s.values == nil {
		s.values = make(map[string]Value)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = v
	return s
}

// Delete removes key from the set.
func (s *Set) Delete(key string) {
	if s == nil {
		return
	}
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Get returns the value stored under key. The boolean is false when the
// key is absent; an explicit Null is reported as present.
func (s *Set) Get(key string) (Value, bool) {
	if s == nil {
		return Value{}, false
	}
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present, including explicit Nulls.
func (s *Set) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Len returns the number of keys.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Empty reports whether the set holds no keys.
func (s *Set) Empty() bool { return s.Len() == 0 }

// Keys returns the keys in insertion order.
func (s *Set) Keys() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.keys...)
}

// Each calls fn for every key in order.
func (s *Set) Each(fn func(key string, v Value)) {
	if s == nil {
		return
	}
	for _, k := range s.keys {
		fn(k, s.values[k])
	}
}

// Lookup follows a path of keys through nested sets.
//
//	before, ok := p.Lookup("spacing", "before")
func (s *Set) Lookup(path ...string) (Value, bool) {
	cur := s
	for i, key := range path {
		v, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		next, ok := v.AsSet()
		if !ok {
			return Value{}, false
		}
		cur = next
	}
	return Value{}, false
}

// Clone returns a deep copy of s. Cloning nil yields nil.
func (s *Set) Clone() *Set {
	if s == nil {
		return nil
	}
	out := &Set{
		keys:   append([]string(nil), s.keys...),
		values: make(map[string]Value, len(s.values)),
	}
	for k, v := range s.values {
		out.values[k] = v.clone()
	}
	return out
}

// Compact returns a copy of s with every explicit Null removed, at any
// depth. Nested sets left empty by the removal are kept.
func (s *Set) Compact() *Set {
	if s == nil {
		return nil
	}
	out := NewSet()
	for _, k := range s.keys {
		v := s.values[k]
		switch v.kind {
		case KindNull:
			continue
		case KindSet:
			out.Put(k, Nested(v.set.Compact()))
		default:
			out.Put(k, v.clone())
		}
	}
	return out
}

// Equal reports whether both sets hold the same keys with equal values.
// Key order is not compared. A nil set equals an empty set.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, k := range s.Keys() {
		ov, ok := other.Get(k)
		if !ok || !s.values[k].Equal(ov) {
			return false
		}
	}
	return true
}

// String renders the set as {k=v ...} for debugging.
func (s *Set) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range s.Keys() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(k)
		sb.WriteString("=")
		sb.WriteString(s.values[k].String())
	}
	sb.WriteString("}")
	return sb.String()
}

// FromMap builds a set from plain Go values. Keys are inserted in sorted
// order since maps carry none. Supported element types are nil, bool,
// integers, float64, string, map[string]any, []any and *Set.
func FromMap(m map[string]any) (*Set, error) {
	if m == nil {
		return nil, nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := NewSet()
	for _, k := range keys {
		v, err := valueOf(m[k])
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		s.Put(k, v)
	}
	return s, nil
}

// MustFromMap is like FromMap but panics on unsupported values. It is
// intended for fixtures and tests.
func MustFromMap(m map[string]any) *Set {
	s, err := FromMap(m)
	if err != nil {
		panic(err)
	}
	if s == nil {
		s = NewSet()
	}
	return s
}

func valueOf(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t.clone(), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint64:
		return Int(int64(t)), nil
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case *Set:
		return Nested(t.Clone()), nil
	case map[string]any:
		s, err := FromMap(t)
		if err != nil {
			return Value{}, err
		}
		return Nested(s), nil
	case []any:
		items := make([]Value, 0, len(t))
		for i, item := range t {
			v, err := valueOf(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items = append(items, v)
		}
		return List(items...), nil
	}
	return Value{}, fmt.Errorf("unsupported value type %T", x)
}

// ToMap converts the set back into plain Go values, the inverse of
// FromMap up to key order.
func (s *Set) ToMap() map[string]any {
	if s == nil {
		return nil
	}
	out := make(map[string]any, len(s.keys))
	for _, k := range s.keys {
		out[k] = s.values[k].toAny()
	}
	return out
}

func (v Value) toAny() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindSet:
		return v.set.ToMap()
	case KindList:
		items := make([]any, len(v.list))
		for i, item := range v.list {
			items[i] = item.toAny()
		}
		return items
	}
	return nil
}
