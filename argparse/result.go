package argparse

import (
	"github.com/goliatone/go-errors"
)

// ErrCodeImmutable is the text code carried by mutation attempts
// against a returned result container.
const ErrCodeImmutable = "IMMUTABLE_RESULT"

// OrderedMap is an insertion-ordered map. The engine fills one per
// result bucket and freezes it before handing the result back, after
// which every mutator fails with an immutability error. Overwrites do
// not move a key; order is first-seen order.
type OrderedMap[V any] struct {
	keys   []string
	values map[string]V
	frozen bool
}

func newOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{values: map[string]V{}}
}

func (m *OrderedMap[V]) Set(key string, value V) error {
	if m.frozen {
		return immutableErr("set", key)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
	return nil
}

func (m *OrderedMap[V]) Delete(key string) error {
	if m.frozen {
		return immutableErr("delete", key)
	}
	if _, ok := m.values[key]; !ok {
		return nil
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return nil
}

func (m *OrderedMap[V]) Clear() error {
	if m.frozen {
		return immutableErr("clear", "")
	}
	m.keys = nil
	m.values = map[string]V{}
	return nil
}

func (m *OrderedMap[V]) Get(key string) (V, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

func (m *OrderedMap[V]) Len() int {
	return len(m.values)
}

// Keys returns the key order as a copy.
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *OrderedMap[V]) Frozen() bool {
	return m.frozen
}

func (m *OrderedMap[V]) freeze() {
	m.frozen = true
}

func immutableErr(op, key string) error {
	meta := map[string]any{"operation": op}
	if key != "" {
		meta["key"] = key
	}
	return errors.New("result container is immutable once returned", errors.CategoryOperation).
		WithTextCode(ErrCodeImmutable).
		WithMetadata(meta)
}

// Result holds the three buckets one Parse call produces. Each call
// allocates fresh containers; nothing is shared across calls.
type Result struct {
	options    *OrderedMap[any]
	parameters *OrderedMap[string]
	operands   []string
}

func newResult() *Result {
	return &Result{
		options:    newOrderedMap[any](),
		parameters: newOrderedMap[string](),
	}
}

func (r *Result) freeze() {
	r.options.freeze()
	r.parameters.freeze()
}

// Options maps option names to their parsed values: bool for flags,
// string for text, int for int and count, []string for lists. Alias
// occurrences land under their target name.
func (r *Result) Options() *OrderedMap[any] {
	return r.options
}

// Parameters maps bare name=value tokens, independent of the schema.
func (r *Result) Parameters() *OrderedMap[string] {
	return r.parameters
}

// Operands returns positional tokens, and everything after the first
// literal "--", as a copy.
func (r *Result) Operands() []string {
	out := make([]string, len(r.operands))
	copy(out, r.operands)
	return out
}

func (r *Result) Bool(name string) (bool, bool) {
	v, ok := r.options.Get(name)
	if !ok {
		return false, false
	}
	b, ok := v.(bool)
	return b, ok
}

func (r *Result) String(name string) (string, bool) {
	v, ok := r.options.Get(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (r *Result) Int(name string) (int, bool) {
	v, ok := r.options.Get(name)
	if !ok {
		return 0, false
	}
	n, ok := v.(int)
	return n, ok
}

// List returns a copy so callers cannot reach the stored sequence.
func (r *Result) List(name string) ([]string, bool) {
	v, ok := r.options.Get(name)
	if !ok {
		return nil, false
	}
	list, ok := v.([]string)
	if !ok {
		return nil, false
	}
	out := make([]string, len(list))
	copy(out, list)
	return out, true
}
