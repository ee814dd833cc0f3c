// Package table provides the string-keyed hash map used for the VM's
// globals environment and the compiler's identifier constant pool (spec
// §4.7). It wraps a swiss-table implementation (open addressing, load
// factor managed internally, amortized O(1) probing) rather than
// hand-rolling linear probing and tombstones: the specification allows
// deferring to the host language's built-in hash map, and a swiss table
// is the idiomatic choice among this codebase's peers for that role.
package table

import "github.com/dolthub/swiss"

// Table maps string keys (identifier or string-object content bytes) to a
// value of type V. It is not safe for concurrent use, matching the
// single-threaded VM it backs.
type Table[V any] struct {
	m *swiss.Map[string, V]
}

// New returns a Table with initial capacity for at least size entries. A
// size of 0 is a reasonable default for small scopes (identifier pools,
// per-call globals snapshots).
func New[V any](size int) *Table[V] {
	if size < 1 {
		size = 1
	}
	return &Table[V]{m: swiss.NewMap[string, V](uint32(size))}
}

func (t *Table[V]) Get(key string) (V, bool) {
	return t.m.Get(key)
}

func (t *Table[V]) Has(key string) bool {
	return t.m.Has(key)
}

func (t *Table[V]) Set(key string, v V) {
	t.m.Put(key, v)
}

func (t *Table[V]) Delete(key string) bool {
	return t.m.Delete(key)
}

func (t *Table[V]) Len() int {
	return int(t.m.Count())
}

// Each calls fn once per entry. Iteration order is unspecified.
func (t *Table[V]) Each(fn func(key string, v V) bool) {
	t.m.Iter(fn)
}
