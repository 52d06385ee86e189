// Package env is the name environment used during resolution: a chained hash
// map from identifier text to binding id.
package env

import "iter"

// InitialCapacity is the bucket count of a new environment.
const InitialCapacity = 8

type entry struct {
	key   string
	value int
	next  *entry
}

// Environment maps names to ids. The zero value is not usable; call New.
type Environment struct {
	buckets []*entry
	size    int
}

func New() *Environment {
	return &Environment{buckets: make([]*entry, InitialCapacity)}
}

func hash(key string, capacity int) int {
	var h uint64
	for i := range len(key) {
		h = h*31 + uint64(key[i])
	}

	return int(h % uint64(capacity))
}

func (e *Environment) Len() int { return e.size }

func (e *Environment) Cap() int { return len(e.buckets) }

// LoadFactor returns size divided by bucket count.
func (e *Environment) LoadFactor() float64 {
	return float64(e.size) / float64(len(e.buckets))
}

func (e *Environment) rehash() {
	old := e.buckets
	e.buckets = make([]*entry, len(old)*2)

	for _, head := range old {
		for en := head; en != nil; {
			next := en.next
			i := hash(en.key, len(e.buckets))
			en.next = e.buckets[i]
			e.buckets[i] = en
			en = next
		}
	}
}

// Set binds key to value and reports whether key was already bound. An
// existing binding is updated in place.
func (e *Environment) Set(key string, value int) bool {
	if e.size >= len(e.buckets) {
		e.rehash()
	}

	i := hash(key, len(e.buckets))
	for en := e.buckets[i]; en != nil; en = en.next {
		if en.key == key {
			en.value = value
			return true
		}
	}

	e.buckets[i] = &entry{key: key, value: value, next: e.buckets[i]}
	e.size++

	return false
}

// Get looks key up.
func (e *Environment) Get(key string) (int, bool) {
	for en := e.buckets[hash(key, len(e.buckets))]; en != nil; en = en.next {
		if en.key == key {
			return en.value, true
		}
	}

	return 0, false
}

// All iterates every binding in bucket order.
func (e *Environment) All() iter.Seq2[string, int] {
	return func(yield func(string, int) bool) {
		for _, head := range e.buckets {
			for en := head; en != nil; en = en.next {
				if !yield(en.key, en.value) {
					return
				}
			}
		}
	}
}

// Merge moves every binding of src into dst and leaves src empty. A key
// present in both ends up with src's value.
func Merge(dst, src *Environment) {
	for k, v := range src.All() {
		dst.Set(k, v)
	}

	src.buckets = make([]*entry, InitialCapacity)
	src.size = 0
}
