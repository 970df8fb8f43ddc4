package routemap

import (
	"iter"
	"slices"
)

// LayerMap groups entity ids into buckets keyed by z. Buckets are kept in
// ascending z order and preserve insertion order internally, which is the
// paint order. Empty buckets are pruned.
type LayerMap struct {
	zs      []int // sorted ascending
	buckets map[int][]EntityID
}

// Insert appends id to the bucket for z.
func (l *LayerMap) Insert(id EntityID, z int) {
	if l.buckets == nil {
		l.buckets = make(map[int][]EntityID)
	}
	b, ok := l.buckets[z]
	if !ok {
		i, _ := slices.BinarySearch(l.zs, z)
		l.zs = slices.Insert(l.zs, i, z)
	}
	l.buckets[z] = append(b, id)
}

// Remove deletes id from the bucket for z. Returns false if it was not there.
func (l *LayerMap) Remove(id EntityID, z int) bool {
	b, ok := l.buckets[z]
	if !ok {
		return false
	}
	i := slices.Index(b, id)
	if i < 0 {
		return false
	}
	b = slices.Delete(b, i, i+1)
	if len(b) == 0 {
		delete(l.buckets, z)
		if j, found := slices.BinarySearch(l.zs, z); found {
			l.zs = slices.Delete(l.zs, j, j+1)
		}
		return true
	}
	l.buckets[z] = b
	return true
}

// Move relocates id from layer z to layer z+dz and returns the new layer. The
// entity lands on top of its new bucket.
func (l *LayerMap) Move(id EntityID, z, dz int) int {
	if dz == 0 {
		return z
	}
	l.Remove(id, z)
	l.Insert(id, z+dz)
	return z + dz
}

// Layers returns the non-empty layer indices in ascending order. The returned
// slice MUST NOT be mutated.
func (l *LayerMap) Layers() []int {
	return l.zs
}

// Len returns the number of non-empty layers.
func (l *LayerMap) Len() int {
	return len(l.zs)
}

// Ascending yields (z, id) pairs in paint order: lowest layer first, and
// within a layer in insertion order.
func (l *LayerMap) Ascending() iter.Seq2[int, EntityID] {
	return func(yield func(int, EntityID) bool) {
		for _, z := range l.zs {
			for _, id := range l.buckets[z] {
				if !yield(z, id) {
					return
				}
			}
		}
	}
}

// Descending yields (z, id) pairs in reverse paint order.
func (l *LayerMap) Descending() iter.Seq2[int, EntityID] {
	return func(yield func(int, EntityID) bool) {
		for i := len(l.zs) - 1; i >= 0; i-- {
			z := l.zs[i]
			b := l.buckets[z]
			for j := len(b) - 1; j >= 0; j-- {
				if !yield(z, b[j]) {
					return
				}
			}
		}
	}
}

// Clear removes every bucket.
func (l *LayerMap) Clear() {
	l.zs = l.zs[:0]
	clear(l.buckets)
}
