package routemap

import (
	"iter"

	"github.com/ErikKalkoken/go-set"
)

// IDAllocator hands out dense non-negative integer ids and reuses released
// ones. The lowest free id is always allocated first, so a map that had
// entities deleted refills its gaps before growing.
//
// Only ids in use are stored. Reserving a large id leaves the gap below it
// free without materializing it.
type IDAllocator struct {
	used set.Set[int]
	low  int // every id below low is in use
}

// Allocate returns the lowest free id and marks it used.
func (a *IDAllocator) Allocate() int {
	id := a.low
	for a.used.Contains(id) {
		id++
	}
	a.used.Add(id)
	a.low = id + 1
	return id
}

// Reserve marks a specific id as used, e.g. when loading a document with
// explicit ids. Negative ids are ignored.
func (a *IDAllocator) Reserve(id int) {
	if id < 0 {
		return
	}
	a.used.Add(id)
}

// Release returns id to the free pool. Releasing an id that was never
// allocated is a no-op.
func (a *IDAllocator) Release(id int) {
	if !a.used.Contains(id) {
		return
	}
	a.used.Delete(id)
	a.low = min(a.low, id)
}

// InUse reports whether id is currently allocated.
func (a *IDAllocator) InUse(id int) bool {
	return a.used.Contains(id)
}

// Len returns the number of ids in use.
func (a *IDAllocator) Len() int {
	return a.used.Size()
}

// Reconcile rebuilds the allocator from the set of ids that are actually live.
func (a *IDAllocator) Reconcile(live iter.Seq[int]) {
	a.Reset()
	for id := range live {
		a.Reserve(id)
	}
}

// Reset frees every id.
func (a *IDAllocator) Reset() {
	a.used.Clear()
	a.low = 0
}
