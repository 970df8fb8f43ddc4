package routemap

import (
	"errors"
	"iter"
	"slices"
)

// ErrUnknownEntity is returned when an operation names an entity id that is
// not registered.
var ErrUnknownEntity = errors.New("routemap: unknown entity")

// EntityID identifies a registered entity. Ids are reused after deletion.
type EntityID int

// NoEntity is the id of an entity that is not registered.
const NoEntity EntityID = -1

// Entity is a placed sprite with a world transform and a layer index.
// A single flat struct is used for every sprite; planes are regular entities
// whose Source is one of the configured plane sources.
type Entity struct {
	ID     EntityID
	Source string

	// World transform. Rotation is in degrees.
	X, Y     float64
	Scale    float64
	Rotation float64

	// Z is the layer index. Change it through EntityRegistry.MoveLayer so the
	// layer buckets stay consistent.
	Z int

	// UI state, not persisted.
	Hover     bool
	Highlight bool
	Flying    bool

	deleted bool
}

// NewEntity creates an unregistered entity showing the given image source.
func NewEntity(source string) *Entity {
	return &Entity{ID: NoEntity, Source: source, Scale: 1}
}

// Transform returns the entity's world transform.
func (e *Entity) Transform() Transform {
	return Transform{X: e.X, Y: e.Y, Scale: e.Scale, Rotation: e.Rotation}
}

// Position returns the entity's world position.
func (e *Entity) Position() Vec2 {
	return Vec2{e.X, e.Y}
}

// IsDeleted reports whether the entity has been removed from its registry.
func (e *Entity) IsDeleted() bool {
	return e.deleted
}

// clone returns an unregistered copy carrying the persisted fields only.
func (e *Entity) clone() *Entity {
	return &Entity{
		ID:       NoEntity,
		Source:   e.Source,
		X:        e.X,
		Y:        e.Y,
		Scale:    e.Scale,
		Rotation: e.Rotation,
		Z:        e.Z,
	}
}

// EntityRegistry owns the live entities: a flat id index, the insertion
// order used for iteration and saving, the layer buckets used for paint order,
// and the id allocator.
type EntityRegistry struct {
	byID   map[EntityID]*Entity
	order  []EntityID
	layers LayerMap
	ids    IDAllocator
}

// Add registers e under the lowest free id and returns that id. Scale is
// clamped at zero.
func (r *EntityRegistry) Add(e *Entity) EntityID {
	id := EntityID(r.ids.Allocate())
	r.place(e, id)
	return id
}

// Load registers e under a specific id. An entity already registered under
// that id is replaced.
func (r *EntityRegistry) Load(e *Entity, id EntityID) {
	if id < 0 {
		r.Add(e)
		return
	}
	if _, ok := r.byID[id]; ok {
		r.Delete(id)
	}
	r.ids.Reserve(int(id))
	r.place(e, id)
}

func (r *EntityRegistry) place(e *Entity, id EntityID) {
	if r.byID == nil {
		r.byID = make(map[EntityID]*Entity)
	}
	if e.Scale < 0 {
		e.Scale = 0
	}
	e.ID = id
	e.deleted = false
	r.byID[id] = e
	r.order = append(r.order, id)
	r.layers.Insert(id, e.Z)
}

// reconcileIDs rebuilds the id allocator from the registered entities.
func (r *EntityRegistry) reconcileIDs() {
	r.ids.Reconcile(func(yield func(int) bool) {
		for _, id := range r.order {
			if !yield(int(id)) {
				return
			}
		}
	})
}

// Get returns the entity registered under id.
func (r *EntityRegistry) Get(id EntityID) (*Entity, bool) {
	e, ok := r.byID[id]
	return e, ok
}

// Delete removes the entity from the index, the iteration order and its
// layer bucket, and releases its id. Returns false if id is unknown.
func (r *EntityRegistry) Delete(id EntityID) bool {
	e, ok := r.byID[id]
	if !ok {
		return false
	}
	delete(r.byID, id)
	if i := slices.Index(r.order, id); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
	r.layers.Remove(id, e.Z)
	r.ids.Release(int(id))
	e.deleted = true
	e.Flying = false
	return true
}

// MoveLayer shifts the entity dz layers up (positive) or down (negative).
func (r *EntityRegistry) MoveLayer(id EntityID, dz int) error {
	e, ok := r.byID[id]
	if !ok {
		return ErrUnknownEntity
	}
	e.Z = r.layers.Move(id, e.Z, dz)
	return nil
}

// Clear removes every entity and frees every id.
func (r *EntityRegistry) Clear() {
	for _, e := range r.byID {
		e.deleted = true
	}
	clear(r.byID)
	r.order = r.order[:0]
	r.layers.Clear()
	r.ids.Reset()
}

// Len returns the number of registered entities.
func (r *EntityRegistry) Len() int {
	return len(r.byID)
}

// All yields entities in registration order.
func (r *EntityRegistry) All() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, id := range r.order {
			if !yield(r.byID[id]) {
				return
			}
		}
	}
}

// PaintOrder yields entities bottom layer first, the order they are drawn.
func (r *EntityRegistry) PaintOrder() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, id := range r.layers.Ascending() {
			if !yield(r.byID[id]) {
				return
			}
		}
	}
}

// ReversePaintOrder yields entities topmost first.
func (r *EntityRegistry) ReversePaintOrder() iter.Seq[*Entity] {
	return func(yield func(*Entity) bool) {
		for _, id := range r.layers.Descending() {
			if !yield(r.byID[id]) {
				return
			}
		}
	}
}

// Layers returns the non-empty layer indices in ascending order.
func (r *EntityRegistry) Layers() []int {
	return r.layers.Layers()
}
