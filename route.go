package routemap

import (
	"errors"
	"iter"
	"slices"
)

// ErrUnknownRoute is returned when an operation names a route id that is not
// registered.
var ErrUnknownRoute = errors.New("routemap: unknown route")

// RouteID identifies a registered route.
type RouteID int

// Route defaults used by NewRoute.
const (
	DefaultRouteLength = 5000
	DefaultRouteSlope  = 0.5
)

// Bounds of Route.Length. The curve is regenerated every frame, so the upper
// bound caps the per-frame allocation.
const (
	minRouteLength = 2
	MaxRouteLength = 100_000
)

// Route is a directed curve between two anchor entities that a plane can fly
// along.
type Route struct {
	ID         RouteID
	Start, End EntityID

	// Length is the number of curve samples, not a distance.
	Length int
	Type   CurveType
	Flip   bool
	Slope  float64

	// Flight state. FlightProgress is an index into the generated curve.
	Flying         bool
	FlightProgress float64
}

// NewRoute creates an unregistered snake route between two entities.
func NewRoute(start, end EntityID) *Route {
	return &Route{
		Start:  start,
		End:    end,
		Length: DefaultRouteLength,
		Type:   CurveSnake,
		Slope:  DefaultRouteSlope,
	}
}

// CurveOptions returns the curve parameters of the route.
func (r *Route) CurveOptions() CurveOptions {
	return CurveOptions{Length: r.Length, Type: r.Type, Flip: r.Flip, Slope: r.Slope}
}

// normalize clamps the numeric fields into their valid ranges.
func (r *Route) normalize() {
	r.Length = min(max(r.Length, minRouteLength), MaxRouteLength)
	r.Slope = min(max(r.Slope, 0), 1)
}

// RouteRegistry owns the live routes in registration order.
type RouteRegistry struct {
	byID  map[RouteID]*Route
	order []RouteID
	ids   IDAllocator
}

// Add registers r under the lowest free id and returns that id.
func (rr *RouteRegistry) Add(r *Route) RouteID {
	id := RouteID(rr.ids.Allocate())
	rr.place(r, id)
	return id
}

// Load registers r under a specific id, replacing any route with that id.
func (rr *RouteRegistry) Load(r *Route, id RouteID) {
	if id < 0 {
		rr.Add(r)
		return
	}
	if _, ok := rr.byID[id]; ok {
		rr.Delete(id)
	}
	rr.ids.Reserve(int(id))
	rr.place(r, id)
}

func (rr *RouteRegistry) place(r *Route, id RouteID) {
	if rr.byID == nil {
		rr.byID = make(map[RouteID]*Route)
	}
	r.normalize()
	r.ID = id
	rr.byID[id] = r
	rr.order = append(rr.order, id)
}

func (rr *RouteRegistry) reconcileIDs() {
	rr.ids.Reconcile(func(yield func(int) bool) {
		for _, id := range rr.order {
			if !yield(int(id)) {
				return
			}
		}
	})
}

// Get returns the route registered under id.
func (rr *RouteRegistry) Get(id RouteID) (*Route, bool) {
	r, ok := rr.byID[id]
	return r, ok
}

// Delete removes a route and releases its id.
func (rr *RouteRegistry) Delete(id RouteID) bool {
	r, ok := rr.byID[id]
	if !ok {
		return false
	}
	delete(rr.byID, id)
	if i := slices.Index(rr.order, id); i >= 0 {
		rr.order = slices.Delete(rr.order, i, i+1)
	}
	rr.ids.Release(int(id))
	r.Flying = false
	return true
}

// Clear removes every route.
func (rr *RouteRegistry) Clear() {
	clear(rr.byID)
	rr.order = rr.order[:0]
	rr.ids.Reset()
}

// Len returns the number of registered routes.
func (rr *RouteRegistry) Len() int {
	return len(rr.byID)
}

// All yields routes in registration order. Deleting the yielded route during
// iteration is allowed.
func (rr *RouteRegistry) All() iter.Seq[*Route] {
	return func(yield func(*Route) bool) {
		for _, id := range slices.Clone(rr.order) {
			r, ok := rr.byID[id]
			if !ok {
				continue
			}
			if !yield(r) {
				return
			}
		}
	}
}
