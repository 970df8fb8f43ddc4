package routemap

import "math"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// Vec2 is a 2D vector used for positions, offsets, sizes, and directions
// throughout the API.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Rect is a rectangle given by an anchor corner and signed dimensions. The
// coordinate system has its origin at the top-left, with Y increasing
// downward. Width and Height may be negative, in which case Position is not
// the top-left corner.
type Rect struct {
	X, Y, Width, Height float64
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Has reports whether all modifiers in m are held.
func (k KeyModifiers) Has(m KeyModifiers) bool {
	return k&m == m
}

// CurveType selects the easing profile of a route curve.
type CurveType uint8

const (
	CurveSnake  CurveType = iota // oscillating diagonal weave
	CurveSingle                  // slope-blended monotonic sweep
	CurveLinear                  // linear monotonic sweep (slope ignored)
)

var curveTypeNames = [...]string{
	CurveSnake:  "snake",
	CurveSingle: "single",
	CurveLinear: "linear",
}

func (c CurveType) String() string {
	if int(c) < len(curveTypeNames) {
		return curveTypeNames[c]
	}
	return "unknown"
}

// ParseCurveType returns the curve type with the given document name.
func ParseCurveType(s string) (CurveType, bool) {
	for i, name := range curveTypeNames {
		if name == s {
			return CurveType(i), true
		}
	}
	return 0, false
}

// EventType identifies a kind of editor event delivered to an EventStore.
type EventType uint8

const (
	EventSelectionChanged EventType = iota // selection set replaced or modified
	EventEntityDeleted                     // an entity was removed from the map
	EventRouteRetired                      // a route lost an anchor and was removed
	EventFlightStarted                     // a plane began flying a route
	EventFlightFinished                    // a flight reached the end anchor
)
