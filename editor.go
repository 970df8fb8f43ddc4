package routemap

import (
	"image"
	"log/slog"
	"slices"
	"time"

	"github.com/ErikKalkoken/go-set"
)

// Image is a loaded image handle. Only its size is used by the core; the
// handle itself is passed through to the Canvas untouched.
type Image interface {
	Bounds() image.Rectangle
}

// ImageSource resolves image sources to handles. Implementations may load
// asynchronously and return nil until the image is ready; a nil image
// resolves to a zero-size entity.
type ImageSource interface {
	Image(source string) Image
}

// EventStore receives editor events. See the ecs package for a Donburi
// backed implementation.
type EventStore interface {
	EmitEvent(event EditorEvent)
}

// EditorEvent carries data about a change in the editor session.
type EditorEvent struct {
	Type      EventType
	EntityID  EntityID
	RouteID   RouteID
	Selection []EntityID
}

// Config holds tunables of the editor session.
type Config struct {
	// FlightSpeed is the base progress advance per reference frame.
	FlightSpeed float64
	// FrameRate is the number of reference frames per second. Animation
	// speed is defined per reference frame and scaled by the real update
	// interval.
	FrameRate float64
	// IgnitionDelay is the number of reference frames a flight waits before
	// progress starts advancing.
	IgnitionDelay int
	// PlaneSources lists image sources drawn in the plane pass, above routes.
	PlaneSources []string
	// PlaneID is the entity flown by the digit key bindings.
	PlaneID EntityID
	// Route defaults for routes created with the R key binding.
	RouteLength int
	RouteType   CurveType
	RouteSlope  float64
	// ScrollDuration is the camera focus animation length in seconds.
	ScrollDuration float32
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{
		FlightSpeed:    2,
		FrameRate:      60,
		PlaneSources:   []string{"Plane.png", "PlaneUp1.png", "PlaneUp2.png", "PlaneFull.gif"},
		PlaneID:        0,
		RouteLength:    DefaultRouteLength,
		RouteType:      CurveSnake,
		RouteSlope:     DefaultRouteSlope,
		ScrollDuration: 0.5,
	}
}

func (c *Config) normalize() {
	d := DefaultConfig()
	if c.FlightSpeed <= 0 {
		c.FlightSpeed = d.FlightSpeed
	}
	if c.FrameRate <= 0 {
		c.FrameRate = d.FrameRate
	}
	if c.IgnitionDelay < 0 {
		c.IgnitionDelay = 0
	}
	if c.RouteLength < minRouteLength {
		c.RouteLength = d.RouteLength
	}
	c.RouteLength = min(c.RouteLength, MaxRouteLength)
	c.RouteSlope = min(max(c.RouteSlope, 0), 1)
	if c.ScrollDuration <= 0 {
		c.ScrollDuration = d.ScrollDuration
	}
}

// Editor is one editing session: it owns the camera, the entity and route
// registries, the selection, pointer state and running flights. Every
// operation goes through an Editor value, so independent sessions never share
// state.
type Editor struct {
	Camera   Camera
	Entities EntityRegistry
	Routes   RouteRegistry

	config Config
	images ImageSource
	store  EventStore
	logger *slog.Logger
	debug  bool

	canvasW, canvasH float64

	selection set.Set[EntityID]
	clipboard []*Entity
	flights   map[RouteID]*flight

	pointer     pointerState
	injectQueue []Event
	testRunner  *TestRunner
}

// NewEditor creates an empty session with the given configuration.
func NewEditor(cfg Config) *Editor {
	cfg.normalize()
	return &Editor{
		Camera:  NewCamera(),
		config:  cfg,
		logger:  slog.Default(),
		flights: make(map[RouteID]*flight),
	}
}

// Config returns the session configuration.
func (ed *Editor) Config() Config {
	return ed.config
}

// SetImageSource sets the collaborator that resolves image sources.
func (ed *Editor) SetImageSource(src ImageSource) {
	ed.images = src
}

// SetEventStore sets the optional event sink.
func (ed *Editor) SetEventStore(store EventStore) {
	ed.store = store
}

// SetLogger replaces the logger. A nil logger restores slog.Default.
func (ed *Editor) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	ed.logger = l
}

// SetDebugMode enables or disables per-frame statistics logging.
func (ed *Editor) SetDebugMode(enabled bool) {
	ed.debug = enabled
}

// Resize sets the canvas size used to resolve screen coordinates.
func (ed *Editor) Resize(w, h float64) {
	ed.canvasW = w
	ed.canvasH = h
}

// CanvasSize returns the current canvas size.
func (ed *Editor) CanvasSize() (w, h float64) {
	return ed.canvasW, ed.canvasH
}

func (ed *Editor) emit(ev EditorEvent) {
	if ed.store == nil {
		return
	}
	ed.store.EmitEvent(ev)
}

// --- Entities and routes ---

// AddEntity registers e and returns its id.
func (ed *Editor) AddEntity(e *Entity) EntityID {
	return ed.Entities.Add(e)
}

// DeleteEntity removes an entity from the map and the selection. Routes that
// use it as an anchor are retired on the next Update.
func (ed *Editor) DeleteEntity(id EntityID) bool {
	if !ed.Entities.Delete(id) {
		return false
	}
	if ed.selection.Contains(id) {
		ed.selection.Delete(id)
	}
	ed.emit(EditorEvent{Type: EventEntityDeleted, EntityID: id})
	return true
}

// AddRoute registers r and returns its id. Both anchors must exist.
func (ed *Editor) AddRoute(r *Route) (RouteID, error) {
	if _, ok := ed.Entities.Get(r.Start); !ok {
		return 0, ErrUnknownEntity
	}
	if _, ok := ed.Entities.Get(r.End); !ok {
		return 0, ErrUnknownEntity
	}
	return ed.Routes.Add(r), nil
}

// DeleteRoute removes a route and cancels its flight.
func (ed *Editor) DeleteRoute(id RouteID) bool {
	if !ed.Routes.Delete(id) {
		return false
	}
	ed.endFlight(id)
	return true
}

// Reset clears entities, routes, selection and flights. The camera is kept.
func (ed *Editor) Reset() {
	ed.Entities.Clear()
	ed.Routes.Clear()
	ed.selection.Clear()
	clear(ed.flights)
}

// --- Entity space ---

// imageSize returns the native pixel size of source, or zero if the image is
// not available.
func (ed *Editor) imageSize(source string) (w, h float64) {
	if ed.images == nil {
		return 0, 0
	}
	img := ed.images.Image(source)
	if img == nil {
		return 0, 0
	}
	b := img.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// EntitySpace resolves the screen-space rectangle of e for the current camera
// and canvas. Always recomputed.
func (ed *Editor) EntitySpace(e *Entity) Space {
	w, h := ed.imageSize(e.Source)
	return ResolveSpace(e.Transform(), w, h, ed.Camera, ed.canvasW, ed.canvasH)
}

// isPlane reports whether e is drawn in the plane pass.
func (ed *Editor) isPlane(e *Entity) bool {
	return e.Flying || slices.Contains(ed.config.PlaneSources, e.Source)
}

// --- Selection ---

// Selection returns the selected entity ids in ascending order.
func (ed *Editor) Selection() []EntityID {
	ids := slices.Collect(ed.selection.All())
	slices.Sort(ids)
	return ids
}

// IsSelected reports whether id is selected.
func (ed *Editor) IsSelected(id EntityID) bool {
	return ed.selection.Contains(id)
}

// Select replaces the selection with the given registered ids.
func (ed *Editor) Select(ids ...EntityID) {
	ed.selection.Clear()
	for _, id := range ids {
		if _, ok := ed.Entities.Get(id); ok {
			ed.selection.Add(id)
		}
	}
	ed.selectionChanged()
}

// ClearSelection empties the selection.
func (ed *Editor) ClearSelection() {
	if ed.selection.Size() == 0 {
		return
	}
	ed.selection.Clear()
	ed.selectionChanged()
}

func (ed *Editor) selectionChanged() {
	ed.emit(EditorEvent{Type: EventSelectionChanged, Selection: ed.Selection()})
}

// selected yields the selected entities in ascending id order.
func (ed *Editor) selected() []*Entity {
	var out []*Entity
	for _, id := range ed.Selection() {
		if e, ok := ed.Entities.Get(id); ok {
			out = append(out, e)
		}
	}
	return out
}

// --- Clipboard ---

// Copy stores copies of the selected entities.
func (ed *Editor) Copy() {
	ed.clipboard = ed.clipboard[:0]
	for _, e := range ed.selected() {
		ed.clipboard = append(ed.clipboard, e.clone())
	}
}

// Paste registers copies of the clipboard entities and selects them.
func (ed *Editor) Paste() []EntityID {
	ed.selection.Clear()
	ids := make([]EntityID, 0, len(ed.clipboard))
	for _, c := range ed.clipboard {
		id := ed.Entities.Add(c.clone())
		ed.selection.Add(id)
		ids = append(ids, id)
	}
	ed.selectionChanged()
	return ids
}

// --- Camera ---

// FocusSelection scrolls the camera to the centroid of the selection.
func (ed *Editor) FocusSelection() bool {
	sel := ed.selected()
	if len(sel) == 0 {
		return false
	}
	var c Vec2
	for _, e := range sel {
		c = c.Add(e.Position())
	}
	n := float64(len(sel))
	ed.Camera.ScrollTo(c.X/n, c.Y/n, ed.config.ScrollDuration, nil)
	return true
}

// --- Update ---

// Update advances the session by dt seconds: scripted and injected input,
// the camera scroll animation and every running flight.
func (ed *Editor) Update(dt float64) {
	var t0 time.Time
	if ed.debug {
		t0 = time.Now()
	}

	if ed.testRunner != nil {
		ed.testRunner.step(ed)
	}
	ed.processInjectedInput()

	ed.Camera.update(float32(dt))
	ed.updateFlights(dt)

	if ed.debug {
		ed.logger.Debug("update",
			"took", time.Since(t0),
			"entities", ed.Entities.Len(),
			"routes", ed.Routes.Len(),
			"flights", len(ed.flights),
		)
	}
}
