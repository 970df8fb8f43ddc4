package routemap

import (
	"math"
	"strconv"
	"strings"
)

// InputKind identifies a normalized input event.
type InputKind uint8

const (
	InputLoad        InputKind = iota // a document is loaded (Text)
	InputResize                       // canvas resized (Width, Height)
	InputMouseMove                    // pointer moved (X, Y, MovementX, MovementY)
	InputMouseDown                    // button pressed (X, Y, Button)
	InputMouseUp                      // button released (X, Y, Button)
	InputWheel                        // wheel scrolled (DeltaY)
	InputContextMenu                  // context menu requested; suppressed
	InputKeyDown                      // key pressed (Key)
)

// Event is one normalized input event. Coordinates are screen space.
type Event struct {
	Kind InputKind

	X, Y                 float64
	MovementX, MovementY float64
	DeltaY               float64
	Button               MouseButton
	Modifiers            KeyModifiers

	// Key is the key name: "Delete", "=", "-", a lower-case letter or a digit.
	Key string

	Width, Height float64
	Text          string
}

// Key names used by the editor bindings.
const (
	KeyDelete    = "Delete"
	KeyLayerUp   = "="
	KeyLayerDown = "-"
)

// HandleEvent dispatches one input event to the editor.
func (ed *Editor) HandleEvent(ev Event) {
	switch ev.Kind {
	case InputLoad:
		_ = ed.Load(ev.Text)
	case InputResize:
		ed.Resize(ev.Width, ev.Height)
	case InputMouseMove:
		ed.pointerMove(ev)
	case InputMouseDown:
		ed.pointerDown(ev)
	case InputMouseUp:
		ed.pointerUp(ev)
	case InputWheel:
		ed.wheel(ev)
	case InputContextMenu:
	case InputKeyDown:
		ed.keyDown(ev)
	}
}

func (ed *Editor) buttonHeld(b MouseButton) bool {
	return int(b) < len(ed.pointer.buttons) && ed.pointer.buttons[b]
}

func (ed *Editor) pointerMove(ev Event) {
	ed.pointer.pos = Vec2{ev.X, ev.Y}

	switch {
	case ed.buttonHeld(MouseButtonMiddle):
		ed.Camera.Pan(ev.MovementX, ev.MovementY)
	case ed.buttonHeld(MouseButtonRight) && ev.Modifiers.Has(ModAlt):
		ed.rotateSelection(ev)
	case ed.buttonHeld(MouseButtonRight):
		ed.moveSelection(ev.MovementX, ev.MovementY)
	}

	ed.UpdateHovers(ed.pointer.pos)
}

func (ed *Editor) pointerDown(ev Event) {
	ed.pointer.pos = Vec2{ev.X, ev.Y}
	if int(ev.Button) < len(ed.pointer.buttons) {
		ed.pointer.buttons[ev.Button] = true
	}
	if ev.Button == MouseButtonLeft {
		ed.pointer.anchor = ed.pointer.pos
		ed.pointer.selecting = true
	}
}

func (ed *Editor) pointerUp(ev Event) {
	ed.pointer.pos = Vec2{ev.X, ev.Y}
	if int(ev.Button) < len(ed.pointer.buttons) {
		ed.pointer.buttons[ev.Button] = false
	}
	if ev.Button == MouseButtonLeft && ed.pointer.selecting {
		ed.pointer.selecting = false
		ed.ResolveSelection(ed.pointer.anchor, ed.pointer.pos, ev.Modifiers)
	}
	ed.UpdateHovers(ed.pointer.pos)
}

func (ed *Editor) wheel(ev Event) {
	if ev.Modifiers.Has(ModAlt) {
		ed.scaleSelection(ev.DeltaY)
	} else {
		ed.Camera.Zoom(ev.DeltaY)
	}
	ed.UpdateHovers(ed.pointer.pos)
}

// moveSelection drags the selected entities by a screen-space movement.
func (ed *Editor) moveSelection(movX, movY float64) {
	if ed.Camera.Scale == 0 {
		return
	}
	for _, e := range ed.selected() {
		e.X += movX / ed.Camera.Scale
		e.Y += movY / ed.Camera.Scale
	}
}

// rotateSelection turns each selected entity by the tangential component of
// the pointer movement around the entity's center.
func (ed *Editor) rotateSelection(ev Event) {
	for _, e := range ed.selected() {
		c := ed.EntitySpace(e).Center
		dx := c.X - ev.X
		dy := c.Y - ev.Y
		e.Rotation += (ev.MovementY*-dx)/2000 + (ev.MovementX*dy)/2000
	}
}

// scaleSelection applies a wheel gesture to the scale of every selected
// entity.
func (ed *Editor) scaleSelection(deltaY float64) {
	for _, e := range ed.selected() {
		e.Scale += (-deltaY / 100) * (e.Scale * zoomStep)
		e.Scale = math.Max(e.Scale, 0)
	}
}

func (ed *Editor) keyDown(ev Event) {
	key := ev.Key
	if len(key) == 1 {
		key = strings.ToLower(key)
	}
	ctrl := ev.Modifiers.Has(ModCtrl)

	switch {
	case key == KeyDelete:
		ed.deleteSelection()
	case key == KeyLayerUp:
		ed.moveSelectionLayer(1)
	case key == KeyLayerDown:
		ed.moveSelectionLayer(-1)
	case ctrl && key == "c":
		ed.Copy()
	case ctrl && key == "v":
		ed.Paste()
	case ctrl && (key == "p" || key == "d"):
		ed.logSelection()
	case key == "r":
		ed.routeSelection()
	case key == "f":
		ed.FocusSelection()
	case len(key) == 1 && key[0] >= '0' && key[0] <= '9':
		id, _ := strconv.Atoi(key)
		if err := ed.Fly(RouteID(id), ed.config.PlaneID); err != nil {
			ed.logger.Debug("fly", "route", id, "plane", ed.config.PlaneID, "error", err)
		}
	}
}

func (ed *Editor) deleteSelection() {
	ids := ed.Selection()
	if len(ids) == 0 {
		return
	}
	for _, id := range ids {
		ed.DeleteEntity(id)
	}
	ed.selectionChanged()
}

func (ed *Editor) moveSelectionLayer(dz int) {
	for _, id := range ed.Selection() {
		_ = ed.Entities.MoveLayer(id, dz)
	}
}

func (ed *Editor) logSelection() {
	for _, e := range ed.selected() {
		ed.logger.Info("entity",
			"id", e.ID,
			"source", e.Source,
			"x", e.X,
			"y", e.Y,
			"z", e.Z,
			"scale", e.Scale,
			"rotation", e.Rotation,
		)
	}
}

// routeSelection connects exactly two selected entities with a new route
// using the configured defaults. The lower id is the start anchor.
func (ed *Editor) routeSelection() {
	ids := ed.Selection()
	if len(ids) != 2 {
		return
	}
	r := NewRoute(ids[0], ids[1])
	r.Length = ed.config.RouteLength
	r.Type = ed.config.RouteType
	r.Slope = ed.config.RouteSlope
	id, err := ed.AddRoute(r)
	if err != nil {
		return
	}
	ed.logger.Info("route created", "route", id, "start", r.Start, "end", r.End)
}
