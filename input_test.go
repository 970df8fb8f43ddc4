package routemap

import (
	"slices"
	"testing"
)

func press(ed *Editor, b MouseButton, x, y float64, mods KeyModifiers) {
	ed.HandleEvent(Event{Kind: InputMouseDown, X: x, Y: y, Button: b, Modifiers: mods})
}

func release(ed *Editor, b MouseButton, x, y float64, mods KeyModifiers) {
	ed.HandleEvent(Event{Kind: InputMouseUp, X: x, Y: y, Button: b, Modifiers: mods})
}

func move(ed *Editor, x, y, dx, dy float64, mods KeyModifiers) {
	ed.HandleEvent(Event{Kind: InputMouseMove, X: x, Y: y, MovementX: dx, MovementY: dy, Modifiers: mods})
}

func key(ed *Editor, k string, mods KeyModifiers) {
	ed.HandleEvent(Event{Kind: InputKeyDown, Key: k, Modifiers: mods})
}

func TestHandleEventResize(t *testing.T) {
	ed := NewEditor(DefaultConfig())
	ed.HandleEvent(Event{Kind: InputResize, Width: 1024, Height: 768})
	if w, h := ed.CanvasSize(); w != 1024 || h != 768 {
		t.Errorf("CanvasSize = %v, %v", w, h)
	}
}

func TestHandleEventLoad(t *testing.T) {
	ed := newTestEditor()
	ed.HandleEvent(Event{Kind: InputLoad, Text: "camera:x=10,y=20,scale=1;entities:;source=box.png,x=5,y=5,scale=1"})
	if ed.Entities.Len() != 1 || ed.Camera.X != 10 {
		t.Errorf("after load: %d entities, camera %+v", ed.Entities.Len(), ed.Camera)
	}
}

func TestClickSelects(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	press(ed, MouseButtonLeft, 400, 300, 0)
	if _, active := ed.Marquee(); !active {
		t.Error("left press should start a marquee gesture")
	}
	release(ed, MouseButtonLeft, 400, 300, 0)
	if _, active := ed.Marquee(); active {
		t.Error("release should end the gesture")
	}
	if !slices.Equal(ed.Selection(), []EntityID{a}) {
		t.Errorf("Selection = %v", ed.Selection())
	}
}

func TestMiddleDragPans(t *testing.T) {
	ed := newTestEditor()
	ed.Camera.Scale = 2
	press(ed, MouseButtonMiddle, 400, 300, 0)
	move(ed, 420, 290, 20, -10, 0)
	release(ed, MouseButtonMiddle, 420, 290, 0)
	if !approxEqual(ed.Camera.X, -10, epsilon) || !approxEqual(ed.Camera.Y, 5, epsilon) {
		t.Errorf("camera = (%v, %v), want (-10, 5)", ed.Camera.X, ed.Camera.Y)
	}
	// A plain move afterwards does nothing.
	move(ed, 500, 300, 80, 10, 0)
	if !approxEqual(ed.Camera.X, -10, epsilon) {
		t.Errorf("camera moved without a button held: %v", ed.Camera.X)
	}
}

func TestRightDragMovesSelection(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)
	ed.Select(a)
	ed.Camera.Scale = 0.5

	press(ed, MouseButtonRight, 400, 300, 0)
	move(ed, 410, 305, 10, 5, 0)
	release(ed, MouseButtonRight, 410, 305, 0)

	ea, _ := ed.Entities.Get(a)
	eb, _ := ed.Entities.Get(b)
	if !approxEqual(ea.X, 20, epsilon) || !approxEqual(ea.Y, 10, epsilon) {
		t.Errorf("selected moved to (%v, %v), want (20, 10)", ea.X, ea.Y)
	}
	if eb.X != 100 || eb.Y != 0 {
		t.Error("unselected entity should not move")
	}
}

func TestAltRightDragRotatesSelection(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	ed.Select(a)

	press(ed, MouseButtonRight, 500, 300, ModAlt)
	// Pointer 100px right of the center moving down turns clockwise.
	move(ed, 500, 320, 0, 20, ModAlt)

	e, _ := ed.Entities.Get(a)
	if !approxEqual(e.Rotation, 1, epsilon) {
		t.Errorf("Rotation = %v, want 1", e.Rotation)
	}
	if e.X != 0 || e.Y != 0 {
		t.Error("rotation should not move the entity")
	}
}

func TestWheelZooms(t *testing.T) {
	ed := newTestEditor()
	ed.HandleEvent(Event{Kind: InputWheel, DeltaY: -100})
	if !approxEqual(ed.Camera.Scale, 1.05, epsilon) {
		t.Errorf("Scale = %v, want 1.05", ed.Camera.Scale)
	}
	ed.HandleEvent(Event{Kind: InputWheel, DeltaY: 4000})
	if ed.Camera.Scale != 0 {
		t.Errorf("Scale = %v, want clamped to 0", ed.Camera.Scale)
	}
}

func TestAltWheelScalesSelection(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	ed.Select(a)
	ed.HandleEvent(Event{Kind: InputWheel, DeltaY: 100, Modifiers: ModAlt})

	e, _ := ed.Entities.Get(a)
	if !approxEqual(e.Scale, 0.95, epsilon) {
		t.Errorf("entity Scale = %v, want 0.95", e.Scale)
	}
	if ed.Camera.Scale != 1 {
		t.Errorf("camera Scale = %v, want unchanged", ed.Camera.Scale)
	}
}

func TestKeyDeleteRemovesSelection(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)
	c := addAt(ed, "box.png", 200, 0, 0)
	ed.Select(a, c)
	key(ed, KeyDelete, 0)

	if ed.Entities.Len() != 1 {
		t.Errorf("Len = %d, want 1", ed.Entities.Len())
	}
	if _, ok := ed.Entities.Get(b); !ok {
		t.Error("unselected entity deleted")
	}
	if len(ed.Selection()) != 0 {
		t.Errorf("Selection = %v", ed.Selection())
	}
}

func TestKeyLayerMoves(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 2)
	ed.Select(a)
	key(ed, KeyLayerUp, 0)
	key(ed, KeyLayerUp, 0)
	key(ed, KeyLayerDown, 0)

	e, _ := ed.Entities.Get(a)
	if e.Z != 3 {
		t.Errorf("Z = %d, want 3", e.Z)
	}
	if !slices.Equal(ed.Entities.Layers(), []int{3}) {
		t.Errorf("Layers = %v", ed.Entities.Layers())
	}
}

func TestKeyCopyPaste(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 30, 40, 0)
	ed.Select(a)
	key(ed, "c", ModCtrl)
	key(ed, "V", ModCtrl)

	if ed.Entities.Len() != 2 {
		t.Fatalf("Len = %d, want 2", ed.Entities.Len())
	}
	sel := ed.Selection()
	if len(sel) != 1 || sel[0] == a {
		t.Fatalf("Selection = %v, want the pasted copy", sel)
	}
	e, _ := ed.Entities.Get(sel[0])
	if e.X != 30 || e.Y != 40 || e.Source != "box.png" {
		t.Errorf("copy = %+v", e)
	}

	// Without ctrl, c and v are not bound.
	key(ed, "v", 0)
	if ed.Entities.Len() != 2 {
		t.Error("plain v should not paste")
	}
}

func TestKeyRouteSelection(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RouteLength = 300
	cfg.RouteType = CurveSingle
	ed := NewEditor(cfg)
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)

	ed.Select(a)
	key(ed, "r", 0)
	if ed.Routes.Len() != 0 {
		t.Fatal("one selected entity should not create a route")
	}

	ed.Select(b, a)
	key(ed, "r", 0)
	if ed.Routes.Len() != 1 {
		t.Fatalf("Routes.Len = %d, want 1", ed.Routes.Len())
	}
	r, _ := ed.Routes.Get(0)
	if r.Start != a || r.End != b || r.Length != 300 || r.Type != CurveSingle {
		t.Errorf("route = %+v", r)
	}
}

func TestKeyFocus(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 100, 50, 0)
	ed.Select(a)
	key(ed, "f", 0)
	if !ed.Camera.Scrolling() {
		t.Fatal("focus should start a scroll")
	}
	for range 60 {
		ed.Update(frame)
	}
	if !approxEqual(ed.Camera.X, 100, 1e-3) || !approxEqual(ed.Camera.Y, 50, 1e-3) {
		t.Errorf("camera = (%v, %v)", ed.Camera.X, ed.Camera.Y)
	}
}

func TestKeyDigitFlies(t *testing.T) {
	cfg := DefaultConfig()
	ed := NewEditor(cfg)
	plane := addAt(ed, "Plane.png", 0, 0, 0)
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)
	id, _ := ed.AddRoute(NewRoute(a, b))

	key(ed, "7", 0)
	if ed.Flying(id) {
		t.Error("digit for an unknown route should do nothing")
	}
	key(ed, "0", 0)
	if !ed.Flying(id) {
		t.Error("digit should fly the configured plane")
	}
	p, _ := ed.Entities.Get(plane)
	if !p.Flying {
		t.Error("plane should be flying")
	}
}

func TestContextMenuIgnored(t *testing.T) {
	ed := newTestEditor()
	addAt(ed, "box.png", 0, 0, 0)
	ed.HandleEvent(Event{Kind: InputContextMenu, X: 400, Y: 300})
	if len(ed.Selection()) != 0 {
		t.Error("context menu should not select")
	}
}
