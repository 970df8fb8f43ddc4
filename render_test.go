package routemap

import (
	"testing"
)

type drawCall struct {
	op     string
	w, h   float64
	points int
	width  float64
	dash   []float64
	col    Color
}

// recordingCanvas records draw calls in order.
type recordingCanvas struct {
	calls []drawCall
}

func (c *recordingCanvas) DrawImage(img Image, center Vec2, w, h, rotation float64) {
	b := img.Bounds()
	c.calls = append(c.calls, drawCall{op: "image", w: float64(b.Dx()), h: float64(b.Dy())})
}

func (c *recordingCanvas) StrokePolyline(points []Vec2, width float64, dash []float64, col Color) {
	c.calls = append(c.calls, drawCall{op: "polyline", points: len(points), width: width, dash: dash, col: col})
}

func (c *recordingCanvas) StrokeRect(center Vec2, w, h, rotation, width float64, col Color) {
	c.calls = append(c.calls, drawCall{op: "strokeRect", w: w, h: h, width: width, col: col})
}

func (c *recordingCanvas) FillRect(center Vec2, w, h, rotation float64, col Color) {
	c.calls = append(c.calls, drawCall{op: "fillRect", w: w, h: h, col: col})
}

func (c *recordingCanvas) ops() []string {
	var out []string
	for _, call := range c.calls {
		out = append(out, call.op)
	}
	return out
}

func TestRenderPassOrder(t *testing.T) {
	ed := newTestEditor()
	plane := addAt(ed, "Plane.png", 0, 0, 0)
	a := addAt(ed, "box.png", -200, 0, 5)
	b := addAt(ed, "big.png", 200, 0, 1)
	r := NewRoute(a, b)
	r.Length = 50
	if _, err := ed.AddRoute(r); err != nil {
		t.Fatal(err)
	}
	_ = plane

	c := &recordingCanvas{}
	ed.Render(c)

	if len(c.calls) != 4 {
		t.Fatalf("calls = %v", c.ops())
	}
	// non-plane entities in paint order, then routes, then planes
	if c.calls[0].op != "image" || c.calls[0].w != 100 {
		t.Errorf("call 0 = %+v, want big.png (layer 1)", c.calls[0])
	}
	if c.calls[1].op != "image" || c.calls[1].w != 40 {
		t.Errorf("call 1 = %+v, want box.png (layer 5)", c.calls[1])
	}
	if c.calls[2].op != "polyline" || c.calls[2].points != 50 {
		t.Errorf("call 2 = %+v, want a 50 point route", c.calls[2])
	}
	if c.calls[3].op != "image" || c.calls[3].w != 10 {
		t.Errorf("call 3 = %+v, want the plane", c.calls[3])
	}
}

func TestRenderRouteStyleScales(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)
	_, _ = ed.AddRoute(NewRoute(a, b))
	ed.Camera.Scale = 2

	c := &recordingCanvas{}
	ed.Render(c)
	for _, call := range c.calls {
		if call.op != "polyline" {
			continue
		}
		if call.width != 52 || len(call.dash) != 2 || call.dash[0] != 200 || call.dash[1] != 100 {
			t.Errorf("route style = width %v dash %v", call.width, call.dash)
		}
		if call.col != routeColor {
			t.Errorf("route color = %v", call.col)
		}
		return
	}
	t.Error("route not drawn")
}

func TestRenderFlyingRouteTruncated(t *testing.T) {
	ed, route, _, _, plane := flightFixture(100)
	_ = ed.Fly(route, plane)
	for range 5 {
		ed.Update(frame)
	}
	r, _ := ed.Routes.Get(route)

	c := &recordingCanvas{}
	ed.Render(c)
	want := 1 + int(r.FlightProgress) + 1
	for _, call := range c.calls {
		if call.op == "polyline" {
			if call.points != want {
				t.Errorf("points = %d, want %d", call.points, want)
			}
			return
		}
	}
	t.Error("route not drawn")
}

func TestRenderOverlays(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)
	ed.Select(b)
	ed.UpdateHovers(Vec2{400, 300})
	_ = a

	c := &recordingCanvas{}
	ed.Render(c)
	ops := c.ops()
	want := []string{"image", "image", "fillRect", "strokeRect", "strokeRect"}
	if len(ops) != len(want) {
		t.Fatalf("ops = %v, want %v", ops, want)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("ops = %v, want %v", ops, want)
		}
	}
	if c.calls[2].col != highlightColor || c.calls[3].col != hoverColor {
		t.Errorf("hovered entity overlay = %+v %+v", c.calls[2], c.calls[3])
	}
	if c.calls[4].col != selectedColor || c.calls[4].width != outlineWidth {
		t.Errorf("selected entity overlay = %+v", c.calls[4])
	}
}

func TestRenderMarquee(t *testing.T) {
	ed := newTestEditor()
	ed.HandleEvent(Event{Kind: InputMouseDown, X: 50, Y: 10, Button: MouseButtonLeft})
	ed.HandleEvent(Event{Kind: InputMouseMove, X: 10, Y: 40, MovementX: -40, MovementY: 30})

	c := &recordingCanvas{}
	ed.Render(c)
	if len(c.calls) != 2 || c.calls[0].op != "fillRect" || c.calls[1].op != "strokeRect" {
		t.Fatalf("ops = %v", c.ops())
	}
	if c.calls[0].w != 40 || c.calls[0].h != 30 {
		t.Errorf("marquee = %vx%v, want 40x30", c.calls[0].w, c.calls[0].h)
	}

	ed.HandleEvent(Event{Kind: InputMouseUp, X: 10, Y: 40, Button: MouseButtonLeft})
	c = &recordingCanvas{}
	ed.Render(c)
	if len(c.calls) != 0 {
		t.Errorf("marquee drawn after release: %v", c.ops())
	}
}

func TestRenderWithoutImages(t *testing.T) {
	ed := NewEditor(DefaultConfig())
	ed.Resize(800, 600)
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 10, 0, 0)
	_, _ = ed.AddRoute(NewRoute(a, b))

	c := &recordingCanvas{}
	ed.Render(c)
	if len(c.calls) != 1 || c.calls[0].op != "polyline" {
		t.Errorf("ops = %v, want only the route", c.ops())
	}
}

func TestRenderDoesNotMutate(t *testing.T) {
	ed := newTestEditor()
	addAt(ed, "box.png", 0, 0, 0)
	before := ed.Save()
	ed.Render(&recordingCanvas{})
	if ed.Save() != before {
		t.Error("Render changed the session")
	}
}
