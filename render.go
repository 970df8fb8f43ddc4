package routemap

import "time"

// Canvas is the drawing surface the editor renders onto. All coordinates are
// screen space; rotations are radians about the given center.
type Canvas interface {
	DrawImage(img Image, center Vec2, w, h, rotation float64)
	// StrokePolyline strokes a connected line through points. dash holds
	// alternating on/off lengths; nil draws a solid line.
	StrokePolyline(points []Vec2, width float64, dash []float64, c Color)
	StrokeRect(center Vec2, w, h, rotation, width float64, c Color)
	FillRect(center Vec2, w, h, rotation float64, c Color)
}

// Route and overlay styling, in screen pixels at camera scale 1.
const (
	routeWidth   = 26
	routeDashOn  = 100
	routeDashOff = 50
	outlineWidth = 5
)

var (
	routeColor     = Color{R: 224.0 / 255, G: 224.0 / 255, B: 224.0 / 255, A: 1}
	hoverColor     = Color{R: 0, G: 128.0 / 255, B: 1, A: 1}
	selectedColor  = Color{R: 0, G: 1, B: 128.0 / 255, A: 1}
	highlightColor = Color{R: 0, G: 128.0 / 255, B: 1, A: 0.25}
)

// Render draws the session. Passes, bottom to top: entities in paint order
// except planes, routes, planes, hover and selection outlines, and the
// marquee. Render never mutates session state.
func (ed *Editor) Render(c Canvas) {
	var stats renderStats
	var t0 time.Time
	if ed.debug {
		t0 = time.Now()
		cc := &countingCanvas{Canvas: c}
		c = cc
		defer func() {
			stats.drawCalls = cc.calls
			stats.renderTime = time.Since(t0)
			ed.debugLog(stats)
		}()
	}

	var planes []*Entity
	for e := range ed.Entities.PaintOrder() {
		if ed.isPlane(e) {
			planes = append(planes, e)
			continue
		}
		ed.drawEntity(c, e)
		stats.entities++
	}

	for r := range ed.Routes.All() {
		stats.curvePoints += ed.drawRoute(c, r)
		stats.routes++
	}

	for _, e := range planes {
		ed.drawEntity(c, e)
		stats.entities++
	}

	ed.drawOverlays(c)
}

func (ed *Editor) drawEntity(c Canvas, e *Entity) {
	if ed.images == nil {
		return
	}
	img := ed.images.Image(e.Source)
	if img == nil {
		return
	}
	s := ed.drawSpace(e)
	c.DrawImage(img, s.Center, s.Dimensions.X, s.Dimensions.Y, s.Rotation)
}

// drawSpace resolves the on-screen rectangle of e at the pose it is drawn
// with, which differs from EntitySpace for a plane in flight.
func (ed *Editor) drawSpace(e *Entity) Space {
	w, h := ed.imageSize(e.Source)
	return ResolveSpace(ed.pose(e), w, h, ed.Camera, ed.canvasW, ed.canvasH)
}

// drawRoute strokes the dashed curve between the route's anchors. A route in
// flight is drawn only up to the current progress. Routes with a missing
// anchor are skipped; they are retired on the next Update. Returns the number
// of curve points drawn.
func (ed *Editor) drawRoute(c Canvas, r *Route) int {
	start, ok := ed.Entities.Get(r.Start)
	if !ok {
		return 0
	}
	end, ok := ed.Entities.Get(r.End)
	if !ok {
		return 0
	}
	a := ed.Camera.WorldToScreen(start.Position(), ed.canvasW, ed.canvasH)
	b := ed.Camera.WorldToScreen(end.Position(), ed.canvasW, ed.canvasH)

	curve := GenerateCurve(a, b, r.CurveOptions())
	if r.Flying {
		n := int(r.FlightProgress) + 1
		curve = curve[:min(max(n, 0), len(curve))]
	}
	if len(curve) == 0 {
		return 0
	}

	points := make([]Vec2, 0, len(curve)+1)
	points = append(points, a)
	points = append(points, curve...)

	scale := ed.Camera.Scale
	dash := []float64{routeDashOn * scale, routeDashOff * scale}
	c.StrokePolyline(points, routeWidth*scale, dash, routeColor)
	return len(curve)
}

func (ed *Editor) drawOverlays(c Canvas) {
	width := outlineWidth * ed.Camera.Scale
	for e := range ed.Entities.PaintOrder() {
		selected := ed.selection.Contains(e.ID)
		if !e.Hover && !e.Highlight && !selected {
			continue
		}
		s := ed.drawSpace(e)
		w, h := s.Dimensions.X, s.Dimensions.Y
		if e.Highlight {
			c.FillRect(s.Center, w, h, s.Rotation, highlightColor)
		}
		switch {
		case selected:
			c.StrokeRect(s.Center, w, h, s.Rotation, width, selectedColor)
		case e.Hover:
			c.StrokeRect(s.Center, w, h, s.Rotation, width, hoverColor)
		}
	}

	if !ed.pointer.selecting || !ed.buttonHeld(MouseButtonLeft) {
		return
	}
	m := Rect{
		X: ed.pointer.anchor.X, Y: ed.pointer.anchor.Y,
		Width:  ed.pointer.pos.X - ed.pointer.anchor.X,
		Height: ed.pointer.pos.Y - ed.pointer.anchor.Y,
	}
	w, h := m.Width, m.Height
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	c.FillRect(m.Center(), w, h, 0, highlightColor)
	c.StrokeRect(m.Center(), w, h, 0, width, hoverColor)
}
