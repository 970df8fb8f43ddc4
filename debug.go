package routemap

import (
	"time"
)

// renderStats holds per-frame drawing metrics.
// Only populated when Editor.debug is true.
type renderStats struct {
	entities    int
	routes      int
	curvePoints int
	drawCalls   int
	renderTime  time.Duration
}

// debugLog logs drawing stats at debug level.
func (ed *Editor) debugLog(stats renderStats) {
	if !ed.debug {
		return
	}
	ed.logger.Debug("render",
		"took", stats.renderTime,
		"entities", stats.entities,
		"routes", stats.routes,
		"curvePoints", stats.curvePoints,
		"drawCalls", stats.drawCalls,
		"selected", ed.selection.Size(),
	)
}

// countingCanvas wraps a Canvas and counts draw calls.
type countingCanvas struct {
	Canvas
	calls int
}

func (c *countingCanvas) DrawImage(img Image, center Vec2, w, h, rotation float64) {
	c.calls++
	c.Canvas.DrawImage(img, center, w, h, rotation)
}

func (c *countingCanvas) StrokePolyline(points []Vec2, width float64, dash []float64, col Color) {
	c.calls++
	c.Canvas.StrokePolyline(points, width, dash, col)
}

func (c *countingCanvas) StrokeRect(center Vec2, w, h, rotation, width float64, col Color) {
	c.calls++
	c.Canvas.StrokeRect(center, w, h, rotation, width, col)
}

func (c *countingCanvas) FillRect(center Vec2, w, h, rotation float64, col Color) {
	c.calls++
	c.Canvas.FillRect(center, w, h, rotation, col)
}
