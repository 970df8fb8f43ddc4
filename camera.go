package routemap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// zoomStep is the fraction of the current scale applied per 100 units of
// wheel delta.
const zoomStep = 0.05

// scrollAnim holds active scroll-to tweens for camera X and Y.
type scrollAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera controls the view into the map: the world point shown at the canvas
// center and the zoom factor.
type Camera struct {
	// X and Y are the world-space position the camera centers on.
	X, Y float64
	// Scale is the zoom factor (1.0 = no zoom). Never negative.
	Scale float64

	scrollTween *scrollAnim
}

// NewCamera returns a camera at the origin with no zoom.
func NewCamera() Camera {
	return Camera{Scale: 1}
}

// Zoom applies a wheel gesture. Negative deltaY zooms in. The scale is
// clamped at zero.
func (c *Camera) Zoom(deltaY float64) {
	c.Scale += (-deltaY / 100) * (c.Scale * zoomStep)
	c.clamp()
}

// Pan moves the camera against a screen-space pointer movement, so the map
// follows the pointer. No-op at zero scale.
func (c *Camera) Pan(movementX, movementY float64) {
	if c.Scale == 0 {
		return
	}
	c.X -= movementX / c.Scale
	c.Y -= movementY / c.Scale
}

func (c *Camera) clamp() {
	if c.Scale < 0 {
		c.Scale = 0
	}
}

// WorldToScreen converts world coordinates to screen coordinates for a canvas
// of the given size.
func (c Camera) WorldToScreen(w Vec2, canvasW, canvasH float64) Vec2 {
	return Vec2{
		X: canvasW/2 + (w.X-c.X)*c.Scale,
		Y: canvasH/2 + (w.Y-c.Y)*c.Scale,
	}
}

// ScreenToWorld converts screen coordinates to world coordinates. At zero
// scale every screen point maps to the camera position.
func (c Camera) ScreenToWorld(s Vec2, canvasW, canvasH float64) Vec2 {
	if c.Scale == 0 {
		return Vec2{c.X, c.Y}
	}
	return Vec2{
		X: c.X + (s.X-canvasW/2)/c.Scale,
		Y: c.Y + (s.Y-canvasH/2)/c.Scale,
	}
}

// ScrollTo animates the camera to the given world position over duration
// seconds. Manual panning does not cancel the animation.
func (c *Camera) ScrollTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	if easeFn == nil {
		easeFn = ease.OutCubic
	}
	c.scrollTween = &scrollAnim{
		tweenX: gween.New(float32(c.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(c.Y), float32(y), duration, easeFn),
	}
}

// Scrolling reports whether a ScrollTo animation is in progress.
func (c *Camera) Scrolling() bool {
	return c.scrollTween != nil
}

// update advances the scroll animation. Called from Editor.Update.
func (c *Camera) update(dt float32) {
	if c.scrollTween == nil {
		return
	}
	if !c.scrollTween.doneX {
		val, done := c.scrollTween.tweenX.Update(dt)
		c.X = float64(val)
		c.scrollTween.doneX = done
	}
	if !c.scrollTween.doneY {
		val, done := c.scrollTween.tweenY.Update(dt)
		c.Y = float64(val)
		c.scrollTween.doneY = done
	}
	if c.scrollTween.doneX && c.scrollTween.doneY {
		c.scrollTween = nil
	}
}
