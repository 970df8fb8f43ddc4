package routemap

// Space is the screen-space oriented rectangle an entity occupies for a given
// camera. Corners are the axis-aligned corners before rotation; callers rotate
// them about Center by Rotation when they need the oriented box.
type Space struct {
	Position   Vec2
	Dimensions Vec2
	Center     Vec2
	Corners    [4]Vec2
	// Rotation in radians.
	Rotation float64
}

// Rect returns the unrotated rectangle of the space.
func (s Space) Rect() Rect {
	return Rect{X: s.Position.X, Y: s.Position.Y, Width: s.Dimensions.X, Height: s.Dimensions.Y}
}

// Contains reports whether the screen point p lies inside the oriented
// rectangle. The point is rotated by -Rotation about Center first, undoing the
// entity's rotation, and then tested against the axis-aligned box.
func (s Space) Contains(p Vec2) bool {
	if s.Rotation != 0 {
		p = RotateAbout(p, s.Center, -s.Rotation)
	}
	return s.Rect().Contains(p.X, p.Y)
}

// OrientedCorners returns the four corners rotated about Center.
func (s Space) OrientedCorners() [4]Vec2 {
	var out [4]Vec2
	for i, c := range s.Corners {
		out[i] = RotateAbout(c, s.Center, s.Rotation)
	}
	return out
}

// Transform is the world transform of a placed sprite. Rotation is in
// degrees, as stored in documents.
type Transform struct {
	X, Y     float64
	Scale    float64
	Rotation float64
}

// ResolveSpace converts a world transform, the image's native pixel size and
// the camera into a screen-space rectangle. The entity is anchored at its own
// center: the world position maps to the rectangle center.
func ResolveSpace(t Transform, nativeW, nativeH float64, cam Camera, canvasW, canvasH float64) Space {
	w := t.Scale * nativeW * cam.Scale
	h := t.Scale * nativeH * cam.Scale

	px := canvasW/2 + (t.X-cam.X-(nativeW*t.Scale)/2)*cam.Scale
	py := canvasH/2 + (t.Y-cam.Y-(nativeH*t.Scale)/2)*cam.Scale

	return Space{
		Position:   Vec2{px, py},
		Dimensions: Vec2{w, h},
		Center:     Vec2{px + w/2, py + h/2},
		Corners: [4]Vec2{
			{px, py},
			{px + w, py},
			{px + w, py + h},
			{px, py + h},
		},
		Rotation: ToRadians(t.Rotation),
	}
}
