package routemap

import "math"

// RotateAbout rotates p about pivot by the given angle in radians. The point is
// converted to polar form relative to the pivot, the angle is added, and the
// result is translated back. A point equal to the pivot is returned unchanged.
func RotateAbout(p, pivot Vec2, radians float64) Vec2 {
	dx := p.X - pivot.X
	dy := p.Y - pivot.Y
	d := math.Sqrt(dx*dx + dy*dy)
	if d == 0 {
		return pivot
	}
	angle := math.Atan2(dy, dx)
	sin, cos := math.Sincos(radians + angle)
	return Vec2{pivot.X + d*cos, pivot.Y + d*sin}
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside. Negative dimensions are
// normalized, so the rectangle spanned is the same regardless of which
// corner X/Y names.
func (r Rect) Contains(x, y float64) bool {
	left := math.Min(r.X, r.X+r.Width)
	right := math.Max(r.X, r.X+r.Width)
	top := math.Min(r.Y, r.Y+r.Height)
	bottom := math.Max(r.Y, r.Y+r.Height)
	return x >= left && x <= right && y >= top && y <= bottom
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Vec2 {
	return Vec2{r.X + r.Width/2, r.Y + r.Height/2}
}

// ToRadians converts degrees to radians.
func ToRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// ToDegrees converts radians to degrees.
func ToDegrees(radians float64) float64 {
	return radians * 180 / math.Pi
}
