package ebitenmap

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/routemap"
)

// --- White pixel singleton (no sync.Once, drawing is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image.
// Used by untextured fills and strokes.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// perpendicular returns the unit normal of the segment a→b. Degenerate
// segments return (0, -1).
func perpendicular(a, b routemap.Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}

func vertex(p routemap.Vec2, c routemap.Color) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: float32(c.A),
	}
}

// buildPolygonFan triangulates a convex polygon as a fan around vertex 0.
func buildPolygonFan(points []routemap.Vec2, c routemap.Color) ([]ebiten.Vertex, []uint32) {
	n := len(points)
	if n < 3 {
		return nil, nil
	}
	verts := make([]ebiten.Vertex, n)
	for i, p := range points {
		verts[i] = vertex(p, c)
	}
	inds := make([]uint32, (n-2)*3)
	for i := 0; i < n-2; i++ {
		inds[i*3+0] = 0
		inds[i*3+1] = uint32(i + 1)
		inds[i*3+2] = uint32(i + 2)
	}
	return verts, inds
}

// appendSegment appends a quad of the given width covering a→b.
func appendSegment(verts []ebiten.Vertex, inds []uint32, a, b routemap.Vec2, width float64, c routemap.Color) ([]ebiten.Vertex, []uint32) {
	nx, ny := perpendicular(a, b)
	hw := width / 2
	base := uint32(len(verts))
	verts = append(verts,
		vertex(routemap.Vec2{X: a.X + nx*hw, Y: a.Y + ny*hw}, c),
		vertex(routemap.Vec2{X: b.X + nx*hw, Y: b.Y + ny*hw}, c),
		vertex(routemap.Vec2{X: b.X - nx*hw, Y: b.Y - ny*hw}, c),
		vertex(routemap.Vec2{X: a.X - nx*hw, Y: a.Y - ny*hw}, c),
	)
	inds = append(inds, base, base+1, base+2, base, base+2, base+3)
	return verts, inds
}

// segment is one drawn piece of a polyline.
type segment struct {
	a, b routemap.Vec2
}

// dashSegments splits a polyline into the pieces covered by the "on" phases
// of a dash pattern. The pattern restarts at the first point and carries
// across vertices. An empty or non-positive pattern yields every segment.
func dashSegments(points []routemap.Vec2, dash []float64) []segment {
	if len(points) < 2 {
		return nil
	}
	valid := len(dash) > 0
	for _, d := range dash {
		if d <= 0 {
			valid = false
		}
	}
	var out []segment
	if !valid {
		for i := 1; i < len(points); i++ {
			out = append(out, segment{points[i-1], points[i]})
		}
		return out
	}

	phase := 0
	remaining := dash[0]
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		d := b.Sub(a)
		length := d.Len()
		pos := 0.0
		for pos < length {
			step := math.Min(remaining, length-pos)
			if phase%2 == 0 {
				t0, t1 := pos/length, (pos+step)/length
				out = append(out, segment{
					routemap.Vec2{X: a.X + d.X*t0, Y: a.Y + d.Y*t0},
					routemap.Vec2{X: a.X + d.X*t1, Y: a.Y + d.Y*t1},
				})
			}
			pos += step
			remaining -= step
			if remaining <= 0 {
				phase = (phase + 1) % len(dash)
				remaining = dash[phase]
			}
		}
	}
	return out
}
