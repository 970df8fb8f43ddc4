package ebitenmap

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/routemap"
)

// Canvas draws routemap primitives onto an Ebitengine image.
type Canvas struct {
	target *ebiten.Image

	// Reused vertex and index buffers, grown to high-water mark.
	verts []ebiten.Vertex
	inds  []uint32
}

// NewCanvas returns a canvas drawing onto target.
func NewCanvas(target *ebiten.Image) *Canvas {
	return &Canvas{target: target}
}

// SetTarget changes the image the canvas draws onto.
func (c *Canvas) SetTarget(target *ebiten.Image) {
	c.target = target
}

// DrawImage draws img scaled to w×h and rotated about center. Images that do
// not come from Assets are ignored.
func (c *Canvas) DrawImage(img routemap.Image, center routemap.Vec2, w, h, rotation float64) {
	src, ok := img.(*ebiten.Image)
	if !ok || src == nil {
		return
	}
	b := src.Bounds()
	iw, ih := float64(b.Dx()), float64(b.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(w/iw, h/ih)
	op.GeoM.Rotate(rotation)
	op.GeoM.Translate(center.X, center.Y)
	op.Filter = ebiten.FilterLinear
	c.target.DrawImage(src, &op)
}

// StrokePolyline strokes the polyline with quads, one per dash piece.
func (c *Canvas) StrokePolyline(points []routemap.Vec2, width float64, dash []float64, col routemap.Color) {
	if width <= 0 {
		return
	}
	c.verts, c.inds = c.verts[:0], c.inds[:0]
	for _, s := range dashSegments(points, dash) {
		c.verts, c.inds = appendSegment(c.verts, c.inds, s.a, s.b, width, col)
	}
	c.flush()
}

// StrokeRect outlines a rotated rectangle.
func (c *Canvas) StrokeRect(center routemap.Vec2, w, h, rotation, width float64, col routemap.Color) {
	if width <= 0 {
		return
	}
	corners := rectCorners(center, w, h, rotation)
	c.verts, c.inds = c.verts[:0], c.inds[:0]
	for i := range corners {
		c.verts, c.inds = appendSegment(c.verts, c.inds, corners[i], corners[(i+1)%4], width, col)
	}
	c.flush()
}

// FillRect fills a rotated rectangle.
func (c *Canvas) FillRect(center routemap.Vec2, w, h, rotation float64, col routemap.Color) {
	corners := rectCorners(center, w, h, rotation)
	verts, inds := buildPolygonFan(corners[:], col)
	if len(verts) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	c.target.DrawTriangles32(verts, inds, ensureWhitePixel(), &op)
}

func (c *Canvas) flush() {
	if len(c.inds) == 0 {
		return
	}
	var op ebiten.DrawTrianglesOptions
	c.target.DrawTriangles32(c.verts, c.inds, ensureWhitePixel(), &op)
}

// rectCorners returns the corners of a w×h rectangle centered on center and
// rotated by rotation radians, clockwise from the top-left.
func rectCorners(center routemap.Vec2, w, h, rotation float64) [4]routemap.Vec2 {
	hw, hh := w/2, h/2
	corners := [4]routemap.Vec2{
		{X: center.X - hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y - hh},
		{X: center.X + hw, Y: center.Y + hh},
		{X: center.X - hw, Y: center.Y + hh},
	}
	if rotation != 0 {
		for i, p := range corners {
			corners[i] = routemap.RotateAbout(p, center, rotation)
		}
	}
	return corners
}
