package routemap

import "math"

// PointHits returns every entity whose space contains the screen point p,
// topmost first. Deleted entities never appear.
func (ed *Editor) PointHits(p Vec2) []EntityID {
	var hits []EntityID
	for e := range ed.Entities.ReversePaintOrder() {
		if ed.EntitySpace(e).Contains(p) {
			hits = append(hits, e.ID)
		}
	}
	return hits
}

// Topmost returns the candidate with the highest layer index. Among equal
// layers the earliest candidate wins, so for a PointHits result the entity
// painted last is picked. Returns false when no candidate is registered.
func (ed *Editor) Topmost(candidates []EntityID) (EntityID, bool) {
	best := NoEntity
	bestZ := math.Inf(-1)
	for _, id := range candidates {
		e, ok := ed.Entities.Get(id)
		if !ok {
			continue
		}
		if z := float64(e.Z); z > bestZ {
			best, bestZ = id, z
		}
	}
	return best, best != NoEntity
}

// HitTest returns the topmost entity under the screen point p.
func (ed *Editor) HitTest(p Vec2) (EntityID, bool) {
	return ed.Topmost(ed.PointHits(p))
}

// MarqueeHits returns the entities touched by the marquee spanned by the
// screen points a and b, topmost first. The marquee rectangle may have
// negative dimensions. An entity is touched when any of these hold:
//
//   - the entity contains either marquee corner a or b
//   - the entity contains the marquee center
//   - the marquee contains the entity center
//   - the marquee contains any of the entity's oriented corners
//
// This is a sampling test, not exact polygon intersection: a thin rotated
// entity crossing the marquee without any sample point inside is missed.
func (ed *Editor) MarqueeHits(a, b Vec2) []EntityID {
	marquee := Rect{X: a.X, Y: a.Y, Width: b.X - a.X, Height: b.Y - a.Y}
	mc := marquee.Center()

	var hits []EntityID
	for e := range ed.Entities.ReversePaintOrder() {
		if marqueeTouches(ed.EntitySpace(e), marquee, a, b, mc) {
			hits = append(hits, e.ID)
		}
	}
	return hits
}

func marqueeTouches(s Space, marquee Rect, a, b, mc Vec2) bool {
	if s.Contains(a) || s.Contains(b) || s.Contains(mc) {
		return true
	}
	if marquee.Contains(s.Center.X, s.Center.Y) {
		return true
	}
	for _, c := range s.OrientedCorners() {
		if marquee.Contains(c.X, c.Y) {
			return true
		}
	}
	return false
}
