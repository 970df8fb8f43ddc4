package routemap

// pointerState tracks buttons held and the marquee anchor between pointer
// events.
type pointerState struct {
	pos     Vec2
	buttons [3]bool

	// Marquee anchor, set on left press.
	anchor    Vec2
	selecting bool
}

// Pointer returns the last known screen position of the pointer.
func (ed *Editor) Pointer() Vec2 {
	return ed.pointer.pos
}

// Marquee returns the marquee anchor and whether a marquee gesture is in
// progress.
func (ed *Editor) Marquee() (anchor Vec2, active bool) {
	return ed.pointer.anchor, ed.pointer.selecting
}

// ResolveSelection applies a completed left-button gesture from down to up.
//
// A gesture whose release point equals its press point is a click: the
// topmost entity under it is the hit, or nothing. Any other gesture is a
// marquee and hits every entity it touches.
//
// Without Shift or Ctrl the selection is replaced by the hits. With either
// modifier the hits are added; clicking an entity that is already selected
// removes it instead.
func (ed *Editor) ResolveSelection(down, up Vec2, mods KeyModifiers) {
	additive := mods.Has(ModShift) || mods.Has(ModCtrl)

	var hits []EntityID
	if down == up {
		if id, ok := ed.HitTest(up); ok {
			if additive && ed.selection.Contains(id) {
				ed.selection.Delete(id)
				ed.selectionChanged()
				return
			}
			hits = []EntityID{id}
		}
	} else {
		hits = ed.MarqueeHits(down, up)
	}

	if !additive {
		ed.selection.Clear()
	}
	for _, id := range hits {
		ed.selection.Add(id)
	}
	ed.selectionChanged()
}

// UpdateHovers recomputes the hover and highlight flags for pointer position
// p. While a marquee is in progress every entity it touches is hovered and
// highlighted; otherwise every entity under the pointer is hovered and only
// the topmost one is highlighted.
func (ed *Editor) UpdateHovers(p Vec2) {
	for e := range ed.Entities.All() {
		e.Hover = false
		e.Highlight = false
	}

	if ed.pointer.selecting {
		for _, id := range ed.MarqueeHits(ed.pointer.anchor, p) {
			e, _ := ed.Entities.Get(id)
			e.Hover = true
			e.Highlight = true
		}
		return
	}

	hits := ed.PointHits(p)
	top, ok := ed.Topmost(hits)
	for _, id := range hits {
		e, _ := ed.Entities.Get(id)
		e.Hover = true
		e.Highlight = ok && id == top
	}
}
