package routemap

// InjectPress queues a left button press at the given screen coordinates.
// Injected events are consumed one per Update, ahead of real input.
func (ed *Editor) InjectPress(x, y float64, mods KeyModifiers) {
	ed.injectQueue = append(ed.injectQueue, Event{
		Kind: InputMouseDown, X: x, Y: y,
		Button:    MouseButtonLeft,
		Modifiers: mods,
	})
}

// InjectMove queues a pointer move to the given screen coordinates. Movement
// is computed from the previous injected or real pointer position when the
// event is consumed.
func (ed *Editor) InjectMove(x, y float64, mods KeyModifiers) {
	ed.injectQueue = append(ed.injectQueue, Event{
		Kind: InputMouseMove, X: x, Y: y,
		Modifiers: mods,
	})
}

// InjectRelease queues a left button release at the given screen coordinates.
func (ed *Editor) InjectRelease(x, y float64, mods KeyModifiers) {
	ed.injectQueue = append(ed.injectQueue, Event{
		Kind: InputMouseUp, X: x, Y: y,
		Button:    MouseButtonLeft,
		Modifiers: mods,
	})
}

// InjectClick queues a press followed by a release at the same screen
// coordinates. Consumes two updates.
func (ed *Editor) InjectClick(x, y float64, mods KeyModifiers) {
	ed.InjectPress(x, y, mods)
	ed.InjectRelease(x, y, mods)
}

// InjectDrag queues a marquee gesture: press at (fromX, fromY), linearly
// interpolated moves over frames-2 intermediate updates, and release at
// (toX, toY). Minimum frames is 2.
func (ed *Editor) InjectDrag(fromX, fromY, toX, toY float64, frames int, mods KeyModifiers) {
	if frames < 2 {
		frames = 2
	}
	ed.InjectPress(fromX, fromY, mods)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		ed.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t, mods)
	}
	ed.InjectRelease(toX, toY, mods)
}

// InjectKey queues a key press.
func (ed *Editor) InjectKey(key string, mods KeyModifiers) {
	ed.injectQueue = append(ed.injectQueue, Event{
		Kind: InputKeyDown, Key: key, Modifiers: mods,
	})
}

// processInjectedInput pops one event from the inject queue and dispatches it.
// Returns true if an event was consumed.
func (ed *Editor) processInjectedInput() bool {
	if len(ed.injectQueue) == 0 {
		return false
	}
	ev := ed.injectQueue[0]
	copy(ed.injectQueue, ed.injectQueue[1:])
	ed.injectQueue = ed.injectQueue[:len(ed.injectQueue)-1]

	if ev.Kind == InputMouseMove {
		ev.MovementX = ev.X - ed.pointer.pos.X
		ev.MovementY = ev.Y - ed.pointer.pos.Y
	}
	ed.HandleEvent(ev)
	return true
}

// Injecting reports whether synthetic input is still queued.
func (ed *Editor) Injecting() bool {
	return len(ed.injectQueue) > 0
}
