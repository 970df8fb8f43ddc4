package routemap

import (
	"slices"
	"testing"
)

func TestInjectClick(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)

	ed.InjectClick(400, 300, 0)
	if len(ed.injectQueue) != 2 {
		t.Fatalf("expected 2 queued events, got %d", len(ed.injectQueue))
	}

	// Frame 1: press
	ed.Update(frame)
	if len(ed.injectQueue) != 1 {
		t.Fatalf("expected 1 remaining event after frame 1, got %d", len(ed.injectQueue))
	}
	if len(ed.Selection()) != 0 {
		t.Error("selection should not change before release")
	}

	// Frame 2: release
	ed.Update(frame)
	if ed.Injecting() {
		t.Error("queue should be drained")
	}
	if !slices.Equal(ed.Selection(), []EntityID{a}) {
		t.Errorf("Selection = %v, want [%d]", ed.Selection(), a)
	}
}

func TestInjectClickWithModifier(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)
	ed.Select(a)

	ed.InjectClick(500, 300, ModShift)
	ed.Update(frame)
	ed.Update(frame)
	if !slices.Equal(ed.Selection(), []EntityID{a, b}) {
		t.Errorf("Selection = %v", ed.Selection())
	}
}

func TestInjectDrag(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	b := addAt(ed, "box.png", 100, 0, 0)
	addAt(ed, "box.png", 300, 200, 0)

	ed.InjectDrag(300, 200, 600, 400, 5, 0)
	if len(ed.injectQueue) != 5 {
		t.Fatalf("expected 5 queued events, got %d", len(ed.injectQueue))
	}
	if ed.injectQueue[0].Kind != InputMouseDown || ed.injectQueue[4].Kind != InputMouseUp {
		t.Error("drag should start with a press and end with a release")
	}
	for i := 1; i <= 3; i++ {
		if ed.injectQueue[i].Kind != InputMouseMove {
			t.Errorf("event %d = %v, want a move", i, ed.injectQueue[i].Kind)
		}
	}
	if got := ed.injectQueue[2]; got.X != 450 || got.Y != 300 {
		t.Errorf("midpoint = (%v, %v), want (450, 300)", got.X, got.Y)
	}

	for range 5 {
		ed.Update(frame)
	}
	if !slices.Equal(ed.Selection(), []EntityID{a, b}) {
		t.Errorf("Selection = %v, want [%d %d]", ed.Selection(), a, b)
	}
}

func TestInjectDragMinimumFrames(t *testing.T) {
	ed := newTestEditor()
	ed.InjectDrag(0, 0, 10, 10, 0, 0)
	if len(ed.injectQueue) != 2 {
		t.Errorf("expected press and release only, got %d events", len(ed.injectQueue))
	}
}

func TestInjectMoveComputesMovement(t *testing.T) {
	ed := newTestEditor()
	ed.HandleEvent(Event{Kind: InputMouseDown, X: 400, Y: 300, Button: MouseButtonMiddle})

	ed.InjectMove(420, 290, 0)
	ed.Update(frame)
	if ed.Pointer() != (Vec2{420, 290}) {
		t.Errorf("Pointer = %v", ed.Pointer())
	}
	if !approxEqual(ed.Camera.X, -20, epsilon) || !approxEqual(ed.Camera.Y, 10, epsilon) {
		t.Errorf("camera = (%v, %v), want (-20, 10)", ed.Camera.X, ed.Camera.Y)
	}
}

func TestInjectKey(t *testing.T) {
	ed := newTestEditor()
	a := addAt(ed, "box.png", 0, 0, 0)
	ed.Select(a)
	ed.InjectKey(KeyDelete, 0)
	ed.Update(frame)
	if ed.Entities.Len() != 0 {
		t.Error("injected Delete should remove the selection")
	}
}

func TestInjectOneEventPerUpdate(t *testing.T) {
	ed := newTestEditor()
	ed.InjectKey("=", 0)
	ed.InjectKey("=", 0)
	ed.InjectKey("=", 0)
	ed.Update(frame)
	if len(ed.injectQueue) != 2 {
		t.Errorf("queue = %d, want 2", len(ed.injectQueue))
	}
}
