package ebitenmap

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/phanxgames/routemap"
)

// wheelScale converts Ebitengine wheel offsets (notches, positive is away
// from the user) into DOM-style deltaY (pixels, positive is towards).
const wheelScale = -100

var mouseButtons = [...]struct {
	eb ebiten.MouseButton
	rm routemap.MouseButton
}{
	{ebiten.MouseButtonLeft, routemap.MouseButtonLeft},
	{ebiten.MouseButtonRight, routemap.MouseButtonRight},
	{ebiten.MouseButtonMiddle, routemap.MouseButtonMiddle},
}

// inputReader turns Ebitengine's polled input state into routemap events.
type inputReader struct {
	cursor    routemap.Vec2
	hasCursor bool
	keys      []ebiten.Key
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() routemap.KeyModifiers {
	var mods routemap.KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= routemap.ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= routemap.ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= routemap.ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= routemap.ModMeta
	}
	return mods
}

// poll appends the events since the previous frame to buf.
func (r *inputReader) poll(buf []routemap.Event) []routemap.Event {
	mods := readModifiers()

	cx, cy := ebiten.CursorPosition()
	pos := routemap.Vec2{X: float64(cx), Y: float64(cy)}
	if !r.hasCursor {
		r.cursor, r.hasCursor = pos, true
	}
	if pos != r.cursor {
		buf = append(buf, routemap.Event{
			Kind: routemap.InputMouseMove,
			X:    pos.X, Y: pos.Y,
			MovementX: pos.X - r.cursor.X,
			MovementY: pos.Y - r.cursor.Y,
			Modifiers: mods,
		})
		r.cursor = pos
	}

	for _, b := range mouseButtons {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			buf = append(buf, routemap.Event{
				Kind: routemap.InputMouseDown, X: pos.X, Y: pos.Y,
				Button: b.rm, Modifiers: mods,
			})
		}
		if inpututil.IsMouseButtonJustReleased(b.eb) {
			buf = append(buf, routemap.Event{
				Kind: routemap.InputMouseUp, X: pos.X, Y: pos.Y,
				Button: b.rm, Modifiers: mods,
			})
		}
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		buf = append(buf, routemap.Event{
			Kind: routemap.InputWheel, X: pos.X, Y: pos.Y,
			DeltaY: wy * wheelScale, Modifiers: mods,
		})
	}

	r.keys = inpututil.AppendJustPressedKeys(r.keys[:0])
	for _, k := range r.keys {
		name, ok := keyName(k)
		if !ok {
			continue
		}
		buf = append(buf, routemap.Event{
			Kind: routemap.InputKeyDown, Key: name, Modifiers: mods,
		})
	}
	return buf
}

// keyName maps an Ebitengine key to the editor's key name.
func keyName(k ebiten.Key) (string, bool) {
	switch k {
	case ebiten.KeyDelete, ebiten.KeyBackspace:
		return routemap.KeyDelete, true
	case ebiten.KeyEqual, ebiten.KeyNumpadAdd:
		return routemap.KeyLayerUp, true
	case ebiten.KeyMinus, ebiten.KeyNumpadSubtract:
		return routemap.KeyLayerDown, true
	}
	name := k.String()
	switch {
	case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
		return strings.ToLower(name), true
	case strings.HasPrefix(name, "Digit"):
		return strings.TrimPrefix(name, "Digit"), true
	case strings.HasPrefix(name, "Numpad") && len(name) == len("Numpad0"):
		return strings.TrimPrefix(name, "Numpad"), true
	}
	return "", false
}
