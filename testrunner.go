package routemap

import (
	"encoding/json"
	"fmt"
	"strings"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action    string   `json:"action"`
	X         float64  `json:"x,omitempty"`
	Y         float64  `json:"y,omitempty"`
	FromX     float64  `json:"fromX,omitempty"`
	FromY     float64  `json:"fromY,omitempty"`
	ToX       float64  `json:"toX,omitempty"`
	ToY       float64  `json:"toY,omitempty"`
	Frames    int      `json:"frames,omitempty"`
	Key       string   `json:"key,omitempty"`
	Modifiers []string `json:"modifiers,omitempty"`
	Route     int      `json:"route,omitempty"`
	Plane     int      `json:"plane,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var modifierNames = map[string]KeyModifiers{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
}

// TestRunner sequences injected input across updates for scripted editor
// runs. Attach to an Editor via SetTestRunner.
//
// Supported actions: click, drag, wait, key and fly.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to an Editor via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "wait", "key", "fly":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if _, err := parseModifiers(st.Modifiers); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func parseModifiers(names []string) (KeyModifiers, error) {
	var mods KeyModifiers
	for _, n := range names {
		m, ok := modifierNames[strings.ToLower(n)]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", n)
		}
		mods |= m
	}
	return mods, nil
}

// SetTestRunner attaches a TestRunner to the editor. The runner's step method
// is called from Editor.Update before injected input is processed.
func (ed *Editor) SetTestRunner(runner *TestRunner) {
	ed.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first error raised by a fly step, if any.
func (r *TestRunner) Err() error {
	return r.err
}

// step advances the test runner by one update. Called from Editor.Update.
func (r *TestRunner) step(ed *Editor) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if ed.Injecting() {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	mods, _ := parseModifiers(st.Modifiers)

	switch st.Action {
	case "click":
		ed.InjectClick(st.X, st.Y, mods)
	case "drag":
		ed.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames, mods)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this update counts as one
		}
	case "key":
		ed.InjectKey(st.Key, mods)
	case "fly":
		if err := ed.Fly(RouteID(st.Route), EntityID(st.Plane)); err != nil && r.err == nil {
			r.err = fmt.Errorf("step %d: fly route %d: %w", r.cursor-1, st.Route, err)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !ed.Injecting() {
		r.done = true
	}
}
