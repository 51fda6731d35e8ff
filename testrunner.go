package scene2d

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Key    string  `json:"key,omitempty"`
	Up     bool    `json:"up,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected events and screenshots across frames for
// automated checks. Attach to a Render via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

var testActions = map[string]bool{
	"screenshot": true, "click": true, "doubleclick": true, "drag": true,
	"wheel": true, "key": true, "resize": true, "wait": true,
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Render via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !testActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
		if st.Action == "key" {
			var k ebiten.Key
			if err := k.UnmarshalText([]byte(st.Key)); err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the render. Its step method runs
// from Render.Update before input is processed.
func (r *Render) SetTestRunner(runner *TestRunner) {
	r.testRunner = runner
}

// Done reports whether all steps in the test script have been executed.
func (t *TestRunner) Done() bool {
	return t.done
}

// step advances the runner by one frame.
func (t *TestRunner) step(r *Render) {
	if t.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(r.injectQueue) > 0 {
		return
	}
	if t.waitCount > 0 {
		t.waitCount--
		return
	}
	if t.cursor >= len(t.steps) {
		t.done = true
		return
	}

	st := t.steps[t.cursor]
	t.cursor++

	switch st.Action {
	case "screenshot":
		r.Screenshot(st.Label)
	case "click":
		r.InjectClick(st.X, st.Y)
	case "doubleclick":
		r.InjectDoubleClick(st.X, st.Y)
	case "drag":
		r.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wheel":
		r.InjectWheel(st.X, st.Y, st.Up)
	case "key":
		var k ebiten.Key
		if err := k.UnmarshalText([]byte(strings.TrimSpace(st.Key))); err == nil {
			r.InjectKey(k)
		}
	case "resize":
		r.InjectResize(st.Width, st.Height)
	case "wait":
		if st.Frames > 0 {
			t.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if t.cursor >= len(t.steps) && t.waitCount == 0 && len(r.injectQueue) == 0 {
		t.done = true
	}
}
