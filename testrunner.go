package bramble

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string   `json:"action"`
	Buttons []string `json:"buttons,omitempty"`
	Frames  int      `json:"frames,omitempty"`
	Label   string   `json:"label,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected button presses across frames for automated
// play tests. Attach to a Runtime via SetTestRunner.
//
// Actions:
//
//	{"action": "tap",   "buttons": ["a"]}               press then release
//	{"action": "hold",  "buttons": ["left"], "frames": 4}
//	{"action": "wait",  "frames": 30}
//	{"action": "mark",  "label": "after-swap"}          calls OnMark
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool

	// OnMark, when set, is called for each "mark" step.
	OnMark func(label string)
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Runtime via SetTestRunner.
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
		case "tap", "hold":
			if len(st.Buttons) == 0 {
				return nil, fmt.Errorf("parse test script: step %d: %s needs buttons", i, st.Action)
			}
			for _, name := range st.Buttons {
				if _, ok := ParseButton(name); !ok {
					return nil, fmt.Errorf("parse test script: step %d: unknown button %q", i, name)
				}
			}
		case "wait", "mark":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Runtime.Tick
// before input is polled.
func (r *TestRunner) step(in *Input) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if in.InjectPending() > 0 {
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

	switch st.Action {
	case "tap":
		in.Inject(parseButtons(st.Buttons)...)
		in.Inject()
	case "hold":
		in.InjectHold(st.Frames, parseButtons(st.Buttons)...)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "mark":
		if r.OnMark != nil {
			r.OnMark(st.Label)
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && in.InjectPending() == 0 {
		r.done = true
	}
}

func parseButtons(names []string) []Button {
	out := make([]Button, 0, len(names))
	for _, name := range names {
		if b, ok := ParseButton(name); ok {
			out = append(out, b)
		}
	}
	return out
}
