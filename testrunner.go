package bongocat

import (
	"encoding/json"
	"fmt"
)

// scriptStep is a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Key    string  `json:"key,omitempty"`
	Button string  `json:"button,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure of an input script.
type inputScript struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner plays an input script frame by frame and queues screenshots,
// so a rendering can be checked without a person at the keyboard.
//
// Supported actions:
//
//	{"action": "move", "x": 800, "y": 400, "frames": 10}
//	{"action": "press", "key": "a"}          or {"button": "left"}
//	{"action": "release", "key": "a"}        or {"button": "right"}
//	{"action": "tap", "key": "a"}
//	{"action": "wait", "frames": 30}
//	{"action": "screenshot", "label": "paw-left"}
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool

	// last scripted cursor position, the start of the next glide
	x, y float64
}

// LoadTestScript parses a JSON input script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if err := st.validate(); err != nil {
			return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

func (st scriptStep) validate() error {
	switch st.Action {
	case "move", "wait", "screenshot":
		return nil
	case "press", "release":
		if st.Key == "" && st.Button == "" {
			return fmt.Errorf("%s needs a key or a button", st.Action)
		}
		if st.Button != "" {
			if _, err := parseButton(st.Button); err != nil {
				return err
			}
		}
		return nil
	case "tap":
		if st.Key == "" {
			return fmt.Errorf("tap needs a key")
		}
		return nil
	}
	return fmt.Errorf("unknown action %q", st.Action)
}

func parseButton(name string) (MouseButton, error) {
	switch name {
	case "left":
		return MouseButtonLeft, nil
	case "right":
		return MouseButtonRight, nil
	}
	return 0, fmt.Errorf("unknown button %q", name)
}

// Done reports whether every step has run and all injected events drained.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the script by one frame. Queued events must drain before
// the next step runs.
func (r *TestRunner) step(q *injectQueue, screenshot func(label string)) {
	if r.done || q.Len() > 0 {
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
	case "screenshot":
		screenshot(st.Label)
	case "move":
		if st.Frames > 1 {
			q.Glide(r.x, r.y, st.X, st.Y, st.Frames)
		} else {
			q.Move(st.X, st.Y)
		}
		r.x, r.y = st.X, st.Y
	case "press", "release":
		pressed := st.Action == "press"
		if st.Button != "" {
			b, _ := parseButton(st.Button)
			q.Button(b, pressed)
		} else {
			q.Key(st.Key, pressed)
		}
	case "tap":
		q.Tap(st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && q.Len() == 0 {
		r.done = true
	}
}
