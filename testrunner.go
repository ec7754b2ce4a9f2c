package frames

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a test script.
type testStep struct {
	Action string      `json:"action"`
	Label  string      `json:"label,omitempty"`
	X      float64     `json:"x,omitempty"`
	Y      float64     `json:"y,omitempty"`
	FromX  float64     `json:"fromX,omitempty"`
	FromY  float64     `json:"fromY,omitempty"`
	ToX    float64     `json:"toX,omitempty"`
	ToY    float64     `json:"toY,omitempty"`
	DX     float64     `json:"dx,omitempty"`
	DY     float64     `json:"dy,omitempty"`
	Button MouseButton `json:"button,omitempty"`
	Frames int         `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var scriptActions = map[string]bool{
	"press": true, "move": true, "release": true,
	"click": true, "drag": true, "wheel": true, "wait": true,
}

// TestRunner replays a scripted input sequence into a Document, one
// pointer event per frame.
//
// Script format:
//
//	{"steps": [
//	  {"action": "click", "x": 100, "y": 200},
//	  {"action": "wait", "frames": 3},
//	  {"action": "drag", "fromX": 10, "fromY": 10, "toX": 90, "toY": 40, "frames": 8},
//	  {"action": "wheel", "x": 50, "y": 50, "dy": -120}
//	]}
//
// press and release take an optional "button" (1 left, 2 middle, 3 right;
// left when omitted).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	queue     []func(*Document)
	done      bool
}

// LoadTestScript parses a JSON test script. Errors wrap ErrInvalidScript.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w: %v", ErrInvalidScript, err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: %w: no steps", ErrInvalidScript)
	}
	for i, st := range script.Steps {
		if !scriptActions[st.Action] {
			return nil, fmt.Errorf("parse test script: %w: step %d: unknown action %q", ErrInvalidScript, i, st.Action)
		}
		if st.Button > ButtonRight {
			return nil, fmt.Errorf("parse test script: %w: step %d: bad button %d", ErrInvalidScript, i, st.Button)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether every step has been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// Remaining returns the number of steps not yet started.
func (r *TestRunner) Remaining() int {
	return len(r.steps) - r.cursor
}

// Step advances the runner by one frame, dispatching at most one pointer
// event into doc.
func (r *TestRunner) Step(doc *Document) {
	if r.done {
		return
	}
	if len(r.queue) > 0 {
		r.pop(doc)
		r.checkDone()
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		r.checkDone()
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++
	r.enqueue(st)
	if len(r.queue) > 0 {
		r.pop(doc)
	}
	r.checkDone()
}

func (r *TestRunner) pop(doc *Document) {
	fn := r.queue[0]
	copy(r.queue, r.queue[1:])
	r.queue = r.queue[:len(r.queue)-1]
	fn(doc)
}

func (r *TestRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.queue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) enqueue(st testStep) {
	b := st.Button
	if b == ButtonNone {
		b = ButtonLeft
	}
	switch st.Action {
	case "press":
		r.queue = append(r.queue, func(d *Document) { d.Press(st.X, st.Y, b) })
	case "move":
		r.queue = append(r.queue, func(d *Document) { d.Move(st.X, st.Y) })
	case "release":
		r.queue = append(r.queue, func(d *Document) { d.Release(st.X, st.Y, b) })
	case "click":
		r.queue = append(r.queue,
			func(d *Document) { d.Press(st.X, st.Y, ButtonLeft) },
			func(d *Document) { d.Release(st.X, st.Y, ButtonLeft) },
		)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		r.queue = append(r.queue, func(d *Document) { d.Press(st.FromX, st.FromY, ButtonLeft) })
		steps := frames - 2
		for i := 1; i <= steps; i++ {
			t := float64(i) / float64(steps+1)
			x := st.FromX + (st.ToX-st.FromX)*t
			y := st.FromY + (st.ToY-st.FromY)*t
			r.queue = append(r.queue, func(d *Document) { d.Move(x, y) })
		}
		r.queue = append(r.queue, func(d *Document) { d.Release(st.ToX, st.ToY, ButtonLeft) })
	case "wheel":
		r.queue = append(r.queue, func(d *Document) { d.Wheel(st.X, st.Y, st.DX, st.DY) })
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}
}
