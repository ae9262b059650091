package bongocat

type injectKind uint8

const (
	injectMove injectKind = iota
	injectButton
	injectKey
)

// syntheticEvent is a single injected input event. Positions are screen
// pixels, the same space the real cursor is reported in.
type syntheticEvent struct {
	kind    injectKind
	x, y    float64
	button  MouseButton
	key     string
	pressed bool
}

// injectQueue holds synthetic events. One event is applied per tick so a
// press and its release are never seen in the same frame.
type injectQueue struct {
	events []syntheticEvent
}

// Len returns the number of pending events.
func (q *injectQueue) Len() int { return len(q.events) }

// Move queues a cursor move to (x, y).
func (q *injectQueue) Move(x, y float64) {
	q.events = append(q.events, syntheticEvent{kind: injectMove, x: x, y: y})
}

// Glide queues a linear cursor path from (fromX, fromY) to (toX, toY)
// spread over frames ticks. The last event lands exactly on the target.
func (q *injectQueue) Glide(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		q.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// Button queues a mouse button change.
func (q *injectQueue) Button(b MouseButton, pressed bool) {
	q.events = append(q.events, syntheticEvent{kind: injectButton, button: b, pressed: pressed})
}

// Key queues a key press or release.
func (q *injectQueue) Key(id string, pressed bool) {
	q.events = append(q.events, syntheticEvent{kind: injectKey, key: id, pressed: pressed})
}

// Tap queues a press followed by a release. Consumes two ticks.
func (q *injectQueue) Tap(id string) {
	q.Key(id, true)
	q.Key(id, false)
}

// apply pops one event and writes it to in. It reports whether an event was
// consumed, in which case real device input is skipped for the tick.
func (q *injectQueue) apply(in *InputState) bool {
	if len(q.events) == 0 {
		return false
	}
	evt := q.events[0]
	copy(q.events, q.events[1:])
	q.events = q.events[:len(q.events)-1]

	switch evt.kind {
	case injectMove:
		in.SetCursor(evt.x, evt.y)
	case injectButton:
		in.SetButton(evt.button, evt.pressed)
	case injectKey:
		in.SetKey(evt.key, evt.pressed)
	}
	return true
}
