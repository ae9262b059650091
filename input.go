package bongocat

import (
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft  MouseButton = iota // primary (left) mouse button
	MouseButtonRight                    // secondary (right) mouse button
)

// InputSnapshot is an immutable view of the input devices at one instant.
// Writers publish a fresh snapshot for every change, so a reader never sees
// the cursor half-updated or a key set mid-edit.
type InputSnapshot struct {
	Cursor Vec2 // screen pixels
	Left   bool
	Right  bool

	keys map[string]struct{} // shared between snapshots, never mutated
}

// Pressed reports whether the key with the given identifier is held.
func (s *InputSnapshot) Pressed(id string) bool {
	_, ok := s.keys[id]
	return ok
}

// Keys returns the held key identifiers in sorted order.
func (s *InputSnapshot) Keys() []string {
	out := make([]string, 0, len(s.keys))
	for k := range s.keys {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// InputState publishes InputSnapshots. Any number of goroutines may write;
// readers call Snapshot once per frame. Ebiten polling only sees keys while
// the mascot window has focus; a global capture backend (OS keyboard and
// mouse hooks) is meant to write into this state through Mascot.Input.
type InputState struct {
	mu   sync.Mutex // serializes writers
	snap atomic.Pointer[InputSnapshot]
}

// NewInputState returns a state with the cursor at the origin, nothing held.
func NewInputState() *InputState {
	s := &InputState{}
	s.snap.Store(&InputSnapshot{keys: map[string]struct{}{}})
	return s
}

// Snapshot returns the latest published snapshot. Never nil.
func (s *InputState) Snapshot() *InputSnapshot {
	return s.snap.Load()
}

// update publishes a modified copy of the current snapshot.
func (s *InputState) update(fn func(next *InputSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := *s.snap.Load()
	fn(&next)
	s.snap.Store(&next)
}

// SetCursor records the cursor position in screen pixels.
func (s *InputState) SetCursor(x, y float64) {
	if c := s.Snapshot().Cursor; c.X == x && c.Y == y {
		return
	}
	s.update(func(next *InputSnapshot) {
		next.Cursor = Vec2{x, y}
	})
}

// SetButton records a mouse button state.
func (s *InputState) SetButton(b MouseButton, pressed bool) {
	s.update(func(next *InputSnapshot) {
		switch b {
		case MouseButtonLeft:
			next.Left = pressed
		case MouseButtonRight:
			next.Right = pressed
		}
	})
}

// SetKey records a key press or release. It reports whether the held state
// of the key changed.
func (s *InputState) SetKey(id string, pressed bool) bool {
	if s.Snapshot().Pressed(id) == pressed {
		return false
	}
	changed := false
	s.update(func(next *InputSnapshot) {
		if _, held := next.keys[id]; held == pressed {
			return
		}
		keys := make(map[string]struct{}, len(next.keys)+1)
		for k := range next.keys {
			keys[k] = struct{}{}
		}
		if pressed {
			keys[id] = struct{}{}
		} else {
			delete(keys, id)
		}
		next.keys = keys
		changed = true
	})
	return changed
}

// --- ebiten capture ---

// pollEbitenInput copies ebiten's device state into s. Cursor coordinates
// are converted to screen space with the window position. Must be called
// from the game loop.
func pollEbitenInput(s *InputState, keyBuf []ebiten.Key) []ebiten.Key {
	wx, wy := ebiten.WindowPosition()
	cx, cy := ebiten.CursorPosition()
	s.SetCursor(float64(wx+cx), float64(wy+cy))

	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	snap := s.Snapshot()
	if snap.Left != left {
		s.SetButton(MouseButtonLeft, left)
	}
	if snap.Right != right {
		s.SetButton(MouseButtonRight, right)
	}

	keyBuf = inpututil.AppendJustPressedKeys(keyBuf[:0])
	for _, k := range keyBuf {
		s.SetKey(keyName(k), true)
	}
	keyBuf = inpututil.AppendJustReleasedKeys(keyBuf[:0])
	for _, k := range keyBuf {
		s.SetKey(keyName(k), false)
	}
	return keyBuf
}

// keyName returns the manifest identifier of an ebiten key.
func keyName(k ebiten.Key) string {
	return keyID(k.String())
}

var keyAliases = map[string]string{
	"ShiftLeft":    "shift",
	"ShiftRight":   "shift_r",
	"ControlLeft":  "ctrl_l",
	"ControlRight": "ctrl_r",
	"AltLeft":      "alt_l",
	"AltRight":     "alt_r",
	"MetaLeft":     "cmd",
	"MetaRight":    "cmd_r",
	"Escape":       "esc",
	"CapsLock":     "caps_lock",
	"ArrowUp":      "up",
	"ArrowDown":    "down",
	"ArrowLeft":    "left",
	"ArrowRight":   "right",
	"PageUp":       "page_up",
	"PageDown":     "page_down",
	"Comma":        ",",
	"Period":       ".",
	"Slash":        "/",
	"Semicolon":    ";",
	"Quote":        "'",
	"Minus":        "-",
	"Equal":        "=",
	"BracketLeft":  "[",
	"BracketRight": "]",
	"Backslash":    "\\",
	"Backquote":    "`",
}

// keyID maps an ebiten key name to the identifiers used by key manifests:
// lowercase characters for printable keys and lowercase names otherwise.
func keyID(name string) string {
	if alias, ok := keyAliases[name]; ok {
		return alias
	}
	if d, ok := strings.CutPrefix(name, "Digit"); ok {
		return d
	}
	return strings.ToLower(name)
}
