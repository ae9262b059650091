package bongocat

import (
	"fmt"
	"os"
	"time"
)

// debugStats holds per-tick timing. Only populated when debug output is on.
type debugStats struct {
	inputTime time.Duration
	frameTime time.Duration
	drawTime  time.Duration
	keys      int
	curvePts  int
}

// debugEvery is how many ticks pass between two debug lines.
const debugEvery = 30

// debugLog prints timing stats to stderr once every debugEvery ticks.
func (m *Mascot) debugLog(stats debugStats) {
	if !m.opts.Debug || m.ticks%debugEvery != 0 {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr,
		"[bongocat] input: %v | frame: %v | draw: %v | keys: %d | curve: %d pts\n",
		stats.inputTime, stats.frameTime, stats.drawTime, stats.keys, stats.curvePts)
}

// debugCheckKeys warns once per key about presses that have no sprite in the
// key manifest.
func (m *Mascot) debugCheckKeys(ev KeyEvent) {
	if !m.opts.Debug || !ev.Pressed {
		return
	}
	if _, ok := m.assets.KeyTexture(ev.Key); ok {
		return
	}
	if m.unknownKeys == nil {
		m.unknownKeys = make(map[string]struct{})
	}
	if _, seen := m.unknownKeys[ev.Key]; seen {
		return
	}
	m.unknownKeys[ev.Key] = struct{}{}
	_, _ = fmt.Fprintf(os.Stderr, "[bongocat] warning: key %q has no sprite\n", ev.Key)
}
