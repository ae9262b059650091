package bongocat

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultKeyFade is how long a key sprite takes to fade after release.
const DefaultKeyFade = 0.12

// KeyFlashes tracks the opacity of every key sprite. A held key is fully
// opaque; a released key fades out with a tween instead of vanishing.
//
// There is no global animation manager. The owner calls Update once per tick.
type KeyFlashes struct {
	fade   float32
	easing ease.TweenFunc
	alpha  map[string]float64
	tweens map[string]*gween.Tween
}

// NewKeyFlashes creates a tracker whose fades last fade seconds. fade <= 0
// disables fading: released keys disappear on the next tick.
func NewKeyFlashes(fade float32) *KeyFlashes {
	return &KeyFlashes{
		fade:   fade,
		easing: ease.OutQuad,
		alpha:  make(map[string]float64),
		tweens: make(map[string]*gween.Tween),
	}
}

// Update advances all fades by dt seconds and applies the held state of the
// given keys from in.
func (f *KeyFlashes) Update(dt float32, in *InputSnapshot, ids []string) {
	for _, id := range ids {
		if in.Pressed(id) {
			f.alpha[id] = 1
			delete(f.tweens, id)
			continue
		}
		if tw, ok := f.tweens[id]; ok {
			val, done := tw.Update(dt)
			if done {
				delete(f.tweens, id)
				delete(f.alpha, id)
				continue
			}
			f.alpha[id] = float64(val)
			continue
		}
		if a, ok := f.alpha[id]; ok {
			// Released since the last tick.
			if f.fade <= 0 {
				delete(f.alpha, id)
				continue
			}
			f.tweens[id] = gween.New(float32(a), 0, f.fade, f.easing)
		}
	}
}

// Alpha returns the current opacity of a key sprite, 0 when hidden.
func (f *KeyFlashes) Alpha(id string) float64 {
	return f.alpha[id]
}

// Alphas returns the visible keys and their opacity. The map is owned by f
// and valid until the next Update.
func (f *KeyFlashes) Alphas() map[string]float64 {
	return f.alpha
}

// DefaultHoverAlpha is the window opacity while the cursor is over the mascot.
const DefaultHoverAlpha = 0.35

// windowFade eases the whole mascot between opaque and translucent when the
// cursor enters or leaves its window, so it never hides what is underneath.
type windowFade struct {
	hoverAlpha float64
	duration   float32
	alpha      float64
	hovering   bool
	tween      *gween.Tween
}

func newWindowFade(hoverAlpha float64, duration float32) *windowFade {
	return &windowFade{hoverAlpha: hoverAlpha, duration: duration, alpha: 1}
}

// Update retargets the fade when hovering changes and advances it by dt.
func (w *windowFade) Update(dt float32, hovering bool) float64 {
	if hovering != w.hovering {
		w.hovering = hovering
		target := 1.0
		if hovering {
			target = w.hoverAlpha
		}
		w.tween = gween.New(float32(w.alpha), float32(target), w.duration, ease.InOutSine)
	}
	if w.tween != nil {
		val, done := w.tween.Update(dt)
		w.alpha = float64(val)
		if done {
			w.tween = nil
		}
	}
	return w.alpha
}
