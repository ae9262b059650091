package bongocat

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay shows FPS, TPS and the key press total in the top-left corner.
// The text is redrawn about twice a second.
type fpsOverlay struct {
	img     *ebiten.Image
	elapsed float64
}

func newFPSOverlay() *fpsOverlay {
	// 120x48 fits three short lines of debug font.
	return &fpsOverlay{img: ebiten.NewImage(120, 48), elapsed: 1}
}

func (o *fpsOverlay) update(dt float64, presses int) {
	o.elapsed += dt
	if o.elapsed < 0.5 {
		return
	}
	o.elapsed = 0
	o.img.Clear()
	o.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nKeys: %d",
		ebiten.ActualFPS(), ebiten.ActualTPS(), presses))
}

func (o *fpsOverlay) draw(dst *ebiten.Image) {
	dst.DrawImage(o.img, nil)
}
