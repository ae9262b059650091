package bongocat

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Screenshot queues a labeled capture of the next drawn frame. Each capture
// writes <label>_t<tick>.png to ScreenshotDir and a .yaml file next to it
// describing the geometry of that frame.
func (m *Mascot) Screenshot(label string) {
	m.screenshotQueue = append(m.screenshotQueue, label)
}

// frameReport is the sidecar written with every screenshot.
type frameReport struct {
	Label     string     `yaml:"label"`
	Tick      uint64     `yaml:"tick"`
	Cursor    [2]float64 `yaml:"cursor"`
	Control   [2]float64 `yaml:"control"`
	PawOffset [2]float64 `yaml:"paw_offset"`
	Keys      []string   `yaml:"keys,omitempty"`
	Hovering  bool       `yaml:"hovering"`
	Opacity   float64    `yaml:"opacity"`
	Stroke    string     `yaml:"stroke"`
}

func newFrameReport(label string, tick uint64, in *InputSnapshot, f *Frame, opacity float64) frameReport {
	r := frameReport{
		Label:     label,
		Tick:      tick,
		Cursor:    [2]float64{in.Cursor.X, in.Cursor.Y},
		Control:   [2]float64{f.Control.X, f.Control.Y},
		PawOffset: [2]float64{f.PawOffset.X, f.PawOffset.Y},
		Hovering:  f.Hovering,
		Opacity:   opacity,
		Stroke:    fmt.Sprintf("%d points", len(f.Curve)),
	}
	for _, k := range f.Keys {
		r.Keys = append(r.Keys, k.Name)
	}
	if f.Err != nil {
		r.Stroke = "skipped: " + f.Err.Error()
	}
	return r
}

// screenshotName returns the file name, without extension, for a capture.
func screenshotName(label string, tick uint64) string {
	return fmt.Sprintf("%s_t%06d", sanitizeLabel(label), tick)
}

// flushScreenshots writes every queued capture of the frame just drawn.
func (m *Mascot) flushScreenshots(screen *ebiten.Image) {
	if len(m.screenshotQueue) == 0 {
		return
	}
	defer func() { m.screenshotQueue = m.screenshotQueue[:0] }()

	if err := os.MkdirAll(m.ScreenshotDir, 0o755); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[bongocat] screenshot: mkdir %s: %v\n", m.ScreenshotDir, err)
		return
	}

	b := screen.Bounds()
	pixels := make([]byte, 4*b.Dx()*b.Dy())
	screen.ReadPixels(pixels)
	img := unpremultiply(pixels, b.Dx(), b.Dy())

	for _, label := range m.screenshotQueue {
		base := filepath.Join(m.ScreenshotDir, screenshotName(label, m.ticks))
		report := newFrameReport(label, m.ticks, m.prev, &m.frame, m.opacity)
		if err := writeCapture(base, img, report); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "[bongocat] screenshot: %v\n", err)
		}
	}
}

// writeCapture writes base.png and base.yaml.
func writeCapture(base string, img image.Image, report frameReport) error {
	if err := writePNG(base+".png", img); err != nil {
		return err
	}
	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("encode %s.yaml: %w", base, err)
	}
	return os.WriteFile(base+".yaml", data, 0o644)
}

// unpremultiply converts pixels read back from ebiten (premultiplied RGBA)
// to straight alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	src := &image.RGBA{Pix: pixels, Stride: 4 * w, Rect: image.Rect(0, 0, w, h)}
	dst := image.NewNRGBA(src.Rect)
	draw.Draw(dst, dst.Rect, src, image.Point{}, draw.Src)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything else
// with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
