package bongocat

import (
	"errors"
	"fmt"
	"image"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultTPS is the tick rate of the mascot window.
const DefaultTPS = 30

// ConfigSource hands out the current configuration snapshot. ConfigWatcher
// implements it; StaticConfig serves a fixed one.
type ConfigSource interface {
	Current() *Config
}

// StaticConfig is a ConfigSource that never changes.
type StaticConfig struct{ C *Config }

// Current returns the wrapped configuration.
func (s StaticConfig) Current() *Config { return s.C }

// KeyEvent reports a key changing state between two ticks.
type KeyEvent struct {
	Key     string
	Pressed bool
	Cursor  Vec2   // screen position at the time of the change
	Tick    uint64 // tick on which the change was observed
}

// EntityStore receives key events. The ecs submodule provides a
// donburi-backed implementation.
type EntityStore interface {
	EmitKeyEvent(KeyEvent)
}

// MascotOptions configures a Mascot. The zero value uses the shipped rig.
type MascotOptions struct {
	// Constants overrides the rig constants. Zero means DefaultConstants().
	Constants *AnimationConstants

	// ScreenSize is the monitor size used for the cursor mapping. Zero means
	// the primary monitor, queried on the first tick.
	ScreenSize Vec2

	KeyFade    float32 // key sprite fade-out, seconds; zero means DefaultKeyFade
	HoverAlpha float64 // window opacity under the cursor; zero means DefaultHoverAlpha
	HoverFade  float32 // seconds to reach HoverAlpha; zero means 0.25

	Stats       *KeyStats   // optional press counters
	EntityStore EntityStore // optional event sink
	Script      *TestRunner // optional; replaces device input while it runs

	// ExitOnScriptEnd ends the game loop once Script is done.
	ExitOnScriptEnd bool

	Debug   bool
	ShowFPS bool
}

// Mascot is the Bongo Cat window. It implements ebiten.Game: Update samples
// input and recomputes the frame geometry, Draw paints it.
type Mascot struct {
	// ScreenshotDir is where Screenshot writes its PNG and YAML files.
	ScreenshotDir string

	opts      MascotOptions
	constants AnimationConstants
	assets    *AssetTable
	config    ConfigSource
	input     *InputState
	injected  injectQueue
	flashes   *KeyFlashes
	fade      *windowFade
	renderer  *Renderer
	fps       *fpsOverlay
	ctx       *AnimationContext

	frame      Frame
	prev       *InputSnapshot
	lastPaw    Vec2
	degenerate string // last logged trajectory error, "" when healthy
	opacity    float64
	ticks      uint64
	keyBuf     []ebiten.Key
	windowPos  image.Point
	drawTime   time.Duration

	screenshotQueue []string
	unknownKeys     map[string]struct{}
}

// NewMascot wires a mascot from loaded assets and a configuration source.
// Keys whose manifest mode is set start out held.
func NewMascot(assets *AssetTable, config ConfigSource, opts MascotOptions) (*Mascot, error) {
	if assets == nil || config == nil || config.Current() == nil {
		return nil, errors.New("bongocat: mascot needs assets and a configuration")
	}
	c := DefaultConstants()
	if opts.Constants != nil {
		c = *opts.Constants
	}
	if opts.KeyFade == 0 {
		opts.KeyFade = DefaultKeyFade
	}
	if opts.HoverAlpha == 0 {
		opts.HoverAlpha = DefaultHoverAlpha
	}
	if opts.HoverFade == 0 {
		opts.HoverFade = 0.25
	}

	m := &Mascot{
		ScreenshotDir: "screenshots",
		opts:          opts,
		constants:     c,
		assets:        assets,
		config:        config,
		input:         NewInputState(),
		flashes:       NewKeyFlashes(opts.KeyFade),
		fade:          newWindowFade(opts.HoverAlpha, opts.HoverFade),
		opacity:       1,
		windowPos:     image.Pt(-1, -1),
	}
	for _, id := range assets.InitialKeys {
		m.input.SetKey(id, true)
	}
	m.prev = m.input.Snapshot()

	if opts.ScreenSize != (Vec2{}) {
		if err := m.initContext(opts.ScreenSize); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Input returns the input state the mascot reads. External capture
// backends may write to it from any goroutine.
func (m *Mascot) Input() *InputState { return m.input }

// Frame returns the geometry computed on the last tick.
func (m *Mascot) Frame() *Frame { return &m.frame }

// initContext solves the cursor mapping for a monitor of the given size and
// builds the per-run animation context.
func (m *Mascot) initContext(screen Vec2) error {
	c := m.constants
	mapping, err := NewScreenMapping(screen, Vec2{WindowWidth, WindowHeight}, c.TargetQuad)
	if err != nil {
		return fmt.Errorf("bongocat: cursor mapping for %vx%v screen: %w", screen.X, screen.Y, err)
	}
	m.ctx = &AnimationContext{
		Model:   CanvasModel(c.CanvasRows, c.CanvasCols),
		Mapping: mapping,
		Shape:   c.Trajectory,
		Layers:  m.assets.Layers,
		Keys:    m.assets.Keys,
	}
	m.renderer = NewRenderer(m.assets, m.ctx.Model)
	return nil
}

// Update implements ebiten.Game.
func (m *Mascot) Update() error {
	if m.ctx == nil {
		w, h := ebiten.Monitor().Size()
		if err := m.initContext(Vec2{float64(w), float64(h)}); err != nil {
			return err
		}
	}
	if s := m.opts.Script; s != nil && s.Done() && m.opts.ExitOnScriptEnd {
		return ebiten.Termination
	}

	var stats debugStats
	start := time.Now()
	if s := m.opts.Script; s != nil && !s.Done() {
		s.step(&m.injected, m.Screenshot)
		m.injected.apply(m.input)
	} else if !m.injected.apply(m.input) {
		m.keyBuf = pollEbitenInput(m.input, m.keyBuf)
	}
	stats.inputTime = time.Since(start)

	start = time.Now()
	m.tick(m.input.Snapshot(), float32(1.0/float64(ebiten.TPS())))
	stats.frameTime = time.Since(start)
	stats.keys = len(m.frame.Keys)
	stats.curvePts = len(m.frame.Curve)
	stats.drawTime = m.drawTime

	m.placeWindow(m.config.Current().MoveUp)
	if m.fps != nil {
		presses := 0
		if m.opts.Stats != nil {
			presses = m.opts.Stats.Total()
		}
		m.fps.update(1.0/float64(ebiten.TPS()), presses)
	}
	if m.opts.Stats != nil {
		m.opts.Stats.MaybeSave(time.Now())
	}
	m.debugLog(stats)
	return nil
}

// tick advances the animation by dt seconds using snap as this tick's input.
func (m *Mascot) tick(snap *InputSnapshot, dt float32) {
	m.ticks++
	m.emitKeyChanges(m.prev, snap)
	m.prev = snap

	m.flashes.Update(dt, snap, m.assets.KeyIDs())
	m.frame = ComputeFrame(m.ctx, m.config.Current(), snap, m.flashes.Alphas(), m.lastPaw)
	m.noteTrajectoryError(m.frame.Err)
	if m.frame.Err == nil {
		m.lastPaw = m.frame.PawOffset
	}
	m.opacity = m.fade.Update(dt, m.frame.Hovering)
}

// emitKeyChanges reports every key whose held state differs between prev
// and next, releases first.
func (m *Mascot) emitKeyChanges(prev, next *InputSnapshot) {
	for _, k := range prev.Keys() {
		if !next.Pressed(k) {
			m.emit(KeyEvent{Key: k, Pressed: false, Cursor: next.Cursor, Tick: m.ticks})
		}
	}
	for _, k := range next.Keys() {
		if !prev.Pressed(k) {
			m.emit(KeyEvent{Key: k, Pressed: true, Cursor: next.Cursor, Tick: m.ticks})
		}
	}
}

func (m *Mascot) emit(ev KeyEvent) {
	if ev.Pressed && m.opts.Stats != nil {
		m.opts.Stats.Record(ev.Key)
	}
	if m.opts.EntityStore != nil {
		m.opts.EntityStore.EmitKeyEvent(ev)
	}
	m.debugCheckKeys(ev)
}

// noteTrajectoryError logs a skipped paw stroke once per distinct error and
// once more when strokes resume.
func (m *Mascot) noteTrajectoryError(err error) {
	if err == nil {
		if m.degenerate != "" {
			log.Printf("bongocat: paw stroke resumed")
			m.degenerate = ""
		}
		return
	}
	if msg := err.Error(); msg != m.degenerate {
		log.Printf("bongocat: skipping paw stroke: %v", err)
		m.degenerate = msg
	}
}

// placeWindow docks the window to the bottom-right corner of the monitor,
// lifted by moveUp pixels. It only moves the window when the target changes.
func (m *Mascot) placeWindow(moveUp float64) {
	r := m.ctx.Mapping.WindowRect(moveUp)
	p := image.Pt(int(r.MinX), int(r.MinY))
	if p == m.windowPos {
		return
	}
	m.windowPos = p
	ebiten.SetWindowPosition(p.X, p.Y)
}

// Draw implements ebiten.Game.
func (m *Mascot) Draw(screen *ebiten.Image) {
	if m.renderer == nil {
		return
	}
	start := time.Now()
	screen.Clear()
	cfg := m.config.Current()
	m.renderer.Draw(screen, &m.frame, cfg.LineWidth, m.opacity)
	if m.opts.Debug {
		m.renderer.DrawMarker(screen, cfg.TestPoint, Color{R: 1, A: 1})
	}
	if m.fps != nil {
		m.fps.draw(screen)
	}
	m.flushScreenshots(screen)
	m.drawTime = time.Since(start)
}

// Layout implements ebiten.Game. The canvas is fixed at the window size.
func (m *Mascot) Layout(_, _ int) (int, int) {
	return WindowWidth, WindowHeight
}

// RunConfig holds window options for Run.
type RunConfig struct {
	Title string
	Icon  image.Image // optional window icon
}

// Run opens the mascot window and blocks until it is closed. Stats, when
// set, are saved on the way out.
func Run(m *Mascot, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "Bongo Cat"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(WindowWidth, WindowHeight)
	ebiten.SetWindowDecorated(true)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	ebiten.SetTPS(DefaultTPS)
	if cfg.Icon != nil {
		ebiten.SetWindowIcon([]image.Image{cfg.Icon})
	}
	if m.opts.ShowFPS {
		m.fps = newFPSOverlay()
	}

	err := ebiten.RunGameWithOptions(m, &ebiten.RunGameOptions{ScreenTransparent: true})
	if m.opts.Stats != nil {
		if serr := m.opts.Stats.Save(); serr != nil {
			log.Printf("bongocat: %v", serr)
		}
	}
	return err
}
