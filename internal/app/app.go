// Package app wires the particle experience together and runs the frame loop.
package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/morphfield/internal/config"
	"github.com/Faultbox/morphfield/internal/engine/audio"
	"github.com/Faultbox/morphfield/internal/engine/camera"
	"github.com/Faultbox/morphfield/internal/engine/debug"
	"github.com/Faultbox/morphfield/internal/engine/field"
	"github.com/Faultbox/morphfield/internal/engine/input"
	"github.com/Faultbox/morphfield/internal/engine/mesh"
	"github.com/Faultbox/morphfield/internal/engine/morph"
	"github.com/Faultbox/morphfield/internal/engine/picking"
	"github.com/Faultbox/morphfield/internal/engine/renderer"
	"github.com/Faultbox/morphfield/internal/engine/sampler"
	"github.com/Faultbox/morphfield/internal/engine/shape"
	"github.com/Faultbox/morphfield/internal/engine/window"
	"github.com/Faultbox/morphfield/internal/logger"
	"github.com/Faultbox/morphfield/pkg/formats"
	"github.com/Faultbox/morphfield/pkg/math"
)

// tintPalette are the tints cycled by the C key, starting from the
// configured color.
var tintPalette = []string{
	"#4ec9ff", "#ff6ec7", "#7cff6b", "#ffd166", "#b388ff",
}

// App is the running particle experience.
type App struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	camera   *camera.OrbitCamera

	library    *shape.Library
	controller *morph.Controller
	scheduler  *morph.Scheduler
	tint       *morph.ColorTween
	audio      *audio.Manager
	shots      *debug.ScreenshotCapture

	// Pointer state, screen space and resolved world space
	mouseX, mouseY int
	pointerValid   bool
	pointer        math.Vec3
	dragging       bool

	// Scratch buffer the field displaces into; the controller's buffer
	// itself is never touched here.
	scratch []float32
	upload  uploadState

	startedAt  time.Time
	frameNow   time.Time
	paletteIdx int
}

// New builds the full experience. The window and GL context are created
// here, so it must run on the main thread.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:     cfg,
		scratch: make([]float32, cfg.Particles.Count*3),
	}

	a.library = shape.NewLibrary()
	if err := a.registerShapes(); err != nil {
		return nil, err
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      "Morphfield",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	a.renderer, err = renderer.New(renderer.Config{
		Width:  cfg.Graphics.Width,
		Height: cfg.Graphics.Height,
	}, cfg.Particles.Count)
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()

	a.camera = camera.NewOrbitCamera()
	a.camera.AutoRotate = cfg.Auto.RotateEnabled
	a.camera.AutoRotateSpeed = cfg.Auto.RotateSpeed

	a.controller = morph.NewController(cfg, a.library)
	a.scheduler = morph.NewScheduler(cfg)
	a.tint = morph.NewColorTween(cfg.Particles.TintColor())
	a.shots = debug.NewScreenshotCapture("screenshots", "morphfield")

	a.controller.OnBufferDirty(a.upload.MarkDirty)
	a.controller.OnShapeChanged(a.onShapeChanged)
	a.upload.MarkDirty() // initial scatter needs one upload

	a.audio = audio.New()
	if cfg.Audio.Enabled {
		if err := a.audio.Init(); err != nil {
			logger.Warn("audio unavailable", zap.Error(err))
		} else {
			a.audio.SetMasterVolume(cfg.Audio.MasterVolume)
			if cfg.Audio.AmbientPath != "" {
				if err := a.audio.PlayAmbientFile(cfg.Audio.AmbientPath); err != nil {
					logger.Warn("ambient loop failed", zap.Error(err))
				}
			}
		}
	}

	logger.Info("experience initialized",
		zap.Int("particles", cfg.Particles.Count),
		zap.Strings("shapes", a.library.Names()),
	)
	return a, nil
}

// registerShapes samples the built-in procedural shapes plus any configured
// OBJ files into the library, in display order.
func (a *App) registerShapes() error {
	count := a.cfg.Particles.Count
	diagonal := a.cfg.Shapes.SampleDiagonal

	builtins := []struct {
		name string
		m    *mesh.Mesh
	}{
		{"sphere", mesh.Sphere(1, 48, 64)},
		{"torus", mesh.Torus(1, 0.38, 48, 64)},
		{"cube", mesh.Box(1, 1, 1)},
		{"spikes", mesh.Spikes(1, 48, 64)},
	}

	for _, b := range builtins {
		b.m.Normalize(diagonal)
		cloud := sampler.Sample(b.m, count)
		if cloud == nil {
			return fmt.Errorf("sampling %s produced no points", b.name)
		}
		a.library.Register(b.name, cloud)
	}

	for _, path := range a.cfg.Shapes.OBJPaths {
		obj, err := formats.ParseOBJFile(path)
		if err != nil {
			logger.Warn("skipping OBJ shape", zap.String("path", path), zap.Error(err))
			continue
		}

		m := &mesh.Mesh{
			Name:     obj.Name,
			Vertices: obj.Positions,
			Indices:  obj.Indices,
		}
		m.Normalize(diagonal)

		cloud := sampler.Sample(m, count)
		if cloud == nil {
			logger.Warn("OBJ has no sampleable surface", zap.String("path", path))
			continue
		}

		name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		a.library.Register(name, cloud)
		logger.Info("registered OBJ shape",
			zap.String("name", name),
			zap.Int("triangles", obj.TriangleCount()),
		)
	}

	return nil
}

func (a *App) onShapeChanged(name string) {
	logger.Info("shape settled", zap.String("shape", name))
	a.scheduler.MarkMorphed(a.frameNow)

	if a.audio.IsInitialized() {
		var err error
		if name == shape.ExplodeName {
			err = a.audio.ExplodeChime()
		} else {
			err = a.audio.MorphChime()
		}
		if err != nil {
			logger.Debug("chime failed", zap.Error(err))
		}
	}
}

// Run starts the main loop and blocks until quit.
func (a *App) Run() error {
	a.running = true
	a.startedAt = time.Now()
	a.frameNow = a.startedAt

	if a.cfg.Auto.MorphEnabled {
		a.scheduler.SetEnabled(true, a.startedAt)
	}

	// Open on the first shape rather than the initial scatter.
	if names := a.library.Names(); len(names) > 0 {
		a.controller.RequestMorph(names[0], a.startedAt)
	}

	lastTime := a.startedAt
	frameCount := 0
	fpsTimer := a.startedAt

	logger.Info("starting experience loop")

	for a.running {
		// One timestamp per tick: the scheduler, tween, and field all see
		// the same clock.
		now := time.Now()
		a.frameNow = now
		dt := now.Sub(lastTime)
		lastTime = now

		if a.input.Update() {
			break
		}
		a.handleEvents(now)

		a.update(now, dt)
		a.render()
		a.window.SwapBuffers()

		frameCount++
		if a.cfg.Graphics.ShowFPS && now.Sub(fpsTimer) >= time.Second {
			logger.Debug("fps",
				zap.Int("count", frameCount),
				zap.Duration("dt", dt),
			)
			frameCount = 0
			fpsTimer = now
		}
	}

	return nil
}

// Close cleans up all resources.
func (a *App) Close() {
	logger.Info("closing experience")

	if a.audio != nil {
		a.audio.Close()
	}
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}

func (a *App) handleEvents(now time.Time) {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventQuit:
			a.running = false

		case input.EventWindowResize:
			a.renderer.Resize(e.Width, e.Height)

		case input.EventMouseMove:
			if a.dragging {
				a.camera.HandleDrag(float32(e.MouseX-a.mouseX), float32(e.MouseY-a.mouseY))
			}
			a.mouseX, a.mouseY = e.MouseX, e.MouseY
			a.pointerValid = true

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = true
			}
			a.mouseX, a.mouseY = e.MouseX, e.MouseY

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = false
			}

		case input.EventMouseWheel:
			a.camera.HandleZoom(e.WheelY)

		case input.EventMouseLeave:
			a.pointerValid = false

		case input.EventKeyDown:
			a.handleKey(e.Key, now)
		}
	}
}

func (a *App) handleKey(key sdl.Scancode, now time.Time) {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		a.running = false

	case sdl.SCANCODE_SPACE:
		names := a.library.Names()
		if len(names) == 0 {
			return
		}
		next := (a.library.IndexOf(a.controller.CurrentShape()) + 1) % len(names)
		if a.controller.RequestMorph(names[next], now) {
			a.scheduler.MarkMorphed(now)
		}

	case sdl.SCANCODE_E:
		a.controller.RequestMorph(shape.ExplodeName, now)

	case sdl.SCANCODE_R:
		a.camera.AutoRotate = !a.camera.AutoRotate
		logger.Info("auto-rotate", zap.Bool("enabled", a.camera.AutoRotate))

	case sdl.SCANCODE_M:
		a.scheduler.SetEnabled(!a.scheduler.Enabled(), now)
		logger.Info("auto-morph", zap.Bool("enabled", a.scheduler.Enabled()))

	case sdl.SCANCODE_C:
		a.paletteIdx = (a.paletteIdx + 1) % len(tintPalette)
		a.cfg.Particles.Color = tintPalette[a.paletteIdx]
		a.tint.TweenTo(a.cfg.Particles.TintColor(), now)

	case sdl.SCANCODE_F:
		a.window.SetFullscreen(!a.window.IsFullscreen())

	case sdl.SCANCODE_F12:
		a.captureScreenshot()
	}
}

func (a *App) captureScreenshot() {
	w, h := a.renderer.Size()
	path, err := a.shots.CaptureFromPixels(a.renderer.ReadPixels(), w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

func (a *App) update(now time.Time, dt time.Duration) {
	a.camera.Advance(dt)
	a.scheduler.Tick(now, a.controller, a.library)
	a.controller.Update(now)
	a.tint.Update(now)

	pointer := a.resolvePointer()
	timeMs := float32(now.Sub(a.startedAt).Milliseconds())

	base := a.controller.Buffer()
	seeds := a.controller.Seeds()

	switch a.upload.Decide(pointer != field.NoPointer) {
	case uploadDisplaced:
		// Displace into the scratch copy; the controller's buffer stays
		// pristine so releasing the pointer leaves no residue.
		radius := a.cfg.Interaction.Radius
		strength := a.cfg.Interaction.Strength
		for i := 0; i < len(seeds); i++ {
			pos := math.Vec3{X: base[i*3], Y: base[i*3+1], Z: base[i*3+2]}
			d := field.Displace(pos, seeds[i], pointer, radius, strength, timeMs)
			a.scratch[i*3] = pos.X + d.X
			a.scratch[i*3+1] = pos.Y + d.Y
			a.scratch[i*3+2] = pos.Z + d.Z
		}
		a.renderer.UploadPositions(a.scratch)
	case uploadBase:
		// Covers both a dirty tween buffer and the frame the pointer
		// releases, which must drop the displaced frame immediately.
		a.renderer.UploadPositions(base)
	}
}

// resolvePointer maps the mouse to a world-space point on the cloud, or the
// off-surface sentinel when there is nothing under the cursor.
func (a *App) resolvePointer() math.Vec3 {
	if !a.pointerValid {
		return field.NoPointer
	}

	w, h := a.window.GetSize()
	inv := a.viewProj().Inverse()
	ray := picking.ScreenToRay(float32(a.mouseX), float32(a.mouseY), float32(w), float32(h), inv)

	// Prefer the cloud's bounding sphere; fall back to the z=0 plane for
	// shallow rays skimming past it.
	if hit, ok := ray.IntersectSphere(math.Vec3{}, a.cfg.Shapes.SampleDiagonal*0.6); ok {
		return hit
	}
	if hit, ok := ray.IntersectPlaneZ(0); ok {
		return hit
	}
	return field.NoPointer
}

func (a *App) viewProj() math.Mat4 {
	w, h := a.renderer.Size()
	if h == 0 {
		h = 1
	}
	proj := math.Perspective(0.9, float32(w)/float32(h), 0.1, 5000)
	return proj.Mul(a.camera.ViewMatrix())
}

func (a *App) render() {
	a.renderer.Begin()

	c := a.tint.Current()
	a.renderer.DrawPoints(
		a.controller.Count(),
		a.viewProj(),
		float32(c.R), float32(c.G), float32(c.B),
		a.cfg.Particles.Size,
	)
}
