// Shape Lab - a graphical tool for inspecting and sampling morph shapes.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"

	"github.com/Faultbox/morphfield/internal/engine/debug"
	"github.com/Faultbox/morphfield/internal/engine/mesh"
	"github.com/Faultbox/morphfield/internal/engine/sampler"
	"github.com/Faultbox/morphfield/pkg/formats"
)

// sampleDiagonal matches the experience's shape normalization scale.
const sampleDiagonal = 340.0

const (
	minSamples = 1000
	maxSamples = 60000
)

func main() {
	runtime.LockOSThread()

	objPath := flag.String("obj", "", "Path to an OBJ file to open at startup")
	samples := flag.Int("samples", 15000, "Initial surface sample count")
	flag.Parse()

	app := NewApp(int32(*samples))
	defer app.Close()

	if *objPath != "" {
		if err := app.OpenOBJ(*objPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error opening OBJ: %v\n", err)
		}
	}

	app.Run()
}

// labShape is one inspectable shape: its source mesh and the current sample.
type labShape struct {
	name  string
	mesh  *mesh.Mesh
	cloud []float32
}

// App represents the Shape Lab application state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	shapes   []*labShape
	selected int
	samples  int32

	viewer *Viewer
	shots  *debug.ScreenshotCapture

	// File dialog state (must be processed on the main thread)
	pendingOBJPath string

	statusMsg  string
	statusTime time.Time

	lastMousePos imgui.Vec2
}

// NewApp creates the application with the built-in shapes loaded.
func NewApp(samples int32) *App {
	if samples < minSamples {
		samples = minSamples
	}
	if samples > maxSamples {
		samples = maxSamples
	}

	app := &App{
		samples: samples,
		shots:   debug.NewScreenshotCapture("screenshots", "shapelab"),
	}

	for _, b := range []struct {
		name string
		m    *mesh.Mesh
	}{
		{"sphere", mesh.Sphere(1, 48, 64)},
		{"torus", mesh.Torus(1, 0.38, 48, 64)},
		{"cube", mesh.Box(1, 1, 1)},
		{"spikes", mesh.Spikes(1, 48, 64)},
	} {
		b.m.Normalize(sampleDiagonal)
		app.shapes = append(app.shapes, &labShape{name: b.name, mesh: b.m})
	}

	var err error
	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		panic(fmt.Sprintf("failed to create backend: %v", err))
	}

	app.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	app.backend.CreateWindow("Shape Lab", 1100, 720)

	if err := gl.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: OpenGL init failed: %v\n", err)
	}

	app.viewer, err = NewViewer(768, 640, maxSamples)
	if err != nil {
		panic(fmt.Sprintf("failed to create viewer: %v", err))
	}

	app.resample()
	return app
}

// Close cleans up resources.
func (app *App) Close() {
	if app.viewer != nil {
		app.viewer.Destroy()
		app.viewer = nil
	}
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

// OpenOBJ loads an OBJ file as a new shape and selects it.
func (app *App) OpenOBJ(path string) error {
	obj, err := formats.ParseOBJFile(path)
	if err != nil {
		return err
	}

	m := &mesh.Mesh{
		Name:     obj.Name,
		Vertices: obj.Positions,
		Indices:  obj.Indices,
	}
	m.Normalize(sampleDiagonal)

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	app.shapes = append(app.shapes, &labShape{name: name, mesh: m})
	app.selected = len(app.shapes) - 1
	app.resample()

	app.setStatus(fmt.Sprintf("Loaded %s: %d triangles", name, m.TriangleCount()))
	return nil
}

// openFileDialog shows a native file dialog to select an OBJ file.
// The result is handed to the main thread via pendingOBJPath.
func (app *App) openFileDialog() {
	go func() {
		filename, err := dialog.File().
			Filter("Wavefront OBJ", "obj").
			Filter("All Files", "*").
			Title("Open OBJ Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				fmt.Fprintf(os.Stderr, "File dialog error: %v\n", err)
			}
			return
		}

		app.pendingOBJPath = filename
	}()
}

// resample regenerates the selected shape's point cloud at the current
// sample count and pushes it to the viewer.
func (app *App) resample() {
	s := app.shapes[app.selected]
	s.cloud = sampler.Sample(s.mesh, int(app.samples))
	app.viewer.SetCloud(s.cloud)
}

func (app *App) setStatus(msg string) {
	app.statusMsg = msg
	app.statusTime = time.Now()
}

// render draws one frame of UI.
func (app *App) render() {
	// Process deferred file dialog result on the main thread.
	if app.pendingOBJPath != "" {
		path := app.pendingOBJPath
		app.pendingOBJPath = ""
		if err := app.OpenOBJ(path); err != nil {
			app.setStatus(fmt.Sprintf("Error: %v", err))
		}
	}

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	leftPanelWidth := float32(280)
	statusBarHeight := float32(30)
	contentHeight := workSize.Y - statusBarHeight

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Shapes", nil, flags) {
		app.renderShapePanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X-leftPanelWidth, contentHeight))
	if imgui.BeginV("Viewer", nil, flags) {
		app.renderViewerPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()
}

// renderShapePanel renders the shape list, sampling controls, and stats.
func (app *App) renderShapePanel() {
	if imgui.Button("Open OBJ...") {
		app.openFileDialog()
	}
	imgui.Separator()

	for i, s := range app.shapes {
		if imgui.SelectableBoolV(s.name, i == app.selected, 0, imgui.NewVec2(0, 0)) {
			app.selected = i
			app.resample()
		}
	}

	imgui.Separator()
	imgui.Text("Samples:")
	imgui.SetNextItemWidth(-1)
	if imgui.SliderIntV("##Samples", &app.samples, minSamples, maxSamples, "%d", imgui.SliderFlagsNone) {
		app.resample()
	}

	s := app.shapes[app.selected]
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Vertices: %d", s.mesh.VertexCount()))
	imgui.Text(fmt.Sprintf("Triangles: %d", s.mesh.TriangleCount()))
	imgui.Text(fmt.Sprintf("Surface area: %.0f", s.mesh.SurfaceArea()))
	imgui.Text(fmt.Sprintf("Diagonal: %.0f", s.mesh.Diagonal()))
	if s.cloud == nil {
		imgui.TextDisabled("No sampleable surface")
	} else {
		imgui.Text(fmt.Sprintf("Points: %d", len(s.cloud)/3))
	}

	imgui.Separator()
	if imgui.Button("Export PNG") {
		app.exportView()
	}
}

// renderViewerPanel renders the offscreen 3D view with drag/zoom handling.
func (app *App) renderViewerPanel() {
	textureID := app.viewer.Render()

	viewerW, viewerH := app.viewer.Size()
	aspectRatio := float32(viewerW) / float32(viewerH)

	avail := imgui.ContentRegionAvail()
	displayW := avail.X
	displayH := displayW / aspectRatio
	if displayH > avail.Y {
		displayH = avail.Y
		displayW = displayH * aspectRatio
	}

	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(displayW, displayH),
		imgui.NewVec2(0, 1), // UV flipped: GL renders bottom-up
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.15, 0.15, 0.15, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	if imgui.IsItemHovered() {
		mousePos := imgui.MousePos()
		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			app.viewer.HandleMouseDrag(mousePos.X-app.lastMousePos.X, mousePos.Y-app.lastMousePos.Y)
		}
		app.lastMousePos = mousePos

		wheel := imgui.CurrentIO().MouseWheel()
		if wheel != 0 {
			app.viewer.HandleMouseWheel(wheel)
		}
	}
}

func (app *App) renderStatusBar() {
	if app.statusMsg != "" && time.Since(app.statusTime) < 5*time.Second {
		imgui.Text(app.statusMsg)
		return
	}
	s := app.shapes[app.selected]
	imgui.Text(fmt.Sprintf("%s | %d points | drag to orbit, wheel to zoom", s.name, int(app.samples)))
}

// exportView saves the current viewer framebuffer as a PNG.
func (app *App) exportView() {
	w, h := app.viewer.Size()
	path, err := app.shots.CaptureFromPixels(app.viewer.ReadPixels(), int(w), int(h))
	if err != nil {
		app.setStatus(fmt.Sprintf("Export failed: %v", err))
		return
	}
	app.setStatus("Saved " + path)
}
