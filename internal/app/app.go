// Package app runs the stiffness viewer: window, render loop, prediction
// intake and the hover HUD.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/fibroview/fibroview/internal/config"
	"github.com/fibroview/fibroview/internal/engine/field"
	"github.com/fibroview/fibroview/internal/engine/holo"
	"github.com/fibroview/fibroview/internal/engine/input"
	"github.com/fibroview/fibroview/internal/engine/mesh"
	"github.com/fibroview/fibroview/internal/engine/picking"
	"github.com/fibroview/fibroview/internal/engine/query"
	"github.com/fibroview/fibroview/internal/engine/scene"
	"github.com/fibroview/fibroview/internal/engine/window"
	"github.com/fibroview/fibroview/internal/logger"
	"github.com/fibroview/fibroview/internal/prediction"
	"github.com/fibroview/fibroview/pkg/math"
)

const baseTitle = "FibroView"

// App is the viewer instance.
type App struct {
	cfg     *config.Config
	running bool

	window  *window.Window
	input   *input.Input
	overlay *scene.OverlayRenderer
	camera  *orbitCamera

	hotspots []field.Hotspot
	watcher  *prediction.Watcher

	// Current prediction state, updated at frame boundaries.
	globalStiffness float32
	risk            string

	// Pointer state for orbit drag and hover queries.
	dragging       bool
	lastMouseX     int
	lastMouseY     int
	hoverX, hoverY int
}

// New creates the viewer. The OpenGL context is created here; New must run on
// the main thread.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:             cfg,
		camera:          newOrbitCamera(),
		globalStiffness: 3.0, // neutral until the first prediction arrives
	}

	var err error
	a.window, err = window.New(window.Config{
		Title:      baseTitle,
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	if err := gl.Init(); err != nil {
		a.window.Close()
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.02, 0.03, 0.06, 1.0)

	a.overlay, err = scene.NewOverlayRenderer()
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("creating overlay renderer: %w", err)
	}

	m, err := loadMesh(cfg)
	if err != nil {
		a.overlay.Destroy()
		a.window.Close()
		return nil, err
	}
	a.overlay.SetMesh(m)

	a.hotspots = hotspotsFromConfig(cfg)

	client := prediction.NewClient(cfg.Prediction.URL, cfg.Prediction.Timeout)
	a.watcher = prediction.NewWatcher(client, cfg.Prediction.PollInterval)

	a.input = input.New()

	return a, nil
}

// loadMesh resolves the configured mesh source, falling back to the
// procedural capsule when the GLB asset is absent or unreadable.
func loadMesh(cfg *config.Config) (*mesh.Mesh, error) {
	var sources []mesh.Source
	if cfg.Mesh.GLBPath != "" {
		sources = append(sources, mesh.GLBSource{Path: cfg.Mesh.GLBPath})
	}
	sources = append(sources, mesh.CapsuleSource{})

	var lastErr error
	for _, src := range sources {
		m, err := src.Load()
		if err != nil {
			logger.Warn("mesh source failed",
				zap.String("source", src.Name()),
				zap.Error(err),
			)
			lastErr = err
			continue
		}
		logger.Info("mesh loaded",
			zap.String("source", src.Name()),
			zap.Int("vertices", m.VertexCount()),
		)
		return m, nil
	}
	return nil, fmt.Errorf("no usable mesh source: %w", lastErr)
}

// hotspotsFromConfig converts configured hotspots, or returns the built-in
// reference table when none are configured.
func hotspotsFromConfig(cfg *config.Config) []field.Hotspot {
	if len(cfg.Hotspots) == 0 {
		return field.DefaultHotspots()
	}
	out := make([]field.Hotspot, len(cfg.Hotspots))
	for i, h := range cfg.Hotspots {
		out[i] = field.Hotspot{
			Label:             h.Label,
			Position:          math.Vec3{X: h.Position[0], Y: h.Position[1], Z: h.Position[2]},
			RelativeStiffness: h.RelativeStiffness,
			InfluenceRadius:   h.InfluenceRadius,
		}
	}
	return out
}

// Run starts the render loop and blocks until quit.
func (a *App) Run() error {
	a.running = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.watcher.Run(ctx)

	start := time.Now()
	logger.Info("starting render loop")

	for a.running {
		if a.input.Update() {
			break
		}
		a.handleEvents()

		// Prediction intake is a discrete event committed here, at the
		// frame boundary. Each update carries the complete new state.
		select {
		case u := <-a.watcher.Updates():
			a.applyUpdate(u)
		default:
		}

		a.render(float32(time.Since(start).Seconds()))
		a.window.SwapBuffers()
	}

	logger.Info("render loop stopped")
	return nil
}

func (a *App) handleEvents() {
	for _, e := range a.input.Events() {
		switch e.Type {
		case input.EventQuit:
			a.running = false
		case input.EventWindowResize:
			gl.Viewport(0, 0, int32(e.Width), int32(e.Height))
		case input.EventKeyDown:
			if e.Key == sdl.SCANCODE_ESCAPE {
				a.running = false
			}
		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = true
				a.lastMouseX, a.lastMouseY = e.MouseX, e.MouseY
			}
		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				a.dragging = false
			}
		case input.EventMouseMove:
			if a.dragging {
				a.camera.rotate(float32(e.MouseX-a.lastMouseX), float32(e.MouseY-a.lastMouseY))
				a.lastMouseX, a.lastMouseY = e.MouseX, e.MouseY
			}
			a.hoverX, a.hoverY = e.MouseX, e.MouseY
		case input.EventMouseWheel:
			a.camera.zoom(float32(e.Scroll))
		}
	}
}

// applyUpdate recomputes and commits the stiffness field for a new
// prediction. A rejected field leaves the previous one rendering.
func (a *App) applyUpdate(u prediction.Update) {
	a.globalStiffness = u.Stiffness
	a.risk = u.Risk

	m := a.overlay.Mesh()
	if m == nil {
		return
	}

	labels := make([]string, len(u.Lesions))
	for i, l := range u.Lesions {
		labels[i] = l.Label
	}
	active := field.ActiveForLesions(a.hotspots, labels)

	f := field.ComputeField(m.Positions, active, u.Stiffness)
	if err := a.overlay.SetField(f); err != nil {
		return
	}

	logger.Debug("stiffness field committed",
		zap.Float32("global_kpa", u.Stiffness),
		zap.String("risk", u.Risk),
		zap.Int("active_hotspots", len(active)),
	)
}

func (a *App) render(elapsed float32) {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	vp := a.camera.viewProj(a.window.AspectRatio())
	ctx := holo.RenderContext{
		MVP:             vp, // model transform is identity; mesh stays in local space
		Model:           math.Identity(),
		CameraPos:       a.camera.eye(),
		Time:            elapsed,
		GlobalStiffness: a.globalStiffness,
		GlitchAmp:       a.cfg.Overlay.GlitchAmp,
	}
	a.overlay.Render(&ctx)

	a.updateHUD(vp)
}

// updateHUD resolves the hover query and reflects it in the window title.
func (a *App) updateHUD(viewProj math.Mat4) {
	w, h := a.window.GetSize()
	ray := picking.ScreenToRay(
		float32(a.hoverX), float32(a.hoverY),
		float32(w), float32(h),
		viewProj.Inverse(),
	)

	face, hit := ray.PickMesh(a.overlay.Mesh())
	if !hit {
		a.window.SetTitle(a.idleTitle())
		return
	}

	res, ok := query.Resolve(face, a.overlay.Field())
	if !ok {
		// Mesh is hit but no field committed yet; hide the readout.
		a.window.SetTitle(a.idleTitle())
		return
	}

	a.window.SetTitle(fmt.Sprintf("%s — %.1f kPa (%s)", baseTitle, res.Stiffness, res.Grade))
}

func (a *App) idleTitle() string {
	if a.risk == "" {
		return baseTitle
	}
	return fmt.Sprintf("%s — risk: %s", baseTitle, a.risk)
}

// Close releases all resources.
func (a *App) Close() {
	if a.overlay != nil {
		a.overlay.Destroy()
	}
	if a.window != nil {
		a.window.Close()
	}
}
