// pkg/render/engo/scene.go
package engo

import (
	"bytes"
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/flight"
	"github.com/opd-ai/go-solarflight/pkg/input"
	"github.com/opd-ai/go-solarflight/pkg/logging"
)

const fontURL = "gomono.ttf"

// Driver is the simulation surface the scene steps once per engine frame
type Driver interface {
	Tick(dt float64) flight.Frame
	Render(r entity.Renderer)
	SetViewport(width, height float64)
}

// SceneOptions configures a SolarScene
type SceneOptions struct {
	Simulation Driver
	Keyboard   *input.Keyboard
	Look       *input.MouseLookSource
	Bindings   input.Bindings
	Unit       string
	Logger     *logging.Logger
}

// SolarScene drives the simulation from the engo main loop
type SolarScene struct {
	opts   SceneOptions
	logger *logging.Logger

	renderer *EngoRenderer
	camera   *CameraSystem
	input    *InputSystem
	hud      *HUDSystem

	quit func()
}

// NewSolarScene creates the scene
func NewSolarScene(opts SceneOptions) *SolarScene {
	if opts.Logger == nil {
		opts.Logger = logging.NewDiscardLogger()
	}
	if opts.Bindings == nil {
		opts.Bindings = input.DefaultBindings()
	}
	return &SolarScene{opts: opts, logger: opts.Logger, quit: engo.Exit}
}

// Type implements engo.Scene
func (s *SolarScene) Type() string {
	return "SolarScene"
}

// Preload implements engo.Scene
func (s *SolarScene) Preload() {
	if err := engo.Files.LoadReaderData(fontURL, bytes.NewReader(gomono.TTF)); err != nil {
		s.logger.Error(context.Background(), "Failed to load HUD font", err)
	}
}

// Setup implements engo.Scene
func (s *SolarScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)

	render := &common.RenderSystem{}
	world.AddSystem(render)

	s.camera = NewCameraSystem(s.opts.Simulation.SetViewport)
	s.input = NewInputSystem(s.opts.Keyboard, s.opts.Look, s.opts.Bindings)
	s.input.Register()
	s.hud = NewHUDSystem(render, s.font(), s.opts.Unit)
	s.renderer = NewEngoRenderer(render, NewTextureCache(), s.hud)
	s.renderer.SetPointer(s.input.Pointer)

	world.AddSystem(s.input)
	world.AddSystem(s.camera)
	world.AddSystem(&stepSystem{scene: s})
	world.AddSystem(s.hud)

	s.logger.Info(context.Background(), "Scene ready", "keys", s.input.Keys())
}

func (s *SolarScene) font() *common.Font {
	f := &common.Font{URL: fontURL, FG: hudColor, Size: 16}
	if err := f.CreatePreloaded(); err != nil {
		s.logger.Warn(context.Background(), "HUD text disabled", "error", err)
		return nil
	}
	return f
}

// Step advances the simulation by dt seconds and draws the frame
func (s *SolarScene) Step(dt float32) {
	frame := s.opts.Simulation.Tick(float64(dt))
	s.opts.Simulation.Render(s.renderer)
	if frame.Quit {
		s.logger.Info(context.Background(), "Quit requested")
		s.quit()
	}
}

// Exit implements engo.Exiter
func (s *SolarScene) Exit() {
	s.logger.Info(context.Background(), "Window closed")
}

// stepSystem runs the simulation between input and HUD
type stepSystem struct {
	scene *SolarScene
}

func (st *stepSystem) Priority() int { return 20 }

func (st *stepSystem) Remove(ecs.BasicEntity) {}

func (st *stepSystem) Update(dt float32) {
	st.scene.Step(dt)
}

// WindowOptions sizes the window
type WindowOptions struct {
	Title      string
	Width      int
	Height     int
	FPS        int
	Fullscreen bool
}

// Run opens the window and blocks until it closes
func Run(scene *SolarScene, opts WindowOptions) {
	engo.Run(engo.RunOptions{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Fullscreen: opts.Fullscreen,
		FPSLimit:   opts.FPS,
		VSync:      true,
	}, scene)
}
