// cmd/solarflight/app.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/EngoEngine/engo"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/opd-ai/go-solarflight/pkg/audio"
	"github.com/opd-ai/go-solarflight/pkg/config"
	"github.com/opd-ai/go-solarflight/pkg/engine"
	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/health"
	"github.com/opd-ai/go-solarflight/pkg/hud"
	"github.com/opd-ai/go-solarflight/pkg/input"
	"github.com/opd-ai/go-solarflight/pkg/logging"
	"github.com/opd-ai/go-solarflight/pkg/loop"
	"github.com/opd-ai/go-solarflight/pkg/metrics"
	"github.com/opd-ai/go-solarflight/pkg/render"
	engorender "github.com/opd-ai/go-solarflight/pkg/render/engo"
	"github.com/opd-ai/go-solarflight/pkg/session"
)

// maxMemoryMB is the heap size above which the process reports unhealthy
const maxMemoryMB = 500

// app holds what every front end shares
type app struct {
	cfg     *config.Config
	logger  *logging.Logger
	metrics *metrics.Collector
}

func (a *app) simulation(source input.Source, camera hud.Camera) (*engine.Simulation, error) {
	return engine.NewSimulation(engine.Options{
		Config:  a.cfg,
		Source:  source,
		Camera:  camera,
		Logger:  a.logger,
		Metrics: a.metrics,
	})
}

func (a *app) sources(keyboard *input.Keyboard, mouseLook bool) (input.Source, *input.MouseLookSource) {
	bindings := a.cfg.Input.ResolvedBindings()
	if !mouseLook {
		return input.NewKeyboardSource(keyboard, bindings), nil
	}
	look := input.NewMouseLookSource(keyboard, bindings, a.cfg.Flight.MouseSensitivity)
	return look, look
}

// attach starts the health and metrics endpoints and the cockpit audio for
// sim. The returned func undoes both.
func (a *app) attach(ctx context.Context, sim *engine.Simulation) func() {
	var cockpit *audio.Cockpit
	if a.cfg.Render.Audio {
		cockpit = audio.Attach(ctx, sim.Bus(), a.logger)
	}
	srv := a.serveObservability(ctx, sim)

	return func() {
		cockpit.Close()
		if srv == nil {
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Error(ctx, "Observability server shutdown failed", err)
		}
	}
}

func (a *app) serveObservability(ctx context.Context, sim *engine.Simulation) *http.Server {
	addr := a.cfg.Server.MetricsAddr
	if addr == "" {
		return nil
	}

	checker := health.NewHealthChecker()
	checker.AddCheck(health.NewAssetsHealthCheck(func() (int, int) {
		p := sim.Progress()
		return p.Loaded + p.Failed, p.Expected
	}))
	checker.AddCheck(health.NewSimulationHealthCheck(func() bool {
		return sim.Status() == engine.StatusRunning
	}))
	checker.AddCheck(health.NewMemoryHealthCheck(maxMemoryMB, nil))

	srv := &http.Server{
		Addr:         addr,
		Handler:      health.NewMux(checker, a.metrics.Handler()),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	go func() {
		a.logger.Info(ctx, "Starting observability server", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error(ctx, "Observability server failed", err)
		}
	}()
	return srv
}

// play starts sim and drives it until quit or cancellation
func (a *app) play(ctx context.Context, sim *engine.Simulation, r entity.Renderer) error {
	if err := sim.Start(ctx); err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	detach := a.attach(ctx, sim)
	defer detach()
	defer a.stop(sim)

	err := loop.New(sim, r, a.cfg.Render.FPS, a.logger).Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

func (a *app) stop(sim *engine.Simulation) {
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := sim.Stop(ctx); err != nil {
		a.logger.Error(ctx, "Failed to stop simulation", err)
	}
}

// runTerminal draws with tcell and reads keys and mouse from it
func (a *app) runTerminal(ctx context.Context) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	keyboard := input.NewKeyboard(a.cfg.Input.KeyHold)
	source, look := a.sources(keyboard, a.cfg.Input.MouseLook)
	if look != nil {
		screen.EnableMouse()
	}

	w, h := screen.Size()
	sim, err := a.simulation(source, render.TerminalCamera(w, h))
	if err != nil {
		return err
	}

	adapter := input.NewTcellAdapter(keyboard, look)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
				w, h := screen.Size()
				sim.SetViewport(float64(w), float64(h))
			}
			adapter.Handle(ev)
		}
	}()

	renderer := render.NewTerminalRenderer(render.NewTcellSurface(screen), a.cfg.Unit())
	return a.play(ctx, sim, renderer)
}

// sizePollInterval is how often the ansi front end checks the terminal size
const sizePollInterval = 500 * time.Millisecond

// runANSI puts stdin in raw mode and writes escape sequences to stdout
func (a *app) runANSI(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	w, h := render.StdoutSize(a.cfg.Render.TerminalWidth, a.cfg.Render.TerminalHeight)
	resize := make(chan session.Size, 1)
	go pollSize(ctx, resize, session.Size{Width: w, Height: h})

	s, err := session.New(session.Options{
		Config:  a.cfg,
		In:      os.Stdin,
		Out:     os.Stdout,
		Size:    session.Size{Width: w, Height: h},
		Resize:  resize,
		Metrics: a.metrics,
		Logger:  a.logger,
	})
	if err != nil {
		return err
	}
	detach := a.attach(ctx, s.Simulation())
	defer detach()
	return s.Run(ctx)
}

func pollSize(ctx context.Context, out chan<- session.Size, last session.Size) {
	ticker := time.NewTicker(sizePollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w, h := render.StdoutSize(last.Width, last.Height)
			if w == last.Width && h == last.Height {
				continue
			}
			last = session.Size{Width: w, Height: h}
			select {
			case out <- last:
			default:
			}
		}
	}
}

// runEngo opens a window. engo owns the main loop until the window closes.
func (a *app) runEngo(ctx context.Context, fullscreen bool) error {
	keyboard := input.NewKeyboard(a.cfg.Input.KeyHold)
	source, look := a.sources(keyboard, a.cfg.Input.MouseLook)

	width, height := a.cfg.Render.WindowWidth, a.cfg.Render.WindowHeight
	sim, err := a.simulation(source, hud.NewCamera(float64(width), float64(height)))
	if err != nil {
		return err
	}
	if err := sim.Start(ctx); err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	detach := a.attach(ctx, sim)
	defer detach()
	defer a.stop(sim)

	scene := engorender.NewSolarScene(engorender.SceneOptions{
		Simulation: sim,
		Keyboard:   keyboard,
		Look:       look,
		Bindings:   a.cfg.Input.ResolvedBindings(),
		Unit:       a.cfg.Unit(),
		Logger:     a.logger,
	})

	go func() {
		<-ctx.Done()
		engo.Exit()
	}()

	engorender.Run(scene, engorender.WindowOptions{
		Title:      "Solar Flight",
		Width:      width,
		Height:     height,
		FPS:        a.cfg.Render.FPS,
		Fullscreen: fullscreen,
	})
	return nil
}

// runNull flies headless, which is useful for soak tests of the loaders and
// the observability endpoints
func (a *app) runNull(ctx context.Context, d time.Duration) error {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	keyboard := input.NewKeyboard(a.cfg.Input.KeyHold)
	source, _ := a.sources(keyboard, false)

	sim, err := a.simulation(source, hud.Camera{})
	if err != nil {
		return err
	}
	return a.play(ctx, sim, render.NewNullRenderer(a.logger))
}
