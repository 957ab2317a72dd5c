// Package session runs one terminal flythrough over a byte stream: key
// presses come in, ANSI frames go out. The SSH server runs one session per
// connection and the local ansi front end runs one over stdin and stdout.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/opd-ai/go-solarflight/pkg/asset"
	"github.com/opd-ai/go-solarflight/pkg/config"
	"github.com/opd-ai/go-solarflight/pkg/engine"
	"github.com/opd-ai/go-solarflight/pkg/input"
	"github.com/opd-ai/go-solarflight/pkg/logging"
	"github.com/opd-ai/go-solarflight/pkg/loop"
	"github.com/opd-ai/go-solarflight/pkg/metrics"
	"github.com/opd-ai/go-solarflight/pkg/render"
)

// stopTimeout bounds how long a finished session waits for asset loads
const stopTimeout = 5 * time.Second

// Size is a terminal size in cells
type Size struct {
	Width  int
	Height int
}

// Options configures a Session. In and Out are required.
type Options struct {
	Config   *config.Config
	In       io.Reader
	Out      io.Writer
	Size     Size
	Resize   <-chan Size
	Resolver asset.Resolver
	Metrics  *metrics.Collector
	Logger   *logging.Logger
}

// Session owns one simulation and its terminal
type Session struct {
	sim      *engine.Simulation
	surface  *render.ANSISurface
	loop     *loop.Loop
	stream   *input.Stream
	keyboard *input.Keyboard
	in       io.Reader
	resize   <-chan Size
	logger   *logging.Logger
}

// New builds a session. Nothing runs until Run.
func New(opts Options) (*Session, error) {
	if opts.In == nil || opts.Out == nil {
		return nil, fmt.Errorf("session needs an input and an output")
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	size := opts.Size
	if size.Width <= 0 || size.Height <= 0 {
		size = Size{cfg.Render.TerminalWidth, cfg.Render.TerminalHeight}
	}

	keyboard := input.NewKeyboard(cfg.Input.KeyHold)
	source := input.NewKeyboardSource(keyboard, cfg.Input.ResolvedBindings())

	sim, err := engine.NewSimulation(engine.Options{
		Config:   cfg,
		Source:   source,
		Resolver: opts.Resolver,
		Camera:   render.TerminalCamera(size.Width, size.Height),
		Logger:   logger,
		Metrics:  opts.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create simulation: %w", err)
	}
	sim.SetViewport(float64(size.Width), float64(size.Height))

	surface := render.NewANSISurface(opts.Out, size.Width, size.Height)
	renderer := render.NewTerminalRenderer(surface, cfg.Unit())

	return &Session{
		sim:      sim,
		surface:  surface,
		loop:     loop.New(sim, renderer, cfg.Render.FPS, logger),
		stream:   input.NewStream(keyboard),
		keyboard: keyboard,
		in:       opts.In,
		resize:   opts.Resize,
		logger:   logger,
	}, nil
}

// Simulation returns the session's simulation
func (s *Session) Simulation() *engine.Simulation {
	return s.sim
}

// Frames returns how many frames were drawn
func (s *Session) Frames() uint64 {
	return s.loop.Frames()
}

// Resize adapts the frame and the label projection to a new terminal size
func (s *Session) Resize(size Size) {
	if size.Width <= 0 || size.Height <= 0 {
		return
	}
	s.surface.SetSize(size.Width, size.Height)
	s.sim.SetViewport(float64(size.Width), float64(size.Height))
}

// Run plays the flythrough until the user quits, the input ends or ctx is
// cancelled. Only start-up and output failures are reported.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := s.sim.Start(ctx); err != nil {
		return fmt.Errorf("failed to start simulation: %w", err)
	}
	defer func() {
		stopCtx, stop := context.WithTimeout(context.Background(), stopTimeout)
		defer stop()
		if err := s.sim.Stop(stopCtx); err != nil {
			s.logger.Error(ctx, "Failed to stop simulation", err)
		}
	}()

	if err := s.surface.Init(); err != nil {
		return fmt.Errorf("failed to prepare terminal: %w", err)
	}
	defer s.surface.Close()

	go func() {
		defer cancel()
		if err := s.stream.Run(ctx, s.in); err != nil && ctx.Err() == nil {
			s.logger.Warn(ctx, "Input stream ended", "error", err)
		}
	}()
	if s.resize != nil {
		go s.watchResize(ctx)
	}

	err := s.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (s *Session) watchResize(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case size, ok := <-s.resize:
			if !ok {
				return
			}
			s.Resize(size)
		}
	}
}
