// Package loop drives a simulation at a fixed frame rate until it is asked
// to quit or its context ends.
package loop

import (
	"context"
	"time"

	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/flight"
	"github.com/opd-ai/go-solarflight/pkg/logging"
)

// DefaultFPS is the frame rate used when none is configured
const DefaultFPS = 60

// MaxFrameTime caps the elapsed time handed to one frame, in seconds
const MaxFrameTime = 0.1

// Stepper is the part of the simulation the loop drives
type Stepper interface {
	Tick(dt float64) flight.Frame
	Render(r entity.Renderer)
}

// Loop ticks and renders a simulation once per frame
type Loop struct {
	sim      Stepper
	renderer entity.Renderer
	interval time.Duration
	logger   *logging.Logger
	now      func() time.Time

	frames uint64
}

// New creates a loop running at fps frames per second. A non-positive fps
// uses DefaultFPS and a nil logger discards output.
func New(sim Stepper, renderer entity.Renderer, fps int, logger *logging.Logger) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Loop{
		sim:      sim,
		renderer: renderer,
		interval: time.Second / time.Duration(fps),
		logger:   logger,
		now:      time.Now,
	}
}

// Delta returns the seconds between two frames, capped at MaxFrameTime.
// A clock going backwards yields zero.
func Delta(prev, now time.Time) float64 {
	dt := now.Sub(prev).Seconds()
	if dt < 0 {
		return 0
	}
	if dt > MaxFrameTime {
		return MaxFrameTime
	}
	return dt
}

// Step runs one frame
func (l *Loop) Step(dt float64) flight.Frame {
	frame := l.sim.Tick(dt)
	l.sim.Render(l.renderer)
	l.frames++
	return frame
}

// Frames returns how many frames have run
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Run blocks until the input asks to quit or ctx is done. It returns
// ctx.Err() when the context ended the loop and nil on quit.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.logger.Info(ctx, "Frame loop started", "interval", l.interval)
	last := l.now()
	for {
		select {
		case <-ctx.Done():
			l.logger.Info(ctx, "Frame loop stopped", "frames", l.frames)
			return ctx.Err()
		case <-ticker.C:
			now := l.now()
			frame := l.Step(Delta(last, now))
			last = now
			if frame.Quit {
				l.logger.Info(ctx, "Quit requested", "frames", l.frames)
				return nil
			}
		}
	}
}
