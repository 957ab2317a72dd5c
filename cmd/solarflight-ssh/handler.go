// cmd/solarflight-ssh/handler.go
package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/ssh"

	"github.com/opd-ai/go-solarflight/pkg/config"
	"github.com/opd-ai/go-solarflight/pkg/logging"
	"github.com/opd-ai/go-solarflight/pkg/metrics"
	"github.com/opd-ai/go-solarflight/pkg/session"
	"github.com/opd-ai/go-solarflight/pkg/validation"
)

// flightHandler runs one independent flythrough per SSH session
type flightHandler struct {
	cfg     *config.Config
	metrics *metrics.Collector
	logger  *logging.Logger
	limiter *validation.RateLimiter

	mu      sync.Mutex
	max     int
	cancels map[string]context.CancelFunc
}

func newFlightHandler(cfg *config.Config, collector *metrics.Collector, logger *logging.Logger) *flightHandler {
	return &flightHandler{
		cfg:     cfg,
		metrics: collector,
		logger:  logger,
		limiter: validation.NewRateLimiter(cfg.Server.ConnectsPerMinute, time.Minute),
		max:     cfg.Server.MaxSessions,
		cancels: make(map[string]context.CancelFunc),
	}
}

// acquire reserves a slot for id. A non-positive maximum means unlimited.
func (h *flightHandler) acquire(id string, cancel context.CancelFunc) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.max > 0 && len(h.cancels) >= h.max {
		return false
	}
	h.cancels[id] = cancel
	return true
}

func (h *flightHandler) release(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.cancels, id)
}

func (h *flightHandler) active() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.cancels)
}

// closeAll ends every running flythrough
func (h *flightHandler) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, cancel := range h.cancels {
		cancel()
	}
}

// windowSize converts a pty window, clamping oversized ones
func windowSize(w ssh.Window) (session.Size, error) {
	cols, rows, err := validation.ValidateWindow(w.Width, w.Height)
	if err != nil {
		return session.Size{}, err
	}
	return session.Size{Width: cols, Height: rows}, nil
}

func (h *flightHandler) middleware(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		pty, winCh, ok := sess.Pty()
		if !ok {
			fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
			return
		}

		user := validation.SanitizeUser(sess.User())
		host := validation.RemoteHost(sess.RemoteAddr())
		id := logging.GenerateCorrelationID()
		ctx, cancel := context.WithCancel(logging.WithCorrelationID(sess.Context(), id))
		defer cancel()

		if !h.limiter.Allow(host) {
			fmt.Fprintln(sess, "Too many connections, try again in a minute.")
			h.logger.Warn(ctx, "Session rate limited", "user", user, "remote", host)
			return
		}
		size, err := windowSize(pty.Window)
		if err != nil {
			fmt.Fprintf(sess, "Error: %v\n", err)
			return
		}
		if !h.acquire(id, cancel) {
			fmt.Fprintln(sess, "Server is full, try again later.")
			h.logger.Warn(ctx, "Session rejected", "user", user, "max_sessions", h.max)
			return
		}
		defer h.release(id)

		h.metrics.SessionOpened()
		defer h.metrics.SessionClosed()

		resize := make(chan session.Size, 1)
		go func() {
			defer close(resize)
			for win := range winCh {
				size, err := windowSize(win)
				if err != nil {
					continue
				}
				select {
				case resize <- size:
				case <-ctx.Done():
					return
				}
			}
		}()

		h.logger.Info(ctx, "Session started",
			"user", user,
			"remote", host,
			"terminal", pty.Term,
			"width", size.Width,
			"height", size.Height,
		)

		s, err := session.New(session.Options{
			Config:  h.cfg,
			In:      sess,
			Out:     sess,
			Size:    size,
			Resize:  resize,
			Metrics: h.metrics,
			Logger:  h.logger,
		})
		if err != nil {
			h.logger.Error(ctx, "Failed to create session", err, "user", user)
			return
		}
		if err := s.Run(ctx); err != nil {
			h.logger.Error(ctx, "Session failed", err, "user", user)
		}

		h.logger.Info(ctx, "Session ended", "user", user, "frames", s.Frames())
		next(sess)
	}
}
