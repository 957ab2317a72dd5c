// cmd/solarflight-ssh/handler_test.go
package main

import (
	"context"
	"testing"

	"github.com/charmbracelet/ssh"

	"github.com/opd-ai/go-solarflight/pkg/config"
	"github.com/opd-ai/go-solarflight/pkg/logging"
)

func newTestHandler(max int) *flightHandler {
	cfg := config.DefaultConfig()
	cfg.Server.MaxSessions = max
	return newFlightHandler(cfg, nil, logging.NewDiscardLogger())
}

func TestFlightHandler_SessionLimit(t *testing.T) {
	h := newTestHandler(2)
	noop := func() {}

	if !h.acquire("a", noop) || !h.acquire("b", noop) {
		t.Fatal("Expected the first two sessions to be accepted")
	}
	if h.acquire("c", noop) {
		t.Error("Expected a third session to be rejected")
	}

	h.release("a")
	if !h.acquire("c", noop) {
		t.Error("Expected a freed slot to be reusable")
	}
	if h.active() != 2 {
		t.Errorf("Expected 2 active sessions, got %d", h.active())
	}
}

func TestFlightHandler_Unlimited(t *testing.T) {
	h := newTestHandler(0)
	for _, id := range []string{"a", "b", "c", "d"} {
		if !h.acquire(id, func() {}) {
			t.Errorf("Expected %s to be accepted without a limit", id)
		}
	}
}

func TestFlightHandler_CloseAll(t *testing.T) {
	h := newTestHandler(0)
	ctxA, cancelA := context.WithCancel(context.Background())
	ctxB, cancelB := context.WithCancel(context.Background())
	h.acquire("a", cancelA)
	h.acquire("b", cancelB)

	h.closeAll()

	for name, ctx := range map[string]context.Context{"a": ctxA, "b": ctxB} {
		if ctx.Err() == nil {
			t.Errorf("Expected session %s to be cancelled", name)
		}
	}
}

func TestWindowSize(t *testing.T) {
	got, err := windowSize(ssh.Window{Width: 132, Height: 43})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if got.Width != 132 || got.Height != 43 {
		t.Errorf("Expected 132x43, got %dx%d", got.Width, got.Height)
	}
	if _, err := windowSize(ssh.Window{Width: 5, Height: 2}); err == nil {
		t.Error("Expected a tiny window to be rejected")
	}
}

func TestFlightHandler_ConnectRate(t *testing.T) {
	h := newTestHandler(0)
	allowed := 0
	for i := 0; i < 20; i++ {
		if h.limiter.Allow("192.0.2.1") {
			allowed++
		}
	}
	if want := h.cfg.Server.ConnectsPerMinute; allowed != want {
		t.Errorf("Expected %d connects per minute, got %d", want, allowed)
	}
}
