// pkg/validation/validation_test.go
package validation

import (
	"net"
	"strings"
	"testing"
	"time"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestLimiter(max int, window time.Duration) (*RateLimiter, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	rl := NewRateLimiter(max, window)
	rl.now = clock.now
	return rl, clock
}

func TestRateLimiter_Burst(t *testing.T) {
	rl, _ := newTestLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Expected the fourth request to be limited")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("Expected another client to have its own bucket")
	}
}

func TestRateLimiter_Refill(t *testing.T) {
	rl, clock := newTestLimiter(6, time.Minute)
	for i := 0; i < 6; i++ {
		rl.Allow("a")
	}

	clock.advance(5 * time.Second)
	if rl.Allow("a") {
		t.Error("Expected half a token not to be enough")
	}
	clock.advance(10 * time.Second)
	if !rl.Allow("a") {
		t.Error("Expected a token after a sixth of the window")
	}
}

func TestRateLimiter_PrunesIdleClients(t *testing.T) {
	rl, clock := newTestLimiter(1, time.Minute)
	rl.Allow("a")
	rl.Allow("b")
	if rl.Clients() != 2 {
		t.Fatalf("Expected 2 clients, got %d", rl.Clients())
	}

	clock.advance(2 * time.Minute)
	rl.Allow("c")
	if rl.Clients() != 1 {
		t.Errorf("Expected idle clients to be pruned, got %d", rl.Clients())
	}
}

func TestRateLimiter_Disabled(t *testing.T) {
	rl := NewRateLimiter(0, time.Minute)
	for i := 0; i < 100; i++ {
		if !rl.Allow("a") {
			t.Fatal("Expected a zero limit to allow everything")
		}
	}
	var nilLimiter *RateLimiter
	if !nilLimiter.Allow("a") {
		t.Error("Expected a nil limiter to allow everything")
	}
}

func TestSanitizeUser(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"Plain", "alice", "alice"},
		{"Trimmed", "  bob ", "bob"},
		{"Control characters", "ev\x1b[2Jil", "ev[2Jil"},
		{"Empty", "", "anonymous"},
		{"Only controls", "\x00\x07", "anonymous"},
		{"Invalid UTF-8", "a\xffb", "a?b"},
		{"Long", strings.Repeat("x", 40), strings.Repeat("x", 31) + "~"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeUser(tt.in); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name             string
		cols, rows       int
		wantCols, wantRs int
		wantErr          bool
	}{
		{"Normal", 80, 24, 80, 24, false},
		{"Too narrow", 10, 24, 0, 0, true},
		{"Too short", 80, 4, 0, 0, true},
		{"Clamped", 1000, 400, MaxWindowCols, MaxWindowRows, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, rows, err := ValidateWindow(tt.cols, tt.rows)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Expected error %v, got %v", tt.wantErr, err)
			}
			if cols != tt.wantCols || rows != tt.wantRs {
				t.Errorf("Expected %dx%d, got %dx%d", tt.wantCols, tt.wantRs, cols, rows)
			}
		})
	}
}

func TestRemoteHost(t *testing.T) {
	tcp := &net.TCPAddr{IP: net.ParseIP("192.0.2.7"), Port: 51234}
	if got := RemoteHost(tcp); got != "192.0.2.7" {
		t.Errorf("Expected 192.0.2.7, got %q", got)
	}
	if got := RemoteHost(nil); got != "" {
		t.Errorf("Expected empty host, got %q", got)
	}
}
