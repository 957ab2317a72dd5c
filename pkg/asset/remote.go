// pkg/asset/remote.go
package asset

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/opd-ai/go-solarflight/pkg/logging"
)

// Breaker defaults for remote texture fetches
const (
	DefaultMaxConsecutiveFails = 3
	DefaultBreakerTimeout      = 30 * time.Second
	DefaultFetchTimeout        = 10 * time.Second
)

// BreakerSettings configures when an HTTPResolver stops asking the server
type BreakerSettings struct {
	MaxConsecutiveFails uint32
	// Timeout is how long the breaker stays open before probing again
	Timeout time.Duration
}

// HTTPResolver fetches <BaseURL>/<name>.png. Consecutive failures open a
// circuit breaker so a dead texture server fails the remaining bodies fast.
// With a Fallback, failed or short-circuited requests resolve there instead.
type HTTPResolver struct {
	baseURL  string
	client   *http.Client
	fallback Resolver
	breaker  *gobreaker.CircuitBreaker
	logger   *logging.Logger
}

// NewHTTPResolver creates a resolver for baseURL. fallback and logger may be nil.
func NewHTTPResolver(baseURL string, fallback Resolver, settings BreakerSettings, logger *logging.Logger) *HTTPResolver {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if settings.MaxConsecutiveFails == 0 {
		settings.MaxConsecutiveFails = DefaultMaxConsecutiveFails
	}
	if settings.Timeout <= 0 {
		settings.Timeout = DefaultBreakerTimeout
	}

	r := &HTTPResolver{
		baseURL:  strings.TrimRight(baseURL, "/"),
		client:   &http.Client{Timeout: DefaultFetchTimeout},
		fallback: fallback,
		logger:   logger,
	}
	r.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "texture-server",
		Timeout: settings.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= settings.MaxConsecutiveFails
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errTextureMissing)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Info(context.Background(), "Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String(),
			)
		},
	})
	return r
}

// errTextureMissing is a 404: the server is healthy, the body has no texture
var errTextureMissing = errors.New("texture not found")

// Resolve implements Resolver
func (r *HTTPResolver) Resolve(ctx context.Context, req Request) (*Resource, error) {
	out, err := r.breaker.Execute(func() (interface{}, error) {
		return r.fetch(ctx, req)
	})
	if err == nil {
		return out.(*Resource), nil
	}
	if r.fallback != nil && ctx.Err() == nil {
		r.logger.Debug(ctx, "Texture unavailable, using fallback",
			"body", req.Name,
			"error", err.Error(),
			"state", r.breaker.State().String(),
		)
		return r.fallback.Resolve(ctx, req)
	}
	return nil, fmt.Errorf("failed to fetch texture for %s: %w", req.Name, err)
}

func (r *HTTPResolver) fetch(ctx context.Context, req Request) (*Resource, error) {
	url := r.baseURL + "/" + req.Name + ".png"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errTextureMissing
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
	return decodeTexture(resp.Body, req, url)
}

// State reports the breaker state
func (r *HTTPResolver) State() gobreaker.State {
	return r.breaker.State()
}

// NewResolver picks the resolver chain for the configured texture sources.
// Remote textures take precedence over local ones, and both fall back to
// procedural sprites.
func NewResolver(dir, baseURL string, logger *logging.Logger) Resolver {
	var resolver Resolver = ProceduralResolver{}
	if dir != "" {
		resolver = FileResolver{Dir: dir, Fallback: resolver}
	}
	if baseURL != "" {
		resolver = NewHTTPResolver(baseURL, resolver, BreakerSettings{}, logger)
	}
	return resolver
}
