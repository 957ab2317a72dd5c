// pkg/asset/loader.go
package asset

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/opd-ai/go-solarflight/pkg/logging"
)

// DefaultWorkers bounds concurrent resolutions
const DefaultWorkers = 4

// resultBuffer is how many results may wait for a drain before workers block
const resultBuffer = 256

// ErrLoaderClosed is returned by Load after Shutdown
var ErrLoaderClosed = errors.New("asset loader is shut down")

// Result is the outcome of one request. Exactly one of Resource and Err is set.
type Result struct {
	Request  Request
	Resource *Resource
	Err      error
}

// Loader resolves requests on background goroutines, at most a fixed number
// at a time, and queues the outcomes for the frame loop to drain.
type Loader struct {
	resolver Resolver
	sem      *semaphore.Weighted
	workers  int64
	results  chan Result
	logger   *logging.Logger

	inFlight  int64
	failed    int64
	completed int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	closed bool
}

// NewLoader creates a loader. workers <= 0 selects DefaultWorkers and a nil
// logger discards output.
func NewLoader(resolver Resolver, workers int, logger *logging.Logger) *Loader {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Loader{
		resolver: resolver,
		sem:      semaphore.NewWeighted(int64(workers)),
		workers:  int64(workers),
		results:  make(chan Result, resultBuffer),
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Load starts resolving req and returns immediately
func (l *Loader) Load(req Request) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrLoaderClosed
	}
	l.wg.Add(1)
	atomic.AddInt64(&l.inFlight, 1)
	l.mu.Unlock()

	go l.run(req)
	return nil
}

func (l *Loader) run(req Request) {
	defer l.wg.Done()
	defer atomic.AddInt64(&l.inFlight, -1)

	result := Result{Request: req}
	if err := l.sem.Acquire(l.ctx, 1); err != nil {
		result.Err = fmt.Errorf("failed to load %s: %w", req.Name, err)
	} else {
		result.Resource, result.Err = l.resolve(req)
		l.sem.Release(1)
	}

	if result.Err == nil && result.Resource == nil {
		result.Err = fmt.Errorf("failed to load %s: resolver returned nothing", req.Name)
	}
	if result.Err != nil {
		atomic.AddInt64(&l.failed, 1)
	}
	atomic.AddInt64(&l.completed, 1)

	select {
	case l.results <- result:
	case <-l.ctx.Done():
	}
}

func (l *Loader) resolve(req Request) (res *Resource, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to load %s: resolver panic: %v", req.Name, r)
			l.logger.Error(l.ctx, "Asset resolver panic", err, "body", req.Name)
		}
	}()

	res, err = l.resolver.Resolve(l.ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", req.Name, err)
	}
	if res != nil && res.BodyID == 0 {
		res.BodyID = req.BodyID
	}
	return res, nil
}

// Results exposes the result queue
func (l *Loader) Results() <-chan Result {
	return l.results
}

// Drain returns every queued result without blocking
func (l *Loader) Drain() []Result {
	var out []Result
	for {
		select {
		case r, ok := <-l.results:
			if !ok {
				return out
			}
			out = append(out, r)
		default:
			return out
		}
	}
}

// InFlight is the number of requests not yet queued
func (l *Loader) InFlight() int64 {
	return atomic.LoadInt64(&l.inFlight)
}

// Stats reports completed and failed totals
func (l *Loader) Stats() (completed, failed int64) {
	return atomic.LoadInt64(&l.completed), atomic.LoadInt64(&l.failed)
}

// Workers returns the concurrency bound
func (l *Loader) Workers() int {
	return int(l.workers)
}

// Shutdown cancels outstanding work and waits for workers to exit or ctx to
// expire. Queued results are discarded.
func (l *Loader) Shutdown(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return nil
	}
	l.closed = true
	l.mu.Unlock()

	l.cancel()

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		close(l.results)
		l.logger.Debug(ctx, "Asset loader stopped")
		return nil
	case <-ctx.Done():
		remaining := l.InFlight()
		l.logger.Warn(ctx, "Asset loader shutdown timed out", "remaining", remaining)
		return fmt.Errorf("shutdown timeout: %d asset loads still running", remaining)
	}
}
