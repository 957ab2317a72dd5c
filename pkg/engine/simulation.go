// pkg/engine/simulation.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/asset"
	"github.com/opd-ai/go-solarflight/pkg/config"
	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/event"
	"github.com/opd-ai/go-solarflight/pkg/flight"
	"github.com/opd-ai/go-solarflight/pkg/hud"
	"github.com/opd-ai/go-solarflight/pkg/input"
	"github.com/opd-ai/go-solarflight/pkg/logging"
	"github.com/opd-ai/go-solarflight/pkg/metrics"
	"github.com/opd-ai/go-solarflight/pkg/orbit"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// Status is the lifecycle stage of a simulation
type Status int

const (
	StatusIdle Status = iota
	StatusRunning
	StatusStopped
)

// ErrParentFailed marks a moon omitted because its planet never loaded
var ErrParentFailed = errors.New("parent body failed to load")

// Options configures a Simulation. Source is required; everything else has
// a usable zero value.
type Options struct {
	Config   *config.Config
	Source   input.Source
	Resolver asset.Resolver
	Camera   hud.Camera
	Logger   *logging.Logger
	Metrics  *metrics.Collector
	Bus      *event.Bus
}

// Progress counts body asset resolutions
type Progress struct {
	Expected int
	Loaded   int
	Failed   int
}

// Ready reports whether every body has either loaded or failed
func (p Progress) Ready() bool {
	return p.Loaded+p.Failed >= p.Expected
}

// View is what a renderer needs beyond the entities themselves
type View struct {
	Pose      physics.Pose
	Camera    hud.Camera
	Telemetry hud.Telemetry
	Resources map[entity.ID]*asset.Resource
}

// ViewRenderer is a renderer that draws from the craft's point of view
type ViewRenderer interface {
	entity.Renderer
	SetView(view View)
}

// Simulation ties the flight controller, orbit animator, HUD and asset
// loading together. Tick and Render must be called from one goroutine;
// Progress and Status may be read from any.
type Simulation struct {
	cfg        *config.Config
	bus        *event.Bus
	controller *flight.Controller
	animator   *orbit.Animator
	clock      *orbit.Clock
	hud        *hud.HUD
	shake      flight.Shake
	ship       *entity.Ship
	loader     *asset.Loader
	metrics    *metrics.Collector
	logger     *logging.Logger

	system    []*entity.CelestialBody
	bodies    map[entity.ID]*entity.CelestialBody
	resources map[entity.ID]*asset.Resource
	waiting   []*entity.CelestialBody
	failed    map[entity.ID]error
	elapsed   float64

	mu       sync.RWMutex
	status   Status
	progress Progress
	subs     []*event.Subscription
}

// NewSimulation builds the scene described by the configuration. Bodies are
// not animated until Start has requested their assets and Tick has seen them
// resolve.
func NewSimulation(opts Options) (*Simulation, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	bus := opts.Bus
	if bus == nil {
		bus = event.NewEventBus()
	}
	resolver := opts.Resolver
	if resolver == nil {
		resolver = asset.NewResolver(cfg.Render.TextureDir, cfg.Render.TextureURL, logger)
	}
	camera := opts.Camera
	if camera.Width == 0 || camera.Height == 0 {
		camera = hud.NewCamera(float64(cfg.Render.WindowWidth), float64(cfg.Render.WindowHeight))
	}
	if cfg.Render.FOV > 0 {
		camera.FOV = cfg.Render.FOV
	}

	controller, err := flight.NewController(opts.Source, flightOptions(cfg), bus)
	if err != nil {
		return nil, fmt.Errorf("failed to create flight controller: %w", err)
	}

	epoch, err := cfg.Time.EpochTime()
	if err != nil {
		return nil, fmt.Errorf("failed to parse epoch: %w", err)
	}
	clock := orbit.NewClock(epoch)
	animator := orbit.NewAnimator(orbit.TimeScale{
		DaysPerSecond:     cfg.Time.DaysPerSecond,
		OrbitAcceleration: cfg.Time.OrbitAcceleration,
		SpinAcceleration:  cfg.Time.SpinAcceleration,
	})
	animator.SetClock(clock)

	shake := flight.DefaultShake()
	if cfg.Flight.ShakeThreshold > 0 {
		shake.Threshold = cfg.Flight.ShakeThreshold
	}

	state := controller.State()
	ship := entity.NewShip(entity.GenerateID(), "craft", state.Position())
	ship.CockpitVisible = controller.CockpitVisible()

	s := &Simulation{
		cfg:        cfg,
		bus:        bus,
		controller: controller,
		animator:   animator,
		clock:      clock,
		hud:        hud.New(camera),
		shake:      shake,
		ship:       ship,
		loader:     asset.NewLoader(resolver, asset.DefaultWorkers, logger),
		metrics:    opts.Metrics,
		logger:     logger,
		system:     config.BuildSystem(cfg.ResolvedBodies()),
		bodies:     make(map[entity.ID]*entity.CelestialBody),
		resources:  make(map[entity.ID]*asset.Resource),
		failed:     make(map[entity.ID]error),
	}

	for _, root := range s.system {
		root.Walk(func(b *entity.CelestialBody) {
			s.bodies[b.ID] = b
		})
	}
	s.progress.Expected = len(s.bodies)

	for _, bc := range cfg.ResolvedBelts() {
		animator.RegisterBelt(bc.Build())
	}

	if sub := opts.Metrics.Subscribe(bus); sub != nil {
		s.subs = append(s.subs, sub)
	}
	return s, nil
}

func flightOptions(cfg *config.Config) flight.Options {
	opts := flight.DefaultOptions()
	if len(cfg.Flight.Tiers) > 0 {
		tiers := make([]flight.Tier, len(cfg.Flight.Tiers))
		for i, t := range cfg.Flight.Tiers {
			tiers[i] = flight.Tier{Name: t.Name, Magnitude: t.Magnitude}
		}
		opts.Tiers = tiers
	}
	if cfg.Flight.RotationRate > 0 {
		opts.RotationRate = cfg.Flight.RotationRate
	}
	opts.StartPosition = mgl64.Vec3(cfg.ResolvedStart())
	opts.CockpitShown = cfg.Flight.CockpitShown
	return opts
}

// Start requests the asset of every body. It may be called once.
func (s *Simulation) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.status != StatusIdle {
		s.mu.Unlock()
		return fmt.Errorf("simulation already started")
	}
	s.status = StatusRunning
	s.mu.Unlock()

	for _, root := range s.system {
		var err error
		root.Walk(func(b *entity.CelestialBody) {
			if err == nil {
				err = s.loader.Load(s.request(b))
			}
		})
		if err != nil {
			return fmt.Errorf("failed to request assets: %w", err)
		}
	}

	s.logger.Info(ctx, "Simulation started",
		"bodies", len(s.bodies),
		"belts", len(s.animator.Belts()),
		"scale", s.cfg.Scale,
	)
	s.bus.Publish(&event.BaseEvent{EventType: event.SimulationStarted, Source: s})
	return nil
}

// request builds the asset request for a body. Stars glow with the
// configured sun intensity.
func (s *Simulation) request(b *entity.CelestialBody) asset.Request {
	req := asset.RequestFor(b)
	if b.Kind == entity.Star {
		req.Intensity = s.cfg.Render.SunIntensity
	}
	return req
}

// Stop cancels outstanding asset loads and waits for them to exit
func (s *Simulation) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.status == StatusStopped {
		s.mu.Unlock()
		return nil
	}
	s.status = StatusStopped
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	err := s.loader.Shutdown(ctx)
	s.bus.Publish(&event.BaseEvent{EventType: event.SimulationStopped, Source: s})
	for _, sub := range subs {
		sub.Cancel()
	}
	s.logger.Info(ctx, "Simulation stopped")
	return err
}

// Tick advances the simulation by dt seconds: newly resolved bodies are
// registered, the craft flies, bodies move, the cockpit shakes and the HUD
// is republished.
func (s *Simulation) Tick(dt float64) flight.Frame {
	start := time.Now()
	if dt < 0 {
		dt = 0
	}

	s.drainAssets()

	frame := s.controller.Update(dt)
	s.animator.Advance(dt)

	state := s.controller.State()
	s.elapsed += dt
	s.syncShip(state)

	s.hud.Publish(state, s.ship.CockpitVisible, s.clock.JulianDate(), s.animator.Bodies())
	s.metrics.ObserveFrame(time.Since(start), state.Speed, state.TierIndex)
	return frame
}

func (s *Simulation) syncShip(state flight.State) {
	s.ship.Position = state.Position()
	s.ship.Orientation = state.Pose.Orientation
	s.ship.Speed = state.Speed
	s.ship.GearName = state.Tier.Name
	s.ship.CockpitVisible = s.controller.CockpitVisible()
	s.ship.CockpitOffset = s.shake.Apply(s.ship.CockpitOffset, s.ship.CockpitBase, state.Speed, s.elapsed)
}

// drainAssets registers every body whose asset has resolved. A moon whose
// planet is still loading waits for it; one whose planet failed is dropped.
func (s *Simulation) drainAssets() {
	results := s.loader.Drain()
	if len(results) == 0 && len(s.waiting) == 0 {
		return
	}

	for _, r := range results {
		body, ok := s.bodies[r.Request.BodyID]
		if !ok {
			continue
		}
		if r.Err != nil {
			s.fail(body, r.Err)
			continue
		}
		s.resources[body.ID] = r.Resource
		s.waiting = append(s.waiting, body)
	}

	for progress := true; progress; {
		progress = false
		remaining := s.waiting[:0]
		for _, body := range s.waiting {
			if body.Parent != nil && s.failed[body.Parent.ID] != nil {
				delete(s.resources, body.ID)
				s.fail(body, fmt.Errorf("failed to load %s: %w", body.Name, ErrParentFailed))
				progress = true
				continue
			}
			err := s.animator.Register(body)
			if errors.Is(err, orbit.ErrParentNotRegistered) {
				remaining = append(remaining, body)
				continue
			}
			if err != nil {
				s.fail(body, err)
				progress = true
				continue
			}
			s.loaded(body)
			progress = true
		}
		s.waiting = remaining
	}
}

func (s *Simulation) loaded(body *entity.CelestialBody) {
	s.mu.Lock()
	s.progress.Loaded++
	s.mu.Unlock()

	s.metrics.BodyLoaded()
	s.bus.Publish(event.NewBodyEvent(s, uint64(body.ID), body.Name, nil))
	s.logger.Debug(context.Background(), "Body loaded", "body", body.Name)
}

func (s *Simulation) fail(body *entity.CelestialBody, err error) {
	s.failed[body.ID] = err
	s.mu.Lock()
	s.progress.Failed++
	s.mu.Unlock()

	s.metrics.AssetFailed()
	s.bus.Publish(event.NewBodyEvent(s, uint64(body.ID), body.Name, err))
	s.logger.Error(context.Background(), "Body omitted", err, "body", body.Name)
}

// Render draws one frame: belts, bodies, then the craft
func (s *Simulation) Render(r entity.Renderer) {
	if vr, ok := r.(ViewRenderer); ok {
		vr.SetView(View{
			Pose:      s.controller.State().Pose,
			Camera:    s.hud.Camera(),
			Telemetry: s.hud.Telemetry(),
			Resources: s.resources,
		})
	}

	r.Clear()
	for _, belt := range s.animator.Belts() {
		belt.Render(r)
	}
	for _, body := range s.animator.Bodies() {
		body.Render(r)
	}
	s.ship.Render(r)
	r.Present()
}

// SetViewport resizes the projection used for labels
func (s *Simulation) SetViewport(width, height float64) {
	s.hud.SetViewport(width, height)
}

// Progress returns the asset resolution counts
func (s *Simulation) Progress() Progress {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// Status returns the lifecycle stage
func (s *Simulation) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.status
}

// Failed returns the error that omitted a body, if any
func (s *Simulation) Failed(id entity.ID) error {
	return s.failed[id]
}

// Bus returns the event bus
func (s *Simulation) Bus() *event.Bus { return s.bus }

// HUD returns the telemetry publisher
func (s *Simulation) HUD() *hud.HUD { return s.hud }

// Ship returns the craft entity
func (s *Simulation) Ship() *entity.Ship { return s.ship }

// Controller returns the flight controller
func (s *Simulation) Controller() *flight.Controller { return s.controller }

// Animator returns the orbit animator
func (s *Simulation) Animator() *orbit.Animator { return s.animator }

// Clock returns the simulated calendar
func (s *Simulation) Clock() *orbit.Clock { return s.clock }

// Body looks up a configured body by name, loaded or not
func (s *Simulation) Body(name string) (*entity.CelestialBody, bool) {
	for _, b := range s.bodies {
		if b.Name == name {
			return b, true
		}
	}
	return nil, false
}

// Resource returns the resolved visual of a loaded body
func (s *Simulation) Resource(id entity.ID) (*asset.Resource, bool) {
	r, ok := s.resources[id]
	return r, ok
}
