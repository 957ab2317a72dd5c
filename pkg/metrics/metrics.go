// Package metrics exposes flythrough counters and gauges to Prometheus.
package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/opd-ai/go-solarflight/pkg/event"
)

// Collector bundles the flythrough metrics. A nil *Collector is valid and
// records nothing.
type Collector struct {
	gatherer prometheus.Gatherer

	FrameDuration prometheus.Histogram
	Speed         prometheus.Gauge
	Gear          prometheus.Gauge
	GearShifts    *prometheus.CounterVec
	BodiesLoaded  prometheus.Counter
	AssetFailures prometheus.Counter
	Sessions      prometheus.Gauge
}

// NewCollector registers the metrics on reg, defaulting to the global
// registry when nil. Registering twice on the same registry returns the
// already registered metrics.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	frame, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "solarflight_frame_duration_seconds",
		Help:    "Time spent simulating one frame.",
		Buckets: []float64{0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066},
	}), "solarflight_frame_duration_seconds")
	if err != nil {
		return nil, err
	}
	speed, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solarflight_craft_speed",
		Help: "Current craft speed in scene units per second.",
	}), "solarflight_craft_speed")
	if err != nil {
		return nil, err
	}
	gear, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solarflight_gear_index",
		Help: "Index of the selected gearbox tier.",
	}), "solarflight_gear_index")
	if err != nil {
		return nil, err
	}
	shifts, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "solarflight_gear_shifts_total",
		Help: "Gear shifts, labeled by direction.",
	}, []string{"direction"}), "solarflight_gear_shifts_total")
	if err != nil {
		return nil, err
	}
	loaded, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solarflight_bodies_loaded_total",
		Help: "Bodies registered for animation after their asset resolved.",
	}), "solarflight_bodies_loaded_total")
	if err != nil {
		return nil, err
	}
	failures, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "solarflight_asset_failures_total",
		Help: "Bodies omitted because their asset failed to load.",
	}), "solarflight_asset_failures_total")
	if err != nil {
		return nil, err
	}
	sessions, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "solarflight_ssh_sessions",
		Help: "Active SSH flythrough sessions.",
	}), "solarflight_ssh_sessions")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:      gatherer,
		FrameDuration: frame,
		Speed:         speed,
		Gear:          gear,
		GearShifts:    shifts,
		BodiesLoaded:  loaded,
		AssetFailures: failures,
		Sessions:      sessions,
	}, nil
}

// ObserveFrame records one simulated frame
func (c *Collector) ObserveFrame(d time.Duration, speed float64, gear int) {
	if c == nil {
		return
	}
	c.FrameDuration.Observe(d.Seconds())
	c.Speed.Set(speed)
	c.Gear.Set(float64(gear))
}

// BodyLoaded counts a registered body
func (c *Collector) BodyLoaded() {
	if c == nil {
		return
	}
	c.BodiesLoaded.Inc()
}

// AssetFailed counts an omitted body
func (c *Collector) AssetFailed() {
	if c == nil {
		return
	}
	c.AssetFailures.Inc()
}

// SessionOpened and SessionClosed track SSH sessions
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.Sessions.Inc()
}

func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.Sessions.Dec()
}

// Subscribe counts gear shifts published on bus
func (c *Collector) Subscribe(bus *event.Bus) *event.Subscription {
	if c == nil || bus == nil {
		return nil
	}
	return bus.Subscribe(event.GearShifted, func(e event.Event) {
		ge, ok := e.(*event.GearEvent)
		if !ok {
			return
		}
		direction := "up"
		if ge.Shift < 0 {
			direction = "down"
		}
		c.GearShifts.WithLabelValues(direction).Inc()
	})
}

// Handler serves the registry in the Prometheus text format
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

func register[T prometheus.Collector](reg prometheus.Registerer, collector T, name string) (T, error) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return collector, nil
}
