package orbit

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/entity"
	"github.com/opd-ai/go-solarflight/pkg/physics"
)

func newSystem() (sun, earth, moon *entity.CelestialBody) {
	sun = entity.NewCelestialBody(entity.GenerateID(), "sun", entity.Star)
	sun.RotationPeriod = 25

	earth = entity.NewCelestialBody(entity.GenerateID(), "earth", entity.Planet)
	earth.OrbitRadius = 150
	earth.OrbitalPeriod = 365
	earth.RotationPeriod = 1
	earth.AxialTilt = 23.5 * math.Pi / 180

	moon = entity.NewCelestialBody(entity.GenerateID(), "moon", entity.Moon)
	moon.OrbitRadius = 10
	moon.OrbitalPeriod = 27
	earth.AddMoon(moon)
	return sun, earth, moon
}

func TestAnimator_SunStaysAtOrigin(t *testing.T) {
	sun, _, _ := newSystem()
	a := NewAnimator(DefaultTimeScale())
	if err := a.Register(sun); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	steps := []float64{0, 0.016, 1, 365, 1e6, 0.5}
	for _, dt := range steps {
		a.Advance(dt)
		if sun.Position != (mgl64.Vec3{}) {
			t.Fatalf("Expected sun at origin after dt=%f, got %v", dt, sun.Position)
		}
		if sun.OrbitalAngle != 0 {
			t.Fatalf("Expected sun orbital angle 0, got %f", sun.OrbitalAngle)
		}
	}
	if sun.RotationAngle == 0 {
		t.Error("Expected the sun to keep spinning")
	}
}

func TestAnimator_HalfYear(t *testing.T) {
	_, earth, _ := newSystem()
	a := NewAnimator(DefaultTimeScale())
	if err := a.Register(earth); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	a.Advance(182.5)

	if math.Abs(earth.OrbitalAngle-math.Pi) > 1e-9 {
		t.Errorf("Expected orbital angle pi, got %f", earth.OrbitalAngle)
	}
	if !physics.ApproxEqual(earth.Position, mgl64.Vec3{-150, 0, 0}, 1e-9) {
		t.Errorf("Expected earth at (-150,0,0), got %v", earth.Position)
	}
}

func TestAnimator_MoonIsAdditive(t *testing.T) {
	_, earth, moon := newSystem()
	a := NewAnimator(DefaultTimeScale())

	if err := a.Register(moon); !errors.Is(err, ErrParentNotRegistered) {
		t.Fatalf("Expected ErrParentNotRegistered, got %v", err)
	}
	if a.IsRegistered(moon) {
		t.Fatal("Expected moon to stay unregistered")
	}

	if err := a.Register(earth); err != nil {
		t.Fatalf("Register earth failed: %v", err)
	}
	if err := a.Register(moon); err != nil {
		t.Fatalf("Register moon failed: %v", err)
	}

	for _, dt := range []float64{3, 7.5, 40, 0.1} {
		a.Advance(dt)
		expected := earth.Position.Add(Offset(moon.OrbitRadius, moon.OrbitalAngle))
		if !physics.ApproxEqual(moon.Position, expected, 1e-9) {
			t.Errorf("Expected moon at planet+offset %v, got %v", expected, moon.Position)
		}
		if d := physics.Distance(moon.Position, earth.Position); math.Abs(d-10) > 1e-9 {
			t.Errorf("Expected moon 10 units from earth, got %f", d)
		}
	}
}

func TestAnimator_RegisterTwiceIsNoop(t *testing.T) {
	_, earth, _ := newSystem()
	a := NewAnimator(DefaultTimeScale())
	_ = a.Register(earth)
	_ = a.Register(earth)

	if len(a.Bodies()) != 1 {
		t.Fatalf("Expected one registered body, got %d", len(a.Bodies()))
	}
	a.Advance(365.0 / 4)
	if math.Abs(earth.OrbitalAngle-math.Pi/2) > 1e-9 {
		t.Errorf("Expected a single advance per frame, got angle %f", earth.OrbitalAngle)
	}
}

func TestAnimator_RegisterNil(t *testing.T) {
	a := NewAnimator(DefaultTimeScale())
	if err := a.Register(nil); err == nil {
		t.Error("Expected error registering nil body")
	}
}

func TestAnimator_UnregisteredBodiesDoNotMove(t *testing.T) {
	_, earth, _ := newSystem()
	a := NewAnimator(DefaultTimeScale())
	a.Advance(100)

	if earth.OrbitalAngle != 0 || earth.Position != (mgl64.Vec3{}) {
		t.Errorf("Expected unregistered body untouched, got angle %f position %v",
			earth.OrbitalAngle, earth.Position)
	}
}

func TestAnimator_TimeScale(t *testing.T) {
	tests := []struct {
		name      string
		scale     TimeScale
		wantOrbit float64
		wantSpin  float64
	}{
		{
			name:      "default",
			scale:     DefaultTimeScale(),
			wantOrbit: 2 * math.Pi * 2 / 365,
			wantSpin:  2 * math.Pi * 2,
		},
		{
			name:      "ten_days_per_second_orbit_x2",
			scale:     TimeScale{DaysPerSecond: 10, OrbitAcceleration: 2, SpinAcceleration: 1},
			wantOrbit: 2 * math.Pi * 40 / 365,
			wantSpin:  2 * math.Pi * 20,
		},
		{
			name:      "acceleration_clamped",
			scale:     TimeScale{DaysPerSecond: 1, OrbitAcceleration: 50, SpinAcceleration: -3},
			wantOrbit: 2 * math.Pi * 20 / 365,
			wantSpin:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, earth, _ := newSystem()
			a := NewAnimator(tt.scale)
			_ = a.Register(earth)
			a.Advance(2)

			if math.Abs(earth.OrbitalAngle-tt.wantOrbit) > 1e-9 {
				t.Errorf("Expected orbital angle %f, got %f", tt.wantOrbit, earth.OrbitalAngle)
			}
			if math.Abs(earth.RotationAngle-tt.wantSpin) > 1e-9 {
				t.Errorf("Expected rotation angle %f, got %f", tt.wantSpin, earth.RotationAngle)
			}
		})
	}
}

func TestAnimator_NegativeDeltaIgnored(t *testing.T) {
	_, earth, _ := newSystem()
	a := NewAnimator(DefaultTimeScale())
	_ = a.Register(earth)
	a.Advance(-5)
	if earth.OrbitalAngle != 0 {
		t.Errorf("Expected no movement for negative dt, got %f", earth.OrbitalAngle)
	}
}

func TestAnimator_BeltsAndClock(t *testing.T) {
	belt := entity.NewAsteroidBelt(entity.GenerateID(), "belt", 4, 130, 160, 100, 1)
	a := NewAnimator(TimeScale{DaysPerSecond: 2, OrbitAcceleration: 1, SpinAcceleration: 1})
	clock := NewClock(DefaultEpoch)
	a.SetClock(clock)
	a.RegisterBelt(belt)
	a.RegisterBelt(belt)

	if len(a.Belts()) != 1 {
		t.Fatalf("Expected one belt, got %d", len(a.Belts()))
	}

	a.Advance(25)
	if math.Abs(belt.OrbitalAngle-math.Pi) > 1e-9 {
		t.Errorf("Expected belt half-turn, got %f", belt.OrbitalAngle)
	}
	if clock.ElapsedDays() != 50 {
		t.Errorf("Expected 50 simulated days, got %f", clock.ElapsedDays())
	}
}

func TestAnimator_ClockIgnoresAcceleration(t *testing.T) {
	tests := []struct {
		name  string
		orbit float64
		spin  float64
	}{
		{"orbit paused", 0, 1},
		{"orbit accelerated", 4, 1},
		{"all paused", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAnimator(TimeScale{DaysPerSecond: 3, OrbitAcceleration: tt.orbit, SpinAcceleration: tt.spin})
			clock := NewClock(DefaultEpoch)
			a.SetClock(clock)
			start := clock.JulianDate()

			a.Advance(2)
			if got := clock.JulianDate() - start; math.Abs(got-6) > 1e-9 {
				t.Errorf("Expected the date to advance 6 days, got %v", got)
			}
		})
	}
}

func TestAnimator_FacingFollowsTilt(t *testing.T) {
	_, earth, _ := newSystem()
	a := NewAnimator(DefaultTimeScale())
	_ = a.Register(earth)
	a.Advance(0.3)

	axis := earth.Orientation.Rotate(physics.AxisUp)
	if axis.Sub(earth.SpinAxis()).Len() > 1e-9 {
		t.Errorf("Expected orientation to spin about tilted axis %v, got %v", earth.SpinAxis(), axis)
	}
}

func TestClock(t *testing.T) {
	clock := NewClock(DefaultEpoch)

	if math.Abs(clock.JulianDate()-2451545.0) > 1e-6 {
		t.Errorf("Expected J2000 Julian date 2451545.0, got %f", clock.JulianDate())
	}

	clock.Advance(1)
	clock.Advance(-10)
	if clock.ElapsedDays() != 1 {
		t.Errorf("Expected 1 elapsed day, got %f", clock.ElapsedDays())
	}

	expected := DefaultEpoch.Add(24 * time.Hour)
	if diff := clock.Time().Sub(expected); diff > time.Second || diff < -time.Second {
		t.Errorf("Expected %v, got %v", expected, clock.Time())
	}
}
