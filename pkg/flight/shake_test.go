// pkg/flight/shake_test.go
package flight

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestShake_Apply(t *testing.T) {
	base := mgl64.Vec3{0, -2, -2}
	moved := mgl64.Vec3{0.01, -1.99, -2}
	s := DefaultShake()

	tests := []struct {
		name    string
		offset  mgl64.Vec3
		speed   float64
		elapsed float64
		changed bool
		want    mgl64.Vec3
	}{
		{"Stationary resets", moved, 0, 3, false, base},
		{"Below threshold keeps offset", moved, 50, 3, false, moved},
		{"At threshold keeps offset", moved, 100, 3, false, moved},
		{"Above threshold shakes", base, LightSpeed, 1.25, true, mgl64.Vec3{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Apply(tt.offset, base, tt.speed, tt.elapsed)
			if tt.changed {
				strength := math.Log(tt.speed-95) * 0.001
				dx := math.Sin(tt.elapsed*3*tt.speed/50) * strength
				dy := math.Cos(tt.elapsed*2*tt.speed/50) * strength
				want := mgl64.Vec3{base[0] + dx, base[1] + dy, base[2]}
				if !got.ApproxEqualThreshold(want, 1e-12) {
					t.Errorf("Expected %v, got %v", want, got)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestShake_LowThresholdStaysFinite(t *testing.T) {
	s := Shake{Threshold: 10, Amplitude: 0.001}
	got := s.Apply(mgl64.Vec3{}, mgl64.Vec3{}, 50, 1)
	for i, v := range got {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("Component %d is not finite: %v", i, v)
		}
	}
}
