// pkg/hud/pick_test.go
package hud

import "testing"

func TestPicker_Pick(t *testing.T) {
	p := &Picker{Aspect: 0.5, Slack: 1}
	p.Add(Target{Name: "sun", X: 40, Y: 12, Radius: 5, Distance: 200})
	p.Add(Target{Name: "earth", X: 42, Y: 12, Radius: 1, Distance: 90})
	p.Add(Target{Name: "mars", X: 70, Y: 3, Radius: 0.2, Distance: 300})

	tests := []struct {
		name  string
		x, y  float64
		want  string
		found bool
	}{
		{"Nearer disc wins", 42, 12, "earth", true},
		{"Only the far disc covers", 36, 12, "sun", true},
		{"Columns count half", 49, 12, "sun", true},
		{"Slack reaches a dot", 71, 3, "mars", true},
		{"Empty sky", 5, 22, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Pick(tt.x, tt.y)
			if ok != tt.found {
				t.Fatalf("Expected found %v, got %v", tt.found, ok)
			}
			if got.Name != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got.Name)
			}
		})
	}

	p.Reset()
	if _, ok := p.Pick(40, 12); ok {
		t.Error("Expected nothing after reset")
	}
}
