// pkg/hud/format_test.go
package hud

import "testing"

func TestRound(t *testing.T) {
	tests := []struct {
		n         float64
		precision int
		want      float64
	}{
		{1.23456, 3, 1.235},
		{1.5, 0, 2},
		{-2.4, 0, -2},
		{299792.46, 0, 299792},
		{1234.5678, 1, 1234.6},
	}

	for _, tt := range tests {
		if got := Round(tt.n, tt.precision); got != tt.want {
			t.Errorf("Round(%v, %d): expected %v, got %v", tt.n, tt.precision, tt.want, got)
		}
	}
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		name string
		n    float64
		want string
	}{
		{"Small", 150.4, "150"},
		{"Exactly a million", 1e6, "1000000"},
		{"Millions", 149597870, "150 Millions"},
		{"Exactly a billion", 1e9, "1000 Millions"},
		{"Billions", 5906376272, "6 Billions"},
		{"Zero", 0, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDistance(tt.n, 0); got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestFormatNumber_Precision(t *testing.T) {
	if got := FormatNumber(299792.46, 3); got != "299792.46" {
		t.Errorf("Expected 299792.46, got %s", got)
	}
}
