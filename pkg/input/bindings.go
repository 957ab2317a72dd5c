// pkg/input/bindings.go
package input

import "strings"

// Binding maps keys onto one control. Buttons only use Positive.
type Binding struct {
	Positive []string `json:"positive" mapstructure:"positive"`
	Negative []string `json:"negative,omitempty" mapstructure:"negative"`
}

// Bindings maps every control to its keys
type Bindings map[Control]Binding

// DefaultBindings returns the classic layout: a/e roll, q/d yaw, s/z pitch,
// arrows to fly, r/f or PageUp/PageDown to shift gear, c for the cockpit,
// m to capture the pointer.
func DefaultBindings() Bindings {
	return Bindings{
		Roll:          {Positive: []string{"a"}, Negative: []string{"e"}},
		Yaw:           {Positive: []string{"q"}, Negative: []string{"d"}},
		Pitch:         {Positive: []string{"s"}, Negative: []string{"z"}},
		Forward:       {Positive: []string{string(KeyArrowUp)}, Negative: []string{string(KeyArrowDown)}},
		Strafe:        {Positive: []string{string(KeyArrowRight)}, Negative: []string{string(KeyArrowLeft)}},
		GearUp:        {Positive: []string{"r", string(KeyPageUp)}},
		GearDown:      {Positive: []string{"f", string(KeyPageDown)}},
		ToggleCockpit: {Positive: []string{"c"}},
		PointerLock:   {Positive: []string{"m"}},
		Quit:          {Positive: []string{string(KeyEscape), string(KeyCtrlC)}},
	}
}

// Merge returns a copy of b with the given per-control overrides applied.
// Control names match case-insensitively since config loaders lower-case
// map keys. Unknown control names are ignored.
func (b Bindings) Merge(overrides map[string]Binding) Bindings {
	merged := make(Bindings, len(b))
	for c, binding := range b {
		merged[c] = binding
	}
	for name, binding := range overrides {
		for c := range b {
			if strings.EqualFold(string(c), name) {
				merged[c] = binding
				break
			}
		}
	}
	return merged
}

// Keys returns every key bound to any control
func (b Bindings) Keys() []Key {
	var keys []Key
	seen := make(map[Key]bool)
	for _, binding := range b {
		for _, names := range [][]string{binding.Positive, binding.Negative} {
			for _, n := range names {
				k := ParseKey(n)
				if !seen[k] {
					seen[k] = true
					keys = append(keys, k)
				}
			}
		}
	}
	return keys
}
