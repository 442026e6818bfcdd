package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Slider is a simple UI widget for a float value in [Min, Max]
type Slider struct {
	Label    string
	Value    float64
	Min, Max float64
	X, Y     float64
	W, H     float64
}

// NewSlider creates a new slider instance
func NewSlider(x, y, w float64, label string, min, max, value float64) *Slider {
	s := &Slider{
		Label: label,
		Min:   min,
		Max:   max,
		X:     x,
		Y:     y,
		W:     w,
		H:     12,
	}
	s.Set(value)
	return s
}

// Set changes the value, clamped to [Min, Max]
func (s *Slider) Set(v float64) {
	s.Value = min(max(v, s.Min), s.Max)
}

// Update checks for mouse interaction
func (s *Slider) Update() {
	mx, my := ebiten.CursorPosition()
	// Check if mouse is clicking inside the slider area
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if float64(mx) >= s.X && float64(mx) <= s.X+s.W &&
			float64(my) >= s.Y && float64(my) <= s.Y+s.H {
			// Calculate value based on horizontal position
			p := (float64(mx) - s.X) / s.W
			s.Set(s.Min + p*(s.Max-s.Min))
		}
	}
}

// Draw renders the slider
func (s *Slider) Draw(screen *ebiten.Image) {
	// Draw Background (Dark Gray)
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W), float32(s.H), color.RGBA{R: 80, G: 80, B: 80, A: 255}, true)

	// Draw Value Bar (Light Gray/White)
	ratio := 0.0
	if s.Max > s.Min {
		ratio = (s.Value - s.Min) / (s.Max - s.Min)
	}
	vector.FillRect(screen, float32(s.X), float32(s.Y), float32(s.W*ratio), float32(s.H), color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)
}
