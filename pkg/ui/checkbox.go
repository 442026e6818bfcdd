package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Checkbox is a simple UI widget for boolean values.
// It toggles on click, or when its optional shortcut Key is pressed.
type Checkbox struct {
	Label string
	Value bool
	X, Y  float64
	Size  float64
	Key   ebiten.Key
	keyed bool
}

// NewCheckbox creates a new checkbox instance
func NewCheckbox(x, y float64, label string, value bool) *Checkbox {
	return &Checkbox{
		Label: label,
		Value: value,
		X:     x,
		Y:     y,
		Size:  16,
	}
}

// WithKey binds a keyboard shortcut toggling the checkbox
func (c *Checkbox) WithKey(k ebiten.Key) *Checkbox {
	c.Key, c.keyed = k, true
	return c
}

func (c *Checkbox) hovered() bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= c.X && float64(mx) <= c.X+c.Size &&
		float64(my) >= c.Y && float64(my) <= c.Y+c.Size
}

// Update toggles the value on a fresh click or key press
func (c *Checkbox) Update() {
	clicked := c.hovered() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	pressed := c.keyed && inpututil.IsKeyJustPressed(c.Key)
	if clicked || pressed {
		c.Value = !c.Value
	}
}

// Draw renders the checkbox
func (c *Checkbox) Draw(screen *ebiten.Image) {
	border := color.RGBA{R: 200, G: 200, B: 200, A: 255}
	if c.hovered() {
		border = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	vector.StrokeRect(screen,
		float32(c.X), float32(c.Y),
		float32(c.Size), float32(c.Size),
		2, border, true)

	if c.Value {
		vector.FillRect(screen,
			float32(c.X+3), float32(c.Y+3),
			float32(c.Size-6), float32(c.Size-6),
			color.RGBA{R: 100, G: 200, B: 100, A: 255},
			true)
	}
}
