package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Button runs OnClick once per click
type Button struct {
	Label   string
	X, Y    float64
	Width   float64
	Height  float64
	OnClick func()

	// Styling
	BGColor    color.RGBA
	HoverColor color.RGBA
	TextColor  color.RGBA
}

// NewButton creates a new button instance
func NewButton(x, y, width, height float64, label string, onClick func()) *Button {
	return &Button{
		Label:      label,
		X:          x,
		Y:          y,
		Width:      width,
		Height:     height,
		OnClick:    onClick,
		BGColor:    color.RGBA{R: 80, G: 120, B: 180, A: 255},
		HoverColor: color.RGBA{R: 100, G: 150, B: 220, A: 255},
		TextColor:  color.RGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

func (b *Button) hovered() bool {
	mx, my := ebiten.CursorPosition()
	return float64(mx) >= b.X && float64(mx) <= b.X+b.Width &&
		float64(my) >= b.Y && float64(my) <= b.Y+b.Height
}

// Update fires OnClick on the frame the left button goes down over the button
func (b *Button) Update() {
	if b.OnClick != nil && b.hovered() && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		b.OnClick()
	}
}

// Draw renders the button
func (b *Button) Draw(screen *ebiten.Image) {
	bg := b.BGColor
	if b.hovered() {
		bg = b.HoverColor
	}
	vector.FillRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		bg, true)
	vector.StrokeRect(screen,
		float32(b.X), float32(b.Y),
		float32(b.Width), float32(b.Height),
		1, color.RGBA{R: 200, G: 200, B: 200, A: 255}, true)

	// debug font glyphs are 6px wide
	tx := b.X + (b.Width-float64(len(b.Label)*6))/2
	ebitenutil.DebugPrintAt(screen, b.Label, int(tx), int(b.Y+b.Height/2-8))
}
