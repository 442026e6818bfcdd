package ui

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	titleHeight   = 30.0
	sectionHeight = 25.0
	labelHeight   = 15.0
)

// UIWidget is an interface for all UI widgets
type UIWidget interface {
	Update()
	Draw(screen *ebiten.Image)
	GetHeight() float64
	moveTo(y float64)
}

// SliderWrapper wraps Slider to implement UIWidget
type SliderWrapper struct {
	*Slider
}

func (s *SliderWrapper) GetHeight() float64 { return labelHeight + s.H + 10 }
func (s *SliderWrapper) moveTo(y float64)   { s.Y = y + labelHeight }

// CheckboxWrapper wraps Checkbox to implement UIWidget
type CheckboxWrapper struct {
	*Checkbox
}

func (c *CheckboxWrapper) GetHeight() float64 { return labelHeight + c.Size + 6 }
func (c *CheckboxWrapper) moveTo(y float64)   { c.Y = y + labelHeight }

// ButtonWrapper wraps Button to implement UIWidget
type ButtonWrapper struct {
	*Button
}

func (b *ButtonWrapper) GetHeight() float64 { return b.Height + 10 }
func (b *ButtonWrapper) moveTo(y float64)   { b.Y = y }

// PanelSection groups the widgets added between AddSection and EndSection
type PanelSection struct {
	Title      string
	StartIndex int // first widget of the section
	EndIndex   int // exclusive
}

// UIPanel stacks widgets in titled sections inside a scrollable box
type UIPanel struct {
	X, Y          float64
	Width, Height float64
	Title         string
	Widgets       []UIWidget
	Labels        []string
	ScrollOffset  float64

	// Styling
	BGColor      color.RGBA
	BorderColor  color.RGBA
	SectionColor color.RGBA

	sections []PanelSection
	// y of each section header and widget after the last layout
	sectionY []float64
	widgetY  []float64
}

// NewUIPanel creates a new UI panel
func NewUIPanel(x, y, width, height float64) *UIPanel {
	return &UIPanel{
		X:            x,
		Y:            y,
		Width:        width,
		Height:       height,
		Title:        "Configuration",
		BGColor:      color.RGBA{R: 40, G: 40, B: 45, A: 230},
		BorderColor:  color.RGBA{R: 100, G: 100, B: 110, A: 255},
		SectionColor: color.RGBA{R: 60, G: 60, B: 70, A: 255},
	}
}

// AddSection starts a new section
func (p *UIPanel) AddSection(title string) {
	p.EndSection()
	p.sections = append(p.sections, PanelSection{
		Title:      title,
		StartIndex: len(p.Widgets),
		EndIndex:   -1,
	})
}

// EndSection closes the current section
func (p *UIPanel) EndSection() {
	if n := len(p.sections); n > 0 && p.sections[n-1].EndIndex < 0 {
		p.sections[n-1].EndIndex = len(p.Widgets)
	}
}

func (p *UIPanel) add(w UIWidget, label string) {
	p.Widgets = append(p.Widgets, w)
	p.Labels = append(p.Labels, label)
	p.layout()
}

// AddSlider adds a slider widget to the panel
func (p *UIPanel) AddSlider(label string, min, max, value float64) *Slider {
	slider := NewSlider(p.X+10, 0, p.Width-20, label, min, max, value)
	p.add(&SliderWrapper{slider}, label)
	return slider
}

// AddCheckbox adds a checkbox widget to the panel
func (p *UIPanel) AddCheckbox(label string, value bool) *Checkbox {
	checkbox := NewCheckbox(p.X+10, 0, label, value)
	p.add(&CheckboxWrapper{checkbox}, label)
	return checkbox
}

// AddButton adds a button spanning the panel width
func (p *UIPanel) AddButton(label string, onClick func()) *Button {
	button := NewButton(p.X+10, 0, p.Width-20, 20, label, onClick)
	p.add(&ButtonWrapper{button}, "")
	return button
}

// Contains reports whether the screen point (x, y) is over the panel
func (p *UIPanel) Contains(x, y int) bool {
	return float64(x) >= p.X && float64(x) <= p.X+p.Width &&
		float64(y) >= p.Y && float64(y) <= p.Y+p.Height
}

// layout places every section header and widget, honoring the scroll offset.
// Widgets added outside any section are stacked after the last one.
func (p *UIPanel) layout() {
	p.sectionY = p.sectionY[:0]
	p.widgetY = p.widgetY[:0]

	y := p.Y + titleHeight - p.ScrollOffset
	next := 0
	place := func(end int) {
		for ; next < end; next++ {
			p.widgetY = append(p.widgetY, y)
			p.Widgets[next].moveTo(y)
			y += p.Widgets[next].GetHeight()
		}
	}
	for _, s := range p.sections {
		place(s.StartIndex)
		p.sectionY = append(p.sectionY, y)
		y += sectionHeight
		end := s.EndIndex
		if end < 0 {
			end = len(p.Widgets)
		}
		place(end)
	}
	place(len(p.Widgets))
}

func (p *UIPanel) contentHeight() float64 {
	h := titleHeight + float64(len(p.sections))*sectionHeight
	for _, w := range p.Widgets {
		h += w.GetHeight()
	}
	return h
}

func (p *UIPanel) visible(y, h float64) bool {
	return y >= p.Y+titleHeight-5 && y+h <= p.Y+p.Height
}

// Update scrolls the panel and handles input for the visible widgets
func (p *UIPanel) Update() {
	mx, my := ebiten.CursorPosition()
	if _, dy := ebiten.Wheel(); dy != 0 && p.Contains(mx, my) {
		maxScroll := max(p.contentHeight()-p.Height+10, 0)
		p.ScrollOffset = min(max(p.ScrollOffset-dy*20, 0), maxScroll)
	}
	p.layout()

	for i, w := range p.Widgets {
		if p.visible(p.widgetY[i], w.GetHeight()) {
			w.Update()
		}
	}
}

// Draw renders the panel and all visible widgets
func (p *UIPanel) Draw(screen *ebiten.Image) {
	vector.FillRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		p.BGColor, true)
	vector.StrokeRect(screen,
		float32(p.X), float32(p.Y),
		float32(p.Width), float32(p.Height),
		2, p.BorderColor, true)
	ebitenutil.DebugPrintAt(screen, p.Title, int(p.X+10), int(p.Y+5))

	for i, s := range p.sections {
		y := p.sectionY[i]
		if !p.visible(y, sectionHeight) {
			continue
		}
		vector.FillRect(screen,
			float32(p.X+5), float32(y),
			float32(p.Width-10), 20,
			p.SectionColor, true)
		ebitenutil.DebugPrintAt(screen, s.Title, int(p.X+10), int(y+3))
	}

	for i, w := range p.Widgets {
		y := p.widgetY[i]
		if !p.visible(y, w.GetHeight()) {
			continue
		}
		label := p.Labels[i]
		if sw, ok := w.(*SliderWrapper); ok {
			label = fmt.Sprintf("%s: %.2f", label, sw.Value)
		}
		if label != "" {
			ebitenutil.DebugPrintAt(screen, label, int(p.X+10), int(y))
		}
		w.Draw(screen)
	}
}
