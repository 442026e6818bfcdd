// Package term renders the flock in a terminal with tcell: every agent is an
// arrow pointing along its heading, under a one line status bar.
package term

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
)

// arrows is indexed by heading octant, clockwise on screen from "right".
var arrows = [8]rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}

const stillAgent = '•'

var (
	agentStyle  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	statusStyle = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
)

// Arrow returns the glyph of an agent moving with velocity v.
func Arrow(v geometry.Vector2D) rune {
	if v.IsZero() {
		return stillAgent
	}
	octant := int(math.Round(flocking.Heading(v) / (math.Pi / 4)))
	return arrows[(octant%8+8)%8]
}

// Renderer draws snapshots on a tcell screen.
type Renderer struct {
	screen    tcell.Screen
	worldSize float64
}

func NewRenderer(screen tcell.Screen, worldSize float64) *Renderer {
	return &Renderer{screen: screen, worldSize: worldSize}
}

// viewport maps the world onto every row but the status bar.
func (r *Renderer) viewport() geometry.Viewport {
	w, h := r.screen.Size()
	return geometry.Viewport{WorldSize: r.worldSize, Width: float64(w), Height: float64(h - 1)}
}

// Cell returns the screen cell of world point p, clamped to the drawable area.
func (r *Renderer) Cell(p geometry.Vector2D) (x, y int) {
	w, h := r.screen.Size()
	sx, sy := r.viewport().ToScreen(p)
	x = min(max(int(math.Floor(sx)), 0), w-1)
	y = min(max(int(math.Floor(sy)), 0), h-2) + 1
	return x, y
}

// Draw renders one snapshot and shows it.
func (r *Renderer) Draw(s *simulation.Snapshot) {
	r.screen.Clear()
	if s != nil {
		for _, a := range s.Agents {
			x, y := r.Cell(a.Position)
			r.screen.SetContent(x, y, Arrow(a.Velocity), nil, agentStyle)
		}
	}
	r.drawStatus(s)
	r.screen.Show()
}

func (r *Renderer) drawStatus(s *simulation.Snapshot) {
	w, _ := r.screen.Size()
	var line string
	if s != nil {
		line = fmt.Sprintf(" tick %d | agents %d | speed %.1f | %s %s %s | space: spawn  q: quit",
			s.Tick, s.Len(), s.Stats.MeanSpeed,
			toggle("[s]ep", s.Settings.Separation),
			toggle("[a]li", s.Settings.Alignment),
			toggle("[c]oh", s.Settings.Cohesion))
	}
	runes := []rune(line)
	for x := 0; x < w; x++ {
		c := ' '
		if x < len(runes) {
			c = runes[x]
		}
		r.screen.SetContent(x, 0, c, nil, statusStyle)
	}
}

func toggle(name string, on bool) string {
	if on {
		return name + " on"
	}
	return name + " off"
}
