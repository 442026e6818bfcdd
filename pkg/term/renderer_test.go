package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
)

func newScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen.Init() error = %v", err)
	}
	screen.SetSize(80, 25)
	t.Cleanup(screen.Fini)
	return screen
}

func TestArrow(t *testing.T) {
	tests := []struct {
		v    geometry.Vector2D
		want rune
	}{
		{geometry.NewVector(1, 0), '→'},
		{geometry.NewVector(0, 1), '↑'},
		{geometry.NewVector(-1, 0), '←'},
		{geometry.NewVector(0, -1), '↓'},
		{geometry.NewVector(1, 1), '↗'},
		{geometry.NewVector(1, -1), '↘'},
		{geometry.NewVector(-1, -1), '↙'},
		{geometry.NewVector(-1, 1), '↖'},
		{geometry.NewVector(100, 10), '→'},
		{geometry.Zero, stillAgent},
	}
	for _, tt := range tests {
		if got := Arrow(tt.v); got != tt.want {
			t.Errorf("Arrow(%v) = %q; want %q", tt.v, got, tt.want)
		}
	}
}

func TestRenderer_Cell(t *testing.T) {
	r := NewRenderer(newScreen(t), 1000)

	tests := []struct {
		p      geometry.Vector2D
		wx, wy int
	}{
		{geometry.NewVector(0, 0), 40, 13},
		{geometry.NewVector(0, 400), 40, 3},
		{geometry.NewVector(-500, 500), 0, 1},
		{geometry.NewVector(500, -500), 79, 24}, // clamped into the last cell
	}
	for _, tt := range tests {
		if x, y := r.Cell(tt.p); x != tt.wx || y != tt.wy {
			t.Errorf("Cell(%v) = (%d, %d); want (%d, %d)", tt.p, x, y, tt.wx, tt.wy)
		}
	}
}

func TestRenderer_Draw(t *testing.T) {
	screen := newScreen(t)
	r := NewRenderer(screen, 1000)

	snap := &simulation.Snapshot{
		Tick: 42,
		Agents: []flocking.Agent{
			{ID: 1, Position: geometry.NewVector(0, 0), Velocity: geometry.NewVector(70, 0)},
			{ID: 2, Position: geometry.NewVector(0, 400), Velocity: geometry.NewVector(0, 70)},
		},
		Settings: flocking.DefaultSettings(),
	}
	r.Draw(snap)

	cells := []struct {
		x, y int
		want rune
	}{
		{40, 13, '→'},
		{40, 3, '↑'},
		{10, 10, ' '},
	}
	for _, c := range cells {
		if got, _, _, _ := screen.GetContent(c.x, c.y); got != c.want {
			t.Errorf("cell (%d, %d) = %q; want %q", c.x, c.y, got, c.want)
		}
	}

	var status []rune
	for x := 0; x < 8; x++ {
		c, _, _, _ := screen.GetContent(x, 0)
		status = append(status, c)
	}
	if got := string(status); got != " tick 42" {
		t.Errorf("status bar starts with %q; want %q", got, " tick 42")
	}
}
