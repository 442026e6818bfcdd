// Package viewer is the windowed host of the simulation: an ebiten Game that
// drives the flock actor once per frame and draws the latest snapshot.
package viewer

import (
	"context"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/simulation"
	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
	"github.com/lao-tseu-is-alive/go-boids/pkg/ui"
	"github.com/tochemey/goakt/v3/actor"
)

var (
	whiteImage = ebiten.NewImage(3, 3)

	backgroundColor = color.RGBA{R: 10, G: 10, B: 30, A: 255}
	visionColor     = color.RGBA{R: 80, G: 160, B: 255, A: 60}
	velocityColor   = color.RGBA{R: 255, G: 200, B: 0, A: 200}
)

type Game struct {
	ctx        context.Context
	System     actor.ActorSystem
	flockPID   *actor.PID
	snapshotCh chan *simulation.Snapshot
	lastState  *simulation.Snapshot

	cfg      *simulation.Config
	viewport geometry.Viewport
	sent     flocking.Settings
	spawnAt  *geometry.Vector2D

	// UI Controls
	panel   *ui.UIPanel
	widgets settingsWidgets

	vertices []ebiten.Vertex
	indices  []uint16

	// Timing instrumentation
	updateAvg float64 // Rolling average in ms
	drawAvg   float64 // Rolling average in ms
}

// settingsWidgets holds one widget per editable flocking setting.
type settingsWidgets struct {
	minSpeed, maxSpeed, maxSteerForce  *ui.Slider
	visionRadius, visionAngle          *ui.Slider
	separationW, alignmentW, cohesionW *ui.Slider
	separation, alignment, cohesion    *ui.Checkbox
	showVision, showVelocity           *ui.Checkbox
}

// NewGame spawns the flock actor of cfg in system and builds the settings panel.
func NewGame(ctx context.Context, cfg *simulation.Config, system actor.ActorSystem, recorder *telemetry.Recorder) (*Game, error) {
	snapshotCh := make(chan *simulation.Snapshot, 10) // Buffer to avoid blocking
	pid, err := simulation.SpawnFlock(ctx, system, cfg, snapshotCh, recorder)
	if err != nil {
		return nil, err
	}

	g := &Game{
		ctx:        ctx,
		System:     system,
		flockPID:   pid,
		snapshotCh: snapshotCh,
		lastState:  &simulation.Snapshot{Settings: cfg.Flocking},
		cfg:        cfg,
		viewport: geometry.Viewport{
			WorldSize: cfg.WorldSize,
			Width:     float64(cfg.Display.Width),
			Height:    float64(cfg.Display.Height),
		},
		sent: cfg.Flocking,
	}
	g.buildPanel()
	return g, nil
}

func (g *Game) buildPanel() {
	s := g.cfg.Flocking
	p := ui.NewUIPanel(10, 10, 260, float64(g.cfg.Display.Height)-20)
	w := &g.widgets

	p.AddSection("Speed")
	w.minSpeed = p.AddSlider("Min Speed", 0, 400, s.MinSpeed)
	w.maxSpeed = p.AddSlider("Max Speed", 0, 400, s.MaxSpeed)
	w.maxSteerForce = p.AddSlider("Max Steer Force", 0, 100, s.MaxSteerForce)
	p.EndSection()

	p.AddSection("Behaviors")
	w.separation = p.AddCheckbox("Separation [S]", s.Separation).WithKey(ebiten.KeyS)
	w.separationW = p.AddSlider("Separation Weight", 0, 5, s.SeparationWeight)
	w.alignment = p.AddCheckbox("Alignment [A]", s.Alignment).WithKey(ebiten.KeyA)
	w.alignmentW = p.AddSlider("Alignment Weight", 0, 5, s.AlignmentWeight)
	w.cohesion = p.AddCheckbox("Cohesion [C]", s.Cohesion).WithKey(ebiten.KeyC)
	w.cohesionW = p.AddSlider("Cohesion Weight", 0, 5, s.CohesionWeight)
	p.EndSection()

	p.AddSection("Vision")
	w.visionRadius = p.AddSlider("Vision Radius", 0, 300, s.VisionRadius)
	w.visionAngle = p.AddSlider("Vision Angle", 0, 360, s.VisionAngle)
	p.EndSection()

	p.AddSection("Debug")
	w.showVision = p.AddCheckbox("Show Vision [V]", g.cfg.Display.ShowVision).WithKey(ebiten.KeyV)
	w.showVelocity = p.AddCheckbox("Show Velocity [R]", g.cfg.Display.ShowVelocity).WithKey(ebiten.KeyR)
	p.EndSection()

	p.AddSection("Population")
	p.AddButton("Spawn group", func() {
		center := geometry.Zero
		g.spawnAt = &center
	})
	p.EndSection()

	g.panel = p
}

// settings reads the flocking settings currently shown by the panel.
func (g *Game) settings() flocking.Settings {
	w := g.widgets
	return flocking.Settings{
		MinSpeed:         w.minSpeed.Value,
		MaxSpeed:         w.maxSpeed.Value,
		MaxSteerForce:    w.maxSteerForce.Value,
		VisionRadius:     w.visionRadius.Value,
		VisionAngle:      w.visionAngle.Value,
		SeparationWeight: w.separationW.Value,
		AlignmentWeight:  w.alignmentW.Value,
		CohesionWeight:   w.cohesionW.Value,
		Separation:       w.separation.Value,
		Alignment:        w.alignment.Value,
		Cohesion:         w.cohesion.Value,
	}
}

func (g *Game) Update() error {
	start := time.Now()
	defer func() {
		// Rolling average (exponential moving average)
		g.updateAvg = g.updateAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	// 1. Update UI Panel
	g.panel.Update()
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if mx, my := ebiten.CursorPosition(); !g.panel.Contains(mx, my) {
			at := g.viewport.ToWorld(float64(mx), float64(my))
			g.spawnAt = &at
		}
	}

	// 2. Retrieve Latest State (Non-blocking)
	select {
	case snap := <-g.snapshotCh:
		g.lastState = snap
	default:
		// Use previous state if new one isn't ready
	}

	// 3. Send settings only when the panel changed them
	if s := g.settings(); s != g.sent {
		msg, err := simulation.NewSettingsUpdate(s)
		if err != nil {
			return err
		}
		if err := actor.Tell(g.ctx, g.flockPID, msg); err != nil {
			return fmt.Errorf("sending settings: %w", err)
		}
		g.sent = s
	}

	if g.spawnAt != nil {
		group := simulation.DefaultGroup()
		group.CenterX, group.CenterY = g.spawnAt.X, g.spawnAt.Y
		g.spawnAt = nil
		msg, err := simulation.NewSpawnRequest(group)
		if err != nil {
			return err
		}
		if err := actor.Tell(g.ctx, g.flockPID, msg); err != nil {
			return fmt.Errorf("sending spawn request: %w", err)
		}
	}

	// 4. Trigger Simulation Step
	dt := simulation.TickDuration(1 / float64(ebiten.TPS()))
	if err := actor.Tell(g.ctx, g.flockPID, simulation.NewTick(dt)); err != nil {
		return fmt.Errorf("sending tick: %w", err)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	start := time.Now()
	defer func() {
		g.drawAvg = g.drawAvg*0.95 + float64(time.Since(start).Microseconds())/1000.0*0.05
	}()

	screen.Fill(backgroundColor)

	// 1. Debug visuals, below the agents
	if g.widgets.showVision.Value || g.widgets.showVelocity.Value {
		g.drawDebug(screen)
	}

	// 2. Draw all agents from the last known snapshot
	g.drawAgents(screen)

	// 3. Draw UI Panel
	g.panel.Draw(screen)

	// 4. Display performance stats on the right side to avoid overlap with panel
	st := g.lastState.Stats
	msg := fmt.Sprintf("FPS: %.2f\nTPS: %.2f\n\nTick:   %d\nAgents: %d\nSpeed:  %.1f\nPolar.: %.2f\n\nUpdate: %.2fms\nDraw:   %.2fms",
		ebiten.ActualFPS(),
		ebiten.ActualTPS(),
		g.lastState.Tick,
		g.lastState.Len(),
		st.MeanSpeed,
		st.Polarization,
		g.updateAvg,
		g.drawAvg)
	ebitenutil.DebugPrintAt(screen, msg, g.cfg.Display.Width-150, 10)
}

func (g *Game) drawDebug(screen *ebiten.Image) {
	s := g.lastState.Settings
	radius := float32(s.VisionRadius * g.viewport.ScaleX())
	for _, a := range g.lastState.Agents {
		x, y := g.viewport.ToScreen(a.Position)
		if g.widgets.showVision.Value && radius > 0 {
			vector.StrokeCircle(screen, float32(x), float32(y), radius, 1, visionColor, true)
		}
		if g.widgets.showVelocity.Value {
			// one tenth of a second of travel
			tx, ty := g.viewport.ToScreen(a.Position.Add(a.Velocity.Mul(0.1)))
			vector.StrokeLine(screen, float32(x), float32(y), float32(tx), float32(ty), 1, velocityColor, true)
		}
	}
}

// maxTrianglesPerBatch keeps vertex indices within uint16.
const maxTrianglesPerBatch = math.MaxUint16 / 3

// drawAgents renders one triangle per agent, pointing along its heading,
// in as few DrawTriangles calls as possible.
func (g *Game) drawAgents(screen *ebiten.Image) {
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
	for _, a := range g.lastState.Agents {
		if len(g.vertices)/3 == maxTrianglesPerBatch {
			g.flushTriangles(screen)
		}
		x, y := g.viewport.ToScreen(a.Position)
		angle := flocking.Heading(a.Velocity)

		base := uint16(len(g.vertices))
		g.vertices = append(g.vertices,
			vertex(x+math.Cos(angle)*8, y+math.Sin(angle)*8),
			vertex(x+math.Cos(angle+2.5)*5, y+math.Sin(angle+2.5)*5),
			vertex(x+math.Cos(angle-2.5)*5, y+math.Sin(angle-2.5)*5),
		)
		g.indices = append(g.indices, base, base+1, base+2)
	}
	g.flushTriangles(screen)
}

func (g *Game) flushTriangles(screen *ebiten.Image) {
	if len(g.indices) > 0 {
		screen.DrawTriangles(g.vertices, g.indices, whiteImage, &ebiten.DrawTrianglesOptions{})
	}
	g.vertices = g.vertices[:0]
	g.indices = g.indices[:0]
}

func vertex(x, y float64) ebiten.Vertex {
	return ebiten.Vertex{
		DstX: float32(x), DstY: float32(y),
		SrcX: 1, SrcY: 1,
		ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
	}
}

func (g *Game) Layout(w, h int) (int, int) { return g.cfg.Display.Width, g.cfg.Display.Height }

func init() {
	whiteImage.Fill(color.RGBA{R: 100, G: 200, B: 255, A: 255})
}
