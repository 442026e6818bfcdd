package flocking

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// separationOnly is the end to end setup: two stationary agents 5 units apart.
func separationOnly(order TickOrder) (*Flock, Settings) {
	f := New(WithTickOrder(order))
	f.AddAgent(vec(0, 0), geometry.Zero)
	f.AddAgent(vec(5, 0), geometry.Zero)
	return f, DefaultSettings()
}

func assertPushedApart(t *testing.T, agents []Agent, s Settings) {
	t.Helper()
	left, right := agents[0], agents[1]
	if left.Velocity.X >= 0 || right.Velocity.X <= 0 {
		t.Errorf("velocities %v and %v do not point away from each other", left.Velocity, right.Velocity)
	}
	for _, a := range agents {
		if math.Abs(a.Speed()-s.MinSpeed) > 1e-9 {
			t.Errorf("agent %d speed = %v; want the speed floor %v", a.ID, a.Speed(), s.MinSpeed)
		}
		if a.Acceleration.Len() > s.MaxSteerForce+1e-9 {
			t.Errorf("agent %d acceleration %v longer than maxSteerForce", a.ID, a.Acceleration)
		}
	}
}

func TestFlock_Step_EndToEnd(t *testing.T) {
	t.Run("ForcesFirst moves apart after one tick", func(t *testing.T) {
		f, s := separationOnly(ForcesFirst)
		f.Step(1, s)

		agents := f.Agents()
		assertPushedApart(t, agents, s)
		if !agents[0].Acceleration.Eq(vec(-10, 0)) || !agents[1].Acceleration.Eq(vec(10, 0)) {
			t.Errorf("accelerations = %v, %v; want (-10, 0), (10, 0)", agents[0].Acceleration, agents[1].Acceleration)
		}
		if !agents[0].Position.Eq(vec(-70, 0)) || !agents[1].Position.Eq(vec(75, 0)) {
			t.Errorf("positions = %v, %v; want (-70, 0), (75, 0)", agents[0].Position, agents[1].Position)
		}
	})

	t.Run("IntegrateFirst applies the force one tick later", func(t *testing.T) {
		f, s := separationOnly(IntegrateFirst)

		f.Step(1, s)
		agents := f.Agents()
		for _, a := range agents {
			if !a.Velocity.IsZero() {
				t.Errorf("agent %d velocity after first tick = %v; want zero", a.ID, a.Velocity)
			}
		}
		if !agents[0].Acceleration.Eq(vec(-10, 0)) {
			t.Errorf("acceleration after first tick = %v; want (-10, 0)", agents[0].Acceleration)
		}

		f.Step(1, s)
		assertPushedApart(t, f.Agents(), s)
	})
}

func TestFlock_Step_NoNeighbor(t *testing.T) {
	f := New(WithTickOrder(ForcesFirst))
	f.AddAgent(vec(0, 0), vec(100, 0))
	s := DefaultSettings()
	s.Alignment, s.Cohesion = true, true

	f.Step(0.5, s)

	a := f.Agents()[0]
	if a.Influence != (Influence{}) || !a.Acceleration.IsZero() {
		t.Errorf("lonely agent has influence %+v and acceleration %v; want zero", a.Influence, a.Acceleration)
	}
	if !a.Velocity.Eq(vec(100, 0)) || !a.Position.Eq(vec(50, 0)) {
		t.Errorf("lonely agent velocity %v position %v; want (100, 0) and (50, 0)", a.Velocity, a.Position)
	}
}

func TestFlock_Step_SpeedStaysInRange(t *testing.T) {
	for _, order := range []TickOrder{IntegrateFirst, ForcesFirst} {
		t.Run(order.String(), func(t *testing.T) {
			f := New(WithTickOrder(order))
			rng := rand.New(rand.NewPCG(3, 4))
			f.Spawn(Group{Count: 30, Radius: 300, Velocity: vec(0, 100)}, rng)
			// coincident agents must not produce NaN
			f.AddAgent(vec(10, 10), vec(80, 0))
			f.AddAgent(vec(10, 10), vec(0, -80))

			s := DefaultSettings()
			s.Alignment, s.Cohesion = true, true

			for tick := 0; tick < 300; tick++ {
				f.Step(1.0/60, s)
				for _, a := range f.Agents() {
					if !a.Position.IsFinite() || !a.Velocity.IsFinite() {
						t.Fatalf("tick %d: agent %d is not finite: %+v", tick, a.ID, a)
					}
					if sp := a.Speed(); sp < s.MinSpeed-1e-6 || sp > s.MaxSpeed+1e-6 {
						t.Fatalf("tick %d: agent %d speed %v outside [%v, %v]", tick, a.ID, sp, s.MinSpeed, s.MaxSpeed)
					}
					half := DefaultWorldSize / 2
					if math.Abs(a.Position.X) > half || math.Abs(a.Position.Y) > half {
						t.Fatalf("tick %d: agent %d left the world at %v", tick, a.ID, a.Position)
					}
				}
			}
		})
	}
}

func TestFlock_Counters(t *testing.T) {
	f := New()
	if f.Tick() != 0 || f.Elapsed() != 0 || f.Len() != 0 {
		t.Fatalf("new flock tick=%d elapsed=%v len=%d; want zeros", f.Tick(), f.Elapsed(), f.Len())
	}

	f.AddAgent(vec(0, 0), vec(100, 0))
	f.Step(0.25, DefaultSettings())
	f.Step(0.25, DefaultSettings())

	if f.Tick() != 2 {
		t.Errorf("Tick() = %d; want 2", f.Tick())
	}
	if f.Elapsed() != 0.5 {
		t.Errorf("Elapsed() = %v; want 0.5", f.Elapsed())
	}
}

func TestFlock_BoundaryIsApplied(t *testing.T) {
	t.Run("Wrap", func(t *testing.T) {
		f := New(WithTickOrder(ForcesFirst))
		f.AddAgent(vec(495, 0), vec(100, 0))
		f.Step(0.1, DefaultSettings())
		if got := f.Agents()[0].Position; !got.Eq(vec(-495, 0)) {
			t.Errorf("position = %v; want (-495, 0)", got)
		}
	})

	t.Run("Teleport", func(t *testing.T) {
		f := New(WithTickOrder(ForcesFirst), WithBoundary(Teleport{Size: DefaultWorldSize}))
		f.AddAgent(vec(495, 0), vec(100, 0))
		f.Step(0.1, DefaultSettings())
		if got := f.Agents()[0].Position; !got.Eq(vec(-500, 0)) {
			t.Errorf("position = %v; want (-500, 0)", got)
		}
	})
}

func TestFlock_AgentsReturnsCopy(t *testing.T) {
	f := New()
	f.AddAgent(vec(1, 2), vec(100, 0))

	agents := f.Agents()
	agents[0].Position = vec(42, 42)

	if got := f.Agents()[0].Position; !got.Eq(vec(1, 2)) {
		t.Errorf("flock agent moved to %v through the returned slice", got)
	}
}

func TestFlock_ConePerception(t *testing.T) {
	f := New(WithTickOrder(ForcesFirst), WithPerception(ConeOfVision))
	f.AddAgent(vec(0, 0), vec(100, 0))
	f.AddAgent(vec(50, 0), vec(100, 0))

	s := DefaultSettings()
	s.VisionRadius = 10
	f.Step(0, s)

	for _, a := range f.Agents() {
		if a.Influence != (Influence{}) {
			t.Errorf("agent %d sees a neighbor 50 units away with radius 10: %+v", a.ID, a.Influence)
		}
	}
}

func TestParseTickOrder(t *testing.T) {
	tests := []struct {
		in      string
		want    TickOrder
		wantErr bool
	}{
		{"", IntegrateFirst, false},
		{"integrate-first", IntegrateFirst, false},
		{"forces-first", ForcesFirst, false},
		{"sideways", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseTickOrder(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseTickOrder(%q) = %v, %v; want %v, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
		if err == nil && tt.in != "" && got.String() != tt.in {
			t.Errorf("%v.String() = %q; want %q", got, got.String(), tt.in)
		}
	}
}

func TestParsePerception(t *testing.T) {
	for _, name := range []string{"", "always", "cone"} {
		p, err := ParsePerception(name)
		if err != nil {
			t.Errorf("ParsePerception(%q) error = %v", name, err)
		}
		if p == nil {
			t.Errorf("ParsePerception(%q) returned a nil perception", name)
		}
	}
	if _, err := ParsePerception("telepathy"); err == nil {
		t.Error("ParsePerception accepted an unknown name")
	}
}

func TestHeading(t *testing.T) {
	tests := []struct {
		v    geometry.Vector2D
		want float64
	}{
		{vec(0, 0), 0},
		{vec(1, 0), 0},
		{vec(0, 1), -math.Pi / 2},
		{vec(0, -1), math.Pi / 2},
		{vec(-1, 0), -math.Pi},
	}
	for _, tt := range tests {
		if got := Heading(tt.v); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Heading(%v) = %v; want %v", tt.v, got, tt.want)
		}
	}
}

func BenchmarkFlock_Step(b *testing.B) {
	f := New()
	f.Spawn(Group{Count: 100, Radius: 400, Velocity: vec(0, 100)}, rand.New(rand.NewPCG(1, 2)))
	s := DefaultSettings()
	s.Alignment, s.Cohesion = true, true

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		f.Step(1.0/60, s)
	}
}
