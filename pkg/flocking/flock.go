package flocking

import (
	"fmt"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// TickOrder is the order in which the phases of a tick run.
type TickOrder int

const (
	// IntegrateFirst moves the agents with the acceleration computed during the
	// previous tick, then recomputes forces: velocity, position, forces, boundary.
	// Forces therefore act one tick after they were computed.
	IntegrateFirst TickOrder = iota
	// ForcesFirst recomputes forces before moving: forces, velocity, position, boundary.
	ForcesFirst
)

func (o TickOrder) String() string {
	switch o {
	case IntegrateFirst:
		return "integrate-first"
	case ForcesFirst:
		return "forces-first"
	default:
		return fmt.Sprintf("TickOrder(%d)", int(o))
	}
}

// ParseTickOrder converts the configuration name of a tick order.
func ParseTickOrder(s string) (TickOrder, error) {
	switch s {
	case "", "integrate-first":
		return IntegrateFirst, nil
	case "forces-first":
		return ForcesFirst, nil
	}
	return 0, fmt.Errorf("unknown tick order %q", s)
}

// Perception builds the Visibility of one tick from the settings of that tick.
type Perception func(s Settings) Visibility

// Omniscient ignores the vision settings: everybody sees everybody.
func Omniscient(Settings) Visibility {
	return AlwaysVisible
}

// ConeOfVision gates visibility with VisionRadius and VisionAngle.
func ConeOfVision(s Settings) Visibility {
	return VisionCone(s.VisionRadius, s.VisionAngle)
}

// ParsePerception converts the configuration name of a perception model.
func ParsePerception(s string) (Perception, error) {
	switch s {
	case "", "always":
		return Omniscient, nil
	case "cone":
		return ConeOfVision, nil
	}
	return nil, fmt.Errorf("unknown visibility %q", s)
}

// Flock owns the agents of one simulation and advances them tick by tick.
// It is not safe for concurrent use; a single owner drives Step.
type Flock struct {
	agents []Agent
	nextID uint64

	boundary   Boundary
	perception Perception
	mode       InfluenceMode
	order      TickOrder

	tick    uint64
	elapsed float64

	// scratch buffers of the neighbor pass
	next []Influence
	seen []int
}

// Option configures a Flock.
type Option func(*Flock)

// WithBoundary sets the boundary policy (default Wrap on DefaultWorldSize).
func WithBoundary(b Boundary) Option {
	return func(f *Flock) { f.boundary = b }
}

// WithPerception sets the visibility model (default Omniscient).
func WithPerception(p Perception) Option {
	return func(f *Flock) { f.perception = p }
}

// WithInfluenceMode sets how neighbor contributions combine (default InfluenceSum).
func WithInfluenceMode(m InfluenceMode) Option {
	return func(f *Flock) { f.mode = m }
}

// WithTickOrder sets the phase order of Step (default IntegrateFirst).
func WithTickOrder(o TickOrder) Option {
	return func(f *Flock) { f.order = o }
}

// New creates an empty flock.
func New(opts ...Option) *Flock {
	f := &Flock{
		boundary:   Wrap{Size: DefaultWorldSize},
		perception: Omniscient,
		mode:       InfluenceSum,
		order:      IntegrateFirst,
		nextID:     1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// AddAgent inserts one agent with a fresh ID and returns it.
func (f *Flock) AddAgent(position, velocity geometry.Vector2D) Agent {
	a := Agent{ID: f.nextID, Position: position, Velocity: velocity}
	f.nextID++
	f.agents = append(f.agents, a)
	return a
}

// Agents returns a copy of the current agents, in insertion order.
func (f *Flock) Agents() []Agent {
	out := make([]Agent, len(f.agents))
	copy(out, f.agents)
	return out
}

// Len returns the number of agents.
func (f *Flock) Len() int { return len(f.agents) }

// Tick returns the number of completed ticks.
func (f *Flock) Tick() uint64 { return f.tick }

// Elapsed returns the simulated time, in seconds, of all completed ticks.
func (f *Flock) Elapsed() float64 { return f.elapsed }

// Order returns the tick order of the flock.
func (f *Flock) Order() TickOrder { return f.order }

// Step advances the flock by dt seconds with the given settings.
func (f *Flock) Step(dt float64, s Settings) {
	switch f.order {
	case ForcesFirst:
		f.updateForces(s)
		f.integrate(s, dt)
	default:
		f.integrate(s, dt)
		f.updateForces(s)
	}
	f.bound()

	f.tick++
	f.elapsed += dt
}

// updateForces runs the neighbor pass over the whole flock, then turns each
// agent influence into its acceleration.
func (f *Flock) updateForces(s Settings) {
	if cap(f.next) < len(f.agents) {
		f.next = make([]Influence, len(f.agents))
		f.seen = make([]int, len(f.agents))
	}
	f.next, f.seen = f.next[:len(f.agents)], f.seen[:len(f.agents)]

	computeInfluences(f.agents, f.perception(s), f.mode, f.next, f.seen)
	for i := range f.agents {
		f.agents[i].Acceleration = Accelerate(f.agents[i], s)
	}
}

func (f *Flock) integrate(s Settings, dt float64) {
	for i := range f.agents {
		IntegrateVelocity(&f.agents[i], s, dt)
	}
	for i := range f.agents {
		IntegratePosition(&f.agents[i], dt)
	}
}

func (f *Flock) bound() {
	for i := range f.agents {
		f.agents[i].Position = f.boundary.Apply(f.agents[i].Position)
	}
}
