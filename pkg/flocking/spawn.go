package flocking

import (
	"math"
	"math/rand/v2"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// Group describes a batch of agents created together.
type Group struct {
	Count    int
	Center   geometry.Vector2D
	Radius   float64
	Velocity geometry.Vector2D
}

// Spawn creates g.Count agents spread uniformly over the disk of radius
// g.Radius around g.Center, all moving with g.Velocity, and returns them.
// IDs keep increasing across calls and are never reused.
func (f *Flock) Spawn(g Group, rng *rand.Rand) []Agent {
	spawned := make([]Agent, 0, max(g.Count, 0))
	for i := 0; i < g.Count; i++ {
		spawned = append(spawned, f.AddAgent(jitter(g.Center, g.Radius, rng), g.Velocity))
	}
	return spawned
}

// jitter picks a point uniformly inside a disk (sqrt keeps the density even).
func jitter(center geometry.Vector2D, radius float64, rng *rand.Rand) geometry.Vector2D {
	if radius <= 0 {
		return center
	}
	r := radius * math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	return center.Add(geometry.NewVectorPolar(r, theta))
}
