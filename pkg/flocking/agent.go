// Package flocking implements the boid force model: neighbor influences,
// steering, integration and the boundary policy of a 2D flock.
//
// Boids is an artificial life program developed by Craig Reynolds in 1986
// which simulates the flocking behaviour of birds. See https://en.wikipedia.org/wiki/Boids
package flocking

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// Influence holds the per-behavior directional signals derived from the
// neighbors of an agent during one tick, before any weighting.
type Influence struct {
	Separation geometry.Vector2D `json:"separation"`
	Alignment  geometry.Vector2D `json:"alignment"`
	Cohesion   geometry.Vector2D `json:"cohesion"`
}

// Agent is one simulated boid. It always carries its full kinematic state;
// there is no way to build an agent without an acceleration or an influence.
type Agent struct {
	ID           uint64            `json:"id"`
	Position     geometry.Vector2D `json:"position"`
	Velocity     geometry.Vector2D `json:"velocity"`
	Acceleration geometry.Vector2D `json:"acceleration"`
	Influence    Influence         `json:"influence"`
}

// Heading returns the orientation used by renderers to draw an agent moving
// with velocity v: -atan2(vy, vx), i.e. the world angle mirrored for a screen
// whose y axis points down. A zero velocity has heading 0.
func Heading(v geometry.Vector2D) float64 {
	if v.IsZero() {
		return 0
	}
	return -math.Atan2(v.Y, v.X)
}

// Speed is the length of the agent velocity.
func (a Agent) Speed() float64 {
	return a.Velocity.Len()
}
