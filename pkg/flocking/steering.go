package flocking

import "github.com/lao-tseu-is-alive/go-boids/pkg/geometry"

// Steer turns an influence vector into a steering force: the agent wants to
// fly along the influence at maxSpeed, and the force is the difference between
// that desired velocity and the current one, limited in length to maxForce.
// An influence without direction produces no force.
func Steer(influence, velocity geometry.Vector2D, maxSpeed, maxForce float64) geometry.Vector2D {
	direction := influence.Normalize()
	if direction.IsZero() {
		return geometry.Zero
	}
	desired := direction.Mul(maxSpeed)
	return desired.Sub(velocity).ClampLen(maxForce)
}

// Accelerate returns the acceleration of an agent for this tick: the sum of
// the weighted steering forces of the enabled behaviors. The sum itself is
// not clamped; the speed clamp of the integrator bounds its effect.
func Accelerate(a Agent, s Settings) geometry.Vector2D {
	behaviors := []struct {
		enabled   bool
		weight    float64
		influence geometry.Vector2D
	}{
		{s.Separation, s.SeparationWeight, a.Influence.Separation},
		{s.Alignment, s.AlignmentWeight, a.Influence.Alignment},
		{s.Cohesion, s.CohesionWeight, a.Influence.Cohesion},
	}

	acc := geometry.Zero
	for _, b := range behaviors {
		if !b.enabled {
			continue
		}
		steer := Steer(b.influence, a.Velocity, s.MaxSpeed, s.MaxSteerForce)
		acc = acc.Add(steer.Mul(b.weight))
	}
	return acc
}
