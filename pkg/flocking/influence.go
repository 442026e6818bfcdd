package flocking

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// Visibility decides whether self perceives other during the neighbor pass.
type Visibility func(self, other Agent) bool

// AlwaysVisible lets every agent see every other agent.
func AlwaysVisible(_, _ Agent) bool {
	return true
}

// VisionCone returns a Visibility limited to neighbors closer than radius and
// inside a field of view of angleDegrees centered on the agent velocity.
// A stationary agent, or a field of view of 360 degrees or more, sees all around.
func VisionCone(radius, angleDegrees float64) Visibility {
	radiusSq := radius * radius
	halfAngle := angleDegrees / 2 * math.Pi / 180
	return func(self, other Agent) bool {
		offset := other.Position.Sub(self.Position)
		if offset.LenSqr() > radiusSq {
			return false
		}
		if angleDegrees >= 360 || self.Velocity.IsZero() {
			return true
		}
		return self.Velocity.AngleBetween(offset) <= halfAngle
	}
}

// InfluenceMode selects how the contributions of several visible neighbors
// are combined into one Influence.
type InfluenceMode int

const (
	// InfluenceSum adds the contribution of every visible neighbor.
	InfluenceSum InfluenceMode = iota
	// InfluenceAverage divides the sum by the number of visible neighbors.
	InfluenceAverage
	// InfluenceLastWriter keeps only the last visible neighbor in pair order,
	// and lets an agent that sees nobody keep its previous influence.
	InfluenceLastWriter
)

func (m InfluenceMode) String() string {
	switch m {
	case InfluenceSum:
		return "sum"
	case InfluenceAverage:
		return "average"
	case InfluenceLastWriter:
		return "last-writer"
	default:
		return fmt.Sprintf("InfluenceMode(%d)", int(m))
	}
}

// ParseInfluenceMode converts the configuration name of a mode.
func ParseInfluenceMode(s string) (InfluenceMode, error) {
	switch s {
	case "", "sum":
		return InfluenceSum, nil
	case "average":
		return InfluenceAverage, nil
	case "last-writer":
		return InfluenceLastWriter, nil
	}
	return 0, fmt.Errorf("unknown influence mode %q", s)
}

// Separation returns the repulsion felt at self from a neighbor at other:
// a vector pointing away from the neighbor whose length is 1/distance².
// Coincident positions have no direction and yield the zero vector.
func Separation(self, other geometry.Vector2D) geometry.Vector2D {
	offset := self.Sub(other)
	return offset.Normalize().Div(offset.LenSqr())
}

// pairInfluence is the contribution of other to the influence of self.
// Alignment and cohesion are the raw neighbor velocity and position.
func pairInfluence(self, other Agent) Influence {
	return Influence{
		Separation: Separation(self.Position, other.Position),
		Alignment:  other.Velocity,
		Cohesion:   other.Position,
	}
}

func (in Influence) add(other Influence) Influence {
	return Influence{
		Separation: in.Separation.Add(other.Separation),
		Alignment:  in.Alignment.Add(other.Alignment),
		Cohesion:   in.Cohesion.Add(other.Cohesion),
	}
}

func (in Influence) div(n float64) Influence {
	return Influence{
		Separation: in.Separation.Div(n),
		Alignment:  in.Alignment.Div(n),
		Cohesion:   in.Cohesion.Div(n),
	}
}

// ComputeInfluences recomputes the Influence of every agent from the current
// positions and velocities of all the others. The whole pass reads the
// agents as they were on entry and only writes the results back at the end,
// so no agent ever observes an influence computed during the same pass.
//
// Every unordered pair is visited once (i < j in slice order); self-pairs are
// excluded by ID. When canSee is nil AlwaysVisible is used.
func ComputeInfluences(agents []Agent, canSee Visibility, mode InfluenceMode) {
	computeInfluences(agents, canSee, mode, make([]Influence, len(agents)), make([]int, len(agents)))
}

// computeInfluences is ComputeInfluences with caller-owned scratch buffers
// of len(agents).
func computeInfluences(agents []Agent, canSee Visibility, mode InfluenceMode, next []Influence, seen []int) {
	if canSee == nil {
		canSee = AlwaysVisible
	}

	for i := range agents {
		seen[i] = 0
		if mode == InfluenceLastWriter {
			next[i] = agents[i].Influence
		} else {
			next[i] = Influence{}
		}
	}

	merge := func(i int, contribution Influence) {
		seen[i]++
		if mode == InfluenceLastWriter {
			next[i] = contribution
			return
		}
		next[i] = next[i].add(contribution)
	}

	// O(n²): fine for tens of agents, there is no spatial index.
	for i := 0; i < len(agents); i++ {
		for j := i + 1; j < len(agents); j++ {
			a, b := agents[i], agents[j]
			if a.ID == b.ID {
				continue
			}
			if canSee(a, b) {
				merge(i, pairInfluence(a, b))
			}
			if canSee(b, a) {
				merge(j, pairInfluence(b, a))
			}
		}
	}

	for i := range agents {
		if mode == InfluenceAverage && seen[i] > 0 {
			next[i] = next[i].div(float64(seen[i]))
		}
		agents[i].Influence = next[i]
	}
}
