package simulation

import (
	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/telemetry"
)

// Snapshot is the state of the flock after one tick, as published to the
// renderers. It owns its Agents slice; nothing writes to it after publication.
type Snapshot struct {
	Tick     uint64
	Elapsed  float64
	Agents   []flocking.Agent
	Settings flocking.Settings
	Stats    telemetry.Sample
}

// Len returns the number of agents in the snapshot.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Agents)
}
