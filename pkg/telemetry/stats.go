// Package telemetry turns flock states into per-tick statistics that can be
// logged through slog or appended to a CSV file.
package telemetry

import (
	"log/slog"

	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Sample holds the statistics of the flock after one tick.
type Sample struct {
	Tick    uint64  `csv:"tick"`
	SimTime float64 `csv:"sim_time"`
	Agents  int     `csv:"agents"`

	// Speed distribution
	MeanSpeed float64 `csv:"mean_speed"`
	SpeedStd  float64 `csv:"speed_std"`
	MinSpeed  float64 `csv:"min_speed"`
	MaxSpeed  float64 `csv:"max_speed"`

	// Shape of the flock
	CentroidX float64 `csv:"centroid_x"`
	CentroidY float64 `csv:"centroid_y"`
	Spread    float64 `csv:"spread"` // mean distance to the centroid

	// Polarization is the length of the mean unit velocity: 1 when every
	// agent flies the same way, close to 0 for a disordered flock.
	Polarization float64 `csv:"polarization"`
}

// Compute builds the Sample of a set of agents at the given tick.
func Compute(tick uint64, simTime float64, agents []flocking.Agent) Sample {
	s := Sample{Tick: tick, SimTime: simTime, Agents: len(agents)}
	if len(agents) == 0 {
		return s
	}

	n := len(agents)
	speeds := make([]float64, n)
	xs := make([]float64, n)
	ys := make([]float64, n)
	heading := geometry.Zero
	for i, a := range agents {
		speeds[i] = a.Speed()
		xs[i] = a.Position.X
		ys[i] = a.Position.Y
		heading = heading.Add(a.Velocity.Normalize())
	}

	s.MeanSpeed, s.SpeedStd = stat.MeanStdDev(speeds, nil)
	if n < 2 {
		s.SpeedStd = 0
	}
	s.MinSpeed = floats.Min(speeds)
	s.MaxSpeed = floats.Max(speeds)

	s.CentroidX = floats.Sum(xs) / float64(n)
	s.CentroidY = floats.Sum(ys) / float64(n)
	centroid := geometry.NewVector(s.CentroidX, s.CentroidY)

	dists := make([]float64, n)
	for i, a := range agents {
		dists[i] = a.Position.DistanceTo(centroid)
	}
	s.Spread = stat.Mean(dists, nil)
	s.Polarization = heading.Len() / float64(n)

	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Sample) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("tick", s.Tick),
		slog.Float64("sim_time", s.SimTime),
		slog.Int("agents", s.Agents),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("speed_std", s.SpeedStd),
		slog.Float64("min_speed", s.MinSpeed),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Float64("centroid_x", s.CentroidX),
		slog.Float64("centroid_y", s.CentroidY),
		slog.Float64("spread", s.Spread),
		slog.Float64("polarization", s.Polarization),
	)
}
