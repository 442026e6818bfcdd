package telemetry

import (
	"log/slog"
	"math"
	"testing"

	"github.com/lao-tseu-is-alive/go-boids/pkg/flocking"
	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

func agent(x, y, vx, vy float64) flocking.Agent {
	return flocking.Agent{
		Position: geometry.NewVector(x, y),
		Velocity: geometry.NewVector(vx, vy),
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9
}

func TestCompute(t *testing.T) {
	t.Run("Empty flock", func(t *testing.T) {
		s := Compute(3, 0.5, nil)
		if s.Tick != 3 || s.SimTime != 0.5 || s.Agents != 0 || s.MeanSpeed != 0 {
			t.Errorf("Compute on empty flock = %+v", s)
		}
	})

	t.Run("Single agent", func(t *testing.T) {
		s := Compute(0, 0, []flocking.Agent{agent(10, 20, 3, 4)})
		if s.MeanSpeed != 5 || s.SpeedStd != 0 {
			t.Errorf("speed mean/std = %v/%v; want 5/0", s.MeanSpeed, s.SpeedStd)
		}
		if s.CentroidX != 10 || s.CentroidY != 20 || s.Spread != 0 {
			t.Errorf("centroid (%v, %v) spread %v; want (10, 20) and 0", s.CentroidX, s.CentroidY, s.Spread)
		}
		if !almostEqual(s.Polarization, 1) {
			t.Errorf("Polarization = %v; want 1", s.Polarization)
		}
	})

	t.Run("Aligned flock", func(t *testing.T) {
		s := Compute(0, 0, []flocking.Agent{
			agent(-10, 0, 100, 0),
			agent(10, 0, 200, 0),
		})
		if s.MeanSpeed != 150 || s.MinSpeed != 100 || s.MaxSpeed != 200 {
			t.Errorf("speeds mean %v min %v max %v; want 150 100 200", s.MeanSpeed, s.MinSpeed, s.MaxSpeed)
		}
		// unbiased standard deviation of {100, 200}
		if !almostEqual(s.SpeedStd, 50*math.Sqrt2) {
			t.Errorf("SpeedStd = %v; want %v", s.SpeedStd, 50*math.Sqrt2)
		}
		if s.CentroidX != 0 || s.CentroidY != 0 || s.Spread != 10 {
			t.Errorf("centroid (%v, %v) spread %v; want (0, 0) and 10", s.CentroidX, s.CentroidY, s.Spread)
		}
		if !almostEqual(s.Polarization, 1) {
			t.Errorf("Polarization = %v; want 1", s.Polarization)
		}
	})

	t.Run("Opposite headings cancel", func(t *testing.T) {
		s := Compute(0, 0, []flocking.Agent{
			agent(0, 0, 70, 0),
			agent(0, 0, -70, 0),
		})
		if !almostEqual(s.Polarization, 0) {
			t.Errorf("Polarization = %v; want 0", s.Polarization)
		}
	})
}

func TestSample_LogValue(t *testing.T) {
	v := Sample{Tick: 7, Agents: 2, MeanSpeed: 70}.LogValue()
	if v.Kind() != slog.KindGroup {
		t.Fatalf("LogValue kind = %v; want Group", v.Kind())
	}
	attrs := v.Group()
	if len(attrs) == 0 || attrs[0].Key != "tick" || attrs[0].Value.Uint64() != 7 {
		t.Errorf("attributes = %v; want tick=7 first", attrs)
	}
}
