package flocking

import (
	"fmt"
	"math"

	"github.com/lao-tseu-is-alive/go-boids/pkg/geometry"
)

// DefaultWorldSize is the side of the square simulation area centered on the origin.
const DefaultWorldSize = 1000.0

// Boundary brings a position that left the simulation area back inside it.
type Boundary interface {
	Apply(p geometry.Vector2D) geometry.Vector2D
}

// Wrap is a toroidal boundary on a square of side Size centered on the origin:
// leaving through one edge re-enters through the opposite one, keeping the
// overshoot (Size/2 + e becomes -Size/2 + e).
type Wrap struct {
	Size float64
}

// Apply implements Boundary.
func (w Wrap) Apply(p geometry.Vector2D) geometry.Vector2D {
	return geometry.Vector2D{X: wrapAxis(p.X, w.Size), Y: wrapAxis(p.Y, w.Size)}
}

func wrapAxis(x, size float64) float64 {
	half := size / 2
	if x >= -half && x <= half {
		return x
	}
	m := math.Mod(x+half, size)
	if m < 0 {
		m += size
	}
	return m - half
}

// Teleport snaps a coordinate past one edge exactly onto the opposite edge,
// dropping the overshoot.
type Teleport struct {
	Size float64
}

// Apply implements Boundary.
func (t Teleport) Apply(p geometry.Vector2D) geometry.Vector2D {
	return geometry.Vector2D{X: teleportAxis(p.X, t.Size), Y: teleportAxis(p.Y, t.Size)}
}

func teleportAxis(x, size float64) float64 {
	half := size / 2
	switch {
	case x > half:
		return -half
	case x < -half:
		return half
	}
	return x
}

// ParseBoundary builds the boundary policy named in the configuration.
func ParseBoundary(name string, size float64) (Boundary, error) {
	switch name {
	case "", "wrap":
		return Wrap{Size: size}, nil
	case "teleport":
		return Teleport{Size: size}, nil
	}
	return nil, fmt.Errorf("unknown boundary policy %q", name)
}
