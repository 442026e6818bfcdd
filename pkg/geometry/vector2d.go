package geometry

import (
	"fmt"
	"math"
)

// Epsilon is the tolerance used for float64 comparisons and for deciding
// that a vector is too short to carry a direction.
const (
	Epsilon = 1e-9
)

// Vector2D is a 2D vector or point in world space (y axis pointing up).
// Fields are exported so literals like Vector2D{X: 1, Y: 2} stay readable.
type Vector2D struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Zero is the null vector.
var Zero = Vector2D{}

// NewVector creates a new Vector2D.
func NewVector(x, y float64) Vector2D {
	return Vector2D{X: x, Y: y}
}

// NewVectorPolar creates a vector from a length and an angle in radians.
func NewVectorPolar(radius, theta float64) Vector2D {
	x := radius * math.Cos(theta)
	y := radius * math.Sin(theta)

	if math.Abs(x) < Epsilon {
		x = 0
	}
	if math.Abs(y) < Epsilon {
		y = 0
	}

	return Vector2D{X: x, Y: y}
}

// String implements fmt.Stringer.
func (v Vector2D) String() string {
	return fmt.Sprintf("(%.2f, %.2f)", v.X, v.Y)
}

// ---------------------------------------------------------------------
// Arithmetic
// Value receivers, every operation returns a new vector.
// ---------------------------------------------------------------------

// Add returns v + other.
func (v Vector2D) Add(other Vector2D) Vector2D {
	return Vector2D{v.X + other.X, v.Y + other.Y}
}

// Sub returns v - other.
func (v Vector2D) Sub(other Vector2D) Vector2D {
	return Vector2D{v.X - other.X, v.Y - other.Y}
}

// Mul scales the vector by a scalar value.
func (v Vector2D) Mul(scalar float64) Vector2D {
	return Vector2D{v.X * scalar, v.Y * scalar}
}

// Div scales the vector by 1/scalar.
// A zero scalar yields the zero vector instead of Inf coordinates, so a
// degenerate division can never leak NaN into the simulation.
func (v Vector2D) Div(scalar float64) Vector2D {
	if scalar == 0 {
		return Zero
	}
	return Vector2D{v.X / scalar, v.Y / scalar}
}

// Dot returns the dot product of two vectors.
func (v Vector2D) Dot(other Vector2D) float64 {
	return v.X*other.X + v.Y*other.Y
}

// ---------------------------------------------------------------------
// Magnitude and Normalization
// ---------------------------------------------------------------------

// LenSqr returns the squared length. Prefer it over Len for comparisons.
func (v Vector2D) LenSqr() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Len returns the length of the vector.
func (v Vector2D) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns a unit vector in the same direction,
// or the zero vector when the length is below Epsilon.
func (v Vector2D) Normalize() Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return v.Mul(1 / l)
}

// WithLen returns a vector of length l pointing in the direction of v.
// The zero vector stays zero.
func (v Vector2D) WithLen(l float64) Vector2D {
	return v.Normalize().Mul(l)
}

// ClampLen limits the length of v to max, keeping its direction.
func (v Vector2D) ClampLen(max float64) Vector2D {
	if max <= 0 {
		return Zero
	}
	if v.LenSqr() > max*max {
		return v.WithLen(max)
	}
	return v
}

// ClampLenRange rescales v so that min <= |v| <= max.
// The zero vector has no direction and is returned unchanged.
// When min > max the upper bound wins.
func (v Vector2D) ClampLenRange(min, max float64) Vector2D {
	l := v.Len()
	if l < Epsilon {
		return Zero
	}
	return v.Mul(math.Min(math.Max(l, min), max) / l)
}

// IsZero reports whether both coordinates are within Epsilon of zero.
func (v Vector2D) IsZero() bool {
	return math.Abs(v.X) <= Epsilon && math.Abs(v.Y) <= Epsilon
}

// IsFinite reports whether neither coordinate is NaN or infinite.
func (v Vector2D) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ---------------------------------------------------------------------
// Geometric Utilities
// ---------------------------------------------------------------------

// DistanceTo returns the Euclidean distance to another point.
func (v Vector2D) DistanceTo(other Vector2D) float64 {
	return v.Sub(other).Len()
}

// DistanceSquaredTo returns the squared Euclidean distance to another point.
func (v Vector2D) DistanceSquaredTo(other Vector2D) float64 {
	return v.Sub(other).LenSqr()
}

// Angle returns the angle (radians) of the vector relative to the X axis, in [-Pi, Pi].
func (v Vector2D) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleBetween returns the unsigned angle (radians, in [0, Pi]) between v and other.
// It is 0 when either vector is zero.
func (v Vector2D) AngleBetween(other Vector2D) float64 {
	if v.IsZero() || other.IsZero() {
		return 0
	}
	cos := v.Dot(other) / (v.Len() * other.Len())
	return math.Acos(math.Max(-1, math.Min(1, cos)))
}

// Rotate rotates the vector by angle (radians) around the origin.
func (v Vector2D) Rotate(angle float64) Vector2D {
	cosTheta := math.Cos(angle)
	sinTheta := math.Sin(angle)
	return Vector2D{
		X: v.X*cosTheta - v.Y*sinTheta,
		Y: v.X*sinTheta + v.Y*cosTheta,
	}
}

// Eq checks if two vectors are approximately equal using Epsilon.
func (v Vector2D) Eq(other Vector2D) bool {
	return math.Abs(v.X-other.X) <= Epsilon && math.Abs(v.Y-other.Y) <= Epsilon
}
