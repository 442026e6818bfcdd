package flocking

import (
	"errors"
	"fmt"
)

// Default values of the flocking parameters.
const (
	DefaultMinSpeed         = 70.0
	DefaultMaxSpeed         = 200.0
	DefaultMaxSteerForce    = 10.0
	DefaultVisionRadius     = 1.0
	DefaultVisionAngle      = 360.0
	DefaultSeparationWeight = 1.0
	DefaultAlignmentWeight  = 1.0
	DefaultCohesionWeight   = 1.0
)

// Settings controls the flocking rules. It is passed by value into Flock.Step,
// so a tick always runs against one consistent set of parameters; changing
// rules at runtime means handing a new value to the next tick.
type Settings struct {
	MinSpeed      float64 `json:"minSpeed"`
	MaxSpeed      float64 `json:"maxSpeed"`
	MaxSteerForce float64 `json:"maxSteerForce"`
	VisionRadius  float64 `json:"visionRadius"`
	VisionAngle   float64 `json:"visionAngle"` // full field of view, degrees

	SeparationWeight float64 `json:"separationWeight"`
	AlignmentWeight  float64 `json:"alignmentWeight"`
	CohesionWeight   float64 `json:"cohesionWeight"`

	Separation bool `json:"separation"`
	Alignment  bool `json:"alignment"`
	Cohesion   bool `json:"cohesion"`
}

// DefaultSettings returns the documented defaults: only separation enabled.
func DefaultSettings() Settings {
	return Settings{
		MinSpeed:         DefaultMinSpeed,
		MaxSpeed:         DefaultMaxSpeed,
		MaxSteerForce:    DefaultMaxSteerForce,
		VisionRadius:     DefaultVisionRadius,
		VisionAngle:      DefaultVisionAngle,
		SeparationWeight: DefaultSeparationWeight,
		AlignmentWeight:  DefaultAlignmentWeight,
		CohesionWeight:   DefaultCohesionWeight,
		Separation:       true,
		Alignment:        false,
		Cohesion:         false,
	}
}

var (
	ErrNegativeValue   = errors.New("value must not be negative")
	ErrSpeedBounds     = errors.New("minSpeed must not exceed maxSpeed")
	ErrVisionAngleSpan = errors.New("visionAngle must be within [0, 360]")
)

// Validate reports settings that the simulation cannot honor.
// Step itself never fails: with MinSpeed > MaxSpeed the speed clamp lets
// MaxSpeed win, but such values are rejected here before reaching a tick.
func (s Settings) Validate() error {
	nonNegative := []struct {
		name  string
		value float64
	}{
		{"minSpeed", s.MinSpeed},
		{"maxSpeed", s.MaxSpeed},
		{"maxSteerForce", s.MaxSteerForce},
		{"visionRadius", s.VisionRadius},
	}
	for _, f := range nonNegative {
		if f.value < 0 {
			return fmt.Errorf("%s=%v: %w", f.name, f.value, ErrNegativeValue)
		}
	}
	if s.MinSpeed > s.MaxSpeed {
		return fmt.Errorf("minSpeed=%v maxSpeed=%v: %w", s.MinSpeed, s.MaxSpeed, ErrSpeedBounds)
	}
	if s.VisionAngle < 0 || s.VisionAngle > 360 {
		return fmt.Errorf("visionAngle=%v: %w", s.VisionAngle, ErrVisionAngleSpan)
	}
	return nil
}
