package animation

import (
	"github.com/Rorical/RoriLogo/internal/geometry"
	"github.com/Rorical/RoriLogo/internal/models"
)

// Speed sets how long instructions take to animate, in milliseconds.
type Speed struct {
	MovementPerUnit   float64 // per unit of distance
	RotationPerDegree float64 // per degree turned
}

var DefaultSpeed = Speed{
	MovementPerUnit:   5,
	RotationPerDegree: 1000.0 / 180,
}

// Duration returns the animation length of an instruction. Unrecognized
// kinds take no time.
func (s Speed) Duration(ins models.Instruction) float64 {
	switch ins.Kind {
	case models.Move:
		return geometry.Distance(ins) * s.MovementPerUnit
	case models.Turn:
		return geometry.AngularDelta(ins) * s.RotationPerDegree
	default:
		return 0
	}
}
