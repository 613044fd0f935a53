// Package geometry holds the pure helpers the animation core measures
// instructions with.
package geometry

import (
	"math"

	"github.com/Rorical/RoriLogo/internal/models"
)

// Distance returns the length of a Move. Anything else measures 0.
func Distance(ins models.Instruction) float64 {
	if ins.Kind != models.Move {
		return 0
	}
	return math.Hypot(ins.To.X-ins.From.X, ins.To.Y-ins.From.Y)
}

// AngularDelta returns how many degrees a Turn sweeps. Anything else measures 0.
func AngularDelta(ins models.Instruction) float64 {
	if ins.Kind != models.Turn {
		return 0
	}
	return math.Abs(ins.NewAngle - ins.PreviousAngle)
}

func Lerp(from, to, progress float64) float64 {
	return from + (to-from)*progress
}

// Heading returns the unit step for an angle in degrees, 0 pointing east.
func Heading(angle float64) (dx, dy float64) {
	rad := angle * math.Pi / 180
	return math.Cos(rad), math.Sin(rad)
}
