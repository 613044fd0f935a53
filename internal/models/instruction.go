package models

import "github.com/google/uuid"

// Kind identifies what an instruction does. The zero value is not a valid kind.
type Kind int

const (
	Move Kind = iota + 1
	Turn
)

func (k Kind) String() string {
	switch k {
	case Move:
		return "move"
	case Turn:
		return "turn"
	default:
		return "unknown"
	}
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pose is the turtle's position and heading in degrees
type Pose struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Angle float64 `json:"angle"`
}

func (p Pose) Position() Point {
	return Point{X: p.X, Y: p.Y}
}

// Instruction is one drawing or turning command in the replay list.
// Move uses From/To, Turn uses PreviousAngle/NewAngle.
type Instruction struct {
	ID            string  `json:"id"`
	Kind          Kind    `json:"kind"`
	From          Point   `json:"from"`
	To            Point   `json:"to"`
	PreviousAngle float64 `json:"previous_angle,omitempty"`
	NewAngle      float64 `json:"new_angle,omitempty"`
}

func NewMove(from, to Point) Instruction {
	return Instruction{ID: uuid.NewString(), Kind: Move, From: from, To: to}
}

func NewTurn(previous, next float64) Instruction {
	return Instruction{ID: uuid.NewString(), Kind: Turn, PreviousAngle: previous, NewAngle: next}
}

func (i Instruction) Valid() bool {
	return i.Kind == Move || i.Kind == Turn
}
