package logo

import (
	"math"
	"strings"

	"github.com/Rorical/RoriLogo/internal/geometry"
	"github.com/Rorical/RoriLogo/internal/models"
)

const (
	// MaxInstructions bounds how many instructions one session can hold.
	MaxInstructions = 50000
	maxSteps        = 1000000
)

// Result describes what one Execute call did to the instruction list.
type Result struct {
	Instructions []models.Instruction
	Added        int
	Replaced     bool
	Version      int
}

// Interpreter keeps the turtle and the instruction list between inputs.
// It is not safe for concurrent use.
type Interpreter struct {
	turtle       models.Pose
	instructions []models.Instruction
	script       []string
	version      int
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

// Execute runs src against the current drawing. Clearing the screen yields a
// new list; everything else appends.
func (it *Interpreter) Execute(src string) (Result, error) {
	prog, err := Parse(src)
	if err != nil {
		return Result{}, err
	}
	return it.run(prog, src, false)
}

// Replace discards the drawing and runs src from a clean screen.
func (it *Interpreter) Replace(src string) (Result, error) {
	prog, err := Parse(src)
	if err != nil {
		return Result{}, err
	}
	return it.run(prog, src, true)
}

func (it *Interpreter) run(prog *Program, src string, replace bool) (Result, error) {
	r := runner{turtle: it.turtle, list: it.instructions, start: len(it.instructions)}
	if replace {
		r.clear()
	}
	if err := r.exec(prog.statements); err != nil {
		return Result{}, err
	}

	it.turtle = r.turtle
	it.instructions = r.list
	if r.cleared {
		it.version++
		it.script = nil
	}
	if strings.TrimSpace(src) != "" {
		it.script = append(it.script, strings.TrimSpace(src))
	}

	return Result{
		Instructions: it.instructions,
		Added:        len(r.list) - r.start,
		Replaced:     r.cleared,
		Version:      it.version,
	}, nil
}

func (it *Interpreter) Instructions() []models.Instruction { return it.instructions }

func (it *Interpreter) Turtle() models.Pose { return it.turtle }

func (it *Interpreter) Version() int { return it.version }

// Script returns the inputs that produced the current drawing, one per line.
func (it *Interpreter) Script() string {
	return strings.Join(it.script, "\n")
}

type runner struct {
	turtle  models.Pose
	list    []models.Instruction
	start   int
	steps   int
	cleared bool
}

func (r *runner) clear() {
	r.turtle = models.Pose{}
	r.list = nil
	r.start = 0
	r.cleared = true
}

func (r *runner) exec(stmts []statement) error {
	for _, s := range stmts {
		r.steps++
		if r.steps > maxSteps {
			return ErrTooManySteps
		}
		switch s.op {
		case opForward:
			r.move(s.arg)
		case opBack:
			r.move(-s.arg)
		case opLeft:
			r.turn(s.arg)
		case opRight:
			r.turn(-s.arg)
		case opClear:
			r.clear()
		case opHome:
			if r.turtle.X != 0 || r.turtle.Y != 0 {
				r.emit(models.NewMove(r.turtle.Position(), models.Point{}))
				r.turtle.X, r.turtle.Y = 0, 0
			}
			if r.turtle.Angle != 0 {
				r.emit(models.NewTurn(r.turtle.Angle, 0))
				r.turtle.Angle = 0
			}
		case opRepeat:
			for i := 0; i < int(s.arg); i++ {
				r.steps++
				if r.steps > maxSteps {
					return ErrTooManySteps
				}
				if err := r.exec(s.body); err != nil {
					return err
				}
			}
		}
		if len(r.list) > MaxInstructions {
			return ErrTooManySteps
		}
	}
	return nil
}

func (r *runner) move(distance float64) {
	dx, dy := geometry.Heading(r.turtle.Angle)
	from := r.turtle.Position()
	to := models.Point{X: round(from.X + dx*distance), Y: round(from.Y + dy*distance)}
	r.emit(models.NewMove(from, to))
	r.turtle.X, r.turtle.Y = to.X, to.Y
}

func (r *runner) turn(degrees float64) {
	next := r.turtle.Angle + degrees
	r.emit(models.NewTurn(r.turtle.Angle, next))
	r.turtle.Angle = next
}

func (r *runner) emit(ins models.Instruction) {
	r.list = append(r.list, ins)
}

// round trims floating point residue from trigonometry.
func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
