// Package animation replays a list of drawing instructions one at a time,
// interpolating the turtle pose from frame timestamps.
package animation

import (
	"log/slog"

	"github.com/Rorical/RoriLogo/internal/logging"
	"github.com/Rorical/RoriLogo/internal/models"
)

// Hooks observe the sequencer lifecycle. Any of them may be nil.
type Hooks struct {
	OnStart    func(index int, ins models.Instruction)
	OnComplete func(index int, ins models.Instruction, duration float64)
	OnReset    func(previous int)
}

type Option func(*Sequencer)

func WithSpeed(speed Speed) Option {
	return func(s *Sequencer) {
		s.speed = speed
	}
}

func WithHooks(hooks Hooks) Option {
	return func(s *Sequencer) {
		s.hooks = hooks
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sequencer) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Sequencer owns the cursor and the pose. It is not safe for concurrent use;
// all calls, including frame callbacks, must come from one goroutine.
type Sequencer struct {
	frames FrameScheduler
	speed  Speed
	hooks  Hooks
	logger *slog.Logger

	instructions []models.Instruction
	cursor       int
	pose         models.Pose
	driver       *Driver
}

func NewSequencer(frames FrameScheduler, opts ...Option) *Sequencer {
	s := &Sequencer{
		frames: frames,
		speed:  DefaultSpeed,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetInstructions hands the sequencer the current instruction list. A list
// that extends the previous one keeps the running animation. Anything else
// is a replacement: the running animation is cancelled and playback restarts
// from the origin.
func (s *Sequencer) SetInstructions(list []models.Instruction) {
	if extends(s.instructions, list) {
		s.instructions = list
		if s.driver == nil {
			s.advance()
		}
		return
	}

	previous := len(s.instructions)
	s.stop()
	s.instructions = list
	s.cursor = 0
	s.pose = models.Pose{}
	s.logger.Debug("instruction list replaced", "previous", previous, "current", len(list))
	if s.hooks.OnReset != nil {
		s.hooks.OnReset(previous)
	}
	s.advance()
}

// Close cancels any pending frame.
func (s *Sequencer) Close() {
	s.stop()
}

func (s *Sequencer) stop() {
	if s.driver != nil {
		s.driver.Cancel()
		s.driver = nil
	}
}

// advance starts the instruction at the cursor, skipping unrecognized kinds.
func (s *Sequencer) advance() {
	for s.cursor < len(s.instructions) {
		target := s.instructions[s.cursor]
		if !target.Valid() {
			s.logger.Warn("skipping unrecognized instruction", "index", s.cursor, "id", target.ID, "kind", int(target.Kind))
			s.cursor++
			continue
		}

		s.driver = NewDriver(s.frames, NewTween(target, s.pose, s.speed), s.setPose, s.complete)
		if s.hooks.OnStart != nil {
			s.hooks.OnStart(s.cursor, target)
		}
		s.driver.Start()
		return
	}
	s.driver = nil
}

func (s *Sequencer) setPose(p models.Pose) {
	s.pose = p
}

func (s *Sequencer) complete() {
	index := s.cursor
	ins := s.instructions[index]
	duration := s.driver.Tween().Duration

	s.driver = nil
	s.cursor++
	if s.hooks.OnComplete != nil {
		s.hooks.OnComplete(index, ins, duration)
	}
	s.advance()
}

func (s *Sequencer) Cursor() int { return s.cursor }

func (s *Sequencer) Pose() models.Pose { return s.pose }

func (s *Sequencer) Instructions() []models.Instruction { return s.instructions }

// Animating reports whether an instruction is in flight.
func (s *Sequencer) Animating() bool {
	return s.driver != nil
}

// Pending returns the handle of the frame currently awaited, if any.
func (s *Sequencer) Pending() (Handle, bool) {
	if s.driver == nil {
		return 0, false
	}
	return s.driver.Pending()
}

func (s *Sequencer) Scene() Scene {
	return Compose(s.instructions, s.cursor, s.pose)
}

func extends(previous, next []models.Instruction) bool {
	if len(next) < len(previous) {
		return false
	}
	for i := range previous {
		if previous[i].ID != next[i].ID {
			return false
		}
	}
	return true
}
