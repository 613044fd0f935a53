package animation

import (
	"github.com/Rorical/RoriLogo/internal/geometry"
	"github.com/Rorical/RoriLogo/internal/models"
)

// Tween is the in-flight state of one instruction. Step is a pure
// transition; Driver performs the scheduling around it.
type Tween struct {
	Target   models.Instruction
	From     models.Pose
	To       models.Pose
	Duration float64

	start   float64
	started bool
}

// NewTween prepares target for animation from the current pose. Moves keep
// the heading, turns keep the position.
func NewTween(target models.Instruction, current models.Pose, speed Speed) Tween {
	tw := Tween{
		Target:   target,
		From:     current,
		To:       current,
		Duration: speed.Duration(target),
	}
	switch target.Kind {
	case models.Move:
		tw.From.X, tw.From.Y = target.From.X, target.From.Y
		tw.To.X, tw.To.Y = target.To.X, target.To.Y
	case models.Turn:
		tw.From.Angle = target.PreviousAngle
		tw.To.Angle = target.NewAngle
	}
	return tw
}

// Step advances the tween to timestamp. The first call only records the
// start time. Once the duration has elapsed it returns the exact target
// pose and false.
func (tw Tween) Step(timestamp float64) (Tween, models.Pose, bool) {
	if !tw.started {
		tw.start = timestamp
		tw.started = true
	}
	elapsed := timestamp - tw.start
	if elapsed < tw.Duration {
		return tw, tw.at(elapsed / tw.Duration), true
	}
	return tw, tw.To, false
}

func (tw Tween) at(progress float64) models.Pose {
	return models.Pose{
		X:     geometry.Lerp(tw.From.X, tw.To.X, progress),
		Y:     geometry.Lerp(tw.From.Y, tw.To.Y, progress),
		Angle: geometry.Lerp(tw.From.Angle, tw.To.Angle, progress),
	}
}

// Driver animates one Tween, requesting one frame per firing until the
// tween completes.
type Driver struct {
	frames  FrameScheduler
	tween   Tween
	onPose  func(models.Pose)
	onDone  func()
	handle  Handle
	pending bool
}

func NewDriver(frames FrameScheduler, tween Tween, onPose func(models.Pose), onDone func()) *Driver {
	return &Driver{
		frames: frames,
		tween:  tween,
		onPose: onPose,
		onDone: onDone,
	}
}

func (d *Driver) Start() {
	d.request()
}

func (d *Driver) request() {
	d.pending = true
	d.handle = d.frames.RequestFrame(d.tick)
}

func (d *Driver) tick(timestamp float64) {
	// a host that fires a cancelled frame must not move the pose
	if !d.pending {
		return
	}
	d.pending = false

	next, pose, more := d.tween.Step(timestamp)
	d.tween = next
	d.onPose(pose)
	if more {
		d.request()
		return
	}
	d.onDone()
}

// Cancel drops the pending frame. It reports false and leaves the scheduler
// untouched when nothing is pending.
func (d *Driver) Cancel() bool {
	if !d.pending {
		return false
	}
	d.pending = false
	d.frames.CancelFrame(d.handle)
	return true
}

func (d *Driver) Pending() (Handle, bool) {
	return d.handle, d.pending
}

func (d *Driver) Tween() Tween {
	return d.tween
}
