package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rorical/RoriLogo/internal/models"
)

func moveRight(from, to float64) models.Instruction {
	return models.NewMove(models.Point{X: from}, models.Point{X: to})
}

func TestSequencerEmptyListIsIdle(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	seq.SetInstructions(nil)

	assert.False(t, seq.Animating())
	assert.False(t, seq.Scene().Animating)
	assert.Equal(t, 0, frames.Requested())
}

func TestSequencerAnimatesMove(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	seq.SetInstructions([]models.Instruction{moveRight(0, 100)})
	require.True(t, seq.Animating())

	frames.Fire(0)
	frames.Fire(250)
	assert.Equal(t, models.Pose{X: 50}, seq.Pose())
	assert.Equal(t, 0, seq.Cursor())

	frames.Fire(500)
	assert.Equal(t, models.Pose{X: 100}, seq.Pose())
	assert.Equal(t, 1, seq.Cursor())
	assert.False(t, seq.Animating())
	assert.Equal(t, 0, frames.Pending())
	assert.Equal(t, 3, frames.Requested())
}

func TestSequencerAnimatesTurn(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	seq.SetInstructions([]models.Instruction{models.NewTurn(0, 90)})

	frames.Fire(0)
	frames.Fire(250)
	assert.InDelta(t, 45, seq.Pose().Angle, 1e-9)

	frames.Fire(500)
	assert.Equal(t, 90.0, seq.Pose().Angle)
	assert.Equal(t, 1, seq.Cursor())
}

func TestSequencerPlaysInOrder(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	seq.SetInstructions([]models.Instruction{moveRight(0, 100), models.NewTurn(0, 90)})

	frames.Fire(0)
	frames.Fire(500)
	assert.Equal(t, 1, seq.Cursor())
	assert.True(t, seq.Animating())

	frames.Fire(0)
	frames.Fire(500)
	assert.Equal(t, models.Pose{X: 100, Angle: 90}, seq.Pose())
	assert.Equal(t, 2, seq.Cursor())
	assert.False(t, seq.Animating())
}

func TestSequencerPoseMatchesEachCompletedInstruction(t *testing.T) {
	list := []models.Instruction{
		models.NewMove(models.Point{}, models.Point{X: 30, Y: 40}),
		models.NewTurn(0, -45),
		models.NewMove(models.Point{X: 30, Y: 40}, models.Point{X: 37.5, Y: 12.25}),
		models.NewTurn(-45, 200),
	}
	for _, step := range []float64{1, 7, 16.6, 100} {
		frames := NewManualFrames()
		seq := NewSequencer(frames)
		seq.SetInstructions(list)

		ts := 1234.5
		for k := 1; k <= len(list); k++ {
			for seq.Cursor() < k {
				frames.Fire(ts)
				ts += step
			}
			want := list[k-1]
			switch want.Kind {
			case models.Move:
				assert.Equal(t, want.To.X, seq.Pose().X)
				assert.Equal(t, want.To.Y, seq.Pose().Y)
			case models.Turn:
				assert.Equal(t, want.NewAngle, seq.Pose().Angle)
			}
		}
		assert.Equal(t, models.Pose{X: 37.5, Y: 12.25, Angle: 200}, seq.Pose())
	}
}

func TestSequencerAppendKeepsRunningAnimation(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	first := moveRight(0, 100)
	seq.SetInstructions([]models.Instruction{first})
	frames.Fire(0)
	frames.Fire(100)

	seq.SetInstructions([]models.Instruction{first, models.NewTurn(0, 90)})
	assert.Empty(t, frames.Cancelled())
	assert.Equal(t, 1, frames.Pending())

	frames.Fire(200)
	assert.Equal(t, models.Pose{X: 40}, seq.Pose())
}

func TestSequencerAppendWhileIdleStartsNext(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	first := moveRight(0, 10)
	seq.SetInstructions([]models.Instruction{first})
	frames.RunUntilIdle(0, 100, 10)
	require.False(t, seq.Animating())

	seq.SetInstructions([]models.Instruction{first, moveRight(10, 20)})
	assert.True(t, seq.Animating())
	assert.Equal(t, 1, seq.Cursor())
	assert.Equal(t, 1, frames.Pending())
}

func TestSequencerReplacementCancelsInFlight(t *testing.T) {
	frames := NewManualFrames()
	resets := 0
	seq := NewSequencer(frames, WithHooks(Hooks{OnReset: func(int) { resets++ }}))
	seq.SetInstructions([]models.Instruction{moveRight(0, 100)})
	frames.Fire(0)
	frames.Fire(250)

	handle, pending := seq.Pending()
	require.True(t, pending)

	seq.SetInstructions(nil)
	assert.Equal(t, []Handle{handle}, frames.Cancelled())
	assert.Equal(t, models.Pose{}, seq.Pose())
	assert.Equal(t, 0, seq.Cursor())
	assert.False(t, seq.Animating())
	assert.Equal(t, 1, resets)
}

func TestSequencerReplacementWhileIdleDoesNotCancel(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	seq.SetInstructions([]models.Instruction{moveRight(0, 10)})
	frames.RunUntilIdle(0, 100, 10)

	seq.SetInstructions([]models.Instruction{moveRight(0, 50)})
	assert.Empty(t, frames.Cancelled())
	assert.Equal(t, models.Pose{}, seq.Pose())
	assert.True(t, seq.Animating())
}

func TestSequencerCloseCancelsOnlyWhenPending(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	seq.Close()
	assert.Empty(t, frames.Cancelled())

	seq.SetInstructions([]models.Instruction{models.NewTurn(0, 90)})
	seq.Close()
	assert.Len(t, frames.Cancelled(), 1)
	assert.False(t, seq.Animating())

	frames.Fire(1000)
	assert.Equal(t, 0.0, seq.Pose().Angle)
}

func TestSequencerSkipsUnrecognizedKinds(t *testing.T) {
	frames := NewManualFrames()
	seq := NewSequencer(frames)
	seq.SetInstructions([]models.Instruction{{ID: "mystery"}, moveRight(0, 10)})

	assert.Equal(t, 1, seq.Cursor())
	assert.True(t, seq.Animating())
	frames.RunUntilIdle(0, 10, 100)

	scene := seq.Scene()
	require.Len(t, scene.Trail, 1)
	assert.Equal(t, 2, seq.Cursor())
}

func TestSequencerHooks(t *testing.T) {
	frames := NewManualFrames()
	var started, completed []int
	var durations []float64
	seq := NewSequencer(frames, WithSpeed(Speed{MovementPerUnit: 1, RotationPerDegree: 1}), WithHooks(Hooks{
		OnStart: func(i int, _ models.Instruction) { started = append(started, i) },
		OnComplete: func(i int, _ models.Instruction, d float64) {
			completed = append(completed, i)
			durations = append(durations, d)
		},
	}))
	seq.SetInstructions([]models.Instruction{moveRight(0, 10), models.NewTurn(0, 30)})
	frames.RunUntilIdle(0, 5, 100)

	assert.Equal(t, []int{0, 1}, started)
	assert.Equal(t, []int{0, 1}, completed)
	assert.Equal(t, []float64{10, 30}, durations)
}
