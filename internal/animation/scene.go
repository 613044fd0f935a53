package animation

import "github.com/Rorical/RoriLogo/internal/models"

// ActivityMarker is present in rendered output only while an instruction is
// animating. Harnesses wait for it to disappear instead of sleeping.
const ActivityMarker = "◌ drawing"

type Segment struct {
	ID   string
	From models.Point
	To   models.Point
}

// Scene is everything the canvas needs for one render.
type Scene struct {
	Trail     []Segment
	InFlight  *Segment
	Pose      models.Pose
	Animating bool
	Cursor    int
	Total     int
}

// Compose splits instructions at cursor into the committed trail and the
// in-flight line. Turns and unrecognized kinds never draw.
func Compose(instructions []models.Instruction, cursor int, pose models.Pose) Scene {
	scene := Scene{
		Pose:   pose,
		Cursor: cursor,
		Total:  len(instructions),
	}
	for i := 0; i < cursor && i < len(instructions); i++ {
		ins := instructions[i]
		if ins.Kind == models.Move {
			scene.Trail = append(scene.Trail, Segment{ID: ins.ID, From: ins.From, To: ins.To})
		}
	}
	if cursor >= 0 && cursor < len(instructions) {
		target := instructions[cursor]
		scene.Animating = target.Valid()
		if target.Kind == models.Move {
			scene.InFlight = &Segment{ID: target.ID, From: target.From, To: pose.Position()}
		}
	}
	return scene
}

func (s Scene) Marker() string {
	if s.Animating {
		return ActivityMarker
	}
	return ""
}
