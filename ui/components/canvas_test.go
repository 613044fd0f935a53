package components

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rows(s string) []string {
	return strings.Split(s, "\n")
}

func TestRenderCanvasEmptyScene(t *testing.T) {
	out := rows(RenderCanvas(animation.Scene{}, 5, 5, 5))
	require.Len(t, out, 5)
	assert.Equal(t, "  →  ", out[2])
	assert.Equal(t, "     ", out[0])
}

func TestRenderCanvasTrailAndTurtle(t *testing.T) {
	scene := animation.Scene{
		Trail: []animation.Segment{{From: models.Point{}, To: models.Point{X: 10}}},
		Pose:  models.Pose{X: 10, Angle: 90},
	}
	out := rows(RenderCanvas(scene, 5, 5, 5))
	assert.Equal(t, "  ##↑", out[2])
}

func TestRenderCanvasInFlight(t *testing.T) {
	scene := animation.Scene{
		InFlight:  &animation.Segment{From: models.Point{}, To: models.Point{Y: 20}},
		Pose:      models.Pose{Y: 20, Angle: 90},
		Animating: true,
	}
	out := rows(RenderCanvas(scene, 5, 5, 5))
	// 20 units up at scale 5 is two rows
	assert.Equal(t, "  ↑  ", out[0])
	assert.Equal(t, "  +  ", out[1])
	assert.Equal(t, "  +  ", out[2])
}

func TestRenderCanvasClipsOutside(t *testing.T) {
	scene := animation.Scene{
		Trail: []animation.Segment{{From: models.Point{X: -1000}, To: models.Point{X: 1000}}},
		Pose:  models.Pose{X: 1000},
	}
	out := rows(RenderCanvas(scene, 5, 3, 5))
	assert.Equal(t, "#####", out[1])
}

func TestTurtleRune(t *testing.T) {
	assert.Equal(t, '→', TurtleRune(0))
	assert.Equal(t, '↑', TurtleRune(90))
	assert.Equal(t, '←', TurtleRune(180))
	assert.Equal(t, '↓', TurtleRune(-90))
	assert.Equal(t, '↗', TurtleRune(400))
	assert.Equal(t, '→', TurtleRune(359))
}

func TestRenderStatusShowsMarkerOnlyWhileAnimating(t *testing.T) {
	idle := RenderStatus("Ready", animation.Scene{Cursor: 2, Total: 2}, false, 0, 60)
	assert.NotContains(t, idle, animation.ActivityMarker)
	assert.Contains(t, idle, "[2/2]")

	busy := RenderStatus("Ready", animation.Scene{Animating: true, Cursor: 0, Total: 1}, false, 0, 60)
	assert.Contains(t, busy, animation.ActivityMarker)
}

func TestRenderEntriesLimit(t *testing.T) {
	entries := []models.Entry{
		{Content: "first", Type: models.Program},
		{Content: "fd 10", Type: models.Command},
		{Content: "bad", Type: models.Failure},
	}
	out := RenderEntries(entries, 2)
	assert.NotContains(t, out, "first")
	assert.Contains(t, out, "fd 10")
	assert.Contains(t, out, "error: bad")
}

func renderWithin(t *testing.T, scene animation.Scene, width, height int) []string {
	t.Helper()
	done := make(chan string, 1)
	go func() { done <- RenderCanvas(scene, width, height, 5) }()
	select {
	case out := <-done:
		return rows(out)
	case <-time.After(time.Second):
		t.Fatal("render did not finish")
	}
	return nil
}

func TestRenderCanvasHugeSegmentIsClipped(t *testing.T) {
	far := models.Point{X: 1e300}
	scene := animation.Scene{
		Trail: []animation.Segment{
			{From: models.Point{}, To: far},
			{From: far, To: models.Point{X: 1e300, Y: -1e300}},
		},
		Pose: models.Pose{X: 1e300, Y: -1e300},
	}
	out := renderWithin(t, scene, 5, 3)
	assert.Equal(t, "  ###", out[1])
	assert.Equal(t, "     ", out[0])
	assert.Equal(t, "     ", out[2])
}

func TestRenderCanvasDiagonalAcrossGrid(t *testing.T) {
	scene := animation.Scene{
		Trail: []animation.Segment{{From: models.Point{X: -1e9, Y: 2e9}, To: models.Point{X: 1e9, Y: -2e9}}},
		Pose:  models.Pose{X: -1e9, Y: 2e9},
	}
	out := renderWithin(t, scene, 5, 5)
	assert.Equal(t, "#    ", out[0])
	assert.Equal(t, "  #  ", out[2])
	assert.Equal(t, "    #", out[4])
}

func TestRenderCanvasSkipsNonFinite(t *testing.T) {
	nan := models.Point{X: math.NaN(), Y: math.NaN()}
	scene := animation.Scene{
		Trail:    []animation.Segment{{From: models.Point{}, To: nan}},
		InFlight: &animation.Segment{From: nan, To: models.Point{X: math.Inf(1)}},
		Pose:     models.Pose{X: math.NaN(), Y: math.NaN()},
	}
	out := renderWithin(t, scene, 5, 3)
	for _, row := range out {
		assert.Equal(t, "     ", row)
	}
}
