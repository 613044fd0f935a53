package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Rorical/RoriLogo/internal/models"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		ins  models.Instruction
		want float64
	}{
		{"horizontal", models.NewMove(models.Point{}, models.Point{X: 100}), 100},
		{"pythagorean", models.NewMove(models.Point{X: 1, Y: 1}, models.Point{X: 4, Y: 5}), 5},
		{"degenerate", models.NewMove(models.Point{X: 7, Y: 7}, models.Point{X: 7, Y: 7}), 0},
		{"turn measures nothing", models.NewTurn(0, 90), 0},
		{"unknown kind", models.Instruction{From: models.Point{}, To: models.Point{X: 3}}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Distance(tt.ins), 1e-9)
		})
	}
}

func TestAngularDelta(t *testing.T) {
	assert.Equal(t, 90.0, AngularDelta(models.NewTurn(0, 90)))
	assert.Equal(t, 90.0, AngularDelta(models.NewTurn(90, 0)))
	assert.Equal(t, 0.0, AngularDelta(models.NewTurn(45, 45)))
	assert.Equal(t, 0.0, AngularDelta(models.NewMove(models.Point{}, models.Point{X: 10})))
}

func TestLerp(t *testing.T) {
	assert.Equal(t, 50.0, Lerp(0, 100, 0.5))
	assert.Equal(t, -10.0, Lerp(10, -30, 0.5))
	assert.Equal(t, 3.0, Lerp(3, 9, 0))
}

func TestHeading(t *testing.T) {
	dx, dy := Heading(90)
	assert.InDelta(t, 0, dx, 1e-9)
	assert.InDelta(t, 1, dy, 1e-9)
}
