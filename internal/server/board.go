package server

import (
	"sync"

	"github.com/Rorical/RoriLogo/internal/animation"
	"github.com/Rorical/RoriLogo/internal/models"
)

// Status is the animation state exposed to automation
type Status struct {
	Animating bool        `json:"animating"`
	Cursor    int         `json:"cursor"`
	Total     int         `json:"total"`
	Pose      models.Pose `json:"pose"`
	Version   int         `json:"version"`
}

// Board holds the latest status. The UI writes it, HTTP handlers read it.
type Board struct {
	mu     sync.RWMutex
	status Status
}

func NewBoard() *Board {
	return &Board{}
}

func (b *Board) Publish(scene animation.Scene, version int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = Status{
		Animating: scene.Animating,
		Cursor:    scene.Cursor,
		Total:     scene.Total,
		Pose:      scene.Pose,
		Version:   version,
	}
}

func (b *Board) Status() Status {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.status
}
