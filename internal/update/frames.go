package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Rorical/RoriLogo/internal/animation"
)

// FrameMsg is delivered once per requested frame
type FrameMsg struct {
	Handle animation.Handle
	Time   time.Time
}

// Frames is the display refresh facility on top of tea.Tick. Requested
// frames are queued as commands and must be handed to Bubble Tea with Flush
// at the end of each Update. It must only be used from the Update goroutine.
type Frames struct {
	interval time.Duration
	origin   time.Time
	next     animation.Handle
	pending  map[animation.Handle]animation.FrameFunc
	queued   []tea.Cmd
}

func NewFrames(interval time.Duration) *Frames {
	return &Frames{
		interval: interval,
		origin:   time.Now(),
		pending:  make(map[animation.Handle]animation.FrameFunc),
	}
}

func (f *Frames) RequestFrame(fn animation.FrameFunc) animation.Handle {
	f.next++
	handle := f.next
	f.pending[handle] = fn
	f.queued = append(f.queued, tea.Tick(f.interval, func(t time.Time) tea.Msg {
		return FrameMsg{Handle: handle, Time: t}
	}))
	return handle
}

func (f *Frames) CancelFrame(h animation.Handle) {
	delete(f.pending, h)
}

// Fire runs the callback for msg unless it was cancelled. It reports whether
// a callback ran.
func (f *Frames) Fire(msg FrameMsg) bool {
	fn, ok := f.pending[msg.Handle]
	if !ok {
		return false
	}
	delete(f.pending, msg.Handle)
	fn(f.Timestamp(msg.Time))
	return true
}

// Timestamp converts t to milliseconds since the scheduler was created
func (f *Frames) Timestamp(t time.Time) float64 {
	return float64(t.Sub(f.origin)) / float64(time.Millisecond)
}

// Flush returns the ticks requested since the last Flush
func (f *Frames) Flush() tea.Cmd {
	if len(f.queued) == 0 {
		return nil
	}
	cmds := f.queued
	f.queued = nil
	return tea.Batch(cmds...)
}

func (f *Frames) Pending() int {
	return len(f.pending)
}
