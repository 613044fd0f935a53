package animation

// Handle identifies a requested frame so it can be cancelled before it fires.
type Handle uint64

// FrameFunc receives a monotonically increasing timestamp in milliseconds.
// The origin is arbitrary.
type FrameFunc func(timestamp float64)

// FrameScheduler is the host's display refresh facility. Each request fires
// at most once; callers re-request to keep animating.
type FrameScheduler interface {
	RequestFrame(fn FrameFunc) Handle
	CancelFrame(h Handle)
}

type manualRequest struct {
	handle Handle
	fn     FrameFunc
}

// ManualFrames is a FrameScheduler driven by explicit Fire calls. It backs
// headless rendering and tests.
type ManualFrames struct {
	next      Handle
	pending   []manualRequest
	requested int
	cancelled []Handle
}

func NewManualFrames() *ManualFrames {
	return &ManualFrames{}
}

func (m *ManualFrames) RequestFrame(fn FrameFunc) Handle {
	m.next++
	m.requested++
	m.pending = append(m.pending, manualRequest{handle: m.next, fn: fn})
	return m.next
}

func (m *ManualFrames) CancelFrame(h Handle) {
	m.cancelled = append(m.cancelled, h)
	for i, req := range m.pending {
		if req.handle == h {
			m.pending = append(m.pending[:i], m.pending[i+1:]...)
			return
		}
	}
}

// Fire runs every callback pending at call time, in request order. Frames
// requested from inside a callback wait for the next Fire.
func (m *ManualFrames) Fire(timestamp float64) int {
	batch := m.pending
	m.pending = nil
	for _, req := range batch {
		req.fn(timestamp)
	}
	return len(batch)
}

// RunUntilIdle fires frames every step milliseconds starting at start until
// nothing is pending or maxFrames is reached. It returns the last timestamp.
func (m *ManualFrames) RunUntilIdle(start, step float64, maxFrames int) float64 {
	ts := start
	for i := 0; i < maxFrames && len(m.pending) > 0; i++ {
		m.Fire(ts)
		ts += step
	}
	return ts
}

func (m *ManualFrames) Pending() int { return len(m.pending) }

func (m *ManualFrames) Requested() int { return m.requested }

func (m *ManualFrames) Cancelled() []Handle {
	out := make([]Handle, len(m.cancelled))
	copy(out, m.cancelled)
	return out
}

// LastHandle returns the most recently issued handle, 0 if none.
func (m *ManualFrames) LastHandle() Handle { return m.next }
