package led

import "sync"

// Recorder is a headless Driver for tests and simulation. It keeps the
// current pair, a full history of every frame set, and can fan frames out to
// an observer (preview server, TUI).
type Recorder struct {
	mu      sync.Mutex
	current Pair
	history []Pair
	onFrame func(Pair)
}

func NewRecorder() *Recorder {
	return &Recorder{current: Pair{Left: Off, Right: Off}}
}

// OnFrame registers a callback invoked after every Set. The callback runs on
// the engine's goroutine and must not block.
func (r *Recorder) OnFrame(fn func(Pair)) {
	r.mu.Lock()
	r.onFrame = fn
	r.mu.Unlock()
}

func (r *Recorder) Set(left, right Position) {
	r.mu.Lock()
	if left != Unchanged {
		r.current.Left = left
	}
	if right != Unchanged {
		r.current.Right = right
	}
	frame := r.current
	r.history = append(r.history, frame)
	fn := r.onFrame
	r.mu.Unlock()
	if fn != nil {
		fn(frame)
	}
}

// Current returns the pair on display right now.
func (r *Recorder) Current() Pair {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// History returns a copy of every frame set so far, in order.
func (r *Recorder) History() []Pair {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Pair, len(r.history))
	copy(out, r.history)
	return out
}

// Frames returns the number of frames set so far.
func (r *Recorder) Frames() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.history)
}
