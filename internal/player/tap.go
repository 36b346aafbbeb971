package player

import "sync"

// Tap is a bounded ring holding the most recently decoded mono samples.
// The playback goroutine writes, the oscilloscope reads; neither blocks
// the other beyond a short critical section.
type Tap struct {
	mu   sync.Mutex
	buf  []float64
	pos  int
	size int // samples written, capped at len(buf)
}

// NewTap returns a tap retaining the last n samples.
func NewTap(n int) *Tap {
	return &Tap{buf: make([]float64, n)}
}

// Push appends samples, discarding the oldest on overflow.
func (t *Tap) Push(samples []float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, s := range samples {
		t.buf[t.pos] = s
		t.pos = (t.pos + 1) % len(t.buf)
	}
	t.size += len(samples)
	if t.size > len(t.buf) {
		t.size = len(t.buf)
	}
}

// Window copies out the most recent n samples, oldest first. When fewer
// have been written the result is zero-padded at the front, so the
// freshest audio always sits at the tail.
func (t *Tap) Window(n int) []float64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]float64, n)
	avail := t.size
	if avail > n {
		avail = n
	}
	start := t.pos - avail
	if start < 0 {
		start += len(t.buf)
	}
	for i := 0; i < avail; i++ {
		out[n-avail+i] = t.buf[(start+i)%len(t.buf)]
	}
	return out
}

// Reset clears the ring, for track changes.
func (t *Tap) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pos = 0
	t.size = 0
	for i := range t.buf {
		t.buf[i] = 0
	}
}
