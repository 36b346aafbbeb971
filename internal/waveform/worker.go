package waveform

import "sync"

// Result is one finished generation run.
type Result struct {
	Path   string
	Points []float32
	Err    error
}

// Worker generates waveforms off the UI goroutine, one request at a
// time semantically: requesting a new path supersedes any run still in
// flight, whose result is dropped on completion (last writer wins). The
// channel is buffered so delivery never blocks a generation goroutine.
type Worker struct {
	mu      sync.Mutex
	seq     int
	latest  string
	results chan Result
	opts    Options

	// generate is swappable for tests.
	generate func(path string, opts Options) ([]float32, error)
}

// NewWorker returns a worker generating with the given options.
func NewWorker(opts Options) *Worker {
	return &Worker{
		results:  make(chan Result, 1),
		opts:     opts,
		generate: GenerateOpts,
	}
}

// Request starts generating the waveform for path in the background.
func (w *Worker) Request(path string) {
	w.mu.Lock()
	w.seq++
	id := w.seq
	w.latest = path
	w.mu.Unlock()

	go func() {
		points, err := w.generate(path, w.opts)

		w.mu.Lock()
		stale := id != w.seq
		w.mu.Unlock()
		if stale {
			return
		}

		// Replace an undelivered older result rather than block.
		select {
		case <-w.results:
		default:
		}
		w.results <- Result{Path: path, Points: points, Err: err}
	}()
}

// Results delivers finished runs. Consumers should verify Result.Path
// against their current track; a slow run can still race a fresh
// Request past the staleness check.
func (w *Worker) Results() <-chan Result {
	return w.results
}
