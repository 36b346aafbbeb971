// Package player streams decoded audio to the output device and tracks
// transport state for the UI.
package player

import (
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/ostinato-player/ostinato/internal/config"
	"github.com/ostinato-player/ostinato/internal/media"
)

// The process gets exactly one output context; oto cannot reinitialize.
// Everything plays at the fixed rate and pcmStream resamples to match.
var (
	outputOnce sync.Once
	outputCtx  *oto.Context
	outputErr  error
)

func outputContext() (*oto.Context, error) {
	outputOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   config.PlaybackRate,
			ChannelCount: config.PlaybackChannels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			outputErr = fmt.Errorf("opening audio output: %w", err)
			return
		}
		<-ready
		outputCtx = ctx
	})
	return outputCtx, outputErr
}

// Player plays one file at a time. It owns its own media.Reader; a
// waveform run over the same file opens an independent one, so the two
// never fight over stream position.
type Player struct {
	mu sync.Mutex

	state    PlaybackState
	path     string
	track    media.Track
	duration time.Duration
	base     time.Duration // stream position where the current pcmStream started

	src    *media.Source
	reader media.Reader
	stream *pcmStream
	out    *oto.Player
	tap    *Tap
}

// New returns a stopped player.
func New() *Player {
	return &Player{tap: NewTap(config.ScopeWindow * 2)}
}

// Tap exposes the oscilloscope sample tap.
func (p *Player) Tap() *Tap { return p.tap }

// Play stops any current playback and starts the given file.
func (p *Player) Play(path string) error {
	ctx, err := outputContext()
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardown()

	src, err := media.Open(path)
	if err != nil {
		return err
	}
	r, err := media.Probe(src, media.Hint(path))
	if err != nil {
		src.Close()
		return err
	}
	track, err := r.DefaultTrack()
	if err != nil {
		r.Close()
		src.Close()
		return err
	}
	duration, err := track.Duration()
	if err != nil {
		// Playable but unseekable; the transport shows elapsed only.
		duration = 0
	}

	p.src = src
	p.reader = r
	p.track = track
	p.path = path
	p.duration = duration
	p.base = 0
	p.tap.Reset()
	p.stream = newPCMStream(r, track, p.tap)
	p.out = ctx.NewPlayer(p.stream)
	p.out.Play()
	p.state = StatePlaying
	return nil
}

// TogglePause switches between playing and paused. A stopped player
// stays stopped.
func (p *Player) TogglePause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.state {
	case StatePlaying:
		p.out.Pause()
		p.state = StatePaused
	case StatePaused:
		p.out.Play()
		p.state = StatePlaying
	}
}

// Stop ends playback and releases the file.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.teardown()
}

// SeekBy moves the transport by delta, clamped to the track. Tracks
// without a known duration clamp only at the start.
func (p *Player) SeekBy(delta time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == StateStopped {
		return nil
	}

	target := p.position() + delta
	if target < 0 {
		target = 0
	}
	if p.duration > 0 && target > p.duration {
		target = p.duration
	}
	if err := p.reader.Seek(p.track.ID, target); err != nil {
		return err
	}

	// The old oto player holds buffered audio from before the seek;
	// replace it along with the stream.
	wasPlaying := p.state == StatePlaying
	p.out.Close()
	p.base = target
	p.tap.Reset()
	p.stream = newPCMStream(p.reader, p.track, p.tap)
	p.out = outputCtx.NewPlayer(p.stream)
	if wasPlaying {
		p.out.Play()
	}
	return nil
}

// Status snapshots the transport.
func (p *Player) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Status{
		State:    p.state,
		Path:     p.path,
		Track:    p.track,
		Elapsed:  p.position(),
		Duration: p.duration,
	}
}

// Finished reports whether the current track played to its end.
func (p *Player) Finished() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state != StatePlaying || p.duration == 0 {
		return false
	}
	return p.position() >= p.duration && !p.out.IsPlaying()
}

func (p *Player) position() time.Duration {
	if p.stream == nil {
		return 0
	}
	frames := p.stream.elapsedFrames()
	return p.base + time.Duration(frames)*time.Second/config.PlaybackRate
}

// teardown closes everything; callers hold the lock.
func (p *Player) teardown() {
	if p.out != nil {
		p.out.Close()
		p.out = nil
	}
	if p.reader != nil {
		p.reader.Close()
		p.reader = nil
	}
	if p.src != nil {
		p.src.Close()
		p.src = nil
	}
	p.stream = nil
	p.state = StateStopped
	p.path = ""
	p.track = media.Track{}
	p.duration = 0
	p.base = 0
}
