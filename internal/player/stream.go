package player

import (
	"encoding/binary"
	"errors"
	"io"
	"sync/atomic"

	"github.com/ostinato-player/ostinato/internal/config"
	"github.com/ostinato-player/ostinato/internal/media"
)

// pcmStream adapts a media.Reader into the byte stream the output device
// consumes: signed 16-bit little-endian stereo at the fixed playback
// rate. Sample rates are matched with linear interpolation, channel
// counts by duplicating mono or dropping extra channels.
//
// Read runs on the output device's goroutine; outFrames is the only
// state shared with the rest of the player.
type pcmStream struct {
	r     media.Reader
	track media.Track
	tap   *Tap

	ratio float64 // source frames advanced per output frame

	win     [][2]float64 // current window of source frames
	pos     float64      // fractional index into win
	prev    [2]float64   // last frame of the previous window
	hasPrev bool
	done    bool

	outFrames atomic.Int64
}

func newPCMStream(r media.Reader, track media.Track, tap *Tap) *pcmStream {
	return &pcmStream{
		r:     r,
		track: track,
		tap:   tap,
		ratio: float64(track.SampleRate) / float64(config.PlaybackRate),
	}
}

const outFrameBytes = 2 * config.PlaybackChannels

func (s *pcmStream) Read(p []byte) (int, error) {
	n := 0
	for n+outFrameBytes <= len(p) {
		l, r, ok := s.next()
		if !ok {
			if n > 0 {
				return n, nil
			}
			return 0, io.EOF
		}
		binary.LittleEndian.PutUint16(p[n:], uint16(clampS16(l)))
		binary.LittleEndian.PutUint16(p[n+2:], uint16(clampS16(r)))
		n += outFrameBytes
		s.outFrames.Add(1)
	}
	return n, nil
}

// next produces one output frame by interpolating between the source
// frames straddling the current position.
func (s *pcmStream) next() (left, right float64, ok bool) {
	for {
		i := int(s.pos)
		if i+1 < len(s.win) {
			break
		}
		if s.done {
			// Drain the final frame without a successor to blend into.
			if i < len(s.win) {
				f := s.win[i]
				s.pos += s.ratio
				return f[0], f[1], true
			}
			return 0, 0, false
		}
		s.refill()
	}

	i := int(s.pos)
	frac := s.pos - float64(i)
	a, b := s.win[i], s.win[i+1]
	left = a[0] + (b[0]-a[0])*frac
	right = a[1] + (b[1]-a[1])*frac
	s.pos += s.ratio
	return left, right, true
}

// refill replaces the window with the next decoded packet, keeping the
// previous final frame in front so interpolation stays continuous across
// packet boundaries.
func (s *pcmStream) refill() {
	for {
		id, buf, err := s.r.NextPacket()
		if err != nil {
			if errors.Is(err, media.ErrUnsupportedPacket) {
				continue
			}
			// EOF and decode failures both end the stream here; the
			// player surfaces track completion, not packet forensics.
			s.done = true
			return
		}
		if id != s.track.ID {
			continue
		}
		frames := buf.Frames()
		if frames == 0 {
			continue
		}

		// The old window's final frame carries over as index 0 of the
		// new one; shift the position to match.
		if len(s.win) > 0 {
			s.pos -= float64(len(s.win) - 1)
			if s.pos < 0 {
				s.pos = 0
			}
		}

		win := make([][2]float64, 0, frames+1)
		if s.hasPrev {
			win = append(win, s.prev)
		}
		mono := make([]float64, frames)
		for f := 0; f < frames; f++ {
			l := float64(buf.At(f, 0))
			r := l
			if buf.Channels > 1 {
				r = float64(buf.At(f, 1))
			}
			win = append(win, [2]float64{l, r})
			mono[f] = l
		}
		s.prev = win[len(win)-1]
		s.hasPrev = true
		s.win = win
		if s.tap != nil {
			s.tap.Push(mono)
		}
		return
	}
}

// elapsedFrames returns output frames delivered so far.
func (s *pcmStream) elapsedFrames() int64 {
	return s.outFrames.Load()
}

func clampS16(v float64) int16 {
	scaled := v * 32767
	if scaled > 32767 {
		return 32767
	}
	if scaled < -32768 {
		return -32768
	}
	return int16(scaled)
}
