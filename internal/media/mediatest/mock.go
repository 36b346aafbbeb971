// Package mediatest provides a scriptable in-memory media.Reader for
// exercising consumers without real files.
package mediatest

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/ostinato-player/ostinato/internal/media"
)

// Reader is a fake format context that synthesizes packets from a
// waveform function. Failures can be scripted per call ordinal to drive
// error paths.
type Reader struct {
	TrackInfo  media.Track
	Others     []media.Track
	PacketSize int // frames per packet

	// Format selects the sample encoding of synthesized buffers. The
	// zero value is FormatF32.
	Format media.SampleFormat

	// Wave produces the value for every channel of a frame. Defaults to
	// silence.
	Wave func(frame int64) float32

	// FailSeekAt marks seek call ordinals (0-based) that return ErrSeek.
	FailSeekAt map[int]bool

	// ErrAtPacket returns the given error from the matching NextPacket
	// call instead of a buffer. The stream position does not advance.
	ErrAtPacket map[int]error

	// ForeignAt makes the matching NextPacket call deliver its packet on
	// a track id the file does not advertise as the decode target.
	ForeignAt map[int]bool

	Seeks   []time.Duration // every seek target, in call order
	Packets int             // NextPacket calls so far
	Closed  bool

	pos       int64
	seekCalls int
}

// New returns a Reader over a single track of the given shape.
func New(sampleRate, channels int, frames int64, wave func(frame int64) float32) *Reader {
	return &Reader{
		TrackInfo: media.Track{
			Codec:      media.CodecPCM,
			Channels:   channels,
			SampleRate: sampleRate,
			Frames:     frames,
		},
		PacketSize: 256,
		Wave:       wave,
	}
}

// Sine returns the standard test waveform, a full-scale sine at freq Hz.
func Sine(sampleRate int, freq float64) func(frame int64) float32 {
	return func(frame int64) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	}
}

// Constant returns a waveform pinned at v.
func Constant(v float32) func(frame int64) float32 {
	return func(frame int64) float32 { return v }
}

func (r *Reader) Tracks() []media.Track {
	return append([]media.Track{r.TrackInfo}, r.Others...)
}

func (r *Reader) DefaultTrack() (media.Track, error) {
	if r.TrackInfo.Channels == 0 {
		return media.Track{}, media.ErrNoTrack
	}
	return r.TrackInfo, nil
}

func (r *Reader) NextPacket() (int, *media.Buffer, error) {
	ordinal := r.Packets
	r.Packets++

	if err, ok := r.ErrAtPacket[ordinal]; ok {
		return r.TrackInfo.ID, nil, err
	}
	if r.ForeignAt[ordinal] {
		buf := r.synthesize(r.pos, r.PacketSize)
		return r.TrackInfo.ID + 1, buf, nil
	}
	if r.pos >= r.TrackInfo.Frames {
		return 0, nil, io.EOF
	}
	n := int64(r.PacketSize)
	if r.pos+n > r.TrackInfo.Frames {
		n = r.TrackInfo.Frames - r.pos
	}
	buf := r.synthesize(r.pos, int(n))
	r.pos += n
	return r.TrackInfo.ID, buf, nil
}

func (r *Reader) synthesize(start int64, frames int) *media.Buffer {
	channels := r.TrackInfo.Channels
	values := make([]float64, frames*channels)
	for i := 0; i < frames; i++ {
		var v float32
		if r.Wave != nil {
			v = r.Wave(start + int64(i))
		}
		for ch := 0; ch < channels; ch++ {
			values[i*channels+ch] = float64(v)
		}
	}

	buf := &media.Buffer{Format: r.Format, Channels: channels}
	switch r.Format {
	case media.FormatS16:
		buf.S16 = make([]int16, len(values))
		for i, v := range values {
			buf.S16[i] = int16(math.Round(v * 32767))
		}
	case media.FormatU16:
		buf.U16 = make([]uint16, len(values))
		for i, v := range values {
			buf.U16[i] = uint16(math.Round((v + 1) / 2 * 65535))
		}
	case media.FormatS32:
		buf.S32 = make([]int32, len(values))
		for i, v := range values {
			buf.S32[i] = int32(math.Round(v * 2147483647))
		}
	case media.FormatU32:
		buf.U32 = make([]uint32, len(values))
		for i, v := range values {
			buf.U32[i] = uint32(math.Round((v + 1) / 2 * 4294967295))
		}
	default:
		buf.F32 = make([]float32, len(values))
		for i, v := range values {
			buf.F32[i] = float32(v)
		}
	}
	return buf
}

func (r *Reader) Seek(track int, t time.Duration) error {
	ordinal := r.seekCalls
	r.seekCalls++
	r.Seeks = append(r.Seeks, t)

	if track != r.TrackInfo.ID {
		return fmt.Errorf("%w: unknown track %d", media.ErrSeek, track)
	}
	if r.FailSeekAt[ordinal] {
		return fmt.Errorf("%w: scripted failure", media.ErrSeek)
	}
	frame := int64(t.Seconds() * float64(r.TrackInfo.SampleRate))
	if frame < 0 {
		frame = 0
	}
	if frame > r.TrackInfo.Frames {
		frame = r.TrackInfo.Frames
	}
	r.pos = frame
	return nil
}

func (r *Reader) Close() error {
	r.Closed = true
	return nil
}
