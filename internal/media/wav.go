package media

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/go-audio/wav"
)

const wavFormatIEEEFloat = 3

// wavReader parses the RIFF header with go-audio/wav, then reads PCM
// packets straight off the source at computed offsets. Owning the offsets
// makes seeking sample-exact, which the go-audio decoder does not offer.
type wavReader struct {
	src       *Source
	track     Track
	dataStart int64
	frameSize int
	bitDepth  int
	float     bool
	pos       int64
	raw       []byte
	buf       Buffer
}

func newWAVReader(src *Source) (Reader, error) {
	dec := wav.NewDecoder(src)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("parsing wav header: invalid file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating wav pcm data: %w", err)
	}
	dataStart, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating wav pcm data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels <= 0 || bitDepth == 0 || bitDepth%8 != 0 {
		return nil, fmt.Errorf("parsing wav header: unsupported layout (%d ch, %d bit)", channels, bitDepth)
	}
	isFloat := dec.WavAudioFormat == wavFormatIEEEFloat
	if isFloat && bitDepth != 32 {
		return nil, fmt.Errorf("parsing wav header: unsupported float depth %d", bitDepth)
	}

	frameSize := channels * bitDepth / 8
	r := &wavReader{
		src:       src,
		dataStart: dataStart,
		frameSize: frameSize,
		bitDepth:  bitDepth,
		float:     isFloat,
		track: Track{
			Codec:      CodecPCM,
			Channels:   channels,
			SampleRate: int(dec.SampleRate),
			Frames:     dec.PCMLen() / int64(frameSize),
		},
	}
	r.raw = make([]byte, packetFrames*frameSize)
	r.buf.Channels = channels
	return r, nil
}

func (r *wavReader) Tracks() []Track { return []Track{r.track} }

func (r *wavReader) DefaultTrack() (Track, error) { return r.track, nil }

func (r *wavReader) NextPacket() (int, *Buffer, error) {
	if r.pos >= r.track.Frames {
		return 0, nil, io.EOF
	}
	frames := int64(packetFrames)
	if r.pos+frames > r.track.Frames {
		frames = r.track.Frames - r.pos
	}
	raw := r.raw[:frames*int64(r.frameSize)]
	n, err := io.ReadFull(r.src, raw)
	got := n / r.frameSize
	if got == 0 {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	r.pos += int64(got)
	r.decode(raw[:got*r.frameSize])
	return r.track.ID, &r.buf, nil
}

// decode converts one packet of little-endian PCM into the buffer. 8-bit
// wav is unsigned and widens into the u16 domain; 24-bit widens into s32.
func (r *wavReader) decode(raw []byte) {
	switch {
	case r.float:
		n := len(raw) / 4
		if cap(r.buf.F32) < n {
			r.buf.F32 = make([]float32, n)
		}
		out := r.buf.F32[:n]
		for i := 0; i < n; i++ {
			out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		r.buf = Buffer{Format: FormatF32, Channels: r.track.Channels, F32: out}
	case r.bitDepth == 8:
		n := len(raw)
		if cap(r.buf.U16) < n {
			r.buf.U16 = make([]uint16, n)
		}
		out := r.buf.U16[:n]
		for i, b := range raw {
			out[i] = uint16(b) * 257
		}
		r.buf = Buffer{Format: FormatU16, Channels: r.track.Channels, U16: out}
	case r.bitDepth == 16:
		n := len(raw) / 2
		if cap(r.buf.S16) < n {
			r.buf.S16 = make([]int16, n)
		}
		out := r.buf.S16[:n]
		for i := 0; i < n; i++ {
			out[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
		}
		r.buf = Buffer{Format: FormatS16, Channels: r.track.Channels, S16: out}
	case r.bitDepth == 24:
		n := len(raw) / 3
		if cap(r.buf.S32) < n {
			r.buf.S32 = make([]int32, n)
		}
		out := r.buf.S32[:n]
		for i := 0; i < n; i++ {
			v := int32(uint32(raw[i*3]) | uint32(raw[i*3+1])<<8 | uint32(raw[i*3+2])<<16)
			if v&0x800000 != 0 {
				v -= 1 << 24
			}
			out[i] = v << 8
		}
		r.buf = Buffer{Format: FormatS32, Channels: r.track.Channels, S32: out}
	default: // 32-bit integer
		n := len(raw) / 4
		if cap(r.buf.S32) < n {
			r.buf.S32 = make([]int32, n)
		}
		out := r.buf.S32[:n]
		for i := 0; i < n; i++ {
			out[i] = int32(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		r.buf = Buffer{Format: FormatS32, Channels: r.track.Channels, S32: out}
	}
}

func (r *wavReader) Seek(track int, t time.Duration) error {
	if track != r.track.ID {
		return fmt.Errorf("%w: unknown track %d", ErrSeek, track)
	}
	frame := frameAt(t, r.track.SampleRate)
	if frame > r.track.Frames {
		frame = r.track.Frames
	}
	if _, err := r.src.Seek(r.dataStart+frame*int64(r.frameSize), io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}
	r.pos = frame
	return nil
}

func (r *wavReader) Close() error { return nil }

// frameAt converts a timestamp to a frame index at the given rate.
func frameAt(t time.Duration, sampleRate int) int64 {
	if t < 0 {
		return 0
	}
	return int64(t.Seconds() * float64(sampleRate))
}
