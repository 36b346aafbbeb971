package media

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/go-audio/aiff"
)

// aiffReader mirrors wavReader for big-endian signed AIFF PCM: go-audio
// parses the FORM/COMM chunks, raw packet reads happen at computed
// offsets.
type aiffReader struct {
	src       *Source
	track     Track
	dataStart int64
	frameSize int
	bitDepth  int
	pos       int64
	raw       []byte
	buf       Buffer
}

func newAIFFReader(src *Source) (Reader, error) {
	dec := aiff.NewDecoder(src)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("parsing aiff header: invalid file")
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("locating aiff pcm data: %w", err)
	}
	dataStart, err := src.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("locating aiff pcm data: %w", err)
	}

	channels := int(dec.NumChans)
	bitDepth := int(dec.BitDepth)
	if channels <= 0 || bitDepth == 0 || bitDepth%8 != 0 {
		return nil, fmt.Errorf("parsing aiff header: unsupported layout (%d ch, %d bit)", channels, bitDepth)
	}

	frameSize := channels * bitDepth / 8
	r := &aiffReader{
		src:       src,
		dataStart: dataStart,
		frameSize: frameSize,
		bitDepth:  bitDepth,
		track: Track{
			Codec:      CodecPCM,
			Channels:   channels,
			SampleRate: dec.SampleRate,
			Frames:     int64(dec.NumSampleFrames),
		},
	}
	r.raw = make([]byte, packetFrames*frameSize)
	return r, nil
}

func (r *aiffReader) Tracks() []Track { return []Track{r.track} }

func (r *aiffReader) DefaultTrack() (Track, error) { return r.track, nil }

func (r *aiffReader) NextPacket() (int, *Buffer, error) {
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

// decode converts big-endian signed PCM. 8- and 16-bit map into the s16
// domain, 24- and 32-bit into s32.
func (r *aiffReader) decode(raw []byte) {
	switch r.bitDepth {
	case 8:
		n := len(raw)
		if cap(r.buf.S16) < n {
			r.buf.S16 = make([]int16, n)
		}
		out := r.buf.S16[:n]
		for i, b := range raw {
			out[i] = int16(int8(b)) << 8
		}
		r.buf = Buffer{Format: FormatS16, Channels: r.track.Channels, S16: out}
	case 16:
		n := len(raw) / 2
		if cap(r.buf.S16) < n {
			r.buf.S16 = make([]int16, n)
		}
		out := r.buf.S16[:n]
		for i := 0; i < n; i++ {
			out[i] = int16(binary.BigEndian.Uint16(raw[i*2:]))
		}
		r.buf = Buffer{Format: FormatS16, Channels: r.track.Channels, S16: out}
	case 24:
		n := len(raw) / 3
		if cap(r.buf.S32) < n {
			r.buf.S32 = make([]int32, n)
		}
		out := r.buf.S32[:n]
		for i := 0; i < n; i++ {
			v := int32(uint32(raw[i*3])<<16 | uint32(raw[i*3+1])<<8 | uint32(raw[i*3+2]))
			if v&0x800000 != 0 {
				v -= 1 << 24
			}
			out[i] = v << 8
		}
		r.buf = Buffer{Format: FormatS32, Channels: r.track.Channels, S32: out}
	default: // 32-bit
		n := len(raw) / 4
		if cap(r.buf.S32) < n {
			r.buf.S32 = make([]int32, n)
		}
		out := r.buf.S32[:n]
		for i := 0; i < n; i++ {
			out[i] = int32(binary.BigEndian.Uint32(raw[i*4:]))
		}
		r.buf = Buffer{Format: FormatS32, Channels: r.track.Channels, S32: out}
	}
}

func (r *aiffReader) Seek(track int, t time.Duration) error {
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

func (r *aiffReader) Close() error { return nil }
