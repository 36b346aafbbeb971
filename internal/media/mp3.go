package media

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	mp3 "github.com/hajimehoshi/go-mp3"
)

// go-mp3 always emits 16-bit little-endian stereo.
const mp3FrameBytes = 4

// mp3Reader treats a fixed-size block of decoded PCM as one packet. The
// decoder exposes its output as a byte-addressed seekable stream, so both
// the frame count and coarse seeking come from byte offsets.
type mp3Reader struct {
	dec   *mp3.Decoder
	track Track
	raw   []byte
	buf   Buffer
}

func newMP3Reader(src *Source) (Reader, error) {
	dec, err := mp3.NewDecoder(src)
	if err != nil {
		return nil, fmt.Errorf("parsing mp3 stream: %w", err)
	}
	var frames int64
	if n := dec.Length(); n > 0 {
		frames = n / mp3FrameBytes
	}
	return &mp3Reader{
		dec: dec,
		raw: make([]byte, packetFrames*mp3FrameBytes),
		track: Track{
			Codec:      CodecMP3,
			Channels:   2,
			SampleRate: dec.SampleRate(),
			Frames:     frames,
		},
	}, nil
}

func (r *mp3Reader) Tracks() []Track { return []Track{r.track} }

func (r *mp3Reader) DefaultTrack() (Track, error) { return r.track, nil }

func (r *mp3Reader) NextPacket() (int, *Buffer, error) {
	n, err := r.dec.Read(r.raw)
	if n == 0 {
		if err == nil || err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	values := n / 2
	if cap(r.buf.S16) < values {
		r.buf.S16 = make([]int16, values)
	}
	out := r.buf.S16[:values]
	for i := 0; i < values; i++ {
		out[i] = int16(binary.LittleEndian.Uint16(r.raw[i*2:]))
	}
	r.buf = Buffer{Format: FormatS16, Channels: 2, S16: out}
	return r.track.ID, &r.buf, nil
}

func (r *mp3Reader) Seek(track int, t time.Duration) error {
	if track != r.track.ID {
		return fmt.Errorf("%w: unknown track %d", ErrSeek, track)
	}
	offset := frameAt(t, r.track.SampleRate) * mp3FrameBytes
	if _, err := r.dec.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}
	return nil
}

func (r *mp3Reader) Close() error { return nil }
