package media

import (
	"fmt"
	"io"
	"time"

	"github.com/jfreymuth/oggvorbis"
)

// vorbisReader decodes Ogg Vorbis through jfreymuth/oggvorbis, which
// emits float32 samples directly.
type vorbisReader struct {
	dec   *oggvorbis.Reader
	track Track
	buf   Buffer
}

func newVorbisReader(src *Source) (Reader, error) {
	dec, err := oggvorbis.NewReader(src)
	if err != nil {
		return nil, fmt.Errorf("parsing ogg stream: %w", err)
	}
	return &vorbisReader{
		dec: dec,
		track: Track{
			Codec:      CodecVorbis,
			Channels:   dec.Channels(),
			SampleRate: dec.SampleRate(),
			Frames:     dec.Length(),
		},
	}, nil
}

func (r *vorbisReader) Tracks() []Track { return []Track{r.track} }

func (r *vorbisReader) DefaultTrack() (Track, error) { return r.track, nil }

func (r *vorbisReader) NextPacket() (int, *Buffer, error) {
	want := packetFrames * r.track.Channels
	if cap(r.buf.F32) < want {
		r.buf.F32 = make([]float32, want)
	}
	n, err := r.dec.Read(r.buf.F32[:want])
	if n == 0 {
		if err == nil || err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	r.buf = Buffer{Format: FormatF32, Channels: r.track.Channels, F32: r.buf.F32[:n]}
	return r.track.ID, &r.buf, nil
}

func (r *vorbisReader) Seek(track int, t time.Duration) error {
	if track != r.track.ID {
		return fmt.Errorf("%w: unknown track %d", ErrSeek, track)
	}
	frame := frameAt(t, r.track.SampleRate)
	if frame > r.track.Frames {
		frame = r.track.Frames
	}
	if err := r.dec.SetPosition(frame); err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}
	return nil
}

func (r *vorbisReader) Close() error { return nil }
