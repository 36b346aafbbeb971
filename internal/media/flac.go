package media

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/mewkiz/flac"
)

// flacReader wraps a mewkiz/flac seekable stream. One packet is one FLAC
// frame; mewkiz verifies the frame CRCs during parsing, so corrupt frames
// surface as decode errors rather than bad samples.
type flacReader struct {
	stream *flac.Stream
	track  Track
	buf    Buffer
}

func newFLACReader(src *Source) (Reader, error) {
	stream, err := flac.NewSeek(src)
	if err != nil {
		return nil, fmt.Errorf("parsing flac stream: %w", err)
	}
	info := stream.Info
	return &flacReader{
		stream: stream,
		track: Track{
			Codec:      CodecFLAC,
			Channels:   int(info.NChannels),
			SampleRate: int(info.SampleRate),
			Frames:     int64(info.NSamples),
		},
	}, nil
}

func (r *flacReader) Tracks() []Track { return []Track{r.track} }

func (r *flacReader) DefaultTrack() (Track, error) {
	if r.track.Channels == 0 {
		return Track{}, ErrNoTrack
	}
	return r.track, nil
}

func (r *flacReader) NextPacket() (int, *Buffer, error) {
	frame, err := r.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, nil, io.EOF
		}
		return 0, nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	channels := len(frame.Subframes)
	if channels == 0 {
		return r.track.ID, &Buffer{Format: FormatS16, Channels: r.track.Channels}, nil
	}
	n := len(frame.Subframes[0].Samples)
	bps := int(frame.BitsPerSample)

	// FLAC allows 4-32 bits per sample; shift into the nearest domain of
	// the sample variant.
	if bps <= 16 {
		if cap(r.buf.S16) < n*channels {
			r.buf.S16 = make([]int16, n*channels)
		}
		out := r.buf.S16[:n*channels]
		shift := uint(16 - bps)
		for ch, sub := range frame.Subframes {
			for i := 0; i < n; i++ {
				out[i*channels+ch] = int16(sub.Samples[i] << shift)
			}
		}
		r.buf = Buffer{Format: FormatS16, Channels: channels, S16: out}
	} else {
		if cap(r.buf.S32) < n*channels {
			r.buf.S32 = make([]int32, n*channels)
		}
		out := r.buf.S32[:n*channels]
		shift := uint(32 - bps)
		for ch, sub := range frame.Subframes {
			for i := 0; i < n; i++ {
				out[i*channels+ch] = sub.Samples[i] << shift
			}
		}
		r.buf = Buffer{Format: FormatS32, Channels: channels, S32: out}
	}
	return r.track.ID, &r.buf, nil
}

func (r *flacReader) Seek(track int, t time.Duration) error {
	if track != r.track.ID {
		return fmt.Errorf("%w: unknown track %d", ErrSeek, track)
	}
	// Some streams lack a seek table; mewkiz may refuse positions it
	// cannot reach, which callers treat as a skippable point.
	if _, err := r.stream.Seek(uint64(frameAt(t, r.track.SampleRate))); err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}
	return nil
}

func (r *flacReader) Close() error { return r.stream.Close() }
