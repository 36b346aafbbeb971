package media

import (
	"fmt"
	"io"
	"time"

	aac "github.com/llehouerou/go-aac"
)

const (
	adtsHeaderLen = 7

	// Decoded samples per AAC frame, fixed by the codec.
	aacFrameSamples = 1024
)

// adtsReader demuxes raw ADTS streams itself: the 13-bit frame length in
// each header gives exact frame boundaries, and each frame is handed to
// the llehouerou decoder. ADTS carries no frame count, so the track
// reports no duration.
type adtsReader struct {
	src         *Source
	dec         *aac.Decoder
	track       Track
	avgFrameLen int
	pending     []byte
	eof         bool
	buf         Buffer
}

func newADTSReader(src *Source) (Reader, error) {
	head := make([]byte, 4096)
	n, err := io.ReadFull(src, head)
	if n < adtsHeaderLen {
		return nil, fmt.Errorf("parsing adts header: %v", err)
	}
	head = head[:n]
	if !sniffADTS(head) {
		return nil, fmt.Errorf("parsing adts header: no syncword")
	}

	dec := aac.NewDecoder()
	cfg := dec.Config()
	cfg.OutputFormat = aac.OutputFormat16Bit
	dec.SetConfiguration(cfg)

	rate, channels, err := dec.SimpleInit(head)
	if err != nil {
		dec.Close()
		return nil, fmt.Errorf("parsing adts header: %w", err)
	}
	if channels == 0 {
		channels = 2
	}

	r := &adtsReader{
		src:         src,
		dec:         dec,
		avgFrameLen: averageFrameLen(head),
		pending:     head,
		track: Track{
			Codec:      CodecAAC,
			Channels:   int(channels),
			SampleRate: int(rate),
		},
	}
	return r, nil
}

// averageFrameLen estimates bytes per ADTS frame from the probed head.
// With a constant 1024 samples per frame, this gives the byte rate that
// coarse seeking scales against.
func averageFrameLen(head []byte) int {
	var total, count int
	i := 0
	for i+adtsHeaderLen <= len(head) {
		if !(head[i] == 0xFF && head[i+1]&0xF6 == 0xF0) {
			i++
			continue
		}
		frameLen := int(head[i+3]&0x03)<<11 | int(head[i+4])<<3 | int(head[i+5])>>5
		if frameLen < adtsHeaderLen {
			i++
			continue
		}
		total += frameLen
		count++
		i += frameLen
	}
	if count == 0 {
		return adtsHeaderLen
	}
	return total / count
}

func (r *adtsReader) Tracks() []Track { return []Track{r.track} }

func (r *adtsReader) DefaultTrack() (Track, error) { return r.track, nil }

// fill grows the pending window to at least want bytes, or as far as the
// stream allows.
func (r *adtsReader) fill(want int) error {
	for len(r.pending) < want && !r.eof {
		chunk := make([]byte, 4096)
		n, err := r.src.Read(chunk)
		r.pending = append(r.pending, chunk[:n]...)
		if err == io.EOF {
			r.eof = true
		} else if err != nil {
			return fmt.Errorf("%w: %v", ErrDecode, err)
		}
	}
	return nil
}

// nextFrame locates the next syncword and returns one complete ADTS frame,
// consuming it from the window.
func (r *adtsReader) nextFrame() ([]byte, error) {
	for {
		if err := r.fill(adtsHeaderLen); err != nil {
			return nil, err
		}
		// Resync: drop bytes until a header candidate lines up.
		i := 0
		for i+1 < len(r.pending) && !(r.pending[i] == 0xFF && r.pending[i+1]&0xF6 == 0xF0) {
			i++
		}
		r.pending = r.pending[i:]
		if len(r.pending) < adtsHeaderLen {
			if r.eof {
				return nil, io.EOF
			}
			// The window was all garbage; pull more bytes and rescan.
			continue
		}

		frameLen := int(r.pending[3]&0x03)<<11 | int(r.pending[4])<<3 | int(r.pending[5])>>5
		if frameLen < adtsHeaderLen {
			// A corrupt length field; skip the false sync.
			r.pending = r.pending[1:]
			continue
		}
		if err := r.fill(frameLen); err != nil {
			return nil, err
		}
		if len(r.pending) < frameLen {
			return nil, io.EOF
		}
		frame := r.pending[:frameLen]
		r.pending = r.pending[frameLen:]
		return frame, nil
	}
}

func (r *adtsReader) NextPacket() (int, *Buffer, error) {
	frame, err := r.nextFrame()
	if err != nil {
		if err == io.EOF {
			return 0, nil, io.EOF
		}
		return 0, nil, err
	}
	samples, _, err := r.dec.Decode(frame)
	if err != nil {
		// The frame is already consumed, so the stream stays in sync.
		return r.track.ID, nil, fmt.Errorf("%w: %v", ErrUnsupportedPacket, err)
	}
	out, _ := samples.([]int16)
	if cap(r.buf.S16) < len(out) {
		r.buf.S16 = make([]int16, len(out))
	}
	copy(r.buf.S16[:len(out)], out)
	r.buf = Buffer{Format: FormatS16, Channels: r.track.Channels, S16: r.buf.S16[:len(out)]}
	return r.track.ID, &r.buf, nil
}

// Seek repositions by byte ratio. ADTS frames carry no timestamps and no
// index, so the target offset is estimated from the average frame length
// seen during probing; the demuxer then resynchronizes on the next
// syncword. The landing position is coarse, not sample-accurate.
func (r *adtsReader) Seek(track int, t time.Duration) error {
	if track != r.track.ID {
		return fmt.Errorf("%w: unknown track %d", ErrSeek, track)
	}
	if t < 0 {
		t = 0
	}

	var offset, frame int64
	if t > 0 {
		size, err := r.src.Size()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSeek, err)
		}
		bytesPerSec := float64(r.avgFrameLen) * float64(r.track.SampleRate) / aacFrameSamples
		offset = int64(t.Seconds() * bytesPerSec)
		if offset > size {
			offset = size
		}
		frame = offset / int64(r.avgFrameLen)
	}

	if _, err := r.src.Seek(offset, io.SeekStart); err != nil {
		return fmt.Errorf("%w: %v", ErrSeek, err)
	}
	r.pending = r.pending[:0]
	r.eof = false
	r.dec.PostSeekReset(frame)
	return nil
}

func (r *adtsReader) Close() error {
	r.dec.Close()
	return nil
}
