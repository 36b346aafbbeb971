package media

import "time"

// Codec identifies the sample encoding of a track.
type Codec string

const (
	CodecPCM    Codec = "pcm"
	CodecFLAC   Codec = "flac"
	CodecMP3    Codec = "mp3"
	CodecVorbis Codec = "vorbis"
	CodecAAC    Codec = "aac"
)

// Track holds the immutable codec parameters of one container track.
// Frames is the total number of audio frames, or 0 when the container does
// not declare it.
type Track struct {
	ID         int
	Codec      Codec
	Channels   int
	SampleRate int
	Frames     int64
}

// Duration computes the track duration from its frame count and sample
// rate, preserving sub-second precision. Returns ErrDurationUnavailable
// when either parameter is missing; that failure is fatal to duration-
// dependent operations (waveform sampling) but not to decoding.
func (t Track) Duration() (time.Duration, error) {
	if t.Frames <= 0 || t.SampleRate <= 0 {
		return 0, ErrDurationUnavailable
	}
	secs := float64(t.Frames) / float64(t.SampleRate)
	return time.Duration(secs * float64(time.Second)), nil
}
