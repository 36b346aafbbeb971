package waveform

import (
	"github.com/ostinato-player/ostinato/internal/config"
	"github.com/ostinato-player/ostinato/internal/media"
)

// Options tunes a generation run. Zero fields take the compiled defaults.
type Options struct {
	Points int
	Budget int

	// Hint is an advisory container format name for probing. When empty
	// it is derived from the file extension.
	Hint string
}

func (o Options) withDefaults(path string) Options {
	if o.Points == 0 {
		o.Points = config.WaveformLen
	}
	if o.Budget == 0 {
		o.Budget = config.SamplesPerPoint
	}
	if o.Hint == "" {
		o.Hint = media.Hint(path)
	}
	return o
}

// Generate produces the normalized waveform vector for an audio file.
//
// Failures that prevent any sampling at all are returned: the file cannot
// be read (media.ErrUnreadable), no format claims it (media.ErrProbe),
// it has no audio track (media.ErrNoTrack), or its duration is unknown
// (media.ErrDurationUnavailable). Per-point decode and seek trouble is
// absorbed by the engine and shows up only as missing points.
func Generate(path string) ([]float32, error) {
	return GenerateOpts(path, Options{})
}

// GenerateOpts is Generate with explicit options.
func GenerateOpts(path string, opts Options) ([]float32, error) {
	opts = opts.withDefaults(path)

	src, err := media.Open(path)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	r, err := media.Probe(src, opts.Hint)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	track, err := r.DefaultTrack()
	if err != nil {
		return nil, err
	}
	duration, err := track.Duration()
	if err != nil {
		return nil, err
	}

	engine := Engine{Points: opts.Points, Budget: opts.Budget}
	return Normalize(engine.Sample(r, track, duration)), nil
}
