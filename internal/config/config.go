package config

// Waveform settings
const (
	// WaveformLen is the number of strip points sampled across a track.
	WaveformLen = 500

	// SamplesPerPoint is the decode budget per point, in frames.
	SamplesPerPoint = 1024

	// FlatLevel is the neutral strip height used when a track has no
	// dynamic range, or no waveform at all.
	FlatLevel = 0.3
)

// Playback settings
const (
	PlaybackRate     = 44100 // output sample rate, fixed per process
	PlaybackChannels = 2
)

// Visualization settings
const (
	ScopeBars   = 48   // bars in the spectrum view
	ScopeWindow = 2048 // FFT window, in frames
)
