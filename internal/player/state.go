package player

import (
	"time"

	"github.com/ostinato-player/ostinato/internal/media"
)

// PlaybackState is the transport state of the player.
type PlaybackState int

const (
	StateStopped PlaybackState = iota
	StatePlaying
	StatePaused
)

func (s PlaybackState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	}
	return "stopped"
}

// Status is a snapshot of the player for the UI.
type Status struct {
	State    PlaybackState
	Path     string
	Track    media.Track
	Elapsed  time.Duration
	Duration time.Duration // zero when the container reports none
}

// Progress returns playback progress in [0, 1], or 0 when the duration
// is unknown.
func (s Status) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	p := float64(s.Elapsed) / float64(s.Duration)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
