package player

import (
	"testing"
	"time"
)

func TestStatusProgress(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		total   time.Duration
		want    float64
	}{
		{"halfway", 5 * time.Second, 10 * time.Second, 0.5},
		{"start", 0, 10 * time.Second, 0},
		{"past end clamps", 11 * time.Second, 10 * time.Second, 1},
		{"unknown duration", 5 * time.Second, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Status{Elapsed: tt.elapsed, Duration: tt.total}
			if got := s.Progress(); got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlaybackStateString(t *testing.T) {
	for state, want := range map[PlaybackState]string{
		StateStopped: "stopped",
		StatePlaying: "playing",
		StatePaused:  "paused",
	} {
		if got := state.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", state, got, want)
		}
	}
}
