package media

import (
	"errors"
	"testing"
	"time"
)

func TestTrackDuration(t *testing.T) {
	track := Track{SampleRate: 44100, Frames: 441000}
	d, err := track.Duration()
	if err != nil {
		t.Fatalf("Duration failed: %v", err)
	}
	if d != 10*time.Second {
		t.Errorf("Duration = %v, want 10s", d)
	}
}

func TestTrackDurationSubSecond(t *testing.T) {
	track := Track{SampleRate: 8000, Frames: 12000}
	d, err := track.Duration()
	if err != nil {
		t.Fatalf("Duration failed: %v", err)
	}
	if d != 1500*time.Millisecond {
		t.Errorf("Duration = %v, want 1.5s", d)
	}
}

func TestTrackDurationUnavailable(t *testing.T) {
	for _, track := range []Track{
		{SampleRate: 44100, Frames: 0},
		{SampleRate: 0, Frames: 1000},
		{},
	} {
		if _, err := track.Duration(); !errors.Is(err, ErrDurationUnavailable) {
			t.Errorf("Duration(%+v) err = %v, want ErrDurationUnavailable", track, err)
		}
	}
}
