package media

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestHint(t *testing.T) {
	tests := map[string]string{
		"song.wav":       "wav",
		"song.WAV":       "wav",
		"song.wave":      "wav",
		"song.aif":       "aiff",
		"song.aifc":      "aiff",
		"song.flac":      "flac",
		"song.ogg":       "ogg",
		"song.oga":       "ogg",
		"song.aac":       "aac",
		"song.adts":      "aac",
		"song.mp3":       "mp3",
		"song.mpga":      "mp3",
		"song.txt":       "",
		"song":           "",
		"dir.mp3/noext":  "",
		"/abs/path.flac": "flac",
	}
	for path, want := range tests {
		if got := Hint(path); got != want {
			t.Errorf("Hint(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestProbeGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noise.bin")
	if err := os.WriteFile(path, []byte("definitely not an audio container"), 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if _, err := Probe(src, ""); !errors.Is(err, ErrProbe) {
		t.Errorf("Probe err = %v, want ErrProbe", err)
	}
}

func TestProbeIgnoresWrongHint(t *testing.T) {
	// A wav stream probed with an mp3 hint still resolves as wav; the
	// hint only reorders candidates.
	path := writeWAV(t, t.TempDir(), 8000, 16, ramp(100))
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	r, err := Probe(src, "mp3")
	if err != nil {
		t.Fatalf("Probe failed: %v", err)
	}
	defer r.Close()
	track, err := r.DefaultTrack()
	if err != nil {
		t.Fatalf("DefaultTrack failed: %v", err)
	}
	if track.Codec != CodecPCM {
		t.Errorf("Codec = %q, want pcm", track.Codec)
	}
}

func TestProbeEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	src, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	if _, err := Probe(src, "wav"); !errors.Is(err, ErrProbe) {
		t.Errorf("Probe err = %v, want ErrProbe", err)
	}
}
