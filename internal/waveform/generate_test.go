package waveform

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/ostinato-player/ostinato/internal/media"
)

// writeTone encodes a mono 16-bit wav whose 440 Hz tone swells from
// silence to full scale, so the waveform has real dynamic range.
func writeTone(t *testing.T, seconds int) string {
	t.Helper()
	const rate = 8000
	frames := seconds * rate
	data := make([]int, frames)
	for i := range data {
		ts := float64(i) / rate
		envelope := float64(i) / float64(frames)
		data[i] = int(16000 * envelope * math.Sin(2*math.Pi*440*ts))
	}

	path := filepath.Join(t.TempDir(), "tone.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("closing encoder: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGenerateEndToEnd(t *testing.T) {
	path := writeTone(t, 10)

	points, err := GenerateOpts(path, Options{Points: 50})
	if err != nil {
		t.Fatalf("GenerateOpts failed: %v", err)
	}
	if len(points) != 50 {
		t.Fatalf("got %d points, want 50", len(points))
	}

	var min, max float32 = 1, 0
	for i, p := range points {
		if p < 0 || p > 1 {
			t.Fatalf("points[%d] = %v out of [0,1]", i, p)
		}
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	if min != 0 || max != 1 {
		t.Errorf("normalized range = [%v, %v], want [0, 1]", min, max)
	}

	// The swell means later points are louder on average.
	firstHalf, secondHalf := mean(points[:25]), mean(points[25:])
	if secondHalf <= firstHalf {
		t.Errorf("mean of second half %v <= first half %v, envelope lost", secondHalf, firstHalf)
	}
}

func mean(values []float32) float64 {
	var sum float64
	for _, v := range values {
		sum += float64(v)
	}
	return sum / float64(len(values))
}

func TestGenerateSilenceFlattens(t *testing.T) {
	const rate = 8000
	path := filepath.Join(t.TempDir(), "silence.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           make([]int, 5*rate),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		t.Fatal(err)
	}
	if err := enc.Close(); err != nil {
		t.Fatal(err)
	}
	f.Close()

	points, err := GenerateOpts(path, Options{Points: 10})
	if err != nil {
		t.Fatalf("GenerateOpts failed: %v", err)
	}
	for i, p := range points {
		if p != 0.3 {
			t.Errorf("points[%d] = %v, want 0.3 for silence", i, p)
		}
	}
}

func TestGenerateDurationUnavailable(t *testing.T) {
	// Raw ADTS declares no frame count, so duration resolution fails
	// before the sampling loop ever starts.
	frame := []byte{0xFF, 0xF1, 0x50, 0x40, 0x00, 0xFF, 0xFC}
	path := filepath.Join(t.TempDir(), "tone.aac")
	if err := os.WriteFile(path, bytes.Repeat(frame, 64), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(path); !errors.Is(err, media.ErrDurationUnavailable) {
		t.Errorf("Generate err = %v, want media.ErrDurationUnavailable", err)
	}
}

func TestGenerateFatalErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.wav")
	if _, err := Generate(missing); !errors.Is(err, media.ErrUnreadable) {
		t.Errorf("missing file err = %v, want ErrUnreadable", err)
	}

	garbage := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(garbage, []byte("not a riff container at all"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Generate(garbage); !errors.Is(err, media.ErrProbe) {
		t.Errorf("garbage file err = %v, want ErrProbe", err)
	}
}
