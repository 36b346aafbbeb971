package waveform

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/ostinato-player/ostinato/internal/media"
	"github.com/ostinato-player/ostinato/internal/media/mediatest"
)

func TestEngineEvenSeekTargets(t *testing.T) {
	r := mediatest.New(1000, 1, 100000, mediatest.Constant(0.5))
	track, _ := r.DefaultTrack()

	points := Engine{Points: 10, Budget: 512}.Sample(r, track, 10*time.Second)
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
	if len(r.Seeks) != 10 {
		t.Fatalf("got %d seeks, want 10", len(r.Seeks))
	}
	for i, target := range r.Seeks {
		if want := time.Duration(i) * time.Second; target != want {
			t.Errorf("seek %d targeted %v, want %v", i, target, want)
		}
	}
}

func TestEngineConstantSignalRMS(t *testing.T) {
	r := mediatest.New(1000, 2, 100000, mediatest.Constant(0.5))
	track, _ := r.DefaultTrack()

	points := Engine{Points: 4, Budget: 512}.Sample(r, track, 10*time.Second)
	for i, p := range points {
		if math.Abs(float64(p)-0.5) > 1e-5 {
			t.Errorf("point %d = %v, want 0.5", i, p)
		}
	}
}

func TestEngineSineRMS(t *testing.T) {
	const rate = 8000
	r := mediatest.New(rate, 1, 10*rate, mediatest.Sine(rate, 440))
	track, _ := r.DefaultTrack()

	points := Engine{Points: 8, Budget: 1024}.Sample(r, track, 10*time.Second)
	if len(points) != 8 {
		t.Fatalf("got %d points, want 8", len(points))
	}
	want := 1 / math.Sqrt2
	for i, p := range points {
		if math.Abs(float64(p)-want) > 0.02 {
			t.Errorf("point %d = %v, want ~%.3f", i, p, want)
		}
	}
}

func TestEngineSkipsFailedSeeks(t *testing.T) {
	r := mediatest.New(1000, 1, 100000, mediatest.Constant(0.5))
	r.FailSeekAt = map[int]bool{3: true, 7: true}
	track, _ := r.DefaultTrack()

	points := Engine{Points: 10, Budget: 256}.Sample(r, track, 10*time.Second)
	if len(points) != 8 {
		t.Errorf("got %d points, want 8 (two skipped)", len(points))
	}
	if len(r.Seeks) != 10 {
		t.Errorf("got %d seeks, want 10 (skips do not stop the loop)", len(r.Seeks))
	}
}

func TestEngineStarvationStopsLoop(t *testing.T) {
	// The track claims 10s but holds only 5s of frames; the first window
	// past the real end decodes nothing and the loop gives up.
	r := mediatest.New(1000, 1, 5000, mediatest.Constant(0.5))
	track, _ := r.DefaultTrack()
	track.Frames = 10000

	points := Engine{Points: 10, Budget: 256}.Sample(r, track, 10*time.Second)
	if len(points) != 5 {
		t.Errorf("got %d points, want 5 (loop stops at starvation)", len(points))
	}
}

func TestEngineBudgetBoundary(t *testing.T) {
	// Frames below the budget read 1.0, frames beyond read 0.0. Packets
	// are 300 frames, so the budget lands mid-packet; an engine that
	// consumed whole packets would drag zeros into the measurement.
	r := mediatest.New(8000, 1, 8000, func(frame int64) float32 {
		if frame < 1024 {
			return 1
		}
		return 0
	})
	r.PacketSize = 300
	track, _ := r.DefaultTrack()

	points := Engine{Points: 1, Budget: 1024}.Sample(r, track, time.Second)
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if points[0] != 1 {
		t.Errorf("rms = %v, want exactly 1 (consumption must stop at the budget)", points[0])
	}
}

func TestEngineSkipsUnsupportedPackets(t *testing.T) {
	r := mediatest.New(1000, 1, 100000, mediatest.Constant(0.5))
	r.ErrAtPacket = map[int]error{
		0: fmt.Errorf("%w: codec hiccup", media.ErrUnsupportedPacket),
	}
	track, _ := r.DefaultTrack()

	points := Engine{Points: 2, Budget: 256}.Sample(r, track, 10*time.Second)
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if math.Abs(float64(points[0])-0.5) > 1e-5 {
		t.Errorf("point 0 = %v, want 0.5 (skip must not shrink the window)", points[0])
	}
}

func TestEngineDecodeErrorAbandonsWindow(t *testing.T) {
	r := mediatest.New(1000, 1, 100000, mediatest.Constant(0.5))
	r.PacketSize = 100
	r.ErrAtPacket = map[int]error{
		1: fmt.Errorf("%w: corrupt packet", media.ErrDecode),
	}
	track, _ := r.DefaultTrack()

	points := Engine{Points: 2, Budget: 1000}.Sample(r, track, 10*time.Second)
	// The first window keeps its one good packet; the second is intact.
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if math.Abs(float64(points[0])-0.5) > 1e-5 {
		t.Errorf("point 0 = %v, want 0.5 from the partial window", points[0])
	}
}

func TestEngineIgnoresForeignTrackPackets(t *testing.T) {
	r := mediatest.New(1000, 1, 100000, mediatest.Constant(0.5))
	r.ForeignAt = map[int]bool{0: true, 2: true}
	track, _ := r.DefaultTrack()

	points := Engine{Points: 1, Budget: 512}.Sample(r, track, 10*time.Second)
	if len(points) != 1 {
		t.Fatalf("got %d points, want 1", len(points))
	}
	if math.Abs(float64(points[0])-0.5) > 1e-5 {
		t.Errorf("point 0 = %v, want 0.5", points[0])
	}
}

func TestEngineDegenerateInputs(t *testing.T) {
	r := mediatest.New(1000, 1, 1000, mediatest.Constant(0.5))
	track, _ := r.DefaultTrack()

	if got := (Engine{Points: 0, Budget: 256}).Sample(r, track, time.Second); len(got) != 0 {
		t.Errorf("zero points produced %d values", len(got))
	}
	if got := (Engine{Points: 10, Budget: 256}).Sample(r, track, 0); len(got) != 0 {
		t.Errorf("zero duration produced %d values", len(got))
	}
}

func TestEngineUnknownDurationNeverTouchesStream(t *testing.T) {
	r := mediatest.New(1000, 1, 1000, mediatest.Constant(0.5))
	track, _ := r.DefaultTrack()

	points := Engine{Points: 10, Budget: 256}.Sample(r, track, 0)
	if len(points) != 0 {
		t.Errorf("got %d points, want 0", len(points))
	}
	if len(r.Seeks) != 0 {
		t.Errorf("got %d seeks, want 0 (no duration means no sampling)", len(r.Seeks))
	}
	if r.Packets != 0 {
		t.Errorf("got %d decode calls, want 0", r.Packets)
	}
}

func TestEngineSignedUnsignedEquivalence(t *testing.T) {
	// The same sine encoded as s16 and u16 must reduce to the same RMS
	// sequence; the bipolar remap differs from the signed scale by at
	// most one quantization step.
	const rate = 8000
	signed := mediatest.New(rate, 1, 10*rate, mediatest.Sine(rate, 440))
	signed.Format = media.FormatS16
	unsigned := mediatest.New(rate, 1, 10*rate, mediatest.Sine(rate, 440))
	unsigned.Format = media.FormatU16

	track, _ := signed.DefaultTrack()
	e := Engine{Points: 10, Budget: 512}
	a := e.Sample(signed, track, 10*time.Second)
	b := e.Sample(unsigned, track, 10*time.Second)

	if len(a) != 10 || len(b) != 10 {
		t.Fatalf("got %d and %d points, want 10 each", len(a), len(b))
	}
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > 1e-3 {
			t.Errorf("point %d: s16 rms %v vs u16 rms %v", i, a[i], b[i])
		}
	}
}
