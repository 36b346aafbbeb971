// Package waveform renders a track's amplitude envelope as a fixed-length
// vector of normalized heights. Rather than decoding the whole file, it
// seeks to evenly spaced timestamps and measures the signal energy of a
// small window at each one.
package waveform

import (
	"errors"
	"io"
	"math"
	"time"

	"github.com/ostinato-player/ostinato/internal/media"
)

// Engine samples Points RMS measurements across a track, consuming at
// most Budget frames per point.
type Engine struct {
	Points int
	Budget int
}

// Sample runs the seek-and-measure loop over r. The reader is left at an
// arbitrary position afterwards.
//
// Points that fail to seek are skipped; a window that yields zero samples
// means the decoder has stopped producing (a truncated or lying
// container), and the loop gives up there rather than pad the tail. The
// result therefore has anywhere from 0 to Points values, in track order,
// with no gaps in between.
func (e Engine) Sample(r media.Reader, track media.Track, duration time.Duration) []float32 {
	points := make([]float32, 0, e.Points)
	if e.Points <= 0 || e.Budget <= 0 || duration <= 0 {
		return points
	}
	interval := duration / time.Duration(e.Points)

	for i := 0; i < e.Points; i++ {
		if err := r.Seek(track.ID, time.Duration(i)*interval); err != nil {
			continue
		}

		var sumSq float64
		consumed := 0
	window:
		for consumed < e.Budget {
			id, buf, err := r.NextPacket()
			switch {
			case err == nil:
			case errors.Is(err, io.EOF):
				break window
			case errors.Is(err, media.ErrUnsupportedPacket):
				// The reader already advanced past it.
				continue
			default:
				// A corrupt packet mid-window; keep what the window
				// already measured.
				break window
			}
			if id != track.ID {
				continue
			}
			take := buf.Frames()
			if take > e.Budget-consumed {
				take = e.Budget - consumed
			}
			for f := 0; f < take; f++ {
				v := float64(buf.Sample(f))
				sumSq += v * v
			}
			consumed += take
		}

		if consumed == 0 {
			break
		}
		points = append(points, float32(math.Sqrt(sumSq/float64(consumed))))
	}
	return points
}
