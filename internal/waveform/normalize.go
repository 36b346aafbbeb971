package waveform

import (
	"math"

	"github.com/ostinato-player/ostinato/internal/config"
)

// epsilon is the smallest span treated as real dynamic range.
var epsilon = float32(math.Nextafter32(1, 2) - 1)

// Normalize rescales the values in place so the observed range maps onto
// exactly [0, 1]. A span below epsilon (silence, or a constant tone)
// flattens every value to the neutral level instead of dividing noise up
// to full scale. Order is preserved; the slice is returned for chaining.
func Normalize(values []float32) []float32 {
	if len(values) == 0 {
		return values
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	span := max - min
	if span < epsilon {
		for i := range values {
			values[i] = config.FlatLevel
		}
		return values
	}
	for i, v := range values {
		values[i] = (v - min) / span
	}
	return values
}

// Flat returns the placeholder strip shown when a track has no waveform.
func Flat(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = config.FlatLevel
	}
	return out
}
