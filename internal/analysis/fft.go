// Package analysis turns the most recent decoded audio window into
// spectrum bars for the oscilloscope view.
package analysis

import (
	"math"

	"github.com/argusdusty/gofft"

	"github.com/ostinato-player/ostinato/internal/config"
)

// ApplyHanning applies a Hanning window to the input data.
func ApplyHanning(data []float64) []float64 {
	windowed := make([]float64, len(data))
	n := len(data)
	for i := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		windowed[i] = data[i] * window
	}
	return windowed
}

// BinSpectrum bins FFT coefficients into bars scaled to 0.0-1.0.
// Only the lower 3/4 of the positive frequencies are used; above that
// there is little musical content and the bars just sit at zero.
func BinSpectrum(coeffs []complex128, bars int) []float64 {
	halfSize := len(coeffs) / 2
	maxFreqBin := (halfSize * 3) / 4

	heights := make([]float64, bars)
	binsPerBar := maxFreqBin / bars
	if binsPerBar == 0 {
		return heights
	}

	for bar := 0; bar < bars; bar++ {
		start := bar * binsPerBar
		end := start + binsPerBar
		if end > maxFreqBin {
			end = maxFreqBin
		}
		var sum float64
		for i := start; i < end; i++ {
			sum += math.Hypot(real(coeffs[i]), imag(coeffs[i]))
		}
		heights[bar] = sum / float64(binsPerBar)
	}

	// Scale raw magnitudes down, gate the noise floor, then log-scale
	// for visual distribution.
	const baseScale = 0.0075
	for i := range heights {
		scaled := heights[i] * baseScale
		if scaled < 0.01 {
			heights[i] = 0
			continue
		}
		heights[i] = math.Log10(1 + scaled*9)
		if heights[i] > 1 {
			heights[i] = 1
		}
	}
	return heights
}

// Processor computes spectrum bars from sample windows.
type Processor struct {
	size int
	bars int
}

// NewProcessor returns a Processor over windows of the given size, which
// must be a power of two for the FFT.
func NewProcessor(size, bars int) (*Processor, error) {
	if err := gofft.Prepare(size); err != nil {
		return nil, err
	}
	return &Processor{size: size, bars: bars}, nil
}

// Bars windows, transforms, and bins one chunk of mono samples. Short
// chunks are zero-padded up to the FFT size.
func (p *Processor) Bars(samples []float64) ([]float64, error) {
	chunk := samples
	if len(chunk) != p.size {
		padded := make([]float64, p.size)
		copy(padded, chunk)
		chunk = padded
	}

	input := gofft.Float64ToComplex128Array(ApplyHanning(chunk))
	if err := gofft.FFT(input); err != nil {
		return nil, err
	}
	return BinSpectrum(input, p.bars), nil
}

// DefaultProcessor builds a Processor with the compiled scope settings.
func DefaultProcessor() (*Processor, error) {
	return NewProcessor(config.ScopeWindow, config.ScopeBars)
}
