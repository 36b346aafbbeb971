package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Sea colour palette 🌊
var (
	seaFoam  = lipgloss.Color("#7FFFD4") // Aquamarine highlight
	seaLight = lipgloss.Color("#40E0D0") // Turquoise
	seaMid   = lipgloss.Color("#20B2AA") // Light sea green
	seaDeep  = lipgloss.Color("#008B8B") // Dark cyan
	seaAbyss = lipgloss.Color("#2F4F4F") // Dark slate
	sandGray = lipgloss.Color("#8FBC8F") // Subtle text accent
)

var strip = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

var stripColors = []lipgloss.Color{
	seaAbyss, seaDeep, seaDeep, seaMid, seaMid, seaLight, seaLight, seaFoam,
}

// ResampleBuckets fits a waveform vector to the given width. Raw mode
// keeps the loudest value of each bucket so transients stay visible;
// smooth mode averages the bucket for a softer outline.
func ResampleBuckets(values []float32, width int, smooth bool) []float32 {
	if width <= 0 || len(values) == 0 {
		return nil
	}
	if len(values) <= width {
		out := make([]float32, len(values))
		copy(out, values)
		return out
	}

	out := make([]float32, width)
	for i := 0; i < width; i++ {
		start := i * len(values) / width
		end := (i + 1) * len(values) / width
		if end <= start {
			end = start + 1
		}
		if smooth {
			var sum float32
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float32(end-start)
		} else {
			peak := values[start]
			for _, v := range values[start+1 : end] {
				if v > peak {
					peak = v
				}
			}
			out[i] = peak
		}
	}
	return out
}

// RenderStrip draws normalized heights as one row of coloured block
// characters.
func RenderStrip(values []float32, width int) string {
	cells := ResampleBuckets(values, width, false)
	return renderCells(cells)
}

// RenderStripSmooth is RenderStrip with bucket averaging.
func RenderStripSmooth(values []float32, width int) string {
	cells := ResampleBuckets(values, width, true)
	return renderCells(cells)
}

func renderCells(cells []float32) string {
	var b strings.Builder
	for _, v := range cells {
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}
		idx := int(v * float32(len(strip)-1))
		b.WriteString(lipgloss.NewStyle().
			Foreground(stripColors[idx]).
			Render(string(strip[idx])))
	}
	return b.String()
}

// RenderScope draws spectrum bars in the same block style.
func RenderScope(bars []float64, width int) string {
	if len(bars) == 0 || width <= 0 {
		return ""
	}
	cells := make([]float32, 0, width)
	stride := len(bars) / width
	if stride == 0 {
		stride = 1
	}
	for i := 0; i < len(bars) && len(cells) < width; i += stride {
		cells = append(cells, float32(bars[i]))
	}
	return renderCells(cells)
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}
