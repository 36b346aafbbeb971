package waveform

import (
	"math"
	"sort"
	"testing"
)

func TestNormalizeMapsRangeToUnit(t *testing.T) {
	values := []float32{0.2, 0.6, 0.4, 0.8}
	Normalize(values)

	if values[0] != 0 {
		t.Errorf("minimum mapped to %v, want 0", values[0])
	}
	if values[3] != 1 {
		t.Errorf("maximum mapped to %v, want 1", values[3])
	}
	if math.Abs(float64(values[1])-2.0/3.0) > 1e-6 {
		t.Errorf("values[1] = %v, want 2/3", values[1])
	}
	for i, v := range values {
		if v < 0 || v > 1 {
			t.Errorf("values[%d] = %v out of [0,1]", i, v)
		}
	}
}

func TestNormalizePreservesOrder(t *testing.T) {
	values := []float32{0.9, 0.1, 0.5, 0.3, 0.7}
	ranks := make([]int, len(values))
	for i := range ranks {
		ranks[i] = i
	}
	sort.Slice(ranks, func(a, b int) bool { return values[ranks[a]] < values[ranks[b]] })

	Normalize(values)
	for i := 1; i < len(ranks); i++ {
		if values[ranks[i-1]] > values[ranks[i]] {
			t.Fatalf("ordering broken at rank %d: %v", i, values)
		}
	}
}

func TestNormalizeFlattensConstantInput(t *testing.T) {
	for _, values := range [][]float32{
		{0.5, 0.5, 0.5},
		{0, 0, 0, 0},
		{0.42},
	} {
		got := Normalize(append([]float32(nil), values...))
		for i, v := range got {
			if v != 0.3 {
				t.Errorf("Normalize(%v)[%d] = %v, want 0.3", values, i, v)
			}
		}
	}
}

func TestNormalizeEmpty(t *testing.T) {
	if got := Normalize(nil); len(got) != 0 {
		t.Errorf("Normalize(nil) = %v", got)
	}
}

func TestFlat(t *testing.T) {
	got := Flat(5)
	if len(got) != 5 {
		t.Fatalf("Flat(5) has %d values", len(got))
	}
	for i, v := range got {
		if v != 0.3 {
			t.Errorf("Flat(5)[%d] = %v, want 0.3", i, v)
		}
	}
}
