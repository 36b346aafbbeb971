package player

import "testing"

func TestTapWindowReturnsNewestSamples(t *testing.T) {
	tap := NewTap(8)
	tap.Push([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10})

	got := tap.Window(4)
	want := []float64{7, 8, 9, 10}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Window(4) = %v, want %v", got, want)
		}
	}
}

func TestTapWindowZeroPadsWhenUnderfilled(t *testing.T) {
	tap := NewTap(8)
	tap.Push([]float64{1, 2})

	got := tap.Window(4)
	want := []float64{0, 0, 1, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Window(4) = %v, want %v", got, want)
		}
	}
}

func TestTapWindowLargerThanRing(t *testing.T) {
	tap := NewTap(4)
	tap.Push([]float64{1, 2, 3, 4, 5})

	got := tap.Window(6)
	want := []float64{0, 0, 2, 3, 4, 5}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Window(6) = %v, want %v", got, want)
		}
	}
}

func TestTapReset(t *testing.T) {
	tap := NewTap(4)
	tap.Push([]float64{1, 2, 3})
	tap.Reset()

	for i, v := range tap.Window(4) {
		if v != 0 {
			t.Errorf("Window(4)[%d] = %v after reset, want 0", i, v)
		}
	}
}
