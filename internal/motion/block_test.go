package motion

import "testing"

func TestBlockMinDurationAboveNoIntervals(t *testing.T) {
	b := &Block{TMin: 3.0}
	got, ok := b.minDurationAbove(1.0)
	if !ok || got != 3.0 {
		t.Errorf("expected 3.0, got %v (ok=%v)", got, ok)
	}
	got, ok = b.minDurationAbove(5.0)
	if !ok || got != 5.0 {
		t.Errorf("expected floor to win at 5.0, got %v (ok=%v)", got, ok)
	}
}

func TestBlockMinDurationAboveSkipsInterval(t *testing.T) {
	b := &Block{TMin: 1.0, A: &Interval{Left: 2.0, Right: 4.0}}
	got, ok := b.minDurationAbove(3.0)
	if !ok || got != 4.0 {
		t.Errorf("expected to be pushed to the interval's right edge (4.0), got %v (ok=%v)", got, ok)
	}
}
