package motion

import "testing"

func TestSynchronizeSingleAxisFastPath(t *testing.T) {
	block := &Block{TMin: 3.17, PMin: &Profile{}}
	tSync, err := Synchronize([]*Block{block}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tSync != block.TMin {
		t.Errorf("expected tSync=%v, got %v", block.TMin, tSync)
	}
}

func TestSynchronizePicksSlowestAxis(t *testing.T) {
	a := &Block{TMin: 3.17, PMin: &Profile{}}
	b := &Block{TMin: 11.0, PMin: &Profile{}}
	tSync, err := Synchronize([]*Block{a, b}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tSync != b.TMin {
		t.Errorf("expected tSync=%v (slowest axis), got %v", b.TMin, tSync)
	}
}

func TestSynchronizeHonorsMinimumDurationFloor(t *testing.T) {
	a := &Block{TMin: 3.17, PMin: &Profile{}}
	tSync, err := Synchronize([]*Block{a}, 10.0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tSync != 10.0 {
		t.Errorf("expected tSync=10.0, got %v", tSync)
	}
}

func TestSynchronizeSkipsForbiddenInterval(t *testing.T) {
	blocked := &Block{
		TMin: 1.0,
		PMin: &Profile{},
		A:    &Interval{Left: 2.0, Right: 3.0},
	}
	clear := &Block{TMin: 2.5, PMin: &Profile{}}

	tSync, err := Synchronize([]*Block{blocked, clear}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tSync < 3.0-epsGeneric {
		t.Errorf("expected the synchronizer to skip past the forbidden interval, got tSync=%v", tSync)
	}
}

func TestSynchronizeSkipsForbiddenIntervalAcrossAxes(t *testing.T) {
	// Axis b cannot finish before 50, which lies strictly inside axis a's
	// forbidden interval, so the multi-axis walk must move on to its right edge.
	a := &Block{TMin: 0, PMin: &Profile{}, A: &Interval{Left: 0, Right: 100}}
	b := &Block{TMin: 50, PMin: &Profile{}}
	tSync, err := Synchronize([]*Block{a, b}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tSync < 100-epsGeneric {
		t.Errorf("expected tSync at or after the forbidden interval's right edge, got %v", tSync)
	}
}
