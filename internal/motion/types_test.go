package motion

import "testing"

func TestInputEqualExactMatch(t *testing.T) {
	a := Input{CurrentPosition: []float64{1, 2}, Enabled: []bool{true, false}}
	b := Input{CurrentPosition: []float64{1, 2}, Enabled: []bool{true, false}}
	if !a.Equal(b) {
		t.Errorf("expected equal inputs to compare equal")
	}
}

func TestInputEqualDetectsDifference(t *testing.T) {
	a := Input{CurrentPosition: []float64{1, 2}}
	b := Input{CurrentPosition: []float64{1, 2.0000001}}
	if a.Equal(b) {
		t.Errorf("expected differing inputs to compare unequal")
	}
}

func TestInputEqualMinimumDuration(t *testing.T) {
	f1 := 10.0
	f2 := 10.0
	a := Input{MinimumDuration: &f1}
	b := Input{MinimumDuration: &f2}
	if !a.Equal(b) {
		t.Errorf("expected equal minimum durations (different pointers) to compare equal")
	}
	c := Input{}
	if a.Equal(c) || c.Equal(a) {
		t.Errorf("expected a nil minimum duration to differ from a set one")
	}
}

func TestCloneInputDoesNotAlias(t *testing.T) {
	original := Input{CurrentPosition: []float64{1, 2, 3}}
	clone := cloneInput(original)
	clone.CurrentPosition[0] = 99
	if original.CurrentPosition[0] == 99 {
		t.Errorf("cloneInput should not alias the source slices")
	}
}

func TestResultString(t *testing.T) {
	if Working.String() != "Working" || Finished.String() != "Finished" {
		t.Errorf("unexpected Result String() output")
	}
}
