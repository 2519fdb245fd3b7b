package motion

import (
	"math"
	"testing"
)

func TestProfileAtTimeContinuousAcrossSegments(t *testing.T) {
	block, err := Step1(0, 0, 0, 1, 0, 0, 1, 1, 1)
	if err != nil {
		t.Fatalf("Step1 error: %v", err)
	}
	pr := block.PMin
	const dt = 1e-6
	total := pr.Duration()
	for tt := 0.0; tt < total; tt += total / 200 {
		p1, v1, a1 := pr.AtTime(tt)
		p2, v2, a2 := pr.AtTime(tt + dt)
		if math.Abs(p2-p1) > 1e-3 || math.Abs(v2-v1) > 1e-3 || math.Abs(a2-a1) > 1e-3 {
			t.Fatalf("discontinuity near t=%v: (%v,%v,%v) -> (%v,%v,%v)", tt, p1, v1, a1, p2, v2, a2)
		}
	}
}

func TestProfileAtTimeReachesTarget(t *testing.T) {
	block, err := Step1(0, 0, 0, 1, 0, 0, 1, 1, 1)
	if err != nil {
		t.Fatalf("Step1 error: %v", err)
	}
	pr := block.PMin
	p, v, a := pr.AtTime(pr.Duration())
	if math.Abs(p-1) > 1e-6 || math.Abs(v) > 1e-6 || math.Abs(a) > 1e-6 {
		t.Errorf("expected terminal state (1,0,0), got (%v,%v,%v)", p, v, a)
	}
}

func TestProfileCheckFeasibleRejectsJerkViolation(t *testing.T) {
	pr := &Profile{
		T: [7]float64{1, 0, 1, 0, 1, 0, 1},
		J: [7]float64{10, 0, -10, 0, -10, 0, 10},
	}
	pr.integrateSegments(0, 0, 0)
	if pr.checkFeasible(pr.P[7], pr.V[7], pr.A[7], 100, 100, 1, nil) {
		t.Errorf("expected feasibility check to reject a jerk-limit violation")
	}
}

func TestProfileCheckFeasibleRejectsDurationMismatch(t *testing.T) {
	block, err := Step1(0, 0, 0, 1, 0, 0, 1, 1, 1)
	if err != nil {
		t.Fatalf("Step1 error: %v", err)
	}
	pr := block.PMin
	badTf := pr.Duration() + 1
	if pr.checkFeasible(pr.P[7], pr.V[7], pr.A[7], 1, 1, 1, &badTf) {
		t.Errorf("expected feasibility check to reject a mismatched fixed duration")
	}
}
