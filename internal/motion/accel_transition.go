package motion

import "math"

// phase3 is a minimal-time, at-most-three-segment constant-jerk maneuver
// that carries (v0, a0) to (v1, a1) subject to |a| <= aMax and |jerk| <=
// jMax. It is the building block Step1 and Step2 use for the acceleration
// half and the deceleration half of a seven-segment profile: the middle
// (cruise) segment of the profile is always the boundary between two
// phase3 maneuvers, one ending and one starting at acceleration zero.
//
// Only the v1 >= v0 family is derived in closed form (accelTransitionUp);
// the general case is obtained by negating every kinematic quantity,
// solving, and negating the result back.
type phase3 struct {
	t    [3]float64 // segment durations
	j    [3]float64 // segment jerks (signed)
	peak float64    // the middle extremum reached (aMax-bounded)
}

// duration is the total time spent in the maneuver.
func (p phase3) duration() float64 { return p.t[0] + p.t[1] + p.t[2] }

// integrate walks the maneuver forward from (p0, v0, a0) and returns the
// boundary state after each of the (up to) three segments, plus the final
// state. bounds[0] is the state after segment 0, bounds[1] after segment 1,
// bounds[2] after segment 2 (== the final state).
func (p phase3) integrate(p0, v0, a0 float64) (bounds [3][3]float64) {
	pp, vv, aa := p0, v0, a0
	for i := 0; i < 3; i++ {
		pp, vv, aa = Integrate(p.t[i], pp, vv, aa, p.j[i])
		bounds[i] = [3]float64{pp, vv, aa}
	}
	return bounds
}

// accelTransition returns the minimal-time three-segment maneuver from
// (v0, a0) to (v1, a1), bounded by aMax and jMax. It never violates aMax
// (the middle extremum "peak" is clamped to it) and assumes |a0|, |a1| are
// themselves within aMax already (the Brake stage is responsible for that).
func accelTransition(v0, a0, v1, a1, aMax, jMax float64) phase3 {
	if v1 >= v0 {
		return accelTransitionUp(v0, a0, v1, a1, aMax, jMax)
	}
	up := accelTransitionUp(-v0, -a0, -v1, -a1, aMax, jMax)
	return phase3{
		t:    up.t,
		j:    [3]float64{-up.j[0], -up.j[1], -up.j[2]},
		peak: -up.peak,
	}
}

// accelTransitionUp handles v1 >= v0. The middle extremum is either a
// "peak" above both a0 and a1 (jerk +,0,- — UDDU) when the velocity change
// needed is large relative to |a0|, |a1|, or a "valley" below both (jerk
// -,0,+ — UDUD) when it is small. Both sub-cases reduce to a closed-form
// quadratic in the extremum value: peak² = jMax·dv + (a0²+a1²)/2.
func accelTransitionUp(v0, a0, v1, a1, aMax, jMax float64) phase3 {
	dv := v1 - v0

	// Peak case: extremum >= max(a0, a1).
	peakSq := jMax*dv + 0.5*(a0*a0+a1*a1)
	if peakSq >= 0 {
		peak := math.Sqrt(peakSq)
		if peak >= a0-epsGeneric && peak >= a1-epsGeneric {
			if peak <= aMax {
				return buildPhase3(v0, a0, v1, a1, peak, jMax, true)
			}
			return buildPhase3(v0, a0, v1, a1, aMax, jMax, true)
		}
	}

	// Valley case: extremum <= min(a0, a1).
	valleySq := 0.5*(a0*a0+a1*a1) - jMax*dv
	if valleySq >= 0 {
		valley := -math.Sqrt(valleySq)
		if valley <= a0+epsGeneric && valley <= a1+epsGeneric {
			if valley >= -aMax {
				return buildPhase3(v0, a0, v1, a1, valley, jMax, false)
			}
			return buildPhase3(v0, a0, v1, a1, -aMax, jMax, false)
		}
	}

	// Degenerate fallback (measure-zero numerical edge): clamp to whichever
	// extremum candidate is closer to feasible and let the caller's
	// feasibility check reject it if it still doesn't match.
	peak := math.Max(a0, a1)
	if peakSq > 0 {
		peak = math.Min(aMax, math.Sqrt(peakSq))
	}
	return buildPhase3(v0, a0, v1, a1, peak, jMax, true)
}

// naturalHalf computes the minimal-time three-segment maneuver from (v0, a0)
// to (v1, a1) under the assumption that aMax is never reached, i.e. the
// middle extremum is whatever the unclamped peak/valley formula produces. It
// reports ok=false when that extremum would in fact exceed aMax, meaning the
// "no plateau" case does not apply and the caller must try the corresponding
// clamped branch instead. This is the explicit case-validity test that the
// generic accelTransition folds silently into its automatic clamp.
func naturalHalf(v0, a0, v1, a1, aMax, jMax float64) (phase3, bool) {
	if v1 >= v0 {
		return naturalHalfUp(v0, a0, v1, a1, aMax, jMax)
	}
	up, ok := naturalHalfUp(-v0, -a0, -v1, -a1, aMax, jMax)
	if !ok {
		return phase3{}, false
	}
	return phase3{
		t:    up.t,
		j:    [3]float64{-up.j[0], -up.j[1], -up.j[2]},
		peak: -up.peak,
	}, true
}

func naturalHalfUp(v0, a0, v1, a1, aMax, jMax float64) (phase3, bool) {
	dv := v1 - v0

	peakSq := jMax*dv + 0.5*(a0*a0+a1*a1)
	if peakSq >= 0 {
		peak := math.Sqrt(peakSq)
		if peak >= a0-epsGeneric && peak >= a1-epsGeneric && peak <= aMax+epsGeneric {
			return buildPhase3(v0, a0, v1, a1, peak, jMax, true), true
		}
	}

	valleySq := 0.5*(a0*a0+a1*a1) - jMax*dv
	if valleySq >= 0 {
		valley := -math.Sqrt(valleySq)
		if valley <= a0+epsGeneric && valley <= a1+epsGeneric && valley >= -aMax-epsGeneric {
			return buildPhase3(v0, a0, v1, a1, valley, jMax, false), true
		}
	}

	return phase3{}, false
}

// buildPhase3 assembles the three segments once the middle extremum value
// is known (already clamped to aMax). t1 (plateau at the extremum) absorbs
// any residual velocity change once the two jerk ramps are fixed; a
// would-be-negative t1 is clamped to zero, since accelTransitionUp and
// naturalHalfUp only ever call this once the extremum itself has already
// been checked against a0/a1, leaving a plateau length of exactly zero as
// the only way this can happen. Callers that have NOT already made that
// check (every forced-clamped assumption in branches.go and step2.go) must
// use buildPhase3Checked instead, which reports the negative case rather
// than silently absorbing it.
func buildPhase3(v0, a0, v1, a1, extremum, jMax float64, peak bool) phase3 {
	p, _ := buildPhase3Raw(v0, a0, v1, a1, extremum, jMax)
	if p.t[1] < 0 {
		p.t[1] = 0
	}
	return p
}

// buildPhase3Checked is buildPhase3 plus an explicit ok result: false means
// the plateau this extremum would require has negative duration, i.e. the
// assumption "acceleration saturates at extremum" is not consistent with
// these boundary conditions.
func buildPhase3Checked(v0, a0, v1, a1, extremum, jMax float64, peak bool) (phase3, bool) {
	p, t1Raw := buildPhase3Raw(v0, a0, v1, a1, extremum, jMax)
	if t1Raw < -epsGeneric {
		return phase3{}, false
	}
	if p.t[1] < 0 {
		p.t[1] = 0
	}
	return p, true
}

func buildPhase3Raw(v0, a0, v1, a1, extremum, jMax float64) (phase3, float64) {
	var j0, j2 float64
	if extremum >= a0 {
		j0 = jMax
	} else {
		j0 = -jMax
	}
	if a1 >= extremum {
		j2 = jMax
	} else {
		j2 = -jMax
	}
	t0 := 0.0
	if j0 != 0 {
		t0 = math.Abs(extremum-a0) / jMax
	}
	t2 := 0.0
	if j2 != 0 {
		t2 = math.Abs(a1-extremum) / jMax
	}

	vAfter0 := v0 + 0.5*(a0+extremum)*t0
	vBefore2 := v1 - 0.5*(extremum+a1)*t2

	t1Raw := 0.0
	if extremum != 0 {
		t1Raw = (vBefore2 - vAfter0) / extremum
	}

	return phase3{
		t:    [3]float64{t0, t1Raw, t2},
		j:    [3]float64{j0, 0, j2},
		peak: extremum,
	}, t1Raw
}
