package motion

import "math"

// Profile is a finalized seven-segment jerk-limited trajectory for one
// axis, optionally preceded by up to two brake segments.
type Profile struct {
	T    [7]float64
	TSum [7]float64
	J    [7]float64
	A    [8]float64
	V    [8]float64
	P    [8]float64

	Limits    Limits
	Direction Direction
	Teeth     Teeth

	HasBrake  bool
	TBrake    [2]float64
	JBrake    [2]float64
	PBrake    [2]float64
	VBrake    [2]float64
	ABrake    [2]float64
	TBrakeSum float64

	// PreBrakeP/V/A cache the kinematic state before the brake prefix was
	// applied, kept purely for diagnostics.
	PreBrakeP, PreBrakeV, PreBrakeA float64
}

// Duration is the total time this profile takes to run, brake prefix
// included.
func (pr *Profile) Duration() float64 {
	return pr.TBrakeSum + pr.TSum[6]
}

// integrateSegments fills TSum, A, V, P by forward-integrating all seven
// segments from the boundary state (p0, v0, a0).
func (pr *Profile) integrateSegments(p0, v0, a0 float64) {
	pr.P[0], pr.V[0], pr.A[0] = p0, v0, a0
	sum := 0.0
	for i := 0; i < 7; i++ {
		sum += pr.T[i]
		pr.TSum[i] = sum
		pr.P[i+1], pr.V[i+1], pr.A[i+1] = Integrate(pr.T[i], pr.P[i], pr.V[i], pr.A[i], pr.J[i])
	}
}

// buildBrake integrates the (up to two) brake segments ahead of segment 0,
// caching the pre-brake state and returning the post-brake boundary state
// that segment 0 should start from.
func (pr *Profile) buildBrake(p0, v0, a0 float64, tBrake, jBrake [2]float64) (p1, v1, a1 float64) {
	pr.HasBrake = tBrake[0] > 0 || tBrake[1] > 0
	pr.PreBrakeP, pr.PreBrakeV, pr.PreBrakeA = p0, v0, a0
	pr.TBrake, pr.JBrake = tBrake, jBrake

	p, v, a := p0, v0, a0
	for i := 0; i < 2; i++ {
		p, v, a = Integrate(tBrake[i], p, v, a, jBrake[i])
		pr.PBrake[i], pr.VBrake[i], pr.ABrake[i] = p, v, a
	}
	pr.TBrakeSum = tBrake[0] + tBrake[1]
	return p, v, a
}

// checkFeasible verifies segment-duration non-negativity, jerk and
// acceleration and velocity ceilings, and terminal state match against the
// given targets and limits. tf, when non-nil, additionally requires the
// total duration to match it exactly.
func (pr *Profile) checkFeasible(pf, vf, af, vMax, aMax, jMax float64, tf *float64) bool {
	for i := 0; i < 7; i++ {
		if pr.T[i] < -epsGeneric {
			return false
		}
	}
	for i := 0; i < 2; i++ {
		if pr.TBrake[i] < -epsBrake {
			return false
		}
	}
	for i := 0; i < 7; i++ {
		if math.Abs(pr.J[i]) > jMax+epsJerk {
			return false
		}
	}
	for i := 2; i <= 7; i++ {
		if math.Abs(pr.A[i]) > aMax+epsVelAcc {
			return false
		}
	}
	for i := 3; i <= 7; i++ {
		if math.Abs(pr.V[i]) > vMax+epsVelAcc {
			return false
		}
	}
	if math.Abs(pr.P[7]-pf) > epsTerm || math.Abs(pr.V[7]-vf) > epsTerm || math.Abs(pr.A[7]-af) > epsTerm {
		return false
	}
	if tf != nil && math.Abs(pr.TSum[6]-*tf) > epsTerm {
		return false
	}
	return true
}

// AtTime samples this profile (brake prefix included) at a local time
// offset t in [0, Duration()] by walking the brake and main segments in
// order until it finds the one t falls into.
func (pr *Profile) AtTime(t float64) (p, v, a float64) {
	if pr.HasBrake && t < pr.TBrakeSum {
		p0, v0, a0 := pr.PreBrakeP, pr.PreBrakeV, pr.PreBrakeA
		if t < pr.TBrake[0] {
			return Integrate(t, p0, v0, a0, pr.JBrake[0])
		}
		return Integrate(t-pr.TBrake[0], pr.PBrake[0], pr.VBrake[0], pr.ABrake[0], pr.JBrake[1])
	}

	tDiff := t - pr.TBrakeSum
	k := 0
	for k < 6 && tDiff >= pr.TSum[k] {
		k++
	}
	prevSum := 0.0
	if k > 0 {
		prevSum = pr.TSum[k-1]
	}
	return Integrate(tDiff-prevSum, pr.P[k], pr.V[k], pr.A[k], pr.J[k])
}
