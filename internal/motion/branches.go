package motion

import "math"

// candidate is one feasible seven-segment profile produced by a single
// (Direction, Limits) branch. Step1 collects every candidate every branch
// below can produce for the given boundary conditions, discards the ones
// that fail Profile.checkFeasible, and keeps the rest: the shortest becomes
// Block.PMin, and any additional candidates a branch's own algebra rules out
// as unreachable in between become Block.A / Block.B.
type candidate struct {
	profile *Profile
}

func (c candidate) duration() float64 { return c.profile.Duration() }

// buildCandidate lays out accel/cruise/decel into a profile and keeps it
// only if it actually reaches the requested terminal state within limits.
func buildCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64, accel phase3, cruiseT float64, decel phase3, direction Direction) (candidate, bool) {
	if cruiseT < -epsGeneric {
		return candidate{}, false
	}
	if cruiseT < 0 {
		cruiseT = 0
	}
	profile := assembleProfile(p0, v0, a0, accel, cruiseT, decel, direction, aMax, vMax)
	if !profile.checkFeasible(pf, vf, af, vMax, aMax, jMax, nil) {
		return candidate{}, false
	}
	return candidate{profile: profile}, true
}

// upBranches enumerates all eight Limits cases for the "up" (native-sign)
// direction, mirroring ruckig's Step1::time_up_* method set: each function
// below states an explicit assumption about which of {initial acceleration
// plateau, final acceleration plateau, cruise at vMax} are active, solves
// for the meeting velocity vp under that assumption, and verifies the
// assumption against the result. A branch that finds its own assumption
// contradicted (e.g. a plateau duration comes out negative) contributes no
// candidate; a branch is free to contribute more than one when its
// governing equation has more than one physically valid root.
func upBranches(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	var out []candidate
	for _, fn := range []func(float64, float64, float64, float64, float64, float64, float64, float64, float64) []candidate{
		timeUpAcc0Acc1Vel,
		timeUpAcc1Vel,
		timeUpAcc0Vel,
		timeUpVel,
		timeUpAcc0Acc1,
		timeUpAcc1,
		timeUpAcc0,
		timeUpNone,
	} {
		out = append(out, fn(p0, v0, a0, pf, vf, af, vMax, aMax, jMax)...)
	}
	return out
}

// downBranches solves the same eight cases for the "down" direction by
// exploiting the odd symmetry of constant-jerk integration: negating every
// kinematic quantity, solving the up-direction problem, then negating the
// resulting jerks back (not the durations, which are direction-invariant)
// reproduces the exact family of profiles ruckig's time_down_* methods
// derive directly. See DESIGN.md for the derivation.
func downBranches(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	mirrored := upBranches(-p0, -v0, -a0, -pf, -vf, -af, vMax, aMax, jMax)
	out := make([]candidate, 0, len(mirrored))
	for _, c := range mirrored {
		pr := c.profile
		teeth := UDUD
		if pr.Teeth == UDUD {
			teeth = UDDU
		}
		down := &Profile{
			T:         pr.T,
			J:         [7]float64{-pr.J[0], -pr.J[1], -pr.J[2], -pr.J[3], -pr.J[4], -pr.J[5], -pr.J[6]},
			Direction: Down,
			Teeth:     teeth,
			Limits:    pr.Limits,
		}
		down.integrateSegments(p0, v0, a0)
		if !down.checkFeasible(pf, vf, af, vMax, aMax, jMax, nil) {
			continue
		}
		out = append(out, candidate{profile: down})
	}
	return out
}

// timeUpAcc0Acc1Vel assumes both acceleration ramps saturate at +-aMax and
// the profile cruises at +vMax. With vp pinned at vMax the only unknown is
// the cruise duration, found by direct subtraction: no root-finding at all.
func timeUpAcc0Acc1Vel(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	accel, ok := buildPhase3Checked(v0, a0, vMax, 0, aMax, jMax, true)
	if !ok {
		return nil
	}
	decel, ok := buildPhase3Checked(vMax, 0, vf, af, -aMax, jMax, false)
	if !ok {
		return nil
	}
	return velCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, decel)
}

// timeUpAcc1Vel assumes the initial ramp never reaches aMax (it settles
// naturally below it) while the final ramp saturates, cruising at vMax.
func timeUpAcc1Vel(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	accel, ok := naturalHalf(v0, a0, vMax, 0, aMax, jMax)
	if !ok {
		return nil
	}
	decel, ok := buildPhase3Checked(vMax, 0, vf, af, -aMax, jMax, false)
	if !ok {
		return nil
	}
	return velCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, decel)
}

// timeUpAcc0Vel is the mirror of timeUpAcc1Vel: the initial ramp saturates,
// the final ramp does not.
func timeUpAcc0Vel(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	accel, ok := buildPhase3Checked(v0, a0, vMax, 0, aMax, jMax, true)
	if !ok {
		return nil
	}
	decel, ok := naturalHalf(vMax, 0, vf, af, aMax, jMax)
	if !ok {
		return nil
	}
	return velCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, decel)
}

// timeUpVel assumes neither ramp reaches aMax; the cruise at vMax is
// entirely responsible for absorbing the acceleration limit.
func timeUpVel(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	accel, ok := naturalHalf(v0, a0, vMax, 0, aMax, jMax)
	if !ok {
		return nil
	}
	decel, ok := naturalHalf(vMax, 0, vf, af, aMax, jMax)
	if !ok {
		return nil
	}
	return velCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, decel)
}

// velCandidate finishes any of the four vMax-cruising branches once both
// halves are fixed: the cruise duration is whatever distance remains,
// divided by vMax.
func velCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64, accel, decel phase3) []candidate {
	accelDist := accel.integrate(0, v0, a0)[2][0]
	decelDist := decel.integrate(0, vMax, 0)[2][0]
	cruiseT := ((pf - p0) - accelDist - decelDist) / vMax
	c, ok := buildCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, cruiseT, decel, Up)
	if !ok {
		return nil
	}
	return []candidate{c}
}

// timeUpAcc0Acc1 assumes both ramps saturate at aMax but the meeting
// velocity vp never reaches vMax, so there is no cruise segment. Forcing
// both plateaus to +-aMax makes every plateau duration an affine function of
// vp (see DESIGN.md), so total displacement is an exact quadratic in vp:
// findAllRoots recovers its roots (at most two, both algebraically exact up
// to bisection tolerance) without ever having scanned the unrelated
// unclamped cases.
func timeUpAcc0Acc1(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	eval := func(vp float64) float64 {
		accel, ok := buildPhase3Checked(v0, a0, vp, 0, aMax, jMax, true)
		if !ok {
			return math.NaN()
		}
		decel, ok := buildPhase3Checked(vp, 0, vf, af, -aMax, jMax, false)
		if !ok {
			return math.NaN()
		}
		dist := accel.integrate(0, v0, a0)[2][0] + decel.integrate(0, vp, 0)[2][0]
		return dist - (pf - p0)
	}
	var out []candidate
	for _, vp := range findAllRoots(eval, -vMax, vMax) {
		accel, ok := buildPhase3Checked(v0, a0, vp, 0, aMax, jMax, true)
		if !ok {
			continue
		}
		decel, ok := buildPhase3Checked(vp, 0, vf, af, -aMax, jMax, false)
		if !ok {
			continue
		}
		if c, ok := buildCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, 0, decel, Up); ok {
			out = append(out, c)
		}
	}
	return out
}

// timeUpAcc1 assumes only the final ramp saturates; the initial ramp's
// extremum is whatever the unclamped formula gives for the current vp.
func timeUpAcc1(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	eval := func(vp float64) float64 {
		accel, ok := naturalHalf(v0, a0, vp, 0, aMax, jMax)
		if !ok {
			return math.NaN()
		}
		decel, ok := buildPhase3Checked(vp, 0, vf, af, -aMax, jMax, false)
		if !ok {
			return math.NaN()
		}
		dist := accel.integrate(0, v0, a0)[2][0] + decel.integrate(0, vp, 0)[2][0]
		return dist - (pf - p0)
	}
	var out []candidate
	for _, vp := range findAllRoots(eval, -vMax, vMax) {
		accel, ok := naturalHalf(v0, a0, vp, 0, aMax, jMax)
		if !ok {
			continue
		}
		decel, ok := buildPhase3Checked(vp, 0, vf, af, -aMax, jMax, false)
		if !ok {
			continue
		}
		if c, ok := buildCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, 0, decel, Up); ok {
			out = append(out, c)
		}
	}
	return out
}

// timeUpAcc0 mirrors timeUpAcc1: only the initial ramp saturates.
func timeUpAcc0(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	eval := func(vp float64) float64 {
		accel, ok := buildPhase3Checked(v0, a0, vp, 0, aMax, jMax, true)
		if !ok {
			return math.NaN()
		}
		decel, ok := naturalHalf(vp, 0, vf, af, aMax, jMax)
		if !ok {
			return math.NaN()
		}
		dist := accel.integrate(0, v0, a0)[2][0] + decel.integrate(0, vp, 0)[2][0]
		return dist - (pf - p0)
	}
	var out []candidate
	for _, vp := range findAllRoots(eval, -vMax, vMax) {
		accel, ok := buildPhase3Checked(v0, a0, vp, 0, aMax, jMax, true)
		if !ok {
			continue
		}
		decel, ok := naturalHalf(vp, 0, vf, af, aMax, jMax)
		if !ok {
			continue
		}
		if c, ok := buildCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, 0, decel, Up); ok {
			out = append(out, c)
		}
	}
	return out
}

// timeUpNone assumes neither ramp reaches aMax and there is no cruise: the
// fully unconstrained double-S profile. Both halves' extrema are the
// unclamped sqrt formula, which is itself closed-form in vp; only their sum
// matching the target displacement needs root-finding, and that equation is
// generally not polynomial (the sqrt terms don't collapse the way the
// clamped cases' affine plateau durations do), so it is solved by bracketing
// every sign change rather than a single quadratic formula.
func timeUpNone(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) []candidate {
	eval := func(vp float64) float64 {
		accel, ok := naturalHalf(v0, a0, vp, 0, aMax, jMax)
		if !ok {
			return math.NaN()
		}
		decel, ok := naturalHalf(vp, 0, vf, af, aMax, jMax)
		if !ok {
			return math.NaN()
		}
		dist := accel.integrate(0, v0, a0)[2][0] + decel.integrate(0, vp, 0)[2][0]
		return dist - (pf - p0)
	}
	var out []candidate
	for _, vp := range findAllRoots(eval, -vMax, vMax) {
		accel, ok := naturalHalf(v0, a0, vp, 0, aMax, jMax)
		if !ok {
			continue
		}
		decel, ok := naturalHalf(vp, 0, vf, af, aMax, jMax)
		if !ok {
			continue
		}
		if c, ok := buildCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, 0, decel, Up); ok {
			out = append(out, c)
		}
	}
	return out
}
