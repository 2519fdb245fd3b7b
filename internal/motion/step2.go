package motion

import "math"

// Step2 rebuilds an axis's profile to last exactly duration tf, given the
// same boundary conditions Step1 would take. tf must be >= the axis's own
// TMin for a solution to exist; the synchronizer is responsible for only
// ever calling Step2 with a duration it already knows is achievable for the
// limiting axis and plausible for the others.
//
// Unlike Step1, where the meeting velocity vp is the only free parameter,
// Step2 has a second one: the cruise duration, fixed by whatever time is
// left over once the two acceleration ramps are accounted for. That extra
// degree of freedom is what lets a single vp equation be satisfied for any
// tf at or above the branch's own minimum, so — mirroring ruckig's
// Step2::time_*_vel method set — Step2 only needs to try the four branches
// that admit a (possibly zero-length) cruise segment: which of the two
// ramps saturate at aMax is still an explicit per-branch assumption, exactly
// as in Step1, but the vel-branch algebra covers the acceleration-only
// cases too once their solved cruise duration comes out to zero.
func Step2(tf, p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (*Profile, error) {
	if vMax <= 0 || aMax <= 0 || jMax <= 0 {
		return nil, ErrInvalidLimits
	}

	for _, dir := range [2]Direction{Up, Down} {
		p0s, v0s, a0s, pfs, vfs, afs := p0, v0, a0, pf, vf, af
		if dir == Down {
			p0s, v0s, a0s, pfs, vfs, afs = -p0, -v0, -a0, -pf, -vf, -af
		}
		for _, branch := range step2Branches {
			for _, vp := range findAllRoots(branch.residual(p0s, v0s, a0s, pfs, vfs, afs, tf, vMax, aMax, jMax), -vMax, vMax) {
				accel, decel, cruiseT, ok := branch.build(v0s, a0s, vfs, afs, vp, tf, aMax, jMax)
				if !ok || cruiseT < -epsGeneric {
					continue
				}
				if cruiseT < 0 {
					cruiseT = 0
				}
				if dir == Up {
					if c, ok := buildCandidate(p0, v0, a0, pf, vf, af, vMax, aMax, jMax, accel, cruiseT, decel, Up); ok {
						tfCopy := tf
						if c.profile.checkFeasible(pf, vf, af, vMax, aMax, jMax, &tfCopy) {
							return c.profile, nil
						}
					}
					continue
				}

				// Mirror back into the true frame: negate the jerks found
				// while solving the negated boundary-value problem and
				// re-integrate from the axis's real starting state.
				mirroredAccel := phase3{t: accel.t, j: [3]float64{-accel.j[0], -accel.j[1], -accel.j[2]}}
				mirroredDecel := phase3{t: decel.t, j: [3]float64{-decel.j[0], -decel.j[1], -decel.j[2]}}
				profile := assembleProfile(p0, v0, a0, mirroredAccel, cruiseT, mirroredDecel, Down, aMax, vMax)
				tfCopy := tf
				if profile.checkFeasible(pf, vf, af, vMax, aMax, jMax, &tfCopy) {
					return profile, nil
				}
			}
		}
	}
	return nil, ErrNoFeasibleFixedProfile
}

// step2Branch is one of the four (accel plateau?, decel plateau?) assumption
// pairs. build reconstructs the two phase3 halves and the leftover cruise
// duration for a candidate meeting velocity vp; ok is false if the
// assumption it embodies is contradicted (a plateau that would run
// backwards). The cruise duration is returned unclamped, so the residual
// stays continuous through zero cruise; Step2 rejects a negative one.
type step2Branch struct {
	build func(v0, a0, vf, af, vp, tf, aMax, jMax float64) (accel, decel phase3, cruiseT float64, ok bool)
}

var step2Branches = [4]step2Branch{
	{build: buildAcc0Acc1Vel},
	{build: buildAcc1Vel},
	{build: buildAcc0Vel},
	{build: buildVel},
}

func buildAcc0Acc1Vel(v0, a0, vf, af, vp, tf, aMax, jMax float64) (phase3, phase3, float64, bool) {
	accel, ok := buildPhase3Checked(v0, a0, vp, 0, aMax, jMax, true)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	decel, ok := buildPhase3Checked(vp, 0, vf, af, -aMax, jMax, false)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	return finishStep2Branch(accel, decel, tf)
}

func buildAcc1Vel(v0, a0, vf, af, vp, tf, aMax, jMax float64) (phase3, phase3, float64, bool) {
	accel, ok := naturalHalf(v0, a0, vp, 0, aMax, jMax)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	decel, ok := buildPhase3Checked(vp, 0, vf, af, -aMax, jMax, false)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	return finishStep2Branch(accel, decel, tf)
}

func buildAcc0Vel(v0, a0, vf, af, vp, tf, aMax, jMax float64) (phase3, phase3, float64, bool) {
	accel, ok := buildPhase3Checked(v0, a0, vp, 0, aMax, jMax, true)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	decel, ok := naturalHalf(vp, 0, vf, af, aMax, jMax)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	return finishStep2Branch(accel, decel, tf)
}

func buildVel(v0, a0, vf, af, vp, tf, aMax, jMax float64) (phase3, phase3, float64, bool) {
	accel, ok := naturalHalf(v0, a0, vp, 0, aMax, jMax)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	decel, ok := naturalHalf(vp, 0, vf, af, aMax, jMax)
	if !ok {
		return phase3{}, phase3{}, 0, false
	}
	return finishStep2Branch(accel, decel, tf)
}

func finishStep2Branch(accel, decel phase3, tf float64) (phase3, phase3, float64, bool) {
	cruiseT := tf - accel.duration() - decel.duration()
	return accel, decel, cruiseT, true
}

// residual returns, for a candidate vp, how far the branch's resulting
// displacement misses the target — or NaN if the branch's plateau
// assumption doesn't hold at that vp, so findAllRoots skips over it cleanly.
func (b step2Branch) residual(p0, v0, a0, pf, vf, af, tf, vMax, aMax, jMax float64) func(float64) float64 {
	return func(vp float64) float64 {
		accel, decel, cruiseT, ok := b.build(v0, a0, vf, af, vp, tf, aMax, jMax)
		if !ok {
			return math.NaN()
		}
		accelDist := accel.integrate(0, v0, a0)[2][0]
		decelDist := decel.integrate(0, vp, 0)[2][0]
		dist := accelDist + vp*cruiseT + decelDist
		return dist - (pf - p0)
	}
}
