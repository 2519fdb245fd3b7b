package motion

import (
	"math"
	"sort"
)

// Step1 finds the time-optimal seven-segment profile carrying one axis from
// (p0, v0, a0) to (pf, vf, af) without exceeding vMax, aMax and jMax. It
// tries every (Direction, Limits) branch in branches.go — sixteen in total,
// two directions times eight combinations of which of {initial acceleration
// plateau, final acceleration plateau, cruise velocity} saturate — keeps
// every branch's feasible output as a candidate, and returns the
// shortest-duration one as the time-optimal profile.
//
// A branch whose governing equation has two physically valid roots (this
// happens in the acceleration-only branches, whose displacement is an exact
// quadratic in the meeting velocity) contributes two candidates at two
// different durations for the same boundary conditions. When the shorter of
// the two wins overall and the longer sits below the point where a
// vMax-cruising branch takes over, every duration strictly between them is
// unreachable by any candidate: that gap becomes Block.A (a second such gap,
// if some branch yields a third root, becomes Block.B).
func Step1(p0, v0, a0, pf, vf, af, vMax, aMax, jMax float64) (*Block, error) {
	if vMax <= 0 || aMax <= 0 || jMax <= 0 {
		return nil, ErrInvalidLimits
	}

	candidates := append(
		upBranches(p0, v0, a0, pf, vf, af, vMax, aMax, jMax),
		downBranches(p0, v0, a0, pf, vf, af, vMax, aMax, jMax)...,
	)
	if len(candidates) == 0 {
		return nil, ErrNoFeasibleProfile
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].duration() < candidates[j].duration() })

	pMin := candidates[0]
	block := &Block{TMin: pMin.duration(), PMin: pMin.profile}

	// velFloor is the smallest duration at which some vMax-cruising branch
	// is feasible. From that duration on, any longer one is reachable by
	// simply lengthening the cruise segment (Step2's job); a non-cruising
	// candidate's duration below velFloor is not bridgeable that way.
	velFloor := math.Inf(1)
	for _, c := range candidates {
		if isVelLimited(c.profile.Limits) && c.duration() < velFloor {
			velFloor = c.duration()
		}
	}

	var gaps []float64
	for _, c := range candidates[1:] {
		d := c.duration()
		if d <= block.TMin+epsGeneric {
			continue // duplicate root at (numerically) the same duration
		}
		if d < velFloor-epsGeneric {
			gaps = append(gaps, d)
		}
	}
	sort.Float64s(gaps)
	gaps = dedupeSorted(gaps, epsGeneric)

	if len(gaps) > 0 {
		block.A = &Interval{Left: block.TMin, Right: gaps[0]}
	}
	if len(gaps) > 1 {
		block.B = &Interval{Left: gaps[0], Right: gaps[1]}
	}
	return block, nil
}

func isVelLimited(l Limits) bool {
	switch l {
	case LimitsVel, LimitsAcc0Vel, LimitsAcc1Vel, LimitsAcc0Acc1Vel:
		return true
	default:
		return false
	}
}

func dedupeSorted(xs []float64, tol float64) []float64 {
	if len(xs) == 0 {
		return xs
	}
	out := xs[:1]
	for _, x := range xs[1:] {
		if x > out[len(out)-1]+tol {
			out = append(out, x)
		}
	}
	return out
}
