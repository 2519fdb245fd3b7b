package motion

import "math"

// assembleProfile lays the accel phase, an optional cruise segment, and the
// decel phase into the seven fixed slots of a Profile and forward-integrates
// them from (p0, v0, a0).
func assembleProfile(p0, v0, a0 float64, accel phase3, cruiseT float64, decel phase3, direction Direction, aMax, vMax float64) *Profile {
	pr := &Profile{
		T:         [7]float64{accel.t[0], accel.t[1], accel.t[2], cruiseT, decel.t[0], decel.t[1], decel.t[2]},
		J:         [7]float64{accel.j[0], accel.j[1], accel.j[2], 0, decel.j[0], decel.j[1], decel.j[2]},
		Direction: direction,
	}
	pr.Teeth = UDDU
	if accel.j[0] < 0 {
		pr.Teeth = UDUD
	}
	pr.Limits = classifyLimits(accel.t[1] > epsGeneric, decel.t[1] > epsGeneric, cruiseT > epsGeneric)
	pr.integrateSegments(p0, v0, a0)
	return pr
}

func classifyLimits(acc0, acc1, vel bool) Limits {
	switch {
	case acc0 && acc1 && vel:
		return LimitsAcc0Acc1Vel
	case acc0 && vel:
		return LimitsAcc0Vel
	case acc1 && vel:
		return LimitsAcc1Vel
	case acc0 && acc1:
		return LimitsAcc0Acc1
	case vel:
		return LimitsVel
	case acc0:
		return LimitsAcc0
	case acc1:
		return LimitsAcc1
	default:
		return LimitsNone
	}
}

// bisect finds a root of f in [lo, hi] given that f(lo) and f(hi) have
// values of opposite sign (or are already within tolerance of zero). It
// runs a fixed iteration count, ample for double-precision convergence
// over any physically reasonable bracket width.
func bisect(f func(float64) float64, lo, hi, flo, fhi float64) float64 {
	if flo == 0 {
		return lo
	}
	if fhi == 0 {
		return hi
	}
	for i := 0; i < 100; i++ {
		mid := 0.5 * (lo + hi)
		fm := f(mid)
		if (fm >= 0) == (fhi >= 0) {
			hi, fhi = mid, fm
		} else {
			lo, flo = mid, fm
		}
	}
	return 0.5 * (lo + hi)
}

// rootScanSamples is the resolution of the coarse scan findAllRoots uses to
// bracket every sign change of a residual across [lo, hi]. The two
// accelTransition halves that feed these residuals are themselves smooth
// (each is a single sqrt/quadratic branch of the meeting velocity), so a
// residual can cross zero at most a handful of times; 512 samples comfortably
// separates brackets that are physically distinct without mistaking one
// crossing for two.
const rootScanSamples = 512

// findAllRoots brackets and bisects every sign change of f across [lo, hi],
// returning one root per bracket found. Unlike bisect's single-bracket
// caller, this is used where a residual can legitimately have more than one
// zero: the "no cruise" meeting-velocity residual admits both a direct
// solution and a slower double-back solution (accelerate past the target
// velocity, or through zero, before settling), and Step1 must see both to
// populate a Block's forbidden interval correctly.
// f may return math.NaN() to mean "this case's assumption does not hold at
// this x" (e.g. a plateau that would need to run backwards); such samples
// break the current bracket without producing a spurious root.
func findAllRoots(f func(float64) float64, lo, hi float64) []float64 {
	var roots []float64
	step := (hi - lo) / float64(rootScanSamples)
	prevX, prevF := lo, f(lo)
	if prevF == 0 {
		roots = append(roots, prevX)
	}
	for i := 1; i <= rootScanSamples; i++ {
		x := lo + step*float64(i)
		fx := f(x)
		switch {
		case math.IsNaN(fx):
			// leave prevF as NaN so the next iteration also skips
		case math.IsNaN(prevF):
			// bracket restarts fresh on the next finite sample
		case fx == 0:
			roots = append(roots, x)
		case (fx > 0) != (prevF > 0):
			roots = append(roots, bisect(f, prevX, x, prevF, fx))
		}
		prevX, prevF = x, fx
	}
	return roots
}
