package motion

import "math"

// Brake computes up to two corrective constant-jerk segments that bring an
// axis whose current (v0, a0) already violates its limits back inside the
// feasible envelope, so Step1 always starts from a legal boundary-value
// problem.
//
// Two independent conditions can trigger a brake:
//   - the initial acceleration itself exceeds aMax, or driving it to zero
//     at max jerk would carry the velocity outside [-vMax, vMax];
//   - the initial velocity is already outside [-vMax, vMax].
// When neither holds, both returned durations are zero.
func Brake(v0, a0, vMax, aMax, jMax float64) (tBrake, jBrake [2]float64) {
	accelViolation := math.Abs(a0) > aMax+epsVelAcc

	signA := sign(a0)
	var midV, midA float64
	if a0 != 0 {
		t0 := math.Abs(a0) / jMax
		_, midV, midA = Integrate(t0, 0, v0, a0, -signA*jMax)
	} else {
		midV, midA = v0, 0
	}
	wouldOvershootV := math.Abs(midV) > vMax+epsVelAcc
	_ = midA

	switch {
	case accelViolation || (wouldOvershootV && math.Abs(a0) > epsGeneric):
		if accelViolation || math.Abs(a0) > epsGeneric {
			tBrake[0] = math.Abs(a0) / jMax
			jBrake[0] = -signA * jMax
			if math.Abs(midV) > vMax+epsVelAcc {
				signV := sign(midV)
				tBrake[1] = math.Sqrt(2 * math.Max(0, math.Abs(midV)-vMax) / jMax)
				jBrake[1] = -signV * jMax
			}
		}
	case math.Abs(v0) > vMax+epsVelAcc:
		signV := sign(v0)
		jerk := -signV * jMax
		tToAMax := aMax / jMax
		tNeeded := math.Sqrt(2 * math.Max(0, math.Abs(v0)-vMax) / jMax)
		tBrake[0] = math.Min(tNeeded, tToAMax)
		jBrake[0] = jerk

		_, midV2, midA2 := Integrate(tBrake[0], 0, v0, 0, jerk)
		if math.Abs(midA2) > epsGeneric {
			tBrake[1] = math.Abs(midA2) / jMax
			jBrake[1] = signV * jMax
		}
		_ = midV2
	}

	for i := 0; i < 2; i++ {
		if tBrake[i] < epsBrake {
			tBrake[i] = 0
			jBrake[i] = 0
		}
	}
	return tBrake, jBrake
}

func sign(x float64) float64 {
	if x < 0 {
		return -1
	}
	if x > 0 {
		return 1
	}
	return 0
}
