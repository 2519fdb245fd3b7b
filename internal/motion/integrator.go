package motion

// Integrate is the closed-form solution of a single constant-jerk segment:
// given the boundary state (p0, v0, a0) and jerk j, it returns the state
// after duration t. Pure, total, no failure mode.
func Integrate(t, p0, v0, a0, j float64) (p, v, a float64) {
	p = p0 + v0*t + 0.5*a0*t*t + j*t*t*t/6
	v = v0 + a0*t + 0.5*j*t*t
	a = a0 + j*t
	return p, v, a
}
