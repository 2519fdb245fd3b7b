package motion

import "errors"

// Sentinel errors returned by the per-axis solvers. The orchestrator maps
// these to a Result value; nothing here is retried or recovered locally.
var (
	ErrInvalidLimits          = errors.New("motion: max_velocity, max_acceleration and max_jerk must be positive")
	ErrTargetExceedsLimits    = errors.New("motion: target kinematics exceed the physical ceiling implied by max_velocity/max_acceleration/max_jerk")
	ErrNoFeasibleProfile      = errors.New("motion: no feasible seven-segment profile for the given boundary conditions")
	ErrNoFeasibleFixedProfile = errors.New("motion: no feasible profile of the requested duration")
	ErrSynchronizationFailed  = errors.New("motion: synchronizer exhausted candidates without finding a common feasible duration")
	ErrDOFMismatch            = errors.New("motion: input slice length does not match the generator's DOF count")
)
