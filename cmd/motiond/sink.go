package main

import (
	"motiond/internal/axisconfig"
	"motiond/internal/kinematics"
)

// targetSink accumulates the effect of one parsed G-code command onto the
// machine's running position and per-axis limits, and hands that state to
// driveToTarget as a motion.Input once a move has actually been requested.
type targetSink struct {
	mapping *kinematics.Mapping
	config  *axisconfig.MachineConfig

	position     []float64
	velocity     []float64
	acceleration []float64
	maxVelocity  []float64
	maxAccel     []float64

	targetPos []float64
	touched   []bool
	feedRate  float64
}

func newTargetSink(mapping *kinematics.Mapping, config *axisconfig.MachineConfig) *targetSink {
	dof := mapping.DOF()
	s := &targetSink{
		mapping:      mapping,
		config:       config,
		position:     make([]float64, dof),
		velocity:     make([]float64, dof),
		acceleration: make([]float64, dof),
		maxVelocity:  make([]float64, dof),
		maxAccel:     make([]float64, dof),
		targetPos:    make([]float64, dof),
		touched:      make([]bool, dof),
	}
	for i := 0; i < dof; i++ {
		axis := config.Axes[mapping.AxisName(i)]
		s.maxVelocity[i] = axis.MaxVelocity
		s.maxAccel[i] = axis.MaxAccel
	}
	return s
}

func (s *targetSink) defaultFeedRate() float64 {
	if idx, ok := s.mapping.Index("x"); ok {
		return s.maxVelocity[idx]
	}
	return 50.0
}

func (s *targetSink) beginCommand() {
	for i := range s.touched {
		s.touched[i] = false
	}
}

func (s *targetSink) hasMove() bool {
	for _, t := range s.touched {
		if t {
			return true
		}
	}
	return false
}

func (s *targetSink) SetTarget(axis string, position float64) {
	idx, ok := s.mapping.Index(axis)
	if !ok {
		return
	}
	s.targetPos[idx] = position
	s.touched[idx] = true
}

func (s *targetSink) SetFeedRate(mmPerSec float64) {
	s.feedRate = mmPerSec
}

func (s *targetSink) SetMaxVelocity(axis string, v float64) {
	if idx, ok := s.mapping.Index(axis); ok {
		s.maxVelocity[idx] = v
	}
}

func (s *targetSink) SetMaxAcceleration(axis string, a float64) {
	if idx, ok := s.mapping.Index(axis); ok {
		s.maxAccel[idx] = a
	}
}

func (s *targetSink) CurrentPosition(axis string) float64 {
	idx, ok := s.mapping.Index(axis)
	if !ok {
		return 0
	}
	return s.position[idx]
}

// commit folds a completed move's final sampled state back into the running
// position/velocity/acceleration so the next command starts from it.
func (s *targetSink) commit(position, velocity, acceleration []float64) {
	copy(s.position, position)
	copy(s.velocity, velocity)
	copy(s.acceleration, acceleration)
}
