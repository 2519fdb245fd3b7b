package motion

import (
	"fmt"
	"math"
	"os"
	"time"
)

// axisBrake caches the pre-brake boundary state and the brake segments
// computed for one axis during a planning event, so the finalized Profile
// can be told about its brake prefix once Step1/Step2 have produced the
// main seven segments from the post-brake state.
type axisBrake struct {
	tBrake, jBrake   [2]float64
	preP, preV, preA float64
}

// Generator is the fixed-rate orchestrator: it owns the per-axis profiles
// and blocks produced by the most recent planning event, the caller's last
// seen input (for change detection), and the plan-local clock.
type Generator struct {
	deltaTime float64
	dof       int

	clock float64
	tf    float64

	hasCachedInput bool
	cachedInput    Input

	enabled  []bool
	profiles []*Profile
	blocks   []*Block

	targetState  [][3]float64
	holdState    [][3]float64
	minDurations []float64
}

// NewGenerator constructs an orchestrator for dof independent axes, driven
// by a control loop with period deltaTime seconds.
func NewGenerator(deltaTime float64, dof int) *Generator {
	g := &Generator{
		deltaTime:    deltaTime,
		dof:          dof,
		enabled:      make([]bool, dof),
		profiles:     make([]*Profile, dof),
		blocks:       make([]*Block, dof),
		targetState:  make([][3]float64, dof),
		holdState:    make([][3]float64, dof),
		minDurations: make([]float64, dof),
	}
	return g
}

func (g *Generator) allocOutput(output *Output) {
	if len(output.NewPosition) != g.dof {
		output.NewPosition = make([]float64, g.dof)
	}
	if len(output.NewVelocity) != g.dof {
		output.NewVelocity = make([]float64, g.dof)
	}
	if len(output.NewAcceleration) != g.dof {
		output.NewAcceleration = make([]float64, g.dof)
	}
	if len(output.IndependentMinDurations) != g.dof {
		output.IndependentMinDurations = make([]float64, g.dof)
	}
}

// Update advances the control loop by one cycle: replans if the input
// changed since the last cycle, samples the current trajectory, and reports
// whether the plan is still running.
func (g *Generator) Update(input Input, output *Output) Result {
	start := time.Now()
	g.clock += g.deltaTime

	if !g.hasCachedInput || !g.cachedInput.Equal(input) {
		if res := g.Calculate(input, output); res != Working {
			return res
		}
	} else {
		g.allocOutput(output)
		output.NewCalculation = false
		output.Duration = g.tf
		copy(output.IndependentMinDurations, g.minDurations)
	}

	g.AtTime(g.clock, output)
	output.CalculationDurationUs = float64(time.Since(start).Microseconds())

	if g.clock+g.deltaTime > g.tf {
		return Finished
	}
	g.advanceCachedState(output)
	return Working
}

// advanceCachedState folds the just-sampled output back into the cached
// input's current position/velocity/acceleration, so a caller feeding the
// output straight back in as next cycle's current state sees an unchanged
// Input. Target, limit, and enabled fields stay as they were cached at the
// last replan, so the next cycle's Equal check only trips on an actual
// change to those, not on the kinematic state advancing exactly as
// planned.
func (g *Generator) advanceCachedState(output *Output) {
	copy(g.cachedInput.CurrentPosition, output.NewPosition)
	copy(g.cachedInput.CurrentVelocity, output.NewVelocity)
	copy(g.cachedInput.CurrentAcceleration, output.NewAcceleration)
}

// Calculate runs one planning event: validation, per-axis brake and
// time-optimal solve, cross-axis synchronization, and per-axis fixed-time
// resolve for every axis that isn't the one determining T_sync.
func (g *Generator) Calculate(input Input, output *Output) Result {
	if err := g.validateInput(input); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ErrorInvalidInput
	}

	brakes := make([]axisBrake, g.dof)
	blocks := make([]*Block, g.dof)

	for i := 0; i < g.dof; i++ {
		g.enabled[i] = input.Enabled[i]
		g.targetState[i] = [3]float64{input.TargetPosition[i], input.TargetVelocity[i], input.TargetAcceleration[i]}
		g.holdState[i] = [3]float64{input.CurrentPosition[i], input.CurrentVelocity[i], input.CurrentAcceleration[i]}
		if !input.Enabled[i] {
			continue
		}

		tBrake, jBrake := Brake(input.CurrentVelocity[i], input.CurrentAcceleration[i], input.MaxVelocity[i], input.MaxAcceleration[i], input.MaxJerk[i])
		brakes[i] = axisBrake{tBrake: tBrake, jBrake: jBrake, preP: input.CurrentPosition[i], preV: input.CurrentVelocity[i], preA: input.CurrentAcceleration[i]}

		p0, v0, a0 := input.CurrentPosition[i], input.CurrentVelocity[i], input.CurrentAcceleration[i]
		for k := 0; k < 2; k++ {
			p0, v0, a0 = Integrate(tBrake[k], p0, v0, a0, jBrake[k])
		}

		block, err := Step1(p0, v0, a0, input.TargetPosition[i], input.TargetVelocity[i], input.TargetAcceleration[i], input.MaxVelocity[i], input.MaxAcceleration[i], input.MaxJerk[i])
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return ErrorExecutionTimeCalculation
		}
		// Durations are synchronized from the pre-brake state, so the brake
		// prefix counts toward TMin and both forbidden intervals.
		tBrakeSum := tBrake[0] + tBrake[1]
		block.TMin += tBrakeSum
		for _, iv := range []*Interval{block.A, block.B} {
			if iv != nil {
				iv.Left += tBrakeSum
				iv.Right += tBrakeSum
			}
		}
		blocks[i] = block
	}

	floor := 0.0
	if input.MinimumDuration != nil {
		floor = *input.MinimumDuration
	}
	tSync, err := Synchronize(blocks, floor)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return ErrorSynchronizationCalculation
	}

	profiles := make([]*Profile, g.dof)
	minDurations := make([]float64, g.dof)
	for i := 0; i < g.dof; i++ {
		if !input.Enabled[i] {
			continue
		}
		minDurations[i] = blocks[i].TMin
		tBrakeSum := brakes[i].tBrake[0] + brakes[i].tBrake[1]
		tProfile := tSync - tBrakeSum

		var profile *Profile
		if math.Abs(tSync-blocks[i].TMin) < epsTerm {
			profile = blocks[i].PMin
		} else {
			p0, v0, a0 := brakes[i].preP, brakes[i].preV, brakes[i].preA
			for k := 0; k < 2; k++ {
				p0, v0, a0 = Integrate(brakes[i].tBrake[k], p0, v0, a0, brakes[i].jBrake[k])
			}
			profile, err = Step2(tProfile, p0, v0, a0, input.TargetPosition[i], input.TargetVelocity[i], input.TargetAcceleration[i], input.MaxVelocity[i], input.MaxAcceleration[i], input.MaxJerk[i])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				return ErrorSynchronizationCalculation
			}
		}
		profile.buildBrake(brakes[i].preP, brakes[i].preV, brakes[i].preA, brakes[i].tBrake, brakes[i].jBrake)
		profiles[i] = profile
	}

	g.profiles = profiles
	g.blocks = blocks
	g.minDurations = minDurations
	g.tf = tSync
	g.clock = 0
	g.cachedInput = cloneInput(input)
	g.hasCachedInput = true

	g.allocOutput(output)
	output.Duration = tSync
	output.NewCalculation = true
	copy(output.IndependentMinDurations, minDurations)
	return Working
}

// AtTime samples every enabled axis's profile at plan-local time t, and
// holds every disabled axis at its constant-acceleration extrapolation from
// the state it had when the plan was made.
func (g *Generator) AtTime(t float64, output *Output) {
	g.allocOutput(output)
	pastEnd := t+g.deltaTime > g.tf

	for i := 0; i < g.dof; i++ {
		var p, v, a float64
		switch {
		case !g.enabled[i]:
			p, v, a = Integrate(t, g.holdState[i][0], g.holdState[i][1], g.holdState[i][2], 0)
		case pastEnd:
			elapsed := t - g.tf
			if elapsed < 0 {
				elapsed = 0
			}
			p, v, a = Integrate(elapsed, g.targetState[i][0], g.targetState[i][1], g.targetState[i][2], 0)
		default:
			p, v, a = g.profiles[i].AtTime(t)
		}
		output.NewPosition[i] = p
		output.NewVelocity[i] = v
		output.NewAcceleration[i] = a
	}
}

// validateInput checks the ceiling every enabled axis' targets must satisfy
// before any planning work begins.
func (g *Generator) validateInput(input Input) error {
	for i := 0; i < g.dof; i++ {
		if !input.Enabled[i] {
			continue
		}
		if input.MaxVelocity[i] <= 0 || input.MaxAcceleration[i] <= 0 || input.MaxJerk[i] <= 0 {
			return ErrInvalidLimits
		}
		if input.TargetVelocity[i] > input.MaxVelocity[i] {
			return ErrTargetExceedsLimits
		}
		if input.TargetAcceleration[i] > input.MaxAcceleration[i] {
			return ErrTargetExceedsLimits
		}
		underRoot := 2 * input.MaxJerk[i] * (input.MaxVelocity[i] - math.Abs(input.TargetVelocity[i]))
		if underRoot < 0 {
			return ErrTargetExceedsLimits
		}
		ceiling := math.Sqrt(underRoot)
		if math.Abs(input.TargetAcceleration[i]) > ceiling+epsVelAcc {
			return ErrTargetExceedsLimits
		}
	}
	return nil
}
