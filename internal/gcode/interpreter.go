package gcode

import "motiond/internal/kinematics"

// TargetSink receives the axis-name/target-position pairs a G-code move
// produces, along with the requested feedrate, and is responsible for
// folding them into the next motion.Input handed to the Generator.
type TargetSink interface {
	SetTarget(axis string, position float64)
	SetFeedRate(mmPerSec float64)
	SetMaxVelocity(axis string, v float64)
	SetMaxAcceleration(axis string, a float64)
	CurrentPosition(axis string) float64
}

// State is the interpreter's own bookkeeping: mode flags that outlive any
// single command.
type State struct {
	AbsoluteMode bool
	ExtrudeMode  bool
	FeedRate     float64
	DwellUntil   float64
}

// Interpreter executes a small motion-relevant G-code subset by updating a
// TargetSink; it does not itself talk to a Generator or a serial port.
type Interpreter struct {
	state   State
	mapping *kinematics.Mapping
	sink    TargetSink
}

// NewInterpreter creates an interpreter bound to a DOF mapping and a target
// sink, with all axes initially in absolute-positioning mode.
func NewInterpreter(mapping *kinematics.Mapping, sink TargetSink, defaultFeedRate float64) *Interpreter {
	return &Interpreter{
		state:   State{AbsoluteMode: true, FeedRate: defaultFeedRate},
		mapping: mapping,
		sink:    sink,
	}
}

// Execute runs one parsed command.
func (interp *Interpreter) Execute(cmd *Command) error {
	if cmd == nil {
		return nil
	}
	switch cmd.Type {
	case 'G':
		return interp.executeG(cmd)
	case 'M':
		return interp.executeM(cmd)
	}
	return nil
}

func (interp *Interpreter) executeG(cmd *Command) error {
	switch cmd.Number {
	case 0, 1:
		interp.doMove(cmd)
	case 4:
		interp.doDwell(cmd)
	case 90:
		interp.state.AbsoluteMode = true
	case 91:
		interp.state.AbsoluteMode = false
	case 92:
		interp.doSetPosition(cmd)
	}
	return nil
}

func (interp *Interpreter) executeM(cmd *Command) error {
	switch cmd.Number {
	case 82:
		interp.state.ExtrudeMode = false
	case 83:
		interp.state.ExtrudeMode = true
	case 201: // M201: set per-axis max acceleration
		interp.forEachAxisParam(cmd, interp.sink.SetMaxAcceleration)
	case 203: // M203: set per-axis max velocity
		interp.forEachAxisParam(cmd, interp.sink.SetMaxVelocity)
	case 204: // M204: set default acceleration (applied to all mapped axes)
		if cmd.HasParameter('S') {
			accel := cmd.GetParameter('S', 0)
			for _, name := range interp.mapping.Names() {
				interp.sink.SetMaxAcceleration(name, accel)
			}
		}
	}
	return nil
}

var axisLetters = map[string]byte{"x": 'X', "y": 'Y', "z": 'Z', "e": 'E'}

func (interp *Interpreter) forEachAxisParam(cmd *Command, apply func(axis string, v float64)) {
	for _, name := range interp.mapping.Names() {
		letter, ok := axisLetters[name]
		if !ok {
			continue
		}
		if cmd.HasParameter(letter) {
			apply(name, cmd.GetParameter(letter, 0))
		}
	}
}

func (interp *Interpreter) doMove(cmd *Command) {
	if cmd.HasParameter('F') {
		interp.state.FeedRate = cmd.GetParameter('F', 0) / 60.0
		interp.sink.SetFeedRate(interp.state.FeedRate)
	}

	for name, letter := range axisLetters {
		if !cmd.HasParameter(letter) {
			continue
		}
		value := cmd.GetParameter(letter, 0)
		relative := interp.state.ExtrudeMode
		if name != "e" {
			relative = !interp.state.AbsoluteMode
		}
		if relative {
			value = interp.sink.CurrentPosition(name) + value
		}
		interp.sink.SetTarget(name, value)
	}
}

func (interp *Interpreter) doDwell(cmd *Command) {
	seconds := cmd.GetParameter('P', 0) / 1000.0
	if cmd.HasParameter('S') {
		seconds = cmd.GetParameter('S', 0)
	}
	interp.state.DwellUntil = seconds
}

func (interp *Interpreter) doSetPosition(cmd *Command) {
	for name, letter := range axisLetters {
		if cmd.HasParameter(letter) {
			interp.sink.SetTarget(name, cmd.GetParameter(letter, 0))
		}
	}
}

// GetState returns the interpreter's mode bookkeeping.
func (interp *Interpreter) GetState() State {
	return interp.state
}
