package gcode

import (
	"testing"

	"motiond/internal/axisconfig"
	"motiond/internal/kinematics"
)

type fakeSink struct {
	targets    map[string]float64
	maxVel     map[string]float64
	maxAccel   map[string]float64
	feedRate   float64
	currentPos map[string]float64
}

func newFakeSink() *fakeSink {
	return &fakeSink{
		targets:    make(map[string]float64),
		maxVel:     make(map[string]float64),
		maxAccel:   make(map[string]float64),
		currentPos: make(map[string]float64),
	}
}

func (f *fakeSink) SetTarget(axis string, position float64)  { f.targets[axis] = position }
func (f *fakeSink) SetFeedRate(mmPerSec float64)              { f.feedRate = mmPerSec }
func (f *fakeSink) SetMaxVelocity(axis string, v float64)     { f.maxVel[axis] = v }
func (f *fakeSink) SetMaxAcceleration(axis string, a float64) { f.maxAccel[axis] = a }
func (f *fakeSink) CurrentPosition(axis string) float64       { return f.currentPos[axis] }

func testMapping(t *testing.T) *kinematics.Mapping {
	m, err := kinematics.NewMapping(axisconfig.DefaultCartesianConfig())
	if err != nil {
		t.Fatalf("unexpected error building mapping: %v", err)
	}
	return m
}

func TestInterpreterAbsoluteMove(t *testing.T) {
	sink := newFakeSink()
	interp := NewInterpreter(testMapping(t), sink, 50)
	parser := NewParser()

	cmd, _ := parser.ParseLine("G1 X10 Y20 F3000")
	if err := interp.Execute(cmd); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sink.targets["x"] != 10 || sink.targets["y"] != 20 {
		t.Errorf("expected targets x=10 y=20, got %+v", sink.targets)
	}
	if sink.feedRate != 50 {
		t.Errorf("expected feed rate 50 mm/s (3000 mm/min), got %v", sink.feedRate)
	}
}

func TestInterpreterRelativeMove(t *testing.T) {
	sink := newFakeSink()
	sink.currentPos["x"] = 5
	interp := NewInterpreter(testMapping(t), sink, 50)
	parser := NewParser()

	cmd, _ := parser.ParseLine("G91")
	interp.Execute(cmd)
	cmd, _ = parser.ParseLine("G1 X10")
	interp.Execute(cmd)

	if sink.targets["x"] != 15 {
		t.Errorf("expected relative move to add to current position, got %v", sink.targets["x"])
	}
}

func TestInterpreterM201SetsMaxAcceleration(t *testing.T) {
	sink := newFakeSink()
	interp := NewInterpreter(testMapping(t), sink, 50)
	parser := NewParser()

	cmd, _ := parser.ParseLine("M201 X1000 Y1000")
	interp.Execute(cmd)

	if sink.maxAccel["x"] != 1000 || sink.maxAccel["y"] != 1000 {
		t.Errorf("expected M201 to set per-axis max acceleration, got %+v", sink.maxAccel)
	}
}

func TestInterpreterG92SetsPositionWithoutMotion(t *testing.T) {
	sink := newFakeSink()
	interp := NewInterpreter(testMapping(t), sink, 50)
	parser := NewParser()

	cmd, _ := parser.ParseLine("G92 X0 Y0")
	interp.Execute(cmd)

	if sink.targets["x"] != 0 || sink.targets["y"] != 0 {
		t.Errorf("expected G92 to set targets directly, got %+v", sink.targets)
	}
}
