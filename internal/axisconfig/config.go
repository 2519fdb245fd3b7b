// Package axisconfig loads the JSON machine description that maps named
// axes onto motion.Generator DOF slots and their physical limits.
package axisconfig

import "encoding/json"

// Axis is the configuration for a single motion DOF.
type Axis struct {
	StepPin     string  `json:"step_pin"`
	DirPin      string  `json:"dir_pin"`
	EnablePin   string  `json:"enable_pin,omitempty"`
	StepsPerMM  float64 `json:"steps_per_mm"`
	MaxVelocity float64 `json:"max_velocity"`
	MaxAccel    float64 `json:"max_accel"`
	MaxJerk     float64 `json:"max_jerk"`
	HomingVel   float64 `json:"homing_vel"`
	MinPosition float64 `json:"min_position"`
	MaxPosition float64 `json:"max_position"`
	InvertDir   bool    `json:"invert_dir,omitempty"`
}

// MachineConfig describes every axis and the shared control-loop period.
type MachineConfig struct {
	Kinematics string          `json:"kinematics"`
	DeltaTime  float64         `json:"delta_time"`
	Axes       map[string]Axis `json:"axes"`
}

// applyDefaults fills in sensible values matching Klipper-class hardware for
// fields left unset in the JSON document.
func applyDefaults(config *MachineConfig) {
	if config.Kinematics == "" {
		config.Kinematics = "cartesian"
	}
	if config.DeltaTime == 0 {
		config.DeltaTime = 0.01
	}
	for name, axis := range config.Axes {
		if axis.StepsPerMM == 0 {
			axis.StepsPerMM = 80.0
		}
		if axis.MaxVelocity == 0 {
			axis.MaxVelocity = 300.0
		}
		if axis.MaxAccel == 0 {
			axis.MaxAccel = 3000.0
		}
		if axis.MaxJerk == 0 {
			axis.MaxJerk = 100000.0
		}
		config.Axes[name] = axis
	}
}

// Load parses a JSON configuration document and applies defaults to any
// field the document left unset.
func Load(jsonData []byte) (*MachineConfig, error) {
	var config MachineConfig
	if err := json.Unmarshal(jsonData, &config); err != nil {
		return nil, err
	}
	applyDefaults(&config)
	return &config, nil
}

// DefaultCartesianConfig returns a stock four-axis (X, Y, Z, E) machine
// description, the configuration a caller gets when no file is supplied.
func DefaultCartesianConfig() *MachineConfig {
	return &MachineConfig{
		Kinematics: "cartesian",
		DeltaTime:  0.01,
		Axes: map[string]Axis{
			"x": {StepPin: "gpio0", DirPin: "gpio1", EnablePin: "gpio8", StepsPerMM: 80, MaxVelocity: 300, MaxAccel: 3000, MaxJerk: 100000, HomingVel: 50, MinPosition: 0, MaxPosition: 220},
			"y": {StepPin: "gpio2", DirPin: "gpio3", EnablePin: "gpio8", StepsPerMM: 80, MaxVelocity: 300, MaxAccel: 3000, MaxJerk: 100000, HomingVel: 50, MinPosition: 0, MaxPosition: 220},
			"z": {StepPin: "gpio4", DirPin: "gpio5", EnablePin: "gpio8", StepsPerMM: 400, MaxVelocity: 10, MaxAccel: 100, MaxJerk: 5000, HomingVel: 5, MinPosition: 0, MaxPosition: 250},
			"e": {StepPin: "gpio6", DirPin: "gpio7", EnablePin: "gpio8", StepsPerMM: 96, MaxVelocity: 50, MaxAccel: 5000, MaxJerk: 200000, HomingVel: 0, MinPosition: -10000, MaxPosition: 10000},
		},
	}
}
