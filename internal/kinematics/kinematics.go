// Package kinematics maps named machine axes onto the fixed-size DOF arrays
// motion.Generator expects. It performs no path planning or coordinate
// transformation beyond the identity Cartesian mapping: each axis owns
// exactly one DOF slot and moves along it independently.
package kinematics

import (
	"errors"
	"sort"

	"motiond/internal/axisconfig"
)

// Mapping fixes an ordering of axis names to DOF indices for one machine
// configuration, letting callers translate between axis names and the
// motion.Input/Output slice positions.
type Mapping struct {
	order   []string
	indexOf map[string]int
}

// NewMapping builds a Mapping from a machine configuration, ordering axes
// alphabetically by name so the DOF assignment is stable across process
// restarts given the same configuration file.
func NewMapping(config *axisconfig.MachineConfig) (*Mapping, error) {
	if len(config.Axes) == 0 {
		return nil, errors.New("kinematics: machine configuration defines no axes")
	}
	names := make([]string, 0, len(config.Axes))
	for name := range config.Axes {
		names = append(names, name)
	}
	sort.Strings(names)

	indexOf := make(map[string]int, len(names))
	for i, name := range names {
		indexOf[name] = i
	}
	return &Mapping{order: names, indexOf: indexOf}, nil
}

// DOF returns the number of axes in this mapping.
func (m *Mapping) DOF() int { return len(m.order) }

// AxisName returns the axis name owning DOF index i.
func (m *Mapping) AxisName(i int) string { return m.order[i] }

// Index returns the DOF index for an axis name.
func (m *Mapping) Index(name string) (int, bool) {
	i, ok := m.indexOf[name]
	return i, ok
}

// Names returns the axis names in DOF order.
func (m *Mapping) Names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
