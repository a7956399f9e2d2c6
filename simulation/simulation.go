// Package simulation ties the engine, the clock-domain system, and the
// recording facilities of one simulation together.
package simulation

import (
	"github.com/rs/xid"

	"github.com/sarchlab/axibridge/datarecording"
	"github.com/sarchlab/axibridge/sim"
)

// A Simulation provides the services required to define a simulation.
type Simulation struct {
	engine       sim.Engine
	dataRecorder datarecording.DataRecorder

	components    []sim.Named
	compNameIndex map[string]int
}

// New creates a new simulation driven by a serial engine.
func New() *Simulation {
	return &Simulation{
		engine:        sim.NewSerialEngine(),
		compNameIndex: make(map[string]int),
	}
}

// GetEngine returns the engine used in the simulation.
func (s *Simulation) GetEngine() sim.Engine {
	return s.engine
}

// EnableDataRecording creates the data recorder backing the simulation. An
// empty path picks a generated file name.
func (s *Simulation) EnableDataRecording(path string) {
	if path == "" {
		path = "axibridge_sim_" + xid.New().String()
	}

	s.dataRecorder = datarecording.New(path)
}

// GetDataRecorder returns the data recorder, or nil if data recording is not
// enabled.
func (s *Simulation) GetDataRecorder() datarecording.DataRecorder {
	return s.dataRecorder
}

// RegisterComponent registers a named component with the simulation.
func (s *Simulation) RegisterComponent(c sim.Named) {
	name := c.Name()
	if _, found := s.compNameIndex[name]; found {
		panic("component " + name + " already registered")
	}

	s.components = append(s.components, c)
	s.compNameIndex[name] = len(s.components) - 1
}

// GetComponentByName returns the component with the given name.
func (s *Simulation) GetComponentByName(name string) sim.Named {
	return s.components[s.compNameIndex[name]]
}

// Terminate flushes and closes the services of the simulation.
func (s *Simulation) Terminate() {
	if s.dataRecorder != nil {
		s.dataRecorder.Close()
	}
}
