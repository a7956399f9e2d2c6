package hw

import (
	"fmt"

	"github.com/sarchlab/axibridge/sim"
)

// HookPosCycle is triggered after every simulated cycle. The hook item is the
// cycle number that just completed.
var HookPosCycle = &sim.HookPos{Name: "Cycle"}

// settleLimit bounds the delta-cycle loop. A well formed design settles in a
// few iterations; exceeding the limit means a combinational loop.
const settleLimit = 100

// A System owns the logic units of one clock domain. On every tick it settles
// the combinational wires, applies the clock edge to all units, and keeps
// ticking until every unit reports idle. Reset is held low for the first
// resetCycles cycles after power on.
type System struct {
	*sim.TickingComponent

	units       []Logic
	resetCycles uint64
	cycle       uint64
}

// AddUnit registers a logic unit with the system. Units are evaluated in
// registration order within each settle pass.
func (s *System) AddUnit(u Logic) {
	s.units = append(s.units, u)
}

// Cycle returns the number of clock edges applied since power on.
func (s *System) Cycle() uint64 {
	return s.cycle
}

// Tick simulates one clock cycle.
func (s *System) Tick() bool {
	resetN := s.cycle >= s.resetCycles

	s.settle()

	for _, u := range s.units {
		u.Sync(resetN)
	}

	s.cycle++

	s.InvokeHook(sim.HookCtx{
		Domain: s,
		Pos:    HookPosCycle,
		Item:   s.cycle,
	})

	if !resetN {
		return true
	}

	for _, u := range s.units {
		if !u.Idle() {
			return true
		}
	}

	return false
}

func (s *System) settle() {
	for i := 0; ; i++ {
		changed := false
		for _, u := range s.units {
			changed = u.Eval() || changed
		}

		if !changed {
			return
		}

		if i >= settleLimit {
			panic(fmt.Sprintf(
				"system %s: wires did not settle after %d passes, "+
					"combinational loop suspected",
				s.Name(), settleLimit))
		}
	}
}

// Builder can build systems.
type Builder struct {
	engine      sim.Engine
	freq        sim.Freq
	resetCycles uint64
}

// MakeBuilder returns a new system Builder
func MakeBuilder() Builder {
	return Builder{
		freq:        1 * sim.GHz,
		resetCycles: 2,
	}
}

// WithEngine sets the engine that drives the system
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the clock frequency of the system
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithResetCycles sets how many cycles reset is held after power on
func (b Builder) WithResetCycles(n uint64) Builder {
	b.resetCycles = n
	return b
}

// Build builds a new System
func (b Builder) Build(name string) *System {
	s := &System{
		resetCycles: b.resetCycles,
	}
	s.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, s)

	return s
}
