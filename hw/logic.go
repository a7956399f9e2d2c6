// Package hw provides the synchronous-logic layer of the simulation. Logic
// units share wire structs and advance in lock step under a System that
// drives one clock domain.
package hw

import (
	"github.com/sarchlab/axibridge/sim"
)

// Logic is one unit of synchronous logic in a clock domain.
//
// A cycle is simulated in two phases. Eval propagates combinational outputs
// from the current register state and input wires; the System calls Eval on
// every unit repeatedly until no unit reports a change, so a unit must only
// drive wires it owns and must report whether any of them changed. Sync then
// applies the clock edge: every unit samples the settled wires and updates
// its registers. Sync with resetN low forces the unit to its reset state and
// its Eval outputs must deassert in the same cycle.
type Logic interface {
	sim.Named

	Eval() bool
	Sync(resetN bool)

	// Idle reports that the unit has no pending work. The System stops
	// ticking once every unit is idle.
	Idle() bool
}
