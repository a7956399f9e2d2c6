package bridge

import (
	"github.com/sarchlab/axibridge/axi"
)

// Builder can build bridges.
type Builder struct {
	addrWidth       int
	dataWidth       int
	prot            axi.Prot
	registeredGrant bool
	front           *FrontPort
	bus             *axi.LiteBus
}

// MakeBuilder returns a new bridge Builder
func MakeBuilder() Builder {
	return Builder{
		addrWidth: 32,
		dataWidth: 32,
	}
}

// WithAddrWidth sets the address width in bits
func (b Builder) WithAddrWidth(width int) Builder {
	b.addrWidth = width
	return b
}

// WithDataWidth sets the data width in bits
func (b Builder) WithDataWidth(width int) Builder {
	b.dataWidth = width
	return b
}

// WithProt sets the fixed protection bits driven on AW and AR
func (b Builder) WithProt(prot axi.Prot) Builder {
	b.prot = prot
	return b
}

// WithRegisteredGrant makes the grant output registered, asserting one cycle
// after the request instead of combinationally in the same cycle. The choice
// is fixed for the lifetime of the instance.
func (b Builder) WithRegisteredGrant() Builder {
	b.registeredGrant = true
	return b
}

// WithFrontPort shares an existing front-side wire struct
func (b Builder) WithFrontPort(front *FrontPort) Builder {
	b.front = front
	return b
}

// WithBus shares an existing AXI bus wire struct
func (b Builder) WithBus(bus *axi.LiteBus) Builder {
	b.bus = bus
	return b
}

// Build elaborates a new bridge. Width mismatches panic here, before any
// cycle is simulated.
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		name:            name,
		adapter:         axi.NewAdapter(b.addrWidth, b.dataWidth, b.prot),
		registeredGrant: b.registeredGrant,
		Front:           b.front,
		Bus:             b.bus,
	}

	if c.Front == nil {
		c.Front = &FrontPort{}
	}
	if c.Bus == nil {
		c.Bus = &axi.LiteBus{}
	}

	return c
}
