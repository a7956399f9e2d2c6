package memslave

import (
	"fmt"

	"github.com/sarchlab/axibridge/axi"
)

// Builder can build memory slaves.
type Builder struct {
	dataWidth int
	capacity  uint64
	storage   *Storage
	bus       *axi.LiteBus

	awLatency int
	wLatency  int
	arLatency int
	bLatency  int
	rLatency  int
}

// MakeBuilder returns a new slave Builder
func MakeBuilder() Builder {
	return Builder{
		dataWidth: 32,
		capacity:  1 << 20,
	}
}

// WithDataWidth sets the data width in bits, matching the bus the slave sits
// on
func (b Builder) WithDataWidth(width int) Builder {
	b.dataWidth = width
	return b
}

// WithCapacity sets the capacity of the backing storage in bytes
func (b Builder) WithCapacity(capacity uint64) Builder {
	b.capacity = capacity
	return b
}

// WithStorage shares an existing storage instead of allocating one
func (b Builder) WithStorage(storage *Storage) Builder {
	b.storage = storage
	return b
}

// WithBus shares the AXI bus wire struct
func (b Builder) WithBus(bus *axi.LiteBus) Builder {
	b.bus = bus
	return b
}

// WithAWLatency sets how many cycles AWREADY stalls after AWVALID asserts
func (b Builder) WithAWLatency(n int) Builder {
	b.awLatency = n
	return b
}

// WithWLatency sets how many cycles WREADY stalls after WVALID asserts
func (b Builder) WithWLatency(n int) Builder {
	b.wLatency = n
	return b
}

// WithARLatency sets how many cycles ARREADY stalls after ARVALID asserts
func (b Builder) WithARLatency(n int) Builder {
	b.arLatency = n
	return b
}

// WithBLatency sets how many cycles the write response is delayed
func (b Builder) WithBLatency(n int) Builder {
	b.bLatency = n
	return b
}

// WithRLatency sets how many cycles the read data is delayed
func (b Builder) WithRLatency(n int) Builder {
	b.rLatency = n
	return b
}

// Build elaborates a new slave
func (b Builder) Build(name string) *Comp {
	switch b.dataWidth {
	case 8, 16, 32, 64:
	default:
		panic(fmt.Sprintf("data width %d not one of 8, 16, 32, 64",
			b.dataWidth))
	}

	c := &Comp{
		name:      name,
		Bus:       b.bus,
		storage:   b.storage,
		dataBytes: uint64(b.dataWidth / 8),
		awLatency: b.awLatency,
		wLatency:  b.wLatency,
		arLatency: b.arLatency,
		bLatency:  b.bLatency,
		rLatency:  b.rLatency,
		slverr:    make(map[uint64]bool),
	}

	if c.Bus == nil {
		c.Bus = &axi.LiteBus{}
	}
	if c.storage == nil {
		c.storage = NewStorage(b.capacity)
	}

	c.awStall = c.awLatency
	c.wStall = c.wLatency
	c.arStall = c.arLatency

	return c
}
