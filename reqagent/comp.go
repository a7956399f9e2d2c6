// Package reqagent provides a front-side driver that plays a scripted
// sequence of requests over the narrow request/grant port and collects the
// responses.
package reqagent

import (
	"github.com/sarchlab/axibridge/axi"
	"github.com/sarchlab/axibridge/bridge"
)

// A Response records what the front side observed when a transaction
// completed.
type Response struct {
	Request bridge.Request

	RData  uint64
	Status axi.Resp
	Err    bool
}

type outputs struct {
	req        bool
	addr       uint64
	we         bool
	byteEnable uint8
	wData      uint64
}

// Comp is the requester agent. It implements hw.Logic, holds each request
// until the grant is observed, and reports idle once every scripted request
// has its response.
type Comp struct {
	name string

	// Front is the wire struct shared with the bridge.
	Front *bridge.FrontPort

	script []bridge.Request
	next   int

	inFlight bool

	// Responses are collected in completion order, which for this
	// single-outstanding port is also issue order.
	Responses []Response

	driven outputs
}

// Name returns the name of the agent.
func (c *Comp) Name() string {
	return c.name
}

// Idle reports that the script has drained and nothing is outstanding.
func (c *Comp) Idle() bool {
	return !c.inFlight && c.next >= len(c.script)
}

// Eval drives the request wires. The request payload is held stable from the
// cycle the request asserts until the grant edge.
func (c *Comp) Eval() bool {
	o := c.driven

	o.req = !c.inFlight && c.next < len(c.script)
	if o.req {
		r := c.script[c.next]
		o.addr = r.Addr
		o.we = r.IsWrite
		o.byteEnable = r.ByteEnable
		o.wData = r.Data
	}

	if o == c.driven {
		return false
	}
	c.driven = o

	c.Front.Req = o.req
	c.Front.Addr = o.addr
	c.Front.WE = o.we
	c.Front.ByteEnable = o.byteEnable
	c.Front.WData = o.wData

	return true
}

// Sync applies one clock edge.
func (c *Comp) Sync(resetN bool) {
	if !resetN {
		c.next = 0
		c.inFlight = false
		c.Responses = nil
		return
	}

	if c.Front.RspValid && c.inFlight {
		c.Responses = append(c.Responses, Response{
			Request: c.script[c.next-1],
			RData:   c.Front.RData,
			Status:  c.Front.RspStatus,
			Err:     c.Front.Err,
		})
		c.inFlight = false
	}

	if c.Front.Gnt && !c.inFlight && c.next < len(c.script) {
		c.inFlight = true
		c.next++
	}
}

// Builder can build requester agents.
type Builder struct {
	front  *bridge.FrontPort
	script []bridge.Request
}

// MakeBuilder returns a new agent Builder
func MakeBuilder() Builder {
	return Builder{}
}

// WithFrontPort shares the front-side wire struct with the agent
func (b Builder) WithFrontPort(front *bridge.FrontPort) Builder {
	b.front = front
	return b
}

// WithScript sets the requests the agent will issue, in order
func (b Builder) WithScript(script []bridge.Request) Builder {
	b.script = script
	return b
}

// Build builds a new agent
func (b Builder) Build(name string) *Comp {
	c := &Comp{
		name:   name,
		Front:  b.front,
		script: b.script,
	}

	if c.Front == nil {
		c.Front = &bridge.FrontPort{}
	}

	return c
}
