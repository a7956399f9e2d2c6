// Package bridge implements the protocol bridge that converts a synchronous
// request/grant/valid memory interface into AXI4-Lite transactions.
package bridge

import (
	"github.com/sarchlab/axibridge/axi"
	"github.com/sarchlab/axibridge/sim"
)

// HookPosReqAccept is triggered on the edge a front-side request is accepted.
var HookPosReqAccept = &sim.HookPos{Name: "Bridge Req Accept"}

// HookPosReqComplete is triggered on the edge the response reaches the front
// side.
var HookPosReqComplete = &sim.HookPos{Name: "Bridge Req Complete"}

// State enumerates the bridge FSM states.
type State int

// Bridge FSM states. Exactly one is active at a time and only StateIdle can
// accept a new request, which bounds the bridge to a single outstanding
// transaction.
const (
	StateIdle State = iota
	StateWaitWriteAddrData
	StateWaitWriteResp
	StateWaitReadAddr
	StateWaitReadData
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateWaitWriteAddrData:
		return "WaitWriteAddrData"
	case StateWaitWriteResp:
		return "WaitWriteResp"
	case StateWaitReadAddr:
		return "WaitReadAddr"
	case StateWaitReadData:
		return "WaitReadData"
	}
	return "Unknown"
}

// A Request is one front-side transaction. It is latched when the request is
// accepted and lives until the matching response pulses on the front port.
type Request struct {
	Addr       uint64
	IsWrite    bool
	ByteEnable uint8
	Data       uint64
}

// FrontPort is the narrow request/response wire set on the front side of the
// bridge. Req, Addr, WE, ByteEnable, and WData are driven by the requester;
// the rest by the bridge. The requester must hold the request wires stable
// until Gnt is observed. Err and RspStatus are out-of-band: the original
// narrow protocol has no error line, so a non-OKAY response completes
// normally through RspValid and is additionally flagged here.
type FrontPort struct {
	Req        bool
	Addr       uint64
	WE         bool
	ByteEnable uint8
	WData      uint64

	Gnt       bool
	RspValid  bool
	RData     uint64
	RspStatus axi.Resp
	Err       bool
}

// A Transaction is the hook item for the accept and complete hook positions.
type Transaction struct {
	ID string
	Request

	RData  uint64
	Status axi.Resp

	AcceptCycle   uint64
	CompleteCycle uint64
}

// outputs is the set of wires the bridge drives, kept for change detection
// across settle passes.
type outputs struct {
	gnt       bool
	rspValid  bool
	rdata     uint64
	rspStatus axi.Resp
	err       bool

	awValid   bool
	awPayload axi.AddrPayload
	wValid    bool
	wPayload  axi.WritePayload
	bReady    bool
	arValid   bool
	arPayload axi.AddrPayload
	rReady    bool
}

// Comp is the bridge FSM. It implements hw.Logic: channel valids, readies,
// and payloads are pure functions of the latched registers, so a channel
// payload can never change while its valid is waiting for a ready, and a
// completed AW or W handshake deasserts through its done flag instead of
// re-transmitting.
type Comp struct {
	sim.HookableBase
	name string

	adapter         axi.Adapter
	registeredGrant bool

	// Front and Bus are the wire structs shared with the neighbor units.
	Front *FrontPort
	Bus   *axi.LiteBus

	state       State
	req         Request
	awDone      bool
	wDone       bool
	gntReg      bool
	rspValidReg bool
	rdataReg    uint64
	respReg     axi.Resp

	cycle uint64
	trans *Transaction

	driven outputs
}

// Name returns the name of the bridge.
func (c *Comp) Name() string {
	return c.name
}

// State returns the active FSM state.
func (c *Comp) State() State {
	return c.state
}

// Adapter returns the channel adapter the bridge was elaborated with.
func (c *Comp) Adapter() axi.Adapter {
	return c.adapter
}

// Idle reports that no transaction is in flight.
func (c *Comp) Idle() bool {
	return c.state == StateIdle && !c.gntReg && !c.rspValidReg
}

// Eval drives the front-side outputs and the master side of the AXI bus from
// the current register state.
func (c *Comp) Eval() bool {
	o := outputs{
		awPayload: c.adapter.PackAddr(c.req.Addr),
		arPayload: c.adapter.PackAddr(c.req.Addr),
		wPayload:  c.adapter.PackWrite(c.req.Data, c.req.ByteEnable),

		awValid: c.state == StateWaitWriteAddrData && !c.awDone,
		wValid:  c.state == StateWaitWriteAddrData && !c.wDone,
		bReady:  c.state == StateWaitWriteResp,
		arValid: c.state == StateWaitReadAddr,
		rReady:  c.state == StateWaitReadData,

		rspValid:  c.rspValidReg,
		rdata:     c.rdataReg,
		rspStatus: c.respReg,
		err:       c.rspValidReg && c.respReg.IsError(),
	}

	if c.registeredGrant {
		o.gnt = c.gntReg
	} else {
		o.gnt = c.state == StateIdle && c.Front.Req
	}

	if o == c.driven {
		return false
	}
	c.driven = o

	c.Front.Gnt = o.gnt
	c.Front.RspValid = o.rspValid
	c.Front.RData = o.rdata
	c.Front.RspStatus = o.rspStatus
	c.Front.Err = o.err

	c.Bus.AW.AddrPayload = o.awPayload
	c.Bus.AW.Valid = o.awValid
	c.Bus.W.WritePayload = o.wPayload
	c.Bus.W.Valid = o.wValid
	c.Bus.B.Ready = o.bReady
	c.Bus.AR.AddrPayload = o.arPayload
	c.Bus.AR.Valid = o.arValid
	c.Bus.R.Ready = o.rReady

	return true
}

// Sync applies one clock edge.
func (c *Comp) Sync(resetN bool) {
	c.cycle++

	if !resetN {
		c.state = StateIdle
		c.awDone = false
		c.wDone = false
		c.gntReg = false
		c.rspValidReg = false
		c.trans = nil
		return
	}

	c.rspValidReg = false // response pulses for exactly one cycle

	switch c.state {
	case StateIdle:
		c.syncIdle()
	case StateWaitWriteAddrData:
		c.syncWaitWriteAddrData()
	case StateWaitWriteResp:
		if c.Bus.B.Fires() {
			c.complete(0, c.Bus.B.Resp)
		}
	case StateWaitReadAddr:
		if c.Bus.AR.Fires() {
			c.state = StateWaitReadData
		}
	case StateWaitReadData:
		if c.Bus.R.Fires() {
			c.complete(c.Bus.R.Data, c.Bus.R.Resp)
		}
	}
}

// syncIdle accepts a new request. In combinational-grant mode the grant was
// already on the wire this cycle; in registered-grant mode the grant wire
// follows the request by one cycle and acceptance happens on the grant
// cycle, so the grant never overlaps a wait state in either mode.
func (c *Comp) syncIdle() {
	if !c.registeredGrant {
		if c.Front.Req {
			c.accept()
		}
		return
	}

	if c.gntReg {
		c.gntReg = false
		c.accept()
		return
	}

	if c.Front.Req {
		c.gntReg = true
	}
}

func (c *Comp) accept() {
	c.req = Request{
		Addr:       c.Front.Addr,
		IsWrite:    c.Front.WE,
		ByteEnable: c.Front.ByteEnable,
		Data:       c.Front.WData,
	}
	c.awDone = false
	c.wDone = false

	if c.req.IsWrite {
		c.state = StateWaitWriteAddrData
	} else {
		c.state = StateWaitReadAddr
	}

	c.trans = &Transaction{
		ID:          sim.GetIDGenerator().Generate(),
		Request:     c.req,
		AcceptCycle: c.cycle,
	}
	c.InvokeHook(sim.HookCtx{
		Domain: c,
		Pos:    HookPosReqAccept,
		Item:   c.trans,
	})
}

func (c *Comp) syncWaitWriteAddrData() {
	if c.Bus.AW.Fires() {
		c.awDone = true
	}
	if c.Bus.W.Fires() {
		c.wDone = true
	}

	if c.awDone && c.wDone {
		c.state = StateWaitWriteResp
	}
}

func (c *Comp) complete(rdata uint64, resp axi.Resp) {
	c.rdataReg = rdata
	c.respReg = resp
	c.rspValidReg = true
	c.state = StateIdle

	if c.trans != nil {
		c.trans.RData = rdata
		c.trans.Status = resp
		c.trans.CompleteCycle = c.cycle
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosReqComplete,
			Item:   c.trans,
		})
		c.trans = nil
	}
}
