// Package memslave provides an AXI4-Lite slave model backed by a byte
// storage. Ready latencies on the address and data channels and delays on
// the response channels are programmable so that stall behavior can be
// exercised. Accesses beyond the storage capacity respond with DECERR;
// selected addresses can be made to respond with SLVERR.
package memslave

import (
	"encoding/binary"

	"github.com/sarchlab/axibridge/axi"
)

type outputs struct {
	awReady bool
	wReady  bool
	arReady bool

	bValid   bool
	bPayload axi.RespPayload
	rValid   bool
	rPayload axi.ReadPayload
}

// Comp is the slave model. It implements hw.Logic and drives the slave side
// of the shared AXI bus.
type Comp struct {
	name string

	// Bus is the wire struct shared with the master.
	Bus *axi.LiteBus

	storage   *Storage
	dataBytes uint64

	awLatency int
	wLatency  int
	arLatency int
	bLatency  int
	rLatency  int

	slverr map[uint64]bool

	awStall    int
	wStall     int
	arStall    int
	awCaptured bool
	wCaptured  bool
	awPayload  axi.AddrPayload
	wPayload   axi.WritePayload
	arPayload  axi.AddrPayload

	writePending bool
	bCountdown   int
	bValid       bool
	bResp        axi.Resp

	readPending bool
	rCountdown  int
	rValid      bool
	rData       uint64
	rResp       axi.Resp

	driven outputs
}

// Name returns the name of the slave.
func (c *Comp) Name() string {
	return c.name
}

// Storage returns the backing storage, usable as a backdoor in tests.
func (c *Comp) Storage() *Storage {
	return c.storage
}

// InjectSLVERR makes every access to the given address respond with SLVERR.
func (c *Comp) InjectSLVERR(addr uint64) {
	c.slverr[addr] = true
}

// Idle reports that no access is in flight inside the slave.
func (c *Comp) Idle() bool {
	return !c.awCaptured && !c.wCaptured &&
		!c.writePending && !c.readPending
}

// Eval drives the slave side of the bus from the current register state.
func (c *Comp) Eval() bool {
	o := outputs{
		awReady: !c.awCaptured && c.awStall == 0,
		wReady:  !c.wCaptured && c.wStall == 0,
		arReady: !c.readPending && c.arStall == 0,

		bValid:   c.bValid,
		bPayload: axi.RespPayload{Resp: c.bResp},
		rValid:   c.rValid,
		rPayload: axi.ReadPayload{Data: c.rData, Resp: c.rResp},
	}

	if o == c.driven {
		return false
	}
	c.driven = o

	c.Bus.AW.Ready = o.awReady
	c.Bus.W.Ready = o.wReady
	c.Bus.AR.Ready = o.arReady
	c.Bus.B.Valid = o.bValid
	c.Bus.B.RespPayload = o.bPayload
	c.Bus.R.Valid = o.rValid
	c.Bus.R.ReadPayload = o.rPayload

	return true
}

// Sync applies one clock edge.
func (c *Comp) Sync(resetN bool) {
	if !resetN {
		c.reset()
		return
	}

	c.syncWrite()
	c.syncRead()
}

func (c *Comp) reset() {
	c.awStall = c.awLatency
	c.wStall = c.wLatency
	c.arStall = c.arLatency
	c.awCaptured = false
	c.wCaptured = false
	c.writePending = false
	c.bValid = false
	c.readPending = false
	c.rValid = false
}

func (c *Comp) syncWrite() {
	if c.Bus.AW.Fires() {
		c.awPayload = c.Bus.AW.AddrPayload
		c.awCaptured = true
	} else if c.Bus.AW.Valid && c.awStall > 0 {
		c.awStall--
	}

	if c.Bus.W.Fires() {
		c.wPayload = c.Bus.W.WritePayload
		c.wCaptured = true
	} else if c.Bus.W.Valid && c.wStall > 0 {
		c.wStall--
	}

	if c.awCaptured && c.wCaptured && !c.writePending {
		c.writePending = true
		c.bCountdown = c.bLatency
		c.bResp = c.executeWrite()
	}

	if c.writePending && !c.bValid {
		if c.bCountdown == 0 {
			c.bValid = true
		} else {
			c.bCountdown--
		}
	}

	if c.Bus.B.Fires() {
		c.bValid = false
		c.writePending = false
		c.awCaptured = false
		c.wCaptured = false
		c.awStall = c.awLatency
		c.wStall = c.wLatency
	}
}

func (c *Comp) syncRead() {
	if c.Bus.AR.Fires() {
		c.arPayload = c.Bus.AR.AddrPayload
		c.readPending = true
		c.rCountdown = c.rLatency
		c.rData, c.rResp = c.executeRead()
	} else if c.Bus.AR.Valid && c.arStall > 0 {
		c.arStall--
	}

	if c.readPending && !c.rValid {
		if c.rCountdown == 0 {
			c.rValid = true
		} else {
			c.rCountdown--
		}
	}

	if c.Bus.R.Fires() {
		c.rValid = false
		c.readPending = false
		c.arStall = c.arLatency
	}
}

// executeWrite merges the strobed bytes into the storage and returns the
// response code.
func (c *Comp) executeWrite() axi.Resp {
	addr := c.awPayload.Addr

	if c.slverr[addr] {
		return axi.RespSLVERR
	}

	word, err := c.storage.Read(addr, c.dataBytes)
	if err != nil {
		return axi.RespDECERR
	}

	data := make([]byte, 8)
	binary.LittleEndian.PutUint64(data, c.wPayload.Data)
	for lane := uint64(0); lane < c.dataBytes; lane++ {
		if c.wPayload.Strb&(1<<lane) != 0 {
			word[lane] = data[lane]
		}
	}

	if err := c.storage.Write(addr, word); err != nil {
		return axi.RespDECERR
	}

	return axi.RespOKAY
}

func (c *Comp) executeRead() (uint64, axi.Resp) {
	addr := c.arPayload.Addr

	if c.slverr[addr] {
		return 0, axi.RespSLVERR
	}

	word, err := c.storage.Read(addr, c.dataBytes)
	if err != nil {
		return 0, axi.RespDECERR
	}

	padded := make([]byte, 8)
	copy(padded, word)
	return binary.LittleEndian.Uint64(padded), axi.RespOKAY
}
