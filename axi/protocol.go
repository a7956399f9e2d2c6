// Package axi defines the AXI4-Lite data model used by the bridge: channel
// payloads, the five-channel bus with valid/ready wire pairs, and the
// constant tie-off values for the full-width AXI4 fields that Lite traffic
// never varies.
package axi

// Resp is the AXI response code carried on the B and R channels.
type Resp uint8

// AXI response code values.
const (
	RespOKAY Resp = iota
	RespEXOKAY
	RespSLVERR
	RespDECERR
)

// IsError returns true for the SLVERR and DECERR codes.
func (r Resp) IsError() bool {
	return r == RespSLVERR || r == RespDECERR
}

func (r Resp) String() string {
	switch r {
	case RespOKAY:
		return "OKAY"
	case RespEXOKAY:
		return "EXOKAY"
	case RespSLVERR:
		return "SLVERR"
	case RespDECERR:
		return "DECERR"
	}
	return "UNKNOWN"
}

// Prot carries the AxPROT bits of an address channel.
type Prot uint8

// AxPROT bit positions.
const (
	ProtPrivileged  Prot = 1 << 0
	ProtNonSecure   Prot = 1 << 1
	ProtInstruction Prot = 1 << 2
)

// Burst is the AXI burst type. Lite traffic ties it to BurstINCR.
type Burst uint8

// AXI burst type encodings.
const (
	BurstFIXED Burst = iota
	BurstINCR
	BurstWRAP
)

// AddrPayload is the payload of the AW and AR channels.
type AddrPayload struct {
	Addr uint64
	Prot Prot
}

// WritePayload is the payload of the W channel.
type WritePayload struct {
	Data uint64
	Strb uint8
}

// RespPayload is the payload of the B channel.
type RespPayload struct {
	Resp Resp
}

// ReadPayload is the payload of the R channel.
type ReadPayload struct {
	Data uint64
	Resp Resp
}

// AWChannel is the write-address channel wire set.
type AWChannel struct {
	AddrPayload
	Valid bool
	Ready bool
}

// Fires returns true on a cycle where the handshake completes.
func (c *AWChannel) Fires() bool { return c.Valid && c.Ready }

// WChannel is the write-data channel wire set.
type WChannel struct {
	WritePayload
	Valid bool
	Ready bool
}

// Fires returns true on a cycle where the handshake completes.
func (c *WChannel) Fires() bool { return c.Valid && c.Ready }

// BChannel is the write-response channel wire set.
type BChannel struct {
	RespPayload
	Valid bool
	Ready bool
}

// Fires returns true on a cycle where the handshake completes.
func (c *BChannel) Fires() bool { return c.Valid && c.Ready }

// ARChannel is the read-address channel wire set.
type ARChannel struct {
	AddrPayload
	Valid bool
	Ready bool
}

// Fires returns true on a cycle where the handshake completes.
func (c *ARChannel) Fires() bool { return c.Valid && c.Ready }

// RChannel is the read-data channel wire set.
type RChannel struct {
	ReadPayload
	Valid bool
	Ready bool
}

// Fires returns true on a cycle where the handshake completes.
func (c *RChannel) Fires() bool { return c.Valid && c.Ready }

// LiteBus groups the five AXI4-Lite channels of one master/slave pair. The
// master drives AW/W/AR payloads and valids plus B/R readies; the slave
// drives the rest.
type LiteBus struct {
	AW AWChannel
	W  WChannel
	B  BChannel
	AR ARChannel
	R  RChannel
}

// WideFields holds the full-width AXI4 per-request fields that exist on the
// wire only for port compatibility. In Lite operation every field is tied to
// a constant; none of them may vary at runtime.
type WideFields struct {
	ID     uint64
	Len    uint8
	Size   uint8
	Burst  Burst
	Lock   bool
	Cache  uint8
	Region uint8
	QoS    uint8
	User   uint64
	Last   bool
}
