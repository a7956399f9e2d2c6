package axi

import (
	"fmt"
	"math/bits"
)

// An Adapter packs and unpacks the bridge's internal scalar signals to and
// from AXI4-Lite channel payloads. It is pure and stateless; all width
// handling is fixed at construction time. Width mismatches are configuration
// errors and panic at elaboration, never at runtime.
type Adapter struct {
	addrWidth int
	dataWidth int

	addrMask uint64
	dataMask uint64
	strbMask uint8

	prot Prot
}

// NewAdapter elaborates an adapter for the given bus widths. The address
// width must be within 1 to 64 bits. The data width must be 8, 16, 32, or
// 64 bits, so that the strobe fits one byte per lane.
func NewAdapter(addrWidth, dataWidth int, prot Prot) Adapter {
	if addrWidth < 1 || addrWidth > 64 {
		panic(fmt.Sprintf("address width %d out of range [1, 64]", addrWidth))
	}

	switch dataWidth {
	case 8, 16, 32, 64:
	default:
		panic(fmt.Sprintf("data width %d not one of 8, 16, 32, 64", dataWidth))
	}

	return Adapter{
		addrWidth: addrWidth,
		dataWidth: dataWidth,
		addrMask:  widthMask(addrWidth),
		dataMask:  widthMask(dataWidth),
		strbMask:  uint8(widthMask(dataWidth / 8)),
		prot:      prot,
	}
}

func widthMask(width int) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

// AddrWidth returns the configured address width in bits.
func (a Adapter) AddrWidth() int { return a.addrWidth }

// DataWidth returns the configured data width in bits.
func (a Adapter) DataWidth() int { return a.dataWidth }

// PackAddr maps a byte address to an AW or AR payload, truncating to the
// configured address width and attaching the fixed protection bits.
func (a Adapter) PackAddr(addr uint64) AddrPayload {
	return AddrPayload{
		Addr: addr & a.addrMask,
		Prot: a.prot,
	}
}

// UnpackAddr is the inverse of PackAddr.
func (a Adapter) UnpackAddr(p AddrPayload) (addr uint64, prot Prot) {
	return p.Addr & a.addrMask, p.Prot
}

// PackWrite maps write data and a byte-enable mask to a W payload.
func (a Adapter) PackWrite(data uint64, byteEnable uint8) WritePayload {
	return WritePayload{
		Data: data & a.dataMask,
		Strb: byteEnable & a.strbMask,
	}
}

// UnpackWrite is the inverse of PackWrite.
func (a Adapter) UnpackWrite(p WritePayload) (data uint64, byteEnable uint8) {
	return p.Data & a.dataMask, p.Strb & a.strbMask
}

// TieOffWideFields returns the constant values for the full-width AXI4
// fields when only Lite semantics are used: single-beat INCR bursts of the
// full bus width, not locked, non-cacheable, non-bufferable, region, QoS,
// ID, and user sideband all zero, and every beat the last one.
func (a Adapter) TieOffWideFields() WideFields {
	return WideFields{
		ID:     0,
		Len:    0,
		Size:   uint8(bits.TrailingZeros(uint(a.dataWidth / 8))),
		Burst:  BurstINCR,
		Lock:   false,
		Cache:  0,
		Region: 0,
		QoS:    0,
		User:   0,
		Last:   true,
	}
}
