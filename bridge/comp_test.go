package bridge

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axibridge/axi"
	"github.com/sarchlab/axibridge/sim"
)

// settle evaluates the bridge until its outputs stop changing, like a System
// settle pass with no other unit on the wires.
func settle(c *Comp) {
	for c.Eval() {
	}
}

// step settles and then applies one clock edge.
func step(c *Comp) {
	settle(c)
	c.Sync(true)
}

var _ = Describe("Bridge FSM", func() {
	var (
		c     *Comp
		front *FrontPort
		bus   *axi.LiteBus
	)

	BeforeEach(func() {
		c = MakeBuilder().
			WithAddrWidth(32).
			WithDataWidth(32).
			Build("Bridge")
		front = c.Front
		bus = c.Bus
	})

	requestWrite := func() {
		front.Req = true
		front.WE = true
		front.Addr = 0x1000
		front.ByteEnable = 0xF
		front.WData = 0xDEADBEEF
	}

	requestRead := func() {
		front.Req = true
		front.WE = false
		front.Addr = 0x2000
	}

	It("should grant combinationally in the request cycle", func() {
		requestWrite()

		settle(c)

		Expect(front.Gnt).To(BeTrue())
	})

	It("should not grant without a request", func() {
		settle(c)

		Expect(front.Gnt).To(BeFalse())
	})

	It("should complete a write with an immediately ready slave", func() {
		requestWrite()
		step(c)
		front.Req = false

		// Both address and data channels must be up, carrying the request.
		settle(c)
		Expect(c.State()).To(Equal(StateWaitWriteAddrData))
		Expect(bus.AW.Valid).To(BeTrue())
		Expect(bus.AW.Addr).To(Equal(uint64(0x1000)))
		Expect(bus.W.Valid).To(BeTrue())
		Expect(bus.W.Data).To(Equal(uint64(0xDEADBEEF)))
		Expect(bus.W.Strb).To(Equal(uint8(0xF)))
		bus.AW.Ready = true
		bus.W.Ready = true
		c.Sync(true)

		settle(c)
		Expect(c.State()).To(Equal(StateWaitWriteResp))
		Expect(bus.AW.Valid).To(BeFalse())
		Expect(bus.W.Valid).To(BeFalse())
		Expect(bus.B.Ready).To(BeTrue())
		bus.B.Valid = true
		bus.B.Resp = axi.RespOKAY
		c.Sync(true)
		bus.B.Valid = false

		settle(c)
		Expect(c.State()).To(Equal(StateIdle))
		Expect(front.RspValid).To(BeTrue())
		Expect(front.Err).To(BeFalse())
		c.Sync(true)

		// The response pulses for exactly one cycle.
		settle(c)
		Expect(front.RspValid).To(BeFalse())
	})

	It("should hold AW and W independently until each is acknowledged", func() {
		requestWrite()
		step(c)
		front.Req = false

		// W acknowledged first; AW must stay up without re-sending W.
		settle(c)
		bus.W.Ready = true
		c.Sync(true)
		bus.W.Ready = false

		settle(c)
		Expect(c.State()).To(Equal(StateWaitWriteAddrData))
		Expect(bus.W.Valid).To(BeFalse())
		Expect(bus.AW.Valid).To(BeTrue())
		Expect(bus.AW.Addr).To(Equal(uint64(0x1000)))
		c.Sync(true)

		settle(c)
		Expect(bus.AW.Valid).To(BeTrue())
		bus.AW.Ready = true
		c.Sync(true)

		settle(c)
		Expect(c.State()).To(Equal(StateWaitWriteResp))
	})

	It("should accept AW completing before W", func() {
		requestWrite()
		step(c)
		front.Req = false

		settle(c)
		bus.AW.Ready = true
		c.Sync(true)
		bus.AW.Ready = false

		settle(c)
		Expect(bus.AW.Valid).To(BeFalse())
		Expect(bus.W.Valid).To(BeTrue())
		bus.W.Ready = true
		c.Sync(true)

		settle(c)
		Expect(c.State()).To(Equal(StateWaitWriteResp))
	})

	It("should stay in the wait state while AW is stalled", func() {
		requestWrite()
		step(c)
		front.Req = true // a second request is pending

		n := 7
		for i := 0; i < n; i++ {
			settle(c)
			Expect(c.State()).To(Equal(StateWaitWriteAddrData))
			Expect(bus.AW.Valid).To(BeTrue())
			Expect(bus.AW.Addr).To(Equal(uint64(0x1000)))
			Expect(bus.W.Data).To(Equal(uint64(0xDEADBEEF)))
			Expect(front.Gnt).To(BeFalse(), "no grant while in flight")
			c.Sync(true)
		}

		settle(c)
		bus.AW.Ready = true
		bus.W.Ready = true
		c.Sync(true)

		settle(c)
		Expect(c.State()).To(Equal(StateWaitWriteResp))
	})

	It("should complete a read", func() {
		requestRead()
		step(c)
		front.Req = false

		settle(c)
		Expect(c.State()).To(Equal(StateWaitReadAddr))
		Expect(bus.AR.Valid).To(BeTrue())
		Expect(bus.AR.Addr).To(Equal(uint64(0x2000)))
		Expect(bus.AW.Valid).To(BeFalse())
		Expect(bus.W.Valid).To(BeFalse())
		bus.AR.Ready = true
		c.Sync(true)
		bus.AR.Ready = false

		settle(c)
		Expect(c.State()).To(Equal(StateWaitReadData))
		Expect(bus.AR.Valid).To(BeFalse())
		Expect(bus.R.Ready).To(BeTrue())
		bus.R.Valid = true
		bus.R.Data = 0x12345678
		bus.R.Resp = axi.RespOKAY
		c.Sync(true)
		bus.R.Valid = false

		settle(c)
		Expect(c.State()).To(Equal(StateIdle))
		Expect(front.RspValid).To(BeTrue())
		Expect(front.RData).To(Equal(uint64(0x12345678)))
		Expect(front.Err).To(BeFalse())
	})

	It("should complete but flag an error response", func() {
		requestRead()
		step(c)
		front.Req = false

		settle(c)
		bus.AR.Ready = true
		c.Sync(true)
		bus.AR.Ready = false

		settle(c)
		bus.R.Valid = true
		bus.R.Resp = axi.RespSLVERR
		c.Sync(true)
		bus.R.Valid = false

		settle(c)
		Expect(front.RspValid).To(BeTrue())
		Expect(front.Err).To(BeTrue())
		Expect(front.RspStatus).To(Equal(axi.RespSLVERR))
	})

	It("should return to idle and deassert valids on reset", func() {
		requestRead()
		step(c)
		front.Req = false

		settle(c)
		Expect(bus.AR.Valid).To(BeTrue())

		c.Sync(false)

		settle(c)
		Expect(c.State()).To(Equal(StateIdle))
		Expect(bus.AR.Valid).To(BeFalse())
		Expect(bus.AW.Valid).To(BeFalse())
		Expect(bus.W.Valid).To(BeFalse())
		Expect(front.Gnt).To(BeFalse())
		Expect(front.RspValid).To(BeFalse())
	})

	It("should invoke the accept and complete hooks", func() {
		var accepted, completed *Transaction
		c.AcceptHook(hookFunc(func(ctx sim.HookCtx) {
			switch ctx.Pos {
			case HookPosReqAccept:
				accepted = ctx.Item.(*Transaction)
			case HookPosReqComplete:
				completed = ctx.Item.(*Transaction)
			}
		}))

		requestWrite()
		step(c)
		front.Req = false

		settle(c)
		bus.AW.Ready = true
		bus.W.Ready = true
		c.Sync(true)

		settle(c)
		bus.B.Valid = true
		c.Sync(true)

		Expect(accepted).NotTo(BeNil())
		Expect(accepted.Addr).To(Equal(uint64(0x1000)))
		Expect(accepted.IsWrite).To(BeTrue())
		Expect(completed).To(BeIdenticalTo(accepted))
		Expect(completed.Status).To(Equal(axi.RespOKAY))
		Expect(completed.CompleteCycle > completed.AcceptCycle).To(BeTrue())
	})
})

var _ = Describe("Bridge FSM with registered grant", func() {
	var (
		c     *Comp
		front *FrontPort
	)

	BeforeEach(func() {
		c = MakeBuilder().
			WithRegisteredGrant().
			Build("Bridge")
		front = c.Front
	})

	It("should grant exactly one cycle after the request", func() {
		front.Req = true
		front.WE = false
		front.Addr = 0x40

		settle(c)
		Expect(front.Gnt).To(BeFalse(), "request cycle")
		c.Sync(true)

		settle(c)
		Expect(front.Gnt).To(BeTrue(), "one cycle later")
		Expect(c.State()).To(Equal(StateIdle))
		c.Sync(true)
		front.Req = false

		settle(c)
		Expect(front.Gnt).To(BeFalse())
		Expect(c.State()).To(Equal(StateWaitReadAddr))
	})
})

type hookFunc func(ctx sim.HookCtx)

func (f hookFunc) Func(ctx sim.HookCtx) {
	f(ctx)
}
