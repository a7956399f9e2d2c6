package hw

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/axibridge/sim"
)

// counterUnit counts down from a start value once reset releases. Its output
// wire mirrors the register so Eval reports a change once per cycle.
type counterUnit struct {
	count    int
	out      int
	resets   int
	synced   int
	wasReset []bool
}

func (u *counterUnit) Name() string {
	return "Counter"
}

func (u *counterUnit) Eval() bool {
	if u.out == u.count {
		return false
	}
	u.out = u.count
	return true
}

func (u *counterUnit) Sync(resetN bool) {
	u.synced++
	u.wasReset = append(u.wasReset, !resetN)

	if !resetN {
		u.resets++
		u.count = 3
		return
	}

	if u.count > 0 {
		u.count--
	}
}

func (u *counterUnit) Idle() bool {
	return u.count == 0
}

var _ = Describe("System", func() {
	var (
		engine *sim.SerialEngine
		sys    *System
		unit   *counterUnit
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		unit = &counterUnit{count: 3}
		sys = MakeBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			WithResetCycles(2).
			Build("System")
		sys.AddUnit(unit)
	})

	It("should hold reset for the configured cycles", func() {
		sys.TickNow()
		Expect(engine.Run()).To(Succeed())

		Expect(unit.wasReset[0]).To(BeTrue())
		Expect(unit.wasReset[1]).To(BeTrue())
		Expect(unit.wasReset[2]).To(BeFalse())
	})

	It("should stop ticking when all units are idle", func() {
		sys.TickNow()
		Expect(engine.Run()).To(Succeed())

		// 2 reset cycles + 3 countdown cycles + 1 idle-detection cycle.
		Expect(unit.Idle()).To(BeTrue())
		Expect(sys.Cycle()).To(Equal(uint64(5)))
	})

	It("should panic on a combinational loop", func() {
		sys.AddUnit(&loopUnit{})

		Expect(func() { sys.Tick() }).To(Panic())
	})
})

type loopUnit struct{}

func (u *loopUnit) Name() string     { return "Loop" }
func (u *loopUnit) Eval() bool       { return true }
func (u *loopUnit) Sync(resetN bool) {}
func (u *loopUnit) Idle() bool       { return true }
