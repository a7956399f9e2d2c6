// Package tracing observes bridge transactions through hooks and records
// them to a logger or a database.
package tracing

import (
	"log"

	"github.com/sarchlab/axibridge/bridge"
	"github.com/sarchlab/axibridge/sim"
)

// TransactionLogger is a hook that prints accepted and completed bridge
// transactions.
type TransactionLogger struct {
	sim.LogHookBase
}

// NewTransactionLogger returns a TransactionLogger that writes to the given
// logger
func NewTransactionLogger(logger *log.Logger) *TransactionLogger {
	h := new(TransactionLogger)
	h.Logger = logger
	return h
}

// Func writes the transaction information into the logger
func (h *TransactionLogger) Func(ctx sim.HookCtx) {
	trans, ok := ctx.Item.(*bridge.Transaction)
	if !ok {
		return
	}

	switch ctx.Pos {
	case bridge.HookPosReqAccept:
		if trans.IsWrite {
			h.Printf("cycle %d, accept write 0x%x <- 0x%x strb %x",
				trans.AcceptCycle, trans.Addr, trans.Data, trans.ByteEnable)
		} else {
			h.Printf("cycle %d, accept read 0x%x",
				trans.AcceptCycle, trans.Addr)
		}
	case bridge.HookPosReqComplete:
		if trans.IsWrite {
			h.Printf("cycle %d, complete write 0x%x, %s",
				trans.CompleteCycle, trans.Addr, trans.Status)
		} else {
			h.Printf("cycle %d, complete read 0x%x -> 0x%x, %s",
				trans.CompleteCycle, trans.Addr, trans.RData, trans.Status)
		}
	}
}
