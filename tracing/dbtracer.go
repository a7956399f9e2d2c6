package tracing

import (
	"github.com/sarchlab/axibridge/bridge"
	"github.com/sarchlab/axibridge/datarecording"
	"github.com/sarchlab/axibridge/sim"
)

const transactionTable = "bridge_transactions"

// transactionEntry is one row of the transaction table.
type transactionEntry struct {
	ID            string
	Kind          string
	Addr          uint64
	Data          uint64
	ByteEnable    uint8
	RData         uint64
	Status        string
	AcceptCycle   uint64
	CompleteCycle uint64
}

// A DBTracer is a hook that records every completed bridge transaction as a
// row through a DataRecorder.
type DBTracer struct {
	recorder datarecording.DataRecorder
}

// NewDBTracer creates a DBTracer writing through the given recorder
func NewDBTracer(recorder datarecording.DataRecorder) *DBTracer {
	t := &DBTracer{recorder: recorder}
	t.recorder.CreateTable(transactionTable, transactionEntry{})
	return t
}

// Func records completed transactions.
func (t *DBTracer) Func(ctx sim.HookCtx) {
	if ctx.Pos != bridge.HookPosReqComplete {
		return
	}

	trans := ctx.Item.(*bridge.Transaction)

	kind := "read"
	if trans.IsWrite {
		kind = "write"
	}

	t.recorder.InsertData(transactionTable, transactionEntry{
		ID:            trans.ID,
		Kind:          kind,
		Addr:          trans.Addr,
		Data:          trans.Data,
		ByteEnable:    trans.ByteEnable,
		RData:         trans.RData,
		Status:        trans.Status.String(),
		AcceptCycle:   trans.AcceptCycle,
		CompleteCycle: trans.CompleteCycle,
	})
}
