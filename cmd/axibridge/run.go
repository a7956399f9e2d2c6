package main

import (
	"log"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/sarchlab/axibridge/bridge"
	"github.com/sarchlab/axibridge/hw"
	"github.com/sarchlab/axibridge/memslave"
	"github.com/sarchlab/axibridge/reqagent"
	"github.com/sarchlab/axibridge/sim"
	"github.com/sarchlab/axibridge/simulation"
	"github.com/sarchlab/axibridge/tracing"
)

var runFlags struct {
	numRequests     int
	seed            int64
	addrWidth       int
	dataWidth       int
	registeredGrant bool

	awLatency int
	wLatency  int
	arLatency int
	bLatency  int
	rLatency  int

	trace   string
	verbose bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a random read/write workload through the bridge.",
	Run: func(cmd *cobra.Command, args []string) {
		runSimulation()
	},
}

func init() {
	f := runCmd.Flags()
	f.IntVarP(&runFlags.numRequests, "requests", "n", 100,
		"number of requests to issue")
	f.Int64Var(&runFlags.seed, "seed", 1, "random seed for the workload")
	f.IntVar(&runFlags.addrWidth, "addr-width", 32, "address width in bits")
	f.IntVar(&runFlags.dataWidth, "data-width", 32, "data width in bits")
	f.BoolVar(&runFlags.registeredGrant, "registered-grant", false,
		"register the grant output instead of asserting it combinationally")
	f.IntVar(&runFlags.awLatency, "aw-latency", 0,
		"slave AWREADY stall cycles")
	f.IntVar(&runFlags.wLatency, "w-latency", 0, "slave WREADY stall cycles")
	f.IntVar(&runFlags.arLatency, "ar-latency", 0,
		"slave ARREADY stall cycles")
	f.IntVar(&runFlags.bLatency, "b-latency", 0,
		"slave write-response delay cycles")
	f.IntVar(&runFlags.rLatency, "r-latency", 0,
		"slave read-data delay cycles")
	f.StringVar(&runFlags.trace, "trace", "",
		"record transactions into the given SQLite file")
	f.BoolVarP(&runFlags.verbose, "verbose", "v", false,
		"log every transaction")

	rootCmd.AddCommand(runCmd)
}

func runSimulation() {
	s := simulation.New()
	defer s.Terminate()

	engine := s.GetEngine()

	slave := memslave.MakeBuilder().
		WithDataWidth(runFlags.dataWidth).
		WithCapacity(1 << 20).
		WithAWLatency(runFlags.awLatency).
		WithWLatency(runFlags.wLatency).
		WithARLatency(runFlags.arLatency).
		WithBLatency(runFlags.bLatency).
		WithRLatency(runFlags.rLatency).
		Build("Slave")

	bridgeBuilder := bridge.MakeBuilder().
		WithAddrWidth(runFlags.addrWidth).
		WithDataWidth(runFlags.dataWidth).
		WithBus(slave.Bus)
	if runFlags.registeredGrant {
		bridgeBuilder = bridgeBuilder.WithRegisteredGrant()
	}
	b := bridgeBuilder.Build("Bridge")

	agent := reqagent.MakeBuilder().
		WithFrontPort(b.Front).
		WithScript(randomScript()).
		Build("Agent")

	sys := hw.MakeBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("System")
	sys.AddUnit(agent)
	sys.AddUnit(b)
	sys.AddUnit(slave)

	s.RegisterComponent(b)
	s.RegisterComponent(slave)
	s.RegisterComponent(agent)

	if runFlags.verbose {
		logger := log.New(os.Stdout, "", 0)
		b.AcceptHook(tracing.NewTransactionLogger(logger))
	}

	if runFlags.trace != "" {
		s.EnableDataRecording(runFlags.trace)
		b.AcceptHook(tracing.NewDBTracer(s.GetDataRecorder()))
	}

	sys.TickNow()
	err := engine.Run()
	if err != nil {
		panic(err)
	}

	reportResults(sys, agent)
}

func randomScript() []bridge.Request {
	r := rand.New(rand.NewSource(runFlags.seed))
	dataBytes := runFlags.dataWidth / 8

	script := make([]bridge.Request, 0, runFlags.numRequests)
	for i := 0; i < runFlags.numRequests; i++ {
		req := bridge.Request{
			Addr:    uint64(r.Intn(1<<16)) * uint64(dataBytes),
			IsWrite: r.Intn(2) == 0,
		}
		if req.IsWrite {
			req.ByteEnable = uint8(r.Intn(1 << dataBytes)) // random strobes
			req.Data = r.Uint64()
		}
		script = append(script, req)
	}

	return script
}

func reportResults(sys *hw.System, agent *reqagent.Comp) {
	numErr := 0
	for _, rsp := range agent.Responses {
		if rsp.Err {
			numErr++
		}
	}

	log.Printf("completed %d transactions in %d cycles, %d error responses",
		len(agent.Responses), sys.Cycle(), numErr)
}
