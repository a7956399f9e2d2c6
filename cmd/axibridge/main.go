// The axibridge command runs demo simulations of the memory-interface to
// AXI4-Lite bridge.
package main

import (
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

var rootCmd = &cobra.Command{
	Use:   "axibridge",
	Short: "axibridge simulates a memory-interface to AXI4-Lite bridge.",
	Long: `axibridge simulates a request/grant memory interface bridged onto ` +
		`an AXI4-Lite bus. The run subcommand drives a scripted requester ` +
		`through the bridge into a memory slave model and reports per-` +
		`transaction results.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		atexit.Exit(1)
	}
	atexit.Exit(0)
}
