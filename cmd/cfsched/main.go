package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "cfsched",
		Short: "User-space CFS-style scheduler simulation",
		Long: `cfsched simulates a fairness-based CPU scheduler over a fixed batch of
tasks. Selection combines virtual runtime with deterministic heuristics
for anti-starvation aging, interactivity detection and burst-length
estimation, and the run ends with per-task timing statistics.`,
		SilenceUsage: true,
	}
	root.AddCommand(newRunCmd(), newWorkerCmd())
	return root
}
