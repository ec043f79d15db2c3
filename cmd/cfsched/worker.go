package main

import (
	"time"

	"github.com/spf13/cobra"
)

// newWorkerCmd is the hidden child-process entry point used by the
// process controller: it burns CPU for the requested burst and exits.
func newWorkerCmd() *cobra.Command {
	var burstMS int64

	cmd := &cobra.Command{
		Use:    "worker",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			busyLoop(burstMS)
			return nil
		},
	}
	cmd.Flags().Int64Var(&burstMS, "burst", 0, "CPU burst to consume, in milliseconds")
	return cmd
}

// busyLoop consumes roughly burstMS of wall time with real CPU work
// rather than sleeping, so SIGSTOP/SIGCONT actually gates progress.
func busyLoop(burstMS int64) {
	deadline := time.Now().Add(time.Duration(burstMS) * time.Millisecond)
	var sink int64
	for time.Now().Before(deadline) {
		for i := int64(0); i < 10000; i++ {
			sink += i
		}
	}
	_ = sink
}
