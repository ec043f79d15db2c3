package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"cfsched/internal/logging"
	"cfsched/internal/proc"
	"cfsched/internal/report"
	"cfsched/internal/sched"
	"cfsched/internal/workload"
)

func newRunCmd() *cobra.Command {
	var (
		configFile   string
		workloadFile string
		csvPath      string
		controller   string
		logLevel     string
		logFormat    string
		showTrace    bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the scheduler over a task batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger(logging.ParseLevel(logLevel), logFormat)

			cfg := sched.Load(configFile)

			batch := workload.Default()
			if workloadFile != "" {
				loaded, err := workload.Load(workloadFile)
				if err != nil {
					return err
				}
				batch = loaded
			}

			var ctrl sched.Controller
			var closeCtrl func()
			switch controller {
			case "stub":
				ctrl = proc.NewStubController()
			case "process":
				sc, err := proc.NewSignalController()
				if err != nil {
					return err
				}
				for i, t := range batch.Tasks {
					if err := sc.Spawn(sched.TaskID(i), t.BurstMS); err != nil {
						sc.Close()
						return err
					}
				}
				ctrl = sc
				closeCtrl = sc.Close
			default:
				return fmt.Errorf("unknown controller %q (want stub or process)", controller)
			}
			if closeCtrl != nil {
				defer closeCtrl()
			}

			s := sched.New(cfg, ctrl, sched.WallClock{}, log)
			for i, t := range batch.Tasks {
				task := sched.NewTask(sched.TaskID(i), t.ArrivalMS, t.BurstMS, t.Nice)
				if err := s.Add(task); err != nil {
					return err
				}
			}

			if csvPath != "" {
				if err := s.EnableCSVLogging(csvPath); err != nil {
					return fmt.Errorf("enable csv trace: %w", err)
				}
			}
			if showTrace {
				s.SetSink(printEvent)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := s.Run(ctx); err != nil {
				return fmt.Errorf("run failed: %w", err)
			}

			gen := report.NewGenerator()
			snaps := s.Snapshot()
			fmt.Println(gen.ProcessTable(snaps))
			fmt.Println(gen.Trace(snaps))
			fmt.Println(gen.FinalStatistics(snaps))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "", "Path to scheduler config file")
	cmd.Flags().StringVarP(&workloadFile, "workload", "w", "", "Path to workload file (default: built-in demo batch)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Write a CSV event trace to this path")
	cmd.Flags().StringVar(&controller, "controller", "stub", "Execution substrate: stub or process")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&logFormat, "log-format", "text", "Log format (text or json)")
	cmd.Flags().BoolVarP(&showTrace, "trace", "t", false, "Print per-decision events as they happen")

	return cmd
}

// printEvent is the human-readable per-decision line; idle ticks are
// skipped to keep the trace short.
func printEvent(ev sched.StatusEvent) {
	if ev.Kind == sched.StatusIdle {
		return
	}
	fmt.Printf("[T=%6d ms] %-9s P%-3d vruntime=%-12d remaining=%-5d ran=%d\n",
		ev.ElapsedMS, ev.Kind, ev.TaskID, ev.Vruntime, ev.RemainingMS, ev.RanMS)
}
