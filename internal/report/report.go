// Package report renders scheduler snapshots as fixed-width text
// tables. The scheduler core only exposes snapshots; everything
// human-readable lives here.
package report

import (
	"fmt"
	"strings"

	"cfsched/internal/sched"
)

const tableWidth = 72

// Generator renders the process table, the scheduling trace and the
// final statistics for a batch of task snapshots.
type Generator struct {
	width int
}

func NewGenerator() *Generator {
	return &Generator{width: tableWidth}
}

func (g *Generator) header(sb *strings.Builder, title string) {
	sb.WriteString("\n")
	sb.WriteString(title)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", g.width))
	sb.WriteString("\n")
}

// ProcessTable shows the immutable batch configuration.
func (g *Generator) ProcessTable(snaps []sched.TaskSnapshot) string {
	var sb strings.Builder
	g.header(&sb, "Process Table")

	sb.WriteString(fmt.Sprintf("%-6s %12s %12s %8s %10s\n",
		"Task", "Arrival (ms)", "Burst (ms)", "Nice", "Weight"))
	sb.WriteString(strings.Repeat("-", g.width))
	sb.WriteString("\n")

	for _, t := range snaps {
		sb.WriteString(fmt.Sprintf("P%-5d %12d %12d %8d %10d\n",
			t.ID, t.ArrivalMS, t.TotalMS, t.Nice, t.Weight))
	}
	return sb.String()
}

// Trace shows per-task responsiveness and fairness accounting.
func (g *Generator) Trace(snaps []sched.TaskSnapshot) string {
	var sb strings.Builder
	g.header(&sb, "Scheduling Trace")

	sb.WriteString(fmt.Sprintf("%-6s %14s %16s %14s %8s\n",
		"Task", "Response (ms)", "Vruntime (ns)", "Interactivity", "State"))
	sb.WriteString(strings.Repeat("-", g.width))
	sb.WriteString("\n")

	for _, t := range snaps {
		sb.WriteString(fmt.Sprintf("P%-5d %14d %16d %14d %8s\n",
			t.ID, t.ResponseMS, t.Vruntime, t.Interactivity, t.State))
	}
	return sb.String()
}

// FinalStatistics shows per-task wait/turnaround plus aggregates.
// Meaningful only once every task has completed.
func (g *Generator) FinalStatistics(snaps []sched.TaskSnapshot) string {
	var sb strings.Builder
	g.header(&sb, "Final Scheduling Statistics")

	sb.WriteString(fmt.Sprintf("%-6s %12s %16s %16s %8s\n",
		"Task", "Wait (ms)", "Turnaround (ms)", "Vruntime (ns)", "Aging"))
	sb.WriteString(strings.Repeat("-", g.width))
	sb.WriteString("\n")

	var (
		totalWait, totalTurnaround int64
		maxWait                    int64
		minWait                    int64
		completed                  int
	)

	for _, t := range snaps {
		sb.WriteString(fmt.Sprintf("P%-5d %12d %16d %16d %8d\n",
			t.ID, t.WaitMS, t.TurnaroundMS, t.Vruntime, t.AgingBoost))

		if t.State != sched.StateCompleted {
			continue
		}
		if completed == 0 || t.WaitMS < minWait {
			minWait = t.WaitMS
		}
		if t.WaitMS > maxWait {
			maxWait = t.WaitMS
		}
		totalWait += t.WaitMS
		totalTurnaround += t.TurnaroundMS
		completed++
	}

	sb.WriteString(strings.Repeat("-", g.width))
	sb.WriteString("\n")
	if completed > 0 {
		sb.WriteString(fmt.Sprintf("Average wait time       : %8.2f ms\n",
			float64(totalWait)/float64(completed)))
		sb.WriteString(fmt.Sprintf("Average turnaround time : %8.2f ms\n",
			float64(totalTurnaround)/float64(completed)))
		sb.WriteString(fmt.Sprintf("Min wait time           : %8d ms\n", minWait))
		sb.WriteString(fmt.Sprintf("Max wait time           : %8d ms\n", maxWait))
	}
	sb.WriteString(fmt.Sprintf("Completed tasks         : %8d / %d\n", completed, len(snaps)))
	return sb.String()
}
