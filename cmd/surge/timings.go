package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"zplforge/internal/observ"
)

// timingsRequested reports whether the root --timings flag was set.
func timingsRequested(cmd *cobra.Command) bool {
	on, _ := cmd.Root().PersistentFlags().GetBool("timings")
	return on
}

// printTimings aggregates per-file phase reports (one per parsed/validated
// or parsed/formatted file) and prints total time spent in each phase
// across the whole batch.
func printTimings(w io.Writer, reports []observ.Report) {
	totalByPhase := make(map[string]float64)
	var order []string
	var total float64
	for _, r := range reports {
		total += r.TotalMS
		for _, p := range r.Phases {
			if _, seen := totalByPhase[p.Name]; !seen {
				order = append(order, p.Name)
			}
			totalByPhase[p.Name] += p.DurationMS
		}
	}

	fmt.Fprintln(w, "timings:")
	for _, name := range order {
		fmt.Fprintf(w, "  %-20s %7.2f ms\n", name, totalByPhase[name])
	}
	fmt.Fprintf(w, "  %-20s %7.2f ms\n", "total", total)
}
