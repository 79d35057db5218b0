package tasks

import (
	"context"

	"github.com/edgard/nlpres/internal/resource"
)

// Stats returns the entry count of every initialized resource that reports
// one.
func Stats(host *resource.Host) map[string]int {
	stats := make(map[string]int)
	for _, name := range host.Names() {
		if !host.Initialized(name) {
			continue
		}
		res, _ := host.Get(name)
		if s, ok := res.(resource.Sizer); ok {
			stats[name] = s.Len()
		}
	}
	return stats
}

func newResourceStatsTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", ResourceStats)

	return func(ctx context.Context) error {
		stats := Stats(deps.Host)
		if len(stats) == 0 {
			log.InfoContext(ctx, "No resources loaded")
			return nil
		}
		for name, entries := range stats {
			log.InfoContext(ctx, "Resource loaded", "resource", name, "entries", entries)
		}
		return nil
	}
}
