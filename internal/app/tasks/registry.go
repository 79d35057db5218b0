package tasks

import (
	"context"
)

// Task names, matching the keys of the scheduler.tasks config section.
const (
	SQLMaintenance = "sql_maintenance"
	ResourceStats  = "resource_stats"
)

// ScheduledTaskFunc defines the signature of every scheduled task. The
// context provided by the scheduler should be respected for cancellation.
type ScheduledTaskFunc func(ctx context.Context) error

// RegisterAllTasks returns every known task keyed by its config name.
func RegisterAllTasks(deps TaskDeps) map[string]ScheduledTaskFunc {
	tasks := map[string]ScheduledTaskFunc{
		ResourceStats: newResourceStatsTask(deps),
	}
	if deps.WordNet != nil {
		tasks[SQLMaintenance] = newSQLMaintenanceTask(deps)
	}

	deps.Logger.Info("Initialized scheduled tasks", "count", len(tasks))
	return tasks
}
