package config

import "time"

// Resource names as used in the resources section.
const (
	ResourceWordNet  = "wordnet"
	ResourceLexica   = "lexica"
	ResourceEntities = "entities"
)

// Scheduled task names as used in the scheduler.tasks section.
const (
	TaskSQLMaintenance = "sql_maintenance"
	TaskResourceStats  = "resource_stats"
)

// Default values for configuration
const (
	DefaultLogLevel = "info"
	DefaultLogJSON  = false

	// DefaultPeriod is the refresh period, 3600 seconds.
	DefaultPeriod = 3600 * time.Second

	DefaultSQLMaintenanceEvery = 24 * time.Hour
	DefaultResourceStatsEvery  = 15 * time.Minute

	DefaultWordNetPath = "wordnet.db"
	DefaultLowercase   = true
)

var defaults = map[string]any{
	"log.level": DefaultLogLevel,
	"log.json":  DefaultLogJSON,

	"scheduler.period": DefaultPeriod,

	"scheduler.tasks." + TaskSQLMaintenance + ".enabled": true,
	"scheduler.tasks." + TaskSQLMaintenance + ".every":   DefaultSQLMaintenanceEvery,
	"scheduler.tasks." + TaskResourceStats + ".enabled":  true,
	"scheduler.tasks." + TaskResourceStats + ".every":    DefaultResourceStatsEvery,

	"resources.wordnet.enabled": true,
	"resources.wordnet.path":    DefaultWordNetPath,

	"resources.lexica.enabled":    false,
	"resources.lexica.clusters":   "",
	"resources.lexica.embeddings": "",
	"resources.lexica.lowercase":  DefaultLowercase,

	"resources.entities.enabled":   false,
	"resources.entities.path":      "",
	"resources.entities.lowercase": DefaultLowercase,
}
