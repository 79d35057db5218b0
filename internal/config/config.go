// Package config loads, defaults and validates the nlpres configuration.
// Values come from an optional YAML file and NLPRES_* environment variables
// layered over built-in defaults.
package config

import (
	"time"

	"github.com/edgard/nlpres/internal/resource"
)

// Config is the complete application configuration.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
	Resources ResourcesConfig `mapstructure:"resources"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
	JSON  bool   `mapstructure:"json"`
}

// SchedulerConfig holds the refresh period and the scheduled tasks.
type SchedulerConfig struct {
	// Period is the minimum time between two resource refresh checks.
	// Bare integers are read as seconds.
	Period time.Duration         `mapstructure:"period" validate:"min=1s"`
	Tasks  map[string]TaskConfig `mapstructure:"tasks"  validate:"dive"`
}

// TaskConfig enables a scheduled task and sets its interval.
type TaskConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Every   time.Duration `mapstructure:"every"`
}

// ResourcesConfig configures each lexical resource.
type ResourcesConfig struct {
	WordNet  WordNetConfig  `mapstructure:"wordnet"`
	Lexica   LexicaConfig   `mapstructure:"lexica"`
	Entities EntitiesConfig `mapstructure:"entities"`
}

// WordNetConfig points at the WordNet SQLite database.
type WordNetConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// LexicaConfig points at the cluster and embedding files.
type LexicaConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Clusters   string `mapstructure:"clusters"`
	Embeddings string `mapstructure:"embeddings"`
	Lowercase  bool   `mapstructure:"lowercase"`
}

// EntitiesConfig points at the entity dictionary.
type EntitiesConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Path      string `mapstructure:"path" validate:"required_if=Enabled true"`
	Lowercase bool   `mapstructure:"lowercase"`
}

// ResourceParams converts the enabled resource sections into host params,
// keyed by resource name.
func (c *Config) ResourceParams() map[string]resource.Params {
	params := make(map[string]resource.Params)
	for _, name := range []string{ResourceWordNet, ResourceLexica, ResourceEntities} {
		if c.Enabled(name) {
			params[name], _ = c.Params(name)
		}
	}
	return params
}

// Params returns the params of the named resource whether or not it is
// enabled. The second result is false for unknown names.
func (c *Config) Params(name string) (resource.Params, bool) {
	switch name {
	case ResourceWordNet:
		return resource.Params{"path": c.Resources.WordNet.Path}, true
	case ResourceLexica:
		lx := c.Resources.Lexica
		p := resource.Params{"lowercase": lx.Lowercase}
		if lx.Clusters != "" {
			p["clusters"] = lx.Clusters
		}
		if lx.Embeddings != "" {
			p["embeddings"] = lx.Embeddings
		}
		return p, true
	case ResourceEntities:
		en := c.Resources.Entities
		return resource.Params{"path": en.Path, "lowercase": en.Lowercase}, true
	}
	return nil, false
}

// Enabled reports whether the named resource is enabled.
func (c *Config) Enabled(name string) bool {
	switch name {
	case ResourceWordNet:
		return c.Resources.WordNet.Enabled
	case ResourceLexica:
		return c.Resources.Lexica.Enabled
	case ResourceEntities:
		return c.Resources.Entities.Enabled
	}
	return false
}
