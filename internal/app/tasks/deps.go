// Package tasks implements the scheduled maintenance tasks of the resource
// host.
package tasks

import (
	"log/slog"

	"github.com/edgard/nlpres/internal/database"
	"github.com/edgard/nlpres/internal/resource"
)

// StoreSource hands out the WordNet store, or nil while the database is not
// open.
type StoreSource interface {
	Store() database.Store
}

// TaskDeps contains the dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger  *slog.Logger
	Host    *resource.Host
	WordNet StoreSource
}
