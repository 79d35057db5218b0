package tasks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/nlpres/internal/app/tasks"
	"github.com/edgard/nlpres/internal/database"
	"github.com/edgard/nlpres/internal/logger"
	"github.com/edgard/nlpres/internal/resource"
)

type sizedResource struct {
	name string
	size int
}

func (r *sizedResource) Name() string { return r.name }

func (r *sizedResource) Initialize(context.Context, resource.Params) error { return nil }

func (r *sizedResource) Close() error { return nil }

func (r *sizedResource) Len() int { return r.size }

type maintenanceStore struct {
	database.Store
	calls int
	err   error
}

func (s *maintenanceStore) RunSQLMaintenance(context.Context) error {
	s.calls++
	return s.err
}

type storeSource struct {
	store database.Store
}

func (s storeSource) Store() database.Store { return s.store }

func TestRegisterAllTasks(t *testing.T) {
	t.Parallel()

	host := resource.NewHost(nil)

	withoutWordNet := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: logger.Discard(), Host: host})
	assert.Contains(t, withoutWordNet, tasks.ResourceStats)
	assert.NotContains(t, withoutWordNet, tasks.SQLMaintenance)

	withWordNet := tasks.RegisterAllTasks(tasks.TaskDeps{
		Logger:  logger.Discard(),
		Host:    host,
		WordNet: storeSource{},
	})
	assert.Contains(t, withWordNet, tasks.SQLMaintenance)
}

func TestStatsReportsInitializedResources(t *testing.T) {
	t.Parallel()

	host := resource.NewHost(nil)
	require.NoError(t, host.Register(
		&sizedResource{name: "lexica", size: 42},
		&sizedResource{name: "entities", size: 7},
	))
	assert.Empty(t, tasks.Stats(host))

	require.NoError(t, host.InitializeAll(context.Background(), nil))
	assert.Equal(t, map[string]int{"lexica": 42, "entities": 7}, tasks.Stats(host))

	run := tasks.RegisterAllTasks(tasks.TaskDeps{Logger: logger.Discard(), Host: host})[tasks.ResourceStats]
	assert.NoError(t, run(context.Background()))
}

func TestSQLMaintenanceTask(t *testing.T) {
	t.Parallel()

	host := resource.NewHost(nil)

	t.Run("skips when database is closed", func(t *testing.T) {
		t.Parallel()

		run := tasks.RegisterAllTasks(tasks.TaskDeps{
			Logger: logger.Discard(), Host: host, WordNet: storeSource{},
		})[tasks.SQLMaintenance]
		assert.NoError(t, run(context.Background()))
	})

	t.Run("runs maintenance", func(t *testing.T) {
		t.Parallel()

		store := &maintenanceStore{}
		run := tasks.RegisterAllTasks(tasks.TaskDeps{
			Logger: logger.Discard(), Host: host, WordNet: storeSource{store: store},
		})[tasks.SQLMaintenance]
		require.NoError(t, run(context.Background()))
		assert.Equal(t, 1, store.calls)
	})

	t.Run("reports failure", func(t *testing.T) {
		t.Parallel()

		store := &maintenanceStore{err: errors.New("database is locked")}
		run := tasks.RegisterAllTasks(tasks.TaskDeps{
			Logger: logger.Discard(), Host: host, WordNet: storeSource{store: store},
		})[tasks.SQLMaintenance]
		err := run(context.Background())
		require.Error(t, err)
		assert.ErrorIs(t, err, store.err)
	})
}
