// Package app wires the lexical resources, the maintenance scheduler and the
// refresh loop together and manages their lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"github.com/edgard/nlpres/internal/app/tasks"
	"github.com/edgard/nlpres/internal/config"
	"github.com/edgard/nlpres/internal/entities"
	"github.com/edgard/nlpres/internal/lexica"
	"github.com/edgard/nlpres/internal/resource"
	"github.com/edgard/nlpres/internal/trigger"
	"github.com/edgard/nlpres/internal/wordnet"
)

// App owns the resource host and the components that keep it fresh.
type App struct {
	logger *slog.Logger
	cfg    *config.Config
	clock  clockwork.Clock

	host      *resource.Host
	wordnet   *wordnet.Resource
	lexica    *lexica.Resource
	entities  *entities.Resource
	scheduler *Scheduler
	trigger   *trigger.Periodic
}

// Option configures an App.
type Option func(*App)

// WithClock sets the clock that paces the refresh loop.
func WithClock(clock clockwork.Clock) Option {
	return func(a *App) {
		a.clock = clock
	}
}

// New builds the application for cfg. Only enabled resources are
// registered with the host.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		logger:   logger.With("component", "app"),
		cfg:      cfg,
		clock:    clockwork.NewRealClock(),
		host:     resource.NewHost(logger),
		wordnet:  wordnet.New(logger),
		lexica:   lexica.New(logger),
		entities: entities.New(logger),
	}
	for _, opt := range opts {
		opt(a)
	}

	for _, res := range []resource.Resource{a.wordnet, a.lexica, a.entities} {
		if !cfg.Enabled(res.Name()) {
			continue
		}
		if err := a.host.Register(res); err != nil {
			return nil, fmt.Errorf("failed to register resource: %w", err)
		}
	}

	deps := tasks.TaskDeps{Logger: logger, Host: a.host}
	if cfg.Enabled(config.ResourceWordNet) {
		deps.WordNet = a.wordnet
	}

	scheduler, err := NewScheduler(logger, cfg.Scheduler.Tasks, tasks.RegisterAllTasks(deps), nil)
	if err != nil {
		return nil, err
	}
	a.scheduler = scheduler
	a.trigger = trigger.New(cfg.Scheduler.Period, trigger.WithClock(a.clock), trigger.WithLogger(logger))

	return a, nil
}

// Host returns the resource host.
func (a *App) Host() *resource.Host { return a.host }

// WordNet returns the WordNet resource.
func (a *App) WordNet() *wordnet.Resource { return a.wordnet }

// Lexica returns the lexica resource.
func (a *App) Lexica() *lexica.Resource { return a.lexica }

// Entities returns the entity dictionary resource.
func (a *App) Entities() *entities.Resource { return a.entities }

// Scheduler returns the maintenance task scheduler.
func (a *App) Scheduler() *Scheduler { return a.scheduler }

// Trigger returns the trigger pacing the refresh loop.
func (a *App) Trigger() *trigger.Periodic { return a.trigger }

// Run initializes every registered resource, then runs the scheduler and the
// refresh loop until ctx is canceled. Resources are released before Run
// returns.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("Starting application...")

	if err := a.host.InitializeAll(ctx, a.cfg.ResourceParams()); err != nil {
		if stopErr := a.scheduler.Stop(); stopErr != nil {
			a.logger.Error("Error stopping scheduler", "error", stopErr)
		}
		return fmt.Errorf("failed to initialize resources: %w", err)
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := a.scheduler.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}

		<-gCtx.Done()
		a.logger.Info("Shutdown signal received, stopping scheduler...")

		if err := a.scheduler.Stop(); err != nil {
			a.logger.Error("Error stopping scheduler", "error", err)
		}
		return nil
	})

	g.Go(func() error {
		return a.trigger.Run(gCtx, func(ctx context.Context) error {
			a.Refresh(ctx)
			return nil
		})
	})

	a.logger.Info("Application running. Waiting for shutdown signal or error...")
	err := g.Wait()

	if teardownErr := a.host.TeardownAll(); teardownErr != nil {
		a.logger.Error("Errors while releasing resources", "error", teardownErr)
		if err == nil {
			err = teardownErr
		}
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		a.logger.Error("Application stopped due to error", "error", err)
		return err
	}

	a.logger.Info("Application stopped gracefully.")
	return nil
}

// Refresh reloads every resource whose source files changed on disk and
// returns the names that were reloaded. A failed reload keeps the previous
// handle in service.
func (a *App) Refresh(ctx context.Context) []string {
	var reloaded []string
	for _, name := range a.host.Stale() {
		if err := a.host.Reload(ctx, name, nil); err != nil {
			a.logger.Error("Failed to reload resource, keeping previous data", "resource", name, "error", err)
			continue
		}
		reloaded = append(reloaded, name)
	}
	return reloaded
}
