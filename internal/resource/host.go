package resource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/edgard/nlpres/internal/errs"
)

type entry struct {
	res         Resource
	params      Params
	initialized bool
	modTimes    map[string]time.Time
}

// Host owns a set of resources and drives their lifecycle. Resources are
// acquired in registration order and released in reverse order.
type Host struct {
	logger *slog.Logger

	mu      sync.Mutex
	order   []string
	entries map[string]*entry
}

// NewHost creates an empty host.
func NewHost(logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Host{
		logger:  logger.With("component", "resource_host"),
		entries: make(map[string]*entry),
	}
}

// Register adds resources to the host. Names must be unique.
func (h *Host) Register(resources ...Resource) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, r := range resources {
		if r == nil {
			return errs.NewValidationError("cannot register nil resource", nil)
		}
		name := r.Name()
		if _, exists := h.entries[name]; exists {
			return errs.NewValidationError(fmt.Sprintf("resource %q already registered", name), nil)
		}
		h.entries[name] = &entry{res: r}
		h.order = append(h.order, name)
		h.logger.Debug("Registered resource", "resource", name)
	}
	return nil
}

// Get returns the resource registered under name.
func (h *Host) Get(name string) (Resource, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	e, ok := h.entries[name]
	if !ok {
		return nil, false
	}
	return e.res, true
}

// Names returns the registered resource names in registration order.
func (h *Host) Names() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.order...)
}

// Initialized reports whether the named resource currently holds a handle.
func (h *Host) Initialized(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	e, ok := h.entries[name]
	return ok && e.initialized
}

// InitializeAll initializes every registered resource in registration order.
// params is keyed by resource name; a missing entry means empty params. On
// the first failure the resources acquired so far are released again and the
// failure is returned as an initialization error.
func (h *Host) InitializeAll(ctx context.Context, params map[string]Params) error {
	names := h.Names()
	h.logger.Info("Initializing resources", "count", len(names))

	for i, name := range names {
		if err := h.initialize(ctx, name, params[name]); err != nil {
			h.logger.Error("Resource initialization failed, releasing acquired resources",
				"resource", name, "error", err)
			if closeErr := h.teardown(names[:i]); closeErr != nil {
				h.logger.Error("Errors while releasing resources", "error", closeErr)
			}
			return err
		}
	}

	h.logger.Info("All resources initialized", "count", len(names))
	return nil
}

// Reload re-initializes a single resource. A nil params reuses the params of
// the previous initialization.
func (h *Host) Reload(ctx context.Context, name string, params Params) error {
	h.mu.Lock()
	e, ok := h.entries[name]
	if ok && params == nil {
		params = e.params
	}
	h.mu.Unlock()

	if !ok {
		return errs.NewNotFoundError(fmt.Sprintf("resource %q not registered", name))
	}

	h.logger.Info("Reloading resource", "resource", name)
	return h.initialize(ctx, name, params)
}

// TeardownAll releases every initialized resource in reverse registration
// order. All close errors are collected and returned together.
func (h *Host) TeardownAll() error {
	return h.teardown(h.Names())
}

// Stale returns the names of initialized resources whose source files were
// modified, created or removed since they were last initialized.
func (h *Host) Stale() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	var stale []string
	for _, name := range h.order {
		e := h.entries[name]
		if !e.initialized {
			continue
		}
		src, ok := e.res.(Sourced)
		if !ok {
			continue
		}
		current := statSources(src.Sources())
		if !sameModTimes(e.modTimes, current) {
			stale = append(stale, name)
		}
	}
	return stale
}

func (h *Host) initialize(ctx context.Context, name string, params Params) error {
	h.mu.Lock()
	e, ok := h.entries[name]
	h.mu.Unlock()
	if !ok {
		return errs.NewNotFoundError(fmt.Sprintf("resource %q not registered", name))
	}
	if params == nil {
		params = Params{}
	}

	start := time.Now()
	if err := e.res.Initialize(ctx, params); err != nil {
		if !errors.Is(err, errs.ErrInitialization) {
			err = errs.NewInitializationError(name, err)
		}
		return err
	}

	var modTimes map[string]time.Time
	if src, ok := e.res.(Sourced); ok {
		modTimes = statSources(src.Sources())
	}

	h.mu.Lock()
	e.params = params.Clone()
	e.initialized = true
	e.modTimes = modTimes
	h.mu.Unlock()

	attrs := []any{"resource", name, "duration", time.Since(start)}
	if s, ok := e.res.(Sizer); ok {
		attrs = append(attrs, "entries", s.Len())
	}
	h.logger.Info("Resource initialized", attrs...)
	return nil
}

func (h *Host) teardown(names []string) error {
	var result *multierror.Error

	for i := len(names) - 1; i >= 0; i-- {
		name := names[i]

		h.mu.Lock()
		e, ok := h.entries[name]
		if !ok || !e.initialized {
			h.mu.Unlock()
			continue
		}
		e.initialized = false
		h.mu.Unlock()

		if err := e.res.Close(); err != nil {
			h.logger.Error("Failed to release resource", "resource", name, "error", err)
			result = multierror.Append(result, fmt.Errorf("close %s: %w", name, err))
			continue
		}
		h.logger.Info("Resource released", "resource", name)
	}

	return result.ErrorOrNil()
}

func statSources(paths []string) map[string]time.Time {
	out := make(map[string]time.Time, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			out[p] = time.Time{}
			continue
		}
		out[p] = info.ModTime()
	}
	return out
}

func sameModTimes(a, b map[string]time.Time) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || !w.Equal(v) {
			return false
		}
	}
	return true
}
