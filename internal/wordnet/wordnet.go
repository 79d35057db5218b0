// Package wordnet exposes a WordNet SQLite database as a host resource.
package wordnet

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/jmoiron/sqlx"

	"github.com/edgard/nlpres/internal/database"
	"github.com/edgard/nlpres/internal/errs"
	"github.com/edgard/nlpres/internal/resource"
)

// Name is the resource name used for registration and configuration.
const Name = "wordnet"

// Dictionary answers WordNet lookups.
type Dictionary interface {
	// Senses returns the senses of lemma, optionally restricted to pos.
	Senses(ctx context.Context, lemma, pos string) ([]database.SenseInfo, error)
	// Synset returns the synset with the given ID, or nil if there is none.
	Synset(ctx context.Context, id string) (*database.Synset, error)
	// Synonyms returns the other lemmas sharing a synset with lemma.
	Synonyms(ctx context.Context, lemma, pos string) ([]string, error)
}

// Resource wraps the WordNet database handle.
type Resource struct {
	logger *slog.Logger

	mu     sync.RWMutex
	db     *sqlx.DB
	dict   *dictionary
	path   string
	senses int
}

var (
	_ resource.Resource = (*Resource)(nil)
	_ resource.Sizer    = (*Resource)(nil)
	_ resource.Sourced  = (*Resource)(nil)
)

// New creates an uninitialized WordNet resource.
func New(logger *slog.Logger) *Resource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resource{logger: logger.With("component", Name)}
}

// Name implements resource.Resource.
func (r *Resource) Name() string { return Name }

// Initialize opens the database named by the "path" parameter. An existing
// handle is replaced only after the new one opened successfully.
func (r *Resource) Initialize(ctx context.Context, params resource.Params) error {
	path := params.String("path", "")
	if path == "" {
		return errs.NewInitializationError(Name, errs.NewValidationError("missing path parameter", nil))
	}
	if _, err := os.Stat(path); err != nil {
		return errs.NewInitializationError(Name, err)
	}

	db, err := database.Open(path)
	if err != nil {
		return errs.NewInitializationError(Name, err)
	}
	store := database.NewStore(db, r.logger)

	if err := store.Ping(ctx); err != nil {
		_ = database.Close(db)
		return errs.NewInitializationError(Name, err)
	}
	stats, err := store.Stats(ctx)
	if err != nil {
		_ = database.Close(db)
		return errs.NewInitializationError(Name, err)
	}

	r.mu.Lock()
	old := r.db
	r.db = db
	r.dict = &dictionary{store: store}
	r.path = path
	r.senses = stats.Senses
	r.mu.Unlock()

	if old != nil {
		if err := database.Close(old); err != nil {
			r.logger.Warn("Failed to close replaced database handle", "error", err)
		}
	}

	r.logger.Info("WordNet database opened", "path", path, "synsets", stats.Synsets, "senses", stats.Senses)
	return nil
}

// Close releases the database handle. It is safe to call more than once.
func (r *Resource) Close() error {
	r.mu.Lock()
	db := r.db
	r.db, r.dict, r.senses = nil, nil, 0
	r.mu.Unlock()

	if db == nil {
		return nil
	}
	if err := database.Close(db); err != nil {
		return fmt.Errorf("failed to close wordnet database: %w", err)
	}
	return nil
}

// Dictionary returns the lookup handle, or nil before Initialize.
func (r *Resource) Dictionary() Dictionary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.dict == nil {
		return nil
	}
	return r.dict
}

// Store returns the underlying store, or nil before Initialize.
func (r *Resource) Store() database.Store {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.dict == nil {
		return nil
	}
	return r.dict.store
}

// Len returns the number of senses in the open database.
func (r *Resource) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.senses
}

// Sources returns the database path.
func (r *Resource) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.path == "" {
		return nil
	}
	return []string{r.path}
}

type dictionary struct {
	store database.Store
}

func (d *dictionary) Senses(ctx context.Context, lemma, pos string) ([]database.SenseInfo, error) {
	return d.store.LookupSenses(ctx, lemma, pos)
}

func (d *dictionary) Synset(ctx context.Context, id string) (*database.Synset, error) {
	return d.store.LookupSynset(ctx, id)
}

func (d *dictionary) Synonyms(ctx context.Context, lemma, pos string) ([]string, error) {
	senses, err := d.store.LookupSenses(ctx, lemma, pos)
	if err != nil {
		return nil, err
	}

	self := database.NormalizeLemma(lemma)
	seen := map[string]struct{}{self: {}}
	var out []string
	for _, s := range senses {
		lemmas, err := d.store.Lemmas(ctx, s.SynsetID)
		if err != nil {
			return nil, err
		}
		for _, l := range lemmas {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			out = append(out, l)
		}
	}
	return out, nil
}
