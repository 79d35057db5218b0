// Package lexica loads distributional-semantics lexica, Brown word clusters
// and word embeddings, as a host resource.
package lexica

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/edgard/nlpres/internal/errs"
	"github.com/edgard/nlpres/internal/resource"
)

// Name is the resource name used for registration and configuration.
const Name = "lexica"

type lexicon struct {
	clusters   map[string]string
	embeddings *Embeddings
	lowercase  bool
	sources    []string
}

// Resource holds the loaded clusters and embeddings.
type Resource struct {
	logger *slog.Logger

	mu  sync.RWMutex
	lex *lexicon
}

var (
	_ resource.Resource = (*Resource)(nil)
	_ resource.Sizer    = (*Resource)(nil)
	_ resource.Sourced  = (*Resource)(nil)
)

// New creates an uninitialized lexica resource.
func New(logger *slog.Logger) *Resource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resource{logger: logger.With("component", Name)}
}

// Name implements resource.Resource.
func (r *Resource) Name() string { return Name }

// Initialize loads the files named by the "clusters" and "embeddings"
// parameters; at least one is required. "lowercase" (default true) folds
// words to lower case on load and lookup.
func (r *Resource) Initialize(_ context.Context, params resource.Params) error {
	clustersPath := params.String("clusters", "")
	embeddingsPath := params.String("embeddings", "")
	if clustersPath == "" && embeddingsPath == "" {
		return errs.NewInitializationError(Name,
			errs.NewValidationError("at least one of clusters or embeddings is required", nil))
	}

	lex := &lexicon{lowercase: params.Bool("lowercase", true)}

	if clustersPath != "" {
		clusters, err := loadFile(clustersPath, func(rd io.Reader) (map[string]string, error) {
			return loadClusters(rd, lex.lowercase)
		})
		if err != nil {
			return errs.NewInitializationError(Name, err)
		}
		lex.clusters = clusters
		lex.sources = append(lex.sources, clustersPath)
	}

	if embeddingsPath != "" {
		emb, err := loadFile(embeddingsPath, func(rd io.Reader) (*Embeddings, error) {
			return loadEmbeddings(rd, lex.lowercase)
		})
		if err != nil {
			return errs.NewInitializationError(Name, err)
		}
		lex.embeddings = emb
		lex.sources = append(lex.sources, embeddingsPath)
	}

	r.mu.Lock()
	r.lex = lex
	r.mu.Unlock()

	attrs := []any{"clusters", len(lex.clusters)}
	if lex.embeddings != nil {
		attrs = append(attrs, "embeddings", lex.embeddings.Len(), "dim", lex.embeddings.Dim())
	}
	r.logger.Info("Lexica loaded", attrs...)
	return nil
}

func loadFile[T any](path string, load func(io.Reader) (T, error)) (T, error) {
	var zero T

	f, err := openFile(path)
	if err != nil {
		return zero, err
	}
	defer f.Close()

	v, err := load(f)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// Close drops the loaded lexica. It is safe to call more than once.
func (r *Resource) Close() error {
	r.mu.Lock()
	r.lex = nil
	r.mu.Unlock()
	return nil
}

// Loaded reports whether the resource holds lexica.
func (r *Resource) Loaded() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lex != nil
}

// Len returns the number of distinct words across clusters and embeddings.
func (r *Resource) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.lex == nil {
		return 0
	}
	n := len(r.lex.clusters)
	if r.lex.embeddings != nil {
		for _, w := range r.lex.embeddings.words {
			if _, ok := r.lex.clusters[w]; !ok {
				n++
			}
		}
	}
	return n
}

// Sources returns the loaded file paths.
func (r *Resource) Sources() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.lex == nil {
		return nil
	}
	return append([]string(nil), r.lex.sources...)
}

// Cluster returns the Brown cluster bitstring of word.
func (r *Resource) Cluster(word string) (string, bool) {
	lex := r.current()
	if lex == nil || lex.clusters == nil {
		return "", false
	}
	path, ok := lex.clusters[lex.key(word)]
	return path, ok
}

// ClusterPrefix returns the first n bits of the cluster of word, or the
// whole bitstring when it is shorter.
func (r *Resource) ClusterPrefix(word string, n int) (string, bool) {
	path, ok := r.Cluster(word)
	if !ok {
		return "", false
	}
	if n >= 0 && n < len(path) {
		path = path[:n]
	}
	return path, true
}

// Embeddings returns the loaded embeddings, or nil.
func (r *Resource) Embeddings() *Embeddings {
	lex := r.current()
	if lex == nil {
		return nil
	}
	return lex.embeddings
}

// Vector returns the embedding of word.
func (r *Resource) Vector(word string) ([]float64, bool) {
	lex := r.current()
	if lex == nil || lex.embeddings == nil {
		return nil, false
	}
	return lex.embeddings.Vector(lex.key(word))
}

// Similarity returns the cosine similarity of a and b.
func (r *Resource) Similarity(a, b string) (float64, bool) {
	lex := r.current()
	if lex == nil || lex.embeddings == nil {
		return 0, false
	}
	return lex.embeddings.Similarity(lex.key(a), lex.key(b))
}

// Nearest returns the k nearest neighbours of word.
func (r *Resource) Nearest(word string, k int) ([]Neighbor, bool) {
	lex := r.current()
	if lex == nil || lex.embeddings == nil {
		return nil, false
	}
	return lex.embeddings.Nearest(lex.key(word), k)
}

func (r *Resource) current() *lexicon {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lex
}

func (l *lexicon) key(word string) string {
	if l.lowercase {
		return strings.ToLower(word)
	}
	return word
}
