// Package entities provides a named-entity dictionary (gazetteer) resource
// with longest-match phrase lookup over token sequences.
package entities

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/edgard/nlpres/internal/errs"
	"github.com/edgard/nlpres/internal/resource"
)

// Name is the resource name used for registration and configuration.
const Name = "entities"

// Span is a dictionary match covering tokens[Start:End].
type Span struct {
	Start int
	End   int
	Types []string
}

type dictionary struct {
	root      *node
	phrases   int
	lowercase bool
	path      string
}

// Resource holds the entity dictionary.
type Resource struct {
	logger *slog.Logger

	mu   sync.RWMutex
	dict *dictionary
}

var (
	_ resource.Resource = (*Resource)(nil)
	_ resource.Sizer    = (*Resource)(nil)
	_ resource.Sourced  = (*Resource)(nil)
)

// New creates an uninitialized entity dictionary.
func New(logger *slog.Logger) *Resource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resource{logger: logger.With("component", Name)}
}

// Name implements resource.Resource.
func (r *Resource) Name() string { return Name }

// Initialize loads the dictionary named by the "path" parameter.
// "lowercase" (default true) folds phrases and queries to lower case.
func (r *Resource) Initialize(_ context.Context, params resource.Params) error {
	path := params.String("path", "")
	if path == "" {
		return errs.NewInitializationError(Name, errs.NewValidationError("missing path parameter", nil))
	}

	f, err := os.Open(path)
	if err != nil {
		return errs.NewInitializationError(Name, err)
	}
	defer f.Close()

	dict, err := load(f, params.Bool("lowercase", true))
	if err != nil {
		return errs.NewInitializationError(Name, fmt.Errorf("%s: %w", path, err))
	}
	dict.path = path

	r.mu.Lock()
	r.dict = dict
	r.mu.Unlock()

	r.logger.Info("Entity dictionary loaded", "path", path, "phrases", dict.phrases)
	return nil
}

func load(rd io.Reader, lowercase bool) (*dictionary, error) {
	dict := &dictionary{root: newNode(), lowercase: lowercase}
	sc := bufio.NewScanner(rd)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		typ, phrase, ok := strings.Cut(line, "\t")
		typ = strings.TrimSpace(typ)
		tokens := dict.tokenize(phrase)
		if !ok || typ == "" || len(tokens) == 0 {
			return nil, fmt.Errorf("line %d: expected TYPE<TAB>phrase, got %q", lineNo, line)
		}
		if dict.root.insert(tokens, typ) {
			dict.phrases++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return dict, nil
}

// Close drops the dictionary. It is safe to call more than once.
func (r *Resource) Close() error {
	r.mu.Lock()
	r.dict = nil
	r.mu.Unlock()
	return nil
}

// Len returns the number of distinct phrases.
func (r *Resource) Len() int {
	d := r.current()
	if d == nil {
		return 0
	}
	return d.phrases
}

// Sources returns the dictionary path.
func (r *Resource) Sources() []string {
	d := r.current()
	if d == nil {
		return nil
	}
	return []string{d.path}
}

// Lookup returns the entity types of phrase, sorted, or nil.
func (r *Resource) Lookup(phrase string) []string {
	d := r.current()
	if d == nil {
		return nil
	}
	types := d.root.find(d.tokenize(phrase))
	return append([]string(nil), types...)
}

// Match scans tokens left to right and returns the longest dictionary
// phrase at each position; matches do not overlap.
func (r *Resource) Match(tokens []string) []Span {
	d := r.current()
	if d == nil {
		return nil
	}

	keys := make([]string, len(tokens))
	for i, tok := range tokens {
		keys[i] = d.fold(tok)
	}

	var spans []Span
	for i := 0; i < len(keys); {
		n, types := d.root.longest(keys[i:])
		if n == 0 {
			i++
			continue
		}
		spans = append(spans, Span{Start: i, End: i + n, Types: append([]string(nil), types...)})
		i += n
	}
	return spans
}

// MatchText whitespace-tokenizes text and matches it.
func (r *Resource) MatchText(text string) ([]string, []Span) {
	tokens := strings.Fields(text)
	return tokens, r.Match(tokens)
}

func (r *Resource) current() *dictionary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.dict
}

func (d *dictionary) fold(s string) string {
	if d.lowercase {
		return strings.ToLower(s)
	}
	return s
}

func (d *dictionary) tokenize(phrase string) []string {
	tokens := strings.Fields(phrase)
	for i, t := range tokens {
		tokens[i] = d.fold(t)
	}
	return tokens
}
