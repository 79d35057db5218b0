// Package supersense assigns WordNet supersenses (lexicographer file names
// such as noun.person or verb.motion) to words.
package supersense

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/edgard/nlpres/internal/database"
	"github.com/edgard/nlpres/internal/wordnet"
)

var (
	// ErrNoSense is returned when WordNet has no sense for the word.
	ErrNoSense = errors.New("no sense found")
	// ErrNotInitialized is returned when the dictionary is not available.
	ErrNotInitialized = errors.New("wordnet dictionary not initialized")
)

// DictionarySource hands out the current dictionary handle.
// *wordnet.Resource satisfies it.
type DictionarySource interface {
	Dictionary() wordnet.Dictionary
}

// Token is a word to tag. POS is a Penn Treebank tag; Lemma falls back to
// Text when empty.
type Token struct {
	Text  string
	Lemma string
	POS   string
}

// Tagger looks up supersenses through a WordNet dictionary. The dictionary
// is fetched from the source on every call so reloads are picked up.
type Tagger struct {
	source DictionarySource
}

// NewTagger creates a tagger over source.
func NewTagger(source DictionarySource) *Tagger {
	return &Tagger{source: source}
}

// Lookup returns the supersense of the most frequent sense of lemma. An
// empty pos considers every part of speech.
func (t *Tagger) Lookup(ctx context.Context, lemma, pos string) (string, error) {
	dict := t.source.Dictionary()
	if dict == nil {
		return "", ErrNotInitialized
	}

	senses, err := dict.Senses(ctx, lemma, pos)
	if err != nil {
		return "", fmt.Errorf("supersense lookup for %q: %w", lemma, err)
	}

	best, ok := mostFrequent(senses)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoSense, lemma)
	}
	return best.Lexname, nil
}

// Tag returns one supersense per token. Tokens whose POS has no WordNet
// counterpart, or that have no sense, get an empty tag.
func (t *Tagger) Tag(ctx context.Context, tokens []Token) ([]string, error) {
	tags := make([]string, len(tokens))
	for i, tok := range tokens {
		pos, ok := PennToWordNet(tok.POS)
		if !ok {
			continue
		}
		lemma := tok.Lemma
		if lemma == "" {
			lemma = tok.Text
		}
		if strings.TrimSpace(lemma) == "" {
			continue
		}

		tag, err := t.Lookup(ctx, lemma, pos)
		switch {
		case errors.Is(err, ErrNoSense):
			continue
		case err != nil:
			return nil, err
		}
		tags[i] = tag
	}
	return tags, nil
}

// PennToWordNet maps a Penn Treebank tag to a WordNet part of speech.
func PennToWordNet(tag string) (string, bool) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	switch {
	case strings.HasPrefix(tag, "NN"):
		return database.PosNoun, true
	case strings.HasPrefix(tag, "VB"):
		return database.PosVerb, true
	case strings.HasPrefix(tag, "JJ"):
		return database.PosAdjective, true
	case strings.HasPrefix(tag, "RB"):
		return database.PosAdverb, true
	}
	return "", false
}

// mostFrequent picks the sense with the highest tag count, breaking ties on
// the lower sense number.
func mostFrequent(senses []database.SenseInfo) (database.SenseInfo, bool) {
	if len(senses) == 0 {
		return database.SenseInfo{}, false
	}
	best := senses[0]
	for _, s := range senses[1:] {
		if s.TagCount > best.TagCount ||
			(s.TagCount == best.TagCount && s.SenseNumber < best.SenseNumber) {
			best = s
		}
	}
	return best, true
}
