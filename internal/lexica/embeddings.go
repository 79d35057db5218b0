package lexica

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

// Neighbor is a word and its cosine similarity to a query word.
type Neighbor struct {
	Word       string
	Similarity float64
}

// Embeddings holds word vectors of a single dimensionality.
type Embeddings struct {
	dim     int
	index   map[string]int
	words   []string
	vectors [][]float64
	norms   []float64
}

// Dim returns the vector dimensionality.
func (e *Embeddings) Dim() int { return e.dim }

// Len returns the vocabulary size.
func (e *Embeddings) Len() int { return len(e.words) }

// Vector returns a copy of the vector of word.
func (e *Embeddings) Vector(word string) ([]float64, bool) {
	i, ok := e.index[word]
	if !ok {
		return nil, false
	}
	out := make([]float64, e.dim)
	copy(out, e.vectors[i])
	return out, true
}

// Similarity returns the cosine similarity of two words. Zero vectors have
// similarity 0 with everything.
func (e *Embeddings) Similarity(a, b string) (float64, bool) {
	i, ok := e.index[a]
	if !ok {
		return 0, false
	}
	j, ok := e.index[b]
	if !ok {
		return 0, false
	}
	return e.cosine(i, j), true
}

// Nearest returns the k words most similar to word, excluding word itself,
// best first.
func (e *Embeddings) Nearest(word string, k int) ([]Neighbor, bool) {
	i, ok := e.index[word]
	if !ok {
		return nil, false
	}
	if k <= 0 {
		return nil, true
	}

	neighbors := make([]Neighbor, 0, len(e.words)-1)
	for j := range e.words {
		if j == i {
			continue
		}
		neighbors = append(neighbors, Neighbor{Word: e.words[j], Similarity: e.cosine(i, j)})
	}
	sort.SliceStable(neighbors, func(a, b int) bool {
		return neighbors[a].Similarity > neighbors[b].Similarity
	})
	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, true
}

func (e *Embeddings) cosine(i, j int) float64 {
	if e.norms[i] == 0 || e.norms[j] == 0 {
		return 0
	}
	return floats.Dot(e.vectors[i], e.vectors[j]) / (e.norms[i] * e.norms[j])
}

// loadEmbeddings reads vectors in word2vec text format: an optional
// "count dim" header followed by "word v1 ... vd" rows.
func loadEmbeddings(r io.Reader, lowercase bool) (*Embeddings, error) {
	e := &Embeddings{index: make(map[string]int)}
	sc := newScanner(r)

	lineNo := 0
	first := true
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		// Only the first non-empty line may be a header.
		isFirst := first
		first = false
		if isFirst && len(fields) == 2 && isHeader(fields) {
			dim, _ := strconv.Atoi(fields[1])
			e.dim = dim
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: vector for %q is empty", lineNo, fields[0])
		}

		word := fields[0]
		if lowercase {
			word = strings.ToLower(word)
		}
		if e.dim == 0 {
			e.dim = len(fields) - 1
		}
		if len(fields)-1 != e.dim {
			return nil, fmt.Errorf("line %d: %q has %d dimensions, expected %d", lineNo, word, len(fields)-1, e.dim)
		}

		vec := make([]float64, e.dim)
		for d, raw := range fields[1:] {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid component %q: %w", lineNo, raw, err)
			}
			vec[d] = v
		}

		if _, dup := e.index[word]; dup {
			continue
		}
		e.index[word] = len(e.words)
		e.words = append(e.words, word)
		e.vectors = append(e.vectors, vec)
		e.norms = append(e.norms, floats.Norm(vec, 2))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
	}
	return e, nil
}

func isHeader(fields []string) bool {
	for _, f := range fields {
		if _, err := strconv.Atoi(f); err != nil {
			return false
		}
	}
	return true
}
