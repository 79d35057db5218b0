package entities_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/nlpres/internal/entities"
	"github.com/edgard/nlpres/internal/errs"
	"github.com/edgard/nlpres/internal/resource"
)

var fixture = filepath.Join("testdata", "entities.tsv")

func loadFixture(t *testing.T, params resource.Params) *entities.Resource {
	t.Helper()
	r := entities.New(nil)
	p := resource.Params{"path": fixture}
	for k, v := range params {
		p[k] = v
	}
	require.NoError(t, r.Initialize(context.Background(), p))
	return r
}

func TestLookup(t *testing.T) {
	t.Parallel()

	r := loadFixture(t, nil)
	assert.Equal(t, entities.Name, r.Name())
	assert.Equal(t, 6, r.Len())
	assert.Equal(t, []string{fixture}, r.Sources())

	tests := []struct {
		phrase string
		want   []string
	}{
		{phrase: "New York", want: []string{"GPE", "LOC"}},
		{phrase: "new   york", want: []string{"GPE", "LOC"}},
		{phrase: "NEW YORK TIMES", want: []string{"ORG"}},
		{phrase: "apple", want: []string{"ORG", "PRODUCT"}},
		{phrase: "New", want: nil},
		{phrase: "", want: nil},
		{phrase: "Paris", want: nil},
	}
	for _, tt := range tests {
		got := r.Lookup(tt.phrase)
		if tt.want == nil {
			assert.Empty(t, got, tt.phrase)
			continue
		}
		assert.Equal(t, tt.want, got, tt.phrase)
	}
}

func TestLookupCaseSensitive(t *testing.T) {
	t.Parallel()

	r := loadFixture(t, resource.Params{"lowercase": false})
	assert.Equal(t, 7, r.Len())
	assert.Equal(t, []string{"ORG"}, r.Lookup("Apple"))
	assert.Equal(t, []string{"PRODUCT"}, r.Lookup("apple"))
	assert.Empty(t, r.Lookup("new york"))
}

func TestMatch(t *testing.T) {
	t.Parallel()

	r := loadFixture(t, nil)

	tokens, spans := r.MatchText("I love New York City and the New York Times but not York")
	require.Len(t, tokens, 13)
	assert.Equal(t, []entities.Span{
		{Start: 2, End: 5, Types: []string{"LOC"}},
		{Start: 7, End: 10, Types: []string{"ORG"}},
		{Start: 12, End: 13, Types: []string{"LOC"}},
	}, spans)

	spans = r.Match([]string{"New", "York", "."})
	assert.Equal(t, []entities.Span{{Start: 0, End: 2, Types: []string{"GPE", "LOC"}}}, spans)

	assert.Empty(t, r.Match([]string{"New", "Jersey"}))
	assert.Empty(t, r.Match(nil))

	// Returned types are copies.
	spans[0].Types[0] = "XXX"
	assert.Equal(t, []string{"GPE", "LOC"}, r.Lookup("new york"))
}

func TestInitializeErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	malformed := filepath.Join(dir, "bad.tsv")
	require.NoError(t, os.WriteFile(malformed, []byte("LOC\tParis\nno tab here\n"), 0o600))
	emptyType := filepath.Join(dir, "empty.tsv")
	require.NoError(t, os.WriteFile(emptyType, []byte("\tParis\n"), 0o600))

	tests := []struct {
		name    string
		params  resource.Params
		wantErr string
	}{
		{name: "missing path", params: resource.Params{}, wantErr: "missing path"},
		{name: "missing file", params: resource.Params{"path": filepath.Join(dir, "nope.tsv")}, wantErr: "nope.tsv"},
		{name: "malformed line", params: resource.Params{"path": malformed}, wantErr: "line 2"},
		{name: "empty type", params: resource.Params{"path": emptyType}, wantErr: "line 1"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := entities.New(nil)
			err := r.Initialize(context.Background(), tt.params)
			require.ErrorIs(t, err, errs.ErrInitialization)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Zero(t, r.Len())
			assert.Nil(t, r.Match([]string{"Paris"}))
		})
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	t.Parallel()

	r := loadFixture(t, nil)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Empty(t, r.Lookup("york"))
	assert.Nil(t, r.Sources())
}
