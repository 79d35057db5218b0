package wordnet_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/nlpres/internal/database"
	"github.com/edgard/nlpres/internal/errs"
	"github.com/edgard/nlpres/internal/resource"
	"github.com/edgard/nlpres/internal/wordnet"
)

// buildDatabase writes the shared sense fixture into a fresh database file.
func buildDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wordnet.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	defer func() { require.NoError(t, database.Close(db)) }()

	f, err := os.Open(filepath.Join("..", "database", "testdata", "senses.tsv"))
	require.NoError(t, err)
	defer f.Close()

	_, err = database.ImportTSV(context.Background(), database.NewStore(db, nil), f)
	require.NoError(t, err)
	return path
}

func TestInitializeErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params resource.Params
	}{
		{name: "missing path", params: resource.Params{}},
		{name: "nonexistent file", params: resource.Params{"path": filepath.Join(t.TempDir(), "nope.db")}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := wordnet.New(nil)
			err := r.Initialize(context.Background(), tt.params)
			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrInitialization)
			assert.Nil(t, r.Dictionary())
			assert.Nil(t, r.Store())
		})
	}
}

func TestDictionaryLookups(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r := wordnet.New(nil)
	require.NoError(t, r.Initialize(ctx, resource.Params{"path": buildDatabase(t)}))
	t.Cleanup(func() { _ = r.Close() })

	assert.Equal(t, wordnet.Name, r.Name())
	assert.Equal(t, 14, r.Len())

	dict := r.Dictionary()
	require.NotNil(t, dict)

	senses, err := dict.Senses(ctx, "bank", "n")
	require.NoError(t, err)
	require.Len(t, senses, 2)
	assert.Equal(t, "noun.group", senses[0].Lexname)

	synset, err := dict.Synset(ctx, senses[1].SynsetID)
	require.NoError(t, err)
	require.NotNil(t, synset)
	assert.Equal(t, "noun.object", synset.Lexname)

	synonyms, err := dict.Synonyms(ctx, "dog", "n")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"domestic_dog", "frump"}, synonyms)

	synonyms, err = dict.Synonyms(ctx, "dog", "v")
	require.NoError(t, err)
	assert.Empty(t, synonyms)
}

func TestReinitializeReplacesHandle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	first, second := buildDatabase(t), buildDatabase(t)

	r := wordnet.New(nil)
	require.NoError(t, r.Initialize(ctx, resource.Params{"path": first}))
	assert.Equal(t, []string{first}, r.Sources())

	require.NoError(t, r.Initialize(ctx, resource.Params{"path": second}))
	assert.Equal(t, []string{second}, r.Sources())
	require.NotNil(t, r.Dictionary())

	// A failed re-initialization keeps the handle in service.
	err := r.Initialize(ctx, resource.Params{"path": filepath.Join(t.TempDir(), "gone.db")})
	require.ErrorIs(t, err, errs.ErrInitialization)
	assert.Equal(t, []string{second}, r.Sources())

	senses, err := r.Dictionary().Senses(ctx, "run", "v")
	require.NoError(t, err)
	assert.Len(t, senses, 1)

	require.NoError(t, r.Close())
	require.NoError(t, r.Close())
	assert.Nil(t, r.Dictionary())
	assert.Zero(t, r.Len())
}

func TestInitializeChecksConnection(t *testing.T) {
	t.Parallel()

	path := buildDatabase(t)
	r := wordnet.New(nil)
	t.Cleanup(func() { _ = r.Close() })

	canceled, cancel := context.WithCancel(context.Background())
	cancel()

	err := r.Initialize(canceled, resource.Params{"path": path})
	require.ErrorIs(t, err, errs.ErrInitialization)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, r.Dictionary())

	require.NoError(t, r.Initialize(context.Background(), resource.Params{"path": path}))
	require.NoError(t, r.Store().Ping(context.Background()))
}
