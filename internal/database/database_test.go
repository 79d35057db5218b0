package database_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgard/nlpres/internal/database"
)

func openTestStore(t *testing.T) (database.Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "wordnet.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	return database.NewStore(db, nil), path
}

func importFixture(t *testing.T, store database.Store) database.ImportResult {
	t.Helper()

	f, err := os.Open(filepath.Join("testdata", "senses.tsv"))
	require.NoError(t, err)
	defer f.Close()

	result, err := database.ImportTSV(context.Background(), store, f)
	require.NoError(t, err)
	return result
}

func TestOpenIsRepeatable(t *testing.T) {
	t.Parallel()

	_, path := openTestStore(t)

	// Second open of a migrated database must not fail on ErrNoChange.
	db, err := database.Open(path)
	require.NoError(t, err)
	require.NoError(t, database.Close(db))
	require.NoError(t, database.Close(nil))
}

func TestImportAndLookup(t *testing.T) {
	t.Parallel()

	store, _ := openTestStore(t)
	ctx := context.Background()

	result := importFixture(t, store)
	assert.Equal(t, 12, result.Synsets)
	assert.Equal(t, 14, result.Senses)

	stats, err := store.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, database.Stats{Synsets: 12, Senses: 14}, stats)

	t.Run("all parts of speech", func(t *testing.T) {
		senses, err := store.LookupSenses(ctx, "Dog", "")
		require.NoError(t, err)
		require.Len(t, senses, 3)
		assert.Equal(t, "n", senses[0].Pos)
		assert.Equal(t, "noun.animal", senses[0].Lexname)
		assert.Equal(t, 42, senses[0].TagCount)
		assert.Equal(t, "noun.person", senses[1].Lexname)
		assert.Equal(t, "v", senses[2].Pos)
	})

	t.Run("restricted pos", func(t *testing.T) {
		senses, err := store.LookupSenses(ctx, "dog", "v")
		require.NoError(t, err)
		require.Len(t, senses, 1)
		assert.Equal(t, "verb.motion", senses[0].Lexname)
		assert.Equal(t, "02005948-v", senses[0].SynsetID)
	})

	t.Run("satellite maps to adjective", func(t *testing.T) {
		senses, err := store.LookupSenses(ctx, "happy", "s")
		require.NoError(t, err)
		require.Len(t, senses, 1)
		assert.Equal(t, "a", senses[0].Pos)
	})

	t.Run("multi word lemma", func(t *testing.T) {
		senses, err := store.LookupSenses(ctx, "new  York", "n")
		require.NoError(t, err)
		require.Len(t, senses, 1)
		assert.Equal(t, "new_york", senses[0].Lemma)
	})

	t.Run("unknown lemma", func(t *testing.T) {
		senses, err := store.LookupSenses(ctx, "florp", "")
		require.NoError(t, err)
		assert.Empty(t, senses)
	})

	t.Run("empty lemma", func(t *testing.T) {
		_, err := store.LookupSenses(ctx, "  ", "")
		require.Error(t, err)
	})

	t.Run("synset and lemmas", func(t *testing.T) {
		synset, err := store.LookupSynset(ctx, "02084071-n")
		require.NoError(t, err)
		require.NotNil(t, synset)
		assert.Equal(t, "noun.animal", synset.Lexname)
		assert.False(t, synset.CreatedAt.IsZero())

		lemmas, err := store.Lemmas(ctx, "02084071-n")
		require.NoError(t, err)
		assert.Equal(t, []string{"dog", "domestic_dog"}, lemmas)

		missing, err := store.LookupSynset(ctx, "00000000-n")
		require.NoError(t, err)
		assert.Nil(t, missing)
	})

	t.Run("maintenance", func(t *testing.T) {
		require.NoError(t, store.RunSQLMaintenance(ctx))
	})
}

func TestImportIsIdempotent(t *testing.T) {
	t.Parallel()

	store, _ := openTestStore(t)
	importFixture(t, store)
	importFixture(t, store)

	stats, err := store.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, database.Stats{Synsets: 12, Senses: 14}, stats)
}

func TestImportRejectsMalformedRows(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{name: "too few fields", input: "02084071\tn\tnoun.animal\tdog\n", wantErr: "line 1"},
		{name: "bad pos", input: "02084071\tx\tnoun.animal\tdog\t1\t0\n", wantErr: "invalid pos"},
		{name: "bad sense number", input: "02084071\tn\tnoun.animal\tdog\tone\t0\n", wantErr: "invalid sense number"},
		{name: "bad tag count", input: "02084071\tn\tnoun.animal\tdog\t1\tmany\n", wantErr: "invalid tag count"},
		{name: "missing lemma", input: "02084071\tn\tnoun.animal\t \t1\t0\n", wantErr: "required"},
		{
			name:    "error reports its line",
			input:   "# header\n02084071\tn\tnoun.animal\tdog\t1\t0\n02084071\tn\tnoun.animal\tdog\t1\n",
			wantErr: "line 3",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			store, _ := openTestStore(t)
			_, err := database.ImportTSV(context.Background(), store, strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestImportKeepsQuotedGlosses(t *testing.T) {
	t.Parallel()

	input := strings.Join([]string{
		"01\tn\tnoun.artifact\tquote\t1\t1\t\"so-called\" thing",
		"02\tn\tnoun.animal\tcat\t1\t3\tfeline mammal",
		"03\tn\tnoun.communication\tremark\t1\t2\t\"unterminated gloss",
		"",
		"04\tn\tnoun.animal\tcow\t1\t5\tmature female of cattle",
	}, "\n")

	store, _ := openTestStore(t)
	result, err := database.ImportTSV(context.Background(), store, strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, database.ImportResult{Synsets: 4, Senses: 4}, result)

	quote, err := store.LookupSynset(context.Background(), "01-n")
	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, `"so-called" thing`, quote.Gloss)

	remark, err := store.LookupSynset(context.Background(), "03-n")
	require.NoError(t, err)
	require.NotNil(t, remark)
	assert.Equal(t, `"unterminated gloss`, remark.Gloss)

	for _, lemma := range []string{"cat", "cow"} {
		senses, err := store.LookupSenses(context.Background(), lemma, "")
		require.NoError(t, err)
		assert.Len(t, senses, 1, lemma)
	}
}

func TestImportReportsLineAfterQuotedGloss(t *testing.T) {
	t.Parallel()

	input := "01\tn\tnoun.artifact\tquote\t1\t1\t\"open quote\n" +
		"02\tn\tnoun.animal\tcat\tone\t3\n"

	store, _ := openTestStore(t)
	_, err := database.ImportTSV(context.Background(), store, strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
	assert.Contains(t, err.Error(), "invalid sense number")
}

func TestDSN(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "wn.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)", database.DSN("wn.db"))
	assert.Equal(t, "file:wn.db?mode=rwc&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)",
		database.DSN("file:wn.db?mode=rwc"))
}

func TestOpenAppliesConnectionPragmas(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wordnet.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	var foreignKeys, busyTimeout int
	require.NoError(t, db.Get(&foreignKeys, "PRAGMA foreign_keys"))
	require.NoError(t, db.Get(&busyTimeout, "PRAGMA busy_timeout"))
	assert.Equal(t, 1, foreignKeys)
	assert.Equal(t, 5000, busyTimeout)

	_, err = os.Stat(path)
	require.NoError(t, err, "pragmas must not end up in the file name")
}

func TestOpenRejectsIncompleteSchema(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "wordnet.db")
	db, err := database.Open(path)
	require.NoError(t, err)
	_, err = db.Exec("DROP TABLE senses")
	require.NoError(t, err)
	require.NoError(t, database.Close(db))

	_, err = database.Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema incomplete")
}

func TestExtractDBNameFromPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{input: "wordnet.db", want: "wordnet.db"},
		{input: "file:wordnet.db", want: "wordnet.db"},
		{input: "file:wordnet.db?mode=ro", want: "wordnet.db"},
		{input: "/data/word%20net.db", want: "/data/word net.db"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, database.ExtractDBNameFromPath(tt.input), tt.input)
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "new_york", database.NormalizeLemma(" New   York "))
	assert.Equal(t, "a", database.NormalizePos("S"))
	assert.Equal(t, "n", database.NormalizePos(" n "))
	assert.True(t, database.ValidPos("s"))
	assert.False(t, database.ValidPos("x"))
	assert.Equal(t, "02084071-n", database.SynsetID("02084071", "N"))
}
