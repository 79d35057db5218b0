package database

import (
	"strings"
	"time"
)

// WordNet parts of speech.
const (
	PosNoun      = "n"
	PosVerb      = "v"
	PosAdjective = "a"
	PosAdverb    = "r"
	PosSatellite = "s"
)

// Synset is a WordNet synonym set.
type Synset struct {
	ID        string    `db:"id"`
	Pos       string    `db:"pos"`
	Lexname   string    `db:"lexname"`
	Gloss     string    `db:"gloss"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Sense links a lemma to one of its synsets.
type Sense struct {
	Lemma       string `db:"lemma"`
	Pos         string `db:"pos"`
	SynsetID    string `db:"synset_id"`
	SenseNumber int    `db:"sense_number"`
	TagCount    int    `db:"tag_count"`
}

// SenseInfo is a sense joined with its synset.
type SenseInfo struct {
	Lemma       string `db:"lemma"`
	Pos         string `db:"pos"`
	SynsetID    string `db:"synset_id"`
	SenseNumber int    `db:"sense_number"`
	TagCount    int    `db:"tag_count"`
	Lexname     string `db:"lexname"`
	Gloss       string `db:"gloss"`
}

// Stats holds row counts of the WordNet tables.
type Stats struct {
	Synsets int `db:"synsets"`
	Senses  int `db:"senses"`
}

// SynsetID builds the synset key from a data file offset and a POS.
func SynsetID(offset, pos string) string {
	return strings.TrimSpace(offset) + "-" + NormalizePos(pos)
}

// NormalizeLemma lowercases a lemma and joins multi-word lemmas with
// underscores, as WordNet stores them.
func NormalizeLemma(lemma string) string {
	return strings.ToLower(strings.Join(strings.Fields(lemma), "_"))
}

// NormalizePos maps adjective satellites to adjectives and lowercases the
// tag. Unknown tags are returned lowercased.
func NormalizePos(pos string) string {
	pos = strings.ToLower(strings.TrimSpace(pos))
	if pos == PosSatellite {
		return PosAdjective
	}
	return pos
}

// ValidPos reports whether pos is one of the WordNet parts of speech.
func ValidPos(pos string) bool {
	switch NormalizePos(pos) {
	case PosNoun, PosVerb, PosAdjective, PosAdverb:
		return true
	}
	return false
}
