package database

import (
	"context"
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	importBatchSize = 500
	maxImportLine   = 1 << 20
)

// ImportResult counts the rows written by ImportTSV.
type ImportResult struct {
	Synsets int
	Senses  int
}

// ImportTSV loads a tab separated sense listing into store. Each row holds
//
//	offset  pos  lexname  lemma  sense_number  tag_count  [gloss]
//
// Blank lines and lines starting with '#' are ignored. Quotes carry no
// meaning; a field runs to the next tab. Rows are written in batches; a
// malformed row aborts the import and reports its line number.
func ImportTSV(ctx context.Context, store Store, r io.Reader) (ImportResult, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxImportLine)

	var (
		result  ImportResult
		synsets []Synset
		senses  []Sense
		seen    = make(map[string]struct{})
	)

	flush := func() error {
		if err := store.SaveSynsets(ctx, synsets); err != nil {
			return err
		}
		if err := store.SaveSenses(ctx, senses); err != nil {
			return err
		}
		result.Synsets += len(synsets)
		result.Senses += len(senses)
		synsets, senses = synsets[:0], senses[:0]
		return nil
	}

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		synset, sense, err := parseSenseRecord(strings.Split(line, "\t"))
		if err != nil {
			return result, fmt.Errorf("line %d: %w", lineNo, err)
		}

		if _, ok := seen[synset.ID]; !ok {
			seen[synset.ID] = struct{}{}
			synsets = append(synsets, synset)
		}
		senses = append(senses, sense)

		if len(senses) >= importBatchSize {
			if err := flush(); err != nil {
				return result, err
			}
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
	}
	if err := sc.Err(); err != nil {
		return result, fmt.Errorf("line %d: failed to read sense listing: %w", lineNo+1, err)
	}

	if err := flush(); err != nil {
		return result, err
	}
	return result, nil
}

func parseSenseRecord(record []string) (Synset, Sense, error) {
	if len(record) < 6 {
		return Synset{}, Sense{}, fmt.Errorf("expected at least 6 fields, got %d", len(record))
	}

	offset := strings.TrimSpace(record[0])
	pos := NormalizePos(record[1])
	lexname := strings.TrimSpace(record[2])
	lemma := NormalizeLemma(record[3])

	if offset == "" || lemma == "" || lexname == "" {
		return Synset{}, Sense{}, fmt.Errorf("offset, lexname and lemma are required")
	}
	if !ValidPos(pos) {
		return Synset{}, Sense{}, fmt.Errorf("invalid pos %q", record[1])
	}

	senseNumber, err := strconv.Atoi(strings.TrimSpace(record[4]))
	if err != nil {
		return Synset{}, Sense{}, fmt.Errorf("invalid sense number %q: %w", record[4], err)
	}
	tagCount, err := strconv.Atoi(strings.TrimSpace(record[5]))
	if err != nil {
		return Synset{}, Sense{}, fmt.Errorf("invalid tag count %q: %w", record[5], err)
	}

	var gloss string
	if len(record) > 6 {
		gloss = strings.TrimSpace(strings.Join(record[6:], "\t"))
	}

	id := SynsetID(offset, pos)
	return Synset{ID: id, Pos: pos, Lexname: lexname, Gloss: gloss},
		Sense{Lemma: lemma, Pos: pos, SynsetID: id, SenseNumber: senseNumber, TagCount: tagCount},
		nil
}
