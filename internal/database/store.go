package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the WordNet database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// LookupSenses returns the senses of lemma ordered by POS and sense
	// number. An empty pos matches every part of speech.
	LookupSenses(ctx context.Context, lemma, pos string) ([]SenseInfo, error)

	// LookupSynset retrieves a synset by ID. Returns nil, nil if not found.
	LookupSynset(ctx context.Context, id string) (*Synset, error)

	// Lemmas returns the lemmas of a synset ordered by sense frequency.
	Lemmas(ctx context.Context, synsetID string) ([]string, error)

	// SaveSynsets inserts or updates synsets in a single transaction.
	SaveSynsets(ctx context.Context, synsets []Synset) error

	// SaveSenses inserts or updates senses in a single transaction.
	SaveSenses(ctx context.Context, senses []Sense) error

	// Stats returns table row counts.
	Stats(ctx context.Context) (Stats, error)

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) LookupSenses(ctx context.Context, lemma, pos string) ([]SenseInfo, error) {
	lemma = NormalizeLemma(lemma)
	if lemma == "" {
		return nil, fmt.Errorf("lemma cannot be empty")
	}
	pos = NormalizePos(pos)

	query := `
		SELECT s.lemma, s.pos, s.synset_id, s.sense_number, s.tag_count, y.lexname, y.gloss
		FROM senses s
		JOIN synsets y ON y.id = s.synset_id
		WHERE s.lemma = ?`
	args := []any{lemma}
	if pos != "" {
		query += ` AND s.pos = ?`
		args = append(args, pos)
	}
	query += ` ORDER BY s.pos, s.sense_number`

	var senses []SenseInfo
	if err := s.db.SelectContext(ctx, &senses, query, args...); err != nil {
		s.logger.ErrorContext(ctx, "Failed to look up senses", "lemma", lemma, "pos", pos, "error", err)
		return nil, fmt.Errorf("failed to look up senses for %q: %w", lemma, err)
	}
	return senses, nil
}

func (s *sqlxStore) LookupSynset(ctx context.Context, id string) (*Synset, error) {
	if id == "" {
		return nil, fmt.Errorf("synset id cannot be empty")
	}

	var synset Synset
	err := s.db.GetContext(ctx, &synset,
		`SELECT id, pos, lexname, gloss, created_at, updated_at FROM synsets WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get synset %s: %w", id, err)
	}
	return &synset, nil
}

func (s *sqlxStore) Lemmas(ctx context.Context, synsetID string) ([]string, error) {
	var lemmas []string
	err := s.db.SelectContext(ctx, &lemmas,
		`SELECT lemma FROM senses WHERE synset_id = ? ORDER BY tag_count DESC, lemma`, synsetID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lemmas of synset %s: %w", synsetID, err)
	}
	return lemmas, nil
}

func (s *sqlxStore) SaveSynsets(ctx context.Context, synsets []Synset) error {
	if len(synsets) == 0 {
		return nil
	}

	now := time.Now().UTC()
	for i := range synsets {
		synsets[i].Pos = NormalizePos(synsets[i].Pos)
		if !ValidPos(synsets[i].Pos) {
			return fmt.Errorf("synset %s has invalid pos %q", synsets[i].ID, synsets[i].Pos)
		}
		if synsets[i].CreatedAt.IsZero() {
			synsets[i].CreatedAt = now
		}
		synsets[i].UpdatedAt = now
	}

	return s.inTx(ctx, "save synsets", func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, `
			INSERT INTO synsets (id, pos, lexname, gloss, created_at, updated_at)
			VALUES (:id, :pos, :lexname, :gloss, :created_at, :updated_at)
			ON CONFLICT(id) DO UPDATE SET
				pos = excluded.pos,
				lexname = excluded.lexname,
				gloss = excluded.gloss,
				updated_at = excluded.updated_at`)
		if err != nil {
			return fmt.Errorf("failed to prepare synset insert: %w", err)
		}
		defer stmt.Close()

		for i := range synsets {
			if _, err := stmt.ExecContext(ctx, &synsets[i]); err != nil {
				return fmt.Errorf("failed to save synset %s: %w", synsets[i].ID, err)
			}
		}
		return nil
	})
}

func (s *sqlxStore) SaveSenses(ctx context.Context, senses []Sense) error {
	if len(senses) == 0 {
		return nil
	}

	for i := range senses {
		senses[i].Lemma = NormalizeLemma(senses[i].Lemma)
		senses[i].Pos = NormalizePos(senses[i].Pos)
		if senses[i].Lemma == "" {
			return fmt.Errorf("sense of synset %s has empty lemma", senses[i].SynsetID)
		}
	}

	return s.inTx(ctx, "save senses", func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamedContext(ctx, `
			INSERT INTO senses (lemma, pos, synset_id, sense_number, tag_count)
			VALUES (:lemma, :pos, :synset_id, :sense_number, :tag_count)
			ON CONFLICT(lemma, pos, synset_id) DO UPDATE SET
				sense_number = excluded.sense_number,
				tag_count = excluded.tag_count`)
		if err != nil {
			return fmt.Errorf("failed to prepare sense insert: %w", err)
		}
		defer stmt.Close()

		for i := range senses {
			if _, err := stmt.ExecContext(ctx, &senses[i]); err != nil {
				return fmt.Errorf("failed to save sense %s/%s: %w", senses[i].Lemma, senses[i].SynsetID, err)
			}
		}
		return nil
	})
}

func (s *sqlxStore) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	err := s.db.GetContext(ctx, &stats, `
		SELECT
			(SELECT COUNT(*) FROM synsets) AS synsets,
			(SELECT COUNT(*) FROM senses) AS senses`)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to count rows: %w", err)
	}
	return stats, nil
}

// RunSQLMaintenance executes ANALYZE and VACUUM on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		s.logger.WarnContext(ctx, "Context cancelled or timed out before starting maintenance", "error", ctx.Err())
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (ANALYZE, VACUUM)...")

	if _, err := s.db.ExecContext(ctx, "ANALYZE;"); err != nil {
		s.logger.WarnContext(ctx, "ANALYZE failed", "error", err)
	}

	// VACUUM must run outside a transaction in SQLite
	_, err := s.db.ExecContext(ctx, "VACUUM;")

	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)

	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)

	default:
		s.logger.InfoContext(ctx, "Database maintenance completed successfully")
	}

	return nil
}

func (s *sqlxStore) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to begin transaction", "op", op, "error", err)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if rollbackErr := tx.Rollback(); rollbackErr != nil && !errors.Is(rollbackErr, sql.ErrTxDone) {
			s.logger.WarnContext(ctx, "Error rolling back transaction", "op", op, "error", rollbackErr)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.ErrorContext(ctx, "Failed to commit transaction", "op", op, "error", err)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
