package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"social_agent/internal/domain"
)

// historyLockKey serializes appends and in-place updates. Appends take it so
// ids are assigned and committed in the same order, which keeps the ordinal
// index of an already visible record stable.
const historyLockKey int64 = 0x68697374

// HistoryStore keeps the post history in the post_history table. A record's
// index is its 0-based position in id order.
type HistoryStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewHistoryStore(db *sqlx.DB, tm *TransactionManager) *HistoryStore {
	return &HistoryStore{db: db, tm: tm}
}

type historyRow struct {
	Index int `db:"idx"`
	domain.HistoryRecord
}

func (s *HistoryStore) LoadAll(ctx context.Context) ([]domain.HistoryRecord, error) {
	query := `
		SELECT post_time, text, platform, status
		FROM post_history
		ORDER BY id`

	var records []domain.HistoryRecord
	if err := sqlx.SelectContext(ctx, executor(ctx, s.db), &records, query); err != nil {
		return nil, fmt.Errorf("select post history: %w", err)
	}
	return records, nil
}

func (s *HistoryStore) Append(ctx context.Context, record domain.HistoryRecord) error {
	query := `
		INSERT INTO post_history (post_time, text, platform, status)
		VALUES ($1, $2, $3, $4)`

	return s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := executor(ctx, s.db)
		if err := lockHistory(ctx, exec); err != nil {
			return err
		}

		_, err := exec.ExecContext(ctx, query,
			record.Time,
			record.Text,
			record.Platform,
			record.Status,
		)
		if err != nil {
			return fmt.Errorf("insert post history: %w", err)
		}
		return nil
	})
}

// lockHistory takes the history lock until the surrounding transaction ends.
func lockHistory(ctx context.Context, exec sqlx.ExecerContext) error {
	if _, err := exec.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, historyLockKey); err != nil {
		return fmt.Errorf("lock post history: %w", err)
	}
	return nil
}

func (s *HistoryStore) UpdateAt(ctx context.Context, index int, record domain.HistoryRecord) error {
	if index < 0 {
		return fmt.Errorf("update record %d: %w", index, domain.ErrIndexOutOfRange)
	}

	return s.tm.WithTransaction(ctx, func(ctx context.Context) error {
		exec := executor(ctx, s.db)

		if err := lockHistory(ctx, exec); err != nil {
			return err
		}

		var id int64
		err := sqlx.GetContext(ctx, exec, &id, `
			SELECT id FROM post_history
			ORDER BY id
			OFFSET $1 LIMIT 1
			FOR UPDATE`, index)
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("update record %d: %w", index, domain.ErrIndexOutOfRange)
		}
		if err != nil {
			return fmt.Errorf("find record %d: %w", index, err)
		}

		_, err = exec.ExecContext(ctx, `
			UPDATE post_history
			SET post_time = $1, text = $2, platform = $3, status = $4
			WHERE id = $5`,
			record.Time,
			record.Text,
			record.Platform,
			record.Status,
			id,
		)
		if err != nil {
			return fmt.Errorf("update record %d: %w", index, err)
		}
		return nil
	})
}

// Filter matches case-insensitively on text or platform. The empty query
// matches everything, since strpos finds the empty string at position 1.
func (s *HistoryStore) Filter(ctx context.Context, query string) ([]domain.IndexedRecord, error) {
	// Indices are ordinals over the whole table, so they are numbered before
	// the match condition is applied.
	stmt := `
		SELECT idx, post_time, text, platform, status FROM (
			SELECT (ROW_NUMBER() OVER (ORDER BY id) - 1) AS idx,
				post_time, text, platform, status
			FROM post_history
		) h
		WHERE strpos(lower(text), lower($1)) > 0
			OR strpos(lower(platform), lower($1)) > 0
		ORDER BY idx`

	var rows []historyRow
	if err := sqlx.SelectContext(ctx, executor(ctx, s.db), &rows, stmt, query); err != nil {
		return nil, fmt.Errorf("filter post history: %w", err)
	}

	result := make([]domain.IndexedRecord, 0, len(rows))
	for _, row := range rows {
		result = append(result, domain.IndexedRecord{Index: row.Index, Record: row.HistoryRecord})
	}
	return result, nil
}
