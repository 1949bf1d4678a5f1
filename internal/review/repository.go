// Package review persists review events as an append-only log and answers
// due-status queries over the latest record per (item, learner) pair.
package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines operations for managing review records.
type Repository interface {
	FindLatest(ctx context.Context, itemID, learnerID string) (*ReviewRecord, error)
	ListLatestByLearner(ctx context.Context, learnerID string) ([]ReviewRecord, error)
	Create(ctx context.Context, record *ReviewRecord) error
	CreateFromLatest(ctx context.Context, itemID, learnerID string, next func(latest *ReviewRecord) (*ReviewRecord, error)) (*ReviewRecord, error)
}

// DBReviewRepository implements Repository using MySQL.
type DBReviewRepository struct {
	db *sqlx.DB
}

// NewDBReviewRepository creates a new DBReviewRepository.
func NewDBReviewRepository(db *sqlx.DB) *DBReviewRepository {
	return &DBReviewRepository{db: db}
}

// FindLatest returns the most recent review record for an (item, learner)
// pair, or nil if the pair has never been reviewed.
func (r *DBReviewRepository) FindLatest(ctx context.Context, itemID, learnerID string) (*ReviewRecord, error) {
	var record ReviewRecord
	err := r.db.GetContext(ctx, &record,
		"SELECT * FROM review_records WHERE item_id = ? AND learner_id = ? ORDER BY reviewed_at DESC, id DESC LIMIT 1",
		itemID, learnerID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(latest review_record) > %w", err)
	}
	return &record, nil
}

// ListLatestByLearner returns the latest record of every item the learner has
// reviewed, ordered by next_review_at then item id.
func (r *DBReviewRepository) ListLatestByLearner(ctx context.Context, learnerID string) ([]ReviewRecord, error) {
	var records []ReviewRecord
	if err := r.db.SelectContext(ctx, &records,
		`SELECT r.* FROM review_records r
		JOIN (
			SELECT item_id, MAX(reviewed_at) AS last_reviewed_at
			FROM review_records WHERE learner_id = ?
			GROUP BY item_id
		) latest ON r.item_id = latest.item_id AND r.reviewed_at = latest.last_reviewed_at
		WHERE r.learner_id = ?
		ORDER BY r.next_review_at, r.item_id`,
		learnerID, learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(latest review_records) > %w", err)
	}
	return records, nil
}

// Create inserts a new review record.
func (r *DBReviewRepository) Create(ctx context.Context, record *ReviewRecord) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO review_records (item_id, learner_id, confidence, reviewed_at, next_review_at, ease_factor, repetitions)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ItemID, record.LearnerID, record.Confidence, record.ReviewedAt,
		record.NextReviewAt, record.EaseFactor, record.Repetitions)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review_record) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	record.ID = id
	return nil
}

// CreateFromLatest reads the latest record for the pair and appends the record
// built by next, in one transaction. The latest row is locked so two
// concurrent reviews of the same pair cannot both derive their interval and
// repetition count from the same stale read.
func (r *DBReviewRepository) CreateFromLatest(ctx context.Context, itemID, learnerID string, next func(latest *ReviewRecord) (*ReviewRecord, error)) (*ReviewRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var latest *ReviewRecord
	var current ReviewRecord
	err = tx.GetContext(ctx, &current,
		"SELECT * FROM review_records WHERE item_id = ? AND learner_id = ? ORDER BY reviewed_at DESC, id DESC LIMIT 1 FOR UPDATE",
		itemID, learnerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tx.GetContext(latest review_record) > %w", err)
	}
	if err == nil {
		latest = &current
	}

	record, err := next(latest)
	if err != nil {
		return nil, err
	}

	result, err := tx.ExecContext(ctx,
		`INSERT INTO review_records (item_id, learner_id, confidence, reviewed_at, next_review_at, ease_factor, repetitions)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ItemID, record.LearnerID, record.Confidence, record.ReviewedAt,
		record.NextReviewAt, record.EaseFactor, record.Repetitions)
	if err != nil {
		return nil, fmt.Errorf("tx.ExecContext(insert review_record) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("result.LastInsertId() > %w", err)
	}
	record.ID = id

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("tx.Commit() > %w", err)
	}
	return record, nil
}
