package review

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reviewRecordColumns = []string{
	"id", "item_id", "learner_id", "confidence", "reviewed_at",
	"next_review_at", "ease_factor", "repetitions", "created_at",
}

func TestDBReviewRepository_FindLatest(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *ReviewRecord
		wantErr   bool
	}{
		{
			name: "returns latest record",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(reviewRecordColumns).
					AddRow(3, "card-1", "learner-1", 4, now, now.AddDate(0, 0, 7), 2.2, 3, now)
				mock.ExpectQuery("SELECT \\* FROM review_records WHERE item_id = \\? AND learner_id = \\? ORDER BY reviewed_at DESC, id DESC LIMIT 1").
					WithArgs("card-1", "learner-1").
					WillReturnRows(rows)
			},
			want: &ReviewRecord{
				ID:           3,
				ItemID:       "card-1",
				LearnerID:    "learner-1",
				Confidence:   4,
				ReviewedAt:   now,
				NextReviewAt: now.AddDate(0, 0, 7),
				EaseFactor:   2.2,
				Repetitions:  3,
				CreatedAt:    now,
			},
		},
		{
			name: "never reviewed returns nil without error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM review_records WHERE item_id = \\? AND learner_id = \\? ORDER BY reviewed_at DESC, id DESC LIMIT 1").
					WithArgs("card-1", "learner-1").
					WillReturnRows(sqlmock.NewRows(reviewRecordColumns))
			},
			want: nil,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT \\* FROM review_records WHERE item_id = \\? AND learner_id = \\? ORDER BY reviewed_at DESC, id DESC LIMIT 1").
					WithArgs("card-1", "learner-1").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			repo := NewDBReviewRepository(sqlxDB)
			tt.setupMock(mock)

			got, err := repo.FindLatest(context.Background(), "card-1", "learner-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBReviewRepository_ListLatestByLearner(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantLen   int
		wantErr   bool
	}{
		{
			name: "returns latest record per item ordered by next review",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(reviewRecordColumns).
					AddRow(5, "card-2", "learner-1", 2, now, now.AddDate(0, 0, 1), 1.6, 0, now).
					AddRow(4, "card-1", "learner-1", 5, now, now.AddDate(0, 0, 14), 2.5, 4, now)
				mock.ExpectQuery("SELECT r\\.\\* FROM review_records r").
					WithArgs("learner-1", "learner-1").
					WillReturnRows(rows)
			},
			wantLen: 2,
		},
		{
			name: "no reviews yet",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT r\\.\\* FROM review_records r").
					WithArgs("learner-1", "learner-1").
					WillReturnRows(sqlmock.NewRows(reviewRecordColumns))
			},
			wantLen: 0,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT r\\.\\* FROM review_records r").
					WithArgs("learner-1", "learner-1").
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			repo := NewDBReviewRepository(sqlxDB)
			tt.setupMock(mock)

			got, err := repo.ListLatestByLearner(context.Background(), "learner-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, got, tt.wantLen)

			if tt.wantLen > 0 {
				assert.Equal(t, "card-2", got[0].ItemID)
				assert.Equal(t, 0, got[0].Repetitions)
				assert.Equal(t, "card-1", got[1].ItemID)
				assert.Equal(t, 2.5, got[1].EaseFactor)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBReviewRepository_Create(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		wantID    int64
		wantErr   bool
	}{
		{
			name: "inserts record and sets id",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO review_records").
					WithArgs("card-1", "learner-1", 4, now, now.AddDate(0, 0, 3), 2.2, 1).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			wantID: 7,
		},
		{
			name: "db error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("INSERT INTO review_records").
					WithArgs("card-1", "learner-1", 4, now, now.AddDate(0, 0, 3), 2.2, 1).
					WillReturnError(fmt.Errorf("connection refused"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			repo := NewDBReviewRepository(sqlxDB)
			tt.setupMock(mock)

			record := &ReviewRecord{
				ItemID:       "card-1",
				LearnerID:    "learner-1",
				Confidence:   4,
				ReviewedAt:   now,
				NextReviewAt: now.AddDate(0, 0, 3),
				EaseFactor:   2.2,
				Repetitions:  1,
			}
			err = repo.Create(context.Background(), record)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, record.ID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBReviewRepository_CreateFromLatest(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	selectForUpdate := "SELECT \\* FROM review_records WHERE item_id = \\? AND learner_id = \\? ORDER BY reviewed_at DESC, id DESC LIMIT 1 FOR UPDATE"

	newRecord := &ReviewRecord{
		ItemID:       "card-1",
		LearnerID:    "learner-1",
		Confidence:   5,
		ReviewedAt:   now,
		NextReviewAt: now.AddDate(0, 0, 3),
		EaseFactor:   2.5,
		Repetitions:  1,
	}

	tests := []struct {
		name       string
		setupMock  func(mock sqlmock.Sqlmock)
		next       func(latest *ReviewRecord) (*ReviewRecord, error)
		wantLatest *ReviewRecord
		wantID     int64
		wantErr    bool
	}{
		{
			name: "first review sees no latest record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(selectForUpdate).
					WithArgs("card-1", "learner-1").
					WillReturnRows(sqlmock.NewRows(reviewRecordColumns))
				mock.ExpectExec("INSERT INTO review_records").
					WithArgs("card-1", "learner-1", 5, now, now.AddDate(0, 0, 3), 2.5, 1).
					WillReturnResult(sqlmock.NewResult(1, 1))
				mock.ExpectCommit()
			},
			wantLatest: nil,
			wantID:     1,
		},
		{
			name: "subsequent review sees the locked latest record",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				rows := sqlmock.NewRows(reviewRecordColumns).
					AddRow(1, "card-1", "learner-1", 4, now.AddDate(0, 0, -3), now, 2.2, 1, now.AddDate(0, 0, -3))
				mock.ExpectQuery(selectForUpdate).
					WithArgs("card-1", "learner-1").
					WillReturnRows(rows)
				mock.ExpectExec("INSERT INTO review_records").
					WithArgs("card-1", "learner-1", 5, now, now.AddDate(0, 0, 3), 2.5, 1).
					WillReturnResult(sqlmock.NewResult(2, 1))
				mock.ExpectCommit()
			},
			wantLatest: &ReviewRecord{
				ID:           1,
				ItemID:       "card-1",
				LearnerID:    "learner-1",
				Confidence:   4,
				ReviewedAt:   now.AddDate(0, 0, -3),
				NextReviewAt: now,
				EaseFactor:   2.2,
				Repetitions:  1,
				CreatedAt:    now.AddDate(0, 0, -3),
			},
			wantID: 2,
		},
		{
			name: "next error rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(selectForUpdate).
					WithArgs("card-1", "learner-1").
					WillReturnRows(sqlmock.NewRows(reviewRecordColumns))
				mock.ExpectRollback()
			},
			next: func(latest *ReviewRecord) (*ReviewRecord, error) {
				return nil, fmt.Errorf("confidence out of range")
			},
			wantErr: true,
		},
		{
			name: "select error rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(selectForUpdate).
					WithArgs("card-1", "learner-1").
					WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
		{
			name: "insert error rolls back",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectQuery(selectForUpdate).
					WithArgs("card-1", "learner-1").
					WillReturnRows(sqlmock.NewRows(reviewRecordColumns))
				mock.ExpectExec("INSERT INTO review_records").
					WithArgs("card-1", "learner-1", 5, now, now.AddDate(0, 0, 3), 2.5, 1).
					WillReturnError(fmt.Errorf("connection refused"))
				mock.ExpectRollback()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			sqlxDB := sqlx.NewDb(db, "mysql")
			repo := NewDBReviewRepository(sqlxDB)
			tt.setupMock(mock)

			var gotLatest *ReviewRecord
			next := tt.next
			if next == nil {
				next = func(latest *ReviewRecord) (*ReviewRecord, error) {
					gotLatest = latest
					copied := *newRecord
					return &copied, nil
				}
			}

			got, err := repo.CreateFromLatest(context.Background(), "card-1", "learner-1", next)
			if tt.wantErr {
				assert.Error(t, err)
				assert.NoError(t, mock.ExpectationsWereMet())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLatest, gotLatest)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, "card-1", got.ItemID)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
