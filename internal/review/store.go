package review

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/studyloop/studyloop/internal/content"
	"github.com/studyloop/studyloop/internal/progress"
	"github.com/studyloop/studyloop/internal/scheduler"
)

// Store coordinates the scheduler, the review log and the collaborators. It
// owns no retry policy: storage errors propagate to the caller unchanged.
type Store struct {
	repo     Repository
	resolver content.Resolver
	notifier progress.Notifier
	clock    func() time.Time
}

// StoreOption configures optional Store behavior.
type StoreOption func(*Store)

// WithClock overrides the wall clock, mainly for tests.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore wires the repository with the content and progress collaborators.
func NewStore(repo Repository, resolver content.Resolver, notifier progress.Notifier, opts ...StoreOption) *Store {
	store := &Store{
		repo:     repo,
		resolver: resolver,
		notifier: notifier,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

// RecordReview records one review event and schedules the next one.
//
// The previous interval is derived from the elapsed time since the latest
// record (minimum one day), not from its stored interval, so the schedule
// adapts when a learner reviews early or late. The read of the latest record
// and the append happen in one transaction.
//
// RecordReview is not idempotent: retrying after an ambiguous failure appends
// a second record.
func (s *Store) RecordReview(ctx context.Context, itemID, learnerID string, confidence int) (*ReviewRecord, error) {
	if confidence < scheduler.MinConfidence || confidence > scheduler.MaxConfidence {
		return nil, fmt.Errorf("%w: got %d", scheduler.ErrInvalidConfidence, confidence)
	}

	// Resolve before writing so an unknown item leaves no partial state.
	topic, err := s.resolver.ResolveTopic(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("resolver.ResolveTopic(%s) > %w", itemID, err)
	}

	now := s.clock().UTC()
	record, err := s.repo.CreateFromLatest(ctx, itemID, learnerID, func(latest *ReviewRecord) (*ReviewRecord, error) {
		previousIntervalDays := 0
		repetitions := 0
		if latest != nil {
			previousIntervalDays = int(now.Sub(latest.ReviewedAt).Hours() / 24)
			if previousIntervalDays < 1 {
				previousIntervalDays = 1
			}
			repetitions = latest.Repetitions
		}

		result, err := scheduler.ComputeNextReview(confidence, previousIntervalDays, repetitions, now)
		if err != nil {
			return nil, err
		}

		return &ReviewRecord{
			ItemID:       itemID,
			LearnerID:    learnerID,
			Confidence:   confidence,
			ReviewedAt:   now,
			NextReviewAt: result.NextReviewAt,
			EaseFactor:   result.EaseFactor,
			Repetitions:  result.Repetitions,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	normalized := scheduler.NormalizedConfidence(confidence)
	if err := s.notifier.ReviewRecorded(ctx, progress.Event{
		LearnerID:    learnerID,
		Topic:        topic,
		ActivityType: progress.ActivityFlashcard,
		Performance:  normalized,
		Confidence:   &normalized,
	}); err != nil {
		// The review is already committed; progress tracking is best-effort.
		slog.Warn("failed to notify topic progress",
			"learner_id", learnerID, "item_id", itemID, "topic", topic, "error", err)
	}

	return record, nil
}

// GetDueItems returns every item whose latest record is due at asOf, ordered
// by next review time then item id. Items never reviewed are not returned:
// initial exposure belongs to the content subsystem.
func (s *Store) GetDueItems(ctx context.Context, learnerID string, asOf time.Time) ([]DueItem, error) {
	records, err := s.repo.ListLatestByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	sortByNextReview(records)

	due := make([]DueItem, 0, len(records))
	for _, record := range records {
		if record.NextReviewAt.After(asOf) {
			continue
		}
		due = append(due, DueItem{
			ItemID:         record.ItemID,
			LastConfidence: record.Confidence,
			LastReviewedAt: record.ReviewedAt,
			NextReviewAt:   record.NextReviewAt,
		})
	}
	return due, nil
}

// GetSchedule partitions the learner's planned reviews into overdue, today and
// upcoming-by-date buckets. Bucketing compares UTC dates, so an item due later
// today is "today" even if its timestamp has already passed.
func (s *Store) GetSchedule(ctx context.Context, learnerID string, horizonDays int, asOf time.Time) (*Schedule, error) {
	records, err := s.repo.ListLatestByLearner(ctx, learnerID)
	if err != nil {
		return nil, err
	}
	sortByNextReview(records)

	today := truncateToDay(asOf.UTC())
	schedule := &Schedule{
		Overdue:  []ScheduleEntry{},
		Today:    []ScheduleEntry{},
		Upcoming: make(map[string][]ScheduleEntry),
	}
	for _, record := range records {
		entry := ScheduleEntry{
			ItemID:         record.ItemID,
			LastConfidence: record.Confidence,
			NextReviewAt:   record.NextReviewAt,
		}

		reviewDay := truncateToDay(record.NextReviewAt.UTC())
		switch {
		case reviewDay.Before(today):
			schedule.Overdue = append(schedule.Overdue, entry)
		case reviewDay.Equal(today):
			schedule.Today = append(schedule.Today, entry)
		default:
			daysAhead := int(reviewDay.Sub(today).Hours() / 24)
			if daysAhead > horizonDays {
				continue
			}
			key := reviewDay.Format("2006-01-02")
			schedule.Upcoming[key] = append(schedule.Upcoming[key], entry)
		}
	}
	return schedule, nil
}

func sortByNextReview(records []ReviewRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].NextReviewAt.Equal(records[j].NextReviewAt) {
			return records[i].ItemID < records[j].ItemID
		}
		return records[i].NextReviewAt.Before(records[j].NextReviewAt)
	})
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
