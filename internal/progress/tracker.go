// Package progress maintains per-topic proficiency aggregates and receives
// review notifications from the scheduling core.
package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jmoiron/sqlx"
)

// Activity types recognized by the proficiency weighting.
const (
	ActivityQuiz      = "quiz"
	ActivityFlashcard = "flashcard"
	ActivityChat      = "chat"
)

// Event describes one recorded learning activity. Performance and Confidence
// are on the 0.0-1.0 scale.
type Event struct {
	LearnerID    string
	Topic        string
	ActivityType string
	Performance  float64
	Confidence   *float64
}

// Notifier consumes review events. The scheduling core treats delivery as a
// notification: failures never roll back the recorded review.
type Notifier interface {
	ReviewRecorded(ctx context.Context, event Event) error
}

// Fanout delivers an event to every notifier and joins their failures.
type Fanout []Notifier

// ReviewRecorded implements Notifier.
func (f Fanout) ReviewRecorded(ctx context.Context, event Event) error {
	var errs []error
	for _, notifier := range f {
		if err := notifier.ReviewRecorded(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// TopicProgress is the per-(learner, topic) aggregate row.
type TopicProgress struct {
	LearnerID        string    `db:"learner_id"`
	Topic            string    `db:"topic"`
	Proficiency      float64   `db:"proficiency"`
	Confidence       float64   `db:"confidence"`
	InteractionCount int       `db:"interaction_count"`
	InteractionType  string    `db:"interaction_type"`
	LastInteraction  time.Time `db:"last_interaction"`
}

// activityWeights control how much a single sample moves the proficiency.
// Quizzes are the strongest signal, passive chat the weakest.
var activityWeights = map[string]float64{
	ActivityQuiz:      0.7,
	ActivityFlashcard: 0.5,
	ActivityChat:      0.3,
}

const (
	defaultActivityWeight = 0.5
	defaultConfidence     = 0.5
)

// DBTracker implements Notifier over the topic_progress table.
type DBTracker struct {
	db    *sqlx.DB
	clock func() time.Time
}

// NewDBTracker creates a new DBTracker.
func NewDBTracker(db *sqlx.DB) *DBTracker {
	return &DBTracker{db: db, clock: time.Now}
}

// ReviewRecorded applies the review event to the learner's topic aggregate.
func (t *DBTracker) ReviewRecorded(ctx context.Context, event Event) error {
	return t.UpdateTopicProgress(ctx, event.LearnerID, event.Topic, event.ActivityType, event.Performance, event.Confidence)
}

// UpdateTopicProgress folds one weighted performance sample into the
// aggregate. The read and write happen in one transaction so that concurrent
// activities for the same (learner, topic) pair do not lose updates.
// confidence may be nil when the activity carries no self-report.
func (t *DBTracker) UpdateTopicProgress(ctx context.Context, learnerID, topic, activityType string, performance float64, confidence *float64) error {
	now := t.clock().UTC()

	tx, err := t.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("db.BeginTxx() > %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var current TopicProgress
	err = tx.GetContext(ctx, &current,
		"SELECT * FROM topic_progress WHERE learner_id = ? AND topic = ? FOR UPDATE",
		learnerID, topic)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("tx.GetContext(topic_progress) > %w", err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		newConfidence := defaultConfidence
		if confidence != nil {
			newConfidence = *confidence
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO topic_progress (learner_id, topic, proficiency, confidence, interaction_count, interaction_type, last_interaction)
			VALUES (?, ?, ?, ?, 1, ?, ?)`,
			learnerID, topic, performance, newConfidence, activityType, now); err != nil {
			return fmt.Errorf("tx.ExecContext(insert topic_progress) > %w", err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("tx.Commit() > %w", err)
		}
		return nil
	}

	weight, ok := activityWeights[activityType]
	if !ok {
		weight = defaultActivityWeight
	}
	updatedProficiency := performance*weight + current.Proficiency*(1-weight)

	var updatedConfidence float64
	switch {
	case confidence != nil:
		updatedConfidence = *confidence*0.6 + current.Confidence*0.4
	case updatedProficiency > current.Proficiency:
		// No self-report: nudge confidence alongside improving proficiency.
		updatedConfidence = math.Min(1.0, current.Confidence+0.1)
	default:
		updatedConfidence = math.Max(0.1, current.Confidence-0.05)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE topic_progress
		SET proficiency = ?, confidence = ?, interaction_count = interaction_count + 1, interaction_type = ?, last_interaction = ?
		WHERE learner_id = ? AND topic = ?`,
		updatedProficiency, updatedConfidence, activityType, now, learnerID, topic); err != nil {
		return fmt.Errorf("tx.ExecContext(update topic_progress) > %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("tx.Commit() > %w", err)
	}
	return nil
}

// ListByLearner returns all topic aggregates for a learner ordered by topic.
func (t *DBTracker) ListByLearner(ctx context.Context, learnerID string) ([]TopicProgress, error) {
	var records []TopicProgress
	if err := t.db.SelectContext(ctx, &records,
		"SELECT * FROM topic_progress WHERE learner_id = ? ORDER BY topic", learnerID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(topic_progress) > %w", err)
	}
	return records, nil
}
