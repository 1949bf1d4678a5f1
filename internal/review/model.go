package review

import "time"

// ReviewRecord is one append-only review event for an (item, learner) pair.
// Records are never mutated or deleted; only the latest record per pair
// determines due status, older rows are audit history.
type ReviewRecord struct {
	ID           int64     `db:"id"`
	ItemID       string    `db:"item_id"`
	LearnerID    string    `db:"learner_id"`
	Confidence   int       `db:"confidence"`
	ReviewedAt   time.Time `db:"reviewed_at"`
	NextReviewAt time.Time `db:"next_review_at"`
	EaseFactor   float64   `db:"ease_factor"`
	Repetitions  int       `db:"repetitions"`
	CreatedAt    time.Time `db:"created_at"`
}

// DueItem summarizes an item whose next review time has passed.
type DueItem struct {
	ItemID         string
	LastConfidence int
	LastReviewedAt time.Time
	NextReviewAt   time.Time
}

// ScheduleEntry is one planned review inside a schedule bucket.
type ScheduleEntry struct {
	ItemID         string
	LastConfidence int
	NextReviewAt   time.Time
}

// Schedule partitions a learner's planned reviews by due date relative to the
// query time. Upcoming is keyed by ISO date (2006-01-02); dates beyond the
// requested horizon are omitted.
type Schedule struct {
	Overdue  []ScheduleEntry
	Today    []ScheduleEntry
	Upcoming map[string][]ScheduleEntry
}
