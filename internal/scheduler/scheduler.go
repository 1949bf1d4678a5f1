// Package scheduler computes spaced repetition review intervals from
// confidence ratings. It is pure: no I/O, no shared state, deterministic for a
// fixed clock.
package scheduler

import (
	"errors"
	"fmt"
	"math"
	"time"
)

const (
	// MinConfidence and MaxConfidence bound the learner-supplied rating
	// (1 = hardest/failed, 5 = easiest).
	MinConfidence = 1
	MaxConfidence = 5

	// MinEaseFactor is the multiplier at confidence 1; each confidence step
	// adds EaseFactorStep up to 2.5 at confidence 5.
	MinEaseFactor  = 1.3
	EaseFactorStep = 0.3

	// MinIntervalDays guarantees an item is never rescheduled for the same day.
	MinIntervalDays = 1
	// MaxIntervalDays caps multiplicative growth to keep long streaks reviewable.
	MaxIntervalDays = 180

	// failingConfidence is the highest rating that still counts as a failed
	// review and resets the repetition streak.
	failingConfidence = 2
)

// ErrInvalidConfidence is returned when a confidence rating falls outside [1, 5].
var ErrInvalidConfidence = errors.New("confidence must be between 1 and 5")

// Result holds the outcome of one review computation. It maps verbatim onto a
// new review record.
type Result struct {
	IntervalDays int
	NextReviewAt time.Time
	EaseFactor   float64
	Repetitions  int
}

// ComputeNextReview calculates when an item must be reviewed again.
//
// previousIntervalDays is the elapsed days since the prior review (0 for the
// first ever review). repetitions is the consecutive-success counter carried
// in from the prior record (0 if none). The first three successful repetitions
// use fixed 1/3/7 day checkpoints because multiplying a near-zero interval by
// the ease factor produces degenerate results; afterwards the interval grows
// by ceil(previous * ease factor).
func ComputeNextReview(confidence, previousIntervalDays, repetitions int, now time.Time) (Result, error) {
	if confidence < MinConfidence || confidence > MaxConfidence {
		return Result{}, fmt.Errorf("%w: got %d", ErrInvalidConfidence, confidence)
	}

	easeFactor := EaseFactor(confidence)

	if confidence <= failingConfidence {
		repetitions = 0
	} else {
		repetitions++
	}

	var intervalDays int
	switch repetitions {
	case 0:
		// Failed or never studied: show again tomorrow.
		intervalDays = 1
	case 1:
		intervalDays = 3
	case 2:
		intervalDays = 7
	default:
		intervalDays = int(math.Ceil(float64(previousIntervalDays) * easeFactor))
		if intervalDays > MaxIntervalDays {
			intervalDays = MaxIntervalDays
		}
	}
	if intervalDays < MinIntervalDays {
		intervalDays = MinIntervalDays
	}

	return Result{
		IntervalDays: intervalDays,
		NextReviewAt: now.AddDate(0, 0, intervalDays),
		EaseFactor:   easeFactor,
		Repetitions:  repetitions,
	}, nil
}

// EaseFactor maps a confidence rating onto the [1.3, 2.5] multiplier range.
// It depends on the current rating only, not on history.
func EaseFactor(confidence int) float64 {
	return MinEaseFactor + float64(confidence-MinConfidence)*EaseFactorStep
}

// NormalizedConfidence maps a 1-5 rating onto the 0.0-1.0 scale consumed by
// the progress-tracking collaborator.
func NormalizedConfidence(confidence int) float64 {
	return float64(confidence-MinConfidence) / 4.0
}
