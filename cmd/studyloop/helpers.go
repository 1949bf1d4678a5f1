package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/studyloop/studyloop/internal/config"
	"github.com/studyloop/studyloop/internal/content"
	"github.com/studyloop/studyloop/internal/database"
	"github.com/studyloop/studyloop/internal/progress"
	"github.com/studyloop/studyloop/internal/review"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// buildStore wires the review store from config. The caller owns closing the
// returned database handle.
func buildStore(cfg *config.Config) (*review.Store, *sqlx.DB, error) {
	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}

	notifiers := progress.Fanout{progress.NewDBTracker(db)}
	if cfg.Progress.WebhookURL != "" {
		notifiers = append(notifiers, progress.NewWebhookNotifier(cfg.Progress.WebhookURL, cfg.Progress.RetryAttempts))
	}

	store := review.NewStore(
		review.NewDBReviewRepository(db),
		content.NewDBItemRepository(db),
		notifiers,
	)
	return store, db, nil
}
