package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/studyloop/studyloop/internal/database"
	"github.com/studyloop/studyloop/internal/progress"
)

func newProgressCommand() *cobra.Command {
	progressCmd := &cobra.Command{
		Use:   "progress",
		Short: "Inspect topic progress",
	}

	progressCmd.AddCommand(newProgressShowCommand())
	return progressCmd
}

func newProgressShowCommand() *cobra.Command {
	var learnerID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show per-topic proficiency for a learner",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() { _ = db.Close() }()

			tracker := progress.NewDBTracker(db)
			topics, err := tracker.ListByLearner(ctx, learnerID)
			if err != nil {
				return fmt.Errorf("list topic progress: %w", err)
			}
			if len(topics) == 0 {
				fmt.Println("No progress recorded yet.")
				return nil
			}

			for _, topic := range topics {
				fmt.Printf("%s: proficiency %.2f, confidence %.2f (%d interactions, last %s)\n",
					topic.Topic, topic.Proficiency, topic.Confidence,
					topic.InteractionCount, topic.LastInteraction.Format(time.DateOnly))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner to show progress for")
	_ = cmd.MarkFlagRequired("learner")
	return cmd
}
