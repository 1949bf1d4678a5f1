package main

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/studyloop/studyloop/internal/scheduler"
)

// confidenceValue validates the --confidence flag at parse time.
type confidenceValue int

func (c *confidenceValue) Set(val string) error {
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fmt.Errorf("invalid confidence: %s", val)
	}
	if parsed < scheduler.MinConfidence || parsed > scheduler.MaxConfidence {
		return fmt.Errorf("confidence must be between %d and %d", scheduler.MinConfidence, scheduler.MaxConfidence)
	}
	*c = confidenceValue(parsed)
	return nil
}

func (c confidenceValue) String() string {
	return strconv.Itoa(int(c))
}

func (c *confidenceValue) Type() string {
	return "confidence"
}

var _ pflag.Value = (*confidenceValue)(nil)

func newReviewCommand() *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Record reviews and inspect what is due",
	}

	reviewCmd.AddCommand(
		newReviewRecordCommand(),
		newReviewDueCommand(),
		newReviewScheduleCommand(),
	)
	return reviewCmd
}

func newReviewRecordCommand() *cobra.Command {
	var itemID string
	var learnerID string
	var confidence confidenceValue

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a review and schedule the next one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, db, err := buildStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			record, err := store.RecordReview(ctx, itemID, learnerID, int(confidence))
			if err != nil {
				return fmt.Errorf("record review: %w", err)
			}

			color.Green("Recorded review of %s", record.ItemID)
			fmt.Printf("  Next review:  %s (%d repetitions, ease factor %.2f)\n",
				record.NextReviewAt.Format("2006-01-02"), record.Repetitions, record.EaseFactor)
			return nil
		},
	}

	cmd.Flags().StringVar(&itemID, "item", "", "Item to review")
	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner recording the review")
	cmd.Flags().Var(&confidence, "confidence", "Self-reported confidence from 1 to 5")
	_ = cmd.MarkFlagRequired("item")
	_ = cmd.MarkFlagRequired("learner")
	_ = cmd.MarkFlagRequired("confidence")
	return cmd
}

func newReviewDueCommand() *cobra.Command {
	var learnerID string

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List items due for review",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, db, err := buildStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			due, err := store.GetDueItems(ctx, learnerID, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("get due items: %w", err)
			}
			if len(due) == 0 {
				fmt.Println("Nothing is due. Nice work.")
				return nil
			}

			fmt.Printf("%d item(s) due:\n", len(due))
			for _, item := range due {
				fmt.Printf("  %s  due %s  last confidence %d\n",
					item.ItemID, item.NextReviewAt.Format("2006-01-02"), item.LastConfidence)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner to list due items for")
	_ = cmd.MarkFlagRequired("learner")
	return cmd
}

func newReviewScheduleCommand() *cobra.Command {
	var learnerID string
	var horizonDays int

	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the upcoming review schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			store, db, err := buildStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if horizonDays == 0 {
				horizonDays = cfg.Review.HorizonDays
			}

			schedule, err := store.GetSchedule(ctx, learnerID, horizonDays, time.Now().UTC())
			if err != nil {
				return fmt.Errorf("get schedule: %w", err)
			}

			if len(schedule.Overdue) > 0 {
				color.Red("Overdue (%d):", len(schedule.Overdue))
				for _, entry := range schedule.Overdue {
					fmt.Printf("  %s  was due %s\n", entry.ItemID, entry.NextReviewAt.Format("2006-01-02"))
				}
			}
			if len(schedule.Today) > 0 {
				color.Yellow("Today (%d):", len(schedule.Today))
				for _, entry := range schedule.Today {
					fmt.Printf("  %s\n", entry.ItemID)
				}
			}

			dates := make([]string, 0, len(schedule.Upcoming))
			for date := range schedule.Upcoming {
				dates = append(dates, date)
			}
			sort.Strings(dates)
			for _, date := range dates {
				fmt.Printf("%s:\n", date)
				for _, entry := range schedule.Upcoming[date] {
					fmt.Printf("  %s\n", entry.ItemID)
				}
			}

			if len(schedule.Overdue) == 0 && len(schedule.Today) == 0 && len(schedule.Upcoming) == 0 {
				fmt.Printf("No reviews scheduled in the next %d day(s).\n", horizonDays)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner to show the schedule for")
	cmd.Flags().IntVar(&horizonDays, "horizon", 0, "Days ahead to include (defaults to review.horizon_days)")
	_ = cmd.MarkFlagRequired("learner")
	return cmd
}
