package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	ingestSport string
	ingestStart string
	ingestEnd   string
)

// ingestCmd groups the one-shot ingestion subcommands.
var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one-shot ingestion operations",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the sport reference rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.logger.Sync()
		return a.service.SeedSports(context.Background())
	},
}

var ingestTeamsCmd = &cobra.Command{
	Use:   "teams",
	Short: "Reconcile the league roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.logger.Sync()

		counts, err := a.service.IngestTeams(context.Background(), ingestSport)
		if err != nil {
			return err
		}
		a.logger.Info("Teams reconciled", counts.Fields()...)
		return nil
	},
}

var ingestScheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Reconcile the schedule for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.logger.Sync()

		start, end, err := ingestRange()
		if err != nil {
			return err
		}
		counts, err := a.service.IngestSchedule(context.Background(), ingestSport, start, end)
		if err != nil {
			return err
		}
		a.logger.Info("Schedule reconciled", counts.Fields()...)
		return nil
	},
}

var ingestStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Refresh box scores for completed games in a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.logger.Sync()

		start, end, err := ingestRange()
		if err != nil {
			return err
		}
		counts, err := a.service.IngestStatistics(context.Background(), ingestSport, start, end)
		if err != nil {
			return err
		}
		a.logger.Info("Statistics reconciled", counts.Fields()...)
		return nil
	},
}

var ingestOddsCmd = &cobra.Command{
	Use:   "odds",
	Short: "Record current betting odds snapshots for a date range",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.logger.Sync()

		start, end, err := ingestRange()
		if err != nil {
			return err
		}
		counts, err := a.service.IngestOdds(context.Background(), ingestSport, start, end)
		if err != nil {
			return err
		}
		a.logger.Info("Odds reconciled", counts.Fields()...)
		return nil
	},
}

var ingestFullCmd = &cobra.Command{
	Use:   "full",
	Short: "Run the full sequential ingestion: teams, schedule, odds",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.logger.Sync()

		start, end, err := ingestRange()
		if err != nil {
			return err
		}
		if err := a.service.SeedSports(context.Background()); err != nil {
			return err
		}
		if err := a.service.RunFullIngestion(context.Background(), ingestSport, start, end); err != nil {
			return err
		}
		a.logger.Info("Full ingestion finished", zap.String("sport", ingestSport))
		return nil
	},
}

func ingestRange() (time.Time, time.Time, error) {
	start, err := time.Parse("2006-01-02", ingestStart)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse("2006-01-02", ingestEnd)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid --end: %w", err)
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--end must not be before --start")
	}
	return start, end, nil
}

func init() {
	ingestCmd.PersistentFlags().StringVar(&ingestSport, "sport", "nba", "sport key")
	ingestCmd.PersistentFlags().StringVar(&ingestStart, "start", time.Now().Format("2006-01-02"), "range start (YYYY-MM-DD)")
	ingestCmd.PersistentFlags().StringVar(&ingestEnd, "end", time.Now().AddDate(0, 0, 7).Format("2006-01-02"), "range end (YYYY-MM-DD)")

	ingestCmd.AddCommand(seedCmd, ingestTeamsCmd, ingestScheduleCmd, ingestStatsCmd, ingestOddsCmd, ingestFullCmd)
	RootCmd.AddCommand(ingestCmd)
}
