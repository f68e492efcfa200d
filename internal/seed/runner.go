package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/podium/internal/adapters/http/client"
	"github.com/okian/podium/internal/domain/model"
	"github.com/okian/podium/pkg/logger"
)

// Run posts a roster to the server and verifies the ranking it returns.
func Run(ctx context.Context, config *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	log := logger.Named("seed")

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	policy := model.TieBreaker(config.TieBreaker).Normalize()
	c := client.New(config.BaseURL, client.WithTimeout(timeout))

	log.Info(ctx, "starting seed run",
		logger.String("baseURL", c.BaseURL()),
		logger.Int("students", config.Students),
		logger.String("tieBreaker", string(policy)),
		logger.Int("workers", config.Workers))

	if err := c.Health(ctx); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	students, err := buildRoster(ctx, c, config)
	if err != nil {
		return stats, fmt.Errorf("build roster: %w", err)
	}

	if config.OutputFile != "" {
		if err := saveRosterToFile(config.OutputFile, students); err != nil {
			log.Warn(ctx, "failed to save roster to file", logger.Error(err))
		}
	}

	err = c.Save(ctx, students, &model.SettingsPatch{TieBreaker: &policy})
	switch {
	case errors.Is(err, client.ErrNotPersisted):
		log.Warn(ctx, "server applied the roster but could not store it", logger.Error(err))
	case err != nil:
		return stats, fmt.Errorf("post roster: %w", err)
	}
	stats.StudentsPosted = len(students)

	leaderboard, err := c.Leaderboard(ctx, 0)
	if err != nil {
		return stats, fmt.Errorf("leaderboard retrieval failed: %w", err)
	}
	stats.LeaderboardEntries = len(leaderboard)

	if err := verifyLeaderboard(students, policy, leaderboard); err != nil {
		return stats, fmt.Errorf("result verification failed: %w", err)
	}

	ids := make([]string, len(students))
	for i, s := range students {
		ids[i] = s.ID
	}
	lookups := fetchRanks(ctx, c, config.Workers, ids, stats)
	if err := verifyLookups(leaderboard, lookups); err != nil {
		return stats, fmt.Errorf("rank lookup verification failed: %w", err)
	}

	displayTopPerformers(ctx, log, leaderboard, config.Verbose)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)
	return stats, nil
}

func buildRoster(ctx context.Context, c *client.Client, config *Config) ([]model.Student, error) {
	switch {
	case config.Students > 0:
		return Generate(config.Students), nil
	case config.ServerImport:
		res, err := c.Import(ctx, SampleText)
		if err != nil {
			return nil, err
		}
		for _, w := range res.Warnings {
			logger.Get().Info(ctx, "import warning", logger.String("warning", w))
		}
		return res.Students, nil
	default:
		return SampleRoster(ctx)
	}
}

// saveRosterToFile writes the roster as indented JSON.
func saveRosterToFile(filename string, students []model.Student) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(students, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal roster: %w", err)
	}
	if err := os.WriteFile(filename, data, logFilePermission); err != nil {
		return fmt.Errorf("write roster: %w", err)
	}
	return nil
}

func displayTopPerformers(ctx context.Context, log logger.Logger, leaderboard []model.RankedStudent, verbose bool) {
	n := min(topPerformers, len(leaderboard))
	if verbose {
		n = len(leaderboard)
	}
	for _, e := range leaderboard[:n] {
		log.Info(ctx, "leaderboard",
			logger.Int("rank", e.Rank),
			logger.String("name", e.FullName),
			logger.Int("points", e.Points),
			logger.String("class", e.ClassLabel))
	}
}

func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	log.Info(ctx, "final statistics",
		logger.Int("studentsPosted", stats.StudentsPosted),
		logger.Int("leaderboardEntries", stats.LeaderboardEntries),
		logger.Int("ranksChecked", stats.RanksChecked),
		logger.Int("ranksFailed", stats.RanksFailed),
		logger.Duration("duration", stats.Duration))
}
