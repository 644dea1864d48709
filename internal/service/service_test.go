package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"
	"vct-standings/internal/config"
	"vct-standings/internal/database"
	"vct-standings/internal/db"
	"vct-standings/internal/domain"
	"vct-standings/internal/repository"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	teams       *repository.TeamRepository
	matches     *repository.MatchRepository
	predictions *repository.PredictionRepository
	shares      *repository.ShareEventRepository

	standings  *StandingsService
	prediction *PredictionService
	share      *ShareService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "vct.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	cfg := &config.Config{CacheTTL: time.Minute, ShareBaseURL: "https://vct.example"}
	queries := db.New(sqlDB)
	logger := zerolog.Nop()

	f := &fixture{
		teams:       repository.NewTeamRepository(sqlDB, queries, logger),
		matches:     repository.NewMatchRepository(sqlDB, queries, logger),
		predictions: repository.NewPredictionRepository(sqlDB, queries, logger),
		shares:      repository.NewShareEventRepository(sqlDB, queries, logger),
	}
	f.standings = NewStandingsService(cfg, f.teams, f.matches, f.predictions, logger)
	f.prediction = NewPredictionService(f.matches, f.predictions, logger)
	f.share = NewShareService(cfg, f.prediction, f.shares, logger)
	return f
}

// seedGroup stores teams named after their position in names and returns
// their ids in the same order.
func (f *fixture) seedGroup(t *testing.T, region domain.Region, group domain.Group, names ...string) []int64 {
	t.Helper()
	ctx := context.Background()

	teams := make([]domain.Team, len(names))
	for i, n := range names {
		teams[i] = domain.Team{Name: n, Region: region, Group: group}
	}
	_, err := f.teams.UpsertBatch(ctx, teams)
	require.NoError(t, err)

	stored, err := f.teams.ListByGroup(ctx, region, group)
	require.NoError(t, err)

	byName := make(map[string]int64, len(stored))
	for _, s := range stored {
		byName[s.Name] = s.ID
	}
	ids := make([]int64, len(names))
	for i, n := range names {
		ids[i] = byName[n]
	}
	return ids
}

var baseDate = time.Date(2025, 7, 18, 15, 0, 0, 0, time.UTC)

// seedMatches stores matches in the order given, one day apart, and returns
// them with their ids.
func (f *fixture) seedMatches(t *testing.T, region domain.Region, matches ...domain.Match) []domain.Match {
	t.Helper()
	ctx := context.Background()

	for i := range matches {
		matches[i].Region = region
		matches[i].MatchDate = baseDate.Add(time.Duration(i) * 24 * time.Hour)
	}
	require.NoError(t, f.matches.UpsertBatch(ctx, matches))

	stored, err := f.matches.ListByRegion(ctx, region)
	require.NoError(t, err)
	return stored
}

func played(t1, t2 int64, s1, s2 int) domain.Match {
	return domain.Match{Team1ID: t1, Team2ID: t2, Team1Score: s1, Team2Score: s2, IsCompleted: true}
}

func upcoming(t1, t2 int64) domain.Match {
	return domain.Match{Team1ID: t1, Team2ID: t2}
}
