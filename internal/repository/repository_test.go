package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
	"vct-standings/internal/database"
	"vct-standings/internal/db"
	"vct-standings/internal/domain"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRepos struct {
	teams       *TeamRepository
	matches     *MatchRepository
	predictions *PredictionRepository
	shares      *ShareEventRepository
}

func newTestRepos(t *testing.T) testRepos {
	t.Helper()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "vct.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return newRepos(sqlDB)
}

func newRepos(sqlDB *sql.DB) testRepos {
	queries := db.New(sqlDB)
	logger := zerolog.Nop()
	return testRepos{
		teams:       NewTeamRepository(sqlDB, queries, logger),
		matches:     NewMatchRepository(sqlDB, queries, logger),
		predictions: NewPredictionRepository(sqlDB, queries, logger),
		shares:      NewShareEventRepository(sqlDB, queries, logger),
	}
}

func seedTeams(t *testing.T, repo *TeamRepository, region domain.Region, teams ...domain.Team) []domain.Team {
	t.Helper()
	ctx := context.Background()

	for i := range teams {
		teams[i].Region = region
	}
	_, err := repo.UpsertBatch(ctx, teams)
	require.NoError(t, err)

	stored, err := repo.ListByRegion(ctx, region)
	require.NoError(t, err)
	return stored
}

func TestTeamRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	stored := seedTeams(t, repos.teams, domain.RegionEMEA,
		domain.Team{PandaScoreID: 10, Name: "Fnatic", Abbreviation: "FNC", Group: domain.GroupAlpha},
		domain.Team{PandaScoreID: 11, Name: "Team Heretics", Group: domain.GroupOmega},
		domain.Team{PandaScoreID: 12, Name: "Team Liquid"},
	)
	require.Len(t, stored, 3)
	assert.Equal(t, "Fnatic", stored[0].Name)
	assert.Equal(t, domain.GroupAlpha, stored[2].Group, "missing group defaults to alpha")
	assert.False(t, stored[0].CreatedAt.IsZero())

	t.Run("existing teams are not overwritten", func(t *testing.T) {
		inserted, err := repos.teams.UpsertBatch(ctx, []domain.Team{
			{PandaScoreID: 10, Name: "Renamed", Region: domain.RegionEMEA, Group: domain.GroupOmega},
			{PandaScoreID: 13, Name: "BBL Esports", Region: domain.RegionEMEA},
		})
		require.NoError(t, err)
		assert.Equal(t, 1, inserted)

		teams, err := repos.teams.ListByRegion(ctx, domain.RegionEMEA)
		require.NoError(t, err)
		require.Len(t, teams, 4)
		assert.Equal(t, "Fnatic", teams[0].Name)
		assert.Equal(t, domain.GroupAlpha, teams[0].Group)
	})

	t.Run("list by group", func(t *testing.T) {
		omega, err := repos.teams.ListByGroup(ctx, domain.RegionEMEA, domain.GroupOmega)
		require.NoError(t, err)
		require.Len(t, omega, 1)
		assert.Equal(t, "Team Heretics", omega[0].Name)

		none, err := repos.teams.ListByGroup(ctx, domain.RegionPacific, domain.GroupOmega)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("pandascore id mapping", func(t *testing.T) {
		ids, err := repos.teams.MapPandaScoreIDs(ctx)
		require.NoError(t, err)
		assert.Len(t, ids, 4)
		assert.Equal(t, stored[1].ID, ids[11])
	})

	t.Run("teams without a pandascore id never conflict", func(t *testing.T) {
		inserted, err := repos.teams.UpsertBatch(ctx, []domain.Team{
			{Name: "Local A", Region: domain.RegionChina},
			{Name: "Local B", Region: domain.RegionChina},
		})
		require.NoError(t, err)
		assert.Equal(t, 2, inserted)

		count, err := repos.teams.CountByRegion(ctx, domain.RegionChina)
		require.NoError(t, err)
		assert.Equal(t, 2, count)
	})
}

func TestMatchRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	teams := seedTeams(t, repos.teams, domain.RegionPacific,
		domain.Team{PandaScoreID: 1, Name: "Paper Rex"},
		domain.Team{PandaScoreID: 2, Name: "Gen.G"},
	)

	day := time.Date(2025, 4, 1, 10, 0, 0, 0, time.UTC)
	err := repos.matches.UpsertBatch(ctx, []domain.Match{
		{PandaScoreID: 101, Team1ID: teams[0].ID, Team2ID: teams[1].ID, Region: domain.RegionPacific, MatchDate: day.Add(48 * time.Hour)},
		{PandaScoreID: 100, Team1ID: teams[1].ID, Team2ID: teams[0].ID, Region: domain.RegionPacific, MatchDate: day, Team1Score: 2, Team2Score: 1, IsCompleted: true},
	})
	require.NoError(t, err)

	matches, err := repos.matches.ListByRegion(ctx, domain.RegionPacific)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, int64(100), matches[0].PandaScoreID, "ordered by match date")
	assert.True(t, matches[0].MatchDate.Equal(day))
	assert.True(t, matches[0].IsCompleted)

	t.Run("upsert refreshes scores", func(t *testing.T) {
		err := repos.matches.UpsertBatch(ctx, []domain.Match{
			{PandaScoreID: 101, Team1ID: teams[0].ID, Team2ID: teams[1].ID, Region: domain.RegionPacific, MatchDate: day.Add(48 * time.Hour), Team1Score: 0, Team2Score: 2, IsCompleted: true},
		})
		require.NoError(t, err)

		completed, err := repos.matches.CountByRegion(ctx, domain.RegionPacific, true)
		require.NoError(t, err)
		assert.Equal(t, 2, completed)

		upcoming, err := repos.matches.CountByRegion(ctx, domain.RegionPacific, false)
		require.NoError(t, err)
		assert.Zero(t, upcoming)

		m, err := repos.matches.Get(ctx, matches[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 2, m.Team2Score)
	})

	t.Run("missing match", func(t *testing.T) {
		_, err := repos.matches.Get(ctx, 9999)
		assert.ErrorIs(t, err, ErrMatchNotFound)
	})
}

func TestPredictionRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)
	teams := seedTeams(t, repos.teams, domain.RegionAmericas,
		domain.Team{PandaScoreID: 1, Name: "Sentinels"},
		domain.Team{PandaScoreID: 2, Name: "G2 Esports"},
		domain.Team{PandaScoreID: 3, Name: "NRG"},
	)
	require.NoError(t, repos.matches.UpsertBatch(ctx, []domain.Match{
		{PandaScoreID: 1, Team1ID: teams[0].ID, Team2ID: teams[1].ID, Region: domain.RegionAmericas, MatchDate: time.Now()},
		{PandaScoreID: 2, Team1ID: teams[1].ID, Team2ID: teams[2].ID, Region: domain.RegionAmericas, MatchDate: time.Now()},
	}))
	matches, err := repos.matches.ListByRegion(ctx, domain.RegionAmericas)
	require.NoError(t, err)

	save := func(clientID string, matchID int64, s1, s2 int) {
		t.Helper()
		require.NoError(t, repos.predictions.Upsert(ctx, &domain.Prediction{
			ClientID:   clientID,
			MatchID:    matchID,
			Region:     domain.RegionAmericas,
			Team1Score: s1,
			Team2Score: s2,
		}))
	}

	save("alice", matches[0].ID, 2, 0)
	save("alice", matches[1].ID, 1, 2)
	save("bob", matches[0].ID, 0, 2)

	t.Run("saving again replaces the scores", func(t *testing.T) {
		before, err := repos.predictions.Get(ctx, "alice", matches[0].ID)
		require.NoError(t, err)

		save("alice", matches[0].ID, 2, 1)

		after, err := repos.predictions.Get(ctx, "alice", matches[0].ID)
		require.NoError(t, err)
		assert.Equal(t, before.ID, after.ID)
		assert.Equal(t, 1, after.Team2Score)
	})

	t.Run("list is scoped to client and region", func(t *testing.T) {
		alice, err := repos.predictions.ListByClientRegion(ctx, "alice", domain.RegionAmericas)
		require.NoError(t, err)
		assert.Len(t, alice, 2)

		other, err := repos.predictions.ListByClientRegion(ctx, "alice", domain.RegionEMEA)
		require.NoError(t, err)
		assert.Empty(t, other)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repos.predictions.Delete(ctx, "bob", matches[0].ID))
		assert.ErrorIs(t, repos.predictions.Delete(ctx, "bob", matches[0].ID), ErrPredictionNotFound)

		_, err := repos.predictions.Get(ctx, "bob", matches[0].ID)
		assert.ErrorIs(t, err, ErrPredictionNotFound)
	})

	t.Run("delete all for region", func(t *testing.T) {
		n, err := repos.predictions.DeleteAllForRegion(ctx, "alice", domain.RegionAmericas)
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		left, err := repos.predictions.ListByClientRegion(ctx, "alice", domain.RegionAmericas)
		require.NoError(t, err)
		assert.Empty(t, left)
	})
}

func TestShareEventRepository(t *testing.T) {
	ctx := context.Background()
	repos := newTestRepos(t)

	event := &domain.ShareEvent{Region: domain.RegionChina, PredictionCount: 4, ShareURL: "https://example.com/?share=abc"}
	require.NoError(t, repos.shares.Insert(ctx, event))
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())

	count, err := repos.shares.CountByRegion(ctx, domain.RegionChina)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
