package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"
	"vct-standings/internal/api"
	"vct-standings/internal/config"
	"vct-standings/internal/constants"
	"vct-standings/internal/database"
	"vct-standings/internal/db"
	"vct-standings/internal/middleware"
	"vct-standings/internal/repository"
	"vct-standings/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePandaScore serves a small EMEA series: FNC beat TH, TH and TL still
// to play, FNC and TL still to play.
func fakePandaScore(t *testing.T) *httptest.Server {
	t.Helper()

	team := func(id int64, name, acronym string) api.Opponent {
		return api.Opponent{Type: "Team", Opponent: &api.Team{ID: id, Name: name, Acronym: acronym}}
	}
	fnc, th, tl := team(10, "Fnatic", "FNC"), team(11, "Team Heretics", "TH"), team(12, "Team Liquid", "TL")

	day := time.Date(2025, 7, 18, 15, 0, 0, 0, time.UTC)
	end := day.Add(3 * time.Hour)
	next, later := day.Add(24*time.Hour), day.Add(48*time.Hour)
	winner := int64(10)

	emea := []api.Match{
		{
			ID: 1, Status: api.StatusFinished, BeginAt: &day, EndAt: &end, WinnerID: &winner,
			Opponents: []api.Opponent{fnc, th},
			Results:   []api.Result{{TeamID: 10, Score: 2}, {TeamID: 11, Score: 0}},
		},
		{ID: 2, Status: api.StatusNotStarted, BeginAt: &next, Opponents: []api.Opponent{th, tl}},
		{ID: 3, Status: api.StatusNotStarted, BeginAt: &later, Opponents: []api.Opponent{fnc, tl}},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		matches := []api.Match{}
		if r.URL.Query().Get("filter[serie_id]") == "9441" {
			matches = emea
		}
		assert.NoError(t, json.NewEncoder(w).Encode(matches))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestServer(t *testing.T, token string) *StandingsServiceClient {
	t.Helper()

	pandascore := fakePandaScore(t)
	cfg := &config.Config{
		PandaScoreToken:   token,
		PandaScoreBaseURL: pandascore.URL,
		CacheTTL:          constants.DefaultCacheTTL,
		ShareBaseURL:      "https://vct.example",
	}
	logger := zerolog.Nop()

	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "vct.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	queries := db.New(sqlDB)
	teamRepo := repository.NewTeamRepository(sqlDB, queries, logger)
	matchRepo := repository.NewMatchRepository(sqlDB, queries, logger)
	predictionRepo := repository.NewPredictionRepository(sqlDB, queries, logger)
	shareRepo := repository.NewShareEventRepository(sqlDB, queries, logger)

	standingsSvc := service.NewStandingsService(cfg, teamRepo, matchRepo, predictionRepo, logger)
	predictionSvc := service.NewPredictionService(matchRepo, predictionRepo, logger)
	shareSvc := service.NewShareService(cfg, predictionSvc, shareRepo, logger)
	syncSvc := service.NewSyncService(cfg, api.NewPandaScoreClient(cfg), teamRepo, matchRepo, standingsSvc, logger)

	path, handler := NewStandingsServiceHandler(NewStandingsServer(cfg, standingsSvc, predictionSvc, shareSvc, syncSvc))
	mux := http.NewServeMux()
	mux.Handle(path, middleware.RequestID(logger)(handler))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return NewStandingsServiceClient(srv.Client(), srv.URL)
}

func TestStandingsService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t, "token")

	synced, err := client.SyncRegion(ctx, connect.NewRequest(&SyncRegionRequest{Region: "emea"}))
	require.NoError(t, err)
	assert.Equal(t, 3, synced.Msg.TeamsAdded)
	assert.Equal(t, 1, synced.Msg.CompletedMatches)
	assert.Equal(t, 2, synced.Msg.UpcomingMatches)

	standings, err := client.GetStandings(ctx, connect.NewRequest(&GetStandingsRequest{Region: "emea", Group: "alpha"}))
	require.NoError(t, err)
	require.Len(t, standings.Msg.Standings, 3)
	assert.Equal(t, "Fnatic", standings.Msg.Standings[0].Name)
	assert.Equal(t, 1, standings.Msg.Standings[0].Position)
	assert.Equal(t, 2, standings.Msg.Standings[0].MapDiff)
	assert.Equal(t, 4, standings.Msg.QualificationCutoff)
	assert.False(t, standings.Msg.HasPredictions)

	matches, err := client.GetGroupMatches(ctx, connect.NewRequest(&GetGroupMatchesRequest{Region: "emea", Group: "alpha"}))
	require.NoError(t, err)
	require.Len(t, matches.Msg.Weeks, 1)
	week := matches.Msg.Weeks[0]
	require.Len(t, week.Matches, 3)
	assert.Equal(t, "Week 1", week.Label)
	assert.Equal(t, "FNC", week.Matches[0].Team1.Abbreviation)
	assert.Equal(t, "2025-07-18T15:00:00Z", week.Matches[0].MatchDate)
	upcoming := week.Matches[1]

	// first write without a client id gets one assigned
	saved, err := client.SavePrediction(ctx, connect.NewRequest(&SavePredictionRequest{
		MatchID:    upcoming.ID,
		Team1Score: 0,
		Team2Score: 2,
	}))
	require.NoError(t, err)
	clientID := saved.Msg.ClientID
	require.NotEmpty(t, clientID)
	assert.Equal(t, "emea", saved.Msg.Prediction.Region)

	predicted, err := client.GetStandings(ctx, connect.NewRequest(&GetStandingsRequest{Region: "emea", Group: "alpha", ClientID: clientID}))
	require.NoError(t, err)
	assert.True(t, predicted.Msg.HasPredictions)
	assert.Equal(t, 1, predicted.Msg.PredictionCount)

	withPrediction, err := client.GetGroupMatches(ctx, connect.NewRequest(&GetGroupMatchesRequest{Region: "emea", Group: "alpha", ClientID: clientID}))
	require.NoError(t, err)
	assert.True(t, withPrediction.Msg.Weeks[0].Matches[1].IsPredicted)
	assert.Equal(t, 2, withPrediction.Msg.Weeks[0].Matches[1].Team2Score)

	list, err := client.ListPredictions(ctx, connect.NewRequest(&ListPredictionsRequest{ClientID: clientID, Region: "emea"}))
	require.NoError(t, err)
	assert.Len(t, list.Msg.Predictions, 1)

	share, err := client.CreateShare(ctx, connect.NewRequest(&CreateShareRequest{ClientID: clientID, Region: "emea"}))
	require.NoError(t, err)
	assert.Equal(t, "1/1 matches predicted", share.Msg.Summary)

	imported, err := client.ImportShare(ctx, connect.NewRequest(&ImportShareRequest{Code: share.Msg.Code}))
	require.NoError(t, err)
	assert.NotEqual(t, clientID, imported.Msg.ClientID)
	assert.Equal(t, "emea", imported.Msg.Region)
	assert.Equal(t, 1, imported.Msg.Imported)

	_, err = client.DeletePrediction(ctx, connect.NewRequest(&DeletePredictionRequest{ClientID: clientID, MatchID: upcoming.ID}))
	require.NoError(t, err)

	reset, err := client.ResetPredictions(ctx, connect.NewRequest(&ResetPredictionsRequest{ClientID: imported.Msg.ClientID, Region: "emea"}))
	require.NoError(t, err)
	assert.Equal(t, 1, reset.Msg.Deleted)

	status, err := client.SyncStatus(ctx, connect.NewRequest(&SyncStatusRequest{}))
	require.NoError(t, err)
	assert.True(t, status.Msg.SyncEnabled)
	assert.True(t, status.Msg.APIReachable)
	require.Len(t, status.Msg.Regions, 4)
	assert.Equal(t, RegionStatus{Region: "emea", Teams: 3, CompletedMatches: 1, UpcomingMatches: 2}, status.Msg.Regions[1])
}

func TestStandingsService_ErrorCodes(t *testing.T) {
	ctx := context.Background()
	client := newTestServer(t, "")

	tests := []struct {
		name string
		call func() error
		code connect.Code
	}{
		{
			name: "unknown region",
			call: func() error {
				_, err := client.GetStandings(ctx, connect.NewRequest(&GetStandingsRequest{Region: "mars", Group: "alpha"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown group",
			call: func() error {
				_, err := client.GetGroupMatches(ctx, connect.NewRequest(&GetGroupMatchesRequest{Region: "emea", Group: "gamma"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "invalid score",
			call: func() error {
				_, err := client.SavePrediction(ctx, connect.NewRequest(&SavePredictionRequest{MatchID: 1, Team1Score: 2, Team2Score: 2}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "unknown match",
			call: func() error {
				_, err := client.SavePrediction(ctx, connect.NewRequest(&SavePredictionRequest{MatchID: 404, Team1Score: 2}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "missing prediction",
			call: func() error {
				_, err := client.DeletePrediction(ctx, connect.NewRequest(&DeletePredictionRequest{ClientID: "nobody", MatchID: 1}))
				return err
			},
			code: connect.CodeNotFound,
		},
		{
			name: "bad share code",
			call: func() error {
				_, err := client.ImportShare(ctx, connect.NewRequest(&ImportShareRequest{Code: "not-a-share"}))
				return err
			},
			code: connect.CodeInvalidArgument,
		},
		{
			name: "sync without token",
			call: func() error {
				_, err := client.SyncRegion(ctx, connect.NewRequest(&SyncRegionRequest{Region: "emea"}))
				return err
			},
			code: connect.CodeFailedPrecondition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.Equal(t, tt.code, connect.CodeOf(err))
		})
	}

	t.Run("status still answers without a token", func(t *testing.T) {
		status, err := client.SyncStatus(ctx, connect.NewRequest(&SyncStatusRequest{}))
		require.NoError(t, err)
		assert.False(t, status.Msg.SyncEnabled)
		assert.False(t, status.Msg.APIReachable)
	})
}

func TestUnknownProcedure(t *testing.T) {
	_, handler := NewStandingsServiceHandler(&StandingsServer{})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/"+StandingsServiceName+"/Nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
