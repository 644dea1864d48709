package service

import (
	"context"
	"fmt"
	"sync"
	"time"
	"vct-standings/internal/api"
	"vct-standings/internal/config"
	"vct-standings/internal/constants"
	"vct-standings/internal/domain"
	"vct-standings/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const opponentTeam = "Team"

// MatchSource is the upstream schedule the sync reads from.
type MatchSource interface {
	GetSeriesMatches(ctx context.Context, seriesID int64) ([]api.Match, error)
	TestConnection(ctx context.Context) error
}

type SyncService struct {
	enabled   bool
	source    MatchSource
	teamRepo  *repository.TeamRepository
	matchRepo *repository.MatchRepository
	standings *StandingsService
	logger    zerolog.Logger
}

func NewSyncService(
	cfg *config.Config,
	pandascore *api.PandaScoreClient,
	teamRepo *repository.TeamRepository,
	matchRepo *repository.MatchRepository,
	standings *StandingsService,
	logger zerolog.Logger,
) *SyncService {
	return newSyncService(cfg.SyncEnabled(), pandascore, teamRepo, matchRepo, standings, logger)
}

func newSyncService(
	enabled bool,
	source MatchSource,
	teamRepo *repository.TeamRepository,
	matchRepo *repository.MatchRepository,
	standings *StandingsService,
	logger zerolog.Logger,
) *SyncService {
	return &SyncService{
		enabled:   enabled,
		source:    source,
		teamRepo:  teamRepo,
		matchRepo: matchRepo,
		standings: standings,
		logger:    logger,
	}
}

type SyncResult struct {
	Region           domain.Region
	TeamsFound       int
	TeamsAdded       int
	CompletedMatches int
	UpcomingMatches  int
	Skipped          int
}

type SyncStatus struct {
	APIReachable bool
	APIError     string
	Regions      map[domain.Region]domain.RegionSyncStatus
}

// SyncTeams collects every team appearing in any region's series and stores
// the ones not seen before. It returns how many teams were found and added.
func (s *SyncService) SyncTeams(ctx context.Context) (found, added int, err error) {
	if !s.enabled {
		return 0, 0, domain.ErrSyncDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, constants.SyncTimeout)
	defer cancel()

	var (
		mu    sync.Mutex
		teams = make(map[int64]domain.Team)
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, region := range domain.Regions {
		seriesID := constants.SeriesByRegion[string(region)]
		g.Go(func() error {
			matches, err := s.source.GetSeriesMatches(gctx, seriesID)
			if err != nil {
				// one region failing must not block the others
				s.logger.Warn().Err(err).Str("region", string(region)).Int64("series_id", seriesID).Msg("failed to fetch series")
				return nil
			}

			mu.Lock()
			defer mu.Unlock()
			for _, m := range matches {
				for _, o := range m.Opponents {
					if o.Type != opponentTeam || o.Opponent == nil {
						continue
					}
					if _, ok := teams[o.Opponent.ID]; ok {
						continue
					}
					teams[o.Opponent.ID] = domain.Team{
						PandaScoreID: o.Opponent.ID,
						Name:         o.Opponent.Name,
						Abbreviation: o.Opponent.Acronym,
						LogoURL:      o.Opponent.ImageURL,
						Group:        domain.GroupAlpha,
						Region:       region,
					}
				}
			}
			s.logger.Debug().Str("region", string(region)).Int("matches", len(matches)).Msg("series fetched")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, 0, err
	}

	batch := make([]domain.Team, 0, len(teams))
	for _, t := range teams {
		batch = append(batch, t)
	}

	added, err = s.teamRepo.UpsertBatch(ctx, batch)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store teams")
		return 0, 0, fmt.Errorf("failed to store teams: %w", err)
	}

	s.logger.Info().Int("found", len(batch)).Int("added", added).Msg("teams synced")
	return len(batch), added, nil
}

// SyncRegion refreshes teams, then the region's completed and upcoming
// matches, and drops the region's cached standings data.
func (s *SyncService) SyncRegion(ctx context.Context, region domain.Region) (*SyncResult, error) {
	if !s.enabled {
		return nil, domain.ErrSyncDisabled
	}

	found, added, err := s.SyncTeams(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, constants.SyncTimeout)
	defer cancel()

	seriesID := constants.SeriesByRegion[string(region)]
	upstream, err := s.source.GetSeriesMatches(ctx, seriesID)
	if err != nil {
		s.logger.Error().Err(err).Str("region", string(region)).Msg("failed to fetch matches")
		return nil, fmt.Errorf("failed to fetch matches for %s: %w", region, err)
	}

	teamIDs, err := s.teamRepo.MapPandaScoreIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to map teams: %w", err)
	}

	result := &SyncResult{Region: region, TeamsFound: found, TeamsAdded: added}
	var completed, upcoming []domain.Match
	now := time.Now().UTC()

	for _, m := range upstream {
		isCompleted := m.IsCompleted()
		if !isCompleted && !m.IsUpcoming() {
			continue
		}

		match, ok := s.toMatch(m, region, teamIDs, now)
		if !ok {
			result.Skipped++
			continue
		}

		if isCompleted {
			completed = append(completed, match)
		} else {
			upcoming = append(upcoming, match)
		}
	}

	if err := s.matchRepo.UpsertBatch(ctx, completed); err != nil {
		s.logger.Error().Err(err).Str("region", string(region)).Msg("failed to store completed matches")
		return nil, fmt.Errorf("failed to store completed matches: %w", err)
	}
	if err := s.matchRepo.UpsertBatch(ctx, upcoming); err != nil {
		s.logger.Error().Err(err).Str("region", string(region)).Msg("failed to store upcoming matches")
		return nil, fmt.Errorf("failed to store upcoming matches: %w", err)
	}

	s.standings.Invalidate(region)

	result.CompletedMatches = len(completed)
	result.UpcomingMatches = len(upcoming)

	s.logger.Info().
		Str("region", string(region)).
		Int("completed", result.CompletedMatches).
		Int("upcoming", result.UpcomingMatches).
		Int("skipped", result.Skipped).
		Msg("region synced")
	return result, nil
}

func (s *SyncService) toMatch(m api.Match, region domain.Region, teamIDs map[int64]int64, now time.Time) (domain.Match, bool) {
	t1, t2, ok := m.Teams()
	if !ok {
		s.logger.Warn().Int64("match_id", m.ID).Msg("skipping match with invalid team structure")
		return domain.Match{}, false
	}

	id1, ok1 := teamIDs[t1.ID]
	id2, ok2 := teamIDs[t2.ID]
	if !ok1 || !ok2 {
		s.logger.Warn().Int64("match_id", m.ID).Msg("skipping match with unknown teams")
		return domain.Match{}, false
	}

	match := domain.Match{
		PandaScoreID: m.ID,
		Team1ID:      id1,
		Team2ID:      id2,
		Region:       region,
		MatchDate:    now,
		IsCompleted:  m.IsCompleted(),
	}
	if m.BeginAt != nil {
		match.MatchDate = m.BeginAt.UTC()
	}
	if match.IsCompleted {
		match.Team1Score = m.ScoreOf(t1.ID)
		match.Team2Score = m.ScoreOf(t2.ID)
	}
	return match, true
}

func (s *SyncService) TestConnection(ctx context.Context) error {
	if !s.enabled {
		return domain.ErrSyncDisabled
	}

	ctx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()
	return s.source.TestConnection(ctx)
}

// Status reports per-region counts from storage. The API check is skipped
// when sync is disabled.
func (s *SyncService) Status(ctx context.Context) (*SyncStatus, error) {
	status := &SyncStatus{Regions: make(map[domain.Region]domain.RegionSyncStatus, len(domain.Regions))}

	if err := s.TestConnection(ctx); err != nil {
		status.APIError = err.Error()
	} else {
		status.APIReachable = true
	}

	for _, region := range domain.Regions {
		teams, err := s.teamRepo.CountByRegion(ctx, region)
		if err != nil {
			return nil, fmt.Errorf("failed to count teams: %w", err)
		}
		completed, err := s.matchRepo.CountByRegion(ctx, region, true)
		if err != nil {
			return nil, fmt.Errorf("failed to count completed matches: %w", err)
		}
		upcoming, err := s.matchRepo.CountByRegion(ctx, region, false)
		if err != nil {
			return nil, fmt.Errorf("failed to count upcoming matches: %w", err)
		}
		status.Regions[region] = domain.RegionSyncStatus{
			Teams:            teams,
			CompletedMatches: completed,
			UpcomingMatches:  upcoming,
		}
	}
	return status, nil
}
