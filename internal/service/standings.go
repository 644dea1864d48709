package service

import (
	"context"
	"fmt"
	"vct-standings/internal/cache"
	"vct-standings/internal/config"
	"vct-standings/internal/constants"
	"vct-standings/internal/domain"
	"vct-standings/internal/repository"
	"vct-standings/internal/standings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type groupKey struct {
	Region domain.Region
	Group  domain.Group
}

type StandingsService struct {
	teamRepo       *repository.TeamRepository
	matchRepo      *repository.MatchRepository
	predictionRepo *repository.PredictionRepository
	teams          *cache.Cache[groupKey, []domain.Team]
	matches        *cache.Cache[domain.Region, []domain.Match]
	logger         zerolog.Logger
}

func NewStandingsService(
	cfg *config.Config,
	teamRepo *repository.TeamRepository,
	matchRepo *repository.MatchRepository,
	predictionRepo *repository.PredictionRepository,
	logger zerolog.Logger,
) *StandingsService {
	return &StandingsService{
		teamRepo:       teamRepo,
		matchRepo:      matchRepo,
		predictionRepo: predictionRepo,
		teams:          cache.New[groupKey, []domain.Team](cfg.CacheTTL),
		matches:        cache.New[domain.Region, []domain.Match](cfg.CacheTTL),
		logger:         logger,
	}
}

type GroupStandings struct {
	Region           domain.Region
	Group            domain.Group
	Standings        []domain.TeamStanding
	HasPredictions   bool
	PredictionCount  int
	IsGroupCompleted bool
}

type MatchWeek struct {
	Number  int
	Label   string
	Matches []domain.Match
}

type GroupMatches struct {
	Region    domain.Region
	Group     domain.Group
	Teams     []domain.Team
	Weeks     []MatchWeek
	Predicted map[int64]bool // match ids carrying the client's prediction
}

// groupView is a group's teams and matches with the client's predictions
// already laid over the matches that have not been played.
type groupView struct {
	teams     []domain.Team
	matches   []domain.Match
	predicted map[int64]bool
}

func (s *StandingsService) GetGroupStandings(ctx context.Context, region domain.Region, group domain.Group, clientID string) (*GroupStandings, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	view, err := s.loadGroup(ctx, region, group, clientID)
	if err != nil {
		return nil, err
	}

	completed := len(view.matches) > 0
	for _, m := range view.matches {
		if !m.IsCompleted {
			completed = false
			break
		}
	}

	result := &GroupStandings{
		Region:           region,
		Group:            group,
		Standings:        standings.Calculate(view.teams, view.matches),
		HasPredictions:   len(view.predicted) > 0,
		PredictionCount:  len(view.predicted),
		IsGroupCompleted: completed,
	}

	s.logger.Info().
		Str("region", string(region)).
		Str("group", string(group)).
		Int("teams", len(view.teams)).
		Int("matches", len(view.matches)).
		Int("predictions_applied", len(view.predicted)).
		Msg("standings calculated")

	return result, nil
}

// GetGroupMatches lists the group's matches in date order, split into weeks
// of constants.MatchesPerWeek.
func (s *StandingsService) GetGroupMatches(ctx context.Context, region domain.Region, group domain.Group, clientID string) (*GroupMatches, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	view, err := s.loadGroup(ctx, region, group, clientID)
	if err != nil {
		return nil, err
	}

	return &GroupMatches{
		Region:    region,
		Group:     group,
		Teams:     view.teams,
		Weeks:     splitWeeks(view.matches),
		Predicted: view.predicted,
	}, nil
}

// Invalidate drops the cached teams and matches of a region.
func (s *StandingsService) Invalidate(region domain.Region) {
	s.matches.Invalidate(region)
	s.teams.Invalidate(groupKey{region, domain.GroupAlpha})
	s.teams.Invalidate(groupKey{region, domain.GroupOmega})
	s.logger.Debug().Str("region", string(region)).Msg("standings cache invalidated")
}

func (s *StandingsService) loadGroup(ctx context.Context, region domain.Region, group domain.Group, clientID string) (*groupView, error) {
	var (
		teams       []domain.Team
		matches     []domain.Match
		predictions []domain.Prediction
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		teams, err = s.teams.GetOrLoad(gctx, groupKey{region, group}, func(ctx context.Context) ([]domain.Team, error) {
			return s.teamRepo.ListByGroup(ctx, region, group)
		})
		if err != nil {
			return fmt.Errorf("failed to load teams: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		var err error
		matches, err = s.matches.GetOrLoad(gctx, region, func(ctx context.Context) ([]domain.Match, error) {
			return s.matchRepo.ListByRegion(ctx, region)
		})
		if err != nil {
			return fmt.Errorf("failed to load matches: %w", err)
		}
		return nil
	})

	if clientID != "" {
		g.Go(func() error {
			var err error
			predictions, err = s.predictionRepo.ListByClientRegion(gctx, clientID, region)
			if err != nil {
				return fmt.Errorf("failed to load predictions: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().
			Err(err).
			Str("region", string(region)).
			Str("group", string(group)).
			Msg("failed to load group")
		return nil, err
	}

	groupMatches := restrictToGroup(teams, matches)
	predicted := applyPredictions(groupMatches, predictions)

	return &groupView{teams: teams, matches: groupMatches, predicted: predicted}, nil
}

// restrictToGroup copies the matches played between two members of teams.
// The result never aliases the cached slice.
func restrictToGroup(teams []domain.Team, matches []domain.Match) []domain.Match {
	members := make(map[int64]struct{}, len(teams))
	for _, t := range teams {
		members[t.ID] = struct{}{}
	}

	var out []domain.Match
	for _, m := range matches {
		_, ok1 := members[m.Team1ID]
		_, ok2 := members[m.Team2ID]
		if ok1 && ok2 {
			out = append(out, m)
		}
	}
	return out
}

// applyPredictions overwrites the scores of non-completed matches with the
// client's predictions and returns the ids of the matches it changed.
// Completed results always win.
func applyPredictions(matches []domain.Match, predictions []domain.Prediction) map[int64]bool {
	predicted := make(map[int64]bool)
	if len(predictions) == 0 {
		return predicted
	}

	byMatch := make(map[int64]domain.Prediction, len(predictions))
	for _, p := range predictions {
		byMatch[p.MatchID] = p
	}

	for i := range matches {
		if matches[i].IsCompleted {
			continue
		}
		p, ok := byMatch[matches[i].ID]
		if !ok {
			continue
		}
		matches[i].Team1Score = p.Team1Score
		matches[i].Team2Score = p.Team2Score
		predicted[matches[i].ID] = true
	}
	return predicted
}

func splitWeeks(matches []domain.Match) []MatchWeek {
	var weeks []MatchWeek
	for i := 0; i < len(matches); i += constants.MatchesPerWeek {
		end := min(i+constants.MatchesPerWeek, len(matches))
		n := len(weeks) + 1
		weeks = append(weeks, MatchWeek{
			Number:  n,
			Label:   fmt.Sprintf("Week %d", n),
			Matches: matches[i:end],
		})
	}
	return weeks
}
