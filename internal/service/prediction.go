package service

import (
	"context"
	"fmt"
	"vct-standings/internal/constants"
	"vct-standings/internal/domain"
	"vct-standings/internal/repository"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type PredictionService struct {
	matchRepo      *repository.MatchRepository
	predictionRepo *repository.PredictionRepository
	logger         zerolog.Logger
}

func NewPredictionService(matchRepo *repository.MatchRepository, predictionRepo *repository.PredictionRepository, logger zerolog.Logger) *PredictionService {
	return &PredictionService{matchRepo: matchRepo, predictionRepo: predictionRepo, logger: logger}
}

// ScoreLine is a predicted best-of-3 result for one match.
type ScoreLine struct {
	MatchID    int64 `json:"matchId"`
	Team1Score int   `json:"team1Score"`
	Team2Score int   `json:"team2Score"`
}

// ValidateScore accepts any map count from 0 to 2 for each team except 2-2.
// 1-0 and 0-1 count as a series win for the leading team; 0-0 and 1-1 are
// left undecided.
func ValidateScore(team1, team2 int) error {
	if team1 < 0 || team2 < 0 || team1 > constants.MaxMapScore || team2 > constants.MaxMapScore {
		return fmt.Errorf("%w: %d-%d", domain.ErrInvalidScore, team1, team2)
	}
	if team1 == constants.MaxMapScore && team2 == constants.MaxMapScore {
		return fmt.Errorf("%w: both teams cannot win %d maps", domain.ErrInvalidScore, constants.MaxMapScore)
	}
	return nil
}

func NewClientID() (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("failed to generate client id: %w", err)
	}
	return id, nil
}

func (s *PredictionService) Save(ctx context.Context, clientID string, line ScoreLine) (*domain.Prediction, error) {
	if err := ValidateScore(line.Team1Score, line.Team2Score); err != nil {
		return nil, err
	}

	match, err := s.matchRepo.Get(ctx, line.MatchID)
	if err != nil {
		return nil, err
	}
	if match.IsCompleted {
		return nil, fmt.Errorf("%w: %d", domain.ErrMatchCompleted, match.ID)
	}

	p := &domain.Prediction{
		ClientID:   clientID,
		MatchID:    match.ID,
		Region:     match.Region,
		Team1Score: line.Team1Score,
		Team2Score: line.Team2Score,
	}
	if err := s.predictionRepo.Upsert(ctx, p); err != nil {
		s.logger.Error().Err(err).Int64("match_id", match.ID).Msg("failed to save prediction")
		return nil, fmt.Errorf("failed to save prediction: %w", err)
	}

	saved, err := s.predictionRepo.Get(ctx, clientID, match.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload prediction: %w", err)
	}

	s.logger.Debug().
		Str("client_id", clientID).
		Int64("match_id", match.ID).
		Int("team1_score", saved.Team1Score).
		Int("team2_score", saved.Team2Score).
		Msg("prediction saved")
	return saved, nil
}

// SaveAll stores every line that targets an upcoming match of the region and
// returns how many were stored. Lines for unknown or completed matches are
// skipped; an invalid score fails the whole batch.
func (s *PredictionService) SaveAll(ctx context.Context, clientID string, region domain.Region, lines []ScoreLine) (int, error) {
	for _, line := range lines {
		if err := ValidateScore(line.Team1Score, line.Team2Score); err != nil {
			return 0, err
		}
	}

	matches, err := s.matchRepo.ListByRegion(ctx, region)
	if err != nil {
		return 0, fmt.Errorf("failed to load matches: %w", err)
	}
	upcoming := make(map[int64]bool, len(matches))
	for _, m := range matches {
		if !m.IsCompleted {
			upcoming[m.ID] = true
		}
	}

	predictions := make([]domain.Prediction, 0, len(lines))
	for _, line := range lines {
		if !upcoming[line.MatchID] {
			s.logger.Debug().Int64("match_id", line.MatchID).Msg("skipping prediction for unknown or completed match")
			continue
		}
		predictions = append(predictions, domain.Prediction{
			ClientID:   clientID,
			MatchID:    line.MatchID,
			Region:     region,
			Team1Score: line.Team1Score,
			Team2Score: line.Team2Score,
		})
	}

	if err := s.predictionRepo.UpsertBatch(ctx, predictions); err != nil {
		s.logger.Error().Err(err).Str("region", string(region)).Msg("failed to save predictions")
		return 0, fmt.Errorf("failed to save predictions: %w", err)
	}
	return len(predictions), nil
}

func (s *PredictionService) Delete(ctx context.Context, clientID string, matchID int64) error {
	return s.predictionRepo.Delete(ctx, clientID, matchID)
}

func (s *PredictionService) Reset(ctx context.Context, clientID string, region domain.Region) (int, error) {
	n, err := s.predictionRepo.DeleteAllForRegion(ctx, clientID, region)
	if err != nil {
		s.logger.Error().Err(err).Str("region", string(region)).Msg("failed to reset predictions")
		return 0, fmt.Errorf("failed to reset predictions: %w", err)
	}
	return n, nil
}

func (s *PredictionService) List(ctx context.Context, clientID string, region domain.Region) ([]domain.Prediction, error) {
	return s.predictionRepo.ListByClientRegion(ctx, clientID, region)
}
