package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"vct-standings/internal/constants"
	"vct-standings/internal/db"
	"vct-standings/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrPredictionNotFound = errors.New("prediction not found")

type PredictionRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewPredictionRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *PredictionRepository {
	return &PredictionRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *PredictionRepository) ListByClientRegion(ctx context.Context, clientID string, region domain.Region) ([]domain.Prediction, error) {
	rows, err := r.queries.ListPredictionsByClientRegion(ctx, db.ListPredictionsByClientRegionParams{
		ClientID: clientID,
		Region:   string(region),
	})
	if err != nil {
		return nil, err
	}

	predictions := make([]domain.Prediction, len(rows))
	for i, p := range rows {
		predictions[i] = toDomainPrediction(p)
	}
	return predictions, nil
}

func (r *PredictionRepository) Get(ctx context.Context, clientID string, matchID int64) (*domain.Prediction, error) {
	row, err := r.queries.GetPrediction(ctx, db.GetPredictionParams{
		ClientID: clientID,
		MatchID:  matchID,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPredictionNotFound
	}
	if err != nil {
		return nil, err
	}
	p := toDomainPrediction(row)
	return &p, nil
}

// Upsert stores one prediction per (client, match); saving again replaces
// the scores.
func (r *PredictionRepository) Upsert(ctx context.Context, p *domain.Prediction) error {
	return r.UpsertBatch(ctx, []domain.Prediction{*p})
}

func (r *PredictionRepository) UpsertBatch(ctx context.Context, predictions []domain.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i := 0; i < len(predictions); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(predictions))

		for _, p := range predictions[i:end] {
			id := p.ID
			if id == "" {
				id, err = gonanoid.New()
				if err != nil {
					return fmt.Errorf("failed to generate nanoid: %w", err)
				}
			}

			err := qtx.UpsertPrediction(ctx, db.UpsertPredictionParams{
				ID:         id,
				ClientID:   p.ClientID,
				MatchID:    p.MatchID,
				Region:     string(p.Region),
				Team1Score: int64(p.Team1Score),
				Team2Score: int64(p.Team2Score),
				CreatedAt:  now,
				UpdatedAt:  now,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert prediction for match %d: %w", p.MatchID, err)
			}
		}
	}

	return tx.Commit()
}

func (r *PredictionRepository) Delete(ctx context.Context, clientID string, matchID int64) error {
	n, err := r.queries.DeletePrediction(ctx, db.DeletePredictionParams{
		ClientID: clientID,
		MatchID:  matchID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrPredictionNotFound
	}
	return nil
}

// DeleteAllForRegion removes every prediction the client made in the region
// and returns how many were removed.
func (r *PredictionRepository) DeleteAllForRegion(ctx context.Context, clientID string, region domain.Region) (int, error) {
	n, err := r.queries.DeletePredictionsByClientRegion(ctx, db.DeletePredictionsByClientRegionParams{
		ClientID: clientID,
		Region:   string(region),
	})
	if err != nil {
		return 0, err
	}

	r.logger.Debug().
		Str("client_id", clientID).
		Str("region", string(region)).
		Int64("deleted", n).
		Msg("predictions reset")
	return int(n), nil
}

func toDomainPrediction(p db.Prediction) domain.Prediction {
	return domain.Prediction{
		ID:         p.ID,
		ClientID:   p.ClientID,
		MatchID:    p.MatchID,
		Region:     domain.Region(p.Region),
		Team1Score: int(p.Team1Score),
		Team2Score: int(p.Team2Score),
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}
