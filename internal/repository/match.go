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

	"github.com/rs/zerolog"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

// ListByRegion returns the region's matches ordered by match date.
func (r *MatchRepository) ListByRegion(ctx context.Context, region domain.Region) ([]domain.Match, error) {
	rows, err := r.queries.ListMatchesByRegion(ctx, string(region))
	if err != nil {
		return nil, err
	}

	matches := make([]domain.Match, len(rows))
	for i, m := range rows {
		matches[i] = toDomainMatch(m)
	}
	return matches, nil
}

func (r *MatchRepository) Get(ctx context.Context, id int64) (*domain.Match, error) {
	row, err := r.queries.GetMatch(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMatchNotFound
	}
	if err != nil {
		return nil, err
	}
	match := toDomainMatch(row)
	return &match, nil
}

// UpsertBatch stores matches, refreshing date, scores and completion for rows
// already known by their PandaScore id.
func (r *MatchRepository) UpsertBatch(ctx context.Context, matches []domain.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()

	for i := 0; i < len(matches); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(matches))

		for _, match := range matches[i:end] {
			createdAt := match.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}

			err := qtx.UpsertMatch(ctx, db.UpsertMatchParams{
				PandascoreID: nullID(match.PandaScoreID),
				Team1ID:      match.Team1ID,
				Team2ID:      match.Team2ID,
				Region:       string(match.Region),
				MatchDate:    match.MatchDate.UTC(),
				Team1Score:   int64(match.Team1Score),
				Team2Score:   int64(match.Team2Score),
				IsCompleted:  match.IsCompleted,
				CreatedAt:    createdAt,
			})
			if err != nil {
				return fmt.Errorf("failed to upsert match %d: %w", match.PandaScoreID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit matches: %w", err)
	}

	r.logger.Debug().Int("count", len(matches)).Msg("matches stored")
	return nil
}

func (r *MatchRepository) CountByRegion(ctx context.Context, region domain.Region, completed bool) (int, error) {
	n, err := r.queries.CountMatchesByRegion(ctx, db.CountMatchesByRegionParams{
		Region:      string(region),
		IsCompleted: completed,
	})
	return int(n), err
}

func toDomainMatch(m db.Match) domain.Match {
	return domain.Match{
		ID:           m.ID,
		PandaScoreID: m.PandascoreID.Int64,
		Team1ID:      m.Team1ID,
		Team2ID:      m.Team2ID,
		Region:       domain.Region(m.Region),
		MatchDate:    m.MatchDate,
		Team1Score:   int(m.Team1Score),
		Team2Score:   int(m.Team2Score),
		IsCompleted:  m.IsCompleted,
		CreatedAt:    m.CreatedAt,
	}
}
