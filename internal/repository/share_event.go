package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"vct-standings/internal/db"
	"vct-standings/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type ShareEventRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewShareEventRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *ShareEventRepository {
	return &ShareEventRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *ShareEventRepository) Insert(ctx context.Context, event *domain.ShareEvent) error {
	if event.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
		event.ID = id
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	return r.queries.InsertShareEvent(ctx, db.InsertShareEventParams{
		ID:              event.ID,
		Region:          string(event.Region),
		PredictionCount: int64(event.PredictionCount),
		ShareUrl:        event.ShareURL,
		CreatedAt:       event.CreatedAt,
	})
}

func (r *ShareEventRepository) CountByRegion(ctx context.Context, region domain.Region) (int, error) {
	n, err := r.queries.CountShareEventsByRegion(ctx, string(region))
	return int(n), err
}
