package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
	"vct-standings/internal/constants"
	"vct-standings/internal/db"
	"vct-standings/internal/domain"

	"github.com/rs/zerolog"
)

type TeamRepository struct {
	queries *db.Queries
	db      *sql.DB
	logger  zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, queries *db.Queries, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		queries: queries,
		db:      sqlDB,
		logger:  logger,
	}
}

func (r *TeamRepository) ListByRegion(ctx context.Context, region domain.Region) ([]domain.Team, error) {
	rows, err := r.queries.ListTeamsByRegion(ctx, string(region))
	if err != nil {
		return nil, err
	}
	return toDomainTeams(rows), nil
}

func (r *TeamRepository) ListByGroup(ctx context.Context, region domain.Region, group domain.Group) ([]domain.Team, error) {
	rows, err := r.queries.ListTeamsByGroup(ctx, db.ListTeamsByGroupParams{
		Region:    string(region),
		GroupName: string(group),
	})
	if err != nil {
		return nil, err
	}
	return toDomainTeams(rows), nil
}

// UpsertBatch inserts teams that are not stored yet and returns how many were
// added. A team already known by its PandaScore id is left untouched.
func (r *TeamRepository) UpsertBatch(ctx context.Context, teams []domain.Team) (int, error) {
	if len(teams) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	qtx := r.queries.WithTx(tx)
	now := time.Now().UTC()
	inserted := 0

	for i := 0; i < len(teams); i += constants.DBBatchSize {
		end := min(i+constants.DBBatchSize, len(teams))

		for _, team := range teams[i:end] {
			group := team.Group
			if group == "" {
				group = domain.GroupAlpha
			}
			createdAt := team.CreatedAt
			if createdAt.IsZero() {
				createdAt = now
			}

			n, err := qtx.InsertTeam(ctx, db.InsertTeamParams{
				PandascoreID: nullID(team.PandaScoreID),
				Name:         team.Name,
				Abbreviation: team.Abbreviation,
				LogoUrl:      team.LogoURL,
				Region:       string(team.Region),
				GroupName:    string(group),
				RoundsWon:    int64(team.SeasonRoundsWon),
				RoundsLost:   int64(team.SeasonRoundsLost),
				CreatedAt:    createdAt,
			})
			if err != nil {
				return 0, fmt.Errorf("failed to insert team %s: %w", team.Name, err)
			}
			inserted += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit teams: %w", err)
	}

	r.logger.Debug().Int("received", len(teams)).Int("inserted", inserted).Msg("teams stored")
	return inserted, nil
}

// MapPandaScoreIDs returns PandaScore team id -> local team id.
func (r *TeamRepository) MapPandaScoreIDs(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.queries.ListTeamPandaScoreIDs(ctx)
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]int64, len(rows))
	for _, row := range rows {
		ids[row.PandascoreID.Int64] = row.ID
	}
	return ids, nil
}

func (r *TeamRepository) CountByRegion(ctx context.Context, region domain.Region) (int, error) {
	n, err := r.queries.CountTeamsByRegion(ctx, string(region))
	return int(n), err
}

func toDomainTeams(rows []db.Team) []domain.Team {
	teams := make([]domain.Team, len(rows))
	for i, t := range rows {
		teams[i] = domain.Team{
			ID:               t.ID,
			PandaScoreID:     t.PandascoreID.Int64,
			Name:             t.Name,
			Abbreviation:     t.Abbreviation,
			LogoURL:          t.LogoUrl,
			Group:            domain.Group(t.GroupName),
			Region:           domain.Region(t.Region),
			SeasonRoundsWon:  int(t.RoundsWon),
			SeasonRoundsLost: int(t.RoundsLost),
			CreatedAt:        t.CreatedAt,
		}
	}
	return teams
}

// nullID stores 0 as NULL so locally created rows never collide on the
// unique PandaScore id.
func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: id != 0}
}
